// Package app wires the counter store, routes and metrics together and
// mounts render surfaces on top of them.
//
// The App owns the root reference to the shared counter. Every mounted
// surface renders components that hold clones of that reference, so all
// surfaces in the process observe one logical count.
package app
