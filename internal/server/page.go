package server

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/app"
	"github.com/vcrobe/nojs-counter/runtime"
	"github.com/vcrobe/nojs-counter/vdom"
)

var shell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; display: flex; flex-direction: column; align-items: center; gap: 20px; padding: 2rem; }
nav a { margin: 0 .5rem; }
.counter h1 { font-size: 2.5rem; }
.controls button, .parent > button, .child button { font-size: 2rem; margin: 0 .5rem; }
.child { background: rgba(128,128,128,.1); border-radius: 8px; padding: 12px; color: #1565c0; }
</style>
</head>
<body>
<nav>{{range .Nav}}<a href="{{.Path}}" data-nav="{{.Path}}">{{.Title}}</a>{{end}}</nav>
<main id="app">{{.Body}}</main>
<script>
(function () {
  var app = document.getElementById("app");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws?path=" + encodeURIComponent(location.pathname));
  function send(msg) { if (ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg)); }
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "render") {
      app.innerHTML = msg.html;
      if (msg.path && msg.path !== location.pathname) history.pushState(null, "", msg.path);
    } else if (msg.type === "error") {
      console.warn(msg.error);
    }
  };
  document.addEventListener("click", function (ev) {
    var nav = ev.target.closest("[data-nav]");
    if (nav && ws.readyState === WebSocket.OPEN) {
      ev.preventDefault();
      send({type: "navigate", path: nav.getAttribute("data-nav")});
      return;
    }
    var el = ev.target.closest("[{{.ClickAttr}}]");
    if (el) send({type: "click", target: el.getAttribute("{{.ClickAttr}}")});
  });
  window.addEventListener("popstate", function () { send({type: "navigate", path: location.pathname}); });
})();
</script>
</body>
</html>
`))

type navLink struct {
	Path  string
	Title string
}

type shellData struct {
	Title     string
	Nav       []navLink
	Body      template.HTML
	ClickAttr string
}

// handlePage server-side renders the routed component into the page shell.
// The page is interactive once its script opens the live session.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	body, title, found, err := s.renderOnce(path)
	if err != nil {
		console.With(logrus.Fields{"path": path}).WithError(err).Error("render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	data := shellData{
		Title:     "nojs counter · " + title,
		Body:      template.HTML(body),
		ClickAttr: vdom.ClickAttr,
	}
	for _, route := range s.app.Routes() {
		data.Nav = append(data.Nav, navLink{Path: route.Path, Title: route.Title})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !found {
		w.WriteHeader(http.StatusNotFound)
	}
	if err := shell.Execute(w, data); err != nil {
		console.Error("write page:", err)
	}
}

// renderOnce mounts path on a throwaway surface and returns its markup.
func (s *Server) renderOnce(path string) (body, title string, found bool, err error) {
	var mu sync.Mutex
	var renderErr error

	m, err := s.app.Mount(app.KindPrerender, "ssr:"+path, runtime.SurfaceFunc(func(_, next *vdom.VNode) error {
		out, err := vdom.HTMLString(next)
		mu.Lock()
		defer mu.Unlock()
		body, renderErr = out, err
		return err
	}), path)
	if err != nil {
		return "", "", false, err
	}
	route, found := m.Router.Lookup(path)
	m.Close()

	title = "Not found"
	if found {
		title = route.Title
	}

	mu.Lock()
	defer mu.Unlock()
	return body, title, found, renderErr
}
