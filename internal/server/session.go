package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/app"
	"github.com/vcrobe/nojs-counter/vdom"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096
)

// Message is the JSON frame exchanged with the browser.
type Message struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	Path   string `json:"path,omitempty"`
	HTML   string `json:"html,omitempty"`
	Count  *int   `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Frame types.
const (
	TypeRender   = "render"
	TypeClick    = "click"
	TypeNavigate = "navigate"
	TypeError    = "error"
)

// session is one browser tab: a websocket plus the mount rendering into it.
type session struct {
	id    string
	conn  *websocket.Conn
	app   *app.App
	log   *logrus.Entry
	done  chan struct{}
	close sync.Once

	writeMu sync.Mutex
	mount   *app.Mount
	path    string
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = s.app.Config.StartPath
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		console.With(logrus.Fields{"remote": r.RemoteAddr}).WithError(err).Warn("websocket upgrade failed")
		return
	}

	sess := &session{
		id:   uuid.New().String(),
		conn: conn,
		app:  s.app,
		done: make(chan struct{}),
		path: path,
	}
	sess.log = console.With(logrus.Fields{"session": sess.id})

	mount, err := s.app.Mount(app.KindWeb, "web:"+sess.id, sess, path)
	if err != nil {
		sess.log.WithError(err).Error("mount failed")
		sess.sendError(err)
		conn.Close()
		return
	}
	sess.writeMu.Lock()
	sess.mount = mount
	sess.writeMu.Unlock()

	s.register(sess)
	defer s.unregister(sess)

	go sess.pingLoop()
	sess.readLoop()
}

// Present implements runtime.Surface by pushing the new markup to the tab.
func (sess *session) Present(prev, next *vdom.VNode) error {
	if prev != nil && vdom.Equal(prev, next) {
		return nil
	}
	html, err := vdom.HTMLString(next)
	if err != nil {
		return err
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	path := sess.path
	if sess.mount != nil {
		path = sess.mount.Router.CurrentPath()
	}
	count := sess.app.Store().Count()
	return sess.write(Message{Type: TypeRender, HTML: html, Path: path, Count: &count})
}

// write sends msg; callers hold writeMu.
func (sess *session) write(msg Message) error {
	if err := sess.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return sess.conn.WriteJSON(msg)
}

func (sess *session) sendError(err error) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if werr := sess.write(Message{Type: TypeError, Error: err.Error()}); werr != nil {
		sess.log.WithError(werr).Debug("send error frame")
	}
}

func (sess *session) readLoop() {
	defer sess.shutdown()

	sess.conn.SetReadLimit(maxMessage)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := sess.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.log.WithError(err).Warn("websocket closed unexpectedly")
			}
			return
		}
		if err := sess.handle(msg); err != nil {
			sess.log.WithError(err).Debug("message rejected")
			sess.sendError(err)
		}
	}
}

func (sess *session) handle(msg Message) error {
	switch msg.Type {
	case TypeClick:
		return sess.mount.Dispatch(msg.Target)
	case TypeNavigate:
		return sess.mount.Navigate(msg.Path)
	default:
		return errors.New("unknown message type " + msg.Type)
	}
}

func (sess *session) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := sess.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				sess.shutdown()
				return
			}
		case <-sess.done:
			return
		}
	}
}

// shutdown unmounts the session's components and closes the socket.
func (sess *session) shutdown() {
	sess.close.Do(func() {
		close(sess.done)
		if sess.mount != nil {
			sess.mount.Close()
		}
		_ = sess.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		sess.conn.Close()
		sess.log.Info("session closed")
	})
}
