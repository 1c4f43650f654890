// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/styling"
	"inkwell/internal/surface"
)

// Client message types.
const (
	MessageNavigate    = "navigate"
	MessageToggleDark  = "toggle-dark"
	MessageSetMode     = "set-mode"
	MessageOSScheme    = "os-scheme"
	MessagePreview     = "preview"
	MessagePreviewExit = "preview-exit"
	MessagePreviewSave = "preview-save"
)

// Server message types.
const (
	MessageSnapshot = "snapshot"
	MessageError    = "error"
)

const (
	liveReadLimit    = 16 << 10
	liveWriteTimeout = 5 * time.Second
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type   string              `json:"type"`
	Page   string              `json:"page,omitempty"`
	Mode   models.ColorMode    `json:"mode,omitempty"`
	Dark   bool                `json:"dark,omitempty"`
	Colors *models.BrandColors `json:"colors,omitempty"`
}

// ServerMessage is sent to the browser. DarkAvailable is false when the
// blog has dark mode disabled, so the page can hide its toggle.
type ServerMessage struct {
	Type          string            `json:"type"`
	Snapshot      *surface.Snapshot `json:"snapshot,omitempty"`
	Dark          bool              `json:"dark"`
	DarkAvailable bool              `json:"darkAvailable"`
	Preview       bool              `json:"preview"`
	Error         string            `json:"error,omitempty"`
}

// Mounter creates and destroys styling sessions.
type Mounter interface {
	Mount(ctx context.Context, req styling.MountRequest) (*styling.Session, error)
	Unmount(s *styling.Session)
}

// Live serves the styling WebSocket. Each connection mounts one session
// and receives a full surface snapshot after every change.
type Live struct {
	sessions Mounter
	origins  []string
	limiter  *middleware.RateLimiter
	editor   bool
}

// NewLive creates the visitor endpoint. origins lists the host patterns
// allowed to connect besides the serving host. limiter throttles inbound
// messages per connection and may be nil.
func NewLive(sessions Mounter, origins []string, limiter *middleware.RateLimiter) *Live {
	return &Live{sessions: sessions, origins: origins, limiter: limiter}
}

// Editor returns a copy of l that also accepts preview messages. It must
// only be routed behind the same access control as the write API.
func (l *Live) Editor() *Live {
	e := *l
	e.editor = true
	return &e
}

// ServeHTTP implements http.Handler.
func (l *Live) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if !slug.Valid(s) {
		http.Error(w, "blog not found", http.StatusNotFound)
		return
	}
	page, err := models.ParsePageType(r.URL.Query().Get("page"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := l.sessions.Mount(r.Context(), styling.MountRequest{
		Slug:    s,
		Page:    page,
		Visitor: middleware.VisitorFromCtx(r.Context()),
		OSDark:  middleware.PrefersDark(r),
	})
	if errors.Is(err, styling.ErrBlogNotFound) {
		http.Error(w, "blog not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("mount session failed", "slug", s, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer l.sessions.Unmount(sess)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: l.origins})
	if err != nil {
		slog.Warn("websocket accept failed", "slug", s, "error", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(liveReadLimit)

	c := &liveConn{
		live:  l,
		conn:  conn,
		sess:  sess,
		dirty: make(chan struct{}, 1),
		errs:  make(chan string, 8),
	}
	sess.Surface().Listen(func(surface.Snapshot) { c.markDirty() })
	defer sess.Surface().Listen(nil)
	if l.limiter != nil {
		defer l.limiter.Forget(sess.ID())
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writePump(ctx)
		// A failed write ends the connection.
		cancel()
	}()

	c.markDirty()
	c.readPump(ctx)
	cancel()
	<-done

	conn.Close(websocket.StatusNormalClosure, "")
}

// liveConn is one WebSocket connection bound to one session.
type liveConn struct {
	live  *Live
	conn  *websocket.Conn
	sess  *styling.Session
	dirty chan struct{}
	errs  chan string
}

// markDirty schedules a snapshot push. Pending pushes coalesce: the writer
// always sends the surface as it is when it wakes up.
func (c *liveConn) markDirty() {
	select {
	case c.dirty <- struct{}{}:
	default:
	}
}

func (c *liveConn) reportError(msg string) {
	select {
	case c.errs <- msg:
	default:
	}
}

// writePump is the only writer on the connection.
func (c *liveConn) writePump(ctx context.Context) {
	var sent uint64
	first := true
	for {
		var msg ServerMessage
		select {
		case <-ctx.Done():
			return
		case e := <-c.errs:
			msg = ServerMessage{Type: MessageError, Error: e}
		case <-c.dirty:
			snap := c.sess.Surface().Snapshot()
			if !first && snap.Revision <= sent {
				continue
			}
			first = false
			sent = snap.Revision
			msg = ServerMessage{Type: MessageSnapshot, Snapshot: &snap}
		}
		msg.Dark = c.sess.DarkEffective()
		msg.DarkAvailable = c.sess.DarkAvailable()
		msg.Preview = c.sess.InPreview()

		writeCtx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
		err := wsjson.Write(writeCtx, c.conn, msg)
		cancel()
		if err != nil {
			slog.Debug("websocket write failed", "session", c.sess.ID(), "error", err)
			return
		}
	}
}

// readPump handles client messages until the connection closes.
func (c *liveConn) readPump(ctx context.Context) {
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				slog.Debug("websocket read failed", "session", c.sess.ID(), "error", err)
			}
			return
		}
		if c.live.limiter != nil && !c.live.limiter.Allow(c.sess.ID()) {
			c.reportError("too many messages")
			continue
		}
		if err := c.handle(ctx, msg); err != nil {
			c.reportError(err.Error())
		}
	}
}

var errEditorOnly = errors.New("preview requires an editor connection")

// handle applies one client message to the session.
func (c *liveConn) handle(ctx context.Context, msg ClientMessage) error {
	switch msg.Type {
	case MessageNavigate:
		page, err := models.ParsePageType(msg.Page)
		if err != nil {
			return err
		}
		return c.sess.Navigate(ctx, page)
	case MessageToggleDark:
		return c.sess.ToggleDark(ctx)
	case MessageSetMode:
		return c.sess.SetMode(ctx, msg.Mode)
	case MessageOSScheme:
		return c.sess.SetOSDark(ctx, msg.Dark)
	case MessagePreview, MessagePreviewExit, MessagePreviewSave:
		if !c.live.editor {
			return errEditorOnly
		}
		return c.handlePreview(ctx, msg)
	default:
		return errors.New("unknown message type " + msg.Type)
	}
}

func (c *liveConn) handlePreview(ctx context.Context, msg ClientMessage) error {
	switch msg.Type {
	case MessagePreview:
		if msg.Colors == nil {
			return errors.New("preview requires colors")
		}
		return c.sess.EnterPreview(ctx, *msg.Colors)
	case MessagePreviewExit:
		return c.sess.ExitPreview(ctx)
	default:
		if err := c.sess.SavePreview(ctx); err != nil {
			if errors.Is(err, styling.ErrNoPreview) {
				return err
			}
			slog.Error("save preview failed", "session", c.sess.ID(), "slug", c.sess.Slug(), "error", err)
			return errors.New("save failed")
		}
		return nil
	}
}
