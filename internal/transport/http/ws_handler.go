package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/drawwire/drawwire-server/internal/auth"
	"github.com/drawwire/drawwire-server/internal/core"
	"github.com/drawwire/drawwire-server/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to core.Session.
type WSHandler struct {
	hub  *core.Hub
	auth *auth.Service
	log  *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler. authService may be nil;
// sessions are anonymous unless a valid token is presented.
func NewWSHandler(hub *core.Hub, authService *auth.Service, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, auth: authService, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	session := core.NewSession(uuid.NewString(), h.identify(r))
	h.hub.RegisterSession(session)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, session)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, session)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	close(session.Commands)
	h.hub.UnregisterSession(session)

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// identify extracts a stable user id from an optional token. Invalid or
// missing tokens leave the session anonymous; they never reject the
// connection.
func (h *WSHandler) identify(r *stdhttp.Request) string {
	if h.auth == nil {
		return ""
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("x-auth-token")
	}
	if token == "" {
		return ""
	}
	claims, err := h.auth.ValidateToken(token)
	if err != nil {
		h.log.Debug().Err(err).Msg("ignoring invalid ws token")
		return ""
	}
	return strconv.FormatInt(claims.UserID, 10)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		cmd, protoErr, err := inboundToCommand(inbound)
		if err != nil {
			h.log.Warn().Err(err).Str("session_id", session.ID).Msg("failed to map inbound")
			return err
		}
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
			continue
		}
		if cmd != nil {
			session.Commands <- cmd
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		select {
		case event, ok := <-session.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("session_id", session.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
