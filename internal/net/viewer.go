package net

import (
	"context"
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"PaintBoard/internal/state"
)

// Join mirrors the board served at url into c until ctx is cancelled or
// the host goes away. changed, if non-nil, runs after every update.
func Join(ctx context.Context, url string, c *state.Canvas, changed func()) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer conn.Close()
	log.Printf("[share] joined %s", url)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("reading from host: %w", err)
		}

		switch msg.Type {
		case MsgSnapshot, MsgCommit, MsgReset:
			if !c.Apply(msg.Op()) {
				continue
			}
		default:
			log.Printf("[share] ignoring %q message", msg.Type)
			continue
		}
		if changed != nil {
			changed()
		}
	}
}
