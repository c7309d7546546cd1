package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gorilla/websocket"

	"github.com/agoraviz/agora/internal/graph"
)

// WebSocketSource reads debate records from the backend's websocket endpoint.
// The protocol is: connect, send the graph configuration as one JSON text
// message, then read records until the connection closes.
type WebSocketSource struct {
	conn *websocket.Conn
}

// DialWebSocket connects to the backend and submits the debate configuration.
func DialWebSocket(ctx context.Context, url string, cfg *graph.Config) (*WebSocketSource, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to encode debate config: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send debate config: %w", err)
	}

	return &WebSocketSource{conn: conn}, nil
}

// Next reads records until one decodes to a known kind.
func (s *WebSocketSource) Next(ctx context.Context) (Record, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, fmt.Errorf("failed to read stream: %w", err)
		}

		rec, err := Decode(data)
		if err != nil || rec.Kind == KindUnknown {
			// Malformed or unrecognized records carry no state change.
			continue
		}
		return rec, nil
	}
}

// Close closes the underlying connection.
func (s *WebSocketSource) Close() error {
	return s.conn.Close()
}
