package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
)

// NATSSource reads debate records published on a NATS subject. The payloads
// use the same tagged JSON shape as the websocket stream.
type NATSSource struct {
	conn *nats.Conn
	sub  *nats.Subscription
	msgs chan *nats.Msg
}

// DialNATS connects to a NATS server and subscribes to the given subject.
func DialNATS(url, subject string) (*NATSSource, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	msgs := make(chan *nats.Msg, 64)
	sub, err := conn.ChanSubscribe(subject, msgs)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	return &NATSSource{conn: conn, sub: sub, msgs: msgs}, nil
}

// Next waits for the next well-formed record on the subject.
func (s *NATSSource) Next(ctx context.Context) (Record, error) {
	for {
		select {
		case <-ctx.Done():
			return Record{}, ctx.Err()
		case msg, ok := <-s.msgs:
			if !ok {
				return Record{}, io.EOF
			}
			rec, err := Decode(msg.Data)
			if err != nil || rec.Kind == KindUnknown {
				continue
			}
			return rec, nil
		}
	}
}

// Close drains the subscription and closes the connection.
func (s *NATSSource) Close() error {
	err := s.sub.Unsubscribe()
	s.conn.Close()
	return err
}
