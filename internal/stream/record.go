// Package stream consumes the debate backend's record stream.
package stream

import (
	"encoding/json"
	"fmt"
)

// Record kinds, matching the backend's tagged JSON records.
const (
	KindPosition = "position"
	KindMessage  = "message"
	KindComplete = "complete"
	KindError    = "error"
	KindUnknown  = "unknown"
)

// Record is one decoded entry of the inbound stream. Kind selects which
// fields are meaningful.
type Record struct {
	Kind string

	// position and message
	From  string
	Round int

	// position
	Position string

	// message
	To      string
	Text    string
	Summary string

	// error
	Err string
}

// envelope is the top-level wire shape. Message payloads arrive wrapped in a
// "data" object; position, complete and error records are flat.
type envelope struct {
	Type     string          `json:"type"`
	From     string          `json:"from"`
	Position string          `json:"position"`
	Round    int             `json:"round"`
	Error    string          `json:"error"`
	Data     json.RawMessage `json:"data"`
}

type messageBody struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Text    string `json:"text"`
	Summary string `json:"summary"`
	Round   int    `json:"round"`
}

// Decode parses one wire record. Records with an unrecognized type decode to
// KindUnknown so callers can skip them without treating them as errors.
func Decode(data []byte) (Record, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Record{}, fmt.Errorf("failed to parse stream record: %w", err)
	}

	switch env.Type {
	case KindPosition:
		return Record{
			Kind:     KindPosition,
			From:     env.From,
			Position: env.Position,
			Round:    env.Round,
		}, nil
	case KindMessage:
		var body messageBody
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &body); err != nil {
				return Record{}, fmt.Errorf("failed to parse message payload: %w", err)
			}
		}
		return Record{
			Kind:    KindMessage,
			From:    body.From,
			To:      body.To,
			Text:    body.Text,
			Summary: body.Summary,
			Round:   body.Round,
		}, nil
	case KindComplete:
		return Record{Kind: KindComplete}, nil
	case KindError:
		return Record{Kind: KindError, Err: env.Error}, nil
	default:
		return Record{Kind: KindUnknown}, nil
	}
}
