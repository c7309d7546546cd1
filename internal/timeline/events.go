// Package timeline provides the event-sourced exchange log and its
// deterministic replay engine.
package timeline

import "time"

// Event is one entry in the exchange log. It is a closed set: the replay
// engine switches exhaustively over the three variants, so adding a fourth
// kind is a compile-visible change.
type Event interface {
	isEvent()
}

// PositionEvent records that a participant's stated position changed.
type PositionEvent struct {
	At       time.Time
	Round    int
	AgentID  string
	Position string
}

// BubbleStartEvent records a directed message starting to travel between two
// participants. ID is unique per message instance for the whole exchange.
type BubbleStartEvent struct {
	At       time.Time
	Round    int
	ID       string
	From     string
	To       string
	Summary  string
	FullText string
}

// BubbleCompleteEvent records that the message with ID finished traveling.
// It occurs at most once per ID, strictly after the matching start. A start
// with no complete means the message was still in flight when the log ended.
type BubbleCompleteEvent struct {
	At    time.Time
	Round int
	ID    string
}

func (PositionEvent) isEvent()       {}
func (BubbleStartEvent) isEvent()    {}
func (BubbleCompleteEvent) isEvent() {}

// eventTime returns the timestamp carried by any event variant.
func eventTime(ev Event) time.Time {
	switch e := ev.(type) {
	case PositionEvent:
		return e.At
	case BubbleStartEvent:
		return e.At
	case BubbleCompleteEvent:
		return e.At
	}
	return time.Time{}
}
