// Package sse implements an incremental decoder for the Server-Sent-Events
// wire format. The decoder consumes a byte stream with arbitrary chunk
// boundaries and reassembles it into discrete events.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// DefaultEventType is assigned to events that carry no explicit "event:" field.
const DefaultEventType = "message"

// Event is a single decoded server-sent event.
type Event struct {
	// Type is the event name from the "event:" field, or DefaultEventType
	// if the event had none.
	Type string

	// Data is the payload. Multiple "data:" lines are joined with newlines.
	Data string

	// ID is the optional server-assigned event ID, carried through for the
	// caller. The decoder does not implement resumption.
	ID string
}

// Decoder reads server-sent events from a stream. It is not safe for
// concurrent use and cannot be restarted once Next has returned an error.
type Decoder struct {
	r   *bufio.Reader
	err error

	// accumulator for the event currently being built
	eventType string
	data      []string
	hasData   bool
	id        string
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next complete event from the stream. It returns io.EOF
// when the stream is exhausted.
//
// Events are emitted on blank-line boundaries. If the stream ends in the
// middle of an event, the remainder is discarded unless it carries both an
// explicit event type and at least one data line, in which case it is
// emitted before io.EOF.
func (d *Decoder) Next() (Event, error) {
	if d.err != nil {
		return Event{}, d.err
	}

	for {
		line, err := d.r.ReadString('\n')
		terminated := strings.HasSuffix(line, "\n")
		text := strings.TrimRight(line, "\r\n")

		if terminated && text == "" {
			// Blank line: event boundary.
			if ev, ok := d.flush(); ok {
				return ev, nil
			}
		} else if text != "" {
			d.parseLine(text)
		}

		if err != nil {
			d.err = err
			if err == io.EOF {
				if ev, ok := d.flushTrailing(); ok {
					return ev, nil
				}
			}
			return Event{}, d.err
		}
	}
}

// parseLine folds one "field: value" line into the accumulator. Comment
// lines (leading colon) and unrecognized fields are ignored.
func (d *Decoder) parseLine(line string) {
	if strings.HasPrefix(line, ":") {
		return
	}

	field, value := line, ""
	if i := strings.Index(line, ":"); i >= 0 {
		field = line[:i]
		value = strings.TrimPrefix(line[i+1:], " ")
	}

	switch field {
	case "event":
		d.eventType = value
	case "data":
		d.data = append(d.data, value)
		d.hasData = true
	case "id":
		d.id = value
	}
}

// flush emits the accumulated event, if any field was set, and resets the
// accumulator.
func (d *Decoder) flush() (Event, bool) {
	if d.eventType == "" && !d.hasData && d.id == "" {
		return Event{}, false
	}

	ev := Event{
		Type: d.eventType,
		Data: strings.Join(d.data, "\n"),
		ID:   d.id,
	}
	if ev.Type == "" {
		ev.Type = DefaultEventType
	}

	d.eventType = ""
	d.data = nil
	d.hasData = false
	d.id = ""
	return ev, true
}

// flushTrailing applies the end-of-stream policy: a partial event with no
// closing blank line is dropped unless both an explicit type and data are
// present.
func (d *Decoder) flushTrailing() (Event, bool) {
	if d.eventType == "" || !d.hasData {
		return Event{}, false
	}
	return d.flush()
}
