package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrBadFrame marks a line that is not a game document. The stream is still
// readable after it.
var ErrBadFrame = errors.New("unrecognised frame")

// ErrUnreadableTurn is a bad frame that carries turnInfo the loop cannot
// read. The game may be waiting on a reply to it.
var ErrUnreadableTurn = fmt.Errorf("%w: unreadable turnInfo", ErrBadFrame)

// Frames are one JSON document per line. Action frames on a crowded board
// run to a few hundred kilobytes.
const maxLineSize = 1 << 24

// Envelope is one received line together with its derived kind.
// Data is kept raw so handlers can defer deserialization to the concrete type.
type Envelope struct {
	Kind string
	Data json.RawMessage
}

// NewScanner returns a line scanner sized for game frames.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return sc
}

// ReadEnvelope reads the next non-blank line. It returns io.EOF once the input
// is exhausted.
func ReadEnvelope(sc *bufio.Scanner) (Envelope, error) {
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		kind, err := Classify(line)
		if err != nil {
			return Envelope{}, err
		}
		// The scanner reuses its buffer.
		data := make([]byte, len(line))
		copy(data, line)
		return Envelope{Kind: kind, Data: data}, nil
	}
	if err := sc.Err(); err != nil {
		return Envelope{}, fmt.Errorf("read line: %w", err)
	}
	return Envelope{}, io.EOF
}

// Classify names the kind of a raw line: the game config carries
// unitInformation, every later frame carries turnInfo.
func Classify(line []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadFrame, err)
	}
	if v, ok := fields["unitInformation"]; ok && string(v) != "null" {
		return KindConfig, nil
	}
	raw, ok := fields["turnInfo"]
	if !ok {
		return "", fmt.Errorf("%w: neither unitInformation nor turnInfo", ErrBadFrame)
	}
	var info []float64
	if err := json.Unmarshal(raw, &info); err != nil || len(info) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUnreadableTurn, raw)
	}
	kind, ok := frameKinds[int(info[0])]
	if !ok {
		return "", fmt.Errorf("%w: frame type %v", ErrBadFrame, info[0])
	}
	return kind, nil
}

// WriteLine marshals v and writes it followed by a newline.
func WriteLine(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal line: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}
