package ipc

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
)

// Handler processes a received envelope. Each returned value is written as
// one JSON line; return none to send no reply.
type Handler func(env Envelope) ([]any, error)

// Connection is the game engine on the other end of stdin and stdout.
type Connection struct {
	in       *bufio.Scanner
	out      io.Writer
	handlers map[string]Handler
}

func NewConnection(r io.Reader, w io.Writer, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		in:       NewScanner(r),
		out:      w,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(kind string, handler Handler) {
	c.handlers[kind] = handler
}

type readResult struct {
	env Envelope
	err error
}

// ReadLoop blocks until the input ends, the end frame has been handled, or
// ctx is cancelled. Lines are read on their own goroutine so cancellation
// does not wait for the next line. A line that cannot be classified or a
// failing handler is logged and skipped, except that a line carrying
// unreadable turnInfo gets an empty turn reply. Read and write failures stop
// the loop with an error.
func (c *Connection) ReadLoop(ctx context.Context) error {
	results := make(chan readResult)
	done := make(chan struct{})
	defer close(done)
	go c.readLines(results, done)

	for {
		if err := ctx.Err(); err != nil {
			slog.Info("read loop cancelled", "error", err)
			return err
		}

		var r readResult
		select {
		case <-ctx.Done():
			slog.Info("read loop cancelled", "error", ctx.Err())
			return ctx.Err()
		case r = <-results:
		}

		env, err := r.env, r.err
		if errors.Is(err, io.EOF) {
			slog.Info("input closed")
			return nil
		}
		if errors.Is(err, ErrUnreadableTurn) {
			slog.Warn("answering unreadable turn with an empty turn", "error", err)
			if err := c.write(KindTurn, Submission{}.Lines()); err != nil {
				return err
			}
			continue
		}
		if errors.Is(err, ErrBadFrame) {
			slog.Warn("skipping line", "error", err)
			continue
		}
		if err != nil {
			slog.Error("connection read ended", "error", err)
			return err
		}

		handler, ok := c.handlers[env.Kind]
		if !ok {
			slog.Debug("no handler for message kind", "kind", env.Kind)
		} else {
			lines, err := handler(env)
			if err != nil {
				slog.Error("handler error", "kind", env.Kind, "error", err)
			}
			if err := c.write(env.Kind, lines); err != nil {
				return err
			}
		}

		if env.Kind == KindEnd {
			slog.Info("game over")
			return nil
		}
	}
}

// readLines feeds results until a read fails for good or done is closed. A
// goroutine blocked on the reader itself only ends when the input does.
func (c *Connection) readLines(results chan<- readResult, done <-chan struct{}) {
	for {
		env, err := ReadEnvelope(c.in)
		select {
		case results <- readResult{env: env, err: err}:
		case <-done:
			return
		}
		if err != nil && !errors.Is(err, ErrBadFrame) {
			return
		}
	}
}

func (c *Connection) write(kind string, lines []any) error {
	for _, l := range lines {
		if err := WriteLine(c.out, l); err != nil {
			slog.Error("failed to send reply", "kind", kind, "error", err)
			return err
		}
	}
	return nil
}
