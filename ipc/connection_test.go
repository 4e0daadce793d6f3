package ipc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLoopDispatchesByKind(t *testing.T) {
	input := strings.Join([]string{
		`{"unitInformation":[]}`,
		`garbage`,
		`{"turnInfo":[0,0,-1]}`,
		`{"turnInfo":[1,0,0]}`,
		`{"turnInfo":[0,1,-1]}`,
		`{"turnInfo":[2,1,0]}`,
		`{"turnInfo":[0,2,-1]}`,
	}, "\n")
	var out bytes.Buffer
	var seen []string

	conn := NewConnection(strings.NewReader(input), &out, nil)
	conn.RegisterHandler(KindConfig, func(env Envelope) ([]any, error) {
		seen = append(seen, env.Kind)
		return nil, nil
	})
	conn.RegisterHandler(KindTurn, func(env Envelope) ([]any, error) {
		seen = append(seen, env.Kind)
		return []any{[]int{}, []int{1}}, nil
	})
	conn.RegisterHandler(KindAction, func(env Envelope) ([]any, error) {
		seen = append(seen, env.Kind)
		return nil, errors.New("boom")
	})

	require.NoError(t, conn.ReadLoop(context.Background()))
	assert.Equal(t, []string{KindConfig, KindTurn, KindAction, KindTurn}, seen, "the loop stops at the end frame")
	assert.Equal(t, "[]\n[1]\n[]\n[1]\n", out.String())
}

func TestReadLoopWritesRepliesOfFailingHandler(t *testing.T) {
	var out bytes.Buffer
	conn := NewConnection(strings.NewReader(`{"turnInfo":[0,0,-1]}`), &out, map[string]Handler{
		KindTurn: func(Envelope) ([]any, error) {
			return []any{[]int{}, []int{}}, errors.New("partial")
		},
	})
	require.NoError(t, conn.ReadLoop(context.Background()))
	assert.Equal(t, "[]\n[]\n", out.String())
}

func TestReadLoopCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn := NewConnection(strings.NewReader(`{"turnInfo":[0,0,-1]}`), &bytes.Buffer{}, nil)
	assert.ErrorIs(t, conn.ReadLoop(ctx), context.Canceled)
}

func TestReadLoopCancelledWhileWaiting(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	conn := NewConnection(r, &bytes.Buffer{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- conn.ReadLoop(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("read loop did not return after cancel")
	}
}

func TestReadLoopAnswersUnreadableTurn(t *testing.T) {
	input := strings.Join([]string{
		`{"turnInfo":"zero","p1Stats":[30,1,1,0]}`,
		`{"turnInfo":[0,1,-1]}`,
	}, "\n")
	var out bytes.Buffer
	conn := NewConnection(strings.NewReader(input), &out, map[string]Handler{
		KindTurn: func(Envelope) ([]any, error) { return []any{[]int{1}, []int{2}}, nil },
	})
	require.NoError(t, conn.ReadLoop(context.Background()))
	assert.Equal(t, "[]\n[]\n[1]\n[2]\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestReadLoopStopsOnWriteError(t *testing.T) {
	conn := NewConnection(strings.NewReader("{\"turnInfo\":[0,0,-1]}\n{\"turnInfo\":[0,1,-1]}"), failingWriter{}, map[string]Handler{
		KindTurn: func(Envelope) ([]any, error) { return []any{[]int{}}, nil },
	})
	assert.Error(t, conn.ReadLoop(context.Background()))
}
