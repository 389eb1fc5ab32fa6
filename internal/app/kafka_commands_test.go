package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"furniture-delivery/internal/service/commands"
	"furniture-delivery/internal/transport/kafka"
)

type ctxKey struct{}

type spyHandler struct {
	called int
	ctx    context.Context
	cmd    commands.Command
	err    error
}

func (s *spyHandler) Handle(ctx context.Context, c commands.Command) error {
	s.called++
	s.ctx = ctx
	s.cmd = c
	return s.err
}

func TestMakeCommandsKafka_DelegatesToHandler(t *testing.T) {
	t.Parallel()

	spy := &spyHandler{}
	h := makeCommandsKafka(spy)

	ctx := context.WithValue(context.Background(), ctxKey{}, "v")
	in := commands.Command{TrackingNumber: "20240501-0000000A", Action: commands.ActionStatus, Status: "in_delivery"}

	require.NoError(t, h(ctx, in))
	require.Equal(t, 1, spy.called)
	require.Equal(t, "v", spy.ctx.Value(ctxKey{}))
	require.Equal(t, in, spy.cmd)
}

func TestMakeCommandsKafka_PermanentErrorIsMarkedForSkip(t *testing.T) {
	t.Parallel()

	cause := errors.New("unknown delivery")
	spy := &spyHandler{err: fmt.Errorf("%w: %w", commands.ErrPermanent, cause)}
	h := makeCommandsKafka(spy)

	err := h(context.Background(), commands.Command{TrackingNumber: "x", Action: commands.ActionCancel})
	require.Error(t, err)

	var perm kafka.PermanentError
	require.ErrorAs(t, err, &perm)
	require.ErrorIs(t, err, cause)
}

func TestMakeCommandsKafka_TransientErrorIsRetried(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	spy := &spyHandler{err: cause}
	h := makeCommandsKafka(spy)

	err := h(context.Background(), commands.Command{TrackingNumber: "x", Action: commands.ActionStatus})
	require.ErrorIs(t, err, cause)

	var perm kafka.PermanentError
	require.False(t, errors.As(err, &perm))
}
