package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"furniture-delivery/internal/service/commands"
	testlog "furniture-delivery/internal/testutil"
)

type fakeGroup struct {
	consumeFn func(ctx context.Context) error
	calls     atomic.Int32
	closed    atomic.Bool
}

func (g *fakeGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	g.calls.Add(1)
	if g.consumeFn == nil {
		<-ctx.Done()
		return nil
	}
	return g.consumeFn(ctx)
}

func (g *fakeGroup) Errors() <-chan error {
	ch := make(chan error)
	close(ch)
	return ch
}

func (g *fakeGroup) Close() error {
	g.closed.Store(true)
	return nil
}

func (g *fakeGroup) Pause(map[string][]int32)  {}
func (g *fakeGroup) Resume(map[string][]int32) {}
func (g *fakeGroup) PauseAll()                 {}
func (g *fakeGroup) ResumeAll()                {}

func noopHandler(context.Context, commands.Command) error { return nil }

func TestNewConsumer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	got, err := NewConsumer(rec.Logger(), nil, "gid", "topic", noopHandler)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "", "topic", nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "   ", nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

// Tests below swap the package-level constructor and must not run in parallel.

func TestNewConsumer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func(_ []string, _ string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}

	rec := testlog.New()
	got, err := NewConsumer(rec.Logger(), []string{"b:9092"}, "gid", "topic", nil)
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)
}

func TestNewConsumer_ConfiguresGroup(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	g := &fakeGroup{}
	newConsumerGroup = func(brokers []string, groupID string, cfg *sarama.Config) (sarama.ConsumerGroup, error) {
		require.Equal(t, []string{"b:9092"}, brokers)
		require.Equal(t, "status-worker", groupID)
		require.Equal(t, sarama.OffsetOldest, cfg.Consumer.Offsets.Initial)
		return g, nil
	}

	got, err := NewConsumer(nil, []string{"b:9092"}, "status-worker", "delivery.status.commands", noopHandler)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NoError(t, got.Close())
	require.True(t, g.closed.Load())
}

func TestConsumer_Run_StopsOnCancel(t *testing.T) {
	t.Parallel()

	g := &fakeGroup{}
	c := &Consumer{group: g, topic: "t", handler: noopHandler, logger: testlog.New().Logger(), retryBackoff: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestConsumer_Run_RetriesConsumeErrors(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &fakeGroup{}
	g.consumeFn = func(context.Context) error {
		if g.calls.Load() >= 3 {
			cancel()
		}
		return errors.New("rebalance failed")
	}
	c := &Consumer{group: g, topic: "t", handler: noopHandler, logger: rec.Logger(), retryBackoff: time.Millisecond}

	err := c.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.GreaterOrEqual(t, g.calls.Load(), int32(3))
	require.True(t, rec.Has("kafka consume error"))
}

func TestConsumer_NilIsInert(t *testing.T) {
	t.Parallel()

	var c *Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}
