package messaging_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubscriber struct {
	mu     sync.Mutex
	topics []string
	msgs   chan *message.Message
	err    error
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{msgs: make(chan *message.Message, 8)}
}

func (s *fakeSubscriber) Subscribe(_ context.Context, topic string) (<-chan *message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	s.topics = append(s.topics, topic)

	return s.msgs, nil
}

func (s *fakeSubscriber) Close() error {
	return nil
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestConsumer(t *testing.T) {
	t.Run("decodes, handles, and acks messages", func(t *testing.T) {
		subscriber := newFakeSubscriber()

		received := make(chan *testEvent, 1)
		consumer := messaging.NewConsumer(subscriber, "events.test",
			func(_ context.Context, event *testEvent) error {
				received <- event
				return nil
			},
			zap.NewNop(),
		)

		require.NoError(t, consumer.Start(context.Background()))
		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage("msg-1", []byte(`{"name":"hello","count":2}`))
		subscriber.msgs <- msg

		select {
		case event := <-received:
			assert.Equal(t, "hello", event.Name)
			assert.Equal(t, 2, event.Count)
		case <-time.After(time.Second):
			t.Fatal("handler was not invoked")
		}

		waitClosed(t, msg.Acked(), "ack")
		assert.Equal(t, []string{"events.test"}, subscriber.topics)
	})

	t.Run("nacks undecodable payloads", func(t *testing.T) {
		subscriber := newFakeSubscriber()

		consumer := messaging.NewConsumer(subscriber, "events.test",
			func(_ context.Context, _ *testEvent) error {
				t.Error("handler must not run for undecodable payloads")
				return nil
			},
			zap.NewNop(),
		)

		require.NoError(t, consumer.Start(context.Background()))
		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage("msg-1", []byte(`not json`))
		subscriber.msgs <- msg

		waitClosed(t, msg.Nacked(), "nack")
	})

	t.Run("nacks when the handler fails", func(t *testing.T) {
		subscriber := newFakeSubscriber()

		consumer := messaging.NewConsumer(subscriber, "events.test",
			func(_ context.Context, _ *testEvent) error {
				return errors.New("handler failed")
			},
			zap.NewNop(),
		)

		require.NoError(t, consumer.Start(context.Background()))
		defer func() { _ = consumer.Shutdown() }()

		msg := message.NewMessage("msg-1", []byte(`{"name":"hello"}`))
		subscriber.msgs <- msg

		waitClosed(t, msg.Nacked(), "nack")
	})

	t.Run("propagates subscribe failure", func(t *testing.T) {
		subscriber := newFakeSubscriber()
		subscriber.err = errors.New("subscribe failed")

		consumer := messaging.NewConsumer(subscriber, "events.test",
			func(_ context.Context, _ *testEvent) error { return nil },
			zap.NewNop(),
		)

		assert.Error(t, consumer.Start(context.Background()))
	})

	t.Run("shutdown stops the consume loop", func(t *testing.T) {
		subscriber := newFakeSubscriber()

		consumer := messaging.NewConsumer(subscriber, "events.test",
			func(_ context.Context, _ *testEvent) error { return nil },
			zap.NewNop(),
		)

		require.NoError(t, consumer.Start(context.Background()))
		assert.NoError(t, consumer.Shutdown())
	})
}
