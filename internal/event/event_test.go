package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space-stem-quiz/internal/domain"
)

func sampleSummary() domain.Summary {
	return domain.Summary{
		SessionID:      "s-1",
		QuizID:         "space-math",
		UserID:         "2",
		TotalQuestions: 2,
		CorrectCount:   1,
		TotalXP:        45,
		MaxXP:          95,
		Accuracy:       50,
		ElapsedSeconds: 95,
		Tier:           domain.TierGood,
	}
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublisherSendsEnvelope(t *testing.T) {
	ch := &fakeChannel{}
	at := time.Date(2024, 11, 22, 9, 0, 0, 0, time.UTC)
	p := newPublisherWithChannel(ch, "quiz.events", func() time.Time { return at })

	require.NoError(t, p.Completed(context.Background(), sampleSummary()))
	assert.Equal(t, "quiz.events", ch.exchange)
	assert.Equal(t, TypeQuizCompleted, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "space-math", ch.msg.Headers["quiz_id"])

	var env Envelope
	require.NoError(t, json.Unmarshal(ch.msg.Body, &env))
	assert.Equal(t, TypeQuizCompleted, env.Type)
	assert.Equal(t, at, env.OccurredAt)
	assert.Equal(t, 45, env.Payload.TotalXP)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisherWrapsErrors(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := newPublisherWithChannel(ch, "quiz.events", time.Now)

	err := p.Completed(context.Background(), sampleSummary())
	require.ErrorIs(t, err, amqp.ErrClosed)
}

func TestLogSinkWritesTrace(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.New(&buf, "", 0))

	require.NoError(t, sink.Completed(context.Background(), sampleSummary()))
	line := buf.String()
	assert.True(t, strings.Contains(line, "quiz=space-math"), line)
	assert.True(t, strings.Contains(line, "score=1/2"), line)
	assert.True(t, strings.Contains(line, "time=1:35"), line)
}

type failingSink struct{ err error }

func (s failingSink) Completed(context.Context, domain.Summary) error { return s.err }

func TestMultiJoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	m := Multi{failingSink{err: boom}, NewLogSink(log.New(&buf, "", 0))}

	err := m.Completed(context.Background(), sampleSummary())
	require.ErrorIs(t, err, boom)
	assert.NotEmpty(t, buf.String(), "later sinks still run")

	assert.NoError(t, Multi{}.Completed(context.Background(), sampleSummary()))
}
