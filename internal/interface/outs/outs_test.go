package outs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chanBot/internal/usecase/ratelimit"
)

type recordingSender struct {
	lines []string
	err   error
}

func (s *recordingSender) SendMessage(_ context.Context, channel, text string) error {
	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, channel+":"+text)
	return nil
}

func TestSendBatchAllOrNothing(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	window := ratelimit.NewWindow(3, ratelimit.WithClock(func() time.Time { return now }))
	sender := &recordingSender{}
	s := NewThrottledSender(sender, window)
	ctx := context.Background()

	ok, err := s.SendBatch(ctx, "chan", []string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.SendBatch(ctx, "chan", []string{"c", "d"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"chan:a", "chan:b"}, sender.lines)

	ok, err = s.SendBatch(ctx, "chan", []string{"c"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, window.Len())

	now = now.Add(ratelimit.DefaultThreshold)
	ok, _ = s.SendBatch(ctx, "chan", []string{"x", "y", "z"})
	assert.True(t, ok)
}

func TestSendBatchEmpty(t *testing.T) {
	window := ratelimit.NewWindow(1)
	sender := &recordingSender{}
	ok, err := NewThrottledSender(sender, window).SendBatch(context.Background(), "chan", nil)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, sender.lines)
	assert.Equal(t, 0, window.Len())
}

func TestSendBatchReportsTransportErrors(t *testing.T) {
	boom := errors.New("broken pipe")
	s := NewThrottledSender(&recordingSender{err: boom}, ratelimit.NewWindow(10))

	ok, err := s.SendBatch(context.Background(), "chan", []string{"a"})
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)

	_, err = NewThrottledSender(nil, nil).SendBatch(context.Background(), "chan", []string{"a"})
	assert.Error(t, err)
}
