package handle_message

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chanBot/internal/domain"
	"chanBot/internal/usecase/commands"
)

type recordedDispatch struct {
	caller domain.Caller
	line   string
}

type fakeDispatcher struct {
	calls []recordedDispatch
	reply []string
}

func (d *fakeDispatcher) Dispatch(_ context.Context, caller domain.Caller, line string) []string {
	d.calls = append(d.calls, recordedDispatch{caller: caller, line: line})
	return d.reply
}

type fakeBatchSender struct {
	batches [][]string
	reject  bool
	err     error
}

func (s *fakeBatchSender) SendBatch(_ context.Context, channel string, lines []string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.reject {
		return false, nil
	}
	s.batches = append(s.batches, append([]string{channel}, lines...))
	return true, nil
}

func msg(text string) domain.Message {
	return domain.Message{
		Channel:     "somechannel",
		Login:       "alice",
		DisplayName: "Alice",
		Text:        text,
		Badges:      map[string]int{"moderator": 1},
	}
}

func TestOnlyPrefixedMessagesAreDispatched(t *testing.T) {
	d := &fakeDispatcher{}
	uc := NewInteractor("!", nil, d, &fakeBatchSender{})
	ctx := context.Background()

	require.NoError(t, uc.Handle(ctx, msg("hello chat")))
	require.NoError(t, uc.Handle(ctx, msg(" !say hi")))
	assert.Empty(t, d.calls)

	require.NoError(t, uc.Handle(ctx, msg("!say hi")))
	require.Len(t, d.calls, 1)
	assert.Equal(t, "say hi", d.calls[0].line)
	assert.Equal(t, domain.LevelModerator, d.calls[0].caller.Level)
	assert.Equal(t, "somechannel", d.calls[0].caller.Channel)
}

func TestOwnersAreResolved(t *testing.T) {
	d := &fakeDispatcher{}
	uc := NewInteractor("!", []string{"alice"}, d, &fakeBatchSender{})

	require.NoError(t, uc.Handle(context.Background(), msg("!version")))
	require.Len(t, d.calls, 1)
	assert.Equal(t, domain.LevelOwner, d.calls[0].caller.Level)
}

func TestRepliesGoOutAsOneBatch(t *testing.T) {
	out := &fakeBatchSender{}
	uc := NewInteractor("!", nil, &fakeDispatcher{reply: []string{"0", "1", "2"}}, out)

	require.NoError(t, uc.Handle(context.Background(), msg("!count 3")))
	assert.Equal(t, [][]string{{"somechannel", "0", "1", "2"}}, out.batches)
}

func TestEmptyReplySendsNothing(t *testing.T) {
	out := &fakeBatchSender{}
	uc := NewInteractor("!", nil, &fakeDispatcher{}, out)

	require.NoError(t, uc.Handle(context.Background(), msg("!unknown")))
	assert.Empty(t, out.batches)
}

func TestDroppedBatchIsNotAnError(t *testing.T) {
	uc := NewInteractor("!", nil, &fakeDispatcher{reply: []string{"x"}}, &fakeBatchSender{reject: true})
	assert.NoError(t, uc.Handle(context.Background(), msg("!say x")))

	boom := errors.New("closed")
	uc = NewInteractor("!", nil, &fakeDispatcher{reply: []string{"x"}}, &fakeBatchSender{err: boom})
	assert.ErrorIs(t, uc.Handle(context.Background(), msg("!say x")), boom)
}

func TestEndToEndWithRealDispatcher(t *testing.T) {
	registry, err := commands.NewBuiltinRegistry(commands.BuiltinDeps{})
	require.NoError(t, err)
	out := &fakeBatchSender{}
	uc := NewInteractor("?", nil, commands.NewDispatcher(registry, nil, "?"), out)
	ctx := context.Background()

	require.NoError(t, uc.Handle(ctx, msg("?say hello")))
	require.NoError(t, uc.Handle(ctx, msg("!say ignored")))
	require.NoError(t, uc.Handle(ctx, msg("?count 3")))

	assert.Equal(t, [][]string{{"somechannel", "hello"}}, out.batches)
}
