package notifications

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return time.Unix(1_700_000_123, 0) }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLogLineFormat(t *testing.T) {
	var file, echo bytes.Buffer
	l := NewChatLog(&file, &echo, WithClock(fixedClock))

	l.LogLine(":tmi.twitch.tv 001 chanbot :Welcome, GLHF!")
	l.LogLine("PING :tmi.twitch.tv")

	want := "[1700000123] :tmi.twitch.tv 001 chanbot :Welcome, GLHF!\n[1700000123] PING :tmi.twitch.tv\n"
	assert.Equal(t, want, file.String())
	assert.Equal(t, want, echo.String())
}

func TestLogLineIgnoresWriteErrors(t *testing.T) {
	var echo bytes.Buffer
	l := NewChatLog(failingWriter{}, &echo, WithClock(fixedClock))

	assert.NotPanics(t, func() { l.LogLine("still echoed") })
	assert.Equal(t, "[1700000123] still echoed\n", echo.String())

	var nilLog *ChatLog
	assert.NotPanics(t, func() { nilLog.LogLine("x") })
}

func TestOpenChatLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "somechannel", "log")

	l, err := OpenChatLog(path, nil, WithClock(fixedClock))
	require.NoError(t, err)
	l.LogLine("first")
	require.NoError(t, l.Close())

	l, err = OpenChatLog(path, nil, WithClock(fixedClock))
	require.NoError(t, err)
	l.LogLine("second")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[1700000123] first\n[1700000123] second\n", string(data))
}
