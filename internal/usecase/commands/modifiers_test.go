package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chanBot/internal/domain"
)

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		in   string
		want []Modifier
	}{
		{"", nil},
		{"+r", []Modifier{{true, domain.PermReadOnly}}},
		{"-r", []Modifier{{false, domain.PermReadOnly}}},
		{"+vs-m", []Modifier{{true, domain.PermViewer}, {true, domain.PermSub}, {false, domain.PermMod}}},
		{"-b+o", []Modifier{{false, domain.PermStreamer}, {true, domain.PermOwner}}},
		{"+xq-z", nil},
		{"+r -v", []Modifier{{true, domain.PermReadOnly}, {false, domain.PermViewer}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseModifiers(tt.in))
		})
	}
}

func TestApplyModifiers(t *testing.T) {
	base := domain.PermStreamer | domain.PermMod | domain.PermReadOnly

	assert.Equal(t, domain.PermStreamer|domain.PermMod, ApplyModifiers(base, ParseModifiers("-r")))
	assert.Equal(t, base|domain.PermViewer, ApplyModifiers(base, ParseModifiers("+v")))
	assert.Equal(t, domain.PermStreamer|domain.PermReadOnly, ApplyModifiers(base, ParseModifiers("-m")))
	// last writer wins
	assert.Equal(t, base, ApplyModifiers(base, ParseModifiers("-m+m")))
}

func TestCutModifiers(t *testing.T) {
	mods, rest, ok := cutModifiers("+v -r say hello there")
	assert.True(t, ok)
	assert.Equal(t, "+v-r", mods)
	assert.Equal(t, "say hello there", rest)

	mods, rest, ok = cutModifiers("say hi")
	assert.True(t, ok)
	assert.Empty(t, mods)
	assert.Equal(t, "say hi", rest)

	_, _, ok = cutModifiers("+v")
	assert.False(t, ok)
}

func TestSplitCommand(t *testing.T) {
	name, rest := splitCommand("   say   hello world  ")
	assert.Equal(t, "say", name)
	assert.Equal(t, "hello world", rest)

	name, rest = splitCommand("version")
	assert.Equal(t, "version", name)
	assert.Empty(t, rest)

	name, rest = splitCommand("")
	assert.Empty(t, name)
	assert.Empty(t, rest)
}
