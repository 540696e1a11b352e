package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chanBot/internal/domain"
)

func TestResolve(t *testing.T) {
	owners := []string{"bossman"}

	tests := []struct {
		name   string
		login  string
		badges map[string]int
		want   domain.Level
	}{
		{"owner without tags", "bossman", nil, domain.LevelOwner},
		{"owner beats broadcaster", "bossman", map[string]int{"broadcaster": 1}, domain.LevelOwner},
		{"owner match is case sensitive", "BossMan", nil, domain.LevelViewer},
		{"broadcaster", "streamer", map[string]int{"broadcaster": 1, "subscriber": 0}, domain.LevelStreamer},
		{"moderator", "modguy", map[string]int{"moderator": 1, "subscriber": 12}, domain.LevelModerator},
		{"subscriber", "subguy", map[string]int{"subscriber": 3}, domain.LevelSubscriber},
		{"other badges only", "v", map[string]int{"premium": 1}, domain.LevelViewer},
		{"no evidence", "v", nil, domain.LevelViewer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.login, tt.badges, owners))
		})
	}
}

func TestResolveEmptyLoginNeverOwner(t *testing.T) {
	assert.Equal(t, domain.LevelViewer, Resolve("", nil, []string{""}))
}

func TestCallerFor(t *testing.T) {
	msg := domain.Message{
		Channel:     "somechannel",
		Login:       "modguy",
		DisplayName: "ModGuy",
		Badges:      map[string]int{"moderator": 1},
		Tags:        map[string]string{"display-name": "ModGuy"},
	}
	caller := CallerFor(msg, nil)

	assert.Equal(t, domain.LevelModerator, caller.Level)
	assert.Equal(t, "ModGuy", caller.Display())
	assert.Equal(t, "somechannel", caller.Channel)
}
