package domain

import "strings"

// Level es el rango de autorización de quien escribe un mensaje.
type Level uint8

const (
	LevelViewer Level = iota
	LevelSubscriber
	LevelModerator
	LevelStreamer
	LevelOwner
)

func (l Level) String() string {
	switch l {
	case LevelOwner:
		return "owner"
	case LevelStreamer:
		return "streamer"
	case LevelModerator:
		return "moderator"
	case LevelSubscriber:
		return "subscriber"
	default:
		return "viewer"
	}
}

// Grants devuelve los bits de este nivel y de todos los niveles inferiores.
// Un caller está autorizado para un requisito si Grants() lo intersecta.
func (l Level) Grants() Permissions {
	switch l {
	case LevelOwner:
		return PermOwner | PermStreamer | PermMod | PermSub | PermViewer
	case LevelStreamer:
		return PermStreamer | PermMod | PermSub | PermViewer
	case LevelModerator:
		return PermMod | PermSub | PermViewer
	case LevelSubscriber:
		return PermSub | PermViewer
	default:
		return PermViewer
	}
}

// Permissions is the bit-set stored with commands and aliases. The bit values are
// persisted in the alias table's auth column and must not change.
type Permissions uint8

const (
	PermViewer   Permissions = 0b00000001
	PermSub      Permissions = 0b00000010
	PermMod      Permissions = 0b00000100
	PermStreamer Permissions = 0b00001000
	PermOwner    Permissions = 0b00010000
	PermReadOnly Permissions = 0b10000000

	permLevels = PermOwner | PermStreamer | PermMod | PermSub | PermViewer
	permAll    = permLevels | PermReadOnly
)

func (p Permissions) Has(flag Permissions) bool {
	return p&flag == flag
}

// Intersects ignores ReadOnly: it is an attribute, not an audience.
func (p Permissions) Intersects(other Permissions) bool {
	return p&other&permLevels != 0
}

func (p Permissions) Set(flag Permissions, on bool) Permissions {
	if on {
		return p | flag
	}
	return p &^ flag
}

// Valid reports whether p only carries known bits.
func (p Permissions) Valid() bool {
	return p&^permAll == 0
}

func (p Permissions) String() string {
	if p == 0 {
		return "none"
	}
	names := []struct {
		flag Permissions
		name string
	}{
		{PermReadOnly, "readonly"},
		{PermOwner, "owner"},
		{PermStreamer, "streamer"},
		{PermMod, "mod"},
		{PermSub, "sub"},
		{PermViewer, "viewer"},
	}
	var parts []string
	for _, n := range names {
		if p.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
