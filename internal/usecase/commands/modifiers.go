package commands

import (
	"strings"

	"chanBot/internal/domain"
)

// Modifier enciende o apaga un atributo de un alias.
type Modifier struct {
	Enable bool
	Flag   domain.Permissions
}

var modifierLetters = map[rune]domain.Permissions{
	'r': domain.PermReadOnly,
	'o': domain.PermOwner,
	'b': domain.PermStreamer,
	'm': domain.PermMod,
	's': domain.PermSub,
	'v': domain.PermViewer,
}

// ParseModifiers reads runs like "+rv-m". A sign applies to every letter up to the
// next sign; unknown letters and whitespace are skipped.
func ParseModifiers(s string) []Modifier {
	var out []Modifier
	enable := true
	for _, ch := range s {
		switch ch {
		case '+':
			enable = true
			continue
		case '-':
			enable = false
			continue
		}
		flag, ok := modifierLetters[ch]
		if !ok {
			continue
		}
		out = append(out, Modifier{Enable: enable, Flag: flag})
	}
	return out
}

func ApplyModifiers(base domain.Permissions, mods []Modifier) domain.Permissions {
	for _, m := range mods {
		base = base.Set(m.Flag, m.Enable)
	}
	return base
}

// cutModifiers separa los tokens +/- iniciales del resto de la línea. ok es false si
// después de los modificadores no queda ningún comando.
func cutModifiers(line string) (mods string, rest string, ok bool) {
	var b strings.Builder
	rest = line
	for strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
		token, remaining := splitCommand(rest)
		b.WriteString(token)
		if remaining == "" {
			return b.String(), "", false
		}
		rest = remaining
	}
	return b.String(), rest, true
}
