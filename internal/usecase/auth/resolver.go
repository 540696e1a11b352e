// Package auth deriva el nivel de permisos de cada mensaje.
package auth

import "chanBot/internal/domain"

// Resolve evalúa primero la lista de owners (coincidencia exacta con el login) y después
// los badges del transporte. Sin evidencia siempre devuelve Viewer.
func Resolve(login string, badges map[string]int, owners []string) domain.Level {
	for _, owner := range owners {
		if login != "" && login == owner {
			return domain.LevelOwner
		}
	}

	if hasBadge(badges, "broadcaster") {
		return domain.LevelStreamer
	}
	if hasBadge(badges, "moderator") {
		return domain.LevelModerator
	}
	if hasBadge(badges, "subscriber") {
		return domain.LevelSubscriber
	}
	return domain.LevelViewer
}

// CallerFor construye el Caller de un mensaje entrante.
func CallerFor(msg domain.Message, owners []string) domain.Caller {
	return domain.Caller{
		Login:       msg.Login,
		DisplayName: msg.DisplayName,
		Channel:     msg.Channel,
		Level:       Resolve(msg.Login, msg.Badges, owners),
		Tags:        msg.Tags,
	}
}

func hasBadge(badges map[string]int, name string) bool {
	if badges == nil {
		return false
	}
	_, ok := badges[name]
	return ok
}
