package commands

import (
	"context"
	"time"

	"chanBot/internal/domain"
)

// Command es un comando interno. Execute devuelve las líneas a enviar; nil significa
// no enviar nada.
type Command interface {
	Name() string
	Permission() domain.Permissions
	// Bucket devuelve nil si el comando no tiene límite propio.
	Bucket() *Bucket
	Execute(ctx context.Context, c *Context, args string) []string
}

type Context struct {
	Caller   domain.Caller
	Registry *Registry
	// Prefix es el prefijo de comandos del canal, para respuestas que los nombran.
	Prefix string
}

// Bucket allows Count executions per Interval, per session.
type Bucket struct {
	Count    int
	Interval time.Duration
}
