package commands

import (
	"context"

	"chanBot/internal/domain"
)

// PingCommand sirve para comprobar que el bot está leyendo el canal.
type PingCommand struct{}

func NewPingCommand() *PingCommand {
	return &PingCommand{}
}

func (c *PingCommand) Name() string {
	return "ping"
}

func (c *PingCommand) Permission() domain.Permissions {
	return domain.PermViewer
}

func (c *PingCommand) Bucket() *Bucket {
	b := gameBucket
	return &b
}

func (c *PingCommand) Execute(context.Context, *Context, string) []string {
	return []string{"pong"}
}
