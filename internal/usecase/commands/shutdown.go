package commands

import (
	"context"
	"log/slog"

	"chanBot/internal/domain"
)

// ShutdownCommand solo levanta la bandera compartida; el supervisor hace el resto.
type ShutdownCommand struct {
	flag domain.ShutdownRequester
}

func NewShutdownCommand(flag domain.ShutdownRequester) *ShutdownCommand {
	return &ShutdownCommand{flag: flag}
}

func (c *ShutdownCommand) Name() string {
	return "shutdown"
}

func (c *ShutdownCommand) Permission() domain.Permissions {
	return domain.PermOwner
}

func (c *ShutdownCommand) Bucket() *Bucket {
	return nil
}

func (c *ShutdownCommand) Execute(_ context.Context, cmdCtx *Context, _ string) []string {
	if c.flag == nil {
		return nil
	}
	slog.Info("shutdown requested", slog.String("by", cmdCtx.Caller.Login), slog.String("channel", cmdCtx.Caller.Channel))
	c.flag.RequestShutdown()
	return nil
}
