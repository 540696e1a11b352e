package commands

import (
	"context"

	"chanBot/internal/domain"
)

type SayCommand struct{}

func NewSayCommand() *SayCommand {
	return &SayCommand{}
}

func (c *SayCommand) Name() string {
	return "say"
}

func (c *SayCommand) Permission() domain.Permissions {
	return domain.PermStreamer | domain.PermMod
}

func (c *SayCommand) Bucket() *Bucket {
	return nil
}

func (c *SayCommand) Execute(_ context.Context, _ *Context, args string) []string {
	if args == "" {
		return nil
	}
	return []string{args}
}
