package commands

import (
	"context"

	"chanBot/internal/domain"
)

type VersionCommand struct {
	version string
}

func NewVersionCommand(version string) *VersionCommand {
	if version == "" {
		version = "dev"
	}
	return &VersionCommand{version: version}
}

func (c *VersionCommand) Name() string {
	return "version"
}

func (c *VersionCommand) Permission() domain.Permissions {
	return domain.PermOwner
}

func (c *VersionCommand) Bucket() *Bucket {
	return nil
}

func (c *VersionCommand) Execute(context.Context, *Context, string) []string {
	return []string{c.version}
}
