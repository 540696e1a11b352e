package commands

import (
	"context"
	"strings"

	"chanBot/internal/domain"
)

// CatalogCommand lista los comandos internos que quien pregunta puede usar.
type CatalogCommand struct{}

func NewCatalogCommand() *CatalogCommand {
	return &CatalogCommand{}
}

func (c *CatalogCommand) Name() string {
	return "commands"
}

func (c *CatalogCommand) Permission() domain.Permissions {
	return domain.PermViewer
}

func (c *CatalogCommand) Bucket() *Bucket {
	b := gameBucket
	return &b
}

func (c *CatalogCommand) Execute(_ context.Context, cmdCtx *Context, _ string) []string {
	grants := cmdCtx.Caller.Level.Grants()
	var names []string
	for _, name := range cmdCtx.Registry.Names() {
		cmd, _ := cmdCtx.Registry.Lookup(name)
		if grants.Intersects(cmd.Permission()) {
			names = append(names, cmdCtx.Prefix+name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []string{strings.Join(names, " ")}
}
