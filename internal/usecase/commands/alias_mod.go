package commands

import (
	"context"
	"log/slog"

	"chanBot/internal/domain"
	"chanBot/internal/infrastructure/telemetry"
)

// AliasModCommand re-aplica modificadores +/- a un alias existente:
// `aliasmod <alias> <+-mods>`.
type AliasModCommand struct {
	repo domain.AliasRepository
}

func NewAliasModCommand(repo domain.AliasRepository) *AliasModCommand {
	return &AliasModCommand{repo: repo}
}

func (c *AliasModCommand) Name() string {
	return "aliasmod"
}

func (c *AliasModCommand) Permission() domain.Permissions {
	return domain.PermStreamer | domain.PermMod
}

func (c *AliasModCommand) Bucket() *Bucket {
	return nil
}

func (c *AliasModCommand) Execute(ctx context.Context, cmdCtx *Context, args string) []string {
	if c.repo == nil {
		return nil
	}
	name, mods := splitCommand(args)
	if name == "" || mods == "" {
		return nil
	}

	alias, err := c.repo.GetAlias(ctx, name)
	if err != nil {
		slog.Warn("aliasmod: lookup failed", slog.String("alias", name), slog.Any("err", err))
		telemetry.ObserveStoreError("get_alias")
		return nil
	}
	if alias == nil {
		return nil
	}

	// mismo requisito que al crear: hay que poder usar el comando destino
	targetName, _ := splitCommand(alias.Command)
	target, ok := cmdCtx.Registry.Lookup(targetName)
	if !ok || !cmdCtx.Caller.Level.Grants().Intersects(target.Permission()) {
		return nil
	}

	perms := ApplyModifiers(alias.Permissions, ParseModifiers(mods))
	if err := c.repo.UpdateAliasPermissions(ctx, name, perms); err != nil {
		slog.Warn("aliasmod: update failed", slog.String("alias", name), slog.Any("err", err))
		telemetry.ObserveStoreError("update_alias")
	}
	return nil
}
