package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/time/rate"

	"chanBot/internal/domain"
	"chanBot/internal/infrastructure/telemetry"
)

// aliasPermission es quien puede crear o borrar aliases (Owner también, por jerarquía).
const aliasPermission = domain.PermStreamer | domain.PermMod

// Dispatcher resuelve una línea de comando (sin prefijo) y ejecuta el handler.
// Se crea uno por intento de conexión: los buckets viven aquí.
type Dispatcher struct {
	registry *Registry
	aliases  domain.AliasRepository
	prefix   string
	limiters map[string]*rate.Limiter
	log      *slog.Logger
}

func NewDispatcher(registry *Registry, aliases domain.AliasRepository, prefix string) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		aliases:  aliases,
		prefix:   prefix,
		limiters: make(map[string]*rate.Limiter),
		log:      slog.Default().With(slog.String("component", "dispatcher")),
	}
	for _, name := range registry.Names() {
		cmd, _ := registry.Lookup(name)
		if b := cmd.Bucket(); b != nil {
			every := b.Interval / time.Duration(b.Count)
			d.limiters[name] = rate.NewLimiter(rate.Every(every), b.Count)
		}
	}
	return d
}

// target is what a name resolved to: a registered command or a stored alias.
type target struct {
	command Command
	alias   *domain.Alias
}

// Dispatch returns the reply lines for line, or nil. Unknown names, missing
// authorization, exhausted buckets and store failures all yield nil.
func (d *Dispatcher) Dispatch(ctx context.Context, caller domain.Caller, line string) []string {
	name, rest := splitCommand(line)
	if name == "" {
		return nil
	}
	if name == AliasCommandName {
		return d.handleAlias(ctx, caller, rest)
	}

	t, ok := d.resolve(ctx, name)
	if !ok {
		return nil
	}
	grants := caller.Level.Grants()

	if t.command != nil {
		if !grants.Intersects(t.command.Permission()) {
			return nil
		}
		return d.execute(ctx, caller, t.command, rest)
	}

	// un solo salto: el destino de un alias se busca solo en el registry
	innerName, innerArgs := splitCommand(t.alias.Command)
	cmd, ok := d.registry.Lookup(innerName)
	if !ok {
		return nil
	}
	if !grants.Intersects(t.alias.Permissions) {
		return nil
	}
	args := innerArgs
	if !t.alias.Permissions.Has(domain.PermReadOnly) && rest != "" {
		if args != "" {
			args += " " + rest
		} else {
			args = rest
		}
	}
	return d.execute(ctx, caller, cmd, args)
}

// resolve checks the registry first, then the alias store.
func (d *Dispatcher) resolve(ctx context.Context, name string) (target, bool) {
	if cmd, ok := d.registry.Lookup(name); ok {
		return target{command: cmd}, true
	}
	if d.aliases == nil {
		return target{}, false
	}
	alias, err := d.aliases.GetAlias(ctx, name)
	if err != nil {
		d.log.Warn("dispatcher: alias lookup failed", slog.String("alias", name), slog.Any("err", err))
		telemetry.ObserveStoreError("get_alias")
		return target{}, false
	}
	if alias == nil {
		return target{}, false
	}
	return target{alias: alias}, true
}

func (d *Dispatcher) execute(ctx context.Context, caller domain.Caller, cmd Command, args string) []string {
	if lim, ok := d.limiters[cmd.Name()]; ok && !lim.Allow() {
		d.log.Debug("dispatcher: bucket exhausted", slog.String("command", cmd.Name()))
		return nil
	}
	telemetry.ObserveCommand(cmd.Name())
	return cmd.Execute(ctx, &Context{Caller: caller, Registry: d.registry, Prefix: d.prefix}, args)
}

// handleAlias implements `alias <name> [+-mods] <command> [args...]`.
func (d *Dispatcher) handleAlias(ctx context.Context, caller domain.Caller, rest string) []string {
	grants := caller.Level.Grants()
	if !grants.Intersects(aliasPermission) {
		return nil
	}
	if rest == "" {
		return []string{"Usage: " + d.prefix + "alias <alias> [auth] <cmd> [args...]"}
	}
	if d.aliases == nil {
		return nil
	}

	name, command := splitCommand(rest)
	if command == "" {
		d.removeAlias(ctx, name)
		return nil
	}

	mods, command, ok := cutModifiers(command)
	if !ok {
		return nil
	}
	targetName, _ := splitCommand(command)
	cmd, ok := d.registry.Lookup(targetName)
	if !ok {
		return nil
	}
	if d.registry.IsReserved(name) {
		d.log.Info("dispatcher: alias name collides with a command", slog.String("alias", name))
		return nil
	}
	// quien crea el alias debe poder usar el comando destino
	if !grants.Intersects(cmd.Permission()) {
		return nil
	}

	perms := ApplyModifiers(cmd.Permission().Set(domain.PermReadOnly, true), ParseModifiers(mods))

	// delete-then-insert: si el insert falla el alias queda borrado
	d.removeAlias(ctx, name)
	err := d.aliases.PutAlias(ctx, &domain.Alias{
		Name:        name,
		Permissions: perms,
		Command:     command,
	})
	if err != nil {
		d.log.Warn("dispatcher: alias insert failed", slog.String("alias", name), slog.Any("err", err))
		telemetry.ObserveStoreError("put_alias")
	}
	return nil
}

func (d *Dispatcher) removeAlias(ctx context.Context, name string) {
	if err := d.aliases.RemoveAlias(ctx, name); err != nil {
		d.log.Warn("dispatcher: alias delete failed", slog.String("alias", name), slog.Any("err", err))
		telemetry.ObserveStoreError("remove_alias")
	}
}

// splitCommand separa el primer token del resto. Los espacios iniciales se ignoran y
// el resto se recorta.
func splitCommand(s string) (name, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
