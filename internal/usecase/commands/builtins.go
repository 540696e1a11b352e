package commands

import (
	"math/rand/v2"
	"time"

	"chanBot/internal/domain"
)

// BuiltinDeps son las dependencias de los comandos incluidos en el bot.
type BuiltinDeps struct {
	Quotes   domain.QuoteRepository
	Aliases  domain.AliasRepository
	Shutdown domain.ShutdownRequester
	Version  string
	Rand     *rand.Rand
}

// NewBuiltinRegistry registra todos los comandos internos.
func NewBuiltinRegistry(deps BuiltinDeps) (*Registry, error) {
	rng := deps.Rand
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>7|1))
	}

	return NewRegistry(
		NewSayCommand(),
		NewCountCommand(),
		NewQuoteCommand(deps.Quotes),
		NewQuoteAddCommand(deps.Quotes),
		NewQuoteRemoveCommand(deps.Quotes),
		NewAliasModCommand(deps.Aliases),
		NewVersionCommand(deps.Version),
		NewShutdownCommand(deps.Shutdown),
		NewRollCommand(rng),
		NewFlipCoinCommand(rng),
		NewEightBallCommand(rng),
		NewNumberwangCommand(rng),
		NewTCountCommand(),
		NewPingCommand(),
		NewCatalogCommand(),
	)
}
