package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"chanBot/internal/domain"
	"chanBot/internal/infrastructure/telemetry"
)

type QuoteCommand struct {
	repo domain.QuoteRepository
}

func NewQuoteCommand(repo domain.QuoteRepository) *QuoteCommand {
	return &QuoteCommand{repo: repo}
}

func (c *QuoteCommand) Name() string {
	return "quote"
}

func (c *QuoteCommand) Permission() domain.Permissions {
	return domain.PermViewer
}

func (c *QuoteCommand) Bucket() *Bucket {
	return nil
}

// Execute sin argumentos devuelve una cita aleatoria; con un id, esa cita.
func (c *QuoteCommand) Execute(ctx context.Context, _ *Context, args string) []string {
	if c.repo == nil {
		return nil
	}

	var (
		quote *domain.Quote
		err   error
	)
	if args == "" {
		quote, err = c.repo.RandomQuote(ctx)
	} else {
		id, perr := strconv.ParseUint(args, 10, 32)
		if perr != nil {
			return nil
		}
		quote, err = c.repo.GetQuote(ctx, int64(id))
	}
	if err != nil {
		slog.Warn("quote: lookup failed", slog.Any("err", err))
		telemetry.ObserveStoreError("get_quote")
		return nil
	}
	if quote == nil {
		return nil
	}
	return []string{fmt.Sprintf("[%d] %s", quote.ID, quote.Text)}
}

type QuoteAddCommand struct {
	repo domain.QuoteRepository
}

func NewQuoteAddCommand(repo domain.QuoteRepository) *QuoteAddCommand {
	return &QuoteAddCommand{repo: repo}
}

func (c *QuoteAddCommand) Name() string {
	return "quoteadd"
}

func (c *QuoteAddCommand) Permission() domain.Permissions {
	return domain.PermStreamer | domain.PermMod
}

func (c *QuoteAddCommand) Bucket() *Bucket {
	return nil
}

func (c *QuoteAddCommand) Execute(ctx context.Context, _ *Context, args string) []string {
	if c.repo == nil || args == "" {
		return nil
	}
	id, err := c.repo.AddQuote(ctx, args)
	if err != nil {
		slog.Warn("quoteadd: insert failed", slog.Any("err", err))
		telemetry.ObserveStoreError("add_quote")
		return nil
	}
	return []string{fmt.Sprintf("Quote #%d added.", id)}
}

type QuoteRemoveCommand struct {
	repo domain.QuoteRepository
}

func NewQuoteRemoveCommand(repo domain.QuoteRepository) *QuoteRemoveCommand {
	return &QuoteRemoveCommand{repo: repo}
}

func (c *QuoteRemoveCommand) Name() string {
	return "quoterm"
}

func (c *QuoteRemoveCommand) Permission() domain.Permissions {
	return domain.PermStreamer | domain.PermMod
}

func (c *QuoteRemoveCommand) Bucket() *Bucket {
	return nil
}

func (c *QuoteRemoveCommand) Execute(ctx context.Context, _ *Context, args string) []string {
	if c.repo == nil {
		return nil
	}
	id, err := strconv.ParseUint(args, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	if err := c.repo.RemoveQuote(ctx, int64(id)); err != nil {
		slog.Warn("quoterm: delete failed", slog.Uint64("id", id), slog.Any("err", err))
		telemetry.ObserveStoreError("remove_quote")
	}
	return nil
}
