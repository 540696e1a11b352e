package domain

import "context"

type Quote struct {
	ID   int64
	Text string
}

type QuoteRepository interface {
	AddQuote(ctx context.Context, text string) (int64, error)
	// GetQuote y RandomQuote devuelven (nil, nil) cuando no hay resultado.
	GetQuote(ctx context.Context, id int64) (*Quote, error)
	RandomQuote(ctx context.Context) (*Quote, error)
	RemoveQuote(ctx context.Context, id int64) error
}
