// Package handle_message
package handle_message

import (
	"context"
	"log/slog"
	"strings"

	"chanBot/internal/domain"
	"chanBot/internal/usecase/auth"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, caller domain.Caller, line string) []string
}

type BatchSender interface {
	SendBatch(ctx context.Context, channel string, lines []string) (bool, error)
}

type Interactor struct {
	prefix     string
	owners     []string
	dispatcher Dispatcher
	out        BatchSender
}

func NewInteractor(prefix string, owners []string, dispatcher Dispatcher, out BatchSender) *Interactor {
	return &Interactor{
		prefix:     prefix,
		owners:     owners,
		dispatcher: dispatcher,
		out:        out,
	}
}

// Handle procesa un PRIVMSG. Solo los mensajes que empiezan exactamente por el
// prefijo llegan al dispatcher.
func (uc *Interactor) Handle(ctx context.Context, msg domain.Message) error {
	if uc.prefix == "" || !strings.HasPrefix(msg.Text, uc.prefix) {
		return nil
	}
	line := strings.TrimPrefix(msg.Text, uc.prefix)

	caller := auth.CallerFor(msg, uc.owners)
	lines := uc.dispatcher.Dispatch(ctx, caller, line)
	if len(lines) == 0 {
		return nil
	}

	ok, err := uc.out.SendBatch(ctx, msg.Channel, lines)
	if err != nil {
		return err
	}
	if !ok {
		slog.Warn("handle_message: reply dropped by send window",
			slog.String("channel", msg.Channel),
			slog.Int("lines", len(lines)),
		)
	}
	return nil
}
