package outs

import (
	"context"
	"fmt"

	"chanBot/internal/infrastructure/telemetry"
	"chanBot/internal/usecase/ratelimit"
)

// Sender es lo que implementa el adapter de salida (la conexión IRC de la sesión).
type Sender interface {
	// channel: canal al que hay que responder, sin '#'
	SendMessage(ctx context.Context, channel, text string) error
}

// ThrottledSender pasa cada lote de respuestas por la ventana de envío del canal.
// Un lote entra completo o no entra.
type ThrottledSender struct {
	sender Sender
	window *ratelimit.Window
}

func NewThrottledSender(sender Sender, window *ratelimit.Window) *ThrottledSender {
	return &ThrottledSender{
		sender: sender,
		window: window,
	}
}

// SendBatch devuelve false si la ventana rechazó el lote. Un lote vacío no envía nada
// y cuenta como admitido.
func (s *ThrottledSender) SendBatch(ctx context.Context, channel string, lines []string) (bool, error) {
	if s == nil || s.sender == nil {
		return false, fmt.Errorf("outs: no hay sender configurado")
	}
	if len(lines) == 0 {
		return true, nil
	}
	if s.window != nil && !s.window.Admit(len(lines)) {
		telemetry.ObserveBatch(channel, false, len(lines))
		return false, nil
	}
	telemetry.ObserveBatch(channel, true, len(lines))

	for _, line := range lines {
		if err := s.sender.SendMessage(ctx, channel, line); err != nil {
			return true, fmt.Errorf("outs: send: %w", err)
		}
	}
	return true, nil
}
