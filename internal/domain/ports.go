package domain

import "context"

type OutgoingMessagePort interface {
	SendMessage(ctx context.Context, channel, text string) error
}

// ShutdownRequester lo implementa el supervisor; el comando shutdown solo levanta la bandera.
type ShutdownRequester interface {
	RequestShutdown()
}
