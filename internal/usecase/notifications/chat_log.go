// Package notifications mantiene el registro crudo de todo lo que llega por el chat.
package notifications

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ChatLog escribe cada línea recibida como "[<unix>] <línea>" en un fichero y,
// opcionalmente, en un segundo writer (stdout).
type ChatLog struct {
	mu     sync.Mutex
	w      io.Writer
	echo   io.Writer
	closer io.Closer
	now    func() time.Time
}

type Option func(*ChatLog)

func WithClock(now func() time.Time) Option {
	return func(l *ChatLog) {
		if now != nil {
			l.now = now
		}
	}
}

func NewChatLog(w, echo io.Writer, opts ...Option) *ChatLog {
	l := &ChatLog{
		w:    w,
		echo: echo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OpenChatLog abre (en modo append) el fichero de log del canal.
func OpenChatLog(path string, echo io.Writer, opts ...Option) (*ChatLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("chatlog: creating dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("chatlog: open: %w", err)
	}
	l := NewChatLog(f, echo, opts...)
	l.closer = f
	return l, nil
}

// LogLine nunca falla: un error de escritura no debe cortar el procesado del chat.
func (l *ChatLog) LogLine(raw string) {
	if l == nil {
		return
	}
	entry := fmt.Sprintf("[%d] %s\n", l.now().Unix(), raw)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w != nil {
		if _, err := io.WriteString(l.w, entry); err != nil {
			slog.Debug("chatlog: write failed", slog.Any("err", err))
		}
	}
	if l.echo != nil {
		_, _ = io.WriteString(l.echo, entry)
	}
}

func (l *ChatLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closer.Close()
}
