// Package twitchadapter adapter for twitch
package twitchadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gempir/go-twitch-irc/v4"
	"github.com/google/uuid"

	"chanBot/internal/domain"
	"chanBot/internal/infrastructure/telemetry"
)

// ErrAuthentication: Twitch rechazó las credenciales. No se reintenta.
var ErrAuthentication = errors.New("twitch: authentication failed")

var errReconnectRequested = errors.New("twitch: server requested reconnect")

var authFailureNotices = []string{
	"Login authentication failed",
	"Improperly formatted auth",
}

var capabilities = []string{
	"twitch.tv/membership",
	"twitch.tv/tags",
	"twitch.tv/commands",
}

type Config struct {
	Username   string
	OAuthToken string
	Channel    string

	// ReconnectDelay es la espera tras un error de transporte. Un RECONNECT del
	// servidor reconecta sin esperar.
	ReconnectDelay time.Duration
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

// HandlerFactory construye el estado de cada intento de conexión (dispatcher,
// buckets) sobre el sender de esa conexión.
type HandlerFactory func(out domain.OutgoingMessagePort) MessageHandler

// LineLogger recibe cada línea cruda antes de procesarla.
type LineLogger interface {
	LogLine(raw string)
}

type Session struct {
	cfg     Config
	dialer  Dialer
	factory HandlerFactory
	lines   LineLogger
	log     *slog.Logger
}

func NewSession(cfg Config, dialer Dialer, factory HandlerFactory, lines LineLogger) *Session {
	cfg.Channel = strings.ToLower(strings.TrimPrefix(cfg.Channel, "#"))
	return &Session{
		cfg:     cfg,
		dialer:  dialer,
		factory: factory,
		lines:   lines,
		log:     slog.Default().With(slog.String("channel", cfg.Channel)),
	}
}

// Run conecta, se identifica, entra al canal y procesa líneas hasta que ctx termine.
// Solo devuelve error si la identificación es rechazada; cualquier otro fallo
// provoca una reconexión.
func (s *Session) Run(ctx context.Context) error {
	if s.cfg.Channel == "" {
		return errors.New("twitch: no hay canal configurado")
	}
	if s.cfg.Username == "" || s.cfg.OAuthToken == "" {
		return errors.New("twitch: username u oauth token vacíos")
	}

	for {
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}

		switch {
		case errors.Is(err, ErrAuthentication):
			s.log.Error("twitch: login rejected, giving up", slog.Any("err", err))
			return err
		case errors.Is(err, errReconnectRequested):
			s.log.Info("twitch: server requested reconnect")
			telemetry.ObserveReconnect(s.cfg.Channel, "directive")
			continue
		}

		s.log.Warn("twitch: connection lost, reconnecting",
			slog.Any("err", err),
			slog.Duration("delay", s.cfg.ReconnectDelay),
		)
		telemetry.ObserveReconnect(s.cfg.Channel, "transport")

		if s.cfg.ReconnectDelay > 0 {
			timer := time.NewTimer(s.cfg.ReconnectDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		}
	}
}

func (s *Session) runOnce(ctx context.Context) error {
	log := s.log.With(slog.String("session", uuid.NewString()[:8]))

	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	if err := s.identify(conn); err != nil {
		return err
	}
	if err := s.join(conn); err != nil {
		return err
	}
	log.Info("twitch: joined", slog.String("user", s.cfg.Username))

	var handler MessageHandler
	if s.factory != nil {
		handler = s.factory(&connSender{conn: conn})
	}

	for {
		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("twitch: read: %w", err)
		}
		s.record(line)

		switch m := twitch.ParseMessage(line).(type) {
		case *twitch.PingMessage:
			if err := pong(conn, m.Message); err != nil {
				return err
			}
		case *twitch.ReconnectMessage:
			_ = conn.WriteLine("QUIT")
			return errReconnectRequested
		case *twitch.PrivateMessage:
			if handler == nil {
				continue
			}
			if err := handler(ctx, toDomain(m)); err != nil {
				log.Warn("twitch: error en handler", slog.Any("err", err))
			}
		}
	}
}

// identify manda PASS/NICK y espera el 001 de bienvenida.
func (s *Session) identify(conn Conn) error {
	if err := conn.WriteLine("PASS " + s.cfg.OAuthToken); err != nil {
		return fmt.Errorf("twitch: write PASS: %w", err)
	}
	if err := conn.WriteLine("NICK " + strings.ToLower(s.cfg.Username)); err != nil {
		return fmt.Errorf("twitch: write NICK: %w", err)
	}

	for {
		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("twitch: read during identify: %w", err)
		}
		s.record(line)

		switch command, trailing := ircCommand(line); command {
		case "001":
			return nil
		case "NOTICE":
			for _, notice := range authFailureNotices {
				if strings.Contains(trailing, notice) {
					return fmt.Errorf("%w: %s", ErrAuthentication, trailing)
				}
			}
		case "PING":
			if err := pong(conn, trailing); err != nil {
				return err
			}
		}
	}
}

func (s *Session) join(conn Conn) error {
	for _, c := range capabilities {
		if err := conn.WriteLine("CAP REQ :" + c); err != nil {
			return fmt.Errorf("twitch: write CAP: %w", err)
		}
	}
	if err := conn.WriteLine("JOIN #" + s.cfg.Channel); err != nil {
		return fmt.Errorf("twitch: write JOIN: %w", err)
	}
	return nil
}

func (s *Session) record(line string) {
	if s.lines != nil {
		s.lines.LogLine(line)
	}
	telemetry.ObserveLine(s.cfg.Channel)
}

func pong(conn Conn, arg string) error {
	if arg == "" {
		arg = "tmi.twitch.tv"
	}
	if err := conn.WriteLine("PONG :" + arg); err != nil {
		return fmt.Errorf("twitch: write PONG: %w", err)
	}
	return nil
}

// ircCommand devuelve el comando de una línea IRC y su parámetro final.
func ircCommand(line string) (command, trailing string) {
	if strings.HasPrefix(line, "@") {
		_, line, _ = strings.Cut(line, " ")
	}
	if strings.HasPrefix(line, ":") {
		_, line, _ = strings.Cut(line, " ")
	}
	line, trailing, _ = strings.Cut(line, " :")
	command, _, _ = strings.Cut(line, " ")
	return command, trailing
}

// connSender escribe PRIVMSGs en la conexión del intento actual.
type connSender struct {
	conn Conn
}

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

func (c *connSender) SendMessage(_ context.Context, channel, text string) error {
	channel = strings.TrimPrefix(channel, "#")
	return c.conn.WriteLine("PRIVMSG #" + channel + " :" + lineBreaks.Replace(text))
}

func toDomain(m *twitch.PrivateMessage) domain.Message {
	return domain.Message{
		Channel:     m.Channel,
		UserID:      m.User.ID,
		Login:       m.User.Name,
		DisplayName: m.User.DisplayName,
		Text:        m.Message,
		Badges:      m.User.Badges,
		Tags:        m.Tags,
	}
}
