package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"chanBot/internal/domain"
	"chanBot/internal/infrastructure/config"
	sqlitestorage "chanBot/internal/infrastructure/persistence/sqlite"
	"chanBot/internal/infrastructure/telemetry"
	twitchadapter "chanBot/internal/interface/adapters/twitch"
	"chanBot/internal/interface/outs"
	"chanBot/internal/usecase/commands"
	"chanBot/internal/usecase/handle_message"
	"chanBot/internal/usecase/notifications"
	"chanBot/internal/usecase/ratelimit"
)

const defaultPollInterval = time.Second

// ShutdownFlag es la única señal compartida entre canales.
type ShutdownFlag struct {
	requested atomic.Bool
}

func (f *ShutdownFlag) RequestShutdown() { f.requested.Store(true) }

func (f *ShutdownFlag) Requested() bool { return f.requested.Load() }

var _ domain.ShutdownRequester = (*ShutdownFlag)(nil)

type Options struct {
	Config  *config.Config
	Version string

	// Dialer por defecto: WebSocket contra Config.Twitch.URL.
	Dialer twitchadapter.Dialer
	// Echo recibe una copia del log crudo de cada canal (por defecto stdout).
	Echo         io.Writer
	PollInterval time.Duration
}

type channelRuntime struct {
	name    string
	store   *sqlitestorage.Store
	chatLog *notifications.ChatLog
	session *twitchadapter.Session
}

type Runtime struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	flag   *ShutdownFlag
	poll   time.Duration

	channels []*channelRuntime
	wg       sync.WaitGroup
	done     chan struct{}

	errMu sync.Mutex
	errs  []error

	started bool
}

// Start abre el store y el log de cada canal y lanza una sesión por canal.
func Start(ctx context.Context, opts Options) (*Runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("runtime: config requerida")
	}
	channels := cfg.ChannelList()
	if len(channels) == 0 {
		return nil, config.ErrNoChannels
	}

	telemetry.Init()

	runtimeCtx, cancel := context.WithCancel(ctx)
	run := &Runtime{
		ctx:    runtimeCtx,
		cancel: cancel,
		cfg:    cfg,
		flag:   &ShutdownFlag{},
		poll:   opts.PollInterval,
		done:   make(chan struct{}),
	}
	if run.poll <= 0 {
		run.poll = defaultPollInterval
	}

	dialer := opts.Dialer
	if dialer == nil {
		dialer = twitchadapter.NewWebsocketDialer(cfg.Twitch.URL)
	}
	echo := opts.Echo
	if echo == nil {
		echo = os.Stdout
	}

	for _, ch := range channels {
		cr, err := run.openChannel(ch, dialer, echo, opts.Version)
		if err != nil {
			run.closeChannels()
			cancel()
			return nil, fmt.Errorf("runtime: channel %s: %w", ch.Name, err)
		}
		run.channels = append(run.channels, cr)
	}

	if addr := cfg.MetricsAddr; addr != "" {
		go func() {
			if err := telemetry.Serve(runtimeCtx, addr); err != nil {
				slog.Error("runtime: metrics server failed", slog.Any("err", err))
			}
		}()
	}

	for _, cr := range run.channels {
		run.wg.Add(1)
		go func(cr *channelRuntime) {
			defer run.wg.Done()
			slog.Info("runtime: starting session", slog.String("channel", cr.name))
			if err := cr.session.Run(runtimeCtx); err != nil {
				slog.Error("runtime: session ended", slog.String("channel", cr.name), slog.Any("err", err))
				run.errMu.Lock()
				run.errs = append(run.errs, fmt.Errorf("%s: %w", cr.name, err))
				run.errMu.Unlock()
			}
		}(cr)
	}
	go func() {
		run.wg.Wait()
		close(run.done)
	}()

	run.started = true
	return run, nil
}

func (r *Runtime) openChannel(ch config.Channel, dialer twitchadapter.Dialer, echo io.Writer, version string) (*channelRuntime, error) {
	store, err := sqlitestorage.Open(filepath.Join(ch.Dir, "db"))
	if err != nil {
		return nil, err
	}
	chatLog, err := notifications.OpenChatLog(filepath.Join(ch.Dir, "log"), echo)
	if err != nil {
		store.Close()
		return nil, err
	}

	registry, err := commands.NewBuiltinRegistry(commands.BuiltinDeps{
		Quotes:   store,
		Aliases:  store,
		Shutdown: r.flag,
		Version:  version,
	})
	if err != nil {
		store.Close()
		chatLog.Close()
		return nil, err
	}

	// la ventana de envío sobrevive a las reconexiones; el dispatcher no
	window := ratelimit.NewWindow(ratelimit.DefaultCapacity)
	owners := r.cfg.Twitch.Owners
	prefix := ch.Prefix

	factory := func(out domain.OutgoingMessagePort) twitchadapter.MessageHandler {
		dispatcher := commands.NewDispatcher(registry, store, prefix)
		uc := handle_message.NewInteractor(prefix, owners, dispatcher, outs.NewThrottledSender(out, window))
		return uc.Handle
	}

	session := twitchadapter.NewSession(twitchadapter.Config{
		Username:       r.cfg.Twitch.User,
		OAuthToken:     r.cfg.Twitch.Pass,
		Channel:        ch.Name,
		ReconnectDelay: r.cfg.Twitch.ReconnectDelay,
	}, dialer, factory, chatLog)

	return &channelRuntime{
		name:    ch.Name,
		store:   store,
		chatLog: chatLog,
		session: session,
	}, nil
}

// Wait bloquea hasta que alguien pida el apagado (comando shutdown o ctx) o hasta
// que todas las sesiones hayan terminado. Las sesiones no se drenan.
func (r *Runtime) Wait() error {
	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		case <-r.done:
			r.errMu.Lock()
			defer r.errMu.Unlock()
			return errors.Join(r.errs...)
		case <-ticker.C:
			if r.flag.Requested() {
				slog.Info("runtime: shutdown requested")
				r.cancel()
				return nil
			}
		}
	}
}

func (r *Runtime) ShutdownFlag() *ShutdownFlag {
	if r == nil {
		return nil
	}
	return r.flag
}

func (r *Runtime) Stop() error {
	if r == nil || !r.started {
		return nil
	}
	r.cancel()
	r.wg.Wait()
	r.started = false
	return r.closeChannels()
}

func (r *Runtime) closeChannels() error {
	var errs []error
	for _, cr := range r.channels {
		if err := cr.chatLog.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := cr.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.channels = nil
	return errors.Join(errs...)
}
