package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"chanBot/internal/app/runtime"
	"chanBot/internal/infrastructure/config"
)

// version se sobreescribe con -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("bot: fatal", slog.Any("err", err))
		os.Exit(1)
	}
}

func run() error {
	var configPath, envFile string
	var showVersion bool

	flagSet := pflag.NewFlagSet("bot", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", config.DefaultPath, "ruta del fichero TOML de configuración")
	flagSet.StringVar(&envFile, "env-file", "", "fichero .env a cargar (por defecto .env si existe)")
	flagSet.BoolVar(&showVersion, "version", false, "muestra la versión y sale")
	flagSet.BoolP("help", "h", false, "muestra esta ayuda")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return err
	}
	setupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := runtime.Start(ctx, runtime.Options{
		Config:  cfg,
		Version: version,
	})
	if err != nil {
		return err
	}

	slog.Info("Iniciando bot...", slog.Int("channels", len(cfg.Channels)), slog.String("version", version))
	waitErr := rt.Wait()
	if err := rt.Stop(); err != nil {
		slog.Warn("bot: closing resources", slog.Any("err", err))
	}
	slog.Info("Bot apagado.")
	return waitErr
}

// setupLogger: LOG_LEVEL debug|info|warn|error, LOG_FORMAT text|json. Va a stderr;
// stdout queda para el log crudo del chat.
func setupLogger(level, format string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "chanBot: bot de chat para Twitch.\n\nUso:\n  bot [flags]\n\nFlags:\n")
	flagSet.PrintDefaults()
}
