package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultPath           = "config.toml"
	DefaultURL            = "wss://irc-ws.chat.twitch.tv:443"
	DefaultPrefix         = "!"
	DefaultDataDir        = "data"
	DefaultReconnectDelay = 2 * time.Second
)

var (
	ErrNoChannels  = errors.New("config: no channels configured")
	ErrNoUser      = errors.New("config: twitch user is required")
	ErrNoPassword  = errors.New("config: twitch pass is required")
	errBadInterval = errors.New("config: reconnect_delay must not be negative")
)

type Twitch struct {
	User           string        `toml:"user"`
	Pass           string        `toml:"pass"`
	Owners         []string      `toml:"owners"`
	URL            string        `toml:"url"`
	ReconnectDelay time.Duration `toml:"reconnect_delay"`
}

type Channel struct {
	Name   string `toml:"name"`
	Prefix string `toml:"prefix"`
	Dir    string `toml:"dir"`
}

type Config struct {
	Twitch   Twitch             `toml:"twitch"`
	Channels map[string]Channel `toml:"channels"`
	DataDir  string             `toml:"data_dir"`

	MetricsAddr string `toml:"metrics_addr"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`

	delaySet bool
}

// Load lee .env (si existe), después el TOML en path (si existe) y por último aplica
// las variables de entorno, que siempre ganan.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if path == "" {
		path = DefaultPath
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		slog.Debug("config: no config file, using environment only", slog.String("path", path))
	}
	// reconnect_delay = "0s" es válido: sin espera entre reconexiones
	cfg.delaySet = meta.IsDefined("twitch", "reconnect_delay")

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("TWITCH_BOT_USERNAME"); v != "" {
		c.Twitch.User = v
	}
	if v := os.Getenv("TWITCH_BOT_ACCESS_TOKEN"); v != "" {
		c.Twitch.Pass = v
	}
	if v := os.Getenv("BOT_OWNERS"); v != "" {
		c.Twitch.Owners = splitList(v)
	}
	if v := os.Getenv("TWITCH_IRC_URL"); v != "" {
		c.Twitch.URL = v
	}
	if v := os.Getenv("BOT_RECONNECT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: BOT_RECONNECT_DELAY: %w", err)
		}
		c.Twitch.ReconnectDelay = d
		c.delaySet = true
	}
	if v := os.Getenv("TWITCH_BOT_CHANNELS"); v != "" {
		if c.Channels == nil {
			c.Channels = make(map[string]Channel)
		}
		for _, name := range splitList(v) {
			key := strings.ToLower(name)
			if _, exists := c.Channels[key]; !exists {
				c.Channels[key] = Channel{Name: name}
			}
		}
	}
	if v := os.Getenv("BOT_COMMAND_PREFIX"); v != "" {
		for key, ch := range c.Channels {
			if ch.Prefix == "" {
				ch.Prefix = v
				c.Channels[key] = ch
			}
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	return nil
}

func (c *Config) SetDefaults() {
	if c.Twitch.URL == "" {
		c.Twitch.URL = DefaultURL
	}
	if !c.delaySet && c.Twitch.ReconnectDelay == 0 {
		c.Twitch.ReconnectDelay = DefaultReconnectDelay
	}
	if c.Twitch.Pass != "" && !strings.HasPrefix(c.Twitch.Pass, "oauth:") {
		c.Twitch.Pass = "oauth:" + c.Twitch.Pass
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	for key, ch := range c.Channels {
		if ch.Name == "" {
			ch.Name = key
		}
		if ch.Prefix == "" {
			ch.Prefix = DefaultPrefix
		}
		if ch.Dir == "" {
			ch.Dir = filepath.Join(c.DataDir, strings.ToLower(ch.Name))
		}
		c.Channels[key] = ch
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Twitch.User == "" {
		errs = append(errs, ErrNoUser)
	}
	if c.Twitch.Pass == "" {
		errs = append(errs, ErrNoPassword)
	}
	if len(c.Channels) == 0 {
		errs = append(errs, ErrNoChannels)
	}
	if c.Twitch.ReconnectDelay < 0 {
		errs = append(errs, errBadInterval)
	}
	return errors.Join(errs...)
}

// ChannelList devuelve los canales ordenados por nombre.
func (c *Config) ChannelList() []Channel {
	out := make([]Channel, 0, len(c.Channels))
	for _, ch := range c.Channels {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
