// Package config loads and validates the fridayd configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fridayd/fridayd/common"
	"github.com/fridayd/fridayd/pkg/postlib"
)

// ErrConfigCreated is returned by Load when no config file existed and a
// default one was written. The caller is expected to tell the user to fill
// in credentials and exit.
var ErrConfigCreated = errors.New("default config file created")

// Config is the on-disk daemon configuration.
type Config struct {
	// Weekday of the weekly trigger, 0=Monday .. 6=Sunday.
	Weekday int `json:"weekday"`
	// Time of day of the trigger, "H", "H:M" or "H:M:S".
	Time string `json:"time"`
	// CronSchedule, when set, replaces the weekly weekday/time trigger
	// with a cron expression.
	CronSchedule string `json:"cron_schedule,omitempty"`

	// Message is the default post text.
	Message string `json:"message"`
	// MediaFiles are pool entries: files, directories (expanded once per
	// index) or http/ftp/sftp URLs.
	MediaFiles []string `json:"media_files,omitempty"`

	// QueueFile is the path of the pending-post database.
	QueueFile string `json:"queue_file,omitempty"`
	// ChunkSize of upload segments, e.g. "1MB". Empty means the default.
	ChunkSize string `json:"chunk_size,omitempty"`
	// Proxy is an optional http, https or socks5 proxy URL.
	Proxy string `json:"proxy,omitempty"`
	// Port of the TCP fallback listener.
	Port int `json:"port,omitempty"`

	Credentials postlib.Credentials `json:"twitter"`
}

func defaultConfig() *Config {
	return &Config{
		Weekday: 4, // Friday
		Time:    "9:00:00",
		Message: "It's Friday!",
	}
}

// DefaultPath returns the config file location, honoring the env override.
func DefaultPath() string {
	if p := os.Getenv(common.ConfigPathEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "fridayd", "config.json")
}

// Load reads the config file at path, creating a default one (and returning
// ErrConfigCreated) when it does not exist. Environment overrides are
// applied after the file is read.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err = writeDefault(path); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrConfigCreated, path)
	}

	cfg := defaultConfig()
	if err = json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyEnv()
	if cfg.QueueFile == "" {
		cfg.QueueFile = filepath.Join(filepath.Dir(path), "queue.db")
	}
	return cfg, nil
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(defaultConfig(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0600)
}

func (c *Config) applyEnv() {
	setString := func(dst *string, env string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	setString(&c.Credentials.ConsumerKey, common.ConsumerKeyEnv)
	setString(&c.Credentials.ConsumerSecret, common.ConsumerSecretEnv)
	setString(&c.Credentials.AccessTokenKey, common.AccessTokenKeyEnv)
	setString(&c.Credentials.AccessTokenSecret, common.AccessTokenSecretEnv)
	setString(&c.Message, common.MessageEnv)
	setString(&c.Time, common.TimeEnv)
	setString(&c.Proxy, common.ProxyEnv)
	if v := os.Getenv(common.WeekdayEnv); v != "" {
		if wd, err := strconv.Atoi(v); err == nil {
			c.Weekday = wd
		}
	}
}

// Validate checks the fields the daemon cannot start without.
func (c *Config) Validate() error {
	if c.Weekday < 0 || c.Weekday > 6 {
		return fmt.Errorf("weekday must be in range [0, 6], got %d", c.Weekday)
	}
	if c.Time == "" && c.CronSchedule == "" {
		return errors.New("no trigger time configured")
	}
	if _, err := c.ChunkSizeBytes(); err != nil {
		return err
	}
	return c.Credentials.Validate()
}

// ChunkSizeBytes parses the configured chunk size; 0 means the default.
func (c *Config) ChunkSizeBytes() (int64, error) {
	return postlib.ParseSize(c.ChunkSize)
}

// TCPPort returns the fallback port, honoring the env override.
func (c *Config) TCPPort() int {
	if v := os.Getenv(common.TCPPortEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			return port
		}
	}
	if c.Port > 0 {
		return c.Port
	}
	return common.DefaultTCPPort
}
