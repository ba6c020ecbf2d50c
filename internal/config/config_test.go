package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fridayd/fridayd/common"
	"github.com/fridayd/fridayd/pkg/postlib"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fridayd", "config.json")

	_, err := Load(path)
	if !errors.Is(err, ErrConfigCreated) {
		t.Fatalf("Load on missing file error = %v, want ErrConfigCreated", err)
	}
	if _, err = os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	// The generated file parses but has no credentials yet.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of generated file: %v", err)
	}
	if cfg.Weekday != 4 || cfg.Time != "9:00:00" {
		t.Errorf("default trigger = weekday %d at %q, want 4 at 9:00:00", cfg.Weekday, cfg.Time)
	}
	if err = cfg.Validate(); !errors.Is(err, postlib.ErrMissingCredentials) {
		t.Errorf("Validate of blank config = %v, want ErrMissingCredentials", err)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"weekday": 2,
		"time": "18:30",
		"message": "midweek",
		"media_files": ["/srv/media", "https://example.com/pic.png"],
		"chunk_size": "512KB",
		"twitter": {
			"consumer_key": "ck",
			"consumer_secret": "cs",
			"access_token_key": "atk",
			"access_token_secret": "ats"
		}
	}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err = cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Weekday != 2 || cfg.Time != "18:30" || cfg.Message != "midweek" {
		t.Errorf("unexpected trigger fields: %+v", cfg)
	}
	if len(cfg.MediaFiles) != 2 {
		t.Errorf("media files = %v", cfg.MediaFiles)
	}
	size, err := cfg.ChunkSizeBytes()
	if err != nil {
		t.Fatalf("ChunkSizeBytes: %v", err)
	}
	if size != 512*postlib.KB {
		t.Errorf("chunk size = %d, want %d", size, 512*postlib.KB)
	}
	if cfg.QueueFile == "" {
		t.Error("queue file default not applied")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"weekday":4,"time":"9:00"}`), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(common.ConsumerKeyEnv, "env-ck")
	t.Setenv(common.MessageEnv, "from env")
	t.Setenv(common.WeekdayEnv, "0")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Credentials.ConsumerKey != "env-ck" {
		t.Errorf("consumer key = %q, want env override", cfg.Credentials.ConsumerKey)
	}
	if cfg.Message != "from env" {
		t.Errorf("message = %q, want env override", cfg.Message)
	}
	if cfg.Weekday != 0 {
		t.Errorf("weekday = %d, want env override 0", cfg.Weekday)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := defaultConfig()
		cfg.Credentials = postlib.Credentials{
			ConsumerKey:       "ck",
			ConsumerSecret:    "cs",
			AccessTokenKey:    "atk",
			AccessTokenSecret: "ats",
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "weekday out of range", mutate: func(c *Config) { c.Weekday = 7 }, wantErr: true},
		{name: "no trigger", mutate: func(c *Config) { c.Time = "" }, wantErr: true},
		{name: "cron only is fine", mutate: func(c *Config) { c.Time = ""; c.CronSchedule = "0 9 * * 5" }},
		{name: "bad chunk size", mutate: func(c *Config) { c.ChunkSize = "lots" }, wantErr: true},
		{name: "missing credentials", mutate: func(c *Config) { c.Credentials.AccessTokenKey = "" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); tt.wantErr != (err != nil) {
				t.Errorf("Validate() = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestTCPPort(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.TCPPort(); got != common.DefaultTCPPort {
		t.Errorf("TCPPort() = %d, want default %d", got, common.DefaultTCPPort)
	}
	cfg.Port = 9999
	if got := cfg.TCPPort(); got != 9999 {
		t.Errorf("TCPPort() = %d, want configured 9999", got)
	}
	t.Setenv(common.TCPPortEnv, "5555")
	if got := cfg.TCPPort(); got != 5555 {
		t.Errorf("TCPPort() = %d, want env override 5555", got)
	}
}
