package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nikmy/fleetsync/internal/api"
	"github.com/nikmy/fleetsync/internal/fleet"
	"github.com/nikmy/fleetsync/internal/notify"
	"github.com/nikmy/fleetsync/internal/puller"
	"github.com/nikmy/fleetsync/internal/remote"
	"github.com/nikmy/fleetsync/internal/storage"
	"github.com/nikmy/fleetsync/pkg/environment"
	"github.com/nikmy/fleetsync/pkg/errors"
)

const defaultShutdownTimeout = 10 * time.Second

type Config struct {
	Environment environment.Env       `yaml:"Environment"`
	Storage     storage.Config        `yaml:"Storage"`
	Remote      remote.Config         `yaml:"Remote"`
	Collections fleet.Config          `yaml:"Collections"`
	Refresh     puller.Config         `yaml:"Refresh"`
	HTTP        api.Config            `yaml:"HTTP"`
	Telegram    notify.TelegramConfig `yaml:"Telegram"`

	ShutdownTimeout time.Duration `yaml:"ShutdownTimeout"`
}

type flags struct {
	configPath string
	env        string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "config.yaml", "path to config file")
	flag.StringVar(&f.env, "env", "", "environment (dev, prod), overrides config")
	flag.Parse()
	return f
}

func loadConfig(f flags) (*Config, error) {
	path, err := filepath.Abs(f.configPath)
	if err != nil {
		return nil, errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFailf(err, "read %q", path)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	if f.env != "" {
		cfg.Environment = environment.FromString(f.env)
	}

	return cfg, nil
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, errors.WrapFail(err, "parse yaml")
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return &cfg, nil
}
