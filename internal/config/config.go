package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds the runtime settings, read from the environment and an
// optional .env file.
type Config struct {
	Title         string
	Port          int
	LogLevel      logrus.Level
	MDNS          bool
	BrowseTimeout time.Duration
	ExportDir     string
}

func Default() Config {
	return Config{
		Title:         "Square Board",
		Port:          8888,
		LogLevel:      logrus.InfoLevel,
		MDNS:          true,
		BrowseTimeout: 5 * time.Second,
		ExportDir:     ".",
	}
}

// Load reads the given .env files (missing files are fine) and then the
// SQUAREBOARD_* variables.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			logrus.WithField("file", f).Debug("No env file, using process environment")
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function so tests don't have to
// touch the process environment.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("SQUAREBOARD_TITLE"); ok && v != "" {
		cfg.Title = v
	}
	if v, ok := lookup("SQUAREBOARD_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("%w: SQUAREBOARD_PORT=%q", ErrInvalidConfig, v)
		}
		cfg.Port = port
	}
	if v, ok := lookup("SQUAREBOARD_LOG_LEVEL"); ok && v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: SQUAREBOARD_LOG_LEVEL=%q", ErrInvalidConfig, v)
		}
		cfg.LogLevel = lvl
	}
	if v, ok := lookup("SQUAREBOARD_MDNS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: SQUAREBOARD_MDNS=%q", ErrInvalidConfig, v)
		}
		cfg.MDNS = b
	}
	if v, ok := lookup("SQUAREBOARD_BROWSE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("%w: SQUAREBOARD_BROWSE_TIMEOUT=%q", ErrInvalidConfig, v)
		}
		cfg.BrowseTimeout = d
	}
	if v, ok := lookup("SQUAREBOARD_EXPORT_DIR"); ok && v != "" {
		cfg.ExportDir = v
	}
	return cfg, nil
}

// SetupLogging applies the configured level and the text formatter used
// across the app.
func (c Config) SetupLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(c.LogLevel)
}
