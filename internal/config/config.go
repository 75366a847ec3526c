package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	PickerPrompt = "prompt"
	PickerTUI    = "tui"
)

const (
	defaultTimeout = 10 * time.Second
	// StdinFile as the file source reads the document from standard input.
	StdinFile = "-"
)

// Config holds runtime settings for the CLI app. A zero Width means the
// terminal width is detected at startup.
type Config struct {
	URL     string
	File    string
	Timeout time.Duration
	Width   int
	Picker  string
	NoColor bool
}

// LoadFromEnv reads RSSVIEW_* variables and applies defaults. It does not
// require a source; callers validate after applying flag overrides.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		URL:     strings.TrimSpace(os.Getenv("RSSVIEW_URL")),
		File:    strings.TrimSpace(os.Getenv("RSSVIEW_FILE")),
		Timeout: defaultTimeout,
		Picker:  strings.ToLower(strings.TrimSpace(os.Getenv("RSSVIEW_PICKER"))),
		NoColor: envBool("RSSVIEW_NO_COLOR") || os.Getenv("NO_COLOR") != "",
	}

	if raw := os.Getenv("RSSVIEW_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("RSSVIEW_TIMEOUT must be a whole number of seconds: %s", raw)
		}
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if raw := os.Getenv("RSSVIEW_WIDTH"); raw != "" {
		width, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("RSSVIEW_WIDTH must be an integer: %s", raw)
		}
		cfg.Width = width
	}
	if cfg.Picker == "" {
		cfg.Picker = PickerPrompt
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.URL == "" && c.File == "" {
		return errors.New("a feed URL or file is required")
	}
	if c.URL != "" && c.File != "" {
		return errors.New("give either a feed URL or a file, not both")
	}
	if c.URL != "" && !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("feed URL must start with http:// or https://: %s", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("Timeout must be positive: %s", c.Timeout)
	}
	if c.Width < 0 {
		return fmt.Errorf("Width must not be negative: %d", c.Width)
	}
	if c.Picker != PickerPrompt && c.Picker != PickerTUI {
		return fmt.Errorf("Picker must be prompt or tui: %s", c.Picker)
	}
	return nil
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(name)))
	return err == nil && v
}
