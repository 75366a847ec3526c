package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"RSSVIEW_URL", "RSSVIEW_FILE", "RSSVIEW_TIMEOUT", "RSSVIEW_WIDTH", "RSSVIEW_PICKER", "RSSVIEW_NO_COLOR", "NO_COLOR"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadFromEnv_UsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("RSSVIEW_URL", "https://example.com/feed.xml")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Timeout)
	}
	if cfg.Width != 0 {
		t.Fatalf("unexpected width: %d", cfg.Width)
	}
	if cfg.Picker != PickerPrompt {
		t.Fatalf("unexpected picker: %s", cfg.Picker)
	}
	if cfg.NoColor {
		t.Fatal("expected color enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoadFromEnv_ReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RSSVIEW_FILE", "feed.json")
	t.Setenv("RSSVIEW_TIMEOUT", "3")
	t.Setenv("RSSVIEW_WIDTH", "100")
	t.Setenv("RSSVIEW_PICKER", " TUI ")
	t.Setenv("RSSVIEW_NO_COLOR", "true")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.File != "feed.json" || cfg.Timeout != 3*time.Second || cfg.Width != 100 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Picker != PickerTUI {
		t.Fatalf("unexpected picker: %s", cfg.Picker)
	}
	if !cfg.NoColor {
		t.Fatal("expected RSSVIEW_NO_COLOR to disable color")
	}
}

func TestLoadFromEnv_HonorsNoColorConvention(t *testing.T) {
	clearEnv(t)
	t.Setenv("NO_COLOR", "1")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if !cfg.NoColor {
		t.Fatal("expected NO_COLOR to disable color")
	}
}

func TestLoadFromEnv_RejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("RSSVIEW_TIMEOUT", "soon")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for malformed timeout")
	}

	clearEnv(t)
	t.Setenv("RSSVIEW_WIDTH", "wide")
	if _, err := LoadFromEnv(); err == nil {
		t.Fatal("expected error for malformed width")
	}
}

func TestValidate_RequiresExactlyOneSource(t *testing.T) {
	base := Config{Timeout: time.Second, Picker: PickerPrompt}

	if err := base.Validate(); err == nil {
		t.Fatal("expected error without a source")
	}

	both := base
	both.URL = "https://example.com/feed"
	both.File = "feed.xml"
	if err := both.Validate(); err == nil {
		t.Fatal("expected error with two sources")
	}

	stdin := base
	stdin.File = StdinFile
	if err := stdin.Validate(); err != nil {
		t.Fatalf("expected stdin source to validate: %v", err)
	}
}

func TestValidate_Fields(t *testing.T) {
	valid := Config{URL: "https://example.com/feed", Timeout: time.Second, Picker: PickerPrompt}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "url scheme", mutate: func(c *Config) { c.URL = "ftp://example.com/feed" }},
		{name: "timeout", mutate: func(c *Config) { c.Timeout = 0 }},
		{name: "width", mutate: func(c *Config) { c.Width = -1 }},
		{name: "picker", mutate: func(c *Config) { c.Picker = "fancy" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}
