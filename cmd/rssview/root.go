package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/glabrego/rssview/internal/app"
	"github.com/glabrego/rssview/internal/config"
	"github.com/glabrego/rssview/internal/feed"
	"github.com/glabrego/rssview/internal/logging"
	"github.com/glabrego/rssview/internal/render/article"
	"github.com/glabrego/rssview/internal/render/tree"
	"github.com/glabrego/rssview/internal/tui/browse"
	"github.com/glabrego/rssview/internal/tui/picker"
	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
)

const fallbackWidth = 80

// openTTY gives the browser a keyboard when the document itself arrives
// on standard input.
var openTTY = func() (io.ReadCloser, error) {
	return os.Open("/dev/tty")
}

type rootOptions struct {
	url       string
	file      string
	timeout   int
	width     int
	picker    string
	noColor   bool
	verbosity int
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "rssview [url | file]",
		Short: "Browse the items of an RSS, Atom, JSON or YAML feed in the terminal",
		Long: `rssview prints a summary table of a feed's items and lets you open any of
them to see every field, with HTML content rendered as terminal text.

The source is a feed URL, a local file, or "-" for standard input. A single
positional argument is taken as a URL when it starts with http:// or
https:// and as a file otherwise.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, stdin, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.url, "url", "u", "", "feed URL to fetch (env RSSVIEW_URL)")
	flags.StringVarP(&opts.file, "file", "f", "", `feed file to read, "-" for stdin (env RSSVIEW_FILE)`)
	flags.IntVarP(&opts.timeout, "timeout", "t", 10, "HTTP timeout in seconds (env RSSVIEW_TIMEOUT)")
	flags.IntVarP(&opts.width, "width", "w", 0, "wrap width for HTML content, 0 detects the terminal (env RSSVIEW_WIDTH)")
	flags.StringVar(&opts.picker, "picker", config.PickerPrompt, "item selector: prompt or tui (env RSSVIEW_PICKER)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colors and text styles (env RSSVIEW_NO_COLOR, NO_COLOR)")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "log more detail to stderr (repeat for debug and trace)")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts rootOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	applyFlags(cmd, &cfg, opts, args)

	logging.Setup(opts.verbosity, stderr, cfg.NoColor || !tuitheme.IsTerminal(stderr))
	log.Debug().Str("command", cmd.Name()).Msg("command started")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	svc := app.NewService(feed.NewClient(&http.Client{Timeout: cfg.Timeout}), stdin)
	doc, err := svc.Load(cmd.Context(), app.Source{URL: cfg.URL, File: cfg.File})
	if err != nil {
		return err
	}

	in := stdin
	if cfg.File == config.StdinFile {
		if tty, err := openTTY(); err == nil {
			defer tty.Close()
			in = tty
		} else {
			log.Debug().Err(err).Msg("no terminal for prompts, input ends with the document")
		}
	}

	renderer := tuitheme.RendererFor(stdout, cfg.NoColor)
	th := tuitheme.New(renderer)
	width := resolveWidth(cfg.Width, stdout)
	converter := article.NewConverter(renderer, width, article.DefaultOptions)

	browserOpts := []browse.Option{
		browse.WithTheme(th),
		browse.WithMarkupFactory(func(link string) tree.MarkupConverter {
			return converter.ForSource(link)
		}),
	}
	if cfg.Picker == config.PickerTUI {
		if tuitheme.IsTerminal(in) && tuitheme.IsTerminal(stdout) {
			browserOpts = append(browserOpts, browse.WithPicker(picker.New(in, stdout, th)))
		} else {
			log.Info().Msg("tui picker needs a terminal, using the prompt")
		}
	}

	browse.New(in, stdout, tree.New(stdout, th, converter), browserOpts...).Browse(doc)
	return nil
}

// applyFlags layers explicitly set flags and the positional source over
// the environment configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts rootOptions, args []string) {
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.URL = strings.TrimSpace(opts.url)
		cfg.File = ""
	}
	if flags.Changed("file") {
		cfg.File = strings.TrimSpace(opts.file)
		if !flags.Changed("url") {
			cfg.URL = ""
		}
	}
	if len(args) == 1 && !flags.Changed("url") && !flags.Changed("file") {
		source := strings.TrimSpace(args[0])
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			cfg.URL, cfg.File = source, ""
		} else {
			cfg.URL, cfg.File = "", source
		}
	}
	if flags.Changed("timeout") {
		cfg.Timeout = time.Duration(opts.timeout) * time.Second
	}
	if flags.Changed("width") {
		cfg.Width = opts.width
	}
	if flags.Changed("picker") {
		cfg.Picker = strings.ToLower(strings.TrimSpace(opts.picker))
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
}

func resolveWidth(configured int, out io.Writer) int {
	if configured > 0 {
		return configured
	}
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallbackWidth
}
