// Package browse runs the interactive item browser: a summary table, a
// numeric selection prompt and a detail view per item.
package browse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/glabrego/rssview/internal/fieldtree"
	"github.com/glabrego/rssview/internal/logging"
	"github.com/glabrego/rssview/internal/render/tree"
	tuitheme "github.com/glabrego/rssview/internal/tui/theme"
	"github.com/glabrego/rssview/internal/tui/view"
)

type State int

const (
	ListView State = iota
	Detail
	Exit
)

func (s State) String() string {
	switch s {
	case ListView:
		return "list"
	case Detail:
		return "detail"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

const (
	MsgNoItems       = "No items found in the feed."
	MsgInvalidChoice = "Invalid choice. Please enter a number between 1 and %d, or q to quit."
	MsgGoodbye       = "Goodbye!"
	PromptChoose     = "Choose an item to view its contents (1-%d, q to quit): "
	PromptAnother    = "View another item? [Y/n]: "
	QuitToken        = "q"
)

// Picker is an alternative ListView front end. ok is false when the user
// quit without choosing.
type Picker interface {
	Pick(items fieldtree.Sequence, title string) (index int, ok bool, err error)
}

// MarkupFactory returns the markup converter to use for an item whose
// link is link.
type MarkupFactory func(link string) tree.MarkupConverter

type Browser struct {
	in        *bufio.Reader
	out       io.Writer
	renderer  *tree.Renderer
	theme     tuitheme.Theme
	columns   []view.Column
	picker    Picker
	markupFor MarkupFactory
	log       zerolog.Logger
}

type Option func(*Browser)

func WithTheme(th tuitheme.Theme) Option {
	return func(b *Browser) { b.theme = th }
}

func WithColumns(columns []view.Column) Option {
	return func(b *Browser) {
		if len(columns) > 0 {
			b.columns = columns
		}
	}
}

func WithPicker(p Picker) Option {
	return func(b *Browser) { b.picker = p }
}

func WithMarkupFactory(f MarkupFactory) Option {
	return func(b *Browser) { b.markupFor = f }
}

// New builds a Browser reading answers from in and writing to out. When
// renderer is nil a plain renderer on out is used.
func New(in io.Reader, out io.Writer, renderer *tree.Renderer, opts ...Option) *Browser {
	if renderer == nil {
		renderer = tree.New(out, nil, nil)
	}
	b := &Browser{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: renderer,
		theme:    tuitheme.New(tuitheme.RendererFor(out, true)),
		columns:  view.DefaultColumns,
		log:      logging.For("browse"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Browse runs the browser over doc until the user quits or input ends.
func (b *Browser) Browse(doc fieldtree.Node) {
	items, ok := fieldtree.Items(doc)
	if !ok || items.Len() == 0 {
		b.log.Debug().Bool("has_items_sequence", ok).Msg("document has nothing to browse")
		b.println(b.theme.StateWarn.Render(MsgNoItems))
		b.exit()
		return
	}

	table := view.BuildTable(items, b.columns)
	title := fieldtree.Field(doc, "title")

	state := ListView
	selected := 0
	for state != Exit {
		prev := state
		switch state {
		case ListView:
			selected, state = b.listView(items, table, title)
		case Detail:
			state = b.detail(items.Items[selected])
		}
		b.log.Debug().Stringer("from", prev).Stringer("to", state).Int("selected", selected+1).Msg("transition")
	}
	b.exit()
}

func (b *Browser) listView(items fieldtree.Sequence, table view.Table, title string) (int, State) {
	if b.picker != nil {
		idx, ok, err := b.picker.Pick(items, title)
		if err == nil {
			if !ok || idx < 0 || idx >= items.Len() {
				return 0, Exit
			}
			return idx, Detail
		}
		b.log.Warn().Err(err).Msg("item picker failed, falling back to the prompt")
		b.picker = nil
	}

	if title != "" {
		b.println(view.PickerTitle(title, b.theme))
		b.println("")
	}
	fmt.Fprint(b.out, table.Render(b.theme))

	n := items.Len()
	for {
		answer, ok := b.readLine(fmt.Sprintf(PromptChoose, n))
		if !ok || strings.EqualFold(answer, QuitToken) {
			return 0, Exit
		}
		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > n {
			b.println(b.theme.StateWarn.Render(fmt.Sprintf(MsgInvalidChoice, n)))
			continue
		}
		return idx - 1, Detail
	}
}

func (b *Browser) detail(item fieldtree.Node) State {
	renderer := b.renderer
	if b.markupFor != nil {
		link := fieldtree.Field(item, view.DefaultColumns[2].Fields...)
		renderer = renderer.WithMarkup(b.markupFor(link))
	}
	b.println("")
	renderer.Render(item, 0)
	b.println("")

	answer, ok := b.readLine(PromptAnother)
	if !ok {
		return Exit
	}
	switch strings.ToLower(answer) {
	case "n", "no":
		return Exit
	default:
		return ListView
	}
}

// readLine prompts and reads one trimmed line of any length. A final line
// without a newline still counts; ok is false once input is exhausted.
func (b *Browser) readLine(prompt string) (string, bool) {
	fmt.Fprint(b.out, b.theme.Prompt.Render(prompt))
	line, err := b.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if !errors.Is(err, io.EOF) {
			b.log.Debug().Err(err).Msg("input read failed")
		}
		b.println("")
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (b *Browser) exit() {
	b.println(b.theme.Notice.Render(MsgGoodbye))
}

func (b *Browser) println(s string) {
	fmt.Fprintln(b.out, s)
}
