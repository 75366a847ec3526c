// Package app resolves the configured source into a feed document.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/glabrego/rssview/internal/feed"
	"github.com/glabrego/rssview/internal/fieldtree"
	"github.com/glabrego/rssview/internal/logging"
)

type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (fieldtree.Node, error)
}

// Source names where the document comes from. Exactly one of URL and File
// is set; File "-" is standard input.
type Source struct {
	URL  string
	File string
}

type Service struct {
	fetcher  Fetcher
	stdin    io.Reader
	openFile func(name string) (io.ReadCloser, error)
	log      zerolog.Logger
}

func NewService(fetcher Fetcher, stdin io.Reader) *Service {
	return &Service{
		fetcher: fetcher,
		stdin:   stdin,
		openFile: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
		log: logging.For("app"),
	}
}

// Load returns the document for src. Files and stdin holding XML are
// parsed as feeds; anything else is read as JSON or YAML.
func (s *Service) Load(ctx context.Context, src Source) (fieldtree.Node, error) {
	start := time.Now()
	defer logging.LogDuration(s.log, start, "load document")

	switch {
	case src.URL != "" && src.File != "":
		return nil, errors.New("load document: both URL and file given")
	case src.URL != "":
		if s.fetcher == nil {
			return nil, errors.New("load document: no fetcher configured")
		}
		s.log.Info().Str("url", src.URL).Msg("fetching feed")
		return s.fetcher.Fetch(ctx, src.URL)
	case src.File == "-":
		if s.stdin == nil {
			return nil, errors.New("load document: no standard input")
		}
		return s.decode(s.stdin, "stdin")
	case src.File != "":
		f, err := s.openFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		return s.decode(f, src.File)
	default:
		return nil, errors.New("load document: no source given")
	}
}

func (s *Service) decode(r io.Reader, name string) (fieldtree.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	if looksLikeXML(data) {
		s.log.Debug().Str("source", name).Msg("decoding as feed xml")
		return feed.ParseXML(bytes.NewReader(data))
	}
	s.log.Debug().Str("source", name).Msg("decoding as json/yaml")
	doc, err := fieldtree.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}

func looksLikeXML(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '<'
}
