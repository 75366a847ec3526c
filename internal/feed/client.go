// Package feed retrieves RSS and Atom documents and turns them into
// field trees.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/glabrego/rssview/internal/fieldtree"
	"github.com/glabrego/rssview/internal/logging"
)

const DefaultTimeout = 10 * time.Second

const acceptHeader = "application/rss+xml, application/atom+xml, application/rdf+xml;q=0.9, application/xml;q=0.8, text/xml;q=0.8, */*;q=0.1"

var ErrUnexpectedStatus = errors.New("unexpected status")

type Client struct {
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

// NewClient returns a Client using httpClient, or a client with
// DefaultTimeout when httpClient is nil.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		http:      httpClient,
		userAgent: "rssview/1.0",
		log:       logging.For("feed"),
	}
}

// Fetch downloads the feed at feedURL and parses it with ParseXML.
func (c *Client) Fetch(ctx context.Context, feedURL string) (fieldtree.Node, error) {
	start := time.Now()
	defer logging.LogDuration(c.log, start, "fetch feed")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(feedURL), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", feedURL).
		Int("status", resp.StatusCode).
		Str("content_type", resp.Header.Get("Content-Type")).
		Msg("feed response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch feed: %w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	doc, err := ParseXML(resp.Body)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
