// Package postgrest builds clients for a PostgREST endpoint such as the one
// Supabase exposes under /rest/v1.
package postgrest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	pgrst "github.com/supabase-community/postgrest-go"
)

const restPath = "/rest/v1"

var (
	ErrMissingURL = errors.New("store url is not configured")
	ErrMissingKey = errors.New("store service key is not configured")
)

// Error is a failure reported by the store itself, as opposed to a transport
// failure.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type Config struct {
	URL        string
	ServiceKey string
}

type Client struct {
	rest *pgrst.Client
}

// Query holds the read modifiers of a select request.
type Query struct {
	Select     string
	OrderBy    string
	Descending bool
	Limit      int
}

// NewClient returns a client for cfg authenticated with the service key. It
// does no I/O.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrMissingURL
	}
	if strings.TrimSpace(cfg.ServiceKey) == "" {
		return nil, ErrMissingKey
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid store url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid store url %q: scheme must be http or https", cfg.URL)
	}

	rest := pgrst.NewClient(strings.TrimRight(cfg.URL, "/")+restPath, "", map[string]string{
		"apikey":        cfg.ServiceKey,
		"Authorization": "Bearer " + cfg.ServiceKey,
	})
	if rest.ClientError != nil {
		return nil, rest.ClientError
	}

	return &Client{rest: rest}, nil
}

// Select reads rows of table into out, which must be a pointer to a slice.
func (c *Client) Select(ctx context.Context, table string, q Query, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	columns := q.Select
	if columns == "" {
		columns = "*"
	}

	builder := c.rest.From(table).Select(columns, "", false)
	if q.OrderBy != "" {
		builder = builder.Order(q.OrderBy, &pgrst.OrderOpts{Ascending: !q.Descending})
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit, "")
	}

	_, err := builder.ExecuteTo(out)
	return storeError(err)
}

// InsertSingle inserts row into table and decodes the stored row into out.
func (c *Client) InsertSingle(ctx context.Context, table string, row any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.rest.From(table).
		Insert(row, false, "", "representation", "").
		Single().
		ExecuteTo(out)
	return storeError(err)
}

// storeError turns the "(code) message" errors of the REST library back into
// an *Error so callers see the store's own message.
func storeError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "(") {
		return err
	}
	code, message, ok := strings.Cut(msg[1:], ") ")
	if !ok {
		return err
	}
	return &Error{Code: code, Message: message}
}
