package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
)

const (
	TableURL    = "https://competitions.volleyzone.co.uk/wp-admin/admin-ajax.php?action=fetch_table_by_competition"
	PageTitle   = "Fixture and Results"
	ContentType = "application/x-www-form-urlencoded; charset=UTF-8"
	UserAgent   = "volleyzone-tables/1.0"
	Timeout     = 30 * time.Second

	// TablesField is the envelope key holding the HTML fragment.
	TablesField = "CompTables"
)

// Scraper handles fetching league tables from the Volleyzone AJAX endpoint
type Scraper struct {
	client *resty.Client
	url    string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL overrides the endpoint the table request is posted to.
func WithURL(endpoint string) Option {
	return func(s *Scraper) {
		if endpoint != "" {
			s.url = endpoint
		}
	}
}

// WithTimeout sets the overall timeout of a single request. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.SetTimeout(d)
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: resty.New().
			SetTimeout(Timeout).
			SetHeader("User-Agent", UserAgent),
		url: TableURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the endpoint table requests are posted to
func (s *Scraper) URL() string {
	return s.url
}

// requestBody encodes the form body for a competition
func requestBody(competitionID string) string {
	form := url.Values{}
	form.Set("competition_id", competitionID)
	form.Set("pageTitle", PageTitle)
	return form.Encode()
}

// FetchTable posts a table request for competitionID and returns the HTML
// fragment found in the CompTables field of the JSON response.
func (s *Scraper) FetchTable(ctx context.Context, competitionID string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", ContentType).
		SetBody(requestBody(competitionID)).
		Post(s.url)
	if err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "posting table request for competition %s", competitionID), ErrRequest)
	}

	if !resp.IsSuccess() {
		return "", crerr.Wrapf(ErrUnexpectedStatus, "competition %s: %d", competitionID, resp.StatusCode())
	}

	return extractTables(resp.Body())
}

var utf8BOM = []byte("\xef\xbb\xbf")

// extractTables decodes the JSON envelope and pulls out the CompTables string
func extractTables(body []byte) (string, error) {
	body = bytes.TrimPrefix(body, utf8BOM)

	var envelope map[string]any
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return "", crerr.Mark(crerr.Wrap(err, "decoding response"), ErrDecode)
	}

	raw, ok := envelope[TablesField]
	if !ok {
		return "", crerr.Wrapf(ErrMissingField, "response field %q", TablesField)
	}

	html, ok := raw.(string)
	if !ok {
		return "", crerr.Wrapf(ErrWrongType, "response field %q is %s, want string", TablesField, jsonKind(raw))
	}

	return html, nil
}

// jsonKind names the JSON type of a decoded value for error messages
func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
