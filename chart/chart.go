package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/chartfed/fetch"
)

// DefaultBaseURL is the chart site all requests target unless overridden.
const DefaultBaseURL = "https://www.billboard.com"

// Options configures snapshot construction. The zero value (or nil) uses the
// fetch package defaults and the production base URL.
type Options struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// MaxRetries is the transport retry budget for transient failures.
	// Weekly charts only; year-end requests are issued once.
	MaxRetries int
	// UserAgent overrides the request user agent.
	UserAgent string
	// BaseURL overrides the chart site root, mainly for tests.
	BaseURL string
}

func (o *Options) baseURL() string {
	if o != nil && o.BaseURL != "" {
		return o.BaseURL
	}
	return DefaultBaseURL
}

func (o *Options) client(retries int) *fetch.Client {
	timeout := time.Duration(0)
	userAgent := ""
	if o != nil {
		timeout = o.Timeout
		userAgent = o.UserAgent
	}
	return fetch.New(timeout, retries, userAgent)
}

// Chart represents one weekly chart for one date: a single fetched-and-parsed
// snapshot. It is populated by exactly one parse pass and owned by the caller
// afterwards; snapshots share no state.
//
// A snapshot with zero entries is a valid result, not an error. It signals a
// layout mismatch or a well-formed but unpublished chart/date combination,
// which the remote site does not distinguish from a real chart.
type Chart struct {
	// Name is the stable slug identifying the chart series, e.g. "hot-100".
	Name string `json:"name"`
	// Title is the human-readable chart name from the page metadata.
	Title string `json:"title"`
	// Date is the chart date in YYYY-MM-DD form. Empty means the snapshot
	// represents the current chart and the page exposed no parseable date.
	Date string `json:"date"`
	// PreviousDate and NextDate are raw slug fragments from the page's
	// adjacent-chart navigation links, when present.
	PreviousDate string `json:"previousDate"`
	NextDate     string `json:"nextDate"`
	// Entries is ordered by ascending rank, matching document order.
	Entries []ChartEntry `json:"entries"`

	client  *fetch.Client
	baseURL string
}

// NewChart constructs a weekly chart snapshot and fetches it immediately.
// An empty date fetches the latest chart. Returns ErrInvalidDate before any
// network call if the date is malformed or not a real calendar date.
func NewChart(name, date string, opts *Options) (*Chart, error) {
	c, err := NewChartDeferred(name, date, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Fetch(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewChartDeferred constructs a weekly chart snapshot without fetching it.
// Call Fetch to populate it.
func NewChartDeferred(name, date string, opts *Options) (*Chart, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	retries := fetch.DefaultMaxRetries
	if opts != nil && opts.MaxRetries > 0 {
		retries = opts.MaxRetries
	}
	return &Chart{
		Name:    name,
		Date:    date,
		Entries: []ChartEntry{},
		client:  opts.client(retries),
		baseURL: opts.baseURL(),
	}, nil
}

// Fetch GETs the chart page and parses it into the snapshot, replacing any
// previously fetched entries.
func (c *Chart) Fetch() error {
	url := fmt.Sprintf("%s/charts/%s", c.baseURL, c.Name)
	if c.Date != "" {
		url = fmt.Sprintf("%s/%s", url, c.Date)
	}
	doc, err := getDocument(c.client, url)
	if err != nil {
		return err
	}
	c.Entries = []ChartEntry{}
	return parseChartPage(c, doc)
}

// Len returns the number of entries in the snapshot. Zero may indicate a
// failed or bad request.
func (c *Chart) Len() int {
	return len(c.Entries)
}

// Entry returns the (i + 1)-th chart entry; Entry(0) is the top of the chart.
func (c *Chart) Entry(i int) ChartEntry {
	return c.Entries[i]
}

// String returns the chart as a human-readable, typically multi-line string.
func (c *Chart) String() string {
	var header string
	if c.Date == "" {
		header = fmt.Sprintf("%s chart (current)", c.Name)
	} else {
		header = fmt.Sprintf("%s chart from %s", c.Name, c.Date)
	}
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)))
	for _, entry := range c.Entries {
		fmt.Fprintf(&b, "\n%d. %s", entry.Rank, entry)
	}
	return b.String()
}

// JSON returns the snapshot as a canonical key-sorted, indented JSON string.
// This is useful for caching; ChartFromJSON reverses it.
func (c *Chart) JSON() (string, error) {
	return canonicalJSON(c)
}

// ChartFromJSON reconstructs a snapshot from its canonical JSON dump. The
// result carries no transport configuration and cannot be re-fetched.
func ChartFromJSON(data string) (*Chart, error) {
	var c Chart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart: %w", err)
	}
	return &c, nil
}

// getDocument performs one orchestrated fetch: GET, status classification,
// HTML parse. A 404 means the chart slug does not exist; other non-2xx
// statuses are transport failures.
func getDocument(client *fetch.Client, url string) (*goquery.Document, error) {
	resp, err := client.Get(context.Background(), url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrChartNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
	if err != nil {
		return nil, &ParseError{Field: "document", Err: err}
	}
	return doc, nil
}
