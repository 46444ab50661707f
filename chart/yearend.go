package chart

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pevans/chartfed/fetch"
)

// YearEndChart represents one annual retrospective chart for one year.
// Year-end charts carry no weekly trend data, so their entries are the narrow
// YearEndEntry record.
type YearEndChart struct {
	// Name is the stable slug identifying the series, e.g. "hot-100-songs".
	Name string `json:"name"`
	// Title is the human-readable chart name from the page metadata.
	Title string `json:"title"`
	// Year is the resolved, clamped year the snapshot targets.
	Year int `json:"year"`
	// PreviousYear is always Year - 1. It is advisory and unvalidated: it can
	// point below the series' earliest published year, and callers paging
	// backwards must stop on an empty snapshot themselves.
	PreviousYear int `json:"previousYear"`
	// NextYear is Year + 1, or 0 once Year is the latest available year
	// (the current year's retrospective is never out yet).
	NextYear int `json:"nextYear"`
	// Entries is ordered by ascending rank, matching document order.
	Entries []YearEndEntry `json:"entries"`

	client  *fetch.Client
	baseURL string
}

// NewYearEnd constructs a year-end chart snapshot and fetches it immediately.
// The date may be empty (previous calendar year), a bare "YYYY", or a full
// "YYYY-MM-DD"; anything else returns ErrInvalidDate. The resolved year is
// clamped to the series' published range before fetching.
func NewYearEnd(name, date string, opts *Options) (*YearEndChart, error) {
	y, err := NewYearEndDeferred(name, date, opts)
	if err != nil {
		return nil, err
	}
	if err := y.Fetch(); err != nil {
		return nil, err
	}
	return y, nil
}

// NewYearEndDeferred constructs a year-end chart snapshot without fetching
// it. Call Fetch to populate it.
func NewYearEndDeferred(name, date string, opts *Options) (*YearEndChart, error) {
	year, err := ResolveYear(name, date)
	if err != nil {
		return nil, err
	}
	y := &YearEndChart{
		Name:         name,
		Year:         year,
		PreviousYear: year - 1,
		Entries:      []YearEndEntry{},
		client:       opts.client(0),
		baseURL:      opts.baseURL(),
	}
	if year < latestYearEndYear(time.Now()) {
		y.NextYear = year + 1
	}
	return y, nil
}

// Fetch GETs the year-end page and parses it into the snapshot, replacing any
// previously fetched entries.
func (y *YearEndChart) Fetch() error {
	url := fmt.Sprintf("%s/charts/year-end/%d/%s", y.baseURL, y.Year, y.Name)
	doc, err := getDocument(y.client, url)
	if err != nil {
		return err
	}
	y.Entries = []YearEndEntry{}
	return parseYearEndPage(y, doc)
}

// Len returns the number of entries in the snapshot.
func (y *YearEndChart) Len() int {
	return len(y.Entries)
}

// Entry returns the (i + 1)-th chart entry; Entry(0) is the top of the chart.
func (y *YearEndChart) Entry(i int) YearEndEntry {
	return y.Entries[i]
}

// String returns the chart as a human-readable, typically multi-line string.
func (y *YearEndChart) String() string {
	header := fmt.Sprintf("Year end %s chart from %d", y.Name, y.Year)
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(header)))
	for _, entry := range y.Entries {
		fmt.Fprintf(&b, "\n%d. %s", entry.Rank, entry)
	}
	return b.String()
}

// JSON returns the snapshot as a canonical key-sorted, indented JSON string.
func (y *YearEndChart) JSON() (string, error) {
	return canonicalJSON(y)
}

// YearEndFromJSON reconstructs a year-end snapshot from its canonical JSON
// dump. The result carries no transport configuration and cannot be
// re-fetched.
func YearEndFromJSON(data string) (*YearEndChart, error) {
	var y YearEndChart
	if err := json.Unmarshal([]byte(data), &y); err != nil {
		return nil, fmt.Errorf("failed to unmarshal year-end chart: %w", err)
	}
	return &y, nil
}
