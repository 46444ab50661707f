package chart

import (
	"encoding/json"
	"fmt"
)

// ChartEntry represents one ranked item (typically a single track) on a
// weekly chart.
//
// PeakPos, LastPos and Weeks are pointers because absence carries meaning
// distinct from zero: a nil PeakPos means the chart exposes no history for
// the entry, while a LastPos of 0 means the track was off the chart last
// week. All three are nil on an undated "current" snapshot.
type ChartEntry struct {
	Title   string  `json:"title"`
	Artist  string  `json:"artist"`
	Image   *string `json:"image"`
	PeakPos *int    `json:"peakPos"`
	LastPos *int    `json:"lastPos"`
	Weeks   *int    `json:"weeks"`
	Rank    int     `json:"rank"`
	IsNew   bool    `json:"isNew"`
}

// String returns a string of the form 'TITLE' by ARTIST, or just the artist
// when the title is empty (combined labels land in the artist field; see the
// swap rule in the parser).
func (e ChartEntry) String() string {
	if e.Title != "" {
		return fmt.Sprintf("'%s' by %s", e.Title, e.Artist)
	}
	return e.Artist
}

// JSON returns the entry as a canonical key-sorted, indented JSON string.
// This is useful for caching.
func (e ChartEntry) JSON() (string, error) {
	return canonicalJSON(e)
}

// YearEndEntry represents one ranked item on an annual retrospective chart.
// Year-end charts publish no weekly trend data, so the record is deliberately
// narrow: title, artist and rank only.
type YearEndEntry struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Rank   int    `json:"rank"`
}

func (e YearEndEntry) String() string {
	if e.Title != "" {
		return fmt.Sprintf("'%s' by %s", e.Title, e.Artist)
	}
	return e.Artist
}

// JSON returns the entry as a canonical key-sorted, indented JSON string.
func (e YearEndEntry) JSON() (string, error) {
	return canonicalJSON(e)
}

// canonicalJSON renders v as indented JSON with object keys sorted, by
// round-tripping through a map. encoding/json emits map keys in sorted order.
func canonicalJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("failed to canonicalize: %w", err)
	}
	out, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal: %w", err)
	}
	return string(out), nil
}
