package chart

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// dateLabelLayout matches the human-readable "Month DD, YYYY" date button.
const dateLabelLayout = "January 2, 2006"

// parseChartPage populates a weekly snapshot from a parsed page: page-level
// title, layout classification, then the layout's date/adjacency and entry
// extraction.
func parseChartPage(c *Chart, doc *goquery.Document) error {
	c.Title = chartTitle(doc)
	if classifyLayout(doc) == LayoutOldStyle {
		return parseOldStylePage(c, doc)
	}
	return parseNewStylePage(c, doc)
}

// chartTitle reads the page-level chart title, dropping the pipe-delimited
// site suffix and a trailing " Chart".
func chartTitle(doc *goquery.Document) string {
	content, ok := doc.Find(chartTitleSelector).First().Attr("content")
	if !ok {
		return ""
	}
	title := strings.TrimSpace(strings.SplitN(content, "|", 2)[0])
	return strings.TrimSuffix(title, " Chart")
}

func parseOldStylePage(c *Chart, doc *goquery.Document) error {
	rules := selectorTable[LayoutOldStyle]

	// An unparseable date label leaves the snapshot undated, which disables
	// ministats extraction below.
	if text, ok := extract(doc.Selection, rules[fieldDate]); ok && text != "" {
		if t, err := time.Parse(dateLabelLayout, text); err == nil {
			c.Date = t.Format("2006-01-02")
		}
	}

	if href, ok := navHref(doc, rules[fieldPreviousLink]); ok {
		c.PreviousDate = lastPathSegment(href)
	}
	if href, ok := navHref(doc, rules[fieldNextLink]); ok {
		c.NextDate = lastPathSegment(href)
	}

	hasDate := c.Date != ""
	var parseErr error
	doc.Find(rules[fieldEntryList].Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		entry, err := parseOldStyleEntry(sel, rules, hasDate)
		if err != nil {
			parseErr = err
			return false
		}
		c.Entries = append(c.Entries, *entry)
		return true
	})
	return parseErr
}

func parseOldStyleEntry(sel *goquery.Selection, rules map[string]rule, hasDate bool) (*ChartEntry, error) {
	title, ok := extract(sel, rules[fieldTitle])
	if !ok {
		return nil, &ParseError{Field: fieldTitle}
	}
	artist, ok := extract(sel, rules[fieldArtist])
	if !ok {
		return nil, &ParseError{Field: fieldArtist}
	}
	// Collaborations and compilations sometimes arrive as a single combined
	// label in the title slot; the non-empty field is the artist.
	if artist == "" {
		title, artist = "", title
	}

	img := sel.Find(rules[fieldImage].Selector).First()
	if img.Length() == 0 {
		return nil, &ParseError{Field: fieldImage}
	}
	// Lazy-loaded images keep the real URL in data-src.
	image, ok := img.Attr("data-src")
	if !ok {
		image, ok = img.Attr(rules[fieldImage].Attr)
	}
	if !ok {
		return nil, &ParseError{Field: fieldImage}
	}

	rankText, ok := extract(sel, rules[fieldRank])
	if !ok {
		return nil, &ParseError{Field: fieldRank}
	}
	rank, err := strconv.Atoi(rankText)
	if err != nil {
		return nil, &ParseError{Field: fieldRank, Err: err}
	}

	entry := &ChartEntry{Title: title, Artist: artist, Image: &image, Rank: rank}
	if !hasDate {
		return entry, nil
	}

	peak, err := ministatsValue(sel, rules, fieldPeak, nil)
	if err != nil {
		return nil, err
	}
	last, err := ministatsValue(sel, rules, fieldLast, intPtr(0))
	if err != nil {
		return nil, err
	}
	weeks, err := ministatsValue(sel, rules, fieldWeeks, intPtr(1))
	if err != nil {
		return nil, err
	}
	entry.PeakPos = peak
	entry.LastPos = last
	entry.Weeks = weeks
	entry.IsNew = weeks != nil && *weeks == 1
	return entry, nil
}

// ministatsValue scans an entry's labeled ministats cells for the one whose
// heading matches name, case-insensitively. The cell value is the text before
// the first non-breaking space. A "-" value or a missing cell yields the
// fallback; a value that fails integer coercion aborts the snapshot.
func ministatsValue(sel *goquery.Selection, rules map[string]rule, name string, fallback *int) (*int, error) {
	result := fallback
	var parseErr error
	sel.Find(rules[fieldMinistatsCell].Selector).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		heading := cell.Find(rules[fieldMinistatsHeading].Selector).First()
		if !strings.EqualFold(strings.TrimSpace(heading.Text()), name) {
			return true
		}
		value := strings.TrimSpace(strings.SplitN(cell.Text(), "\u00a0", 2)[0])
		if value == "-" {
			return false
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("WARN: ministats cell %q: %v", name, err)
			parseErr = &ParseError{Field: name, Err: err}
			return false
		}
		result = &n
		return false
	})
	return result, parseErr
}

func parseNewStylePage(c *Chart, doc *goquery.Document) error {
	rules := selectorTable[LayoutNewStyle]

	if text, ok := extract(doc.Selection, rules[fieldDate]); ok && text != "" {
		if t, err := time.Parse(dateLabelLayout, text); err == nil {
			c.Date = t.Format("2006-01-02")
		}
	}

	hasDate := c.Date != ""
	var parseErr error
	doc.Find(rules[fieldEntryList].Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		entry, err := parseNewStyleEntry(sel, rules, hasDate)
		if err != nil {
			parseErr = err
			return false
		}
		c.Entries = append(c.Entries, *entry)
		return true
	})
	return parseErr
}

func parseNewStyleEntry(sel *goquery.Selection, rules map[string]rule, hasDate bool) (*ChartEntry, error) {
	title, ok := extract(sel, rules[fieldTitle])
	if !ok {
		return nil, &ParseError{Field: fieldTitle}
	}
	artist, ok := extract(sel, rules[fieldArtist])
	if !ok {
		return nil, &ParseError{Field: fieldArtist}
	}
	if artist == "" {
		title, artist = "", title
	}

	rankText, ok := extract(sel, rules[fieldRank])
	if !ok {
		return nil, &ParseError{Field: fieldRank}
	}
	rank, err := strconv.Atoi(rankText)
	if err != nil {
		return nil, &ParseError{Field: fieldRank, Err: err}
	}

	// New-style pages expose no usable entry image.
	entry := &ChartEntry{Title: title, Artist: artist, Rank: rank}
	if !hasDate {
		return entry, nil
	}

	peak, err := metaValue(sel, rules, fieldPeak, nil)
	if err != nil {
		return nil, err
	}
	last, err := metaValue(sel, rules, fieldLast, intPtr(0))
	if err != nil {
		return nil, err
	}
	weeks, err := metaValue(sel, rules, fieldWeek, intPtr(1))
	if err != nil {
		return nil, err
	}
	entry.PeakPos = peak
	entry.LastPos = last
	entry.Weeks = weeks
	entry.IsNew = weeks != nil && *weeks == 1
	return entry, nil
}

// metaValue reads a fixed-class trend sibling on a new-style entry. A missing
// element, empty text or "-" yields the fallback; anything else must coerce
// to an integer.
func metaValue(sel *goquery.Selection, rules map[string]rule, name string, fallback *int) (*int, error) {
	text, ok := extract(sel, rules[name])
	if !ok || text == "" || text == "-" {
		return fallback, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		log.Printf("WARN: metadata value %q: %v", name, err)
		return nil, &ParseError{Field: name, Err: err}
	}
	return &n, nil
}

// parseYearEndPage populates a year-end snapshot from a parsed page.
func parseYearEndPage(y *YearEndChart, doc *goquery.Document) error {
	y.Title = chartTitle(doc)

	var parseErr error
	doc.Find(yearEndTable[fieldEntryList].Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		entry, err := parseYearEndEntry(sel)
		if err != nil {
			parseErr = err
			return false
		}
		y.Entries = append(y.Entries, *entry)
		return true
	})
	return parseErr
}

func parseYearEndEntry(sel *goquery.Selection) (*YearEndEntry, error) {
	title, ok := extract(sel, yearEndTable[fieldTitle])
	if !ok {
		return nil, &ParseError{Field: fieldTitle}
	}
	artist, ok := extract(sel, yearEndTable[fieldArtist])
	if !ok {
		return nil, &ParseError{Field: fieldArtist}
	}
	if artist == "" {
		title, artist = "", title
	}

	rankText, ok := extract(sel, yearEndTable[fieldRank])
	if !ok {
		return nil, &ParseError{Field: fieldRank}
	}
	rank, err := strconv.Atoi(rankText)
	if err != nil {
		return nil, &ParseError{Field: fieldRank, Err: err}
	}

	return &YearEndEntry{Title: title, Artist: artist, Rank: rank}, nil
}

// navHref reads the href of the link wrapping a chevron navigation marker.
func navHref(doc *goquery.Document, r rule) (string, bool) {
	marker := doc.Find(r.Selector).First()
	if marker.Length() == 0 {
		return "", false
	}
	href, ok := marker.Parent().Attr("href")
	if !ok || href == "" {
		return "", false
	}
	return href, true
}

func lastPathSegment(s string) string {
	parts := strings.Split(s, "/")
	return parts[len(parts)-1]
}

func intPtr(n int) *int {
	return &n
}
