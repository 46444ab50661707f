package chart

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Layout identifies one of the two known historical page structures used by
// the chart site. The set is closed; unrecognized pages are treated as
// NewStyle and simply produce zero entries downstream.
type Layout int

const (
	LayoutOldStyle Layout = iota
	LayoutNewStyle
)

func (l Layout) String() string {
	if l == LayoutOldStyle {
		return "old-style"
	}
	return "new-style"
}

// classifyLayout decides which layout a parsed page uses. Old-style pages are
// the only ones rendered with table elements.
func classifyLayout(doc *goquery.Document) Layout {
	if doc.Find("table").Length() > 0 {
		return LayoutOldStyle
	}
	return LayoutNewStyle
}

// Semantic field names used to key the selector tables. ParseError.Field
// carries these same names.
const (
	fieldEntryList        = "entryList"
	fieldTitle            = "title"
	fieldArtist           = "artist"
	fieldImage            = "image"
	fieldRank             = "rank"
	fieldDate             = "date"
	fieldPreviousLink     = "previousLink"
	fieldNextLink         = "nextLink"
	fieldMinistatsCell    = "ministatsCell"
	fieldMinistatsHeading = "ministatsHeading"
	fieldPeak             = "peak"
	fieldLast             = "last"
	fieldWeeks            = "weeks"
	fieldWeek             = "week"
)

// rule locates one field: a CSS selector applied relative to the document or
// entry node, plus the attribute to read. An empty Attr means the element's
// trimmed text; an empty Selector means the rule reads the node itself.
type rule struct {
	Selector string
	Attr     string
}

// selectorTable is the full (layout, field) location table. Every field a
// layout exposes has exactly one rule here; fields with no rule for a layout
// (e.g. image on new-style pages) are not extracted for that layout.
var selectorTable = map[Layout]map[string]rule{
	LayoutOldStyle: {
		fieldEntryList:        {Selector: "div.chart-list-item"},
		fieldTitle:            {Attr: "data-title"},
		fieldArtist:           {Attr: "data-artist"},
		fieldImage:            {Selector: "img.chart-list-item__image", Attr: "src"},
		fieldRank:             {Attr: "data-rank"},
		fieldDate:             {Selector: "button.chart-detail-header__date-selector-button"},
		fieldPreviousLink:     {Selector: "span.fa-chevron-left"},
		fieldNextLink:         {Selector: "span.fa-chevron-right"},
		fieldMinistatsCell:    {Selector: "div.chart-list-item__ministats-cell"},
		fieldMinistatsHeading: {Selector: "span.chart-list-item__ministats-cell-heading"},
	},
	LayoutNewStyle: {
		fieldEntryList: {Selector: "li.chart-list__element"},
		fieldTitle:     {Selector: "span.chart-element__information__song"},
		fieldArtist:    {Selector: "span.chart-element__information__artist"},
		fieldRank:      {Selector: "span.chart-element__rank__number"},
		fieldDate:      {Selector: "button.date-selector__button.button--link"},
		fieldPeak:      {Selector: "span.chart-element__meta.text--peak"},
		fieldLast:      {Selector: "span.chart-element__meta.text--last"},
		fieldWeek:      {Selector: "span.chart-element__meta.text--week"},
	},
}

// yearEndTable locates fields on annual retrospective pages, which use a
// third structure shared by neither weekly layout.
var yearEndTable = map[string]rule{
	fieldEntryList: {Selector: "div.ye-chart-item"},
	fieldTitle:     {Selector: "div.ye-chart-item__title"},
	fieldArtist:    {Selector: "div.ye-chart-item__artist"},
	fieldRank:      {Selector: "div.ye-chart-item__rank"},
}

// chartTitleSelector locates the page-level chart title, common to all
// layouts.
const chartTitleSelector = `meta[name="title"]`

// extract applies a rule to a node and returns the trimmed raw value. The
// second return is false when the rule's target element or attribute does not
// exist.
func extract(s *goquery.Selection, r rule) (string, bool) {
	target := s
	if r.Selector != "" {
		target = s.Find(r.Selector).First()
		if target.Length() == 0 {
			return "", false
		}
	}
	if r.Attr != "" {
		v, ok := target.Attr(r.Attr)
		return strings.TrimSpace(v), ok
	}
	return strings.TrimSpace(target.Text()), true
}
