package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSelectorTableCoverage verifies every field a layout applies to has
// exactly one location rule, and fields a layout does not expose have none
func TestSelectorTableCoverage(t *testing.T) {
	oldFields := []string{
		fieldEntryList, fieldTitle, fieldArtist, fieldImage, fieldRank,
		fieldDate, fieldPreviousLink, fieldNextLink,
		fieldMinistatsCell, fieldMinistatsHeading,
	}
	newFields := []string{
		fieldEntryList, fieldTitle, fieldArtist, fieldRank,
		fieldDate, fieldPeak, fieldLast, fieldWeek,
	}

	require.Len(t, selectorTable[LayoutOldStyle], len(oldFields))
	for _, f := range oldFields {
		_, ok := selectorTable[LayoutOldStyle][f]
		assert.True(t, ok, "old style missing rule for %s", f)
	}

	require.Len(t, selectorTable[LayoutNewStyle], len(newFields))
	for _, f := range newFields {
		_, ok := selectorTable[LayoutNewStyle][f]
		assert.True(t, ok, "new style missing rule for %s", f)
	}

	_, ok := selectorTable[LayoutNewStyle][fieldImage]
	assert.False(t, ok, "new style has no image extraction")

	yearEndFields := []string{fieldEntryList, fieldTitle, fieldArtist, fieldRank}
	require.Len(t, yearEndTable, len(yearEndFields))
	for _, f := range yearEndFields {
		_, ok := yearEndTable[f]
		assert.True(t, ok, "year-end missing rule for %s", f)
	}
}

// TestExtract verifies the three rule shapes: attribute on the node itself,
// text of a nested element, attribute of a nested element
func TestExtract(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div id="node" data-rank=" 7 ">
			<span class="inner"> some text </span>
			<img class="pic" src="x.jpg">
		</div>
	</body></html>`)
	node := doc.Find("#node")

	v, ok := extract(node, rule{Attr: "data-rank"})
	require.True(t, ok)
	assert.Equal(t, "7", v, "values are trimmed")

	v, ok = extract(node, rule{Selector: "span.inner"})
	require.True(t, ok)
	assert.Equal(t, "some text", v)

	v, ok = extract(node, rule{Selector: "img.pic", Attr: "src"})
	require.True(t, ok)
	assert.Equal(t, "x.jpg", v)

	_, ok = extract(node, rule{Selector: "span.missing"})
	assert.False(t, ok)

	_, ok = extract(node, rule{Attr: "data-missing"})
	assert.False(t, ok)
}
