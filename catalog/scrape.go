// Package catalog discovers the set of available chart series and remembers
// them between runs.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/chartfed/fetch"
)

const (
	chartsIndexPath   = "/charts"
	chartLinkSelector = "a.chart-panel__link"
)

// Slugs scrapes the charts-index page and returns the slug of every chart
// series it links to, in page order. The slug is the trailing URL path
// segment of each tagged link.
func Slugs(ctx context.Context, client *fetch.Client, baseURL string) ([]string, error) {
	url := baseURL + chartsIndexPath
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch charts index: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("charts index: HTTP status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse charts index: %w", err)
	}

	var slugs []string
	doc.Find(chartLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		parts := strings.Split(href, "/")
		slugs = append(slugs, parts[len(parts)-1])
	})
	return slugs, nil
}
