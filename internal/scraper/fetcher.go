// Package scraper fetches pages and extracts the content the analysis
// prompt is built from.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"adcraft/internal/common/config"
	"adcraft/internal/common/errors"
	commonhttp "adcraft/internal/common/http"
	"adcraft/internal/common/logger"
	"adcraft/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves and parses website pages.
type Fetcher struct {
	config config.ScraperConfig
	client *commonhttp.Client
	logger logger.Logger
}

// NewFetcher builds a Fetcher using the configured timeout and user agent.
func NewFetcher(cfg config.ScraperConfig, log logger.Logger) *Fetcher {
	return &Fetcher{
		config: cfg,
		client: commonhttp.NewClient(cfg.ScraperTimeout()),
		logger: log,
	}
}

// Fetch retrieves one page and extracts title, meta data, headings, body
// text and absolute links.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*models.WebsiteContent, error) {
	f.logger.Info("fetching page", map[string]interface{}{"url": rawURL})

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Host == "" {
		return nil, errors.NewFetchFailedError(rawURL, fmt.Errorf("invalid url"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewFetchFailedError(rawURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewFetchFailedError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errors.NewFetchFailedError(rawURL, fmt.Errorf("status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.NewFetchFailedError(rawURL, err)
	}

	content := &models.WebsiteContent{
		URL:          rawURL,
		Domain:       parsedURL.Host,
		Title:        extractTitle(doc),
		Description:  extractDescription(doc),
		MetaKeywords: extractMetaKeywords(doc),
		Headings:     extractHeadings(doc),
		MainContent:  extractMainContent(doc),
		Links:        extractLinks(doc, parsedURL, f.config.MaxLinks),
	}

	f.logger.Info("page fetched", map[string]interface{}{
		"url":     rawURL,
		"title":   content.Title,
		"links":   len(content.Links),
		"content": len(content.MainContent),
	})

	return content, nil
}

// FetchAll retrieves several pages, skipping the ones that fail.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []*models.WebsiteContent {
	results := make([]*models.WebsiteContent, 0, len(urls))
	for _, u := range urls {
		content, err := f.Fetch(ctx, u)
		if err != nil {
			f.logger.Error("skipping page", map[string]interface{}{
				"url":   u,
				"error": err.Error(),
			})
			continue
		}
		results = append(results, content)
	}
	return results
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		return strings.TrimSpace(og)
	}
	return ""
}

func extractDescriptionFromMeta(doc *goquery.Document, selector string) string {
	if desc, ok := doc.Find(selector).Attr("content"); ok {
		return strings.TrimSpace(desc)
	}
	return ""
}

func extractDescription(doc *goquery.Document) string {
	if desc := extractDescriptionFromMeta(doc, `meta[name="description"]`); desc != "" {
		return desc
	}
	return extractDescriptionFromMeta(doc, `meta[property="og:description"]`)
}

func extractMetaKeywords(doc *goquery.Document) []string {
	content, ok := doc.Find(`meta[name="keywords"]`).Attr("content")
	if !ok {
		return nil
	}

	var keywords []string
	for _, k := range strings.Split(content, ",") {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

func extractHeadings(doc *goquery.Document) map[string][]string {
	headings := make(map[string][]string)
	for i := 1; i <= 6; i++ {
		tag := fmt.Sprintf("h%d", i)
		var texts []string
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				texts = append(texts, text)
			}
		})
		headings[tag] = texts
	}
	return headings
}

// extractMainContent approximates article extraction: scripts, styles and
// navigation chrome are dropped, then the remaining body text is
// whitespace-normalized.
func extractMainContent(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript, nav, header, footer, aside").Remove()

	text := body.Text()
	return strings.Join(strings.Fields(text), " ")
}

// extractLinks resolves, dedupes and sorts outbound links, keeping at
// most maxLinks of them.
func extractLinks(doc *goquery.Document, base *url.URL, maxLinks int) []string {
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref)
		if full.Scheme == "http" || full.Scheme == "https" {
			seen[full.String()] = struct{}{}
		}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	if maxLinks > 0 && len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}
