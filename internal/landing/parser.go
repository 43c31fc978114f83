package landing

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Preview is what the admin review screen shows for a campaign's landing URL.
type Preview struct {
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SiteName    string    `json:"site_name,omitempty"`
	StatusCode  int       `json:"status_code"`
	FetchedAt   time.Time `json:"fetched_at"`
}

type Parser struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewParser(timeoutMS, maxRetries int, log *zap.Logger) *Parser {
	return &Parser{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// ValidateURL checks that a landing URL is absolute http(s) with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed landing url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("landing url must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("landing url is missing a host")
	}
	return nil
}

// FetchPreview downloads the landing page and extracts title / description /
// social card metadata for the review screen. Retries transient failures with
// a short backoff.
func (p *Parser) FetchPreview(ctx context.Context, rawURL string) (*Preview, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	var doc *goquery.Document
	var statusCode int
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "GeoAdsReviewBot/1.0 (+campaign landing page preview)")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		statusCode = resp.StatusCode
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	preview := &Preview{
		URL:        rawURL,
		StatusCode: statusCode,
		FetchedAt:  time.Now(),
	}

	preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if v := metaContent(doc, "og:title"); v != "" {
		preview.Title = v
	}
	preview.Description = metaContent(doc, "description")
	if v := metaContent(doc, "og:description"); v != "" {
		preview.Description = v
	}
	preview.ImageURL = metaContent(doc, "og:image")
	preview.SiteName = metaContent(doc, "og:site_name")

	return preview, nil
}

func metaContent(doc *goquery.Document, name string) string {
	sel := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)
	if v, ok := doc.Find(sel).First().Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
