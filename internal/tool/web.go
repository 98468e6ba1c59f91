package tool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
)

const (
	maxFetchSize = 50 * 1024 // 50KB text output
	fetchTimeout = 30 * time.Second
)

// WebFetchTool fetches a URL and extracts readable text content.
// Input is the URL to fetch.
type WebFetchTool struct {
	// Client overrides the default HTTP client, mainly for tests.
	Client *http.Client
}

func (t *WebFetchTool) Name() string { return "web_fetch" }

func (t *WebFetchTool) Description() string {
	return "Fetch a URL and extract its readable text content. Input: a URL."
}

func (t *WebFetchTool) Invoke(ctx context.Context, input string) (string, error) {
	rawURL := strings.TrimSpace(input)
	if rawURL == "" {
		return "", fmt.Errorf("web_fetch: a URL is required")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("web_fetch: invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("web_fetch: %w", err)
	}
	req.Header.Set("User-Agent", "reactbench/1.0")

	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("web_fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("web_fetch: HTTP %d", resp.StatusCode)
	}

	// For non-HTML content, return raw text (truncated)
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, int64(maxFetchSize)))
		return string(body), nil
	}

	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		return "", fmt.Errorf("web_fetch: parse: %w", err)
	}

	var textBuf bytes.Buffer
	if err := article.RenderText(&textBuf); err != nil {
		return "", fmt.Errorf("web_fetch: render: %w", err)
	}

	text := textBuf.String()
	if len(text) > maxFetchSize {
		text = text[:maxFetchSize] + "\n... [truncated]"
	}
	return fmt.Sprintf("Title: %s\nURL: %s\n\n%s", article.Title(), rawURL, text), nil
}
