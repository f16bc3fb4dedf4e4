package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"studymate/internal/logging"
)

// DuckDuckGo scrapes the DuckDuckGo HTML endpoint. No API key needed.
type DuckDuckGo struct {
	client    *http.Client
	userAgent string
	endpoint  string
}

// NewDuckDuckGo creates a DuckDuckGo searcher with a modest timeout.
func NewDuckDuckGo() *DuckDuckGo {
	return NewDuckDuckGoWithClient(&http.Client{Timeout: 30 * time.Second})
}

// NewDuckDuckGoWithClient creates a DuckDuckGo searcher using the supplied
// HTTP client, useful for overriding the timeout or in tests.
func NewDuckDuckGoWithClient(client *http.Client) *DuckDuckGo {
	return &DuckDuckGo{
		client:    client,
		userAgent: "studymate/1.0 (Research Assistant)",
		endpoint:  "https://html.duckduckgo.com/html/",
	}
}

// SetEndpoint overrides the search endpoint. Used by tests.
func (d *DuckDuckGo) SetEndpoint(endpoint string) { d.endpoint = endpoint }

type ddgResult struct {
	title   string
	url     string
	snippet string
}

// Search fetches and parses the result page into a Result.
func (d *DuckDuckGo) Search(ctx context.Context, query string, opts Options) (*Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	searchURL := fmt.Sprintf("%s?q=%s", d.endpoint, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, &SearchError{Provider: "duckduckgo", Query: query, Err: err}
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &SearchError{Provider: "duckduckgo", Query: query, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{
			Provider: "duckduckgo",
			Query:    query,
			Err:      fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 500*1024))
	if err != nil {
		return nil, &SearchError{Provider: "duckduckgo", Query: query, Err: err}
	}

	results := parseDuckDuckGoHTML(string(body), maxResults)
	logging.Get(logging.CategoryWebSearch).Debug("duckduckgo: %d results for %q", len(results), query)

	return assembleResult(results), nil
}

// parseDuckDuckGoHTML walks the result page DOM. Results are anchors with
// class result__a; snippets are the matching result__snippet elements.
func parseDuckDuckGoHTML(page string, maxResults int) []ddgResult {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var results []ddgResult
	var snippets []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result__a"):
				if len(results) < maxResults {
					results = append(results, ddgResult{
						title: strings.TrimSpace(textContent(n)),
						url:   resolveRedirect(attr(n, "href")),
					})
				}
			case hasClass(n, "result__snippet"):
				snippets = append(snippets, strings.TrimSpace(textContent(n)))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for i := range results {
		if i < len(snippets) {
			results[i].snippet = snippets[i]
		}
	}
	return results
}

// resolveRedirect unwraps DuckDuckGo's uddg redirect links.
func resolveRedirect(raw string) string {
	if !strings.Contains(raw, "uddg=") {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	return raw
}

// assembleResult builds the uniform Result: the text is a numbered digest of
// titles and snippets, with citation indices pointing at each entry.
func assembleResult(results []ddgResult) *Result {
	var text strings.Builder
	out := &Result{}

	for i, r := range results {
		start := text.Len()
		fmt.Fprintf(&text, "[%d] %s", i+1, r.title)
		if r.snippet != "" {
			fmt.Fprintf(&text, ": %s", r.snippet)
		}
		end := text.Len()
		text.WriteString("\n")

		out.Citations = append(out.Citations, Citation{
			URL:        r.url,
			Title:      r.title,
			StartIndex: start,
			EndIndex:   end,
		})
		out.Sources = append(out.Sources, Source{URL: r.url, Type: "web"})
	}

	out.Text = strings.TrimRight(text.String(), "\n")
	return out
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
