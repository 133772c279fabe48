// Package ranking scrapes competition results for a named profile from
// the public play site. The profile page has no JSON API, so results
// are pulled out of the rendered HTML by walking the DOM for the
// competition card markup.
package ranking

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// DefaultBaseURL is the public play site's profile page root.
const DefaultBaseURL = "https://play.battlesnake.com/profile"

// CompetitionResult is one competition card from a profile page.
type CompetitionResult struct {
	Name  string
	Score int
	Rank  int
}

// Client fetches and parses profile pages. The zero value uses the
// public site and http.DefaultClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Results fetches the profile page for the given username and returns
// every competition result it lists.
func (c *Client) Results(ctx context.Context, username string) ([]CompetitionResult, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s/%s", base, username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieve profile page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read profile page: %w", err)
	}

	return Parse(bytes.NewReader(body))
}

// Parse extracts competition results from profile page HTML. Split out
// from Results so tests can feed it fixture markup without a server.
func Parse(r io.Reader) ([]CompetitionResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse profile HTML: %w", err)
	}

	var results []CompetitionResult

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClasses(n, []string{"card", "p-1", "text-white"}) {
			result := CompetitionResult{}
			extractCompetitionDetails(n, &result)
			results = append(results, result)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return results, nil
}

func extractCompetitionDetails(n *html.Node, result *CompetitionResult) {
	var f func(*html.Node)
	f = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if node.Data == "h4" && hasClasses(node, []string{"text-center", "text-lg", "font-bold", "uppercase"}) {
				result.Name = strings.TrimSpace(getNodeText(node))
			} else if node.Data == "p" {
				if hasClasses(node, []string{"text-4xl", "text-center", "font-bold"}) || hasClasses(node, []string{"text-2xl", "text-center", "font-bold"}) {
					scoreStr := strings.TrimSpace(getNodeText(node))
					scoreStr = strings.ReplaceAll(scoreStr, ",", "")
					// "--" means the competition hasn't scored yet.
					if scoreStr != "--" {
						if score, err := strconv.Atoi(scoreStr); err == nil {
							result.Score = score
						}
					}
				} else if hasClasses(node, []string{"text-lg", "text-center", "text-sm"}) {
					if rankStr := extractRank(node); rankStr != "" {
						if rank, err := strconv.Atoi(rankStr); err == nil {
							result.Rank = rank
						}
					}
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
}

func getAttr(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}

func hasClasses(n *html.Node, requiredClasses []string) bool {
	classMap := make(map[string]bool)
	for _, class := range strings.Fields(getAttr(n, "class")) {
		classMap[class] = true
	}
	for _, required := range requiredClasses {
		if !classMap[required] {
			return false
		}
	}
	return true
}

func getNodeText(n *html.Node) string {
	var buf bytes.Buffer
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return buf.String()
}

func extractRank(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "big" {
			rankStr := getNodeText(c)
			return strings.TrimFunc(rankStr, func(r rune) bool {
				return !unicode.IsDigit(r)
			})
		}
	}
	return ""
}
