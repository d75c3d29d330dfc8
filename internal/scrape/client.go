// Package scrape discovers fighter pages through the source site's sitemap
// and extracts each fighter's raw match table. It hands the caller a
// complete, static record set; ordering and rating happen downstream.
package scrape

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// DefaultBaseURL is the root of the source site.
const DefaultBaseURL = "https://www.bjjheroes.com"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client fetches sitemap and fighter pages.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client against baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	return resp, nil
}

// sitemapURLSet matches the standard sitemap.org XML schema.
type sitemapURLSet struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// FighterSlugs fetches the post sitemap and returns the sorted, de-duplicated
// slugs of every fighter page it lists.
func (c *Client) FighterSlugs(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "/post-sitemap.xml")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var set sitemapURLSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parse sitemap: %w", err)
	}

	const marker = "bjj-fighters/"
	seen := make(map[string]struct{})
	for _, u := range set.URLs {
		i := strings.Index(u.Loc, marker)
		if i < 0 {
			continue
		}
		slug := strings.Trim(u.Loc[i+len(marker):], "/")
		if slug != "" {
			seen[slug] = struct{}{}
		}
	}

	slugs := make([]string, 0, len(seen))
	for s := range seen {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Fighter is one fighter's scraped page: the display name and the raw match
// table as header->cell maps, exactly as found.
type Fighter struct {
	Name    string
	Slug    string
	Matches []map[string]string
}

// FetchFighter downloads one fighter page and extracts its match table.
// A page without a match table yields a Fighter with no Matches.
func (c *Client) FetchFighter(ctx context.Context, slug string) (*Fighter, error) {
	resp, err := c.get(ctx, "/bjj-fighters/"+slug)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	name, matches, err := parseFighterPage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", slug, err)
	}
	return &Fighter{Name: name, Slug: slug, Matches: matches}, nil
}
