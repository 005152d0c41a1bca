// Package clipper reads ingredient lists out of recipe web pages.
package clipper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ErrNoRecipe means the page was reached but holds no usable recipe, or the
// URL itself is unusable. Transport failures and server errors are not
// wrapped in it.
var ErrNoRecipe = errors.New("no recipe found")

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	client *http.Client
	logger *zap.Logger
}

// ClippedRecipe is what could be read from a page.
type ClippedRecipe struct {
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
	Lines     []Line `json:"lines"`
}

// NewClipper creates a new Clipper. A nil client gets a 15 second timeout.
func NewClipper(client *http.Client, logger *zap.Logger) *Clipper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Clipper{client: client, logger: logger}
}

// ClipURL fetches the URL and extracts the recipe title and ingredient lines.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*ClippedRecipe, error) {
	doc, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	rec := Extract(doc)
	rec.SourceURL = url
	if len(rec.Lines) == 0 {
		return nil, fmt.Errorf("%w: no ingredients found at %s", ErrNoRecipe, url)
	}

	c.logger.Info("recipe clipped",
		zap.String("url", url),
		zap.String("title", rec.Title),
		zap.Int("lines", len(rec.Lines)),
	)
	return rec, nil
}

// Extract reads a recipe from a parsed page. Structured data is preferred,
// then microdata, then a plain ".ingredients" list.
func Extract(doc *goquery.Document) *ClippedRecipe {
	rec := &ClippedRecipe{}

	title, raw := fromJSONLD(doc)

	// Remove noise before looking at markup
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	if len(raw) == 0 {
		raw = texts(doc.Find("[itemprop=recipeIngredient], [itemprop=ingredients]"))
	}
	if len(raw) == 0 {
		raw = texts(doc.Find(".ingredients li, #ingredients li"))
	}

	if title == "" {
		title = firstText(doc, "[itemprop=name]", "h1")
	}
	if title == "" {
		if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	rec.Title = title

	for _, s := range raw {
		if line, ok := ParseLine(s); ok {
			rec.Lines = append(rec.Lines, line)
		}
	}
	return rec
}

func (c *Clipper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRecipe, err)
	}
	req.Header.Set("User-Agent", "recipe-planner/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: status %d", ErrNoRecipe, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

type ldNode struct {
	Type             json.RawMessage `json:"@type"`
	Name             string          `json:"name"`
	RecipeIngredient []string        `json:"recipeIngredient"`
	Graph            []ldNode        `json:"@graph"`
}

func (n ldNode) isRecipe() bool {
	var single string
	if json.Unmarshal(n.Type, &single) == nil {
		return single == "Recipe"
	}
	var many []string
	if json.Unmarshal(n.Type, &many) == nil {
		for _, t := range many {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

// fromJSONLD returns the name and ingredients of the first schema.org Recipe.
func fromJSONLD(doc *goquery.Document) (string, []string) {
	var (
		title       string
		ingredients []string
	)
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		data := []byte(s.Text())

		var nodes []ldNode
		if err := json.Unmarshal(data, &nodes); err != nil {
			var one ldNode
			if err := json.Unmarshal(data, &one); err != nil {
				return true
			}
			nodes = []ldNode{one}
		}

		for len(nodes) > 0 {
			n := nodes[0]
			nodes = append(nodes[1:], n.Graph...)
			if n.isRecipe() && len(n.RecipeIngredient) > 0 {
				title = strings.TrimSpace(n.Name)
				ingredients = n.RecipeIngredient
				return false
			}
		}
		return true
	})
	return title, ingredients
}

func texts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(i int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}
