package importer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ingredientSelectors are tried in order; the first one that yields any
// text wins. Microdata first, then the class names most recipe sites use.
var ingredientSelectors = []string{
	`[itemprop="recipeIngredient"]`,
	`[itemprop="ingredients"]`,
	`.recipe-ingredients li`,
	`.ingredients li`,
	`ul.ingredient-list li`,
}

// Importer fetches recipe pages and extracts ingredient candidates to
// seed catalog categories.
type Importer struct {
	httpClient *http.Client
}

// NewImporter creates an Importer with a bounded request timeout.
func NewImporter() *Importer {
	return &Importer{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchIngredients downloads a recipe page and returns the ingredient
// lines it advertises, whitespace-collapsed and de-duplicated. It fails
// when the page exposes no recognizable ingredient list.
func (i *Importer) FetchIngredients(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	for _, selector := range ingredientSelectors {
		var items []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.Join(strings.Fields(sel.Text()), " ")
			if text != "" {
				items = append(items, text)
			}
		})
		if len(items) > 0 {
			return dedupe(items), nil
		}
	}

	return nil, fmt.Errorf("no ingredient list found at %s", url)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
