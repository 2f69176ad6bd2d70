package services

import (
	"strings"
)

const DefaultTopK = 3

type ArticleSummary struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Path    string `json:"path"`
}

// SearchService does keyword retrieval over the article table.
type SearchService struct {
	catalog *Catalog
}

func NewSearchService(c *Catalog) *SearchService {
	return &SearchService{catalog: c}
}

// Search returns up to topK articles in which every keyword of query appears
// in the title, description, summary, tags or keywords. Matching is case-insensitive.
func (s *SearchService) Search(query string, topK int) []ArticleSummary {
	if topK <= 0 {
		topK = DefaultTopK
	}
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return []ArticleSummary{}
	}

	results := make([]ArticleSummary, 0, topK)
	for _, a := range s.catalog.articles {
		text := searchText(a.Title, a.Description, a.Summary, a.Tags, a.Keywords)
		if !containsAll(text, keywords) {
			continue
		}
		results = append(results, ArticleSummary{
			Slug:    a.Slug,
			Title:   a.Title,
			Preview: a.Summary,
			Path:    a.CanonicalPath,
		})
		if len(results) == topK {
			break
		}
	}
	return results
}

func searchText(title, description, summary string, tags, keywords []string) string {
	var b strings.Builder
	for _, s := range []string{title, description, summary} {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	for _, s := range append(append([]string(nil), tags...), keywords...) {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return strings.ToLower(b.String())
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
