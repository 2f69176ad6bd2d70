package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search(t *testing.T) {
	svc := NewSearchService(loadCatalog(t))

	tests := []struct {
		name  string
		query string
		topK  int
		want  []string
	}{
		{name: "single keyword", query: "ubuntu", want: []string{"bios-issues-ubuntu"}},
		{name: "case insensitive", query: "TITANIC", want: []string{"titanic-survival"}},
		{name: "all keywords must match", query: "python titanic", want: []string{"titanic-survival"}},
		{name: "no match", query: "kubernetes", want: []string{}},
		{name: "blank query", query: "   ", want: []string{}},
		{name: "limited by topk", query: "a", topK: 2, want: []string{"data-viz-analysis", "technical-blog-3"}},
		{name: "default topk", query: "a", want: []string{"data-viz-analysis", "technical-blog-3", "technical-blog-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Search(tt.query, tt.topK)
			slugs := make([]string, 0, len(got))
			for _, r := range got {
				slugs = append(slugs, r.Slug)
			}
			assert.Equal(t, tt.want, slugs)
		})
	}
}

func TestSearchService_SummaryFields(t *testing.T) {
	svc := NewSearchService(loadCatalog(t))

	got := svc.Search("registry", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "/articles/technical-blog-3", got[0].Path)
	assert.NotEmpty(t, got[0].Preview)
}
