package services

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"portfolio/content"
	"portfolio/models"
	"portfolio/store"
)

const DateLayout = "2006-01-02"

type Sort string

const (
	SortRecent  Sort = "recent"
	SortPopular Sort = "popular"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidSort = errors.New("invalid sort")
)

func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "", SortRecent:
		return SortRecent, nil
	case SortPopular:
		return SortPopular, nil
	}
	return "", ErrInvalidSort
}

// ParseDate parses the YYYY-MM-DD dates used by the data tables.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

type ArticleEntry struct {
	models.Article
	LikeCount int `json:"likeCount"`
}

type ProjectEntry struct {
	models.Project
	LikeCount int `json:"likeCount"`
}

type ProjectGroup struct {
	Period   string         `json:"period"`
	Projects []ProjectEntry `json:"projects"`
}

// Catalog holds the site's typed data tables. Articles and projects are kept in
// "recent" order; it is read-only after loading.
type Catalog struct {
	articles       []models.Article
	projects       []models.Project
	experiences    []models.Experience
	certifications []models.Certification

	articleBySlug map[string]int
	projectBySlug map[string]int
}

// NewCatalog loads the embedded data tables.
func NewCatalog() (*Catalog, error) {
	return LoadCatalog(content.FS)
}

func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}
	if err := readTable(fsys, "data/articles.yaml", &c.articles); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "data/projects.yaml", &c.projects); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "data/experiences.yaml", &c.experiences); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "data/certifications.yaml", &c.certifications); err != nil {
		return nil, err
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

func readTable(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) index() error {
	published := make(map[string]time.Time, len(c.articles))
	for _, a := range c.articles {
		if a.Slug == "" {
			return fmt.Errorf("article %q: empty slug", a.Title)
		}
		if _, dup := published[a.Slug]; dup {
			return fmt.Errorf("article %q: duplicate slug", a.Slug)
		}
		t, err := ParseDate(a.PublishedAt)
		if err != nil {
			return fmt.Errorf("article %q: publishedAt: %w", a.Slug, err)
		}
		if a.UpdatedAt != "" {
			if _, err := ParseDate(a.UpdatedAt); err != nil {
				return fmt.Errorf("article %q: updatedAt: %w", a.Slug, err)
			}
		}
		published[a.Slug] = t
	}
	sort.SliceStable(c.articles, func(i, j int) bool {
		return published[c.articles[i].Slug].After(published[c.articles[j].Slug])
	})

	seen := make(map[string]bool, len(c.projects))
	for _, p := range c.projects {
		if p.Slug == "" {
			return fmt.Errorf("project %q: empty slug", p.Title)
		}
		if seen[p.Slug] {
			return fmt.Errorf("project %q: duplicate slug", p.Slug)
		}
		seen[p.Slug] = true
		if !p.Status.Valid() {
			return fmt.Errorf("project %q: unknown status %q", p.Slug, p.Status)
		}
	}
	sort.SliceStable(c.projects, func(i, j int) bool {
		return c.projects[i].Order > c.projects[j].Order
	})

	ids := make(map[string]bool, len(c.experiences))
	for _, e := range c.experiences {
		if e.ID == "" || ids[e.ID] {
			return fmt.Errorf("experience %q: empty or duplicate id", e.ID)
		}
		ids[e.ID] = true
	}

	issued := make([]time.Time, len(c.certifications))
	for i, cert := range c.certifications {
		t, err := ParseDate(cert.IssueDate)
		if err != nil {
			return fmt.Errorf("certification %q: issueDate: %w", cert.Title, err)
		}
		issued[i] = t
	}
	order := make([]int, len(c.certifications))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return issued[order[i]].After(issued[order[j]]) })
	certs := make([]models.Certification, len(order))
	for i, idx := range order {
		certs[i] = c.certifications[idx]
	}
	c.certifications = certs

	c.articleBySlug = make(map[string]int, len(c.articles))
	for i, a := range c.articles {
		c.articleBySlug[a.Slug] = i
	}
	c.projectBySlug = make(map[string]int, len(c.projects))
	for i, p := range c.projects {
		c.projectBySlug[p.Slug] = i
	}
	return nil
}

// Articles returns every article with its like count, in the requested order.
// Popular ties keep the recent order.
func (c *Catalog) Articles(by Sort, counts store.Counts) []ArticleEntry {
	out := make([]ArticleEntry, len(c.articles))
	for i, a := range c.articles {
		out[i] = ArticleEntry{Article: a, LikeCount: counts[a.Slug]}
	}
	if by == SortPopular {
		sort.SliceStable(out, func(i, j int) bool { return out[i].LikeCount > out[j].LikeCount })
	}
	return out
}

// FeaturedArticle picks the first featured article of a sorted list, or the first one.
func FeaturedArticle(entries []ArticleEntry) (ArticleEntry, bool) {
	for _, e := range entries {
		if e.FeaturedOnHome {
			return e, true
		}
	}
	if len(entries) == 0 {
		return ArticleEntry{}, false
	}
	return entries[0], true
}

func (c *Catalog) Article(slug string) (models.Article, error) {
	i, ok := c.articleBySlug[slug]
	if !ok {
		return models.Article{}, fmt.Errorf("article %q: %w", slug, ErrNotFound)
	}
	return c.articles[i], nil
}

func (c *Catalog) Projects(by Sort, counts store.Counts) []ProjectEntry {
	out := make([]ProjectEntry, len(c.projects))
	for i, p := range c.projects {
		out[i] = ProjectEntry{Project: p, LikeCount: counts[p.Slug]}
	}
	if by == SortPopular {
		sort.SliceStable(out, func(i, j int) bool { return out[i].LikeCount > out[j].LikeCount })
	}
	return out
}

// GroupByPeriod groups projects by period, keeping the first-seen order of periods.
func GroupByPeriod(entries []ProjectEntry) []ProjectGroup {
	var groups []ProjectGroup
	pos := make(map[string]int)
	for _, e := range entries {
		i, ok := pos[e.Period]
		if !ok {
			i = len(groups)
			pos[e.Period] = i
			groups = append(groups, ProjectGroup{Period: e.Period})
		}
		groups[i].Projects = append(groups[i].Projects, e)
	}
	return groups
}

func (c *Catalog) Project(slug string) (models.Project, error) {
	i, ok := c.projectBySlug[slug]
	if !ok {
		return models.Project{}, fmt.Errorf("project %q: %w", slug, ErrNotFound)
	}
	return c.projects[i], nil
}

func (c *Catalog) Experiences(featuredOnly bool) []models.Experience {
	out := make([]models.Experience, 0, len(c.experiences))
	for _, e := range c.experiences {
		if featuredOnly && !e.FeaturedOnHome {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (c *Catalog) Certifications() []models.Certification {
	return append([]models.Certification(nil), c.certifications...)
}

// Title resolves an item id (article or project slug) to a display title.
func (c *Catalog) Title(itemID string) string {
	if i, ok := c.articleBySlug[itemID]; ok {
		return c.articles[i].Title
	}
	if i, ok := c.projectBySlug[itemID]; ok {
		return c.projects[i].Title
	}
	return ""
}
