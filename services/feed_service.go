package services

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticRoutes are the site's fixed pages, in sitemap order.
var StaticRoutes = []string{"", "/about", "/projects", "/articles", "/contact"}

type SiteInfo struct {
	BaseURL     string
	Author      string
	Description string
	Language    string
}

// FeedService renders the RSS, Atom and sitemap documents from the catalog.
type FeedService struct {
	catalog *Catalog
	site    SiteInfo
	now     func() time.Time
}

func NewFeedService(c *Catalog, site SiteInfo, now func() time.Time) *FeedService {
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	if site.Language == "" {
		site.Language = "en-us"
	}
	if now == nil {
		now = time.Now
	}
	return &FeedService{catalog: c, site: site, now: now}
}

func (s *FeedService) feed() *feeds.Feed {
	now := s.now().UTC()
	f := &feeds.Feed{
		Title:       s.site.Author + " - Articles",
		Link:        &feeds.Link{Href: s.site.BaseURL + "/articles"},
		Description: s.site.Description,
		Author:      &feeds.Author{Name: s.site.Author},
		Id:          s.site.BaseURL + "/atom.xml",
		Updated:     now,
		Created:     now,
	}
	for _, a := range s.catalog.Articles(SortRecent, nil) {
		url := s.site.BaseURL + a.CanonicalPath
		// dates were validated when the catalog was loaded
		published, _ := ParseDate(a.PublishedAt)
		updated := published
		if a.UpdatedAt != "" {
			updated, _ = ParseDate(a.UpdatedAt)
		}
		f.Items = append(f.Items, &feeds.Item{
			Title:       a.Title,
			Link:        &feeds.Link{Href: url},
			Id:          url,
			Description: a.Description,
			Created:     published,
			Updated:     updated,
		})
	}
	return f
}

func (s *FeedService) RSS() (string, error) {
	f := s.feed()
	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = s.site.Language
	rss.LastBuildDate = f.Updated.Format(time.RFC1123Z)
	out, err := feeds.ToXML(rss)
	if err != nil {
		return "", fmt.Errorf("render rss: %w", err)
	}
	return out, nil
}

func (s *FeedService) Atom() (string, error) {
	out, err := s.feed().ToAtom()
	if err != nil {
		return "", fmt.Errorf("render atom: %w", err)
	}
	return out, nil
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapRoutes lists every page path: static pages, projects, then articles.
func (s *FeedService) SitemapRoutes() []string {
	routes := append([]string(nil), StaticRoutes...)
	for _, p := range s.catalog.Projects(SortRecent, nil) {
		routes = append(routes, p.Href)
	}
	for _, a := range s.catalog.Articles(SortRecent, nil) {
		routes = append(routes, a.CanonicalPath)
	}
	return routes
}

func changeFreq(route string) string {
	switch route {
	case "", "/projects", "/articles":
		return "weekly"
	}
	return "monthly"
}

func priority(route string) float64 {
	switch route {
	case "":
		return 1
	case "/projects", "/articles":
		return 0.9
	}
	return 0.8
}

func (s *FeedService) Sitemap() (string, error) {
	lastMod := s.now().UTC().Format(time.RFC3339)
	set := urlSet{Xmlns: sitemapNS}
	for _, r := range s.SitemapRoutes() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.site.BaseURL + r,
			LastMod:    lastMod,
			ChangeFreq: changeFreq(r),
			Priority:   priority(r),
		})
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render sitemap: %w", err)
	}
	return xml.Header + string(body), nil
}
