package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/services"
	"portfolio/store"
)

type ContentController struct {
	catalog *services.Catalog
	likes   *services.LikeService
	logger  *zap.Logger
}

func NewContentController(catalog *services.Catalog, likes *services.LikeService, logger *zap.Logger) *ContentController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentController{catalog: catalog, likes: likes, logger: logger}
}

// listParams reads ?sort= and loads the like counts every entry carries.
func (c *ContentController) listParams(ctx *gin.Context) (services.Sort, store.Counts, bool) {
	by, err := services.ParseSort(ctx.Query("sort"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort"})
		return "", nil, false
	}
	counts, ok := c.counts(ctx)
	return by, counts, ok
}

func (c *ContentController) counts(ctx *gin.Context) (store.Counts, bool) {
	if c.likes == nil {
		return store.Counts{}, true
	}
	counts, err := c.likes.Snapshot(ctx.Request.Context())
	if err != nil {
		c.logger.Error("read likes", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read likes"})
		return nil, false
	}
	return counts, true
}

func (c *ContentController) ListArticles(ctx *gin.Context) {
	by, counts, ok := c.listParams(ctx)
	if !ok {
		return
	}
	entries := c.catalog.Articles(by, counts)
	if ctx.Query("featured") == "true" {
		featured := entries[:0:0]
		for _, e := range entries {
			if e.FeaturedOnHome {
				featured = append(featured, e)
			}
		}
		entries = featured
	}

	resp := gin.H{"list": entries}
	if f, ok := services.FeaturedArticle(entries); ok {
		resp["featured"] = f
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *ContentController) GetArticle(ctx *gin.Context) {
	a, err := c.catalog.Article(ctx.Param("slug"))
	if errors.Is(err, services.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	counts, ok := c.counts(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, services.ArticleEntry{Article: a, LikeCount: counts[a.Slug]})
}

func (c *ContentController) ListProjects(ctx *gin.Context) {
	by, counts, ok := c.listParams(ctx)
	if !ok {
		return
	}
	entries := c.catalog.Projects(by, counts)
	if ctx.Query("featured") == "true" {
		featured := entries[:0:0]
		for _, e := range entries {
			if e.FeaturedOnHome {
				featured = append(featured, e)
			}
		}
		entries = featured
	}

	if ctx.Query("group") == "period" {
		ctx.JSON(http.StatusOK, gin.H{"groups": services.GroupByPeriod(entries)})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"list": entries})
}

func (c *ContentController) GetProject(ctx *gin.Context) {
	p, err := c.catalog.Project(ctx.Param("slug"))
	if errors.Is(err, services.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	counts, ok := c.counts(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, services.ProjectEntry{Project: p, LikeCount: counts[p.Slug]})
}

func (c *ContentController) ListExperiences(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"list": c.catalog.Experiences(ctx.Query("featured") == "true")})
}

func (c *ContentController) ListCertifications(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"list": c.catalog.Certifications()})
}
