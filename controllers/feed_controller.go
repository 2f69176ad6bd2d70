package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/services"
)

const feedCacheControl = "s-maxage=600, stale-while-revalidate=86400"

type FeedController struct {
	feeds  *services.FeedService
	logger *zap.Logger
}

func NewFeedController(feeds *services.FeedService, logger *zap.Logger) *FeedController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedController{feeds: feeds, logger: logger}
}

func (c *FeedController) render(ctx *gin.Context, contentType string, build func() (string, error)) {
	body, err := build()
	if err != nil {
		c.logger.Error("render feed", zap.String("path", ctx.Request.URL.Path), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render feed"})
		return
	}
	ctx.Header("Cache-Control", feedCacheControl)
	ctx.Data(http.StatusOK, contentType, []byte(body))
}

func (c *FeedController) RSS(ctx *gin.Context) {
	c.render(ctx, "application/rss+xml; charset=utf-8", c.feeds.RSS)
}

func (c *FeedController) Atom(ctx *gin.Context) {
	c.render(ctx, "application/atom+xml; charset=utf-8", c.feeds.Atom)
}

func (c *FeedController) Sitemap(ctx *gin.Context) {
	c.render(ctx, "application/xml; charset=utf-8", c.feeds.Sitemap)
}

func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
