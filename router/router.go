package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/controllers"
	"portfolio/middlewares"
	"portfolio/services"
)

type Deps struct {
	Likes        *services.LikeService
	Catalog      *services.Catalog
	Feeds        *services.FeedService
	Search       *services.SearchService
	Logger       *zap.Logger
	AllowOrigins []string
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middlewares.RecoveryLogger(d.Logger), middlewares.RequestLogger(d.Logger))
	r.Use(cors.New(corsConfig(d.AllowOrigins)))

	likeCtl := controllers.NewLikeController(d.Likes, d.Catalog, d.Logger)
	contentCtl := controllers.NewContentController(d.Catalog, d.Likes, d.Logger)
	feedCtl := controllers.NewFeedController(d.Feeds, d.Logger)
	searchCtl := controllers.NewSearchController(d.Search)

	r.GET("/healthz", controllers.Health)

	api := r.Group("/api")
	{
		api.GET("/likes", likeCtl.GetLikes)
		api.POST("/likes", likeCtl.PostLike)
		api.GET("/likes/top", likeCtl.GetTopLikes)

		api.GET("/articles", contentCtl.ListArticles)
		api.GET("/articles/:slug", contentCtl.GetArticle)
		api.GET("/projects", contentCtl.ListProjects)
		api.GET("/projects/:slug", contentCtl.GetProject)
		api.GET("/experiences", contentCtl.ListExperiences)
		api.GET("/certifications", contentCtl.ListCertifications)

		api.GET("/search", searchCtl.Search)
	}

	r.GET("/rss.xml", feedCtl.RSS)
	r.GET("/atom.xml", feedCtl.Atom)
	r.GET("/sitemap.xml", feedCtl.Sitemap)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
