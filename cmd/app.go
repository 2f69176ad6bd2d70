package cmd

import (
	"fmt"

	"portfolio/config"
	"portfolio/events"
	"portfolio/global"
	"portfolio/services"
	"portfolio/store"
)

type app struct {
	likes   *services.LikeService
	catalog *services.Catalog
	feeds   *services.FeedService
	search  *services.SearchService
}

func newLikeStore(cfg *config.Config) (store.LikeStore, error) {
	switch cfg.Likes.Backend {
	case config.BackendRedis:
		return store.NewRedisStore(global.RedisDB, cfg.Likes.RedisKey)
	case config.BackendMySQL:
		return store.NewGormStore(global.Db)
	case config.BackendFile, "":
		return store.NewFileStore(global.Fs, cfg.Likes.File, global.Logger), nil
	}
	return nil, fmt.Errorf("unknown likes backend %q", cfg.Likes.Backend)
}

func newPublisher(cfg *config.Config) events.Publisher {
	if global.RabbitChannel == nil {
		return events.NopPublisher{}
	}
	return events.NewAMQPPublisher(global.RabbitChannel, cfg.RabbitMQ.Queue)
}

func siteInfo(cfg *config.Config) services.SiteInfo {
	return services.SiteInfo{
		BaseURL:     cfg.Site.BaseURL,
		Author:      cfg.Site.Author,
		Description: cfg.Site.Description,
		Language:    cfg.Site.Language,
	}
}

// newApp wires the services from AppConfig and the handles in global.
func newApp(cfg *config.Config) (*app, error) {
	likeStore, err := newLikeStore(cfg)
	if err != nil {
		return nil, err
	}
	catalog, err := services.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	return &app{
		likes: services.NewLikeService(likeStore, services.LikeOptions{
			SerializeWrites: cfg.Likes.SerializeWrites,
			Publisher:       newPublisher(cfg),
			Logger:          global.Logger,
		}),
		catalog: catalog,
		feeds:   services.NewFeedService(catalog, siteInfo(cfg), nil),
		search:  services.NewSearchService(catalog),
	}, nil
}
