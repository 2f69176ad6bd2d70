package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio/config"
	"portfolio/events"
	"portfolio/global"
	"portfolio/router"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.AppConfig
	gin.SetMode(cfg.App.Mode)

	if err := config.InitInfra(); err != nil {
		return err
	}
	defer config.CloseInfra()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	r := router.SetupRouter(router.Deps{
		Likes:        a.likes,
		Catalog:      a.catalog,
		Feeds:        a.feeds,
		Search:       a.search,
		Logger:       global.Logger,
		AllowOrigins: cfg.Cors.AllowOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	var consumeCh *amqp.Channel
	if cfg.RabbitMQ.Consume {
		if global.RabbitConn == nil || global.Db == nil {
			global.Logger.Warn("rabbitmq.consume needs both rabbitmq.url and database.dsn, recorder disabled")
		} else {
			// 消费单独开 channel，不与发布共用
			if consumeCh, err = config.OpenConsumerChannel(); err != nil {
				return err
			}
			defer consumeCh.Close()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		global.Logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("likes_backend", cfg.Likes.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		global.Logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if consumeCh != nil {
		rec := events.NewRecorder(global.Db, global.Logger)
		g.Go(func() error {
			return rec.Run(gctx, consumeCh, cfg.RabbitMQ.Queue)
		})
	}

	return g.Wait()
}
