package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio/config"
	"portfolio/global"
	"portfolio/services"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write rss.xml, atom.xml and sitemap.xml to a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := services.NewCatalog()
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		feeds := services.NewFeedService(catalog, siteInfo(config.AppConfig), nil)
		return exportFeeds(global.Fs, exportOut, feeds, global.Logger)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "public", "output directory")
}

func exportFeeds(fsys afero.Fs, dir string, feeds *services.FeedService, logger *zap.Logger) error {
	renderers := []struct {
		name   string
		render func() (string, error)
	}{
		{"rss.xml", feeds.RSS},
		{"atom.xml", feeds.Atom},
		{"sitemap.xml", feeds.Sitemap},
	}

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for _, r := range renderers {
		body, err := r.render()
		if err != nil {
			return fmt.Errorf("render %s: %w", r.name, err)
		}
		path := filepath.Join(dir, r.name)
		if err := afero.WriteFile(fsys, path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("exported", zap.String("path", path), zap.Int("bytes", len(body)))
	}
	return nil
}
