package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"portfolio/config"
	"portfolio/services"
)

var topN int

var likesCmd = &cobra.Command{
	Use:   "likes",
	Short: "Inspect like counts in the configured backend",
}

var likesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all like counts as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := openLikes()
		if err != nil {
			return err
		}
		defer done()
		return printCounts(cmd.Context(), cmd.OutOrStdout(), svc)
	},
}

var likesTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the most liked items",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := openLikes()
		if err != nil {
			return err
		}
		defer done()
		return printTop(cmd.Context(), cmd.OutOrStdout(), svc, topN)
	},
}

func init() {
	likesTopCmd.Flags().IntVarP(&topN, "limit", "n", services.DefaultTop, "number of items")
	likesCmd.AddCommand(likesListCmd, likesTopCmd)
}

func openLikes() (*services.LikeService, func(), error) {
	if err := config.InitLikesBackend(); err != nil {
		return nil, nil, err
	}
	s, err := newLikeStore(config.AppConfig)
	if err != nil {
		config.CloseInfra()
		return nil, nil, err
	}
	return services.NewLikeService(s, services.LikeOptions{}), config.CloseInfra, nil
}

func printCounts(ctx context.Context, w io.Writer, svc *services.LikeService) error {
	counts, err := svc.Snapshot(ctx)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(counts, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printTop(ctx context.Context, w io.Writer, svc *services.LikeService, n int) error {
	ranked, err := svc.Top(ctx, n)
	if err != nil {
		return err
	}
	for i, r := range ranked {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, r.ItemID, r.Count); err != nil {
			return err
		}
	}
	return nil
}
