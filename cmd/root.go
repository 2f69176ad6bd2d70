package cmd

import (
	"github.com/spf13/cobra"

	"portfolio/config"
	"portfolio/global"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Portfolio site backend: likes API, content API and feeds",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.InitConfig(cfgFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = global.Logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config/config.yml)")
	rootCmd.AddCommand(serveCmd, exportCmd, likesCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
