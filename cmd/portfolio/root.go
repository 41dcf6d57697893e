package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	portfolio "github.com/vadimghedreutan/portfolio-2025"
)

var (
	cfgFile string
	siteCfg portfolio.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio and blog server",
	Long: `portfolio serves a personal site from markdown content: a blog with
category filtering, a project showcase, and an about page, with a
light/dark theme preference persisted per visitor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}
		cfg, err := portfolio.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		siteCfg = cfg
		return nil
	},
}

// Execute runs the CLI, exiting nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "path to the TOML config file")
}
