package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	portfolio "github.com/vadimghedreutan/portfolio-2025"
	"github.com/vadimghedreutan/portfolio-2025/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the site server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := portfolio.New(siteCfg, views.Funcs())

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			log.Printf("received %s, shutting down", sig)
			return app.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
