package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	portfolio "github.com/vadimghedreutan/portfolio-2025"
)

var newCategory string

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Scaffold a markdown post in the content directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		slug := portfolio.Slugify(title)
		if slug == "" {
			return fmt.Errorf("title %q produces an empty slug", title)
		}

		dir := filepath.Join(siteCfg.ContentDir, "posts")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		dest := filepath.Join(dir, slug+".md")
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s already exists", dest)
		}

		var buf bytes.Buffer
		buf.WriteString("---\n")
		fmt.Fprintf(&buf, "title: %q\n", title)
		fmt.Fprintf(&buf, "date: %s\n", time.Now().Format("2006-01-02"))
		buf.WriteString("summary: \"\"\n")
		if newCategory != "" {
			fmt.Fprintf(&buf, "category: %s\n", newCategory)
		}
		buf.WriteString("draft: true\n")
		buf.WriteString("---\n\n")

		if err := atomic.WriteFile(dest, &buf); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), dest)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newCategory, "category", "", "category for the new post")
	rootCmd.AddCommand(newCmd)
}
