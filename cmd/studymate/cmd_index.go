package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var indexTitle string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the document library",
}

var indexAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a text document to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()
		if a.store == nil {
			return fmt.Errorf("no document store configured (set docstore.database_path)")
		}

		title := indexTitle
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		id, err := a.store.AddDocument(cmd.Context(), title, string(data))
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %q as %s\n", title, id)
		return nil
	},
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document library statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()
		if a.store == nil {
			return fmt.Errorf("no document store configured (set docstore.database_path)")
		}

		stats, err := a.store.GetStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Documents: %d\nChunks:    %d\n", stats.Documents, stats.Chunks)
		return nil
	},
}

func init() {
	indexAddCmd.Flags().StringVar(&indexTitle, "title", "", "document title (default: file name)")
	indexCmd.AddCommand(indexAddCmd)
	indexCmd.AddCommand(indexStatsCmd)
}
