package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matjam/wallrotate"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewGenManCmd returns a cobra command to generate man pages
func NewGenManCmd(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "genman [output-dir]",
		Short: "Generate man pages for the wallrotate CLI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := filepath.Clean(args[0])
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "WALLROTATE",
				Section: "1",
				Source:  "wallrotate " + strings.TrimSpace(wallrotate.Version),
				Manual:  "wallrotate manual",
			}
			return doc.GenManTree(rootCmd, header, dir)
		},
	}
}
