package cmd

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/cli/cmd/utils"
	"github.com/matjam/wallrotate/internal/ipc"
	"github.com/spf13/cobra"
)

func NewLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [folder] ... [image]",
		Short: "Replace the image sources of the daemon",
		Long: `Replaces the folders the slideshow draws from. Folders are scanned
recursively; at most one image file may be given as well.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			paths := make([]string, 0, len(args))
			for _, arg := range args {
				abs, err := filepath.Abs(utils.CanonicalPath(arg))
				if err != nil {
					log.Fatalf("Invalid path %s: %v", arg, err)
				}
				paths = append(paths, abs)
			}

			if err := ipc.SendLoad(paths); err != nil {
				log.Fatalf("Failed to send 'load' command: %v", err)
			}
			log.Infof("Loaded %d paths", len(paths))
		},
	}
}
