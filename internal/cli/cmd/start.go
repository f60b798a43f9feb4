package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/ipc"
	"github.com/spf13/cobra"
)

func NewStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the slideshow",
		Long:  `Rescans the configured folders and starts the slideshow, replacing any running one.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendStart(); err != nil {
				log.Fatalf("Failed to send 'start' command: %v", err)
			}
			log.Info("Slideshow started")
		},
	}
}
