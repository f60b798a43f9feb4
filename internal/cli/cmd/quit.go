package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/ipc"
	"github.com/spf13/cobra"
)

func NewQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Shut down the wallrotate daemon",
		Long: `Shuts down the daemon. A running slideshow resumes the next time
the daemon starts.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := ipc.SendQuit(); err != nil {
				log.Fatalf("Failed to send 'quit' command: %v", err)
			}
			log.Info("Quit command sent")
		},
	}
}
