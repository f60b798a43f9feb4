package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/autostart"
	"github.com/spf13/cobra"
)

func NewAutostartCmd() *cobra.Command {
	autostartCmd := &cobra.Command{
		Use:   "autostart",
		Short: "Show whether the daemon starts at login",
		Run: func(cmd *cobra.Command, args []string) {
			enabled, err := autostart.Enabled()
			if err != nil {
				log.Fatalf("Failed to read autostart setting: %v", err)
			}
			log.Infof("Autostart enabled: %v", enabled)
		},
	}

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start the daemon at login",
		Run: func(cmd *cobra.Command, args []string) {
			if err := autostart.Enable(); err != nil {
				log.Fatalf("Failed to enable autostart: %v", err)
			}
			log.Info("Autostart enabled")
		},
	})

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop starting the daemon at login",
		Run: func(cmd *cobra.Command, args []string) {
			if err := autostart.Disable(); err != nil {
				log.Fatalf("Failed to disable autostart: %v", err)
			}
			log.Info("Autostart disabled")
		},
	})

	return autostartCmd
}
