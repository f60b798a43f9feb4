/*
Copyright © 2025 Nathan Ollerenshaw <chrome@stupendous.net>
*/
package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate"
	"github.com/matjam/wallrotate/internal/cli/cmd"
	"github.com/matjam/wallrotate/internal/cli/cmd/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wallrotate",
	Short: "A background wallpaper slideshow",
	Long: `Wallrotate rotates the desktop wallpaper through the images in a set
of folders. A daemon owns the slideshow; the other subcommands control it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
			log.SetReportCaller(true)
		}

		if v, err := cmd.Flags().GetBool("installconfig"); err == nil && v {
			path, err := utils.InstallDefaultConfig()
			if err != nil {
				log.Fatalf("Error installing config file: %v", err)
			}
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				log.Fatalf("Error reading config file: %v", err)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if v, err := cmd.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		if v, err := cmd.Flags().GetBool("version"); err == nil && v {
			babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
			yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
			green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
			log.Infof("%v version %v © 2025 %v",
				babyBlue.Render("wallrotate "),
				green.Render(strings.Trim(wallrotate.Version, "\n\r ")),
				yellow.Render("Nathan Ollerenshaw"))
			return
		}

		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/wallrotate/wallrotate.toml)")
	rootCmd.PersistentFlags().BoolP("installconfig", "i", false, "Install a default config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.Flags().Bool("show-config", false, "Dump resolved config")
	rootCmd.Flags().BoolP("version", "v", false, "Print version")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(
		cmd.NewDaemonCmd(),
		cmd.NewStartCmd(),
		cmd.NewStopCmd(),
		cmd.NewNextCmd(),
		cmd.NewLoadCmd(),
		cmd.NewStatusCmd(),
		cmd.NewQuitCmd(),
		cmd.NewAutostartCmd(),
		cmd.NewGenManCmd(rootCmd),
	)
}
