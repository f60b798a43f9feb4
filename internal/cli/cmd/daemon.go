package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/matjam/wallrotate/internal/cli/cmd/utils"
	"github.com/matjam/wallrotate/internal/imageops"
	"github.com/matjam/wallrotate/internal/ipc"
	"github.com/matjam/wallrotate/internal/manager"
	"github.com/matjam/wallrotate/internal/wallpaper"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// backgroundEnv marks a process that was re-launched in the background.
const backgroundEnv = "WALLROTATE_BACKGROUND_PROCESS"

func NewDaemonCmd() *cobra.Command {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the wallrotate daemon",
		Long: `Runs the daemon that owns the slideshow and listens for commands
from the other wallrotate subcommands on a unix socket.`,
		Run: func(cmd *cobra.Command, args []string) {
			background, _ := cmd.Flags().GetBool("background")
			if background {
				parent, release, err := daemonize()
				if err != nil {
					log.Fatalf("Failed to start in the background: %v", err)
				}
				if parent {
					return
				}
				defer release()
			}
			StartManager()
		},
	}

	daemonCmd.Flags().BoolP("background", "b", false, "Run as a daemon")
	return daemonCmd
}

// StartManager runs the slideshow manager and the control socket until a
// signal arrives or a client asks the daemon to quit.
func StartManager() {
	log.Infof("StartManager() started in PID: %d", os.Getpid())

	if os.Getenv(backgroundEnv) == "1" {
		setupRotatingLogger()
	}

	if _, err := ipc.SendStatus(); err == nil {
		log.Infof("wallrotate is already running, exiting")
		return
	}

	cfg, err := utils.LoadDaemonConfig(viper.GetViper())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setter, err := wallpaper.New(cfg.Wallpaper)
	if err != nil {
		log.Fatalf("Failed to create wallpaper setter: %v", err)
	}

	materializer, err := imageops.NewMaterializer(cfg.CacheDir)
	if err != nil {
		log.Fatalf("Failed to create image cache: %v", err)
	}

	log.Infof("Caching images in %s, state in %s", materializer.CacheDir, cfg.Manager.StatePath)

	m := manager.New(cfg.Manager, manager.Deps{
		Materializer: materializer,
		Setter:       setter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting socket server on %s", ipc.SocketPath())
		return ipc.Serve(ctx, m)
	})
	g.Go(func() error {
		m.Run(ctx)
		// Quit ends Run without cancelling ctx; take the socket server down too.
		stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("Socket server error: %v", err)
	}
	log.Infof("wallrotate exited")
}

func setupRotatingLogger() {
	logDir := filepath.Join(utils.CanonicalPath("~"), ".local", "share", "wallrotate")
	logPath := filepath.Join(logDir, "wallrotate.log")

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d%H%M",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationSize(10*1024*1024),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("failed to configure log rotation: %v", err)
	}

	log.SetOutput(writer)
	if !viper.GetBool("debug") {
		log.SetLevel(log.InfoLevel)
	}
}
