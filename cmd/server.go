package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/codeviz/internal/dashboard"
	"github.com/ziadkadry99/codeviz/internal/diagrams"
	"github.com/ziadkadry99/codeviz/internal/server"
	"github.com/ziadkadry99/codeviz/internal/session"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the interactive diagram dashboard",
	Long:  `Starts the codeviz dashboard: an HTTP server that forwards analysis requests to the backend and renders the results as zoomable Mermaid diagrams.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		dir, err := diagrams.ParseDirection(cfg.Direction)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})

		dash := dashboard.New(newClientFromConfig(cfg), session.New(), dashboard.Options{
			Direction:     dir,
			DefaultBranch: cfg.DefaultBranch,
			MaxNodes:      cfg.MaxNodes,
		})
		dash.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "codeviz server %s starting on http://localhost:%d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Backend: %s\n", cfg.BackendURL)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
