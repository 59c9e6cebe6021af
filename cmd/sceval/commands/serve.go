package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/YassineDev91/smart-contract-eval/internal/report"
	"github.com/YassineDev91/smart-contract-eval/internal/state"
	"github.com/YassineDev91/smart-contract-eval/internal/webui"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report over HTTP",
	Long:  `Starts a small HTTP server exposing the report: an HTML dashboard on /, the raw JSON on /api/report, plus target, stats, and run-log endpoints. The report file is read fresh on every request, so a rerun shows up without a restart.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :8591)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	addr := flagAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	if addr == "" {
		addr = ":8591"
	}

	store := state.New(state.DefaultPath())
	if err := store.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: loading run log: %v\n", err)
		store = nil
	}

	report.ToolVersion = Version
	ui := &webui.Server{
		ReportPath:     resolveReportPath(cfg),
		Runs:           store,
		AllowedOrigins: cfg.Serve.AllowedOrigins,
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      ui.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving report on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down server...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
