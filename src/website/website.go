package website

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/carafeforum/carafe/src/auth"
	"github.com/carafeforum/carafe/src/config"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/jobs"
	"github.com/carafeforum/carafe/src/logging"
	"github.com/spf13/cobra"
)

var WebsiteCommand = &cobra.Command{
	Use:   "carafe",
	Short: "Run the Carafe board server",
	Run: func(cmd *cobra.Command, args []string) {
		defer logging.LogPanics(nil)
		logging.Info().Msg("Hello, Carafe!")

		var wg sync.WaitGroup

		conn := db.NewConnPool()
		startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelStartup()
		if err := db.WaitForConnection(startupCtx, conn, 30*time.Second); err != nil {
			logging.Fatal().Err(err).Msg("Database did not become available")
		}

		// Start background jobs
		wg.Add(1)
		backgroundJobs := jobs.Jobs{
			auth.PeriodicallyDeleteExpiredSessions(conn),
		}

		// Create HTTP server
		wg.Add(1)
		server := http.Server{
			Addr:    config.Config.Addr,
			Handler: NewWebsiteRoutes(conn),
		}
		go func() {
			logging.Info().Str("addr", config.Config.Addr).Msg("Serving the board API")
			serverErr := server.ListenAndServe()
			if !errors.Is(serverErr, http.ErrServerClosed) {
				logging.Error().Err(serverErr).Msg("Server shut down unexpectedly")
			}
			// The wg.Done() happens in the shutdown logic below.
		}()

		// Wait for SIGINT in the background and trigger graceful shutdown
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		go func() {
			<-signals // First SIGINT (start shutdown)
			logging.Info().Msg("Shutting down the server")

			const timeout = 10 * time.Second

			go func() {
				logging.Info().Msg("Shutting down background jobs...")
				unfinished := backgroundJobs.CancelAndWait(timeout)
				if len(unfinished) == 0 {
					logging.Info().Msg("Background jobs closed gracefully")
				} else {
					logging.Warn().Strs("Unfinished", unfinished).Msg("Background jobs did not finish by the deadline")
				}
				wg.Done()
			}()

			// Gracefully shut down the HTTP server
			go func() {
				timeoutCtx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				err := server.Shutdown(timeoutCtx)
				if err != nil {
					logging.Warn().Err(err).Msg("Server did not shut down gracefully")
				}
				wg.Done()
			}()

			<-signals // Second SIGINT (force quit)
			logging.Warn().Strs("Unfinished background jobs", backgroundJobs.ListUnfinished()).Msg("Forcibly killed the server")
			os.Exit(1)
		}()

		// Wait for all of the above to finish, then exit
		wg.Wait()
	},
}
