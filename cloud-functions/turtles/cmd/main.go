package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	turtleModels "github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles/models"
	"github.com/jlexm/turtle-tracker-svc/common/auth"
	"github.com/jlexm/turtle-tracker-svc/common/cloud"
	"github.com/jlexm/turtle-tracker-svc/common/logging"
	"github.com/jlexm/turtle-tracker-svc/common/metrics"
	"github.com/jlexm/turtle-tracker-svc/common/records"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Blank-import the function packages so the init() runs
	_ "github.com/jlexm/turtle-tracker-svc/cloud-functions/audit"
	_ "github.com/jlexm/turtle-tracker-svc/cloud-functions/auth"
	_ "github.com/jlexm/turtle-tracker-svc/cloud-functions/turtles"
)

var (
	port        string
	metricsPort string
	target      string
)

var rootCmd = &cobra.Command{
	Use:          "turtle-tracker",
	Short:        "Turtle rescue record service",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the functions locally",
	Long: `Starts the functions framework with every turtle, auth and audit function registered.
--target selects a single function, as FUNCTION_TARGET does on Cloud Functions.`,
	RunE: serve,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard chart data as JSON",
	RunE:  stats,
}

func init() {
	// Use PORT environment variable, or default to 8080.
	defaultPort := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		defaultPort = envPort
	}
	serveCmd.Flags().StringVar(&port, "port", defaultPort, "port the functions listen on")
	serveCmd.Flags().StringVar(&metricsPort, "metrics-port", "9090", "port serving /metrics, empty to disable")
	serveCmd.Flags().StringVar(&target, "target", "", "only serve this function")
	rootCmd.AddCommand(serveCmd, statsCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	logger := logging.GetLoggerFromContext(cmd.Context())
	if target != "" {
		if err := os.Setenv("FUNCTION_TARGET", target); err != nil {
			return err
		}
	}

	var metricsServer *http.Server
	if metricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: ":" + metricsPort, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("Metrics listener stopped: %v", err)
			}
		}()
	}

	errs := make(chan error, 1)
	go func() {
		errs <- funcframework.Start(port)
	}()
	logger.Infof("Serving functions on :%s", port)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	var err error
	select {
	case err = <-errs:
		err = fmt.Errorf("funcframework.Start: %w", err)
	case sig := <-signals:
		logger.Infof("Received %v, shutting down", sig)
	}

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(ctx)
	}
	closeClients(logger)

	return err
}

// closeClients releases the shared clients and the process wide auth state
func closeClients(logger *zap.SugaredLogger) {
	if err := cloud.FirestoreRepositoryObj.Close(); err != nil {
		logger.Errorf("Error occurred while closing firestore client: %v", err)
	}
	if err := cloud.PubSubRepositoryObj.Close(); err != nil {
		logger.Errorf("Error occurred while closing pubsub client: %v", err)
	}
	if auth.SessionsObj != nil {
		auth.SessionsObj.Close()
	}
}

func stats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbClient := cloud.NewFirestoreRepository(ctx)
	defer dbClient.Close()

	turtles, err := records.NewEngine(dbClient, nil).List(ctx)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(turtleModels.Stats{
		RescueTrends: records.GroupByRescueDate(turtles),
		LengthWeight: records.PairLengthWeight(turtles),
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
