package commands

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/config"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/observability"
	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/pipeline"
)

// loadConfig resolves the --config flag. An absent file is only an error
// when the user pointed at it explicitly, otherwise defaults apply.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if _, err := os.Stat(path); os.IsNotExist(err) && !cmd.Flags().Changed("config") {
		observability.Infof("config file %s not found, using defaults", path)
		return config.Default(), nil
	}
	return config.Parse(path)
}

// loadPipeline loads the configuration, the model artifacts, and the
// optional metrics listener.
func loadPipeline(cmd *cobra.Command) (*pipeline.Pipeline, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Metrics.Enabled {
		startMetricsListener(cfg.Metrics.Port)
	}
	return p, cfg, nil
}

// startMetricsListener serves Prometheus metrics in the background. A bind
// failure is logged, not fatal: metrics must never take down classification.
func startMetricsListener(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		observability.Infof("metrics listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Errorf("metrics listener failed: %v", err)
		}
	}()
}
