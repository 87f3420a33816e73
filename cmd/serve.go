package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/soclabs/dgahound/config"
	"github.com/soclabs/dgahound/internal/api"
	"github.com/soclabs/dgahound/internal/automl"
	"github.com/soclabs/dgahound/internal/resolve"
	"github.com/soclabs/dgahound/internal/score"
	"github.com/soclabs/dgahound/internal/slack"
)

// serveCmd is the cobra command that starts the dgahound API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the dgahound scoring api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("artifact", "", "model artifact path; overrides DGAHOUND_MODEL_DIR")
	serveCmd.Flags().Bool("check-dns", false, "include live DNS resolution context on scored domains")
}

// serve initializes dependencies and starts the dgahound API server
func serve(ctx context.Context) error {
	cfg := config.New()

	artifactPath := k.String("artifact")
	if artifactPath == "" {
		artifactPath = cfg.ArtifactPath()
	}

	model, err := automl.Load(artifactPath)
	if err != nil {
		return fmt.Errorf("loading model artifact from %s (run `%s train` first): %w", artifactPath, appName, err)
	}

	log.Info().Str("model_id", model.ModelID()).Str("algo", model.Algo()).Msg("model artifact loaded")

	checkDNS := k.Bool("check-dns")

	engine, err := setupEngine(cfg, model, checkDNS)
	if err != nil {
		return fmt.Errorf("building scoring engine: %w", err)
	}

	slackClient := setupSlack(cfg)

	handler := api.NewRouter(api.RouterConfig{
		Engine:      engine,
		Notifier:    slackClient,
		MaxBodySize: cfg.MaxBodySize,
		CheckDNS:    checkDNS,
	})

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Listen).Msg("starting dgahound service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupEngine builds the scoring engine, attaching a DNS resolver only when
// live checks are requested
func setupEngine(cfg *config.Config, model automl.Model, checkDNS bool) (*score.Engine, error) {
	opts := []score.Option{}

	if checkDNS {
		opts = append(opts, score.WithResolver(resolve.New(
			resolve.WithServer(cfg.DNSServer),
			resolve.WithTimeout(cfg.DNSTimeout),
		)))

		log.Info().Str("server", cfg.DNSServer).Msg("live DNS checks enabled")
	}

	return score.NewEngine(model, opts...)
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.SlackWebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.SlackWebhookURL,
		slack.WithHTTPClient(&http.Client{Timeout: cfg.SlackTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}
