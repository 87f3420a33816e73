package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/soclabs/dgahound/config"
	"github.com/soclabs/dgahound/internal/automl"
	"github.com/soclabs/dgahound/internal/genai"
	"github.com/soclabs/dgahound/internal/resolve"
	"github.com/soclabs/dgahound/internal/score"
)

// analyzeCmd scores a single domain with the exported leader model
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "score a domain with the trained model and explain the verdict",
	Run: func(cmd *cobra.Command, _ []string) {
		err := analyze(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the analyze command and its flags on the root command
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("domain", "", "domain to analyze (required)")
	analyzeCmd.Flags().String("artifact", "", "model artifact path; overrides DGAHOUND_MODEL_DIR")
	analyzeCmd.Flags().String("api-key", "", "GenAI API key for playbook generation; overrides GOOGLE_API_KEY")
	analyzeCmd.Flags().Bool("skip-playbook", false, "skip GenAI playbook generation on dga verdicts")
	analyzeCmd.Flags().Bool("check-dns", false, "include live DNS resolution context")
}

// analyze loads the artifact, scores the domain, and prints the verdict. DGA
// verdicts additionally print the attribution findings and, unless skipped, a
// generated response playbook.
func analyze(ctx context.Context) error {
	domain := k.String("domain")
	if domain == "" {
		return ErrDomainRequired
	}

	cfg := config.New()

	artifactPath := k.String("artifact")
	if artifactPath == "" {
		artifactPath = cfg.ArtifactPath()
	}

	model, err := automl.Load(artifactPath)
	if err != nil {
		return fmt.Errorf("loading model artifact from %s (run `%s train` first): %w", artifactPath, appName, err)
	}

	checkDNS := k.Bool("check-dns")

	opts := []score.Option{}
	if checkDNS {
		opts = append(opts, score.WithResolver(resolve.New(
			resolve.WithServer(cfg.DNSServer),
			resolve.WithTimeout(cfg.DNSTimeout),
		)))
	}

	engine, err := score.NewEngine(model, opts...)
	if err != nil {
		return fmt.Errorf("building scoring engine: %w", err)
	}

	analysis, err := engine.Analyze(ctx, domain, checkDNS)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", domain, err)
	}

	fmt.Printf("Domain:      %s\n", analysis.Domain)
	fmt.Printf("SLD:         %s\n", analysis.SLD)
	fmt.Printf("Features:    length=%d entropy=%.4f\n", analysis.Features.Length, analysis.Features.Entropy)
	fmt.Printf("Model:       %s\n", model.ModelID())
	fmt.Printf("Prediction:  %s\n", analysis.Raw.String())
	fmt.Printf("P(dga):      %.4f\n", analysis.Probability)
	fmt.Printf("Verdict:     %s\n", analysis.Label)

	if analysis.DNS != nil {
		printDNS(analysis.DNS)
	}

	if !analysis.Label.IsDGA() {
		return nil
	}

	fmt.Printf("\n%s\n", analysis.Findings)

	if k.Bool("skip-playbook") {
		return nil
	}

	apiKey := k.String("api-key")
	if apiKey == "" {
		apiKey = cfg.GenAIAPIKey
	}

	genaiOpts := []genai.Option{
		genai.WithHTTPClient(&http.Client{Timeout: cfg.GenAITimeout}),
	}
	if cfg.GenAIModel != "" {
		genaiOpts = append(genaiOpts, genai.WithModel(cfg.GenAIModel))
	}

	fmt.Printf("\n--- Suggested response playbook ---\n%s\n", genai.Playbook(ctx, apiKey, analysis.Findings, genaiOpts...))

	return nil
}

// printDNS renders the optional live-resolution context
func printDNS(res *resolve.Result) {
	switch {
	case res.Err != "":
		fmt.Printf("DNS:         lookup failed: %s\n", res.Err)
	case res.NXDomain:
		fmt.Printf("DNS:         NXDOMAIN (does not resolve)\n")
	case res.Resolves:
		fmt.Printf("DNS:         resolves to %v\n", res.Addresses)
	default:
		fmt.Printf("DNS:         no A records\n")
	}
}
