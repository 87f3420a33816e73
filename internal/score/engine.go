// Package score runs the single-domain inference pipeline: label extraction,
// feature computation, model scoring, prediction normalization, and findings
// assembly. Both the CLI and the HTTP API drive it.
package score

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/soclabs/dgahound/internal/automl"
	"github.com/soclabs/dgahound/internal/domain"
	"github.com/soclabs/dgahound/internal/explain"
	"github.com/soclabs/dgahound/internal/features"
	"github.com/soclabs/dgahound/internal/predict"
	"github.com/soclabs/dgahound/internal/resolve"
	"github.com/soclabs/dgahound/internal/types"
)

// Analysis is the complete result of scoring one domain
type Analysis struct {
	// Domain is the cleaned input domain
	Domain string `json:"domain"`
	// SLD is the second-level label the features were computed from
	SLD string `json:"sld"`
	// Features is the extracted feature vector
	Features features.Vector `json:"features"`
	// Raw is the model's prediction row before normalization
	Raw predict.RawRow `json:"raw_prediction"`
	// Probability is the normalized P(dga)
	Probability float64 `json:"probability"`
	// Label is the predicted class
	Label types.Label `json:"label"`
	// Findings is the attribution summary, present only for dga verdicts
	Findings string `json:"findings,omitempty"`
	// DNS holds the optional live-resolution context
	DNS *resolve.Result `json:"dns,omitempty"`
}

// Engine scores domains with a loaded model
type Engine struct {
	model    automl.Model
	resolver *resolve.Resolver
}

// Option configures the Engine
type Option func(*Engine)

// WithResolver enables live DNS context lookups during analysis
func WithResolver(r *resolve.Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// NewEngine creates a scoring engine around a trained model
func NewEngine(model automl.Model, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, ErrNoModel
	}

	e := &Engine{model: model}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// ModelID reports the identity of the loaded model
func (e *Engine) ModelID() string {
	return e.model.ModelID()
}

// Analyze scores a single domain. The findings block is assembled only for
// dga verdicts; attribution failure degrades the findings rather than
// failing the analysis. A DNS lookup runs only when checkDNS is set and a
// resolver is configured, and its failure is likewise absorbed into the
// result.
func (e *Engine) Analyze(ctx context.Context, rawDomain string, checkDNS bool) (*Analysis, error) {
	if rawDomain == "" {
		return nil, ErrEmptyDomain
	}

	sld := domain.SLD(rawDomain)
	fv := features.Extract(sld)

	raw := e.model.Predict(fv)

	res, err := predict.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalizing prediction: %w", err)
	}

	analysis := &Analysis{
		Domain:      rawDomain,
		SLD:         sld,
		Features:    fv,
		Raw:         raw,
		Probability: res.Probability,
		Label:       res.Label,
	}

	if res.Label.IsDGA() {
		analysis.Findings = e.findings(rawDomain, fv, res.Probability)
	}

	if checkDNS && e.resolver != nil {
		dnsRes := e.resolver.Lookup(ctx, rawDomain)
		analysis.DNS = &dnsRes
	}

	return analysis, nil
}

// findings builds the attribution summary, degrading when the model does not
// expose contributions
func (e *Engine) findings(rawDomain string, fv features.Vector, pDGA float64) string {
	explainer, ok := e.model.(automl.Explainer)
	if !ok {
		return explain.Summarize(rawDomain, fv, pDGA, nil,
			fmt.Errorf("contributions not supported for %s", e.model.Algo()))
	}

	contrib, err := explainer.Contributions(fv)
	if err != nil {
		log.Warn().Err(err).Str("domain", rawDomain).Msg("attribution failed, degrading findings")
		return explain.Summarize(rawDomain, fv, pDGA, nil, err)
	}

	return explain.Summarize(rawDomain, fv, pDGA, &contrib, nil)
}
