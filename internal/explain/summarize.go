// Package explain formats per-feature attribution values into the findings
// text handed to the playbook generator.
package explain

import (
	"fmt"
	"strings"

	"github.com/soclabs/dgahound/internal/features"
)

// Contributions holds the signed per-feature attribution values on the model
// output scale. Non-negative values push toward the dga class, negative ones
// toward legit.
type Contributions struct {
	Length  float64 `json:"length"`
	Entropy float64 `json:"entropy"`
	Bias    float64 `json:"bias"`
}

// Summarize builds the findings block for a domain predicted as dga. When
// contributions are unavailable the block degrades to probability-only with a
// note carrying the underlying reason; attribution failure is never fatal.
// The output always contains the domain and the probability.
func Summarize(domain string, fv features.Vector, pDGA float64, contrib *Contributions, contribErr error) string {
	var sb strings.Builder

	sb.WriteString("- Alert: Potential DGA domain detected.\n")
	fmt.Fprintf(&sb, "- Domain: '%s'\n", domain)

	if contrib == nil {
		reason := "not exposed by the loaded model"
		if contribErr != nil {
			reason = contribErr.Error()
		}

		fmt.Fprintf(&sb, "- NOTE: feature contributions unavailable (%s). Proceeding with probability only.\n", reason)
		fmt.Fprintf(&sb, "- Confidence P(dga) = %.1f%%\n", pDGA*100)

		return sb.String()
	}

	sb.WriteString("- AI Model Explanation (local contributions):\n")
	fmt.Fprintf(&sb, "  - Confidence P(dga) = %.1f%%\n", pDGA*100)
	fmt.Fprintf(&sb, "  - length = %d -> contribution %+.4f (%s)\n", fv.Length, contrib.Length, direction(contrib.Length))
	fmt.Fprintf(&sb, "  - entropy = %.3f -> contribution %+.4f (%s)\n", fv.Entropy, contrib.Entropy, direction(contrib.Entropy))
	fmt.Fprintf(&sb, "  - bias/intercept = %+.4f\n", contrib.Bias)

	return sb.String()
}

// direction labels the push of a signed contribution; zero counts toward dga
func direction(v float64) string {
	if v >= 0 {
		return "toward DGA"
	}
	return "toward legit"
}
