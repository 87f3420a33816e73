// Package domain parses domain names and extracts the second-level label used
// for feature extraction.
package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains parsed domain information
type Info struct {
	Domain    string `json:"domain"`
	Subdomain string `json:"subdomain,omitempty"`
	TLD       string `json:"tld"`
	SLD       string `json:"sld"`
}

// Parse extracts domain information from a domain, URL, or email string
func Parse(input string) (*Info, error) {
	// Extract domain from email if @ is present
	if strings.Contains(input, "@") {
		parts := strings.Split(input, "@")
		if len(parts) != 2 {
			return nil, ErrInvalidEmailFormat
		}
		input = parts[1]
	}

	// Clean up domain
	input = strings.ToLower(strings.TrimSpace(input))

	// Remove protocol if present
	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURLFormat, err)
		}
		input = u.Host
	}

	// Remove port if present
	if idx := strings.LastIndex(input, ":"); idx != -1 {
		input = input[:idx]
	}

	// Basic validation
	if input == "" || !strings.Contains(input, ".") {
		return nil, ErrInvalidDomainFormat
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomainFormat, err)
	}

	tld, _ := publicsuffix.PublicSuffix(input)
	sld := strings.TrimSuffix(etld1, "."+tld)
	subdomain := ""
	if etld1 != input {
		subdomain = strings.TrimSuffix(input, "."+etld1)
	}

	info := &Info{
		Domain:    input,
		Subdomain: subdomain,
		TLD:       tld,
		SLD:       sld,
	}

	return info, nil
}

// SLD returns the second-level label of a domain under a lenient rule: the
// component immediately left of the final dot, or the whole string when no
// dot is present. The input is lower-cased and trimmed first. Unlike Parse,
// this never fails, which keeps feature extraction total over arbitrary
// lookup strings.
func SLD(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))

	if info, err := Parse(input); err == nil {
		return info.SLD
	}

	parts := strings.Split(input, ".")
	if len(parts) <= 1 {
		return parts[0]
	}

	return parts[len(parts)-2]
}
