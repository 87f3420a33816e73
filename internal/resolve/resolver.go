// Package resolve performs a live DNS lookup of an analyzed domain. An
// NXDOMAIN answer is useful corroborating context for a DGA verdict, since
// most algorithmically generated candidates are never registered.
package resolve

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

const (
	// defaultDNSServer is the DNS resolver used when none is configured
	defaultDNSServer = "8.8.8.8:53"
	// defaultDNSTimeout is the per-query timeout for DNS lookups
	defaultDNSTimeout = 5 * time.Second
)

// Result captures the outcome of a lookup. Failures degrade into Err so a
// DNS problem never aborts an analysis.
type Result struct {
	// Resolves is true when the domain answered with at least one A record
	Resolves bool `json:"resolves"`
	// NXDomain is true when the authoritative answer was name-not-found
	NXDomain bool `json:"nxdomain"`
	// Addresses holds the resolved IPv4 addresses
	Addresses []string `json:"addresses,omitempty"`
	// Err carries the lookup failure, if any
	Err string `json:"error,omitempty"`
}

// Resolver performs DNS lookups against a configured server
type Resolver struct {
	client *dns.Client
	server string
}

// Option configures the Resolver
type Option func(*Resolver)

// WithServer overrides the DNS server used for lookups
func WithServer(server string) Option {
	return func(r *Resolver) {
		if server != "" {
			r.server = server
		}
	}
}

// WithTimeout overrides the per-query DNS timeout
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.client.Timeout = timeout
		}
	}
}

// New creates a resolver
func New(opts ...Option) *Resolver {
	r := &Resolver{
		client: &dns.Client{
			Timeout: defaultDNSTimeout,
		},
		server: defaultDNSServer,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Lookup queries A records for the domain
func (r *Resolver) Lookup(ctx context.Context, domain string) Result {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	msg.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return Result{Err: err.Error()}
	}

	if resp == nil {
		return Result{Err: "empty DNS response"}
	}

	if resp.Rcode == dns.RcodeNameError {
		return Result{NXDomain: true}
	}

	var addrs []string

	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			addrs = append(addrs, a.A.String())
		}
	}

	return Result{
		Resolves:  len(addrs) > 0,
		Addresses: addrs,
	}
}
