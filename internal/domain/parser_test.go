package domain

import (
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantDom   string
		wantSub   string
		wantTLD   string
		wantSLD   string
		wantError bool
	}{
		{
			name:    "simple domain",
			input:   "example.com",
			wantDom: "example.com",
			wantSub: "",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "subdomain",
			input:   "www.example.com",
			wantDom: "www.example.com",
			wantSub: "www",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "nested subdomain",
			input:   "api.staging.example.com",
			wantDom: "api.staging.example.com",
			wantSub: "api.staging",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "co.uk tld",
			input:   "example.co.uk",
			wantDom: "example.co.uk",
			wantSub: "",
			wantTLD: "co.uk",
			wantSLD: "example",
		},
		{
			name:    "email address",
			input:   "user@example.com",
			wantDom: "example.com",
			wantSub: "",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "https url",
			input:   "https://www.example.com",
			wantDom: "www.example.com",
			wantSub: "www",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "domain with port",
			input:   "example.com:8080",
			wantDom: "example.com",
			wantSub: "",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "mixed case domain",
			input:   "Example.COM",
			wantDom: "example.com",
			wantSub: "",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:    "domain with whitespace",
			input:   "  example.com  ",
			wantDom: "example.com",
			wantSub: "",
			wantTLD: "com",
			wantSLD: "example",
		},
		{
			name:      "invalid - no tld",
			input:     "example",
			wantError: true,
		},
		{
			name:      "invalid - empty string",
			input:     "",
			wantError: true,
		},
		{
			name:      "invalid - multiple @ signs",
			input:     "user@@example.com",
			wantError: true,
		},
		{
			name:      "invalid - just tld",
			input:     ".com",
			wantError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := Parse(tc.input)

			if tc.wantError {
				if err == nil {
					t.Errorf("expected error for input %q, got nil", tc.input)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if info.Domain != tc.wantDom {
				t.Errorf("domain: expected %q, got %q", tc.wantDom, info.Domain)
			}
			if info.Subdomain != tc.wantSub {
				t.Errorf("subdomain: expected %q, got %q", tc.wantSub, info.Subdomain)
			}
			if info.TLD != tc.wantTLD {
				t.Errorf("tld: expected %q, got %q", tc.wantTLD, info.TLD)
			}
			if info.SLD != tc.wantSLD {
				t.Errorf("sld: expected %q, got %q", tc.wantSLD, info.SLD)
			}
		})
	}
}

func TestSLD(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"google.com", "google"},
		{"kq3v9z7j1x5f8g2h.info", "kq3v9z7j1x5f8g2h"},
		{"www.example.co.uk", "example"},
		{"Example.COM", "example"},
		{"  mixed.net  ", "mixed"},
		// no dot: the whole string is the label
		{"localhost", "localhost"},
		{"", ""},
		// unknown suffix falls back to the naive split
		{"foo.bar.invalidtldxyz", "bar"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := SLD(tc.input); got != tc.expected {
				t.Errorf("SLD(%q): expected %q, got %q", tc.input, tc.expected, got)
			}
		})
	}
}
