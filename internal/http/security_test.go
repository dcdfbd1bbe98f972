package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"direct", "203.0.113.7:5555", "", "203.0.113.7"},
		{"untrusted proxy ignores xff", "203.0.113.7:5555", "198.51.100.1", "203.0.113.7"},
		{"trusted proxy honours xff", "10.0.0.2:5555", "198.51.100.1, 10.0.0.2", "198.51.100.1"},
		{"trusted proxy invalid xff", "10.0.0.2:5555", "garbage", "10.0.0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := extractClientIP(r); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	m := &securityMetrics{}

	ok := httptest.NewRequest(http.MethodGet, "/api/submissions?category=Roads", nil)
	ok.Header.Set("User-Agent", "Mozilla/5.0")
	if reason := detectSuspiciousRequest(ok, m); reason != "" {
		t.Fatalf("plain dashboard request flagged: %s", reason)
	}

	bad := httptest.NewRequest(http.MethodGet, "/static/../.env", nil)
	bad.Header.Set("User-Agent", "Mozilla/5.0")
	if reason := detectSuspiciousRequest(bad, m); reason != "path:../" {
		t.Fatalf("path traversal reason = %q", reason)
	}

	scan := httptest.NewRequest(http.MethodGet, "/", nil)
	scan.Header.Set("User-Agent", "sqlmap/1.7")
	if reason := suspiciousReason(scan); reason != "agent:sqlmap" {
		t.Fatalf("scanner reason = %q", reason)
	}
	if m.snapshot()["suspicious_requests"] != 1 {
		t.Fatalf("metrics=%v", m.snapshot())
	}
}
