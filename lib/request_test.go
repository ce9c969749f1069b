package lib

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xRealIP    string
		remoteAddr string
		want       string
	}{
		{
			name:       "x-forwarded-for single entry",
			xff:        "203.0.113.7",
			remoteAddr: "10.0.0.1:4312",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for takes first entry",
			xff:        "203.0.113.7, 70.41.3.18, 150.172.238.178",
			remoteAddr: "10.0.0.1:4312",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for entries are trimmed",
			xff:        "  203.0.113.7 , 70.41.3.18",
			remoteAddr: "10.0.0.1:4312",
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip when no forwarded header",
			xRealIP:    "198.51.100.23",
			remoteAddr: "10.0.0.1:4312",
			want:       "198.51.100.23",
		},
		{
			name:       "remote addr with port stripped",
			remoteAddr: "192.0.2.44:58211",
			want:       "192.0.2.44",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.44",
			want:       "192.0.2.44",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				r.Header.Set("X-Real-IP", tt.xRealIP)
			}

			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
