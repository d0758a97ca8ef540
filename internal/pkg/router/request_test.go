package router

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeBody(t *testing.T) {
	req := &Request{Request: httptest.NewRequest("POST", "/", strings.NewReader(`{"mobile":"0912345678"}`))}

	var dst struct {
		Mobile string `json:"mobile"`
	}
	if err := req.DecodeBody(&dst); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dst.Mobile != "0912345678" {
		t.Fatalf("mobile = %q", dst.Mobile)
	}
}

func TestDecodeBodyRejectsUnknownFields(t *testing.T) {
	req := &Request{Request: httptest.NewRequest("POST", "/", strings.NewReader(`{"mobile":"0912345678","extra":1}`))}

	var dst struct {
		Mobile string `json:"mobile"`
	}
	if err := req.DecodeBody(&dst); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestDecodeBodyRejectsTrailingData(t *testing.T) {
	req := &Request{Request: httptest.NewRequest("POST", "/", strings.NewReader(`{"mobile":"0912345678"}{"again":true}`))}

	var dst struct {
		Mobile string `json:"mobile"`
	}
	if err := req.DecodeBody(&dst); err == nil {
		t.Fatal("trailing data accepted")
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{
			name:   "true client ip wins",
			header: map[string]string{"True-Client-IP": "203.0.113.1", "X-Real-IP": "203.0.113.2"},
			remote: "10.0.0.1:1234",
			want:   "203.0.113.1",
		},
		{
			name:   "x real ip",
			header: map[string]string{"X-Real-IP": "203.0.113.2"},
			remote: "10.0.0.1:1234",
			want:   "203.0.113.2",
		},
		{
			name:   "first forwarded hop",
			header: map[string]string{"X-Forwarded-For": "203.0.113.3, 10.0.0.1"},
			remote: "10.0.0.1:1234",
			want:   "203.0.113.3",
		},
		{
			name:   "falls back to remote addr",
			remote: "203.0.113.4:1234",
			want:   "203.0.113.4",
		},
		{
			name:   "garbage header falls back",
			header: map[string]string{"X-Real-IP": "not-an-ip"},
			remote: "203.0.113.5:1234",
			want:   "203.0.113.5",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.header {
				r.Header.Set(k, v)
			}

			if got := realIP(r); got != tc.want {
				t.Fatalf("realIP = %q, want %q", got, tc.want)
			}
		})
	}
}
