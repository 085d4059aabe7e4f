package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSON(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantErr     error
		wantStatus  int
		expectValue string
	}{
		{
			name: "success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Accept") != "application/json" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Write([]byte(`{"value":"ok"}`))
			},
			expectValue: "ok",
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
			wantStatus: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewHTTPClient("test", time.Second, func(string) string { return "root" })

			var dest struct {
				Value string `json:"value"`
			}
			err := GetJSON(context.Background(), client, server.URL, &dest)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.wantStatus > 0:
				var se *StatusError
				if !errors.As(err, &se) || se.StatusCode != tt.wantStatus {
					t.Errorf("expected status error %d, got %v", tt.wantStatus, err)
				}
			case tt.wantStatus < 0:
				if err == nil {
					t.Error("expected decode error")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if dest.Value != tt.expectValue {
					t.Errorf("expected %q, got %q", tt.expectValue, dest.Value)
				}
			}
		})
	}
}

func TestGetJSON_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dest map[string]any
	if err := GetJSON(ctx, server.Client(), server.URL, &dest); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type stubTransport struct {
	resp *http.Response
	err  error
}

func (s *stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return s.resp, s.err
}

func TestMetricsRoundTripper(t *testing.T) {
	var seen string
	rt := NewMetricsRoundTripper(&stubTransport{resp: &http.Response{StatusCode: http.StatusOK}}, "gameinfo", func(path string) string {
		seen = path
		return "events"
	})

	req := httptest.NewRequest(http.MethodGet, "http://example.com/events/1", nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if seen != "/events/1" {
		t.Errorf("expected endpoint func to see the path, got %q", seen)
	}

	boom := errors.New("dial failed")
	rt = NewMetricsRoundTripper(&stubTransport{err: boom}, "market", nil)
	if _, err := rt.RoundTrip(req); !errors.Is(err, boom) {
		t.Errorf("expected transport error to pass through, got %v", err)
	}
}

func TestNewMetricsRoundTripper_DefaultTransport(t *testing.T) {
	rt := NewMetricsRoundTripper(nil, "x", nil)
	if rt.Proxied != http.DefaultTransport {
		t.Error("expected default transport")
	}
}
