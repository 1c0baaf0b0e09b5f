package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gen "github.com/kailas-cloud/nearbite/internal/transport/api"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		path       string
		authHeader string
		wantStatus int
	}{
		{"no keys passes through", nil, "/api/search", "", http.StatusOK},
		{"empty string keys pass through", []string{"", ""}, "/api/search", "", http.StatusOK},
		{"missing header", []string{"secret"}, "/api/search", "", http.StatusUnauthorized},
		{"basic scheme", []string{"secret"}, "/api/options", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"wrong token", []string{"secret"}, "/api/search", "Bearer wrong-key", http.StatusUnauthorized},
		{"valid token", []string{"secret"}, "/api/search", "Bearer secret", http.StatusOK},
		{"second of several keys", []string{"key1", "key2"}, "/api/map", "Bearer key2", http.StatusOK},
		{"health exempt", []string{"secret"}, "/health", "", http.StatusOK},
		{"metrics exempt", []string{"secret"}, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := BearerAuthMiddleware(tt.keys)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("got %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusUnauthorized {
				return
			}

			var errResp gen.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != gen.ErrorResponseCodeUnauthorized {
				t.Errorf("error code: got %s, want %s", errResp.Code, gen.ErrorResponseCodeUnauthorized)
			}
		})
	}
}
