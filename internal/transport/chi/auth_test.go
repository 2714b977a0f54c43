package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBearerAuthMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		keys   []string
		path   string
		header string
		want   int
	}{
		{"no keys disables auth", nil, "/search?core=music", "", http.StatusOK},
		{"blank keys disable auth", []string{"", ""}, "/cores", "", http.StatusOK},
		{"missing header", []string{"secret"}, "/search?core=music", "", http.StatusUnauthorized},
		{"basic scheme", []string{"secret"}, "/cores", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"wrong key", []string{"secret"}, "/documents/1001/media", "Bearer wrong", http.StatusUnauthorized},
		{"valid key", []string{"secret"}, "/documents/1001/media", "Bearer secret", http.StatusOK},
		{"padded key", []string{"secret"}, "/cores", "Bearer  secret ", http.StatusOK},
		{"second key", []string{"key1", "key2"}, "/documents/index", "Bearer key2", http.StatusOK},
		{"prefix of key", []string{"secret"}, "/cores", "Bearer sec", http.StatusUnauthorized},
		{"health exempt", []string{"secret"}, "/health", "", http.StatusOK},
		{"metrics exempt", []string{"secret"}, "/metrics", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := BearerAuthMiddleware(tc.keys)(ok)

			req := httptest.NewRequest(http.MethodGet, tc.path, http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if tc.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != CodeUnauthorized {
				t.Errorf("code = %s, want %s", errResp.Code, CodeUnauthorized)
			}
		})
	}
}

func TestKnownKey(t *testing.T) {
	keys := [][]byte{[]byte("a1"), []byte("b2")}
	if !knownKey(keys, "b2") {
		t.Error("b2 should be known")
	}
	if knownKey(keys, "") || knownKey(nil, "a1") {
		t.Error("empty token or key list must not match")
	}
}
