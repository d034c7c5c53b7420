package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func gzipped(t *testing.T, s string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return &buf
}

func TestDecompressMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/orders/7/sale", gzipped(t, `{"paymentMethod":"CASH"}`))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	var body string
	DecompressMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(data)
		require.Empty(t, r.Header.Get("Content-Encoding"))
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, `{"paymentMethod":"CASH"}`, body)
}

func TestDecompressMiddlewareRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	DecompressMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCompressMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		accept      string
		contentType string
		status      int
		body        string
		gzipped     bool
	}{
		{"json", "gzip, deflate", "application/json", http.StatusOK, `[{"id":1}]`, true},
		{"error text", "gzip", "text/plain; charset=utf-8", http.StatusBadRequest, "forbidden\n", true},
		{"not accepted", "", "application/json", http.StatusOK, `{}`, false},
		{"binary", "gzip", "image/png", http.StatusOK, "png", false},
		{"no content", "gzip", "application/json", http.StatusNoContent, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rr := httptest.NewRecorder()

			CompressMiddleware(zaptest.NewLogger(t).Sugar())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})).ServeHTTP(rr, req)

			require.Equal(t, tt.status, rr.Code)

			if !tt.gzipped {
				require.Empty(t, rr.Header().Get("Content-Encoding"))
				require.Equal(t, tt.body, rr.Body.String())
				return
			}

			require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
			gr, err := gzip.NewReader(rr.Body)
			require.NoError(t, err)
			defer gr.Close()

			data, err := io.ReadAll(gr)
			require.NoError(t, err)
			require.Equal(t, tt.body, string(data))
		})
	}
}
