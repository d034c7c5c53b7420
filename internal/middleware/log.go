package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxLoggedBody = 1024

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// LogMiddleware logs every request with its body. Login, registration and
// sale bodies hold passwords and card data and are replaced. Bodies that are
// still content-encoded are not printed.
func LogMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var body []byte
			if r.Body != nil {
				body, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(body))
			}
			switch {
			case hiddenBody(r.URL.Path):
				body = []byte("<hidden>")
			case r.Header.Get("Content-Encoding") != "":
				body = []byte("<" + r.Header.Get("Content-Encoding") + ">")
			case len(body) > maxLoggedBody:
				body = body[:maxLoggedBody]
			}

			lw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lw, r)

			if lw.status == 0 {
				lw.status = http.StatusOK
			}

			logger.Infof("method=%s uri=%s status=%d duration=%s size=%d body=%s outputheaders=%v",
				r.Method, r.RequestURI, lw.status, time.Since(start), lw.size, body, lw.Header())
		})
	}
}

func hiddenBody(path string) bool {
	return path == "/api/session/login" || path == "/api/session/register" || strings.HasSuffix(path, "/sale")
}
