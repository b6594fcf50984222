package httpserver

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/logging"
)

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger stores a request-scoped logger (tagged with the chi request
// ID) in the context and logs one line per completed request.
func requestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			l := base.With().Str("requestId", chimw.GetReqID(r.Context())).Logger()

			next.ServeHTTP(ww, r.WithContext(logging.IntoContext(r.Context(), l)))

			ev := l.Info()
			if ww.Status() >= http.StatusInternalServerError {
				ev = l.Error()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

// corsFromConfig builds the CORS middleware for the browser client.
func corsFromConfig(c config.CORS) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   c.AllowedMethods,
		AllowedHeaders:   c.AllowedHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}).Handler
}
