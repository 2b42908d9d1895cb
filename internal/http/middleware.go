package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/accredly/console-api/internal/routing"
	"github.com/accredly/console-api/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Guard returns a middleware enforcing a route guard. The session
// snapshot is read per request and the guard's decision is mapped to a
// redirect or a neutral loading body.
func Guard(sessions *service.SessionManager, params routing.GuardParams) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// First guarded request triggers the one-shot credential check.
			sessions.EnsureChecked(r.Context())
			snap := sessions.Snapshot()
			switch routing.Decide(snap, params) {
			case routing.ShowLoading:
				// No navigation decision yet: render a neutral body, never
				// a redirect.
				WriteJSON(w, http.StatusOK, map[string]string{"status": "loading"})
			case routing.RedirectLogin:
				http.Redirect(w, r, PathLogin, http.StatusSeeOther)
			case routing.RedirectPending:
				http.Redirect(w, r, PathPendingAccount, http.StatusSeeOther)
			case routing.RedirectUnauthorized:
				http.Redirect(w, r, PathUnauthorized, http.StatusSeeOther)
			case routing.Allow:
				next.ServeHTTP(w, r)
			}
		})
	}
}
