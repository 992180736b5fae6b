package httpserver

import (
	"net/http"
	"time"

	"mapportal/internal/platform/config"
)

// New builds the portal HTTP server. The write timeout leaves headroom over
// the per-request timeout so slow groupings still get their 504 envelope.
func New(cfg config.Server, handler http.Handler) *http.Server {
	write := cfg.RequestTimeout + 5*time.Second
	if cfg.RequestTimeout <= 0 {
		write = time.Minute
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      write,
		IdleTimeout:       2 * time.Minute,
	}
}
