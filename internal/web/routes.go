package web

import "net/http"

// RegisterAPIV1 registers the cursor API under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, lib *Library) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(lib)))
}

// NewDefaultMux builds the preview server mux:
// - /api/v1/* for the API
// - / redirects to the style list
func NewDefaultMux(lib *Library, cfg ServerConfig) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, lib)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/v1/styles", http.StatusFound)
	})
	if cfg.DevMode {
		return WithDevCORS(mux)
	}
	return mux
}
