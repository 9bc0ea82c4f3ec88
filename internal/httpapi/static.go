package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountUI serves the frontend assets in dir under /ui/.
func MountUI(r chi.Router, dir string) {
	fs := http.StripPrefix("/ui", http.FileServer(http.Dir(dir)))
	r.Get("/ui", http.RedirectHandler("/ui/", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/ui/*", fs.ServeHTTP)
}
