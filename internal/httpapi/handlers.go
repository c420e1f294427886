package httpapi

import (
	_ "embed"
	"net/http"
)

//go:embed assets/index.html
var landingPage []byte

// Landing serves the static landing page.
func Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(landingPage)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
