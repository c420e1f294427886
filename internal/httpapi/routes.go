package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cartada/cartada-backend/internal/ws"
)

func SetupRoutes(gw *ws.Gateway) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/", Landing)
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(gw))
	return r
}
