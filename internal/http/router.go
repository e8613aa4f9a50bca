package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func NewRouter(catalog *CatalogHandler, carts *CartHandler, orders *OrderHandler, auth *AuthHandler, allowOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Get("/categories", catalog.ListCategories)
	r.Get("/products/{categoryId}", catalog.ListProducts)
	r.Get("/product/{productId}", catalog.GetProduct)

	r.Get("/cart/{userId}", carts.GetCart)
	r.Post("/cart/{userId}/items", carts.AddItem)
	r.Delete("/cart/{userId}", carts.ClearCart)

	r.Post("/order/place", orders.PlaceOrder)
	r.Get("/order/history/{userId}", orders.OrderHistory)
	r.Get("/order/details/{orderId}", orders.OrderDetails)

	r.Post("/register", auth.Register)
	r.Post("/login", auth.Login)

	c := cors.New(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
