package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/simrandung/Ecommerce-API/internal/events"
	"github.com/simrandung/Ecommerce-API/internal/order"
)

// OrderPlacer is the slice of the placement service the handler needs.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID string) (*order.Order, error)
}

type OrderHandler struct {
	placer OrderPlacer
	repo   order.Repository
	events events.Publisher
	logger *log.Logger
}

func NewOrderHandler(placer OrderPlacer, repo order.Repository, pub events.Publisher, logger *log.Logger) *OrderHandler {
	return &OrderHandler{placer: placer, repo: repo, events: pub, logger: logger}
}

type placeOrderRequest struct {
	UserID string `json:"userId"`
	// Accepted for wire compatibility but ignored: the server-side cart is
	// the source of truth for what gets ordered.
	Products json.RawMessage `json:"products"`
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.placer.PlaceOrder(ctx, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrCartNotFound):
			writeError(w, http.StatusNotFound, "cart not found")
		case errors.Is(err, order.ErrCartEmpty):
			writeError(w, http.StatusNotFound, "cart is empty")
		default:
			writeError(w, http.StatusInternalServerError, "unable to place order")
		}
		return
	}

	// Best effort: a broker outage must not fail a placed order.
	if err := h.events.PublishOrderPlaced(ctx, o); err != nil {
		h.logger.Printf("publish order.placed for %s: %v", o.ID, err)
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.repo.ListByUser(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to retrieve order history")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) OrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	d, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "unable to retrieve order details")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
