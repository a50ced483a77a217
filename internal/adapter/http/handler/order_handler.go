package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// OrderService defines the behavior needed by OrderHandler.
type OrderService interface {
	CreateOrder(ctx context.Context, input usecase.OrderInput) (*domain.RegularTransferOrder, error)
	GetOrder(ctx context.Context, id string) (*domain.RegularTransferOrder, error)
	UpdateOrder(ctx context.Context, id string, input usecase.OrderInput) (*domain.RegularTransferOrder, error)
	DeleteOrder(ctx context.Context, id string) error
	ListOrders(ctx context.Context, filter usecase.OrderFilter) ([]*domain.RegularTransferOrder, error)
}

// OrderHandler handles regular transfer order HTTP requests.
type OrderHandler struct {
	orderUC OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderUC OrderService) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// Create registers a new regular transfer order.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.orderUC.CreateOrder(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create order", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// Get retrieves an order by ID.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orderUC.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get order", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Update rewrites an order's transfer details. The recurrence anchor is
// kept.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.orderUC.UpdateOrder(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update order", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// Delete cancels an order.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.orderUC.DeleteOrder(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete order", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists orders with optional filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := orderFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	orders, err := h.orderUC.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list orders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListOrdersResponse{
		Orders: dto.OrdersFromDomain(orders),
		Total:  int64(len(orders)),
	})
}

func orderFilterFromQuery(r *http.Request) (usecase.OrderFilter, error) {
	var filter usecase.OrderFilter
	q := r.URL.Query()

	if raw := q.Get("sender_account_id"); raw != "" {
		id, err := parseIDParam(raw)
		if err != nil {
			return filter, err
		}
		filter.SenderAccountID = &id
	}

	if raw := q.Get("receiver_account_id"); raw != "" {
		id, err := parseIDParam(raw)
		if err != nil {
			return filter, err
		}
		filter.ReceiverAccountID = &id
	}

	if raw := q.Get("period_weeks"); raw != "" {
		weeks := parseIntQuery(r, "period_weeks", 0)
		filter.PeriodWeeks = &weeks
	}

	if raw := q.Get("created_on"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		filter.CreatedOn = &day
	}

	return filter, nil
}
