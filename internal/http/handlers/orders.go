package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/jamesatitpong11/labflowadmin/internal/queue"
	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

type orderPayload struct {
	ID            int64           `json:"id"`
	VisitID       *int64          `json:"visitId"`
	LabOrders     json.RawMessage `json:"labOrders"`
	TotalAmount   float64         `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	OrderDate     time.Time       `json:"orderDate"`
}

type createOrderRequest struct {
	VisitID       *int64          `json:"visitId"`
	LabOrders     json.RawMessage `json:"labOrders"`
	TotalAmount   float64         `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	OrderDate     *time.Time      `json:"orderDate"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.DB.Query(ctx, `
		select id, visit_id, lab_orders, total_amount, payment_method, status, order_date
		from orders
		order by order_date desc
		limit 100
	`)
	if err != nil {
		h.Logger.Error("list orders failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer rows.Close()

	orders := make([]orderPayload, 0)
	for rows.Next() {
		var (
			order  orderPayload
			amount pgtype.Numeric
		)
		if err := rows.Scan(&order.ID, &order.VisitID, &order.LabOrders, &amount,
			&order.PaymentMethod, &order.Status, &order.OrderDate); err != nil {
			h.Logger.Error("list orders scan failed", zapError(err))
			response.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		order.TotalAmount = numericToFloat64(amount)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		h.Logger.Error("list orders rows failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	response.Success(w, http.StatusOK, map[string]any{"orders": orders}, "Orders retrieved successfully")
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TotalAmount < 0 {
		response.Error(w, http.StatusBadRequest, "Total amount must not be negative")
		return
	}
	if req.Status == "" {
		req.Status = "process"
	}
	if len(req.LabOrders) == 0 {
		req.LabOrders = json.RawMessage("[]")
	}
	orderDate := time.Now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	var order orderPayload
	var amount pgtype.Numeric
	err := h.DB.QueryRow(ctx, `
		insert into orders (visit_id, lab_orders, total_amount, payment_method, status, order_date)
		values ($1, $2, $3, $4, $5, $6)
		returning id, visit_id, lab_orders, total_amount, payment_method, status, order_date
	`, req.VisitID, []byte(req.LabOrders), req.TotalAmount, req.PaymentMethod, req.Status, orderDate).
		Scan(&order.ID, &order.VisitID, &order.LabOrders, &amount,
			&order.PaymentMethod, &order.Status, &order.OrderDate)
	if err != nil {
		h.Logger.Error("create order failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	order.TotalAmount = numericToFloat64(amount)

	h.publishOrderEvent(ctx, "order.created", map[string]any{
		"orderId":     order.ID,
		"visitId":     order.VisitID,
		"totalAmount": order.TotalAmount,
		"status":      order.Status,
		"orderDate":   order.OrderDate.UTC().Format(time.RFC3339),
	})

	response.Success(w, http.StatusCreated, map[string]any{"order": order}, "Order created successfully")
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		response.Error(w, http.StatusBadRequest, "Status is required")
		return
	}

	var order orderPayload
	var amount pgtype.Numeric
	err = h.DB.QueryRow(ctx, `
		update orders
		set status = $2
		where id = $1
		returning id, visit_id, lab_orders, total_amount, payment_method, status, order_date
	`, orderID, req.Status).
		Scan(&order.ID, &order.VisitID, &order.LabOrders, &amount,
			&order.PaymentMethod, &order.Status, &order.OrderDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Error(w, http.StatusNotFound, "Order not found")
			return
		}
		h.Logger.Error("update order status failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	order.TotalAmount = numericToFloat64(amount)

	h.publishOrderEvent(ctx, "order.status.updated", map[string]any{
		"orderId": order.ID,
		"status":  order.Status,
	})

	response.Success(w, http.StatusOK, map[string]any{"order": order}, "Order status updated successfully")
}

// publishOrderEvent is best effort; a missing broker or a publish failure
// never fails the request.
func (h *Handler) publishOrderEvent(ctx context.Context, routingKey string, payload map[string]any) {
	if h.Queue == nil {
		return
	}
	if err := h.Queue.PublishJSON(ctx, queue.EventsExchange, routingKey, payload); err != nil {
		h.Logger.Warn("order event publish failed", zap.String("routingKey", routingKey), zapError(err))
	}
}
