package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/almondkiruthu/flashtans-app/internal/orders"
	"github.com/almondkiruthu/flashtans-app/internal/stores/kafka"
	"github.com/almondkiruthu/flashtans-app/pkg/ctxmanage"
	"github.com/almondkiruthu/flashtans-app/pkg/logkey"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var req orders.NewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("json validation error", slog.String(logkey.TraceID, traceId),
			slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Items and customer info are required"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		slog.Error("validation failed", slog.String(logkey.TraceID, traceId),
			slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Items and customer info are required"})
		return
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		var notFound *orders.ProductNotFoundError
		var noStock *orders.InsufficientStockError
		switch {
		case errors.As(err, &notFound):
			slog.Error("product not found", slog.String(logkey.TraceID, traceId),
				slog.String("ProductID", notFound.ProductID))
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &noStock):
			slog.Error("insufficient stock", slog.String(logkey.TraceID, traceId),
				slog.String("Product", noStock.ProductName))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("error creating order", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	h.publishOrderCreated(traceId, order)

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	list, err := h.o.ListOrders(c.Request.Context())
	if err != nil {
		slog.Error("error in fetching orders", slog.String(logkey.TraceID, traceId),
			slog.String(logkey.ERROR, err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	if list == nil {
		list = []orders.Order{}
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetOrder(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)
	orderID := c.Param("id")

	order, err := h.o.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			slog.Error("order not found", slog.String(logkey.TraceID, traceId),
				slog.String("OrderID", orderID))
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			slog.Error("error in retrieving order", slog.String(logkey.TraceID, traceId),
				slog.String("OrderID", orderID), slog.String(logkey.ERROR, err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// publishOrderCreated produces the order-created event best effort; failures
// are logged, never surfaced to the caller.
func (h *Handler) publishOrderCreated(traceId string, order orders.Order) {
	if h.k == nil {
		return
	}

	go func() {
		event := kafka.OrderCreatedEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Total:      order.Total,
			CreatedAt:  time.Now().UTC(),
		}
		for _, item := range order.Items {
			event.Items = append(event.Items, kafka.OrderEventItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		jsonData, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal order created event", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.ERROR, err.Error()))
			return
		}

		if err := h.k.ProduceMessage(kafka.TopicOrderCreated, []byte(order.ID), jsonData); err != nil {
			slog.Error("failed to produce order created event", slog.String(logkey.TraceID, traceId),
				slog.String(logkey.ERROR, err.Error()))
			return
		}
		slog.Info("order created event produced", slog.String(logkey.TraceID, traceId),
			slog.String("OrderID", order.ID))
	}()
}
