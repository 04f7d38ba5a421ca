package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/almondkiruthu/flashtans-app/pkg/ctxmanage"
	"github.com/almondkiruthu/flashtans-app/pkg/logkey"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Index(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	list, err := h.p.ListProducts(c.Request.Context())
	if err != nil {
		slog.Error("error fetching products for index page", slog.String(logkey.TraceID, traceId),
			slog.String(logkey.ERROR, err.Error()))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "Failed to load products"})
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{"Products": list})
}

func (h *Handler) Admin(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	productList, err := h.p.ListProducts(c.Request.Context())
	if err != nil {
		slog.Error("error fetching products for admin page", slog.String(logkey.TraceID, traceId),
			slog.String(logkey.ERROR, err.Error()))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "Failed to load admin data"})
		return
	}

	orderList, err := h.o.ListOrders(c.Request.Context())
	if err != nil {
		slog.Error("error fetching orders for admin page", slog.String(logkey.TraceID, traceId),
			slog.String(logkey.ERROR, err.Error()))
		c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{"Message": "Failed to load admin data"})
		return
	}

	c.HTML(http.StatusOK, "admin.tmpl", gin.H{"Products": productList, "Orders": orderList})
}

func (h *Handler) Cart(c *gin.Context) {
	c.HTML(http.StatusOK, "cart.tmpl", nil)
}

// NotFound renders the error page for unknown page routes and plain JSON for
// unknown API routes.
func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": http.StatusText(http.StatusNotFound)})
		return
	}
	c.HTML(http.StatusNotFound, "error.tmpl", gin.H{"Message": "Page not found"})
}
