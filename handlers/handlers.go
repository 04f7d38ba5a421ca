package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"os"

	"github.com/almondkiruthu/flashtans-app/internal/orders"
	"github.com/almondkiruthu/flashtans-app/internal/products"
	"github.com/almondkiruthu/flashtans-app/internal/stores/kafka"
	"github.com/almondkiruthu/flashtans-app/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

type Handler struct {
	p   products.Conf
	o   orders.Conf
	svc *orders.Service
	k   *kafka.Conf // nil when no broker is configured
}

func NewHandler(p products.Conf, o orders.Conf, svc *orders.Service, k *kafka.Conf) *Handler {
	return &Handler{
		p:   p,
		o:   o,
		svc: svc,
		k:   k,
	}
}

// API wires every route of the storefront onto a gin engine.
func API(p products.Conf, o orders.Conf, svc *orders.Service, k *kafka.Conf) *gin.Engine {
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()

	h := NewHandler(p, o, svc, k)
	r.Use(middleware.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))

	r.GET("/ping", healthCheck)

	// Page routes
	r.GET("/", h.Index)
	r.GET("/admin", h.Admin)
	r.GET("/cart", h.Cart)

	api := r.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.POST("/products", h.CreateProduct)
		api.GET("/products/:id", h.GetProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)

		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
	}

	r.NoRoute(h.NotFound)

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
