package http

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"simple_cart/pkg/prometheus"

	"github.com/gin-gonic/gin"
)

//go:embed web/*.html
var webFS embed.FS

type RouterConfig struct {
	Catalog       Catalog
	Publisher     EventPublisher
	Resolver      StorageResolver
	SessionCookie string
	CookieMaxAge  int
}

func SetupRouter(cfg RouterConfig, log *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(prometheus.Middleware())

	router.SetHTMLTemplate(template.Must(
		template.New("").Funcs(template.FuncMap{"money": money}).ParseFS(webFS, "web/*.html"),
	))

	publisher := cfg.Publisher
	if publisher == nil {
		publisher = NopPublisher{}
	}
	cartHandler := NewCartHandler(cfg.Catalog, publisher, log)

	router.GET("/health", cartHandler.HealthCheck)
	router.GET("/api/products", cartHandler.ListProducts)

	cart := router.Group("/")
	cart.Use(Session(cfg.SessionCookie, cfg.CookieMaxAge, cfg.Resolver, log))
	{
		cart.GET("/", cartHandler.Page)
		cart.POST("/", cartHandler.Action)

		cart.GET("/api/cart", cartHandler.GetCart)
		cart.DELETE("/api/cart", cartHandler.ClearCart)
		cart.POST("/api/cart/items", cartHandler.AddItem)
		cart.PUT("/api/cart/items/:id", cartHandler.UpdateQuantity)
		cart.DELETE("/api/cart/items/:id", cartHandler.RemoveItem)
	}

	return router
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
