package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"time"

	"simple_cart/internal/domain"
	"simple_cart/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.CartEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.CartEvent) error {
	return nil
}

var errNotFound = errors.New("not found")

type CartHandler struct {
	catalog   Catalog
	publisher EventPublisher
	log       *slog.Logger
}

func NewCartHandler(catalog Catalog, publisher EventPublisher, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		catalog:   catalog,
		publisher: publisher,
		log:       logger,
	}
}

type addItemRequest struct {
	ID       *int64 `json:"id" binding:"required,gte=0"`
	Quantity *int64 `json:"quantity" binding:"omitempty,gte=0"`
}

type updateQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"required,gte=0"`
}

type itemResponse struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Quantity   int64          `json:"quantity"`
	Price      float64        `json:"price"`
	LineTotal  float64        `json:"line_total"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

type cartResponse struct {
	Items []itemResponse `json:"items"`
	Count int            `json:"count"`
	Total float64        `json:"total"`
}

func (h *CartHandler) cart(c *gin.Context) *usecase.Cart {
	return usecase.NewCart(requestStorage(c), h.log)
}

// Page renders the cart and the product list.
func (h *CartHandler) Page(c *gin.Context) {
	ctx := c.Request.Context()
	cart := h.cart(c)

	items, err := cart.GetItems(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	total, err := cart.Total(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Items":    sortedItems(items),
		"Count":    len(items),
		"Total":    total,
		"Products": products,
	})
}

// Action handles the page's form posts and redirects back to the page.
func (h *CartHandler) Action(c *gin.Context) {
	ctx := c.Request.Context()
	cart := h.cart(c)

	var err error
	switch action := c.PostForm("action"); action {
	case "add":
		err = h.addFromForm(c, cart)
	case "remove":
		var id int64
		if id, err = parseID(c.PostForm("id")); err == nil {
			var removed *domain.Item
			if removed, err = cart.RemoveItem(ctx, id); err == nil && removed != nil {
				h.publish(c, cart, domain.EventItemRemoved, id, removed.Quantity())
			}
		}
	case "quantity":
		var id int64
		if id, err = parseID(c.PostForm("id")); err == nil {
			var item *domain.Item
			if item, err = cart.UpdateQuantity(ctx, id, c.PostForm("quantity")); err == nil && item != nil {
				h.publish(c, cart, domain.EventQuantityUpdated, id, item.Quantity())
			}
		}
	case "clear":
		if err = cart.Clear(ctx); err == nil {
			h.publish(c, cart, domain.EventCartCleared, 0, 0)
		}
	default:
		h.log.Debug("ignoring unknown cart action", "action", action)
	}

	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *CartHandler) addFromForm(c *gin.Context, cart *usecase.Cart) error {
	ctx := c.Request.Context()

	id, err := parseID(c.PostForm("id"))
	if err != nil {
		return err
	}
	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		h.log.Debug("ignoring unknown product", "product_id", id)
		return nil
	}

	item, err := product.NewItem(c.DefaultPostForm("quantity", "1"))
	if err != nil {
		return err
	}
	if err := cart.AddItem(ctx, item); err != nil {
		return err
	}
	h.publish(c, cart, domain.EventItemAdded, id, item.Quantity())
	return nil
}

// GetCart returns every line with the cart count and total.
func (h *CartHandler) GetCart(c *gin.Context) {
	ctx := c.Request.Context()
	cart := h.cart(c)

	items, err := cart.GetItems(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	total, err := cart.Total(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := cartResponse{Items: make([]itemResponse, 0, len(items)), Count: len(items), Total: total}
	for _, item := range sortedItems(items) {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem adds a catalog product to the cart, merging with an existing line.
func (h *CartHandler) AddItem(c *gin.Context) {
	ctx := c.Request.Context()
	cart := h.cart(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("invalid add item request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}
	quantity := int64(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	product, err := h.catalog.GetProduct(ctx, *req.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if product == nil {
		h.writeError(c, errNotFound)
		return
	}

	item, err := product.NewItem(quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := cart.AddItem(ctx, item); err != nil {
		h.writeError(c, err)
		return
	}

	stored, err := cart.GetItem(ctx, item.ID())
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.publish(c, cart, domain.EventItemAdded, item.ID(), quantity)
	c.JSON(http.StatusCreated, toItemResponse(stored))
}

// UpdateQuantity replaces the quantity of a line already in the cart.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	ctx := c.Request.Context()
	cart := h.cart(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
		return
	}

	item, err := cart.UpdateQuantity(ctx, id, *req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if item == nil {
		h.writeError(c, errNotFound)
		return
	}
	h.publish(c, cart, domain.EventQuantityUpdated, id, item.Quantity())
	c.JSON(http.StatusOK, toItemResponse(item))
}

// RemoveItem deletes a line and returns it.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx := c.Request.Context()
	cart := h.cart(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	removed, err := cart.RemoveItem(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if removed == nil {
		h.writeError(c, errNotFound)
		return
	}
	h.publish(c, cart, domain.EventItemRemoved, id, removed.Quantity())
	c.JSON(http.StatusOK, toItemResponse(removed))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cart := h.cart(c)
	if err := cart.Clear(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	h.publish(c, cart, domain.EventCartCleared, 0, 0)
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CartHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "cart-api",
	})
}

// publish reports a mutation. Publishing failures are logged and never fail the request.
func (h *CartHandler) publish(c *gin.Context, cart *usecase.Cart, eventType domain.CartEventType, itemID, quantity int64) {
	ctx := c.Request.Context()
	event := domain.CartEvent{
		Type:       eventType,
		CartID:     SessionID(c),
		ItemID:     itemID,
		Quantity:   quantity,
		OccurredAt: time.Now().UTC(),
	}

	var err error
	if event.ItemCount, err = cart.Count(ctx); err != nil {
		h.log.Warn("cart event without item count", "error", err)
	}
	if event.CartTotal, err = cart.Total(ctx); err != nil {
		h.log.Warn("cart event without total", "error", err)
	}

	if err := h.publisher.Publish(ctx, event); err != nil {
		h.log.Error("failed to publish cart event", "type", eventType, "cart_id", event.CartID, "error", err)
	}
}

func (h *CartHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrReadOnlyProperty):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_argument",
			"message": err.Error(),
		})
	case errors.Is(err, usecase.ErrMergeFailed):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "merge_failed",
			"message": err.Error(),
		})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "item not found",
		})
	default:
		h.log.Error("cart request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "failed to process cart",
		})
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: id must be a non-negative integer", domain.ErrInvalidArgument)
	}
	return id, nil
}

func sortedItems(items domain.Items) []*domain.Item {
	sorted := make([]*domain.Item, 0, len(items))
	for _, id := range slices.Sorted(maps.Keys(items)) {
		sorted = append(sorted, items[id])
	}
	return sorted
}

func toItemResponse(item *domain.Item) itemResponse {
	return itemResponse{
		ID:         item.ID(),
		Name:       item.Name(),
		Quantity:   item.Quantity(),
		Price:      item.Price(),
		LineTotal:  item.LineTotal(),
		Attributes: item.Attributes,
	}
}
