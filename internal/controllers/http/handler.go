package http

import (
	"errors"
	"net/http"
	"strings"

	"edu-cart/internal/domain"
	"edu-cart/internal/services"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

type Handler struct {
	users      *services.UserService
	products   *services.ProductService
	categories *services.CategoryService
	carts      *services.CartService
	orders     *services.OrderService
	checkout   *services.CheckoutService
}

func NewHandler(
	users *services.UserService,
	products *services.ProductService,
	categories *services.CategoryService,
	carts *services.CartService,
	orders *services.OrderService,
	checkout *services.CheckoutService,
) *Handler {
	return &Handler{
		users:      users,
		products:   products,
		categories: categories,
		carts:      carts,
		orders:     orders,
		checkout:   checkout,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.PATCH("/me", h.AuthRequired, h.UpdateMe)
	}

	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.AuthRequired, h.AdminRequired, h.CreateProduct)
		products.PATCH("/:id", h.AuthRequired, h.AdminRequired, h.UpdateProduct)
		products.DELETE("/:id", h.AuthRequired, h.AdminRequired, h.DeleteProduct)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.AuthRequired, h.AdminRequired, h.CreateCategory)
	}

	cart := r.Group("/cart", h.AuthRequired)
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddCartItem)
		cart.PUT("", h.SetCartItemQuantity)
		cart.DELETE("", h.EmptyCart)
		cart.DELETE("/items/:productId", h.RemoveCartItem)
	}

	orders := r.Group("/orders", h.AuthRequired)
	{
		orders.POST("", h.Checkout)
		orders.GET("/my-orders", h.MyOrders)
		orders.GET("/admin/all", h.AdminRequired, h.AllOrders)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
	}
}

// AuthRequired resolves the bearer token into a user and stores it on
// the request context.
func (h *Handler) AuthRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	user, err := h.users.ResolveToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

func (h *Handler) AdminRequired(c *gin.Context) {
	if !currentUser(c).IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(currentUserKey).(*domain.User)
}

// respondError maps service errors onto transport status codes.
func respondError(c *gin.Context, err error) {
	var notFound *services.ProductNotFoundError
	var shortStock *services.InsufficientStockError

	switch {
	case errors.As(err, &notFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &shortStock),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrCategoryNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbiddenTransition):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error, no changes were persisted"})
	}
}
