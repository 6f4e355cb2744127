package httpserver

import (
	"context"
	"time"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	usersvc "storefront/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// userService is the slice of the user service the router needs.
type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	IssueToken(userID string) (string, error)
}

type catalogService interface {
	Create(ctx context.Context, in catalogsvc.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, page, limit int) (*catalogsvc.ListPage, error)
	Search(ctx context.Context, name, description, category string) ([]domain.Product, error)
}

type cartService interface {
	AddItems(ctx context.Context, userID string, items []cartsvc.ItemInput) error
}

type checkoutService interface {
	PlaceOrder(ctx context.Context, userID string) (*domain.Order, error)
}

type cartReader interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
}

type orderReader interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	UserSvc     userService
	CatalogSvc  catalogService
	CartSvc     cartService
	CheckoutSvc checkoutService
	CartRepo    cartReader
	OrderRepo   orderReader
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/register", registerHandler(deps.UserSvc))
	router.POST("/login", loginHandler(deps.UserSvc))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/search", searchProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.POST("/products", createProductHandler(deps.CatalogSvc))
	router.PUT("/products/:id", updateProductHandler(deps.CatalogSvc))
	router.DELETE("/products/:id", deleteProductHandler(deps.CatalogSvc))

	authed := router.Group("/", authMiddleware(deps.UserSvc))
	authed.POST("/cart", addToCartHandler(deps.CartSvc))
	authed.GET("/cart", getCartHandler(deps.CartRepo))
	authed.POST("/order", placeOrderHandler(deps.CheckoutSvc))
	authed.GET("/orders", listOrdersHandler(deps.OrderRepo))

	return router, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
