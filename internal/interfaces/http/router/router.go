// Package router assembles the versioned API surface from per-domain
// route groups.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shopadmin/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Use adds middleware applied to the whole versioned API group
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one domain under a shared prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:   name,
		prefix: prefix,
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("GET", path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("POST", path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("PUT", path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("DELETE", path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:   method,
		path:     path,
		handlers: handlers,
	})
	return dg
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)

	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// AuthRoutes builds the authentication group. The rate limit middleware,
// when non-nil, guards only the credential endpoints.
func AuthRoutes(h *handler.AuthHandler, authLimiter gin.HandlerFunc) RouteRegistrar {
	dg := NewDomainGroup("auth", "/auth")
	if authLimiter != nil {
		dg.POST("/register", authLimiter, h.Register)
		dg.POST("/login", authLimiter, h.Login)
	} else {
		dg.POST("/register", h.Register)
		dg.POST("/login", h.Login)
	}
	dg.GET("/me", h.Me)
	return dg
}

// ProductRoutes builds the product catalog CRUD group
func ProductRoutes(h *handler.ProductHandler) RouteRegistrar {
	return NewDomainGroup("products", "/products").
		GET("", h.List).
		GET("/:id", h.GetByID).
		POST("", h.Create).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// OrderRoutes builds the order read, invoice, and confirmation group
func OrderRoutes(h *handler.OrderHandler, notifications *handler.NotificationHandler) RouteRegistrar {
	return NewDomainGroup("orders", "/orders").
		GET("", h.List).
		GET("/:id", h.GetByID).
		GET("/:id/invoice", h.Invoice).
		POST("/:id/send-confirmation", notifications.SendOrderConfirmation).
		POST("/:id/send-sms", notifications.SendOrderSMS)
}

// SyncRoutes builds the platform reconciliation group
func SyncRoutes(products *handler.ProductHandler, orders *handler.OrderHandler) RouteRegistrar {
	return NewDomainGroup("sync", "/sync").
		POST("/products", products.Sync).
		POST("/orders", orders.Sync)
}

// UploadRoutes builds the media upload group
func UploadRoutes(h *handler.UploadHandler) RouteRegistrar {
	return NewDomainGroup("uploads", "/uploads").
		POST("", h.Upload)
}

// NotificationRoutes builds the outbound notification group
func NotificationRoutes(h *handler.NotificationHandler) RouteRegistrar {
	return NewDomainGroup("notifications", "/notifications").
		POST("/email", h.SendEmail).
		POST("/sms", h.SendSMS)
}

// GenerateRoutes builds the text generation proxy group
func GenerateRoutes(h *handler.GenerateHandler) RouteRegistrar {
	return NewDomainGroup("generate", "/generate").
		POST("", h.Generate)
}

// SystemRoutes builds the system information group
func SystemRoutes(h *handler.SystemHandler) RouteRegistrar {
	return NewDomainGroup("system", "/system").
		GET("/info", h.GetSystemInfo)
}
