// Package router wires handler route registrars onto the gin engine under a
// versioned API prefix.
package router

import "github.com/gin-gonic/gin"

// RouteRegistrar is implemented by handlers that own a set of routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine   *gin.Engine
	version  string
	handlers []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.version = version
	}
}

// NewRouter creates a Router over the given engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues one or more registrars. Chainable.
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.handlers = append(r.handlers, registrars...)
	return r
}

// Setup mounts every registered handler and returns the API group so callers
// can attach additional routes to the same prefix.
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/" + r.version)
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
	return api
}
