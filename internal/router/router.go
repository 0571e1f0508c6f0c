// Package router registers the HTTP routes of the dashboard API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rlaig/ezorder/internal/handler"
	"github.com/rlaig/ezorder/internal/middleware"
	"github.com/rlaig/ezorder/internal/model"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers login, refresh and logout under /v1/auth and the
// authenticated /v1/me. Any signed-in dashboard role may call /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(model.RoleMerchant), string(model.RoleAdmin), string(model.RoleSuperAdmin)),
	)
}

// RegisterAdmin registers the platform admin endpoints under /v1/admin.
// extra runs after authentication, so per-user cache and rate limit keys
// see the caller.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(model.RoleAdmin), string(model.RoleSuperAdmin)),
	}, extra...)
	g := e.Group("/v1/admin", mw...)

	g.GET("/stats", a.Stats)

	// ---- Merchants ----
	g.GET("/merchants", a.ListMerchants)
	g.POST("/merchants", a.CreateMerchant)
	g.GET("/merchants/:id", a.GetMerchant)
	g.PATCH("/merchants/:id", a.UpdateMerchant)
	g.PATCH("/merchants/:id/status", a.UpdateMerchantStatus)

	// ---- Collection browser ----
	g.GET("/collections/:collection", a.ListCollection)
	g.GET("/collections/:collection/:id", a.GetCollectionRecord)
}

// RegisterMerchant registers the merchant's own dashboard under /v1/merchant.
func RegisterMerchant(e *echo.Echo, m *handler.MerchantHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(string(model.RoleMerchant)),
	}, extra...)
	g := e.Group("/v1/merchant", mw...)

	g.GET("/profile", m.Profile)
	g.PATCH("/profile", m.UpdateProfile)

	// ---- Menu ----
	g.GET("/categories", m.ListCategories)
	g.POST("/categories", m.CreateCategory)
	g.PATCH("/categories/:id", m.UpdateCategory)
	g.DELETE("/categories/:id", m.DeleteCategory)

	g.GET("/items", m.ListItems)
	g.POST("/items", m.CreateItem)
	g.PATCH("/items/:id", m.UpdateItem)
	g.DELETE("/items/:id", m.DeleteItem)

	g.GET("/items/:id/modifiers", m.ListModifiers)
	g.POST("/items/:id/modifiers", m.CreateModifier)
	g.PATCH("/modifiers/:id", m.UpdateModifier)
	g.DELETE("/modifiers/:id", m.DeleteModifier)
	g.POST("/modifiers/copy", m.CopyModifiers)

	// ---- QR codes ----
	g.GET("/qr-codes", m.ListQRCodes)
	g.POST("/qr-codes", m.CreateQRCode)
	g.PATCH("/qr-codes/:id", m.UpdateQRCode)
	g.DELETE("/qr-codes/:id", m.DeleteQRCode)

	// ---- Orders ----
	g.GET("/orders", m.ListOrders)
	g.GET("/orders/stats", m.OrderStats)
	g.GET("/orders/:id", m.GetOrder)
	g.POST("/orders/:id/advance", m.AdvanceOrder)
	g.POST("/orders/:id/cancel", m.CancelOrder)
}
