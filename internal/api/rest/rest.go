package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-composable-ledger/internal/api/middleware"
	"github.com/feral-file/ff-composable-ledger/internal/ratelimit"
)

// SetupRoutes configures all REST API routes. Writes are rate limited per caller when limiter is set.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) {
	limit := middleware.RateLimit(limiter)

	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Parent and attached children (public read access)
		v1.GET("/parents/:parent_id", handler.GetParent)
		v1.GET("/parents/:parent_id/children", handler.GetChildRegistries)
		v1.GET("/parents/:parent_id/children/:registry", handler.GetChildren)
		v1.GET("/parents/:parent_id/children/:registry/:asset_id", handler.GetChildBalance)

		// Detaching children acts for the token subject
		v1.POST("/parents/:parent_id/children/transfer", middleware.JWTAuth(authCfg), limit, handler.TransferChild)
		v1.POST("/parents/:parent_id/children/batch-transfer", middleware.JWTAuth(authCfg), limit, handler.TransferChildren)

		// Parent token registry
		v1.POST("/parents", middleware.APIKeyAuth(authCfg), limit, handler.MintParent)
		v1.POST("/parents/:parent_id/approve", middleware.JWTAuth(authCfg), limit, handler.ApproveParent)
		v1.POST("/parents/:parent_id/transfer", middleware.JWTAuth(authCfg), limit, handler.TransferParent)
		v1.POST("/operators", middleware.JWTAuth(authCfg), limit, handler.SetOperator)

		// Child registries
		v1.POST("/registries/:registry/mint", middleware.APIKeyAuth(authCfg), limit, handler.MintChild)
		v1.POST("/registries/:registry/transfer", middleware.JWTAuth(authCfg), limit, handler.TransferInRegistry)
		v1.POST("/registries/:registry/batch-transfer", middleware.JWTAuth(authCfg), limit, handler.BatchTransferInRegistry)
		v1.GET("/registries/:registry/balances/:owner/:asset_id", handler.GetRegistryBalance)

		// Event journal (public read access)
		v1.GET("/events", handler.GetEvents)
	}
}
