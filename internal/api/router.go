package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hotel-management-backend/config"
	"hotel-management-backend/internal/hotel"
	"hotel-management-backend/internal/mw"
	"hotel-management-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(engine *hotel.Engine, s store.Store, cfg *config.ServerConfig, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(engine, s, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/hotel", handler.GetHotel)

		api.GET("/rooms", caching, handler.GetRooms)
		api.POST("/rooms", handler.PostRoom)
		api.GET("/rooms/available", handler.GetAvailableRooms)
		api.GET("/rooms/:number", handler.GetRoom)
		api.PUT("/rooms/:number/price", handler.PutRoomPrice)
		api.POST("/rooms/:number/checkin", handler.PostCheckIn)
		api.POST("/rooms/:number/checkout", handler.PostCheckOut)
		api.POST("/rooms/:number/cleaning", handler.PostRoomCleaning)
		api.POST("/rooms/:number/maintenance", handler.PostRoomMaintenance)
		api.POST("/rooms/:number/available", handler.PostRoomAvailable)
		api.GET("/rooms/:number/history", handler.GetRoomHistory)

		api.GET("/guests", handler.GetGuests)
		api.GET("/guests/:id/services", handler.GetGuestServices)
		api.POST("/guests/:id/services", handler.PostGuestService)

		api.GET("/services", caching, handler.GetServices)
		api.POST("/services", handler.PostService)
		api.PUT("/services/:id/price", handler.PutServicePrice)

		api.GET("/prices", caching, handler.GetPrices)

		api.POST("/day/advance", handler.PostAdvanceDay)

		api.GET("/export/rooms", handler.ExportRooms)
		api.GET("/export/guests", handler.ExportGuests)
		api.GET("/export/services", handler.ExportServices)
		api.POST("/import/rooms", handler.ImportRooms)
		api.POST("/import/guests", handler.ImportGuests)
		api.POST("/import/services", handler.ImportServices)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
