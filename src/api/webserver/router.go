package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kltransit/lostfound/src/api/config"
	"github.com/kltransit/lostfound/src/claims"
	"github.com/kltransit/lostfound/src/matching"
	"github.com/kltransit/lostfound/src/shared/data"
	"github.com/kltransit/lostfound/src/shared/storage"
)

func New(cfg config.Config, store storage.Store, rdb *redis.Client) *gin.Engine {
	r := gin.Default()
	attachRoutes(r, cfg, store, rdb)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, store storage.Store, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	mgr := claims.NewManager(store, data.NewRedisLocker(rdb), data.NewStreamPublisher(rdb))
	itemH := NewItems(store)
	claimH := NewClaims(mgr)
	matchH := NewMatches(matching.NewFinder(store))
	notifH := NewNotifications(store)

	limiter := NewRateLimiter(60, time.Minute)

	v1 := r.Group("/v1")
	v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)), RateLimitMiddleware(limiter))
	{
		v1.POST("/items", itemH.Create)
		v1.GET("/items", itemH.List)
		v1.GET("/items/:id", itemH.Get)
		v1.GET("/items/:id/matches", matchH.Find)

		v1.POST("/claims", claimH.Submit)
		v1.POST("/claims/:id/cancel", claimH.Cancel)

		v1.GET("/notifications", notifH.List)
		v1.POST("/notifications/:id/read", notifH.MarkRead)

		v1.PUT("/items/:id/status", AdminOnly(), itemH.SetStatus)
		v1.POST("/claims/:id/approve", AdminOnly(), claimH.Approve)
		v1.POST("/claims/:id/reject", AdminOnly(), claimH.Reject)
		v1.POST("/claims/:id/status", AdminOnly(), claimH.SetStatus)
	}
}
