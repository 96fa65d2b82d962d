package api

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"stockroom/internal/api/handlers"
	jwtMiddleware "stockroom/internal/api/middleware"
	"stockroom/internal/api/services"
	"stockroom/internal/api/ws"
	"stockroom/internal/config"
	"stockroom/internal/metrics"
	"stockroom/internal/repository"
)

func SetupRoutes(e *echo.Echo, store repository.Store, rdb *goredis.Client, cfg *config.Config) {
	e.Use(metrics.PrometheusMiddleware())

	statusHandler := handlers.NewStatusHandler(store)
	e.GET("/health", healthCheck)
	e.GET("/status", statusHandler.GetStatus)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	wsHandler := handlers.NewWebSocketHandler(cfg)
	e.GET("/api/ws", wsHandler.HandleConnection)

	e.Validator = NewValidator()

	authHandler := handlers.NewAuthHandler(store, cfg.JWTKey)
	authGroup := e.Group("/api/auth")
	authGroup.POST("/signin", authHandler.SignIn)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTKey),
		ContextKey: "user",
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		},
	}

	apiGroup := e.Group("/api")
	apiGroup.Use(echojwt.WithConfig(jwtConfig))
	apiGroup.Use(jwtMiddleware.ExtractUserIDFromJWT())

	recorder := services.NewActivityService(store, ws.GetHub())

	userHandler := handlers.NewUserHandler(store, recorder, rdb)
	apiGroup.GET("/user/me", userHandler.GetCurrentUser)
	apiGroup.GET("/users", userHandler.GetUsers)
	apiGroup.GET("/users/:id", userHandler.GetUser)
	apiGroup.POST("/users", userHandler.CreateUser)
	apiGroup.PUT("/users/:id", userHandler.UpdateUser)
	apiGroup.DELETE("/users/:id", userHandler.DeleteUser)

	assetHandler := handlers.NewAssetHandler(store, recorder, rdb)
	apiGroup.GET("/assets", assetHandler.GetAssets)
	apiGroup.GET("/assets/stats", assetHandler.GetAssetStats)
	apiGroup.GET("/assets/tag/:tag", assetHandler.GetAssetByTag)
	apiGroup.GET("/assets/:id", assetHandler.GetAsset)
	apiGroup.POST("/assets", assetHandler.CreateAsset)
	apiGroup.PUT("/assets/:id", assetHandler.UpdateAsset)
	apiGroup.DELETE("/assets/:id", assetHandler.DeleteAsset)
	apiGroup.POST("/assets/:id/checkout", assetHandler.CheckoutAsset)
	apiGroup.POST("/assets/:id/checkin", assetHandler.CheckinAsset)

	resourceHandler := handlers.NewResourceHandler(store, recorder)
	apiGroup.GET("/resources", resourceHandler.GetResources)
	apiGroup.GET("/resources/:id", resourceHandler.GetResource)
	apiGroup.POST("/resources", resourceHandler.CreateResource)
	apiGroup.PUT("/resources/:id", resourceHandler.UpdateResource)
	apiGroup.DELETE("/resources/:id", resourceHandler.DeleteResource)
	apiGroup.GET("/resources/:id/assignments", resourceHandler.GetAssignments)
	apiGroup.POST("/resources/:id/assignments", resourceHandler.AssignResource)
	apiGroup.POST("/assignments/:assignment_id/return", resourceHandler.ReturnAssignment)

	activityHandler := handlers.NewActivityHandler(store)
	apiGroup.GET("/activities", activityHandler.GetActivities)
	apiGroup.GET("/users/:id/activities", activityHandler.GetActivitiesByUser)
	apiGroup.GET("/activities/:item_type/:item_id", activityHandler.GetActivitiesByItem)
}

func healthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
