package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/config"
	"github.com/vnkhanh/survey-kit/controllers"
	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/routes"
	"github.com/vnkhanh/survey-kit/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Kết nối DB + AutoMigrate
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	stores := repository.NewStores(db)

	h := controllers.NewHandler(stores, controllers.Options{
		JWTSecret: []byte(cfg.JWTSecret),
		JWTTTL:    cfg.JWTTTL,
		ExportDir: cfg.ExportDir,
	})

	submitLimit := middleware.NewIPRateLimiter(cfg.SubmitRatePerMin, cfg.SubmitBurst, 10*time.Minute)
	defer submitLimit.Stop()

	// Tạo instance router
	r := gin.Default()

	origins := make(map[string]bool, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		origins[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return origins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Language"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Survey server is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("trusted proxies: %v", err)
	}

	routes.SetupRoutes(r, h, routes.Deps{
		Stores:      stores,
		JWTSecret:   []byte(cfg.JWTSecret),
		Locales:     utils.NewLocaleMatcher(cfg.SupportedLocales),
		SubmitLimit: submitLimit,
	})

	log.Printf("Server listening on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
