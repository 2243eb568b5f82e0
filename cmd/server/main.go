package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/config"
	"github.com/sportsconnect/sportsconnect-api/internal/database"
	"github.com/sportsconnect/sportsconnect-api/internal/handler"
	"github.com/sportsconnect/sportsconnect-api/internal/middleware"
	"github.com/sportsconnect/sportsconnect-api/internal/notify"
	"github.com/sportsconnect/sportsconnect-api/internal/queue"
	"github.com/sportsconnect/sportsconnect-api/internal/repository"
	"github.com/sportsconnect/sportsconnect-api/internal/router"
	queuepublisher "github.com/sportsconnect/sportsconnect-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	coaches := repository.NewCoachRepo(db)
	sportifs := repository.NewSportifRepo(db)
	sports := repository.NewSportRepo(db)
	availability := repository.NewAvailabilityRepo(db)
	reservations := repository.NewReservationRepo(db)
	reviews := repository.NewReviewRepo(db)
	notifications := repository.NewNotificationRepo(db)

	dispatcher := notify.NewDispatcher(notifications, queuepublisher.PublishReservationEvent)

	authH := handler.NewAuthHandler(cfg, users, tokens, coaches, sportifs)
	availH := handler.NewAvailabilityHandler(availability, coaches, sportifs)
	resH := handler.NewReservationHandler(reservations, availability, coaches, sportifs, sports, dispatcher)
	reviewH := handler.NewReviewHandler(reviews, reservations, coaches, sportifs, dispatcher)
	profileH := handler.NewProfileHandler(coaches, sportifs, sports)
	notifH := handler.NewNotificationHandler(notifications)
	publicH := handler.NewPublicHandler(coaches, sports, reviews)

	e := echo.New()
	e.HideBanner = true

	// Redis backs the rate limiter and the public response cache.
	// Without a reachable Redis both degrade to pass-through.
	var publicMW []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		publicMW = append(publicMW, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		log.Printf("redis unavailable, rate limiting and response cache disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, availH, reviewH, publicMW...)
	router.RegisterShared(e, resH, notifH, cfg.JWTSecret)
	router.RegisterCoach(e, availH, resH, profileH, reviewH, cfg.JWTSecret)
	router.RegisterSportif(e, resH, profileH, reviewH, cfg.JWTSecret)

	// The consumer drains reservation events into the audit log; the
	// API keeps serving if the broker is down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
