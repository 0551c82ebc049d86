package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/11shadownevermore11/Hackaton/internal/config"
	"github.com/11shadownevermore11/Hackaton/internal/handler"
	"github.com/11shadownevermore11/Hackaton/internal/middleware"
	"github.com/11shadownevermore11/Hackaton/internal/queue"
	"github.com/11shadownevermore11/Hackaton/internal/repository"
	"github.com/11shadownevermore11/Hackaton/internal/router"
	queue_publisher "github.com/11shadownevermore11/Hackaton/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// All state is process-local and starts empty; nothing survives a
	// restart.
	users := repository.NewUserRepo()
	tokens := repository.NewTokenRepo()
	sessions := repository.NewSessionRepo(cfg.SessionTTL)
	votes := repository.NewVoteRepo(cfg.MinRating, cfg.MaxRating)
	locations := repository.NewLocationRepo()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.CORS())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := handler.NewAuthHandler(cfg, users, tokens)
	loc := handler.NewLocationHandler(locations, cfg.UploadDir)
	voting := handler.NewVotingHandler(cfg, users, sessions, votes)
	voting.Publish = func(ev queue.VoteRecordedEvent) {
		_ = queue_publisher.PublishVoteRecorded(context.Background(), ev)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterLocations(e, loc)
	router.RegisterVoting(e, voting)

	go func() {
		if err := queue.StartVoteConsumer(); err != nil {
			log.Printf("vote-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
