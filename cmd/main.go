package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"blog-service/internal/api"
	"blog-service/internal/auth"
	"blog-service/internal/config"
	"blog-service/internal/events"
	"blog-service/internal/ratelimit"
	"blog-service/internal/repository"
	"blog-service/internal/service"
	"blog-service/migrations"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
)

func connectDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB")
				return db, nil
			}
		}
		log.Printf("Retry %d: failed to connect to DB: %v", i+1, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB after retries: %v", err)
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg.DatabaseDSN)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrateUsers(3, db); err != nil {
		log.Fatalf("Failed to migrate users table: %v", err)
	}
	if err := migrations.AutoMigratePosts(3, db); err != nil {
		log.Fatalf("Failed to migrate posts table: %v", err)
	}

	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		store = ratelimit.NewRedisStore(rdb)
	}
	limiter := ratelimit.New(store, ratelimit.Config{
		Max:            cfg.RateLimitMax,
		Window:         cfg.RateLimitWindow,
		Enabled:        cfg.RateLimitEnabled,
		SkipSuccessful: cfg.RateLimitSkipSuccessful,
	})

	var publisher events.Publisher = events.NopPublisher{}
	if brokers := config.KafkaBrokerURLs(); len(brokers) > 0 {
		publisher = events.NewKafkaPublisher(config.NewKafkaWriter("blog-events", brokers))
	}

	tokens := auth.NewService(cfg.JWTSecret, cfg.JWTExpires)

	userRepo := repository.NewMySQLUserRepository(db)
	postRepo := repository.NewMySQLPostRepository(db)

	userService := service.NewUserService(userRepo, postRepo, publisher, cfg.BcryptCost)
	postService := service.NewPostService(postRepo, userRepo, publisher)
	authService := service.NewAuthService(userRepo, postRepo, tokens, publisher, cfg.BcryptCost)

	e := api.NewRouter(api.Deps{
		Users:       api.NewUserHandler(userService),
		Posts:       api.NewPostHandler(postService),
		Auth:        api.NewAuthHandler(authService),
		Tokens:      tokens,
		UserRepo:    userRepo,
		Limiter:     limiter,
		Environment: cfg.Environment,
	})

	e.Logger.Fatal(e.Start(cfg.Addr))
}
