package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"backend-alpsconnect/internal/auth"
	"backend-alpsconnect/internal/chat"
	"backend-alpsconnect/internal/config"
	"backend-alpsconnect/internal/db"
	"backend-alpsconnect/internal/demo"
	"backend-alpsconnect/internal/feedback"
	"backend-alpsconnect/internal/mockdata"
	"backend-alpsconnect/internal/profile"
	"backend-alpsconnect/internal/stats"
	"backend-alpsconnect/internal/stream"
	"backend-alpsconnect/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Demo     *demo.Environment
	Trips    *trip.Store
	Chats    *chat.Store
	Profiles *profile.Store
	Auth     *auth.Service
	Stats    *stats.Tracker
	Feedback *feedback.Service
}

func NewServer(cfg config.Config, pg *pgxpool.Pool, redisClient *redis.Client) (*Server, error) {
	policy, err := trip.ParseJoinPolicy(cfg.JoinPolicy)
	if err != nil {
		return nil, err
	}
	accounts, err := auth.DemoAccounts(cfg.DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("demo accounts: %w", err)
	}

	// A nil pool must reach the services as a nil interface.
	var querier db.Querier
	if pg != nil {
		querier = pg
		if err := db.EnsureSchema(context.Background(), querier); err != nil {
			log.Printf("postgres schema setup failed: %v", err)
		}
	}

	kv, err := statsStore(cfg.StatsBackend, querier, redisClient)
	if err != nil {
		return nil, err
	}

	var tokens auth.TokenStore = auth.NewMemoryTokenStore()
	if redisClient != nil {
		tokens = auth.NewRedisTokenStore(redisClient)
	}

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(compress.New(compress.Config{Next: isStreamPath}))
	app.Use(etag.New(etag.Config{Next: isStreamPath}))

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       pg,
		Redis:    redisClient,
		Stream:   hub,
		Trips:    trip.NewStore(policy, hub),
		Chats:    chat.NewStore(hub),
		Profiles: profile.NewStore(),
		Auth:     auth.NewService(cfg.JWTSecret, accounts, tokens),
		Stats:    stats.NewTracker(kv),
		Feedback: feedback.NewService(querier),
	}
	s.Demo = demo.NewEnvironment(newGenerator(cfg), s.Trips, s.Chats, s.Profiles)
	if _, err := s.Demo.Load(cfg.DefaultLang); err != nil {
		hub.Close()
		return nil, err
	}

	registerRoutes(s)
	return s, nil
}

// Close stops background work. Connections are owned by the caller.
func (s *Server) Close() {
	s.Stream.Close()
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "lang": s.Demo.Language()})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), s.Auth)
	demo.RegisterRoutes(s.App.Group("/demo"), s.Demo)
	trip.RegisterRoutes(s.App.Group("/trips"), s.Trips, s.Profiles, jwtMiddleware)
	profile.RegisterRoutes(s.App.Group("/profile"), s.Profiles, jwtMiddleware)
	chat.RegisterRoutes(s.App.Group("/chats"), s.Chats, jwtMiddleware)
	stats.RegisterRoutes(s.App.Group("/stats"), s.Stats)
	feedback.RegisterRoutes(s.App.Group("/feedback", submitLimiter()), s.Feedback, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

func newGenerator(cfg config.Config) *mockdata.Generator {
	if cfg.MockSeed != 0 {
		return mockdata.New(mockdata.WithSeed(cfg.MockSeed))
	}
	return mockdata.New()
}

// statsStore falls back to memory when the requested backend is not connected.
func statsStore(backend string, q db.Querier, rdb *redis.Client) (stats.KV, error) {
	switch backend {
	case "", config.StatsMemory:
		return stats.NewMemoryKV(), nil
	case config.StatsRedis:
		if rdb == nil {
			log.Printf("stats backend redis unavailable, using memory")
			return stats.NewMemoryKV(), nil
		}
		return stats.NewRedisKV(rdb), nil
	case config.StatsPostgres:
		if q == nil {
			log.Printf("stats backend postgres unavailable, using memory")
			return stats.NewMemoryKV(), nil
		}
		return stats.NewPostgresKV(q), nil
	}
	return nil, fmt.Errorf("unknown stats backend: %s", backend)
}

// submitLimiter caps anonymous feedback posts per client IP.
func submitLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
		},
	})
}

func isStreamPath(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/stream")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("request %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
