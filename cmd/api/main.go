package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wichananm65/voice-shop-backend/internal/activity"
	"github.com/wichananm65/voice-shop-backend/internal/cart"
	"github.com/wichananm65/voice-shop-backend/internal/config"
	"github.com/wichananm65/voice-shop-backend/internal/logger"
	"github.com/wichananm65/voice-shop-backend/internal/product"
	"github.com/wichananm65/voice-shop-backend/internal/recommend"
	"github.com/wichananm65/voice-shop-backend/internal/voice"
)

// main wires dependencies and starts the HTTP server. With DATABASE_URL set
// the repositories run on Postgres; without it the service runs fully
// in-memory off the JSON catalog file.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	var (
		productRepo  product.Repository
		cartRepo     cart.Repository
		activityRepo activity.Repository
	)

	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL, log)
		defer db.Close()
		ensureSchema(db, log)

		productRepo = product.NewPostgresRepository(db)
		cartRepo = cart.NewPostgresRepository(db)
		activityRepo = activity.NewPostgresRepository(db)
		log.Info("using postgres repositories")
	} else {
		jsonRepo := product.NewJSONRepository(cfg.CatalogPath)
		if err := jsonRepo.Reload(); err != nil {
			log.Warn("catalog load failed, starting empty", zap.String("path", cfg.CatalogPath), zap.Error(err))
		}
		productRepo = jsonRepo
		cartRepo = cart.NewInMemoryRepository()
		activityRepo = activity.NewInMemoryRepository()
		log.Info("using in-memory repositories", zap.String("catalog", cfg.CatalogPath))
	}

	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	cartService := cart.NewService(cartRepo)
	cartHandler := cart.NewHandler(cartService)

	interpreter := voice.NewInterpreter(productService, cartService, cfg.CartTimeout, log)
	voiceHandler := voice.NewHandler(interpreter, activityRepo, productService, log)

	recommendHandler := recommend.NewHandler(productService)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(log))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "voice-shop-backend",
			"message": "Voice Shopping API. Try POST /voice/parse",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	productHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	voiceHandler.RegisterPublicRoutes(app)
	recommendHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	productHandler.RegisterProtectedRoutes(app)

	log.Info("starting server", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)))
		return err
	}
}

func mustOpenDB(dbURL string, log *zap.Logger) *sql.DB {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		log.Fatal("ping database", zap.Error(err))
	}
	return db
}

func ensureSchema(db *sql.DB, log *zap.Logger) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			category TEXT,
			image TEXT,
			ord INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			username TEXT PRIMARY KEY,
			items JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_activity (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			command_text TEXT,
			intent TEXT,
			product_id TEXT,
			product_name TEXT,
			category TEXT,
			quantity INT NOT NULL DEFAULT 1,
			confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL DEFAULT FALSE,
			ts TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS user_activity_user_ts ON user_activity (user_id, ts DESC)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			command_text TEXT,
			was_correct BOOLEAN NOT NULL DEFAULT FALSE,
			actual_product TEXT,
			ts TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal("ensure schema", zap.Error(err))
		}
	}
}
