package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskflow/internal/config"
	"taskflow/internal/handler"
	"taskflow/internal/middleware"
	"taskflow/internal/realtime"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Hub    *realtime.Hub
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Println("Connected to database")

	if err := runMigrations(db, cfg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Realtime hub for board groups
	hub := realtime.NewHub()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret)
	boardHandler := handler.NewBoardHandler(boardRepo, listRepo, cardRepo)
	listHandler := handler.NewListHandler(listRepo, boardRepo, hub)
	cardHandler := handler.NewCardHandler(cardRepo, listRepo, boardRepo, hub)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Websocket connections authenticate with a token in the query
	// string, so they sit outside the header-based middleware.
	r.GET("/ws", realtime.ServeWS(hub, cfg.JWTSecret))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/:id", boardHandler.GetByID)

		// List routes
		authorized.POST("/lists", listHandler.Create)
		authorized.PUT("/boards/:id/lists/reorder", listHandler.Reorder)
		authorized.POST("/boards/:id/lists/:list_id/move", listHandler.Move)

		// Card routes
		authorized.POST("/cards", cardHandler.Create)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.PUT("/boards/:id/cards/reorder", cardHandler.Reorder)
		authorized.POST("/cards/:id/move", cardHandler.Move)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Hub:    hub,
		Config: cfg,
	}, nil
}

func runMigrations(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsDir, cfg.DBName, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Println("Migrations up to date")
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s", err)
	}

	log.Println("Server exited properly")
}
