package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inkwell-backend/internal/api"
	"inkwell-backend/internal/auth"
	"inkwell-backend/internal/config"
	"inkwell-backend/internal/database"
)

func main() {
	initDB := flag.Bool("init-db", false, "drop and recreate the database schema, then exit")
	flag.Parse()

	cfg := config.Load()

	// Ensure absolute database path
	dbPath := cfg.DBPath
	if !filepath.IsAbs(dbPath) {
		cwd, _ := os.Getwd()
		dbPath = filepath.Join(cwd, dbPath)
	}

	log.Printf("Initializing database at %s", dbPath)
	if err := database.Open(database.Config{Path: dbPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if *initDB {
		log.Println("Resetting database schema - all data will be lost")
		if err := database.Reset(); err != nil {
			log.Fatalf("Failed to reset database: %v", err)
		}
		log.Println("Database initialized")
		return
	}

	// Sweep sessions left over from previous runs
	if n, err := database.NewSessionRepo().DeleteExpired(); err != nil {
		log.Printf("Warning: failed to delete expired sessions: %v", err)
	} else if n > 0 {
		log.Printf("Deleted %d expired sessions", n)
	}

	// Initialize auth service
	authSvc := auth.NewService(cfg.SessionTTL)

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// API routes
	apiGroup := e.Group("/api")
	api.RegisterRoutes(apiGroup, authSvc)

	log.Printf("Starting Inkwell backend on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
