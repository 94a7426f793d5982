package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/menucraft/menucraft/internal/asset"
	"github.com/menucraft/menucraft/internal/auth"
	"github.com/menucraft/menucraft/internal/board"
	"github.com/menucraft/menucraft/internal/catalog"
	"github.com/menucraft/menucraft/internal/config"
	"github.com/menucraft/menucraft/internal/db"
	mw "github.com/menucraft/menucraft/internal/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(pool, cfg.JWTSecret)
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("seed admin account", "error", err)
		os.Exit(1)
	}
	authHandler := auth.NewHandler(authService)

	hub := board.NewHub()
	go hub.Run()
	boardHandler := board.NewHandler(hub)

	catalogService := catalog.NewService(pool)
	catalogHandler := catalog.NewHandler(catalogService, hub)

	assetHandler := asset.NewHandler(cfg.AssetDir)

	r := mux.NewRouter()

	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","boards":%d}`, hub.ClientCount())
	}).Methods("GET")

	// The guest-facing menu board: the tree over HTTP, updates over the
	// websocket.
	r.HandleFunc("/board/menu", catalogHandler.BoardMenu).Methods("GET")
	r.HandleFunc("/ws/board", boardHandler.Serve)

	// Uploaded images are public so boards and printed-layout previews can
	// fetch them without credentials.
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Staff-only catalog administration
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.Middleware)

	api.HandleFunc("/categories", catalogHandler.ListCategories).Methods("GET")
	api.HandleFunc("/categories", catalogHandler.CreateCategory).Methods("POST")
	api.HandleFunc("/categories", catalogHandler.UpdateCategories).Methods("PUT")
	api.HandleFunc("/categories", catalogHandler.DeleteCategories).Methods("DELETE")

	api.HandleFunc("/subcategories", catalogHandler.ListSubcategories).Methods("GET")
	api.HandleFunc("/subcategories", catalogHandler.CreateSubcategory).Methods("POST")
	api.HandleFunc("/subcategories/{subcategoryId}", catalogHandler.UpdateSubcategory).Methods("PUT")
	api.HandleFunc("/subcategories/{subcategoryId}", catalogHandler.DeleteSubcategory).Methods("DELETE")

	api.HandleFunc("/menu-items", catalogHandler.ListMenuItems).Methods("GET")
	api.HandleFunc("/menu-items", catalogHandler.CreateMenuItem).Methods("POST")
	api.HandleFunc("/menu-items", catalogHandler.UpdateMenuItems).Methods("PUT")
	api.HandleFunc("/menu-items", catalogHandler.DeleteMenuItems).Methods("DELETE")

	api.HandleFunc("/allergens", catalogHandler.ListAllergens).Methods("GET")
	api.HandleFunc("/allergens", catalogHandler.CreateAllergen).Methods("POST")
	api.HandleFunc("/allergens/{allergenId}", catalogHandler.DeleteAllergen).Methods("DELETE")

	api.HandleFunc("/supplements", catalogHandler.ListSupplements).Methods("GET")
	api.HandleFunc("/supplements", catalogHandler.CreateSupplement).Methods("POST")
	api.HandleFunc("/supplements/{supplementId}", catalogHandler.DeleteSupplement).Methods("DELETE")

	api.HandleFunc("/side-dishes", catalogHandler.ListSideDishes).Methods("GET")
	api.HandleFunc("/side-dishes", catalogHandler.CreateSideDish).Methods("POST")
	api.HandleFunc("/side-dishes/{sideDishId}", catalogHandler.DeleteSideDish).Methods("DELETE")

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
