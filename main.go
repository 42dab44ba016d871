package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"

	"daybook/auth"
	"daybook/config"
	"daybook/db"
	"daybook/handlers"
	"daybook/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := config.LoadConfig("config.json"); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	conn, err := db.Open(config.AppConfig.DBPath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer conn.Close()

	sessions := auth.NewManager(config.AppConfig.SessionKey, config.AppConfig.ListenPort != 8080)
	h := handlers.New(store.NewUserStore(conn), store.NewEntryStore(conn), sessions)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(handlers.SecurityHeadersMiddleware)
	r.Use(handlers.RateLimitMiddleware(20, 40))

	// Expose the CSRF token so the client can echo it on mutating requests
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-CSRF-Token", csrf.Token(r))
			next.ServeHTTP(w, r)
		})
	})

	// Static files (register/login/journal pages)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	h.Routes(r)

	// CSRF Protection
	// We need a 32-byte key. Using session key for now, assuming it's suitable.
	// In production, this should be a separate key.
	csrfMiddleware := csrf.Protect(
		[]byte(config.AppConfig.SessionKey),
		csrf.Secure(false), // Set to true in production with HTTPS
		csrf.Path("/"),
	)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.ListenIP, config.AppConfig.ListenPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: handlers.CORSMiddleware(csrfMiddleware(r)),
	}

	go func() {
		log.Printf("Server starting on %s (%s)", addr, config.AppConfig.AppName)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced shutdown: %v", err)
	}
}
