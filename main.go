package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alpacafarm/auth"
	"alpacafarm/booking"
	"alpacafarm/config"
	"alpacafarm/db"
	"alpacafarm/globals"
	"alpacafarm/middleware"
	"alpacafarm/mq"
	"alpacafarm/ratelim"
	"alpacafarm/rdx"
	"alpacafarm/routes"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func openStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	if cfg.Store == config.StoreMemory {
		log.Println("[Store] using in-memory store; data is lost on restart")
		return db.NewMemoryStore(db.SystemClock), nil
	}
	return db.Connect(ctx, cfg.MongoURL, cfg.DBName)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}

	gate := auth.NewGate(store, cfg.SecretKey)
	gate.TTL = cfg.TokenTTL

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := gate.BootstrapDefaultAdmin(ctx); err != nil {
		cancel()
		log.Fatalf("❌ Failed to bootstrap admin user: %v", err)
	}
	cancel()

	// content events: redis when configured, otherwise just the log
	feed := booking.NewFeed()
	var conn *redis.Client
	var publisher mq.Emitter = mq.LogEmitter{}
	if cfg.RedisAddr != "" {
		conn, err = rdx.Connect(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Printf("[Redis] %v; content events will only be logged", err)
		} else {
			publisher = mq.NewRedisEmitter(conn)
		}
	}
	events := mq.Multi{publisher, feed}

	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst)
	rateLimiter.TrustProxy = cfg.TrustProxy
	stopSweep := make(chan struct{})
	go rateLimiter.Run(stopSweep)

	handlers := routes.NewHandlers(store, gate, events, feed, booking.Exporter{FontPath: cfg.PDFFontPath, SlipKey: cfg.SecretKey})
	router := routes.SetupRouter(handlers, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := middleware.Logging(middleware.SecurityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// hijacked websocket connections are not closed by Shutdown
	server.RegisterOnShutdown(func() {
		log.Println("🛑 Closing live booking feed...")
		feed.Close()
	})

	go func() {
		log.Printf("🚀 %s listening on %s", globals.APIName, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
	close(stopSweep)

	if conn != nil {
		if err := conn.Close(); err != nil {
			log.Printf("[Redis] close: %v", err)
		}
	}
	if err := store.Close(ctx); err != nil {
		log.Printf("[Store] close: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
