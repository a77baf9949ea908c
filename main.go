package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ggumjisum/backend/config"
	"ggumjisum/backend/database"
	"ggumjisum/backend/handlers"
	"ggumjisum/backend/leaderboard"
	"ggumjisum/backend/middleware"
	"ggumjisum/backend/nlp"
	"ggumjisum/backend/services"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer store.Close()

	if err := middleware.InitializeFirebase(); err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Token verification will be disabled")
	}

	var remote services.RemoteTextParser
	if cfg.Live() {
		log.Println("[NLP] live mode: remote parser enabled with rule-based fallback")
		remote = nlp.NewRemoteParser(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.RequestTimeout)
	} else {
		log.Println("[NLP] mock mode: rule-based parser only")
	}

	queue := services.NewSyncQueue(3, time.Second)
	queue.Start()

	app, err := services.NewApp(services.Options{
		Store:       store,
		Remote:      remote,
		Live:        cfg.Live(),
		Leaderboard: leaderboard.NewClient(cfg.Leaderboard.URL, 10*time.Second),
		Queue:       queue,
	})
	if err != nil {
		log.Fatalf("loading state: %v", err)
	}
	defer app.Close()

	h := handlers.NewHandler(app)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)
	r.Use(middleware.Identity)

	// Register routes both bare and under /api for frontend compatibility.
	registerRoutes(r, h, limiter)
	registerRoutes(r.PathPrefix("/api").Subrouter(), h, limiter)

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Starting server on port %s...", cfg.Server.Port)
	log.Fatal(srv.ListenAndServe())
}

func registerRoutes(r *mux.Router, h *handlers.Handler, limiter *middleware.RateLimiter) {
	r.HandleFunc("/health", h.HealthCheck).Methods("GET", "OPTIONS")

	// Parsing and submission share the rolling-window rate limit.
	r.Handle("/parse", middleware.RateLimit(limiter, http.HandlerFunc(h.ParseText))).Methods("POST", "OPTIONS")
	r.Handle("/transactions", middleware.RateLimit(limiter, http.HandlerFunc(h.AddTransaction))).Methods("POST")

	r.HandleFunc("/transactions", h.GetTransactions).Methods("GET")
	r.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")

	r.HandleFunc("/users", h.CreateUser).Methods("POST")
	r.HandleFunc("/users/me", h.GetUser).Methods("GET")

	r.HandleFunc("/island", h.GetIsland).Methods("GET")
	r.HandleFunc("/island/ack", h.AckIslandEvents).Methods("POST")

	r.HandleFunc("/rescue/quiz", h.GetQuiz).Methods("GET")
	r.HandleFunc("/rescue/answer", h.AnswerQuiz).Methods("POST")

	r.HandleFunc("/analytics/categories", h.GetCategoryAnalytics).Methods("GET")
	r.HandleFunc("/analytics/daily", h.GetDailyAnalytics).Methods("GET")
}
