package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nutriTrackAPI/handlers"
	"nutriTrackAPI/internal/intake"
	"nutriTrackAPI/middleware"
	"nutriTrackAPI/services"
)

var (
	dbPool           *pgxpool.Pool
	referenceZone    *time.Location
	profileService   *services.ProfileService
	mealService      *services.MealService
	hydrationService *services.HydrationService
	summaryService   *services.SummaryService
	nutritionService *services.NutritionService
	waterCoalescer   *intake.Coalescer
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// One fixed reference timezone for the whole deployment. Per-user
	// timezones are not modeled; every date key is computed in this zone.
	tzName := os.Getenv("REFERENCE_TZ")
	if tzName == "" {
		tzName = "UTC"
	}
	var err error
	referenceZone, err = time.LoadLocation(tzName)
	if err != nil {
		log.Fatal("Invalid REFERENCE_TZ:", err)
	}
	log.Printf("Using reference timezone %s", referenceZone)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	profileService = services.NewProfileService(dbPool, referenceZone)
	mealService = services.NewMealService(dbPool)
	hydrationService = services.NewHydrationService(dbPool)
	summaryService = services.NewSummaryService(profileService, mealService, hydrationService, referenceZone)
	nutritionService = services.NewNutritionService(os.Getenv("NUTRITION_WEBHOOK_URL"))

	// Rapid "+1 cup" taps batch into a single write per flush window.
	waterCoalescer = intake.NewCoalescer(2*time.Second, hydrationService.AddDelta)

	middleware.InitPrometheus()
	services.InitMetrics()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	profileHandler := handlers.NewProfileHandler(profileService)
	mealHandler := handlers.NewMealHandler(mealService, nutritionService)
	hydrationHandler := handlers.NewHydrationHandler(hydrationService, waterCoalescer)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "nutriTrack-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	protected.HandleFunc("/user", profileHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/checkin", profileHandler.CheckIn).Methods("POST")
	protected.HandleFunc("/user/goals", profileHandler.UpdateGoals).Methods("PUT")

	protected.HandleFunc("/water", hydrationHandler.AddWater).Methods("POST")
	protected.HandleFunc("/water", hydrationHandler.GetWater).Methods("GET")

	protected.HandleFunc("/meals", mealHandler.CreateMeal).Methods("POST")
	protected.HandleFunc("/meals/lookup", mealHandler.CreateMealFromLookup).Methods("POST")
	protected.HandleFunc("/meals", mealHandler.ListMeals).Methods("GET")
	protected.HandleFunc("/meals/{id}", mealHandler.ReplaceMeal).Methods("PUT")
	protected.HandleFunc("/meals/{id}", mealHandler.DeleteMeal).Methods("DELETE")

	protected.HandleFunc("/summary", summaryHandler.GetSummary).Methods("GET")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Flush any water taps still sitting in the coalescing buffer.
	waterCoalescer.Close(shutdownCtx)

	log.Println("Server shutdown complete")
}
