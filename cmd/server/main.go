package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulseai/coach-app/internal/ai"
	"pulseai/coach-app/internal/api"
	"pulseai/coach-app/internal/coach"
	"pulseai/coach-app/internal/config"
	"pulseai/coach-app/internal/repository/mongo"
	"pulseai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Pulse Coach Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureTrainingPlanIndexes(ctx, appDB.Collection("training_plans"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureChatLogIndexes(ctx, appDB.Collection("ai_chat_logs"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Model Client ---
	modelClient, err := ai.NewGeminiClient(cfg.Gemini)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Gemini client: %v", err)
	}
	log.Printf("Gemini client initialized (model %s).", cfg.Gemini.Model)

	// --- Initialize Repositories ---
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	trainingPlanRepo := mongo.NewMongoTrainingPlanRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	chatRepo := mongo.NewMongoChatMessageRepository(appDB)

	// --- Initialize Services ---
	repairer := coach.NewRepairer(coach.DefaultTables())
	planService := service.NewPlanService(profileRepo, trainingPlanRepo, workoutRepo, modelClient, repairer)
	chatService := service.NewChatService(profileRepo, trainingPlanRepo, workoutRepo, chatRepo, modelClient)
	workoutService := service.NewWorkoutService(trainingPlanRepo, workoutRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.Server.ServiceKey, planService, chatService, workoutService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
		// Plan generation waits on the model; keep the write timeout above
		// the Gemini client timeout.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
