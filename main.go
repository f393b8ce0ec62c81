package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"puzzle-scoreboard-go/config"
	"puzzle-scoreboard-go/database"
	"puzzle-scoreboard-go/handlers"
	"puzzle-scoreboard-go/interfaces"
	"puzzle-scoreboard-go/logging"
	"puzzle-scoreboard-go/middleware"
	"puzzle-scoreboard-go/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(cfg.ToLoggingConfig())
	cfg.LogConfiguration()

	var scoreService interfaces.ScoreService
	var userRepo services.UserRepository

	sseHandler := handlers.NewSSEHandler()
	defer sseHandler.Stop()

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logging.Errorf("Database connection failed: %v", err)
		logging.Warn("Continuing with in-memory demo data...")

		scoreService = services.NewDemoScoreService()
		userRepo = services.NewMemoryUserRepository()
	} else {
		defer db.Close()

		scoreRepo := database.NewMongoScoreRepository(db)
		rosterRepo := database.NewMongoRosterRepository(db)
		mongoUserRepo := database.NewMongoUserRepository(db)
		if err := mongoUserRepo.EnsureIndexes(); err != nil {
			logging.Errorf("Failed to create user indexes: %v", err)
		}

		scoreService = services.NewDatabaseScoreService(scoreRepo, rosterRepo)
		userRepo = mongoUserRepo

		// Push database changes out to connected clients
		changeWatcher := services.NewChangeStreamWatcher(db, sseHandler.HandleDatabaseChange)
		changeWatcher.StartWatching()

		if cfg.Backup.Enabled {
			backupService := services.NewBackupService(db, cfg.Backup.Dir)
			backupService.StartScheduler(context.Background(), cfg.Backup.Time, cfg.Backup.RetentionDays)
		}
	}

	// Seed allow-listed accounts so submissions work out of the box
	if len(cfg.Auth.AllowedUsers) > 0 {
		seeder := services.NewUserSeeder(userRepo)
		if err := seeder.SeedAllowedUsers(cfg.Auth.AllowedUsers, "change-me"); err != nil {
			logging.Errorf("Failed to seed users: %v", err)
		}
	}

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	authHandler := handlers.NewAuthHandler(authService, !cfg.App.IsDevelopment)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	playerHandler := handlers.NewPlayerHandler(scoreService)
	podiumHandler := handlers.NewPodiumHandler(scoreService)

	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	// Authentication
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	r.Handle("/api/auth/me", authMiddleware.RequireAuth(http.HandlerFunc(authHandler.Me))).Methods("GET")

	// Roster
	r.HandleFunc("/api/players", playerHandler.GetRoster).Methods("GET")
	r.Handle("/api/players", authMiddleware.RequireAllowed(http.HandlerFunc(playerHandler.SaveRoster))).Methods("PUT")

	// Scores
	r.HandleFunc("/api/scores", scoreHandler.GetSnapshot).Methods("GET")
	r.HandleFunc("/api/scores/{date}", scoreHandler.GetDayRecord).Methods("GET")
	r.Handle("/api/scores/{date}", authMiddleware.RequireAllowed(http.HandlerFunc(scoreHandler.SubmitScores))).Methods("PUT")

	// Podiums and statistics
	r.HandleFunc("/api/podium/daily", podiumHandler.GetDailyPodium).Methods("GET")
	r.HandleFunc("/api/podium/weekly", podiumHandler.GetWeeklyPodium).Methods("GET")
	r.HandleFunc("/api/podium/monthly", podiumHandler.GetMonthlyPodium).Methods("GET")
	r.HandleFunc("/api/stats/{player}", podiumHandler.GetPlayerStats).Methods("GET")

	// Real-time updates
	r.HandleFunc("/events", sseHandler.Handle).Methods("GET")

	addr := cfg.GetServerAddress()
	logging.Infof("Server starting on %s", addr)
	logging.Fatal(http.ListenAndServe(addr, r))
}
