package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"stratplan/config"
	"stratplan/database"
	"stratplan/handlers"
	"stratplan/models"
	repository "stratplan/repositories"
	routes "stratplan/routes"
	services "stratplan/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	log.Info().Msg("connected to MongoDB")

	db := client.Database(cfg.DatabaseName)

	if err := database.CreateIndexes(db); err != nil {
		log.Warn().Err(err).Msg("failed to create indexes")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	issueRepo := repository.NewStrategicIssueRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	seedAdmin(userRepo, cfg)

	// Services
	resolver := services.NewProjectResolver(issueRepo, strategyRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	userService := services.NewUserService(userRepo)
	issueService := services.NewStrategicIssueService(issueRepo, strategyRepo)
	strategyService := services.NewStrategyService(strategyRepo)
	projectService := services.NewProjectService(projectRepo, resolver)

	mux := routes.Setup(routes.Handlers{
		Auth:            handlers.NewAuthHandler(authService),
		StrategicIssues: handlers.NewStrategicIssueHandler(issueService),
		Strategies:      handlers.NewStrategyHandler(strategyService),
		Projects:        handlers.NewProjectHandler(projectService),
		Users:           handlers.NewUserHandler(userService),
	}, cfg.JWTSecret)

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, mux); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedAdmin creates the first admin account from env credentials when
// no active admin exists. Without one, user management is unreachable.
func seedAdmin(users repository.UserRepository, cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := users.HasActiveAdmin(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("admin check failed")
		return
	}
	if exists {
		return
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn().Msg("no active admin and no ADMIN_EMAIL/ADMIN_PASSWORD configured")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Warn().Err(err).Msg("admin seed failed")
		return
	}

	now := time.Now()
	admin := &models.User{
		Name:      "Administrator",
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Warn().Err(err).Msg("admin seed failed")
		return
	}
	log.Info().Str("email", cfg.AdminEmail).Msg("seeded initial admin account")
}
