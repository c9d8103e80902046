package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/seed"
	userRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-catalog-service/internal/user/usecase"
	"go.uber.org/zap"
)

const usage = "usage: seed [up|down|status|pending]"

func main() {
	cfg := config.LoadEnv()
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: cfg.IsDevelopment(),
		Encoding:      "console",
		Level:         "info",
	})
	defer appLogger.Sync()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := database.NewPostgres(&database.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()

	userUC := userUCPkg.NewUserUseCase(
		userRepoPkg.NewPGRepository(db),
		auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL),
		appLogger,
	)
	seeder := seed.NewSeeder(db, seed.Steps(seed.Deps{
		DB:         db,
		Users:      userUC,
		Categories: catRepoPkg.NewPGRepository(db),
		Products:   prodRepoPkg.NewPGRepository(db),
	}), appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, seeder, command); err != nil {
		appLogger.Error("seed failed", zap.String("command", command), zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, seeder *seed.Seeder, command string) error {
	switch command {
	case "up":
		_, err := seeder.Up(ctx)
		return err
	case "down":
		_, err := seeder.Down(ctx)
		return err
	case "status":
		executed, pending, err := seeder.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Executed:", executed)
		fmt.Println("Pending:", pending)
		return nil
	case "pending":
		_, pending, err := seeder.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Pending:", pending)
		return nil
	default:
		return fmt.Errorf("unknown command %q; %s", command, usage)
	}
}
