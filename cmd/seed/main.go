// Command seed provisions the initial administrator account so the admin
// panel can be logged into on a fresh database. Re-running it against an
// existing account is a no-op.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/asistecare/siteapi/internal/authservice"
	"github.com/asistecare/siteapi/internal/common"
)

type seedConfig struct {
	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AdminName     string `mapstructure:"ADMIN_NAME"`
}

func loadConfig(path string) (*seedConfig, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config seedConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func main() {
	envFile := flag.String("env", ".env", "path to the environment file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*envFile)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authService := authservice.NewAuthService(db, cfg.JWTSecret)

	admin, err := authService.ProvisionAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	if err != nil {
		logger.Error("failed to provision admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("admin provisioned", slog.Int("id", admin.ID), slog.String("username", admin.Username))
}
