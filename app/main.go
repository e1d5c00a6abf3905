package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/asistecare/siteapi/internal/authservice"
	"github.com/asistecare/siteapi/internal/blogservice"
	"github.com/asistecare/siteapi/internal/common"
	"github.com/asistecare/siteapi/internal/contactservice"
	"github.com/asistecare/siteapi/internal/mailservice"
	"github.com/asistecare/siteapi/internal/reviewservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	authService    *authservice.AuthService
	blogService    *blogservice.BlogService
	reviewService  *reviewservice.ReviewService
	contactService *contactservice.ContactService
	mailService    *mailservice.MailService
	broker         *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = common.SetupLeadExchange(broker)
	if err != nil {
		logger.Error("failed to setup the lead exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	blogCache := common.NewCache(time.Minute, 5*time.Minute)
	reviewCache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:         cfg,
		logger:         logger,
		authService:    authservice.NewAuthService(db, cfg.JWTSecret),
		blogService:    blogservice.NewBlogService(db, blogCache),
		reviewService:  reviewservice.NewReviewService(db, broker, reviewCache, logger),
		contactService: contactservice.NewContactService(db, broker, logger),
		mailService:    mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.NotifyEmail, cfg.Mail.Port, logger),
		broker:         broker,
	}

	// consumers and broker are closed by serve after the listener drains
	app.mailService.SendLeadNotifications()

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
