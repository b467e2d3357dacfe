package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pacpro-api/internal/application/deadline"
	"github.com/pacpro-api/internal/application/digest"
	"github.com/pacpro-api/internal/application/event"
	"github.com/pacpro-api/internal/application/report"
	"github.com/pacpro-api/internal/config"
	"github.com/pacpro-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/pacpro-api/internal/infrastructure/jwt"
	s3infra "github.com/pacpro-api/internal/infrastructure/s3"
	"github.com/pacpro-api/internal/infrastructure/smtp"
	"github.com/pacpro-api/internal/infrastructure/sns"
	"github.com/pacpro-api/internal/pkg/logger"
	transporthttp "github.com/pacpro-api/internal/transport/http"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Warn("JWT provider not available", zap.Error(err))
	}

	// S3 store for invoice images.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Warn("SNS sender not available", zap.Error(err))
	}

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	invoiceRepo := dynamo.NewInvoiceRepo(dynamoClient, cfg.DynamoTables.Invoices)
	notificationRepo := dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications)
	storeRepo := dynamo.NewStoreRepo(dynamoClient, cfg.DynamoTables.Stores, cfg.DynamoTables.DeletedStores)
	deadlineRepo := dynamo.NewDeadlineRepo(dynamoClient, cfg.DynamoTables.Deadlines)
	announcementRepo := dynamo.NewAnnouncementRepo(dynamoClient, cfg.DynamoTables.Announcements)
	settingsRepo := dynamo.NewSettingsRepo(dynamoClient, cfg.DynamoTables.Settings, cfg.DynamoTables.InvoiceCategories)
	totalsRepo := dynamo.NewTotalsRepo(dynamoClient, cfg.DynamoTables.InvoiceLogTotals)

	// Event fan-out: every invoice write feeds both the notification
	// fan-out and the monthly totals, and new accounts get a welcome.
	dispatcher := event.NewDispatcher(log)
	notifier := event.NewNotifier(userRepo, notificationRepo, log)
	reportSvc := report.NewService(invoiceRepo, totalsRepo, log)
	dispatcher.Register(event.InvoiceCreated, notifier.HandleInvoiceCreated)
	dispatcher.Register(event.InvoiceDeleted, notifier.HandleInvoiceDeleted)
	dispatcher.Register(event.UserCreated, notifier.HandleUserCreated)
	dispatcher.Register(event.InvoiceCreated, reportSvc.HandleInvoiceWrite)
	dispatcher.Register(event.InvoiceDeleted, reportSvc.HandleInvoiceWrite)

	// Daily digest email and deadline SMS reminders.
	digestSvc := digest.NewService(digest.ServiceDeps{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		Deadlines:        deadline.NewService(deadlineRepo),
		Mailer:           mailer,
		SMS:              smsSender,
		ReminderDays:     cfg.DeadlineReminderDays,
		Log:              log,
	})

	digestCtx, stopDigest := context.WithCancel(context.Background())
	defer stopDigest()
	go digestSvc.Schedule(digestCtx, cfg.DigestHourUTC)

	deps := &transporthttp.Deps{
		UserRepo:         userRepo,
		InvoiceRepo:      invoiceRepo,
		NotificationRepo: notificationRepo,
		StoreRepo:        storeRepo,
		DeadlineRepo:     deadlineRepo,
		AnnouncementRepo: announcementRepo,
		SettingsRepo:     settingsRepo,
		TotalsRepo:       totalsRepo,
		S3Store:          s3Store,
		Mailer:           mailer,
		JWTProvider:      jwtProvider,
		Dispatcher:       dispatcher,
		Logger:           log,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopDigest()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	// Let any in-flight event handlers finish before exiting.
	dispatcher.Wait()
	log.Info("Server stopped")
}
