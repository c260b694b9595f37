package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/SR0NAK/insurebharat/cmd/crm/admin"
	"github.com/SR0NAK/insurebharat/cmd/crm/config"
	"github.com/SR0NAK/insurebharat/cmd/crm/controller"
	"github.com/SR0NAK/insurebharat/cmd/crm/dashboard"
	"github.com/SR0NAK/insurebharat/cmd/crm/db"
	"github.com/SR0NAK/insurebharat/cmd/crm/reminder"
	"github.com/SR0NAK/insurebharat/cmd/crm/rest"
	crmstream "github.com/SR0NAK/insurebharat/cmd/crm/stream"
	"github.com/SR0NAK/insurebharat/internal/email"
	igorm "github.com/SR0NAK/insurebharat/internal/gorm"
	"github.com/SR0NAK/insurebharat/internal/healthz"
	ihttp "github.com/SR0NAK/insurebharat/internal/http"
	"github.com/SR0NAK/insurebharat/internal/migrate"
	"github.com/SR0NAK/insurebharat/internal/roles"
	"github.com/SR0NAK/insurebharat/internal/session"
	"github.com/SR0NAK/insurebharat/internal/stream"
	"golang.org/x/sys/unix"
	"gorm.io/gorm"

	redisv8 "github.com/go-redis/redis/v8"
	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"
)

const (
	activeSessionExpiration   = 48 * time.Hour
	absoluteSessionExpiration = 30 * 24 * time.Hour
)

func main() {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	dbconn := newDBConnection(logger)
	migrateDB(logger, dbconn)

	// Waitgroup to ensure all supporting goroutines close properly on
	// application close.
	var wg sync.WaitGroup

	// Root context to passed to child goroutines. Context will be cancelled if
	// SIGTERM or SIGINT received. Context will be cancelled if error occurs that
	// cannot be recovered from.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := newRedisClient(ctx, logger)
	sessionManager := session.NewManager(redisClient)

	streamClient, err := stream.Init(ctx, logger, redisClient, "crm")
	if err != nil {
		logger.Panic("[Startup] Failed to initialize event stream client.", zap.Error(err))
	}

	events := crmstream.NewHandler(logger, streamClient)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := events.Launch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("[Startup] Event stream handler closed.", zap.Error(err))
		}
	}()

	mailgunClient := mailgun.NewMailgun(config.MailgunDomain(), config.MailgunAPIKey())
	emailer := email.NewMailgunEmailer(mailgunClient, config.MailgunHost())

	store := db.NewStore(logger, dbconn)
	roleStore := roles.NewStore(logger, dbconn)
	admins := admin.NewAdminSet(config.Admins())

	ctrl := controller.New(
		logger,
		store,
		roleStore,
		sessionManager,
		emailer,
		admins,
		streamClient,
		activeSessionExpiration,
		absoluteSessionExpiration,
	)

	board := dashboard.NewDashboard()
	scanner := dashboard.NewScanner()

	digest := reminder.NewReminder(logger, emailer, board, config.DigestRecipient())
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := digest.Launch(ctx, config.DigestSchedule()); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("[Startup] Renewal digest closed.", zap.Error(err))
		}
	}()

	api := rest.NewAPI(
		logger,
		ctrl,
		board,
		scanner,
		events,
		ihttp.CookieOptions{
			Domain:   config.CookieDomain(),
			Secure:   config.CookieSecure(),
			SameSite: config.CookieSameSite(),
		},
		sessionManager,
		activeSessionExpiration,
		config.RoleFetchDelay(),
		config.AllowedOrigins(),
	)

	healthzHTTP := healthz.NewHTTP()
	api.Mux.Method(http.MethodGet, "/healthz", healthzHTTP)
	healthzHTTP.Healthy()

	srv := http.Server{
		Handler:      api.Mux,
		Addr:         fmt.Sprintf(":%d", config.Port()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Launch goroutine that listens for SIGTERM and SIGINT. In the event either
	// occurs, cancel the context.
	signalc := make(chan os.Signal, 1)
	signal.Notify(signalc, unix.SIGTERM, unix.SIGINT)

	wg.Add(1)
	go func() {
		defer wg.Done()

		select {
		case <-ctx.Done():
			return
		case <-signalc:
			cancel()
		}
	}()

	// Wait for root context to close in separate goroutine. When goroutine
	// closes call http.Server.Shutdown to gracefully shutdown http API.
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("[Startup] Failed to correctly shutdown crm.", zap.Error(err))
		}
	}()

	logger.Sugar().Infof("crm API listening at :%d", config.Port())
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		cancel()
		wg.Wait()
		return
	}
	if err != nil {
		logger.Panic("[Startup] Failed to listen and serve crm API.", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	return logger
}

func newDBConnection(logger *zap.Logger) *gorm.DB {
	dbconn, err := igorm.Open(config.DSN())
	if err != nil {
		logger.Panic("[Startup] Failed to establish DB connection.", zap.Error(err))
	}
	return dbconn
}

func migrateDB(logger *zap.Logger, dbconn *gorm.DB) {
	sqlDB, err := dbconn.DB()
	if err != nil {
		logger.Panic("[Startup] Failed to access DB connection pool.", zap.Error(err))
	}
	if err := migrate.Migrate(sqlDB, config.Migrations()); err != nil {
		logger.Panic("[Startup] Failed to migrate DB.", zap.Error(err))
	}
}

func newRedisClient(ctx context.Context, logger *zap.Logger) *redisv8.Client {
	client := redisv8.NewClient(&redisv8.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Panic("[Startup] Failed to initialize Redis client.", zap.Error(err))
	}
	return client
}
