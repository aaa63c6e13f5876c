package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"taskease/internal/adapter/db/mongodb"
	"taskease/internal/adapter/db/mysql"
	httpadapter "taskease/internal/adapter/http"
	"taskease/internal/adapter/http/handlers"
	httpmiddleware "taskease/internal/adapter/http/middleware"
	"taskease/internal/adapter/identity"
	"taskease/internal/adapter/mail"
	"taskease/internal/adapter/realtime"
	"taskease/internal/adapter/scheduler"
	"taskease/internal/adapter/session"
	"taskease/internal/adapter/telegram"
	"taskease/internal/app/service"
	"taskease/internal/config"
	"taskease/internal/core/ports"
	"taskease/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	tasks     ports.TaskRepository
	users     ports.UserRepository
	details   ports.UserDetailRepository
	updates   ports.TaskUpdateRepository
	chat      ports.ChatRepository
	summaries ports.SummaryStatusRepository
	health    ports.HealthChecker
	close     func(ctx context.Context) error
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	loc := cfg.Location()
	now := service.ClockIn(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	tokens, err := session.NewJWTTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		logger.Fatal("invalid session configuration", zap.Error(err))
	}
	verifier, err := identity.NewGoogleVerifier(cfg.GoogleClientID)
	if err != nil {
		logger.Fatal("invalid identity configuration", zap.Error(err))
	}

	hub := realtime.NewHub()
	go hub.Run(ctx)

	broadcasters := []ports.Broadcaster{hub}
	if cfg.TelegramBotToken != "" {
		mirror, err := telegram.NewMirror(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			logger.Warn("telegram mirror disabled", zap.Error(err))
		} else {
			go mirror.Run(ctx)
			broadcasters = append(broadcasters, mirror)
		}
	}

	var mailer ports.MailSender = mail.NewLogSender(logger)
	if cfg.SMTPHost != "" {
		smtpSender, err := mail.NewSMTPSender(cfg)
		if err != nil {
			logger.Fatal("invalid smtp configuration", zap.Error(err))
		}
		mailer = smtpSender
	}

	chatService := service.NewChatService(st.chat, st.users, broadcasters...).WithClock(now)
	recurrenceService := service.NewRecurrenceService(st.tasks, st.users).WithClock(now)
	taskService := service.NewTaskService(st.tasks, st.users, recurrenceService, chatService).WithClock(now)
	taskUpdateService := service.NewTaskUpdateService(st.tasks, st.updates).WithClock(now)
	userService := service.NewUserService(st.users, st.details).WithClock(now)
	authService := service.NewAuthService(verifier, tokens, st.users).WithClock(now)
	digestService := service.NewDigestService(st.users, st.tasks, st.summaries, mailer)

	jobs := scheduler.New(loc, logger)
	if err := scheduler.Register(jobs, cfg.SweepSchedule, cfg.DigestSchedule, recurrenceService, digestService, now); err != nil {
		logger.Fatal("failed to schedule jobs", zap.Error(err))
	}
	jobs.Start()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler(st.health),
		Summary:    handlers.NewSummaryHandler(digestService, now),
		Auth:       handlers.NewAuthHandler(authService),
		User:       handlers.NewUserHandler(userService),
		Task:       handlers.NewTaskHandler(taskService, loc),
		TaskUpdate: handlers.NewTaskUpdateHandler(taskUpdateService),
		Chat:       handlers.NewChatHandler(chatService, hub, cfg.AllowedOrigins),
	}, tokens)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language", httpmiddleware.RequestIDHeader},
		ExposedHeaders:   []string{httpmiddleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler(r)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler shutdown timed out", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMySQL:
		db, err := mysql.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := mysql.Migrate(ctx, db, "db/migrations"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &stores{
			tasks:     mysql.NewTaskRepository(db),
			users:     mysql.NewUserRepository(db),
			details:   mysql.NewUserDetailRepository(db),
			updates:   mysql.NewTaskUpdateRepository(db),
			chat:      mysql.NewChatRepository(db),
			summaries: mysql.NewSummaryStatusRepository(db),
			health:    mysql.NewHealth(db),
			close:     func(context.Context) error { return db.Close() },
		}, nil
	default:
		client, db, err := mongodb.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			tasks:     mongodb.NewTaskRepository(db),
			users:     mongodb.NewUserRepository(db),
			details:   mongodb.NewUserDetailRepository(db),
			updates:   mongodb.NewTaskUpdateRepository(db),
			chat:      mongodb.NewChatRepository(db),
			summaries: mongodb.NewSummaryStatusRepository(db),
			health:    mongodb.NewHealth(client),
			close:     client.Disconnect,
		}, nil
	}
}
