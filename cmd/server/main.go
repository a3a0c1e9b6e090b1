package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edricd/backend/internal/captcha"
	"github.com/edricd/backend/internal/config"
	"github.com/edricd/backend/internal/handler"
	"github.com/edricd/backend/internal/logging"
	"github.com/edricd/backend/internal/mail"
	"github.com/edricd/backend/internal/repository"
	"github.com/edricd/backend/internal/service"
	"github.com/edricd/backend/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	slog.Info("starting", "app", cfg.AppName, "version", cfg.AppVersion)

	var db handler.DB
	var userRepo repository.UserRepository
	if cfg.DatabaseConfigured() {
		pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL())
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		repo := repository.NewPgUserRepository(pool)
		userRepo = repo
		db = repo
	} else {
		slog.Warn("database not configured, user registration disabled")
	}

	verifier := captcha.NewVerifier(cfg.RecaptchaSecretKey)
	composer := mail.NewComposer(cfg.SMTPFrom, "templates/emails")
	transport := mail.NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	contactService := service.NewContactService(verifier, composer, transport)
	userService := service.NewUserService(userRepo, auth.NewBcryptHasher())

	h := handler.New(db, cfg.CORSAllowOriginsList())
	contactHandler := handler.NewContactHandler(contactService, cfg.RecaptchaSiteKey)
	userHandler := handler.NewUserHandler(userService)
	limiter := handler.NewRateLimiter(10)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/recaptcha-sitekey", contactHandler.RecaptchaSiteKey)
	mux.Handle("POST /api/contact", limiter.Middleware(http.HandlerFunc(contactHandler.Submit)))
	mux.HandleFunc("POST /api/users/create", userHandler.Create)

	server := &http.Server{
		Addr:        ":8080",
		Handler:     handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux))),
		ReadTimeout: 10 * time.Second,
		// Must outlast the captcha and SMTP calls made inside a request.
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
