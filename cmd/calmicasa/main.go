package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"calmicasa-api/internal/assets"
	"calmicasa-api/internal/auth"
	"calmicasa-api/internal/config"
	httpserver "calmicasa-api/internal/http"
	"calmicasa-api/internal/notify"
	mongostore "calmicasa-api/internal/store/mongo"
	"calmicasa-api/pkg/mailer"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, disconnect, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer func() {
		if err := disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from document store: %v", err)
		}
	}()

	gateway, err := assets.NewGateway(&cfg.AWS)
	if err != nil {
		log.Fatalf("Failed to initialize asset store gateway: %v", err)
	}

	mailService, err := buildMailService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize mail service: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration)
	credentials := auth.NewCredentialValidator(auth.AdminIdentity{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
		Password:     cfg.Admin.Password,
	})

	dispatcher := notify.NewDispatcher(mailService, cfg.Mail.SMTPUser, cfg.Admin.Email)

	server := httpserver.NewServer(&httpserver.ServerDependencies{
		Config:         cfg,
		DB:             db,
		Gateway:        gateway,
		Reconciler:     assets.NewReconciler(gateway),
		Tokens:         tokens,
		Credentials:    credentials,
		AuthMiddleware: auth.NewMiddleware(tokens),
		Dispatcher:     dispatcher,
	})

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.Start(":" + cfg.Server.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete")
}

// buildMailService wires the SMTP relay first and Resend as a fallback when
// an API key is configured. The service fails over in that order.
func buildMailService(cfg *config.Config) (*mailer.EmailService, error) {
	providers := []mailer.EmailProvider{
		mailer.NewSMTPProvider(mailer.SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUser,
			Password: cfg.Mail.SMTPPassword,
			FromName: cfg.Mail.FromName,
		}),
	}

	if cfg.Mail.ResendAPIKey != "" {
		providers = append(providers, mailer.NewResendProvider(mailer.ResendConfig{
			APIKey: cfg.Mail.ResendAPIKey,
		}))
	}

	return mailer.NewEmailService(mailer.EmailServiceConfig{
		Providers:   providers,
		DefaultFrom: cfg.Mail.SMTPUser,
	})
}
