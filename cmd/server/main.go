package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/ziplai/ziplai/internal/auth"
	"github.com/ziplai/ziplai/internal/cache"
	"github.com/ziplai/ziplai/internal/config"
	"github.com/ziplai/ziplai/internal/db"
	"github.com/ziplai/ziplai/internal/engine"
	"github.com/ziplai/ziplai/internal/extract"
	"github.com/ziplai/ziplai/internal/handler"
	"github.com/ziplai/ziplai/internal/llm"
	"github.com/ziplai/ziplai/internal/mailer"
	"github.com/ziplai/ziplai/internal/model"
	"github.com/ziplai/ziplai/internal/payments"
	"github.com/ziplai/ziplai/internal/repository"
	"github.com/ziplai/ziplai/internal/router"
	"github.com/ziplai/ziplai/internal/service"
	"github.com/ziplai/ziplai/internal/storage"
)

func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("connect to mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.VerificationRequest{},
		&model.PastGeneration{},
		&model.CreditRequest{},
		&model.APILog{},
	); err != nil {
		log.Fatalf("migrate schema: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	verifRepo := repository.NewVerificationRepository(gormDB)
	generationRepo := repository.NewGenerationRepository(gormDB)
	creditRepo := repository.NewCreditRequestRepository(gormDB)
	apiLogRepo := repository.NewAPILogRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	llmClient := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	gen := engine.New(llmClient)
	paymentsClient := payments.NewClient(cfg.PaddleBaseURL, cfg.PaddleAPIKey)
	webhookVerifier := payments.NewWebhookVerifier(cfg.PaddleWebhookSecret)
	mail := mailer.New(cfg.MailRelayURL, cfg.MailRelaySecret)
	extractor := extract.New()

	resumeStore, err := storage.NewDiskStore(cfg.ResumeDir)
	if err != nil {
		log.Fatalf("prepare resume storage: %v", err)
	}

	creditService := service.NewCreditService(userRepo, creditRepo, apiLogRepo, cfg.WebhookCreditGrant)
	authService := service.NewAuthService(userRepo, verifRepo, jwtService, mail, paymentsClient, cfg.PublicHost, cfg.SignupCredits)
	generationService := service.NewGenerationService(userRepo, generationRepo, creditService, gen, extractor, resumeStore, cacheClient)
	historyService := service.NewHistoryService(generationRepo)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(),
		Generation: handler.NewGenerationHandler(generationService),
		History:    handler.NewHistoryHandler(historyService),
		Credit:     handler.NewCreditHandler(creditService),
		Webhook:    handler.NewWebhookHandler(webhookVerifier, creditService),
	}

	e := echo.New()
	router.Register(e, handlers, jwtService, userRepo)

	log.Fatal(e.Start(":" + cfg.ServerPort))
}
