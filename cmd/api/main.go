package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kujira-app/kujira-api/internal/config"
	"github.com/kujira-app/kujira-api/internal/handler"
	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/repository"
	"github.com/kujira-app/kujira-api/internal/usecase"
	"github.com/kujira-app/kujira-api/internal/verification"
	sharedauth "github.com/kujira-app/kujira-api/shared/auth"
	"github.com/kujira-app/kujira-api/shared/mailer"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDB)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	logbookRepo := repository.NewLogbookMongoRepository(db)
	overviewRepo := repository.NewOverviewMongoRepository(db)
	entryRepo := repository.NewEntryMongoRepository(db)
	purchaseRepo := repository.NewPurchaseMongoRepository(db)

	jwtAuth := sharedauth.NewJWTAuthenticator(cfg.TokenAudience, cfg.TokenIssuer)
	codes := verification.NewCodes(jwtAuth)
	mail := mailer.NewMailer(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, codes, jwtAuth, mail, cfg, &logger)
	logbookUsecase := usecase.NewLogbookUsecase(logbookRepo, overviewRepo, entryRepo, purchaseRepo)
	userUsecase := usecase.NewUserUsecase(userRepo, logbookRepo, logbookUsecase)
	overviewUsecase := usecase.NewOverviewUsecase(overviewRepo, entryRepo, purchaseRepo)
	entryUsecase := usecase.NewEntryUsecase(entryRepo, purchaseRepo)
	purchaseUsecase := usecase.NewPurchaseUsecase(purchaseRepo)
	onboardingUsecase := usecase.NewOnboardingUsecase(userRepo, overviewRepo, entryRepo, purchaseRepo)

	validate, err := payload.NewValidator()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build request validator")
	}

	h := handler.NewHandler(
		&logger,
		validate,
		jwtAuth,
		cfg,
		userRepo,
		authUsecase,
		userUsecase,
		logbookUsecase,
		overviewUsecase,
		entryUsecase,
		purchaseUsecase,
		onboardingUsecase,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
