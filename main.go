package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-records/internal/auth"
	"employee-records/internal/config"
	"employee-records/internal/db"
	"employee-records/internal/handlers"
	"employee-records/internal/middleware"
	"employee-records/internal/router"
	"employee-records/internal/service"
	"employee-records/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := db.Connect(ctx, cfg.MongoURL)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}

	st := store.NewMongoStore(client.Database(cfg.DBName), cfg.CollectionName)

	// The unique index on employee_id is the only guard against the
	// allocation race, so refusing to start without it is deliberate.
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("could not ensure employee_id index")
	}
	if cfg.SchemaValidation {
		if err := st.EnsureSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("could not apply JSON schema validator; continuing without storage-level schema enforcement")
		}
	}

	verifier, err := auth.NewStaticVerifier(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build credential verifier")
	}

	svc := service.NewEmployeeService(st)
	eh := handlers.NewEmployeeHandler(svc)
	ah := handlers.NewAuthHandler(verifier, cfg.JWTSecret)
	am := middleware.NewAuthMiddleware(cfg.JWTSecret)

	r := gin.Default()
	router.Setup(r, eh, ah, am, st)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
}
