package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/grampanchayat/tax_collection/internal/config"
	"github.com/grampanchayat/tax_collection/internal/es"
	"github.com/grampanchayat/tax_collection/internal/handlers"
	"github.com/grampanchayat/tax_collection/internal/logging"
	authmw "github.com/grampanchayat/tax_collection/internal/middleware/auth"
	loggingmw "github.com/grampanchayat/tax_collection/internal/middleware/logging"
	"github.com/grampanchayat/tax_collection/internal/mykafka"
	"github.com/grampanchayat/tax_collection/internal/repo"
	"github.com/grampanchayat/tax_collection/internal/service"
	"github.com/grampanchayat/tax_collection/internal/tokens"
	httpserver "github.com/grampanchayat/tax_collection/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer(strings.Split(configuration.KAFKA_ADDRESS, ","))
	}

	gormRepo := repo.New(db)

	codec := tokens.NewCodec(
		[]byte(configuration.ACCESS_SECRET),
		[]byte(configuration.REFRESH_SECRET),
		configuration.AccessTTL,
		configuration.RefreshTTL,
	)

	authService := &service.AuthService{
		Users:   gormRepo,
		Revoked: gormRepo,
		Codec:   codec,
	}

	deps := httpserver.Deps{
		Auth:              &authmw.Middleware{Auth: authService},
		AuthHandler:       &handlers.AuthHandler{Auth: authService, Producer: prod},
		UserHandler:       &handlers.UserHandler{Repo: gormRepo, Producer: prod},
		HouseHandler:      &handlers.HouseHandler{Repo: gormRepo, Producer: prod},
		AssignmentHandler: &handlers.AssignmentHandler{Repo: gormRepo},
		TaxRecordHandler:  &handlers.TaxRecordHandler{Repo: gormRepo, Producer: prod},
	}

	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "houses"}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
