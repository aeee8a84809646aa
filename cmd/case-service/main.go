package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/inab-certh/K3-ticket-management-system/pkg/audit"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/clock"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/config"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/database"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/kafka"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/inab-certh/K3-ticket-management-system/pkg/directory"
	"github.com/inab-certh/K3-ticket-management-system/pkg/documents"
	"github.com/inab-certh/K3-ticket-management-system/pkg/geography"
	"github.com/inab-certh/K3-ticket-management-system/pkg/icd10"
	"github.com/inab-certh/K3-ticket-management-system/pkg/identity"
	"github.com/inab-certh/K3-ticket-management-system/pkg/lookups"
	"github.com/inab-certh/K3-ticket-management-system/pkg/medical"
	"github.com/inab-certh/K3-ticket-management-system/pkg/person"
	"github.com/inab-certh/K3-ticket-management-system/pkg/workflow"
)

type migrator interface {
	AutoMigrate() error
}

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	userRepo := identity.NewRepository(db)
	personRepo := person.NewRepository(db)
	geographyRepo := geography.NewRepository(db)
	icd10Repo := icd10.NewRepository(db)
	lookupRepo := lookups.NewRepository(db)
	medicalRepo := medical.NewRepository(db)
	workflowRepo := workflow.NewRepository(db)
	directoryRepo := directory.NewRepository(db)
	documentRepo := documents.NewRepository(db)
	auditTrail := audit.NewTrail(db)

	migrations := []struct {
		name string
		repo migrator
	}{
		{"users", userRepo},
		{"geography", geographyRepo},
		{"icd10", icd10Repo},
		{"lookups", lookupRepo},
		{"directory", directoryRepo},
		{"people", personRepo},
		{"medical", medicalRepo},
		{"workflow", workflowRepo},
		{"documents", documentRepo},
		{"audit", auditTrail},
	}
	for _, m := range migrations {
		if err := m.repo.AutoMigrate(); err != nil {
			logger.Log.WithError(err).WithField("tables", m.name).Fatal("failed to run migrations")
		}
	}

	redisClient := database.GetRedis()
	defer database.CloseRedis()

	producer := kafka.NewProducer().WithAudit(auditTrail)
	defer producer.Close()

	jwtManager, err := identity.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to configure token signing")
	}

	clk := clock.System()

	identityHandler := identity.NewHandler(identity.NewService(userRepo), jwtManager)
	personHandler := person.NewHandler(person.NewService(personRepo, producer, clk))
	geographyHandler := geography.NewHandler(geography.NewService(geographyRepo, redisClient, cfg.RefDataCacheTTL))
	icd10Handler := icd10.NewHandler(icd10.NewService(icd10Repo, redisClient, cfg.RefDataCacheTTL))
	lookupHandler := lookups.NewHandler(lookups.NewService(lookupRepo, redisClient, cfg.RefDataCacheTTL))
	medicalHandler := medical.NewHandler(medical.NewService(medicalRepo, producer, clk))
	workflowHandler := workflow.NewHandler(workflow.NewService(workflowRepo, lookupRepo, directoryRepo, producer, clk))
	directoryHandler := directory.NewHandler(directory.NewService(directoryRepo))
	documentHandler := documents.NewHandler(documents.NewService(documentRepo, producer, clk))

	router := mux.NewRouter()
	router.Use(identity.Logging, identity.Recovery, identity.BodyLimit(cfg.MaxRequestBody))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(r.Context()) != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	identityHandler.Register(router)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(identity.Authenticate(jwtManager))

	identityHandler.RegisterProtected(api)
	personHandler.Register(api)
	geographyHandler.Register(api)
	icd10Handler.Register(api)
	lookupHandler.Register(api)
	medicalHandler.Register(api)
	workflowHandler.Register(api)
	directoryHandler.Register(api)
	documentHandler.Register(api)
	audit.NewHandler(auditTrail).Register(api)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Case Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Case Service...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Case Service stopped")
}
