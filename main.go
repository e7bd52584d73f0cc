package main

import (
	"io"
	"log"
	"net/http"
	"os"

	"frotacheck/internal/config"
	"frotacheck/internal/docstore"
	"frotacheck/internal/gelf"
	"frotacheck/internal/handler"
	"frotacheck/internal/repository"
	"frotacheck/internal/router"
	"frotacheck/internal/service"
)

func main() {
	cfg := config.Load()

	// GELF UDP logging
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	// Open the document store
	store, err := docstore.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", cfg.DBPath, err)
	}
	defer store.Close()
	log.Printf("Document store ready at %s", cfg.DBPath)

	// Repositories
	userRepo := repository.NewUserRepo(store)
	templateRepo := repository.NewTemplateRepo(store)
	equipRepo := repository.NewEquipmentRepo(store)
	subRepo := repository.NewSubmissionRepo(store)
	legendRepo := repository.NewLegendRepo(store)
	journeyRepo := repository.NewJourneyRepo(store)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	templateSvc := service.NewTemplateService(templateRepo)
	linkSvc := service.NewLinkService(equipRepo, templateRepo)
	inspSvc := service.NewInspectionService(equipRepo, templateRepo, subRepo)
	legendSvc := service.NewLegendService(legendRepo)
	journeySvc := service.NewJourneyService(journeyRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	templateH := handler.NewTemplateHandler(templateSvc)
	equipH := handler.NewEquipmentHandler(linkSvc)
	inspH := handler.NewInspectionHandler(inspSvc)
	legendH := handler.NewLegendHandler(legendSvc)
	journeyH := handler.NewJourneyHandler(journeySvc)
	dashH := handler.NewDashboardHandler(templateSvc, linkSvc, subRepo, equipRepo)

	// Router
	r := router.New(cfg.JWTSecret, authH, templateH, equipH, inspH, legendH, journeyH, dashH)

	// Seed the admin account in background so a slow disk never delays
	// the listener.
	go func() {
		if err := authSvc.SeedAdmin(cfg.AdminEmail, cfg.AdminPass); err != nil {
			log.Printf("Warning: failed to seed admin: %v", err)
		}
	}()

	log.Printf("frotacheck server starting on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
