package main

import (
	"log"

	"github.com/groundscan/gpr-backend-go/internal/api"
	"github.com/groundscan/gpr-backend-go/internal/config"
	"github.com/groundscan/gpr-backend-go/internal/database"
	"github.com/groundscan/gpr-backend-go/internal/handler"
	"github.com/groundscan/gpr-backend-go/internal/models"
	"github.com/groundscan/gpr-backend-go/internal/poi"
	"github.com/groundscan/gpr-backend-go/internal/provider"
	"github.com/groundscan/gpr-backend-go/internal/repository"
	"github.com/groundscan/gpr-backend-go/internal/service"
	"github.com/groundscan/gpr-backend-go/internal/session"
	"github.com/groundscan/gpr-backend-go/internal/synthetic"
	"github.com/groundscan/gpr-backend-go/internal/viewsync"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	// Data providers: remote if configured, synthetic always available as
	// the fallback so the API keeps answering when the backend is down.
	offline := synthetic.NewProvider()
	var remote provider.DataProvider
	if cfg.SurveyAPIURL != "" {
		remote = provider.NewClient(cfg.SurveyAPIURL)
	} else {
		log.Printf("SURVEY_API_URL not set, running in synthetic-only mode")
	}

	loads := session.NewManager(remote, offline)

	// The in-memory store is the authority the viewer renders from; the
	// sync controller republishes every mutation to all marker surfaces.
	store := poi.NewStore()
	controller := viewsync.NewController()
	store.Subscribe(controller.POIChanged)
	controller.SubscribeMarkers(func(pois []models.POI) {
		log.Printf("POI set changed, %d markers", len(pois))
	})

	poiRepo := repository.NewPOIRepository(database.GetDB())
	seedStore(store, poiRepo)

	poiService := service.NewPOIService(poiRepo, store)
	surveyService := service.NewSurveyService(provider.NewFallback(remote, offline), loads)

	router := api.SetupRouter(cfg,
		handler.NewSurveyHandler(surveyService),
		handler.NewPOIHandler(poiService),
	)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// seedStore loads persisted POIs into the in-memory store on startup
func seedStore(store *poi.Store, repo *repository.POIRepository) {
	pois, err := repo.List("")
	if err != nil {
		log.Printf("Failed to load persisted POIs: %v", err)
		return
	}
	if len(pois) > 0 {
		store.Replace(pois)
		log.Printf("Loaded %d persisted POIs", len(pois))
	}
}
