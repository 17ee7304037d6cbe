package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jfuenzalida/placebook-api/internal/service"
	"github.com/jfuenzalida/placebook-api/internal/stats"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, mediaDir string) *mux.Router {
	handler := NewHandler(service)
	statsHandler := NewStatsHandler(statsCollector)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Uploaded place images
	router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))),
	).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/places", handler.ListPlaces).Methods("GET")
	v1.HandleFunc("/places", handler.CreatePlace).Methods("POST")
	v1.HandleFunc("/places/{id}", handler.GetPlace).Methods("GET")
	v1.HandleFunc("/places/{id}", handler.UpdatePlace).Methods("PUT")
	v1.HandleFunc("/places/{id}", handler.DeletePlace).Methods("DELETE")
	v1.HandleFunc("/places/{id}/budget", handler.GetPlaceBudget).Methods("GET")
	v1.HandleFunc("/places/{id}/image", handler.UploadPlaceImage).Methods("POST")
	v1.HandleFunc("/rate", handler.GetRate).Methods("GET")
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
