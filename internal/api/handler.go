package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jfuenzalida/placebook-api/internal/model"
	"github.com/jfuenzalida/placebook-api/internal/repository"
	"github.com/jfuenzalida/placebook-api/internal/service"
)

const maxImageBytes = 10 << 20

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListPlaces handles GET /api/v1/places
func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.service.ListPlaces(r.Context())
	if err != nil {
		log.Printf("Error listing places: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, model.PlaceListResponse{Places: places, Count: len(places)})
}

// CreatePlace handles POST /api/v1/places
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	place, ok := h.decodePlaceRequest(w, r)
	if !ok {
		return
	}

	created, err := h.service.AddPlace(r.Context(), place)
	if err != nil {
		log.Printf("Error creating place: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetPlace handles GET /api/v1/places/{id}
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(w, r)
	if !ok {
		return
	}

	place, err := h.service.GetPlaceByID(r.Context(), id)
	if err != nil {
		log.Printf("Error getting place: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if place == nil {
		http.Error(w, "place not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, place)
}

// UpdatePlace handles PUT /api/v1/places/{id}
func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(w, r)
	if !ok {
		return
	}

	place, ok := h.decodePlaceRequest(w, r)
	if !ok {
		return
	}
	place.ID = id

	updated, err := h.service.UpdatePlace(r.Context(), place)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			http.Error(w, "place not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating place: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeletePlace handles DELETE /api/v1/places/{id}
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePlace(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			http.Error(w, "place not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting place: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPlaceBudget handles GET /api/v1/places/{id}/budget
func (h *Handler) GetPlaceBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(w, r)
	if !ok {
		return
	}

	budget, err := h.service.PlaceBudget(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRateUnavailable) {
			log.Printf("Rate fetch failed for place %d: %v", id, err)
			http.Error(w, "exchange rate unavailable", http.StatusBadGateway)
			return
		}
		log.Printf("Error computing budget: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if budget == nil {
		http.Error(w, "place not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, budget)
}

// UploadPlaceImage handles POST /api/v1/places/{id}/image
func (h *Handler) UploadPlaceImage(w http.ResponseWriter, r *http.Request) {
	id, ok := placeID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "multipart field 'image' is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		http.Error(w, "unsupported image type", http.StatusBadRequest)
		return
	}

	place, err := h.service.AttachImage(r.Context(), id, ext, file)
	if err != nil {
		log.Printf("Error attaching image: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if place == nil {
		http.Error(w, "place not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, place)
}

// GetRate handles GET /api/v1/rate
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.service.LatestRate(r.Context())
	if err != nil {
		log.Printf("Error fetching rate: %v", err)
		http.Error(w, "exchange rate unavailable", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, model.RateResponse{Rate: rate.Value, Date: rate.Date})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// decodePlaceRequest decodes and validates a place body. All input problems
// surface as a single 400 message and abort the save.
func (h *Handler) decodePlaceRequest(w http.ResponseWriter, r *http.Request) (model.Place, bool) {
	var req model.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return model.Place{}, false
	}

	place, err := validatePlace(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return model.Place{}, false
	}
	return place, true
}

func validatePlace(req model.PlaceRequest) (model.Place, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Place{}, fmt.Errorf("name is required")
	}

	lat, lon, err := req.ResolveCoordinates()
	if err != nil {
		return model.Place{}, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return model.Place{}, fmt.Errorf("invalid coordinates range")
	}

	if req.AccommodationCost < 0 || req.TransportationCost < 0 {
		return model.Place{}, fmt.Errorf("costs must not be negative")
	}

	return model.Place{
		Name:               strings.TrimSpace(req.Name),
		ImageURL:           req.ImageURL,
		Lat:                lat,
		Lon:                lon,
		DisplayOrder:       req.DisplayOrder,
		AccommodationCost:  req.AccommodationCost,
		TransportationCost: req.TransportationCost,
		Comments:           req.Comments,
	}, nil
}

func placeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid place id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
