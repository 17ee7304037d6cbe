package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jfuenzalida/placebook-api/internal/config"
	"github.com/jfuenzalida/placebook-api/internal/database"
	"github.com/jfuenzalida/placebook-api/internal/exchange"
	"github.com/jfuenzalida/placebook-api/internal/model"
	"github.com/jfuenzalida/placebook-api/internal/repository"
	"github.com/jfuenzalida/placebook-api/internal/service"
	"github.com/jfuenzalida/placebook-api/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// rateServer fakes the mindicador.cl dollar endpoint
func rateServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupIntegrationStack(t *testing.T, rateBody string, rateStatus int) http.Handler {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	dbName := fmt.Sprintf("testdb_%d", rng.Int())

	cfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: dbName,
	}

	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	require.NoError(t, err)

	// Point to the sqlite migrations folder
	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations/sqlite",
		"sqlite3",
		driver,
	)
	require.NoError(t, err)
	err = m.Up()
	require.NoError(t, err)

	rates := rateServer(t, rateBody, rateStatus)
	client := exchange.NewClient(rates.URL, 5*time.Second)

	mediaDir := t.TempDir()
	repos := repository.NewRepositories(db, config.DBTypeMemory)
	svc := service.NewService(repos.Place, client, mediaDir, zap.NewNop())
	t.Cleanup(svc.Close)
	statsCollector := stats.NewCollector(db, cfg)

	return NewRouter(svc, statsCollector, mediaDir)
}

func createPlace(t *testing.T, handler http.Handler, body string) model.Place {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/places", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var place model.Place
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &place))
	return place
}

const valparaisoBody = `{"name":"Valparaíso","image_url":"http://x/y.jpg","lat":-33.05,"lon":-71.6,"display_order":1,"accommodation_cost":20000,"transportation_cost":5000,"comments":"nice"}`

func TestAPI_Integration_CreateAndList(t *testing.T) {
	handler := setupIntegrationStack(t, `{"serie":[{"valor":900.0,"fecha":"2024-01-01"}]}`, http.StatusOK)

	place := createPlace(t, handler, valparaisoBody)
	assert.GreaterOrEqual(t, place.ID, 1)
	assert.Equal(t, "Valparaíso", place.Name)

	req := httptest.NewRequest("GET", "/api/v1/places", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp model.PlaceListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Valparaíso", resp.Places[0].Name)
	assert.Equal(t, 20000, resp.Places[0].AccommodationCost)
	assert.Equal(t, 5000, resp.Places[0].TransportationCost)
	assert.Equal(t, "nice", resp.Places[0].Comments)
}

func TestAPI_Integration_ListOrdering(t *testing.T) {
	handler := setupIntegrationStack(t, `{"serie":[]}`, http.StatusOK)

	// Insert in reverse display order
	createPlace(t, handler, `{"name":"Santiago","lat":-33.45,"lon":-70.66,"display_order":2}`)
	createPlace(t, handler, `{"name":"Valparaíso","lat":-33.05,"lon":-71.6,"display_order":1}`)

	req := httptest.NewRequest("GET", "/api/v1/places", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp model.PlaceListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Valparaíso", resp.Places[0].Name)
	assert.Equal(t, "Santiago", resp.Places[1].Name)
}

func TestAPI_Integration_UpdateAndDelete(t *testing.T) {
	handler := setupIntegrationStack(t, `{"serie":[]}`, http.StatusOK)

	place := createPlace(t, handler, valparaisoBody)

	update := `{"name":"Viña del Mar","lat":-33.02,"lon":-71.55,"display_order":1,"accommodation_cost":30000}`
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/v1/places/%d", place.ID), bytes.NewBufferString(update))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/v1/places/%d", place.ID), nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var got model.Place
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Viña del Mar", got.Name)
	assert.Equal(t, 30000, got.AccommodationCost)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/places/%d", place.ID), nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/places/%d", place.ID), nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_Integration_Budget(t *testing.T) {
	handler := setupIntegrationStack(t, `{"serie":[{"valor":900.0,"fecha":"2024-01-01"}]}`, http.StatusOK)

	place := createPlace(t, handler, valparaisoBody)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/places/%d/budget", place.ID), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var budget model.BudgetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &budget))
	assert.Equal(t, 900.0, budget.Rate)
	assert.InDelta(t, 20000.0/900.0, budget.AccommodationCostUSD, 1e-9)
	assert.Equal(t, 25000, budget.TotalCLP)
}

func TestAPI_Integration_Budget_RateDown(t *testing.T) {
	handler := setupIntegrationStack(t, `oops`, http.StatusInternalServerError)

	place := createPlace(t, handler, valparaisoBody)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/places/%d/budget", place.ID), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestAPI_Integration_Rate(t *testing.T) {
	handler := setupIntegrationStack(t, `{"serie":[{"valor":912.35,"fecha":"2024-01-02"}]}`, http.StatusOK)

	req := httptest.NewRequest("GET", "/api/v1/rate", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp model.RateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 912.35, resp.Rate)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2024-01-02", *resp.Date)
}

func TestAPI_Integration_ImageUpload(t *testing.T) {
	handler := setupIntegrationStack(t, `{"serie":[]}`, http.StatusOK)

	place := createPlace(t, handler, valparaisoBody)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/places/%d/image", place.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got model.Place
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Contains(t, got.ImageURL, "/media/")
	assert.Contains(t, got.ImageURL, ".jpg")

	// The uploaded file is served back under /media/
	req = httptest.NewRequest("GET", got.ImageURL, nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "fake-jpeg-bytes", rr.Body.String())
}

func TestAPI_Integration_Stats(t *testing.T) {
	handler := setupIntegrationStack(t, `{"serie":[]}`, http.StatusOK)

	createPlace(t, handler, valparaisoBody)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var s stats.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Equal(t, int64(1), s.Database.TotalRecords)
}
