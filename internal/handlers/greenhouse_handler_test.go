package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "mashtal/internal/errors"
	"mashtal/internal/models"
	"mashtal/internal/pagination"
)

type mockGreenhouseService struct {
	createFn func(userID, name string, creationDate time.Time, initialCost float64) (*models.Greenhouse, error)
	listFn   func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Greenhouse], error)
	getFn    func(userID, greenhouseID string) (*models.Greenhouse, error)
	updateFn func(userID, greenhouseID, name string, creationDate *time.Time, initialCost *float64) (*models.Greenhouse, error)
	deleteFn func(userID, greenhouseID string) error
}

func (m *mockGreenhouseService) CreateGreenhouse(userID, name string, creationDate time.Time, initialCost float64) (*models.Greenhouse, error) {
	if m.createFn != nil {
		return m.createFn(userID, name, creationDate, initialCost)
	}
	return &models.Greenhouse{}, nil
}

func (m *mockGreenhouseService) GetUserGreenhouses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Greenhouse], error) {
	if m.listFn != nil {
		return m.listFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Greenhouse{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockGreenhouseService) GetGreenhouseByID(userID, greenhouseID string) (*models.Greenhouse, error) {
	if m.getFn != nil {
		return m.getFn(userID, greenhouseID)
	}
	return &models.Greenhouse{}, nil
}

func (m *mockGreenhouseService) UpdateGreenhouse(userID, greenhouseID, name string, creationDate *time.Time, initialCost *float64) (*models.Greenhouse, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, greenhouseID, name, creationDate, initialCost)
	}
	return &models.Greenhouse{}, nil
}

func (m *mockGreenhouseService) DeleteGreenhouse(userID, greenhouseID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, greenhouseID)
	}
	return nil
}

func setupGreenhouseRouter(handler *GreenhouseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("user-1"))
	auth.POST("/greenhouses", handler.CreateGreenhouse)
	auth.GET("/greenhouses", handler.GetGreenhouses)
	auth.GET("/greenhouses/:id", handler.GetGreenhouse)
	auth.PUT("/greenhouses/:id", handler.UpdateGreenhouse)
	auth.DELETE("/greenhouses/:id", handler.DeleteGreenhouse)
	return r
}

func TestGreenhouseHandler_CreateGreenhouse(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockGreenhouseService{
			createFn: func(userID, name string, creationDate time.Time, initialCost float64) (*models.Greenhouse, error) {
				if userID != "user-1" {
					t.Errorf("expected userID user-1, got %q", userID)
				}
				if creationDate.Format("2006-01-02") != "2023-03-15" {
					t.Errorf("expected creation date 2023-03-15, got %v", creationDate)
				}
				return &models.Greenhouse{
					Base:         models.Base{ID: "gh-1"},
					Name:         name,
					CreationDate: creationDate,
					InitialCost:  initialCost,
				}, nil
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "POST", "/greenhouses",
			`{"name":"North Greenhouse","creation_date":"2023-03-15","initial_cost":150000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		gh := result["greenhouse"].(map[string]interface{})
		if gh["name"] != "North Greenhouse" {
			t.Errorf("expected name North Greenhouse, got %v", gh["name"])
		}
		if gh["initial_cost"] != float64(150000) {
			t.Errorf("expected initial_cost 150000, got %v", gh["initial_cost"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupGreenhouseRouter(NewGreenhouseHandler(&mockGreenhouseService{}))

		rec := doRequest(r, "POST", "/greenhouses", `{"initial_cost":1000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed creation date", func(t *testing.T) {
		r := setupGreenhouseRouter(NewGreenhouseHandler(&mockGreenhouseService{}))

		rec := doRequest(r, "POST", "/greenhouses", `{"name":"GH","creation_date":"15/03/2023"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on negative initial cost", func(t *testing.T) {
		r := setupGreenhouseRouter(NewGreenhouseHandler(&mockGreenhouseService{}))

		rec := doRequest(r, "POST", "/greenhouses", `{"name":"GH","initial_cost":-5}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGreenhouseHandler_GetGreenhouses(t *testing.T) {
	t.Run("returns a paginated list", func(t *testing.T) {
		svc := &mockGreenhouseService{
			listFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Greenhouse], error) {
				resp := pagination.NewPageResponse([]models.Greenhouse{
					{Base: models.Base{ID: "gh-1"}, Name: "North"},
					{Base: models.Base{ID: "gh-2"}, Name: "South"},
				}, page.Page, page.PageSize, 2)
				return &resp, nil
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "GET", "/greenhouses?page=1&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 2 {
			t.Errorf("expected 2 greenhouses, got %d", len(data))
		}
		if result["total_items"] != float64(2) {
			t.Errorf("expected total_items 2, got %v", result["total_items"])
		}
	})

	t.Run("applies default pagination", func(t *testing.T) {
		var captured pagination.PageRequest
		svc := &mockGreenhouseService{
			listFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Greenhouse], error) {
				captured = page
				resp := pagination.NewPageResponse([]models.Greenhouse{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "GET", "/greenhouses", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured.Page != 1 || captured.PageSize != 20 {
			t.Errorf("expected defaults page=1 page_size=20, got %+v", captured)
		}
	})
}

func TestGreenhouseHandler_GetGreenhouse(t *testing.T) {
	t.Run("returns the greenhouse", func(t *testing.T) {
		svc := &mockGreenhouseService{
			getFn: func(_, greenhouseID string) (*models.Greenhouse, error) {
				return &models.Greenhouse{Base: models.Base{ID: greenhouseID}, Name: "North"}, nil
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "GET", "/greenhouses/gh-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		gh := parseJSON(t, rec)["greenhouse"].(map[string]interface{})
		if gh["id"] != "gh-1" {
			t.Errorf("expected id gh-1, got %v", gh["id"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockGreenhouseService{
			getFn: func(_, _ string) (*models.Greenhouse, error) {
				return nil, apperrors.ErrGreenhouseNotFound
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "GET", "/greenhouses/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GREENHOUSE_NOT_FOUND")
	})
}

func TestGreenhouseHandler_UpdateGreenhouse(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		svc := &mockGreenhouseService{
			updateFn: func(_, greenhouseID, name string, creationDate *time.Time, initialCost *float64) (*models.Greenhouse, error) {
				if name != "Renamed" {
					t.Errorf("expected name Renamed, got %q", name)
				}
				if creationDate != nil {
					t.Errorf("expected nil creation date, got %v", creationDate)
				}
				if initialCost == nil || *initialCost != 200000 {
					t.Errorf("expected initial cost 200000, got %v", initialCost)
				}
				return &models.Greenhouse{Base: models.Base{ID: greenhouseID}, Name: name, InitialCost: *initialCost}, nil
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "PUT", "/greenhouses/gh-1", `{"name":"Renamed","initial_cost":200000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockGreenhouseService{
			updateFn: func(_, _, _ string, _ *time.Time, _ *float64) (*models.Greenhouse, error) {
				return nil, apperrors.ErrGreenhouseNotFound
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "PUT", "/greenhouses/missing", `{"name":"X"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestGreenhouseHandler_DeleteGreenhouse(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		r := setupGreenhouseRouter(NewGreenhouseHandler(&mockGreenhouseService{}))

		rec := doRequest(r, "DELETE", "/greenhouses/gh-1", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when crop cycles reference it", func(t *testing.T) {
		svc := &mockGreenhouseService{
			deleteFn: func(_, _ string) error {
				return apperrors.ErrGreenhouseInUse
			},
		}
		r := setupGreenhouseRouter(NewGreenhouseHandler(svc))

		rec := doRequest(r, "DELETE", "/greenhouses/gh-1", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GREENHOUSE_IN_USE")
	})
}
