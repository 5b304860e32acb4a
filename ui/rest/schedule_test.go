package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	domainSchedule "github.com/AzielCF/az-cast/domains/schedule"
	pkgError "github.com/AzielCF/az-cast/pkg/error"
	"github.com/AzielCF/az-cast/ui/rest/middleware"
)

type fakeScheduleService struct {
	hours []int
}

func (f *fakeScheduleService) Hours(context.Context) ([]int, error) {
	return f.hours, nil
}

func (f *fakeScheduleService) Replace(_ context.Context, request domainSchedule.ReplaceRequest) ([]int, error) {
	if len(request.Hours) == 0 {
		return nil, pkgError.ValidationError("hours: cannot be blank.")
	}
	f.hours = request.Hours
	return f.hours, nil
}

func newScheduleTestApp(service domainSchedule.IScheduleUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.Recovery())
	InitRestSchedule(app, service)
	return app
}

func TestScheduleHandler_GetHours(t *testing.T) {
	app := newScheduleTestApp(&fakeScheduleService{hours: []int{9, 14}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/schedule", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var envelope struct {
		Code    string `json:"code"`
		Results struct {
			Hours []int `json:"hours"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if envelope.Code != "SUCCESS" {
		t.Fatalf("unexpected code %q", envelope.Code)
	}
	if len(envelope.Results.Hours) != 2 {
		t.Fatalf("unexpected hours %v", envelope.Results.Hours)
	}
}

func TestScheduleHandler_ReplaceHours(t *testing.T) {
	service := &fakeScheduleService{}
	app := newScheduleTestApp(service)

	body, _ := json.Marshal(map[string]any{"hours": []int{8, 17}})
	req := httptest.NewRequest(http.MethodPut, "/schedule", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if len(service.hours) != 2 {
		t.Fatalf("service hours = %v, want replaced", service.hours)
	}
}

func TestScheduleHandler_ValidationErrorsBecome400(t *testing.T) {
	app := newScheduleTestApp(&fakeScheduleService{})

	body, _ := json.Marshal(map[string]any{"hours": []int{}})
	req := httptest.NewRequest(http.MethodPut, "/schedule", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status %d, want 400", resp.StatusCode)
	}

	var envelope struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if envelope.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %q", envelope.Code)
	}
}
