package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aiot_brain/internal/models"
	"aiot_brain/internal/service"
)

func TestDevicesHandlers_ListAndCreate(t *testing.T) {
	dev := &mockDevices{
		list:    []models.Device{{ID: "d1", Name: "MyTempSensor"}},
		created: models.Device{ID: "d2", Name: "boiler"},
	}
	r := newTestRouter(&service.Service{Devices: dev})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/devices", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d, body=%s", w.Code, w.Body.String())
	}
	var list []models.Device
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal devices: %v", err)
	}
	if len(list) != 1 || list[0].Name != "MyTempSensor" {
		t.Fatalf("unexpected devices: %+v", list)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/device", bytes.NewBufferString(`{"name":"boiler"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("create status=%d, body=%s", w.Code, w.Body.String())
	}
	if dev.lastName != "boiler" {
		t.Fatalf("name not forwarded, got %q", dev.lastName)
	}
	var created models.Device
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.ID != "d2" {
		t.Fatalf("unexpected created device: %+v", created)
	}
}

func TestCreateDevice_MissingName(t *testing.T) {
	dev := &mockDevices{}
	r := newTestRouter(&service.Service{Devices: dev})

	for _, body := range []string{`{}`, `not json`, `{"name":""}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/device", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
	if dev.lastName != "" {
		t.Fatal("service must not be called for invalid bodies")
	}
}

func TestDevicesHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"auth", fmt.Errorf("%w: %w", service.ErrAuth, errTest), http.StatusInternalServerError, "failed to log in to telemetry platform"},
		{"fetch", fmt.Errorf("%w: %w", service.ErrUpstreamFetch, errTest), http.StatusBadGateway, service.ErrUpstreamFetch.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Devices: &mockDevices{listErr: tc.err}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/devices", nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d", w.Code, tc.wantCode)
			}
			if got := errorMessage(t, w); got != tc.wantMsg {
				t.Fatalf("error=%q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestCreateDevice_PlatformRejects(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrCreateDevice, errTest)
	r := newTestRouter(&service.Service{Devices: &mockDevices{createErr: err}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/device", bytes.NewBufferString(`{"name":"dup"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := errorMessage(t, w); got != service.ErrCreateDevice.Error() {
		t.Fatalf("unexpected error message %q", got)
	}
}
