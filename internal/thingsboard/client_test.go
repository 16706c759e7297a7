package thingsboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aiot_brain/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "tenant@thingsboard.org",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("platform-secret"))
	require.NoError(t, err)
	return tok
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Username: "tenant", Password: "secret"}, srv.Client(), nil)
}

func TestLogin_Success(t *testing.T) {
	token := signedToken(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, loginRequest{Username: "tenant", Password: "secret"}, body)
		_ = json.NewEncoder(w).Encode(loginResponse{Token: token})
	})

	got, err := c.Login(context.Background())
	require.NoError(t, err)
	require.Equal(t, token, got)
}

func TestLogin_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"Invalid username or password"}`, http.StatusUnauthorized)
		}},
		{"empty token", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"token":""}`)
		}},
		{"not a jwt", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"token":"definitely-not-a-jwt"}`)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>`)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.handler)
			_, err := c.Login(context.Background())
			require.ErrorIs(t, err, ErrAuth)
		})
	}
}

func TestLogin_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url}, nil, nil)
	_, err := c.Login(context.Background())
	require.ErrorIs(t, err, ErrAuth)
}

func TestListDevices_FlattensIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tenant/devices", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("pageSize"))
		require.Equal(t, "0", r.URL.Query().Get("page"))
		require.Equal(t, "Bearer tok", r.Header.Get("X-Authorization"))
		_, _ = io.WriteString(w, `{"data":[
			{"id":{"entityType":"DEVICE","id":"d-1"},"name":"MyTempSensor"},
			{"id":{"entityType":"DEVICE","id":"d-2"},"name":"Boiler"}
		],"totalPages":1,"hasNext":false}`)
	})

	devices, err := c.ListDevices(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, []models.Device{{ID: "d-1", Name: "MyTempSensor"}, {ID: "d-2", Name: "Boiler"}}, devices)
}

func TestListDevices_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	_, err := c.ListDevices(context.Background(), "tok")
	require.ErrorIs(t, err, ErrFetch)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusForbidden, se.Code)
}

func TestFetchTelemetry_RawQueryParamsAndDecoding(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	end := start.Add(12 * time.Hour)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/plugins/telemetry/DEVICE/dev 1/values/timeseries", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "temperature", q.Get("keys"))
		require.Equal(t, "1700000000000", q.Get("startTs"))
		require.Equal(t, "1700043200000", q.Get("endTs"))
		require.Equal(t, "NONE", q.Get("agg"))
		require.Equal(t, "10000", q.Get("limit"))
		require.Empty(t, q.Get("interval"))
		_, _ = io.WriteString(w, `{"temperature":[
			{"ts":1700000001000,"value":"23.5"},
			{"ts":1700000002000,"value":null},
			{"ts":1700000003000,"value":24}
		]}`)
	})

	series, err := c.FetchTelemetry(context.Background(), "tok", RawQuery("dev 1", "temperature", start, end))
	require.NoError(t, err)
	require.Equal(t, models.TimeSeries{"temperature": {
		{Timestamp: 1700000001000, Value: models.Float(23.5)},
		{Timestamp: 1700000002000},
		{Timestamp: 1700000003000, Value: models.Float(24)},
	}}, series)
}

func TestFetchTelemetry_AggregatedQueryParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "AVG", q.Get("agg"))
		require.Equal(t, "86400000", q.Get("interval"))
		require.Empty(t, q.Get("limit"))
		_, _ = io.WriteString(w, `{}`)
	})

	now := time.Now()
	series, err := c.FetchTelemetry(context.Background(), "tok", DailyAvgQuery("d", "humidity", now.Add(-time.Hour), now))
	require.NoError(t, err)
	_, ok := series["humidity"]
	require.False(t, ok, "absent key is not an error")
}

func TestFetchTelemetry_Errors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	now := time.Now()

	_, err := c.FetchTelemetry(context.Background(), "tok", RawQuery("d", "temperature", now.Add(-time.Hour), now))
	require.ErrorIs(t, err, ErrFetch)

	_, err = c.FetchTelemetry(context.Background(), "tok", RawQuery("", "temperature", now.Add(-time.Hour), now))
	require.ErrorIs(t, err, ErrFetch)

	_, err = c.FetchTelemetry(context.Background(), "tok", RawQuery("d", "temperature", now, now.Add(-time.Hour)))
	require.ErrorIs(t, err, ErrFetch)
}

func TestCreateDevice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/device", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"name":"Greenhouse"}`, string(b))
		_, _ = io.WriteString(w, `{"id":{"entityType":"DEVICE","id":"new-id"},"name":"Greenhouse","type":"default"}`)
	})

	d, err := c.CreateDevice(context.Background(), "tok", "Greenhouse")
	require.NoError(t, err)
	require.Equal(t, models.Device{ID: "new-id", Name: "Greenhouse"}, d)

	_, err = c.CreateDevice(context.Background(), "tok", "  ")
	require.ErrorIs(t, err, ErrCreate)
}

func TestCreateDevice_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Device with such name already exists!"}`, http.StatusBadRequest)
	})
	_, err := c.CreateDevice(context.Background(), "tok", "dup")
	require.ErrorIs(t, err, ErrCreate)
	require.Contains(t, err.Error(), "already exists")
}
