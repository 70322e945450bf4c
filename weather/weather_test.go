package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "2950159", r.URL.Query().Get("id"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Berlin","main":{"temp":-3.7}}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/", APIKey: "secret", CityID: "2950159", HTTP: srv.Client()}
	data, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Berlin", data["name"])

	temp, ok := Temperature(data)
	require.True(t, ok)
	assert.Equal(t, -3.7, temp)
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "bad", CityID: "1"}
	_, err := c.Fetch(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se), "expected StatusError, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Contains(t, se.Body, "Invalid API key")
}

func TestFetchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "k", CityID: "1"}
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchMissingCredentials(t *testing.T) {
	_, err := (&Client{APIKey: "k"}).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = (&Client{CityID: "1"}).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFetchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Client{BaseURL: srv.URL, APIKey: "k", CityID: "1"}
	_, err := c.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "abc")
	t.Setenv(EnvCityID, "42")
	c := FromEnv()
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, "abc", c.APIKey)
	assert.Equal(t, "42", c.CityID)
}

func TestTemperatureMissing(t *testing.T) {
	_, ok := Temperature(map[string]any{"main": map[string]any{}})
	assert.False(t, ok)
	_, ok = Temperature(map[string]any{"main": map[string]any{"temp": "warm"}})
	assert.False(t, ok)
}
