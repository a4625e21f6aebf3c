package roboflow

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"leak-watch/internal/domain/entity"
)

const testKey = "secret-key"

type predictCall struct {
	project     string
	version     string
	query       map[string]string
	contentType string
	body        []byte
}

// newAPIServer имитирует API метаданных
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Use(requireKey)
	r.Get("/{workspace}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "workspace") != "water" {
			http.Error(w, `{"error":"workspace not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{
			"workspace": map[string]any{
				"name":     "Water",
				"url":      "water",
				"projects": []map[string]any{{"id": "water/pumps", "name": "Pumps"}},
			},
		})
	})
	r.Get("/{workspace}/{project}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"project": map[string]any{"id": "water/pumps", "name": "Pumps", "type": "object-detection"},
			"versions": []map[string]any{
				{"id": "water/pumps/1"},
				{"id": "water/pumps/3"},
			},
		})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// newDetectServer имитирует hosted-инференс и запоминает запросы
func newDetectServer(t *testing.T, calls *[]predictCall, status int, response string) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Use(requireKey)
	r.Post("/{project}/{version}", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		*calls = append(*calls, predictCall{
			project:     chi.URLParam(r, "project"),
			version:     chi.URLParam(r, "version"),
			query:       q,
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != testKey {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, key, apiURL, detectURL string) *Client {
	t.Helper()
	cfg := DefaultConfig(key)
	cfg.APIURL = apiURL
	cfg.DetectURL = detectURL
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestResolveModel_AndPredict(t *testing.T) {
	var calls []predictCall
	api := newAPIServer(t)
	detect := newDetectServer(t, &calls, http.StatusOK, `{
		"time": 0.12,
		"image": {"width": 640, "height": 480},
		"predictions": [
			{"x": 320, "y": 240, "width": 50, "height": 80, "confidence": 0.85, "class": "Leaking_Pump", "class_id": 0},
			{"x": 100, "y": 100, "width": 20, "height": 20, "confidence": 0.6, "class": "normal_pump", "class_id": 1}
		]
	}`)
	client := newTestClient(t, testKey, api.URL, detect.URL)
	ctx := context.Background()

	predictor, err := client.ResolveModel(ctx, entity.ModelRef{Workspace: "water", Project: "pumps", Version: 3})
	require.NoError(t, err)

	image := []byte{0xff, 0xd8, 0xff, 0xe0}
	resp, err := predictor.Predict(ctx, "pump.jpg", image, 40)
	require.NoError(t, err)
	require.Len(t, resp.Predictions, 2)
	require.Equal(t, "Leaking_Pump", resp.Predictions[0].String("class", ""))
	require.Equal(t, 0.85, resp.Predictions[0].Float("confidence", 0))

	require.Len(t, calls, 1)
	call := calls[0]
	require.Equal(t, "pumps", call.project)
	require.Equal(t, "3", call.version)
	require.Equal(t, "40", call.query["confidence"])
	require.Equal(t, "30", call.query["overlap"])
	require.Equal(t, "json", call.query["format"])
	require.Equal(t, "application/x-www-form-urlencoded", call.contentType)
	require.Equal(t, base64.StdEncoding.EncodeToString(image), string(call.body))
}

func TestResolveModel_UnknownVersion(t *testing.T) {
	api := newAPIServer(t)
	client := newTestClient(t, testKey, api.URL, api.URL)

	_, err := client.ResolveModel(context.Background(), entity.ModelRef{Workspace: "water", Project: "pumps", Version: 2})
	require.ErrorContains(t, err, "version 2 not found")
}

func TestResolveModel_BadKey(t *testing.T) {
	api := newAPIServer(t)
	client := newTestClient(t, "wrong", api.URL, api.URL)

	_, err := client.ResolveModel(context.Background(), entity.ModelRef{Workspace: "water", Project: "pumps", Version: 3})
	require.ErrorContains(t, err, "status 401")
	require.NotContains(t, err.Error(), "wrong")
}

func TestResolveModel_UnknownWorkspace(t *testing.T) {
	api := newAPIServer(t)
	client := newTestClient(t, testKey, api.URL, api.URL)

	_, err := client.Workspace(context.Background(), "sewage")
	require.ErrorContains(t, err, "load workspace sewage")
	require.ErrorContains(t, err, "status 404")
}

func TestPredict_PayloadTooLarge(t *testing.T) {
	var calls []predictCall
	detect := newDetectServer(t, &calls, http.StatusRequestEntityTooLarge, "Request Entity Too Large")
	client := newTestClient(t, testKey, detect.URL, detect.URL)
	model := &Model{client: client, Project: "pumps", Version: 3}

	_, err := model.Predict(context.Background(), "big.jpg", make([]byte, 16), 40)
	require.ErrorContains(t, err, "status 413")
	require.ErrorContains(t, err, "Request Entity Too Large")
}

func TestPredict_MissingPredictions(t *testing.T) {
	var calls []predictCall
	detect := newDetectServer(t, &calls, http.StatusOK, `{"time": 0.1}`)
	client := newTestClient(t, testKey, detect.URL, detect.URL)
	model := &Model{client: client, Project: "pumps", Version: 3}

	resp, err := model.Predict(context.Background(), "empty.jpg", []byte("x"), 40)
	require.NoError(t, err)
	require.Empty(t, resp.Predictions)
}

func TestPredict_InvalidJSON(t *testing.T) {
	var calls []predictCall
	detect := newDetectServer(t, &calls, http.StatusOK, `<html>`)
	client := newTestClient(t, testKey, detect.URL, detect.URL)
	model := &Model{client: client, Project: "pumps", Version: 3}

	_, err := model.Predict(context.Background(), "a.jpg", []byte("x"), 40)
	require.ErrorContains(t, err, "decode response")
}

func TestResolveModel_TransportErrorHidesKey(t *testing.T) {
	api := newAPIServer(t)
	apiURL := api.URL
	api.Close()

	client := newTestClient(t, testKey, apiURL, apiURL)
	_, err := client.ResolveModel(context.Background(), entity.ModelRef{Workspace: "water", Project: "pumps", Version: 3})
	require.ErrorContains(t, err, "load workspace water")
	require.NotContains(t, err.Error(), testKey)
	require.NotContains(t, err.Error(), "api_key")
}
