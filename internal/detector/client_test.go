package detector_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SyaefulEffendi/bahasaku-server/internal/detector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientValidatesEndpoint(t *testing.T) {
	_, err := detector.NewHTTPClient("")
	assert.Error(t, err)

	_, err = detector.NewHTTPClient("not a url")
	assert.Error(t, err)

	_, err = detector.NewHTTPClient("http://model:5000")
	assert.NoError(t, err)
}

func TestDetectSendsMultipartAndParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "0.60", r.FormValue("min_confidence"))

		file, _, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake frame"), payload)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"detections": []map[string]interface{}{
				{"label": "halo", "confidence": 0.92},
				{"label": "makan", "confidence": 0.64},
			},
		})
	}))
	defer server.Close()

	client, err := detector.NewHTTPClient(server.URL)
	require.NoError(t, err)

	detections, err := client.Detect(context.Background(), []byte("fake frame"), 0.60)
	require.NoError(t, err)
	require.Len(t, detections, 2)
	assert.Equal(t, "halo", detections[0].Label)
	assert.InDelta(t, 0.92, detections[0].Confidence, 1e-9)
}

func TestDetectPropagatesModelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := detector.NewHTTPClient(server.URL)
	require.NoError(t, err)

	_, err = client.Detect(context.Background(), []byte("frame"), 0.60)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDetectRejectsMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer server.Close()

	client, err := detector.NewHTTPClient(server.URL)
	require.NoError(t, err)

	_, err = client.Detect(context.Background(), []byte("frame"), 0.60)
	assert.Error(t, err)
}
