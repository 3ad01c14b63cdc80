package scholarship

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteClassifier_Success(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"label":"STEM Excellence Award","model":"remote@7"}`))
	}))
	defer srv.Close()

	res, err := NewPredictor(NewRemoteClassifier(srv.URL, time.Second)).Predict(context.Background(), validQuery())

	require.NoError(t, err)
	assert.Equal(t, Result{Label: "STEM Excellence Award", Model: "remote@7"}, res)
	assert.Equal(t, validQuery().Features(), got)
}

func TestRemoteClassifier_NoLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"out of vocabulary"}`))
	}))
	defer srv.Close()

	_, err := NewRemoteClassifier(srv.URL, time.Second).Classify(context.Background(), validQuery())

	var perr *PredictionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PredictionNoLabel, perr.Kind)
	assert.Contains(t, err.Error(), "out of vocabulary")
}

func TestRemoteClassifier_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewRemoteClassifier(srv.URL, time.Second).Classify(context.Background(), validQuery())

	var perr *PredictionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PredictionUnavailable, perr.Kind)
}

func TestRemoteClassifier_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRemoteClassifier(url, time.Second).Classify(context.Background(), validQuery())

	assert.ErrorIs(t, err, ErrPrediction)
}
