package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"uplift/backend/config"
	"uplift/backend/handlers/auth"
	"uplift/backend/handlers/profile"
	"uplift/backend/handlers/status"
	"uplift/backend/services/catalog"
	profilesvc "uplift/backend/services/profile"
	"uplift/backend/services/recommend"
	"uplift/backend/services/scholarship"
)

func newTestServer(t *testing.T, seed bool) *httptest.Server {
	t.Helper()
	classifier, err := scholarship.LoadClassifier("")
	require.NoError(t, err)
	a := &app{
		logger:      zap.NewNop(),
		catalog:     catalog.Default(),
		store:       profilesvc.NewMemoryStore(),
		checks:      []status.Check{{Name: "profile_store"}},
		tokens:      auth.NewTokens("test-secret", time.Hour),
		recommender: recommend.NewService(scholarship.NewPredictor(classifier), zap.NewNop()),
		model:       "test",
		seedEnabled: seed,
	}
	srv := httptest.NewServer(a.routes())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoutes_DeviceFlow(t *testing.T) {
	srv := newTestServer(t, false)

	resp := do(t, http.MethodPost, srv.URL+"/api/auth/device", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var device auth.DeviceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&device))

	resp = do(t, http.MethodGet, srv.URL+"/api/me/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	p := profilesvc.Profile{FirstName: "Sam", AgeRange: profilesvc.Age19To30, Needs: profilesvc.Needs{AffordableHousing: true}}
	resp = do(t, http.MethodPut, srv.URL+"/api/me/profile", device.Token, p)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/me/sections", device.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sections profile.SectionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sections))
	require.Len(t, sections.Sections, 1)
	assert.Equal(t, "housing", string(sections.Sections[0].Section))

	resp = do(t, http.MethodGet, srv.URL+"/api/me/status", device.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st status.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, status.StatusActive, st.Status)

	q := scholarship.Query{
		ClassYear:             "Senior",
		FieldOfStudy:          "Biology",
		GPARange:              "3.5-4.0",
		IncomeLevel:           "<$20,000",
		Extracurricular:       "STEM Clubs",
		CommunityServiceHours: "200+ hours",
		UnderrepresentedGroup: "Yes",
		FirstGenStudent:       "Yes",
	}
	resp = do(t, http.MethodPost, srv.URL+"/api/recommendations", device.Token, q)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec recommend.Recommendation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "STEM Excellence Award", rec.Label)

	resp = do(t, http.MethodPost, srv.URL+"/api/recommendations", "", q)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_Public(t *testing.T) {
	srv := newTestServer(t, false)

	for _, path := range []string{"/health", "/api/categories", "/api/map", "/api/resources", "/api/resources?lat=37.7749&lon=-122.4194&lat_delta=0.3&lon_delta=0.3", "/api/recommendations/options"} {
		resp := do(t, http.MethodGet, srv.URL+path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp := do(t, http.MethodPost, srv.URL+"/api/test/generate-profiles", "", nil)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_SeedEnabled(t *testing.T) {
	srv := newTestServer(t, true)

	resp := do(t, http.MethodPost, srv.URL+"/api/test/generate-profiles?count=2", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOpenProfileStore_Memory(t *testing.T) {
	s, err := openProfileStore(t.Context(), config.Config{ProfileBackend: config.BackendMemory}, zap.NewNop())
	require.NoError(t, err)
	defer s.close()
	assert.IsType(t, &profilesvc.MemoryStore{}, s.Store)
}

func TestOpenProfileStore_SQLite(t *testing.T) {
	cfg := config.Config{ProfileBackend: config.BackendSQLite, SQLitePath: t.TempDir() + "/uplift.db"}
	s, err := openProfileStore(t.Context(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.close()
	require.Len(t, s.checks, 1)
	assert.NoError(t, s.checks[0].Ping(t.Context()))
}

func TestOpenProfileStore_Unknown(t *testing.T) {
	_, err := openProfileStore(t.Context(), config.Config{ProfileBackend: "etcd"}, zap.NewNop())
	assert.Error(t, err)
}

func TestOpenClassifier(t *testing.T) {
	c, model := openClassifier(config.Config{}, zap.NewNop())
	assert.IsType(t, &scholarship.ArtifactClassifier{}, c)
	assert.Equal(t, "Scholarship_Recommender@2", model)

	_, model = openClassifier(config.Config{ModelPath: "/does/not/exist.json"}, zap.NewNop())
	assert.Empty(t, model)

	c, model = openClassifier(config.Config{ModelEndpoint: "http://127.0.0.1:1/predict", ModelTimeout: time.Second}, zap.NewNop())
	assert.IsType(t, &scholarship.RemoteClassifier{}, c)
	assert.Equal(t, "remote", model)
}

func TestCatalogCheck(t *testing.T) {
	assert.NoError(t, catalogCheck(catalog.Default())(t.Context()))
	assert.Error(t, catalogCheck(catalog.MustNew())(t.Context()))
}
