package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"energy-calculator/cache"
	"energy-calculator/confs"
	"energy-calculator/repositories"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fullProfile = `{
	"name": "Asha",
	"age": 31,
	"city": "Pune",
	"area": "Kothrud",
	"habitation_type": "House",
	"dwelling_category": "2BHK",
	"has_ac": "Yes",
	"has_fridge": "Yes",
	"has_washing_machine": "No"
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := confs.Config{
		GinMode:         gin.TestMode,
		SessionStore:    confs.StoreMemory,
		SessionTTL:      30 * time.Minute,
		JanitorInterval: time.Minute,
	}
	return NewServer(cfg, repositories.NewSessionMemoryRepository(cache.NewSessionCache()), zap.NewNop())
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var out map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func dig(t *testing.T, v interface{}, keys ...string) interface{} {
	t.Helper()
	for _, k := range keys {
		m, ok := v.(map[string]interface{})
		require.True(t, ok, "expected object at %q", k)
		v = m[k]
	}
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])

	w, _ = do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMethodology(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodGet, "/api/v1/methodology", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 30, dig(t, body, "data", "period_days"))
}

func TestStatelessEstimate(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodPost, "/api/v1/estimate", fullProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 318.0, dig(t, body, "data", "estimate", "total"))
	assert.Equal(t, "units", dig(t, body, "data", "estimate", "unit"))
	assert.Len(t, dig(t, body, "data", "estimate", "breakdown"), 3)
}

func TestStatelessEstimateIncomplete(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodPost, "/api/v1/estimate", `{"name":"Asha","dwelling_category":"1BHK"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body["missing"], "city")
	assert.NotContains(t, body["missing"], "name")
	assert.EqualValues(t, 2, dig(t, body, "validation", "completed"))
}

func TestStatelessEstimateBadInput(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodPost, "/api/v1/estimate", `{"dwelling_category":"4BHK","has_ac":"maybe"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "dwelling_category")
	assert.Contains(t, details, "has_ac")

	w, _ = do(t, s, http.MethodPost, "/api/v1/estimate", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, body := do(t, s, http.MethodPost, "/api/v1/validate", `{"name":"Asha","has_ac":"No"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, dig(t, body, "data", "validation", "completed"))
	assert.EqualValues(t, 8, dig(t, body, "data", "validation", "total"))
	assert.Equal(t, false, dig(t, body, "data", "validation", "complete"))
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	w, body := do(t, s, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	id, ok := dig(t, body, "data", "session", "id").(string)
	require.True(t, ok)
	require.NotEmpty(t, id)
	return id
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)
	base := "/api/v1/sessions/" + id

	w, body := do(t, s, http.MethodPost, base+"/calculate", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, body["missing"], 8)

	w, _ = do(t, s, http.MethodGet, base+"/report.pdf", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = do(t, s, http.MethodPatch, base, fullProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, dig(t, body, "data", "validation", "complete"))

	w, body = do(t, s, http.MethodPost, base+"/calculate", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 318.0, dig(t, body, "data", "estimate", "total"))

	w, body = do(t, s, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dig(t, body, "data", "session", "calculated"))

	w, _ = do(t, s, http.MethodGet, base+"/report.pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), id+".pdf")

	w, _ = do(t, s, http.MethodGet, base+"/report.xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())

	w, body = do(t, s, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dig(t, body, "data", "session", "calculated"))
	assert.EqualValues(t, 25, dig(t, body, "data", "session", "profile", "age"))

	w, _ = do(t, s, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, s, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionPatchRejectsBadAge(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	w, body := do(t, s, http.MethodPatch, "/api/v1/sessions/"+id, `{"age": 130}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["details"], "age")
}

func TestSessionStatsAndPurge(t *testing.T) {
	s := newTestServer(t)
	createSession(t, s)

	w, body := do(t, s, http.MethodGet, "/api/v1/sessions/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, dig(t, body, "stats", "active_sessions"))

	w, body = do(t, s, http.MethodPost, "/api/v1/sessions/purge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["removed"])
}

func TestLiveFormRequiresSession(t *testing.T) {
	s := newTestServer(t)

	w, _ := do(t, s, http.MethodGet, "/ws", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, s, http.MethodGet, "/ws?session=missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestLiveForm(t *testing.T) {
	s := newTestServer(t)
	id := createSession(t, s)

	w, _ := do(t, s, http.MethodPatch, "/api/v1/sessions/"+id, `{
		"name": "Asha", "city": "Pune", "area": "Kothrud",
		"habitation_type": "Flat", "dwelling_category": "1BHK",
		"has_ac": "No", "has_fridge": "Yes"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?session=" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readFrame(t, conn)
	assert.Equal(t, "validation", msg["type"])
	assert.EqualValues(t, 7, dig(t, msg, "validation", "completed"))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "calculate"}))
	msg = readFrame(t, conn)
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, []interface{}{"has_washing_machine"}, msg["missing"])

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "set_field", "field": "has_washing_machine", "value": "No"}))
	msg = readFrame(t, conn)
	assert.Equal(t, "validation", msg["type"])
	assert.Equal(t, true, dig(t, msg, "validation", "complete"))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "calculate"}))
	msg = readFrame(t, conn)
	assert.Equal(t, "estimate", msg["type"])
	assert.Equal(t, 192.0, dig(t, msg, "estimate", "total"))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "set_field", "field": "dwelling_category", "value": "4BHK"}))
	msg = readFrame(t, conn)
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, "dwelling_category", msg["field"])

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dance"}))
	msg = readFrame(t, conn)
	assert.Equal(t, "error", msg["type"])

	w, body := do(t, s, http.MethodGet, "/api/v1/sessions/connected", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])
}
