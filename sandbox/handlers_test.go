package sandbox

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/picoview/errors"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/topology"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, store *Store) *gin.Engine {
	t.Helper()
	r := gin.New()
	RegisterRoutes(r, store, logger.Nop())
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body.Error.Code
}

func TestListNodes_EmptyIsNotFound(t *testing.T) {
	rr := serve(newRouter(t, newStore(t)), http.MethodGet, "/api/nodes", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apperrors.ErrCodeNotFound, errorCode(t, rr))
}

func TestListNodes(t *testing.T) {
	store := newStore(t, "n1", "n2")
	_, err := store.CreatePod(topology.PodSpec{Name: "web", Image: "nginx"})
	require.NoError(t, err)

	rr := serve(newRouter(t, store), http.MethodGet, "/api/nodes", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var nodes []topology.Node
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "web", nodes[0].Pods[0].Name)
	assert.Empty(t, nodes[1].Pods)
}

func TestGetNode(t *testing.T) {
	r := newRouter(t, newStore(t, "n1"))

	rr := serve(r, http.MethodGet, "/api/nodes/n1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"n1"`)

	rr = serve(r, http.MethodGet, "/api/nodes/ghost", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreatePod(t *testing.T) {
	r := newRouter(t, newStore(t, "n1"))

	rr := serve(r, http.MethodPost, "/api/containers", `{"name":"web","image":"nginx","ports":["8080:80"]}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var pod topology.Pod
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pod))
	assert.Equal(t, topology.StateRunning, pod.State)
	assert.NotEmpty(t, pod.ID)

	rr = serve(r, http.MethodPost, "/api/containers", `{"name":"web","image":"nginx"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apperrors.ErrCodeAlreadyExists, errorCode(t, rr))
}

func TestCreatePod_Invalid(t *testing.T) {
	r := newRouter(t, newStore(t, "n1"))

	for _, body := range []string{
		`{`,
		`null`,
		`{"name":"Bad Name","image":"nginx"}`,
		`{"name":"web"}`,
		`{"name":"web","image":"nginx","ports":["abc"]}`,
		`{"name":"web","image":"nginx","env":["=x"]}`,
	} {
		rr := serve(r, http.MethodPost, "/api/containers", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		assert.Equal(t, apperrors.ErrCodeInvalidInput, errorCode(t, rr), body)
	}
}

func TestPodRoutes(t *testing.T) {
	store := newStore(t, "n1")
	_, err := store.CreatePod(topology.PodSpec{Name: "web", Image: "nginx"})
	require.NoError(t, err)
	r := newRouter(t, store)

	tests := []struct {
		method, path string
		code         int
		state        string
	}{
		{http.MethodGet, "/api/containers/web", http.StatusOK, topology.StateRunning},
		{http.MethodPut, "/api/containers/web/stop", http.StatusOK, topology.StateStopped},
		{http.MethodPut, "/api/containers/web/start", http.StatusOK, topology.StateRunning},
		{http.MethodPut, "/api/containers/web/restart", http.StatusOK, topology.StateRunning},
		{http.MethodPut, "/api/containers/web/explode", http.StatusNotFound, ""},
		{http.MethodPut, "/api/containers/ghost/start", http.StatusNotFound, ""},
		{http.MethodGet, "/api/containers/ghost", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rr := serve(r, tt.method, tt.path, "")
		require.Equal(t, tt.code, rr.Code, "%s %s", tt.method, tt.path)
		if tt.state != "" {
			var pod topology.Pod
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pod))
			assert.Equal(t, tt.state, pod.State, "%s %s", tt.method, tt.path)
		}
	}

	rr := serve(r, http.MethodGet, "/api/containers/web/logs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var lines []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lines))
	assert.Len(t, lines, 6)

	rr = serve(r, http.MethodDelete, "/api/containers/web", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = serve(r, http.MethodGet, "/api/containers", "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}
