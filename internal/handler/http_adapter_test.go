package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triggerRequest(t *testing.T, method, url, body string, isBase64 bool) *http.Request {
	t.Helper()
	var env HTTPTriggerRequest
	env.Data.Req.Method = method
	env.Data.Req.URL = url
	env.Data.Req.Body = body
	env.Data.Req.IsBase64Encoded = isBase64
	env.Data.Req.Headers = map[string][]string{"Content-Type": {"application/json"}}

	payload, err := json.Marshal(env)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/HttpTrigger", bytes.NewReader(payload))
}

func echoMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Content-Type", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	})
	return mux
}

func TestHandleHttpTrigger_PlainBody(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHttpTrigger(echoMux())(w, triggerRequest(t, http.MethodPost, "http://localhost:7071/api/echo", `{"a":1}`, false))

	require.Equal(t, http.StatusOK, w.Code)
	var resp HTTPTriggerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Outputs.Res.StatusCode)
	assert.Equal(t, `{"a":1}`, resp.Outputs.Res.Body)
	assert.Equal(t, "application/json", resp.Outputs.Res.Headers["X-Content-Type"])
}

func TestHandleHttpTrigger_Base64Body(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"a":2}`))

	w := httptest.NewRecorder()
	HandleHttpTrigger(echoMux())(w, triggerRequest(t, http.MethodPost, "http://localhost:7071/api/echo", encoded, false))

	var resp HTTPTriggerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, `{"a":2}`, resp.Outputs.Res.Body)
}

func TestHandleHttpTrigger_NotFound(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHttpTrigger(echoMux())(w, triggerRequest(t, http.MethodGet, "http://localhost:7071/api/missing", "", false))

	var resp HTTPTriggerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.Outputs.Res.StatusCode)
}

func TestHandleHttpTrigger_InvalidEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHttpTrigger(echoMux())(w, httptest.NewRequest(http.MethodPost, "/HttpTrigger", bytes.NewBufferString("nope")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
