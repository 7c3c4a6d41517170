package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
)

// HTTPTriggerRequest is the envelope the Functions host sends for HTTP triggers
// when request forwarding is disabled.
type HTTPTriggerRequest struct {
	Data struct {
		Req struct {
			URL             string              `json:"Url"`
			Method          string              `json:"Method"`
			Query           map[string]string   `json:"Query"`
			Headers         map[string][]string `json:"Headers"`
			Params          map[string]string   `json:"Params"`
			Body            string              `json:"Body"`
			IsBase64Encoded bool                `json:"isBase64Encoded"`
		} `json:"req"`
	} `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// HTTPTriggerResponse is the envelope returned to the Functions host.
type HTTPTriggerResponse struct {
	Outputs struct {
		Res struct {
			StatusCode int               `json:"statusCode"`
			Headers    map[string]string `json:"headers"`
			Body       string            `json:"body"`
		} `json:"res"`
	} `json:"Outputs"`
	Logs        []string `json:"Logs,omitempty"`
	ReturnValue any      `json:"ReturnValue,omitempty"`
}

// triggerBody returns the wrapped request body. Some hosts send base64 without
// setting isBase64Encoded, so a JSON body that happens to decode is left alone.
func triggerBody(body string, isBase64 bool) []byte {
	if body == "" {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return []byte(body)
	}
	if isBase64 || !json.Valid([]byte(body)) {
		return decoded
	}
	return []byte(body)
}

// HandleHttpTrigger unwraps a Functions HTTP trigger envelope, replays it on
// next and wraps the recorded response.
func HandleHttpTrigger(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var invokeReq HTTPTriggerRequest
		if err := json.NewDecoder(r.Body).Decode(&invokeReq); err != nil {
			slog.Error("failed to unmarshal HTTP trigger request", "error", err)
			WriteError(w, http.StatusBadRequest, "Failed to unmarshal request")
			return
		}

		reqData := invokeReq.Data.Req
		var bodyReader io.Reader = http.NoBody
		if body := triggerBody(reqData.Body, reqData.IsBase64Encoded); body != nil {
			bodyReader = bytes.NewReader(body)
		}

		innerReq, err := http.NewRequestWithContext(r.Context(), reqData.Method, reqData.URL, bodyReader)
		if err != nil {
			slog.Error("failed to create internal request", "method", reqData.Method, "url", reqData.URL, "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to create internal request")
			return
		}
		for k, values := range reqData.Headers {
			for _, v := range values {
				innerReq.Header.Add(k, v)
			}
		}

		slog.Info("replaying wrapped HTTP request", "method", innerReq.Method, "path", innerReq.URL.Path)

		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, innerReq)

		result := recorder.Result()
		defer result.Body.Close()
		respBody, _ := io.ReadAll(result.Body)

		var resp HTTPTriggerResponse
		resp.Outputs.Res.StatusCode = result.StatusCode
		resp.Outputs.Res.Headers = make(map[string]string, len(result.Header))
		for k := range result.Header {
			resp.Outputs.Res.Headers[k] = result.Header.Get(k)
		}
		resp.Outputs.Res.Body = string(respBody)

		WriteJSON(w, http.StatusOK, resp)
	}
}
