package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

const testAPIKey = "test-api-key"

// recordedRequest is one request seen by a fakeAPI.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// fakeAPI is an httptest server answering with canned bodies per
// "METHOD path" and recording every request.
type fakeAPI struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{responses: make(map[string]cannedResponse)}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)

	return api
}

func (a *fakeAPI) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	a.mu.Lock()
	a.requests = append(a.requests, recordedRequest{
		Method: request.Method,
		Path:   request.URL.EscapedPath(),
		Query:  request.URL.Query(),
		Body:   body,
	})
	canned, ok := a.responses[request.Method+" "+request.URL.EscapedPath()]
	a.mu.Unlock()

	if !ok {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"status":"error","reason":"NotFound","message":"no such route"}`))

		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(canned.status)
	_, _ = writer.Write([]byte(canned.body))
}

// respond registers body for method and path with status 200.
func (a *fakeAPI) respond(method, path, body string) {
	a.respondStatus(method, path, http.StatusOK, body)
}

func (a *fakeAPI) respondStatus(method, path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

func (a *fakeAPI) recorded() []recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]recordedRequest(nil), a.requests...)
}

// newTestClient creates a client bound to api.
func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()

	client, err := New(&sensibo.Config{APIKey: testAPIKey, BaseURL: api.URL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

// decodeBody unmarshals a recorded request body.
func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var decoded map[string]interface{}

	require.NoError(t, json.Unmarshal(body, &decoded))

	return decoded
}
