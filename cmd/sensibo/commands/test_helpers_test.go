package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "cli-test-key"

type apiCall struct {
	Method string
	Path   string
	Limit  string
	Body   map[string]interface{}
}

// fakeSensibo serves canned envelopes keyed by "METHOD path" and rejects
// requests without the test API key.
type fakeSensibo struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []apiCall
	routes map[string]string
}

func newFakeSensibo(t *testing.T, routes map[string]string) *fakeSensibo {
	t.Helper()

	api := &fakeSensibo{routes: routes}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)

	return api
}

func (f *fakeSensibo) serve(writer http.ResponseWriter, request *http.Request) {
	call := apiCall{
		Method: request.Method,
		Path:   request.URL.Path,
		Limit:  request.URL.Query().Get("limit"),
	}

	raw, _ := io.ReadAll(request.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	body, ok := f.routes[request.Method+" "+request.URL.Path]
	f.mu.Unlock()

	if request.URL.Query().Get("apiKey") != testAPIKey {
		writer.WriteHeader(http.StatusForbidden)
		_, _ = writer.Write([]byte(`{"status":"error","reason":"Forbidden","message":"invalid api key"}`))

		return
	}

	if !ok {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"status":"error","reason":"NotFound","message":"no such route"}`))

		return
	}

	_, _ = writer.Write([]byte(body))
}

func (f *fakeSensibo) recorded() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]apiCall(nil), f.calls...)
}

// cliHarness runs the command tree against a fake API with an isolated
// config file.
type cliHarness struct {
	root       *cobra.Command
	configFile string
	stdin      io.Reader
}

func newCLIHarness(t *testing.T, api *fakeSensibo) *cliHarness {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc", Date: "2024-01-01"})

	if api != nil {
		viper.Set(keyBaseURL, api.URL)
	}

	return &cliHarness{root: root, configFile: configFile}
}

// run executes args and returns stdout.
func (h *cliHarness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	h.root.SetOut(&stdout)
	h.root.SetErr(&stderr)

	if h.stdin != nil {
		h.root.SetIn(h.stdin)
	} else {
		h.root.SetIn(strings.NewReader(""))
	}

	h.root.SetArgs(args)

	err := h.root.Execute()

	return stdout.String(), err
}

// runJSON executes args with JSON output and decodes stdout into out.
func (h *cliHarness) runJSON(t *testing.T, out interface{}, args ...string) {
	t.Helper()

	stdout, err := h.run(t, append(args, "--output", "json")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), out), stdout)
}
