package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// batchServer is a fake Batch account that records request paths.
// A route answers with its JSON body, 202 for nil, or the status code of an int.
type batchServer struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
}

func newBatchServer(t *testing.T, routes map[string]interface{}) *batchServer {
	t.Helper()

	server := &batchServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.mu.Lock()
		server.paths = append(server.paths, request.Method+" "+request.URL.EscapedPath())
		server.mu.Unlock()

		body, ok := routes[request.Method+" "+request.URL.EscapedPath()]
		if !ok {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"code":"ResourceNotFound","message":{"lang":"en-US","value":"not found"}}`))

			return
		}

		switch value := body.(type) {
		case nil:
			writer.WriteHeader(http.StatusAccepted)

			return
		case int:
			writer.WriteHeader(value)

			return
		}

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(body)
	}))
	t.Cleanup(server.Close)

	return server
}

func (s *batchServer) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.paths...)
}

// useServer points the CLI configuration at server with a shared key.
func useServer(t *testing.T, server *batchServer, output string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("url", server.URL)
	viper.Set("account", "testaccount")
	viper.Set("account_key", "c2VjcmV0")
	viper.Set("output", output)
}

// execute runs cmd with args and returns what it printed.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}

	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func requireJSON(t *testing.T, output string, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), target), output)
}
