package advisory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/advisory"
)

// recordedRequest is what the fake server saw.
type recordedRequest struct {
	Path      string
	RequestID string
	Body      map[string]any
}

type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeServer {
	t.Helper()

	fake := &fakeServer{}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Path:      r.URL.Path,
			RequestID: r.Header.Get(advisory.RequestIDHeader),
			Body:      body,
		})
		fake.mu.Unlock()

		handler(w, r)
	}))
	t.Cleanup(fake.Close)
	return fake
}

func (f *fakeServer) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func chatReply(content string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":   "gemma2:2b",
			"message": map[string]string{"role": "assistant", "content": content},
			"done":    true,
		})
	}
}

func newClient(t *testing.T, endpoint string, mutate ...func(*advisory.Config)) *advisory.Client {
	t.Helper()

	cfg := advisory.DefaultConfig()
	cfg.Endpoint = endpoint
	for _, m := range mutate {
		m(&cfg)
	}
	client, err := advisory.New(cfg, advisory.WithLogger(logging.NewWithWriter(io.Discard, "error")))
	require.NoError(t, err)
	return client
}

func TestNewRejectsBadEndpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
	}{
		{name: "ftp scheme", endpoint: "ftp://localhost:11434"},
		{name: "file scheme", endpoint: "file:///tmp/socket"},
		{name: "no scheme", endpoint: "localhost:11434"},
		{name: "missing host", endpoint: "http://"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := advisory.DefaultConfig()
			cfg.Endpoint = testCase.endpoint
			_, err := advisory.New(cfg)

			var cfgErr *advisory.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "endpoint", cfgErr.Field)
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	client, err := advisory.New(advisory.Config{Endpoint: "https://models.example.com/"})
	require.NoError(t, err)

	cfg := client.Config()
	assert.Equal(t, "https://models.example.com", cfg.Endpoint)
	assert.Equal(t, "gemma2:2b", client.Model())
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 600*time.Second, cfg.PullTimeout)
	assert.Equal(t, 1500, cfg.MaxInputChars)
	assert.InDelta(t, 0.1, cfg.Temperature, 1e-9)
}

func TestAnalyzeSendsDefaultTemperature(t *testing.T) {
	t.Parallel()

	server := newFakeServer(t, chatReply(`{}`))
	client, err := advisory.New(advisory.Config{Endpoint: server.URL},
		advisory.WithLogger(logging.NewWithWriter(io.Discard, "error")))
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), "# Title\n")
	require.NoError(t, err)

	options := server.last(t).Body["options"].(map[string]any)
	assert.InDelta(t, 0.1, options["temperature"], 1e-9)
}

func TestAnalyzeSendsChatRequest(t *testing.T) {
	t.Parallel()

	server := newFakeServer(t, chatReply(`{"terms":[{"surface":"Ollama","note":"product"}]}`))
	client := newClient(t, server.URL, func(cfg *advisory.Config) {
		cfg.Model = "llama3.2"
		cfg.Language = "ja"
	})

	result, err := client.Analyze(context.Background(), "# Ollama\n")
	require.NoError(t, err)
	require.Len(t, result.Terms, 1)
	assert.Equal(t, advisory.Term{Surface: "Ollama", Note: "product"}, result.Terms[0])
	assert.NotNil(t, result.Inconsistencies)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)

	req := server.last(t)
	assert.Equal(t, advisory.ChatPath, req.Path)
	_, err = uuid.Parse(req.RequestID)
	require.NoError(t, err)

	assert.Equal(t, "llama3.2", req.Body["model"])
	assert.Equal(t, false, req.Body["stream"])
	assert.Equal(t, "json", req.Body["format"])
	assert.InDelta(t, 0.1, req.Body["options"].(map[string]any)["temperature"], 1e-9)

	messages := req.Body["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	user := messages[1].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Contains(t, system["content"], "MUST be in **Japanese**")
	assert.Equal(t, "user", user["role"])
	assert.Contains(t, user["content"], "-----\n# Ollama\n\n-----\n")
}

func TestAnalyzeTruncatesInput(t *testing.T) {
	t.Parallel()

	server := newFakeServer(t, chatReply(`{}`))
	client := newClient(t, server.URL, func(cfg *advisory.Config) { cfg.MaxInputChars = 10 })

	_, err := client.Analyze(context.Background(), strings.Repeat("あ", 25))
	require.NoError(t, err)

	user := server.last(t).Body["messages"].([]any)[1].(map[string]any)["content"].(string)
	assert.Contains(t, user, "-----\n"+strings.Repeat("あ", 10)+"\n-----\n")
	assert.NotContains(t, user, strings.Repeat("あ", 11))
}

func TestAnalyzeMalformedContentNeverErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "Sure! Here are the terms you asked for."},
		{name: "empty", content: ""},
		{name: "wrong type", content: `{"terms":"Ollama"}`},
		{name: "array root", content: `["a","b"]`},
		{name: "suggestion not string", content: `{"suggestions":[1,2]}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := newFakeServer(t, chatReply(testCase.content))
			client := newClient(t, server.URL)

			result, err := client.Analyze(context.Background(), "text")
			require.NoError(t, err)
			assert.Empty(t, result.Terms)
			assert.Empty(t, result.Inconsistencies)
			assert.Equal(t, []string{"JSON parse error: the model returned an invalid response"}, result.Suggestions)
		})
	}
}

func TestAnalyzeMalformedEnvelope(t *testing.T) {
	t.Parallel()

	server := newFakeServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>proxy error</html>")
	})
	client := newClient(t, server.URL, func(cfg *advisory.Config) { cfg.Language = "ja" })

	result, err := client.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []string{"JSON解析エラー: LLMの応答が不正でした"}, result.Suggestions)
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	t.Parallel()

	content := "```json\n{\"inconsistencies\":[{\"type\":\"style\",\"a\":\"e-mail\",\"b\":\"email\",\"note\":\"pick one\"}]}\n```"
	server := newFakeServer(t, chatReply(content))
	client := newClient(t, server.URL)

	result, err := client.Analyze(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, result.Inconsistencies, 1)
	assert.Equal(t, advisory.Inconsistency{Kind: "style", A: "e-mail", B: "email", Note: "pick one"}, result.Inconsistencies[0])
}

func TestAnalyzeUnavailable(t *testing.T) {
	t.Parallel()

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		server := newFakeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
		})
		client := newClient(t, server.URL)

		result, err := client.Analyze(context.Background(), "text")
		assert.Nil(t, result)
		require.ErrorIs(t, err, advisory.ErrUnavailable)

		var unavailable *advisory.UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, http.StatusInternalServerError, unavailable.StatusCode)
		assert.Contains(t, err.Error(), "model not loaded")
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		endpoint := server.URL
		server.Close()

		client := newClient(t, endpoint)
		_, err := client.Analyze(context.Background(), "text")
		require.ErrorIs(t, err, advisory.ErrUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		server := newFakeServer(t, func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		t.Cleanup(func() { close(release) })

		client := newClient(t, server.URL, func(cfg *advisory.Config) { cfg.RequestTimeout = 50 * time.Millisecond })
		_, err := client.Analyze(context.Background(), "text")
		require.ErrorIs(t, err, advisory.ErrUnavailable)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestParseContentDefaultsMissingKeys(t *testing.T) {
	t.Parallel()

	result, err := advisory.ParseContent(`{"suggestions":["shorter headings"]}`)
	require.NoError(t, err)
	assert.Equal(t, []advisory.Term{}, result.Terms)
	assert.Equal(t, []advisory.Inconsistency{}, result.Inconsistencies)
	assert.Equal(t, []string{"shorter headings"}, result.Suggestions)

	encoded, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"terms":[],"inconsistencies":[],"suggestions":["shorter headings"]}`, string(encoded))

	_, err = advisory.ParseContent("nope")
	var malformed *advisory.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParseContentAcceptsNulls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    *advisory.Result
	}{
		{
			name:    "null group",
			content: `{"terms":null,"inconsistencies":[],"suggestions":["Add a summary"]}`,
			want: &advisory.Result{
				Terms:           []advisory.Term{},
				Inconsistencies: []advisory.Inconsistency{},
				Suggestions:     []string{"Add a summary"},
			},
		},
		{
			name:    "null item fields",
			content: `{"terms":[{"surface":"Go","note":null}],"inconsistencies":[{"type":null,"a":"Go","b":"golang","note":"same language"}]}`,
			want: &advisory.Result{
				Terms:           []advisory.Term{{Surface: "Go"}},
				Inconsistencies: []advisory.Inconsistency{{A: "Go", B: "golang", Note: "same language"}},
				Suggestions:     []string{},
			},
		},
		{
			name:    "null suggestion dropped",
			content: `{"suggestions":[null,"Shorten the intro"]}`,
			want: &advisory.Result{
				Terms:           []advisory.Term{},
				Inconsistencies: []advisory.Inconsistency{},
				Suggestions:     []string{"Shorten the intro"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := advisory.ParseContent(testCase.content)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, result)
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"日本語テキスト", 3, "日本語"},
		{"abc", 0, "abc"},
		{"", 5, ""},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, advisory.Truncate(testCase.text, testCase.max),
			fmt.Sprintf("Truncate(%q, %d)", testCase.text, testCase.max))
	}

	long := strings.Repeat("x", 1600)
	assert.Len(t, advisory.Truncate(long, 1500), 1500)
}

func TestCleanJSONBlock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `{"a":1}`, advisory.CleanJSONBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, advisory.CleanJSONBlock("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, advisory.CleanJSONBlock("  {\"a\":1}  "))
}

func TestEnsureModel(t *testing.T) {
	t.Parallel()

	t.Run("stops at success", func(t *testing.T) {
		t.Parallel()

		server := newFakeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			var buf bytes.Buffer
			buf.WriteString(`{"status":"pulling manifest"}` + "\n")
			buf.WriteString(`{"status":"downloading","total":100,"completed":50}` + "\n")
			buf.WriteString(`{"status":"success"}` + "\n")
			buf.WriteString(`{"status":"ignored"}` + "\n")
			_, _ = w.Write(buf.Bytes())
		})
		client := newClient(t, server.URL)

		var statuses []string
		result, err := client.EnsureModel(context.Background(), func(p advisory.PullProgress) {
			statuses = append(statuses, p.Status)
		})
		require.NoError(t, err)
		assert.True(t, result.Completed)
		assert.Equal(t, 3, result.Lines)
		assert.Empty(t, result.Warning)
		assert.Equal(t, []string{"pulling manifest", "downloading", "success"}, statuses)

		req := server.last(t)
		assert.Equal(t, advisory.PullPath, req.Path)
		assert.Equal(t, "gemma2:2b", req.Body["name"])
	})

	t.Run("single json body", func(t *testing.T) {
		t.Parallel()

		server := newFakeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"status":"success"}`)
		})
		result, err := newClient(t, server.URL).EnsureModel(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, result.Completed)
	})

	t.Run("budget exhausted is a warning", func(t *testing.T) {
		t.Parallel()

		server := newFakeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			for range 20 {
				_, _ = io.WriteString(w, `{"status":"downloading"}`+"\n")
			}
		})
		client := newClient(t, server.URL, func(cfg *advisory.Config) { cfg.MaxPullLines = 5 })

		result, err := client.EnsureModel(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, result.Completed)
		assert.Equal(t, 5, result.Lines)
		assert.Contains(t, result.Warning, "(5)")
	})

	t.Run("stream error", func(t *testing.T) {
		t.Parallel()

		server := newFakeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"error":"pull model manifest: file does not exist"}`+"\n")
		})
		_, err := newClient(t, server.URL).EnsureModel(context.Background(), nil)
		require.ErrorIs(t, err, advisory.ErrUnavailable)
		assert.Contains(t, err.Error(), "file does not exist")
	})

	t.Run("status failure", func(t *testing.T) {
		t.Parallel()

		server := newFakeServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := newClient(t, server.URL).EnsureModel(context.Background(), nil)
		require.ErrorIs(t, err, advisory.ErrUnavailable)
	})
}
