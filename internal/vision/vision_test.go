package vision

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadfanatic/server/internal/ratelimit"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestAdapter(t *testing.T, serverURL string) *HuggingFace {
	t.Helper()
	limiter := ratelimit.New(100, 100)
	t.Cleanup(limiter.Stop)
	return NewHuggingFace("test-key", ModelBLIPLarge, 5*time.Second, limiter, testLogger(), WithBaseURL(serverURL))
}

func TestHuggingFace_Caption(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text":"a round blue glass bead"}]`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)
	caption, err := adapter.Caption(context.Background(), []byte("fake-image"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "a round blue glass bead", caption)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, "/"+ModelBLIPLarge, gotPath)
}

func TestHuggingFace_ModelLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":12.5}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)
	_, err := adapter.Caption(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, ErrModelLoading)
}

func TestHuggingFace_UnavailableWithoutEstimate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)
	_, err := adapter.Caption(context.Background(), []byte("img"), "image/png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrModelLoading)
}

func TestHuggingFace_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)
	_, err := adapter.Caption(context.Background(), []byte("img"), "image/png")
	assert.Error(t, err)
}

func TestHuggingFace_EmptyCaption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)
	_, err := adapter.Caption(context.Background(), []byte("img"), "image/png")
	assert.Error(t, err)
}

func TestHuggingFace_NoKey(t *testing.T) {
	limiter := ratelimit.New(100, 100)
	defer limiter.Stop()

	adapter := NewHuggingFace("", ModelBLIPLarge, time.Second, limiter, testLogger())
	_, err := adapter.Caption(context.Background(), []byte("img"), "image/png")
	assert.Error(t, err)
}

// fakeProvider scripts a sequence of responses for chain tests.
type fakeProvider struct {
	name    string
	results []fakeResult
	calls   int
}

type fakeResult struct {
	caption string
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Caption(_ context.Context, _ []byte, _ string) (string, error) {
	r := f.results[min(f.calls, len(f.results)-1)]
	f.calls++
	return r.caption, r.err
}

func TestChain_FirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "first", results: []fakeResult{{caption: "a bead"}}}
	second := &fakeProvider{name: "second", results: []fakeResult{{caption: "unused"}}}

	chain := NewChain([]Provider{first, second}, time.Millisecond, testLogger())
	result, err := chain.Caption(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "a bead", result.Caption)
	assert.Equal(t, "first", result.Provider)
	assert.Equal(t, []string{"first"}, result.Attempts)
	assert.Equal(t, 0, second.calls)
}

func TestChain_FallsThroughOnFailure(t *testing.T) {
	first := &fakeProvider{name: "first", results: []fakeResult{{err: errors.New("boom")}}}
	second := &fakeProvider{name: "second", results: []fakeResult{{caption: "a stone bead"}}}

	chain := NewChain([]Provider{first, second}, time.Millisecond, testLogger())
	result, err := chain.Caption(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "second", result.Provider)
	assert.Equal(t, []string{"first", "second"}, result.Attempts)
}

func TestChain_RetriesLoadingModelOnce(t *testing.T) {
	provider := &fakeProvider{
		name:    "warming",
		results: []fakeResult{{err: ErrModelLoading}, {caption: "a glass bead"}},
	}

	chain := NewChain([]Provider{provider}, time.Millisecond, testLogger())
	result, err := chain.Caption(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "a glass bead", result.Caption)
	assert.Equal(t, 2, provider.calls)
}

func TestChain_LoadingModelNotRetriedTwice(t *testing.T) {
	provider := &fakeProvider{
		name:    "stuck",
		results: []fakeResult{{err: ErrModelLoading}},
	}

	chain := NewChain([]Provider{provider}, time.Millisecond, testLogger())
	_, err := chain.Caption(context.Background(), []byte("img"), "image/png")
	require.Error(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestChain_AllFail(t *testing.T) {
	first := &fakeProvider{name: "first", results: []fakeResult{{err: errors.New("timeout")}}}
	second := &fakeProvider{name: "second", results: []fakeResult{{err: errors.New("quota")}}}

	chain := NewChain([]Provider{first, second}, time.Millisecond, testLogger())
	_, err := chain.Caption(context.Background(), []byte("img"), "image/png")
	require.Error(t, err)

	var chainErr *ChainError
	require.True(t, errors.As(err, &chainErr))
	require.Len(t, chainErr.Failures, 2)
	assert.Equal(t, "first", chainErr.Failures[0].Provider)
	assert.Equal(t, "timeout", chainErr.Failures[0].Reason)
	assert.Equal(t, "second", chainErr.Failures[1].Provider)
}

func TestChain_ContextCancellation(t *testing.T) {
	provider := &fakeProvider{name: "slow", results: []fakeResult{{err: ErrModelLoading}}}
	chain := NewChain([]Provider{provider}, time.Minute, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := chain.Caption(ctx, []byte("img"), "image/png")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
