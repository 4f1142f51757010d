package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-iq-go/internal/config"
)

func TestNewHTTPEntityTagger_RequiresBaseURL(t *testing.T) {
	_, err := NewHTTPEntityTagger("", config.NERConfig{})
	assert.Error(t, err)
}

func TestHTTPEntityTagger_Tag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 模型名拼接在路径上
		assert.Equal(t, "/test-org/test-model", r.URL.Path)
		assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))

		var gotReq nerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "John works at Google", gotReq.Inputs)
		assert.Equal(t, "simple", gotReq.Parameters["aggregation_strategy"])

		_, _ = w.Write([]byte(`[
			{"word":"John","entity_group":"PER","score":0.99,"start":0,"end":4},
			{"word":"Google","entity_group":"ORG","score":0.98,"start":14,"end":20}
		]`))
	}))
	defer server.Close()

	tagger, err := NewHTTPEntityTagger("hf-token", config.NERConfig{
		BaseURL: server.URL + "/", // 尾部斜杠应被归一化
		Model:   "test-org/test-model",
	})
	require.NoError(t, err)

	entities, err := tagger.Tag(context.Background(), "John works at Google")
	require.NoError(t, err)

	require.Len(t, entities, 2)
	assert.Equal(t, "John", entities[0].Word)
	assert.Equal(t, "PER", entities[0].Label)
	assert.Equal(t, "ORG", entities[1].Label)
}

func TestHTTPEntityTagger_Tag_NestedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[{"word":"Acme","entity_group":"ORG","score":0.9,"start":0,"end":4}]]`))
	}))
	defer server.Close()

	tagger, err := NewHTTPEntityTagger("", config.NERConfig{BaseURL: server.URL})
	require.NoError(t, err)

	entities, err := tagger.Tag(context.Background(), "Acme")
	require.NoError(t, err)

	require.Len(t, entities, 1)
	assert.Equal(t, "Acme", entities[0].Word)
}

func TestHTTPEntityTagger_Tag_BlankInput(t *testing.T) {
	tagger, err := NewHTTPEntityTagger("", config.NERConfig{BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)

	// 空白文本不发请求
	entities, err := tagger.Tag(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, entities)
}

func TestHTTPEntityTagger_Tag_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model is loading"}`))
	}))
	defer server.Close()

	tagger, err := NewHTTPEntityTagger("", config.NERConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = tagger.Tag(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is loading")
}
