package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

func TestLLMClassifier_Analyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		msgs := req["messages"].([]interface{})
		assert.Len(t, msgs, 2)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{
				"message": {
					"content": "{\"categories\": [\"攝影\", \"錄影\"], \"reasoning\": \"描述聚焦於影像服務\"}"
				}
			}]
		}`))
	}))
	defer server.Close()

	c := NewLLMClassifier(server.URL, "test-key", "gpt-4o-mini")
	suggestion, err := c.Analyze(context.Background(), "提供專業婚禮攝影及錄影服務")
	assert.NoError(t, err)
	assert.Equal(t, []string{"攝影", "錄影"}, suggestion.Categories)
	assert.Equal(t, "描述聚焦於影像服務", suggestion.Reasoning)
}

func TestLLMClassifier_Analyze_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewLLMClassifier(server.URL, "k", "m")
	_, err := c.Analyze(context.Background(), "description")

	var serr *domain.ExternalServiceError
	assert.ErrorAs(t, err, &serr)
	assert.Equal(t, "classifier", serr.Service)
}

func TestLLMClassifier_Analyze_MissingContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	c := NewLLMClassifier(server.URL, "k", "m")
	_, err := c.Analyze(context.Background(), "description")
	assert.Error(t, err)
}

func TestParseResponse_DegradesGracefully(t *testing.T) {
	raw := []byte(`{"choices": [{"message": {"content": "{}"}}]}`)
	suggestion, err := parseResponse(raw)
	assert.NoError(t, err)
	assert.Empty(t, suggestion.Categories)
	assert.Empty(t, suggestion.Reasoning)
}
