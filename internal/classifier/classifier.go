package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
)

// Categories the model may pick from. Kept in the system prompt so the
// model never invents a label the intake form cannot show.
const systemPrompt = "你是一位專業的婚宴服務分類專家。根據用戶提供的服務描述，分析並建議最適合的婚宴服務分類。可選分類包括：場地、攝影、錄影、化妝、婚紗禮服、餐飲、婚禮統籌、花藝佈置、婚禮音樂、婚禮主持、婚禮蛋糕、婚禮邀請卡、婚禮小物、婚車租賃、蜜月旅遊、婚戒珠寶、其他。請返回 1-3 個最相關的分類。"

// Suggestion is the classifier's answer for one service description.
type Suggestion struct {
	Categories []string `json:"categories"`
	Reasoning  string   `json:"reasoning"`
}

// Classifier suggests wedding service categories for a free-text
// description.
type Classifier interface {
	Analyze(ctx context.Context, description string) (*Suggestion, error)
}

// LLMClassifier calls an OpenAI-compatible chat completions endpoint with
// a strict JSON schema response format.
type LLMClassifier struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewLLMClassifier(endpoint, apiKey, model string) *LLMClassifier {
	return &LLMClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *LLMClassifier) Analyze(ctx context.Context, description string) (*Suggestion, error) {
	logger.ExternalServiceCall("classifier", "analyze")

	body, err := json.Marshal(c.buildRequest(description))
	if err != nil {
		return nil, fmt.Errorf("failed to encode classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("classifier", "analyze", err)
		return nil, &domain.ExternalServiceError{Service: "classifier", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logger.ExternalServiceResult("classifier", "analyze", err)
		return nil, &domain.ExternalServiceError{Service: "classifier", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("classifier returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("classifier", "analyze", err)
		return nil, &domain.ExternalServiceError{Service: "classifier", Err: err}
	}

	suggestion, err := parseResponse(raw)
	logger.ExternalServiceResult("classifier", "analyze", err)
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "classifier", Err: err}
	}
	return suggestion, nil
}

func (c *LLMClassifier) buildRequest(description string) map[string]interface{} {
	return map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf("請分析以下婚宴服務描述，並建議適合的分類：\n\n%s", description)},
		},
		"response_format": map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   "wedding_category_analysis",
				"strict": true,
				"schema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"categories": map[string]interface{}{
							"type":        "array",
							"items":       map[string]string{"type": "string"},
							"description": "建議的婚宴服務分類列表（1-3個）",
						},
						"reasoning": map[string]interface{}{
							"type":        "string",
							"description": "分類建議的理由",
						},
					},
					"required":             []string{"categories", "reasoning"},
					"additionalProperties": false,
				},
			},
		},
	}
}

// parseResponse digs the schema-constrained JSON out of the first choice.
// Missing fields degrade to empty values rather than an error, matching
// how the intake form treats an unhelpful suggestion.
func parseResponse(raw []byte) (*Suggestion, error) {
	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("classifier response has no message content")
	}

	parsed := gjson.Parse(content.String())
	suggestion := &Suggestion{
		Categories: []string{},
		Reasoning:  parsed.Get("reasoning").String(),
	}
	for _, c := range parsed.Get("categories").Array() {
		suggestion.Categories = append(suggestion.Categories, c.String())
	}
	return suggestion, nil
}
