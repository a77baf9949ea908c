package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"ggumjisum/backend/models"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	openAIModel          = "gpt-4o-mini"
)

const systemPrompt = `You are a Korean financial transaction parser. Parse the user's input and return a JSON object with:
- type: "expense" or "income"
- amount: number (in KRW)
- category: one of [coffee, food, transport, drink, shopping, entertainment, health, etc]
- description: brief summary in Korean (max 30 chars)
- confidence: 0.0-1.0

If you can't parse, return null.`

// RemoteParser wraps the OpenAI chat-completions API behind the same
// contract as Parse. Every failure mode collapses to a nil result so the
// caller can fall back to the rule-based parser; it never errors.
type RemoteParser struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewRemoteParser builds a remote parser. baseURL may be empty to use
// the public API endpoint.
func NewRemoteParser(apiKey, baseURL string, timeout time.Duration) *RemoteParser {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteParser{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat responseFmt   `json:"response_format"`
	MaxTokens      int           `json:"max_tokens"`
	Temperature    float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFmt struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Parse asks the remote model to parse the text. Returns nil on missing
// credentials, transport errors, non-2xx responses, or payloads that
// fail validation.
func (p *RemoteParser) Parse(ctx context.Context, text string) *models.ParseResult {
	if p == nil || p.apiKey == "" {
		log.Println("[NLP] OpenAI API key not configured")
		return nil
	}

	reqBody := chatRequest{
		Model: openAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Parse this Korean transaction: %q", text)},
		},
		ResponseFormat: responseFmt{Type: "json_object"},
		MaxTokens:      200,
		Temperature:    0.3,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		log.Printf("[NLP] marshaling request: %v", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		log.Printf("[NLP] building request: %v", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[NLP] OpenAI request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[NLP] OpenAI API error: %d", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[NLP] reading response: %v", err)
		return nil
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		log.Printf("[NLP] decoding response: %v", err)
		return nil
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		log.Println("[NLP] empty response from OpenAI")
		return nil
	}

	var result models.ParseResult
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &result); err != nil {
		log.Printf("[NLP] malformed parse payload: %v", err)
		return nil
	}
	if !validResult(&result) {
		log.Printf("[NLP] rejected remote result: %+v", result)
		return nil
	}

	result.Description = Truncate(result.Description, DescriptionLimit)
	log.Printf("[NLP] OpenAI parsed: type=%s amount=%d category=%s", result.Type, result.Amount, result.Category)
	return &result
}

// validResult enforces the all-or-nothing invariant: amount positive,
// type and category both set to known values, confidence in range.
func validResult(r *models.ParseResult) bool {
	if r.Amount <= 0 {
		return false
	}
	if r.Type != models.TypeExpense && r.Type != models.TypeIncome {
		return false
	}
	if !KnownCategory(r.Category) {
		return false
	}
	return r.Confidence >= 0 && r.Confidence <= 1
}
