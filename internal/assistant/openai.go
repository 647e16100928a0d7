package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// extractionPrompt instructs the model to answer with the intent JSON
// and nothing else. Temperature zero keeps the output parseable.
const extractionPrompt = `Extract intent and return JSON only.

{
  "intent": "check_availability | create_booking | general",
  "date": "YYYY-MM-DD or null",
  "start_time": "HH:MM or null",
  "end_time": "HH:MM or null",
  "people": number or null,
  "hall_name": "string or null"
}`

// chatPrompt governs the general-conversation fallback. The widget
// renders raw text, so the model is told to avoid any markdown.
const chatPrompt = `You are an assistant for a temple hall booking service.

Rules:
- Respond in plain text only.
- Do NOT use markdown, bullet points or numbering.
- Write simple sentences and ask for details one at a time.`

// OpenAIExtractor implements Extractor against an OpenAI-compatible
// chat-completions endpoint. It is stateless; one instance is shared
// by all requests.
type OpenAIExtractor struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

// NewOpenAIExtractor builds an extractor for the given endpoint. A
// default HTTP client with a request timeout is installed; callers
// may replace it.
func NewOpenAIExtractor(baseURL, apiKey, model string) *OpenAIExtractor {
	return &OpenAIExtractor{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs one chat-completions call and returns the first
// choice's content.
func (e *OpenAIExtractor) complete(ctx context.Context, temperature float64, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{Model: e.Model, Temperature: temperature, Messages: messages})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+e.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	return out.Choices[0].Message.Content, nil
}

// extractedIntent mirrors the JSON the extraction prompt asks for;
// pointers absorb explicit nulls.
type extractedIntent struct {
	Intent    *string  `json:"intent"`
	Date      *string  `json:"date"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
	People    *float64 `json:"people"`
	HallName  *string  `json:"hall_name"`
}

// ExtractIntent asks the model for the intent JSON and normalises it
// into an Intent. A reply that is not valid JSON is an infrastructure
// failure of the extraction collaborator and is returned as an error.
func (e *OpenAIExtractor) ExtractIntent(ctx context.Context, message string) (Intent, error) {
	content, err := e.complete(ctx, 0, []chatMessage{
		{Role: "system", Content: extractionPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		return Intent{}, err
	}
	// Some models wrap JSON in a code fence despite instructions.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw extractedIntent
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return Intent{}, fmt.Errorf("parse extraction payload: %w", err)
	}
	in := Intent{Intent: IntentGeneral}
	if raw.Intent != nil {
		in.Intent = strings.TrimSpace(*raw.Intent)
	}
	if raw.Date != nil {
		in.Date = strings.TrimSpace(*raw.Date)
	}
	if raw.StartTime != nil {
		in.StartTime = strings.TrimSpace(*raw.StartTime)
	}
	if raw.EndTime != nil {
		in.EndTime = strings.TrimSpace(*raw.EndTime)
	}
	if raw.People != nil && *raw.People > 0 {
		in.People = uint32(*raw.People)
	}
	if raw.HallName != nil {
		in.HallName = strings.TrimSpace(*raw.HallName)
	}
	return in, nil
}

// SmallTalk handles messages without booking intent via a plain chat
// completion and strips any markdown the model produced anyway.
func (e *OpenAIExtractor) SmallTalk(ctx context.Context, message string) (string, error) {
	content, err := e.complete(ctx, 1, []chatMessage{
		{Role: "system", Content: chatPrompt},
		{Role: "user", Content: message},
	})
	if err != nil {
		return "", err
	}
	return stripMarkdown(content), nil
}

// stripMarkdown removes emphasis markers and list prefixes so the
// chat widget, which renders raw text, shows clean sentences.
func stripMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		trimmed = strings.TrimPrefix(trimmed, "- ")
		for j := 0; j < len(trimmed); j++ {
			if trimmed[j] >= '0' && trimmed[j] <= '9' {
				continue
			}
			if trimmed[j] == '.' && j > 0 && j+1 < len(trimmed) && trimmed[j+1] == ' ' {
				trimmed = trimmed[j+2:]
			}
			break
		}
		lines[i] = trimmed
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
