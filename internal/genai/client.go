package genai

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

// GenerationError is returned for any upstream text-generation failure:
// transport errors, non-2xx responses, or responses with no usable content.
type GenerationError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("generation failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client

	schemaName string
	schema     map[string]interface{}
}

// NewClient creates a generation client. timeout bounds each request; callers
// treat a timeout like any other generation failure.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UseStructuredSchema pins structured generations to a named JSON schema in
// strict mode. Without a schema the client falls back to the provider's generic
// JSON object mode, which only guarantees well-formed JSON, not the shape.
func (c *Client) UseStructuredSchema(name string, schema map[string]interface{}) {
	c.schemaName = name
	c.schema = schema
}

// Generate sends a single-turn prompt and returns the trimmed completion text.
// When structured is true the model is constrained to JSON output and a lower
// temperature is used for consistency.
func (c *Client) Generate(ctx context.Context, prompt string, structured bool) (string, error) {
	temperature := 0.7
	if structured {
		temperature = 0.3
	}

	requestBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
		"stream":      false,
		"temperature": temperature,
	}
	if structured {
		if c.schema != nil {
			requestBody["response_format"] = map[string]interface{}{
				"type": "json_schema",
				"json_schema": map[string]interface{}{
					"name":   c.schemaName,
					"strict": true,
					"schema": c.schema,
				},
			}
		} else {
			requestBody["response_format"] = map[string]interface{}{
				"type": "json_object",
			}
		}
	}

	reqBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", &GenerationError{Message: "failed to marshal request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", &GenerationError{Message: "failed to create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &GenerationError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var apiResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", &GenerationError{StatusCode: resp.StatusCode, Message: "malformed API response", Err: err}
	}
	if len(apiResponse.Choices) == 0 {
		return "", &GenerationError{StatusCode: resp.StatusCode, Message: "no choices in response"}
	}

	return strings.TrimSpace(apiResponse.Choices[0].Message.Content), nil
}
