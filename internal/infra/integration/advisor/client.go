package advisor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dataPrefix = "data: "

// Client talks to an OpenAI-compatible chat completion endpoint in
// streaming mode.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		// Generous overall cap: streams are long-lived but must not hang forever.
		http: &http.Client{Timeout: 2 * time.Minute},
	}
}

// StreamCompletion sends the conversation and invokes onDelta once per
// content chunk, in arrival order. The response body is split into
// newline-delimited frames; a partial trailing line is carried between
// reads by the scanner. Returns nil on a clean close or a [DONE] sentinel;
// any transport or decode failure is returned as-is, with no retry.
func (c *Client) StreamCompletion(ctx context.Context, messages []ChatMessage, onDelta func(string) error) error {
	payload := chatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   true,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("completion api status %d: %s", resp.StatusCode, string(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, dataPrefix) {
			// Comments, keep-alives and blank separators between frames.
			continue
		}

		data := strings.TrimPrefix(line, dataPrefix)
		if data == "[DONE]" {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("malformed stream frame: %w", err)
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		if err := onDelta(delta); err != nil {
			return err
		}
	}

	return scanner.Err()
}
