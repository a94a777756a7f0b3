// Package gemini клиент Google Generative Language API для чат-бота.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/apperr"
	"github.com/magabrotheeeer/careconnect/internal/models"
)

// Options параметры клиента.
type Options struct {
	APIURL      string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client отправляет запросы generateContent.
type Client struct {
	apiURL      string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewClient создаёт новый клиент модели.
func NewClient(opts Options) *Client {
	return &Client{
		apiURL:      strings.TrimRight(opts.APIURL, "/"),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		httpClient:  &http.Client{Timeout: opts.Timeout},
	}
}

// Model имя модели, которой отправляются запросы.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func buildRequest(p models.Prompt, maxTokens int, temperature float64) generateRequest {
	req := generateRequest{
		GenerationConfig: generationConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     temperature,
		},
	}
	if p.System != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: p.System}}}
	}
	for _, m := range p.History {
		role := "user"
		if m.Role == models.ChatRoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	req.Contents = append(req.Contents, content{Role: "user", Parts: []part{{Text: p.Message}}})
	return req
}

// Complete отправляет промпт модели и возвращает ее ответ.
//
// Истечение ctx или таймаута клиента дает apperr.ErrGatewayTimeout, любой
// другой сбой (сеть, статус, пустой ответ) дает apperr.ErrGatewayError.
func (c *Client) Complete(ctx context.Context, p models.Prompt) (*models.Completion, error) {
	const op = "gemini.Complete"

	req, err := c.newRequest(ctx, http.MethodPost, "/models/"+c.model+":generateContent",
		buildRequest(p, c.maxTokens, c.temperature))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperr.ErrGatewayError, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%s: %w: %v", op, apperr.ErrGatewayTimeout, err)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, apperr.ErrGatewayError, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&apiErr)
		return nil, fmt.Errorf("%s: %w: unexpected status %s %s", op, apperr.ErrGatewayError, resp.Status, apiErr.Error.Message)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%s: %w: %v", op, apperr.ErrGatewayTimeout, err)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, apperr.ErrGatewayError, err)
	}

	text := extractText(out)
	if text == "" {
		return nil, fmt.Errorf("%s: %w: empty completion", op, apperr.ErrGatewayError)
	}

	model := out.ModelVersion
	if model == "" {
		model = c.model
	}
	return &models.Completion{
		Text:       text,
		TokensUsed: out.UsageMetadata.TotalTokenCount,
		Model:      model,
	}, nil
}

func extractText(r generateResponse) string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
