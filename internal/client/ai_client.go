package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Provider error kinds, classified from the HTTP status code.
type ErrorKind int

const (
	// KindProviderError covers any provider failure that is neither a
	// rate limit nor a billing problem.
	KindProviderError ErrorKind = iota
	// KindRateLimited means the provider returned 429.
	KindRateLimited
	// KindPaymentRequired means the provider returned 402.
	KindPaymentRequired
)

// ProviderError is a structured failure from the image generation provider
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}

// classifyStatus maps an HTTP status to an error kind
func classifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusPaymentRequired:
		return KindPaymentRequired
	default:
		return KindProviderError
	}
}

// GeneratedImage is the decoded output of an image generation call.
type GeneratedImage struct {
	Data     []byte
	MimeType string
}

// AIClient handles calls to the image generation provider
type AIClient struct {
	baseURL    string
	apiKey     string
	model      string
	maxRetries int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAIClient creates a new AI client
func NewAIClient(baseURL, apiKey, model string, timeout time.Duration, maxRetries int, logger *zap.Logger) *AIClient {
	return &AIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateImage sends a prompt to the provider and returns the generated
// image. Rate-limited calls are retried with exponential backoff; other
// provider errors fail immediately.
func (c *AIClient) GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error) {
	var image *GeneratedImage

	operation := func() error {
		result, err := c.generateOnce(ctx, prompt)
		if err != nil {
			var perr *ProviderError
			if errors.As(err, &perr) && perr.Kind == KindRateLimited {
				c.logger.Warn("provider rate limited, retrying", zap.Int("status", perr.StatusCode))
				return err
			}
			return backoff.Permanent(err)
		}
		image = result
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return image, nil
}

func (c *AIClient) generateOnce(ctx context.Context, prompt string) (*GeneratedImage, error) {
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
		GenerationConfig: generationConfig{
			Temperature:        0.4,
			ResponseModalities: []string{"IMAGE"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(body)
		var parsed generateResponse
		if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
			message = parsed.Error.Message
		}
		return nil, &ProviderError{
			Kind:       classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("failed to decode image data: %w", err)
				}
				mimeType := p.InlineData.MimeType
				if mimeType == "" {
					mimeType = "image/png"
				}
				return &GeneratedImage{Data: data, MimeType: mimeType}, nil
			}
		}
	}

	return nil, &ProviderError{
		Kind:       KindProviderError,
		StatusCode: resp.StatusCode,
		Message:    "no image generated in response",
	}
}

type generationConfig struct {
	Temperature        float64  `json:"temperature"`
	ResponseModalities []string `json:"responseModalities"`
}
