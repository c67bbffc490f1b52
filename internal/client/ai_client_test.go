package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string, maxRetries int) *AIClient {
	return NewAIClient(baseURL, "test-key", "test-model", 5*time.Second, maxRetries, zap.NewNop())
}

func imageResponse(data []byte, mimeType string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{{
			"content": map[string]interface{}{
				"parts": []map[string]interface{}{{
					"inlineData": map[string]string{
						"mimeType": mimeType,
						"data":     base64.StdEncoding.EncodeToString(data),
					},
				}},
			},
		}},
	})
	return body
}

func TestGenerateImage(t *testing.T) {
	pixels := []byte{0x89, 0x50, 0x4e, 0x47}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Equal(t, "a floor plan", req.Contents[0].Parts[0].Text)
		require.Equal(t, []string{"IMAGE"}, req.GenerationConfig.ResponseModalities)

		w.Write(imageResponse(pixels, "image/png"))
	}))
	defer server.Close()

	image, err := newTestClient(server.URL, 3).GenerateImage(context.Background(), "a floor plan")
	require.NoError(t, err)
	require.Equal(t, pixels, image.Data)
	require.Equal(t, "image/png", image.MimeType)
}

func TestGenerateImagePaymentRequiredNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"billing account required"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3).GenerateImage(context.Background(), "a floor plan")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, KindPaymentRequired, perr.Kind)
	require.Equal(t, "billing account required", perr.Message)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateImageServerErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal error"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3).GenerateImage(context.Background(), "a floor plan")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, KindProviderError, perr.Kind)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateImageRetriesRateLimit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
			return
		}
		w.Write(imageResponse([]byte("ok"), "image/jpeg"))
	}))
	defer server.Close()

	image, err := newTestClient(server.URL, 5).GenerateImage(context.Background(), "a floor plan")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", image.MimeType)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGenerateImageRateLimitExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 1).GenerateImage(context.Background(), "a floor plan")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, KindRateLimited, perr.Kind)
}

func TestGenerateImageNoImageInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"cannot generate"}]}}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3).GenerateImage(context.Background(), "a floor plan")
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, KindProviderError, perr.Kind)
	require.Contains(t, perr.Message, "no image generated")
}
