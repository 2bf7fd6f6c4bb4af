package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/placement-portal/internal/api/http/handlers"
	"github.com/spec-kit/placement-portal/internal/llm"
	"github.com/spec-kit/placement-portal/internal/service"
)

type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) GenerateContent(_ context.Context, _ string) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Close() error { return nil }

func newAssistantApp(client llm.Client) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), 0)

	h := handlers.NewAssistantHandler(service.NewAssistantService(client, nil, 0, nil))
	app.Post("/assistant/chat", h.Chat)
	app.Post("/assistant/resume/analyze", h.AnalyzeResume)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

func TestAssistantChatEndpoint(t *testing.T) {
	app := newAssistantApp(&stubLLM{response: "Practice aptitude tests daily."})

	resp, body := postJSON(t, app, "/assistant/chat", map[string]string{"message": "How do I prepare?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Practice aptitude tests daily.", body["response"])
}

func TestAssistantChatRejectsMissingMessage(t *testing.T) {
	app := newAssistantApp(&stubLLM{})

	resp, body := postJSON(t, app, "/assistant/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestAssistantChatSurfacesGatewayFailure(t *testing.T) {
	app := newAssistantApp(&stubLLM{err: errors.New("quota exceeded")})

	resp, body := postJSON(t, app, "/assistant/chat", map[string]string{"message": "hello"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "UPSTREAM_GATEWAY_FAILURE", errBody["code"])
}

func TestAssistantResumeAnalyzeEndpoint(t *testing.T) {
	app := newAssistantApp(&stubLLM{response: "1. Add metrics\n2. Fix formatting\n3. Tailor keywords"})

	resp, body := postJSON(t, app, "/assistant/resume/analyze", map[string]string{
		"resumeText":     "experienced backend developer",
		"jobDescription": "golang role",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	improvements, ok := body["improvements"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Add metrics", "Fix formatting", "Tailor keywords"}, improvements)
}
