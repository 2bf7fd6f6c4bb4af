package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubLLM) Close() error { return nil }

func TestParseImprovements(t *testing.T) {
	text := "1. Add metrics\n2. Fix formatting\n3. Tailor keywords"
	improvements := ParseImprovements(text)
	assert.Equal(t, []string{"Add metrics", "Fix formatting", "Tailor keywords"}, improvements)
}

func TestParseImprovementsCapsAtThree(t *testing.T) {
	text := "1. One\n2. Two\n3. Three\n4. Four\n5. Five"
	improvements := ParseImprovements(text)
	assert.Equal(t, []string{"One", "Two", "Three"}, improvements)
}

func TestParseImprovementsDropsEmptySegments(t *testing.T) {
	text := "Here are your improvements:\n1. \n2. Quantify achievements\n3. Use action verbs"
	improvements := ParseImprovements(text)
	assert.Equal(t, []string{"Here are your improvements:", "Quantify achievements", "Use action verbs"}, improvements)
}

func TestChatRequiresMessage(t *testing.T) {
	svc := NewAssistantService(&stubLLM{}, nil, 0, nil)

	_, err := svc.Chat(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestChatForwardsToGateway(t *testing.T) {
	stub := &stubLLM{response: "Prepare with mock interviews."}
	svc := NewAssistantService(stub, nil, 0, nil)

	response, err := svc.Chat(context.Background(), "How do I prepare for placements?")
	require.NoError(t, err)
	assert.Equal(t, "Prepare with mock interviews.", response)

	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "How do I prepare for placements?")
	assert.Contains(t, stub.prompts[0], "CareerBot")
}

func TestChatWrapsGatewayError(t *testing.T) {
	stub := &stubLLM{err: errors.New("quota exceeded")}
	svc := NewAssistantService(stub, nil, 0, nil)

	_, err := svc.Chat(context.Background(), "hello")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UPSTREAM_GATEWAY_FAILURE", domainErr.Code)
	assert.Contains(t, domainErr.Details["details"], "quota exceeded")
}

func TestChatWithoutConfiguredGateway(t *testing.T) {
	svc := NewAssistantService(nil, nil, 0, nil)

	_, err := svc.Chat(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_GATEWAY_FAILURE", apperrors.ToDomainError(err).Code)
}

func TestAnalyzeResumeRequiresText(t *testing.T) {
	svc := NewAssistantService(&stubLLM{}, nil, 0, nil)

	_, err := svc.AnalyzeResume(context.Background(), "", "any job")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAnalyzeResumeParsesImprovements(t *testing.T) {
	stub := &stubLLM{response: "1. Add metrics\n2. Fix formatting\n3. Tailor keywords"}
	svc := NewAssistantService(stub, nil, 0, nil)

	improvements, err := svc.AnalyzeResume(context.Background(), "resume body", "backend role")
	require.NoError(t, err)
	assert.Equal(t, []string{"Add metrics", "Fix formatting", "Tailor keywords"}, improvements)

	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "resume body")
	assert.Contains(t, stub.prompts[0], "backend role")
}

func TestAnalyzeResumeOmitsJobDescriptionWhenAbsent(t *testing.T) {
	stub := &stubLLM{response: "1. A\n2. B\n3. C"}
	svc := NewAssistantService(stub, nil, 0, nil)

	_, err := svc.AnalyzeResume(context.Background(), "resume body", "")
	require.NoError(t, err)

	require.Len(t, stub.prompts, 1)
	assert.NotContains(t, stub.prompts[0], "Job Description:")
}
