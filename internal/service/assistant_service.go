package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/placement-portal/internal/llm"
	"github.com/spec-kit/placement-portal/internal/observability"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

const maxImprovements = 3

// AssistantService proxies user text to the LLM gateway and reshapes the
// responses for the chat and resume-analysis endpoints.
type AssistantService struct {
	client   llm.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAssistantService constructs the service. client may be nil when the
// gateway is unconfigured; calls then fail as upstream errors. cache may be
// nil to disable chat caching.
func NewAssistantService(client llm.Client, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantService{client: client, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Chat answers a career question.
func (s *AssistantService) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.NewValidationError("message is required", nil)
	}

	cacheKey := "assistant:chat:" + hashKey(message)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		observability.AssistantRequests.WithLabelValues("chat", "cache_hit").Inc()
		return cached, nil
	}

	response, err := s.generate(ctx, chatPrompt(message))
	if err != nil {
		observability.AssistantRequests.WithLabelValues("chat", "error").Inc()
		return "", err
	}
	observability.AssistantRequests.WithLabelValues("chat", "ok").Inc()

	s.cacheSet(ctx, cacheKey, response)
	return response, nil
}

// AnalyzeResume returns up to three actionable resume improvements.
func (s *AssistantService) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) ([]string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, apperrors.NewValidationError("resume text is required", nil)
	}

	text, err := s.generate(ctx, resumePrompt(resumeText, jobDescription))
	if err != nil {
		observability.AssistantRequests.WithLabelValues("resume_analyze", "error").Inc()
		return nil, err
	}
	observability.AssistantRequests.WithLabelValues("resume_analyze", "ok").Inc()

	return ParseImprovements(text), nil
}

func (s *AssistantService) generate(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", apperrors.NewUpstreamGatewayFailure(fmt.Errorf("assistant gateway not configured"))
	}
	response, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error("assistant gateway call failed", zap.Error(err))
		return "", apperrors.NewUpstreamGatewayFailure(err)
	}
	return response, nil
}

var improvementPattern = regexp.MustCompile(`\d+\.`)

// ParseImprovements splits the gateway's free text on its numbered-list
// markers, trims each item and keeps at most three.
func ParseImprovements(text string) []string {
	parts := improvementPattern.Split(text, -1)
	improvements := make([]string, 0, maxImprovements)
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		improvements = append(improvements, item)
		if len(improvements) == maxImprovements {
			break
		}
	}
	return improvements
}

func chatPrompt(message string) string {
	return fmt.Sprintf(`You are CareerBot, a helpful AI career assistant for college students.
Answer questions about internships, placements, interviews, and career advice in a friendly and professional manner.
Keep responses concise and actionable. If asked about specific dates or events, mention that you don't have access to real-time data.

User question: %s

Provide a helpful response:`, message)
}

func resumePrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString("You are a professional resume reviewer. Analyze the following resume and provide exactly 3 specific, actionable improvements.\n\n")
	if jobDescription != "" {
		fmt.Fprintf(&b, "Job Description:\n%s\n\n", jobDescription)
	}
	fmt.Fprintf(&b, "Resume Text:\n%s\n\n", resumeText)
	b.WriteString(`Provide exactly 3 improvements in this format:
1. [Improvement 1]
2. [Improvement 2]
3. [Improvement 3]

Be specific and actionable. Focus on content, keywords, and alignment with the job description if provided.`)
	return b.String()
}

func hashKey(message string) string {
	sum := sha256.Sum256([]byte(message))
	return hex.EncodeToString(sum[:])
}

func (s *AssistantService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("assistant cache read failed", zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (s *AssistantService) cacheSet(ctx context.Context, key, value string) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("assistant cache write failed", zap.Error(err))
	}
}
