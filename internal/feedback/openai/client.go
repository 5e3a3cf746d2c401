// Package openai implements the feedback grader against the OpenAI
// chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/studylegend/backend/internal/feedback"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

const systemPrompt = `You are an educational evaluation assistant that assesses answers to questions.
Evaluate the user's answer for correctness and provide:
1. A score from 1-5 where 5 is perfect
2. Brief but specific feedback (1-2 sentences) on the answer quality
3. A helpful hint if the score is below 4/5
4. You should almost never give 5/5. There is always room for improvement whether it be clarity, detail, or accuracy.
5. Ensure the answer covers all aspects of the Expected Answer and deduct points where it doesn't.

Return ONLY a JSON object: {"score": <integer 1-5>, "feedback": "<string>", "hint": "<string or omitted when score >= 4>"}.
No text outside the JSON.`

// EvaluateAnswer implements the feedback.Client interface
func (client *Client) EvaluateAnswer(
	ctx context.Context,
	request feedback.Request,
) (feedback.Evaluation, error) {
	if strings.TrimSpace(request.UserAnswer) == "" {
		return feedback.Evaluation{
			Score:    1,
			Feedback: "No answer provided.",
			Hint:     "Provide an answer to evaluate.",
		}, nil
	}

	var result feedback.Evaluation
	if err := retry.Do(
		func() error {
			response, err := client.evaluateAnswer(ctx, request)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return feedback.Evaluation{}, err
	}
	return result, nil
}

func (client *Client) getRequestBody(request feedback.Request) ChatCompletionRequest {
	expected := "There is no provided expected answer, please evaluate based on general knowledge and reasonableness."
	if request.ExpectedAnswer != "" {
		expected = "Expected Answer: " + request.ExpectedAnswer
	}

	userMessage := fmt.Sprintf(`Question: %s

User's Answer: %s

%s

Evaluate this answer and return a JSON object with:
1. score (integer 1-5)
2. feedback (string, 1-2 sentences)
3. hint (string, only if score < 4)`, request.Question, request.UserAnswer, expected)

	return ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.3,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userMessage},
		},
	}
}

func (client *Client) evaluateAnswer(
	ctx context.Context,
	request feedback.Request,
) (feedback.Evaluation, error) {
	requestBody := client.getRequestBody(request)

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return feedback.Evaluation{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return feedback.Evaluation{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return feedback.Evaluation{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return feedback.Evaluation{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai evaluation content",
		"request", requestBody,
		"response", responseBody,
	)

	var decoded feedback.Evaluation
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		return feedback.Evaluation{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}

	// The model occasionally wanders outside the requested range.
	if decoded.Score < 1 {
		decoded.Score = 1
	}
	if decoded.Score > 5 {
		decoded.Score = 5
	}
	if decoded.Score >= 4 {
		decoded.Hint = ""
	}
	return decoded, nil
}
