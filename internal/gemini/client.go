package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"taskman/internal/config"
)

const taskPrompt = "Generate a list of 5 concise, actionable tasks to learn about %s. Return only the tasks, no numbering or formatting."

type TaskGenerator interface {
	GenerateTasks(ctx context.Context, topic string) ([]GeneratedTask, error)
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	http  *resty.Client
	model string
	log   zerolog.Logger
}

var _ TaskGenerator = (*Client)(nil)

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.GeminiBaseURL).
		SetTimeout(cfg.GeminiTimeout).
		SetQueryParam("key", cfg.GeminiAPIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:  httpClient,
		model: cfg.GeminiModel,
		log:   log,
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r *generateContentResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// GenerateTasks asks the model for five task titles about the topic. Provider
// detail never leaves this method: callers only ever see ErrGenerationFailed
// or ErrNotEnoughTasks.
func (c *Client) GenerateTasks(ctx context.Context, topic string) ([]GeneratedTask, error) {
	body := generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: fmt.Sprintf(taskPrompt, topic)}}},
		},
	}

	var out generateContentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		c.log.Error().
			Err(err).
			Msg("gemini request failed")
		return nil, ErrGenerationFailed
	}
	if resp.IsError() {
		c.log.Error().
			Int("status", resp.StatusCode()).
			Msg("gemini returned an error response")
		return nil, ErrGenerationFailed
	}

	text := out.text()
	if text == "" {
		c.log.Error().Msg("gemini returned no text content")
		return nil, ErrGenerationFailed
	}

	return ParseTitles(text)
}
