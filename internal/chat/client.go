package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shivam041/riseapp/internal"
)

// Client wraps the third-party generateContent endpoint. The API key
// travels in a query parameter, matching the upstream contract.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     internal.Logger
}

func NewClient(endpoint, apiKey string, logger internal.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Command is the structured side-channel the model can embed in a reply.
// Only create_task is recognized.
type Command struct {
	Action string `json:"action"`
	Title  string `json:"title"`
}

// Reply is the parsed model response: either a command or plain text.
type Reply struct {
	Text    string
	Command *Command
}

func (c *Client) Send(ctx context.Context, prompt string) (*Reply, error) {
	endpoint := c.endpoint
	if c.apiKey != "" {
		u, err := url.Parse(c.endpoint)
		if err != nil {
			return nil, internal.ValidationError("invalid chat endpoint")
		}
		query := u.Query()
		query.Set("key", c.apiKey)
		u.RawQuery = query.Encode()
		endpoint = u.String()
	}

	body := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, internal.NetworkError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("chat: request failed: %v", err)
		return nil, internal.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("chat: endpoint returned %d", resp.StatusCode)
		return nil, internal.NewKindError(internal.KindNetwork, resp.StatusCode, "chat endpoint error")
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Errorf("chat: failed to decode response: %v", err)
		return nil, internal.NetworkError(err.Error())
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, internal.NotFoundError("chat response had no candidates")
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	return &Reply{Text: text, Command: ParseCommand(text)}, nil
}

// ParseCommand attempts a strict parse of the reply as a tagged command
// object. Any parse failure means the reply is a plain text answer.
func ParseCommand(text string) *Command {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}
	var cmd Command
	if err := json.Unmarshal([]byte(trimmed), &cmd); err != nil {
		return nil
	}
	if cmd.Action != "create_task" || cmd.Title == "" {
		return nil
	}
	return &cmd
}
