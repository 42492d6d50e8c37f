package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/remote"
	"github.com/secmon-lab/casebook/pkg/utils/safe"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.MessengerClient = &Client{}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(x *Client) {
		x.httpClient = httpClient
	}
}

func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type postMessageRequest struct {
	Body messageBody `json:"body"`
}

type messageBody struct {
	Content string `json:"content"`
}

// PostMessage sends one HTML message to a channel. No retry; a non-2xx
// response surfaces verbatim with status and body.
func (x *Client) PostMessage(ctx context.Context, credential, teamID, channelID, htmlBody string) (*remote.Message, error) {
	if x.baseURL == "" {
		return nil, goerr.New("messaging API base URL is not set", goerr.T(errs.TagConfiguration))
	}
	token := strings.TrimSpace(credential)
	if token == "" {
		return nil, goerr.New("messaging credential is empty", goerr.T(errs.TagConfiguration))
	}
	if len(token) <= 7 || !strings.EqualFold(token[:7], "Bearer ") {
		token = "Bearer " + token
	}

	url := fmt.Sprintf("%s/teams/%s/channels/%s/messages", x.baseURL, teamID, channelID)
	body, err := json.Marshal(postMessageRequest{Body: messageBody{Content: htmlBody}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal message request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create message request")
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "message request failed", goerr.V("url", url))
	}
	defer safe.Close(ctx, resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read message response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("message post failed", goerr.T(errs.TagRemoteRequest),
			goerr.V("status", resp.StatusCode), goerr.V("body", string(respBody)))
	}

	var msg remote.Message
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return nil, goerr.Wrap(err, "failed to decode message response", goerr.V("body", string(respBody)))
	}
	return &msg, nil
}
