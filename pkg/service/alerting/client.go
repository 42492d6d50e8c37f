package alerting

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
	"github.com/secmon-lab/casebook/pkg/utils/safe"
)

const defaultWindowMinutes = 5

type Client struct {
	httpClient *http.Client
}

var _ interfaces.AlertClient = &Client{}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(x *Client) {
		x.httpClient = httpClient
	}
}

func New(opts ...Option) *Client {
	client := &Client{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// CreateThresholdRule submits an es-query threshold rule: count aggregation
// over a rolling window, firing when the count exceeds the threshold. The
// raw response body is returned opaquely; rule schemas vary per deployment
// and are not modeled further.
func (x *Client) CreateThresholdRule(ctx context.Context, endpoint, apiKey, ruleName, index, query string, threshold float64, windowMinutes int) (string, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return "", goerr.New("alert endpoint is empty", goerr.T(errs.TagConfiguration))
	}
	if strings.TrimSpace(apiKey) == "" {
		return "", goerr.New("alert API key is empty", goerr.T(errs.TagConfiguration))
	}
	if windowMinutes <= 0 {
		windowMinutes = defaultWindowMinutes
	}

	esQuery := fmt.Sprintf(
		`{"query":{"bool":{"filter":[{"range":{"@timestamp":{"gte":"now-%dm"}}},{"query_string":{"query":%q}}]}}}`,
		windowMinutes, query)

	body, err := json.Marshal(map[string]any{
		"name":         ruleName,
		"tags":         []string{"ddos", "casebook"},
		"rule_type_id": "es-query",
		"consumer":     "alerts",
		"schedule":     map[string]string{"interval": "1m"},
		"enabled":      true,
		"params": map[string]any{
			"index":               []string{index},
			"timeField":           "@timestamp",
			"esQuery":             esQuery,
			"size":                0,
			"threshold":           []float64{threshold},
			"thresholdComparator": ">",
			"timeWindowSize":      windowMinutes,
			"timeWindowUnit":      "m",
			"aggType":             "count",
			"groupBy":             "all",
		},
		"actions": []any{},
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal rule request")
	}

	url := endpoint + "/api/alerting/rule"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create rule request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("kbn-xsrf", "true")
	req.Header.Set("Authorization", normalizeAuth(apiKey))

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "rule creation request failed", goerr.V("url", url))
	}
	defer safe.Close(ctx, resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read rule response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", goerr.New("rule creation failed", goerr.T(errs.TagRemoteRequest),
			goerr.V("status", resp.StatusCode), goerr.V("body", string(respBody)))
	}
	return string(respBody), nil
}

func normalizeAuth(apiKey string) string {
	key := strings.TrimSpace(apiKey)
	switch {
	case len(key) > 7 && strings.EqualFold(key[:7], "ApiKey "):
		return key
	case len(key) > 7 && strings.EqualFold(key[:7], "Bearer "):
		return key
	default:
		return "ApiKey " + key
	}
}
