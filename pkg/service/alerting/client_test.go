package alerting_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/service/alerting"
)

func TestCreateThresholdRule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.Method, http.MethodPost)
		gt.Equal(t, r.URL.Path, "/api/alerting/rule")
		gt.Equal(t, r.Header.Get("kbn-xsrf"), "true")
		gt.Equal(t, r.Header.Get("Authorization"), "ApiKey key-1")

		var req map[string]any
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gt.Equal(t, req["rule_type_id"].(string), "es-query")
		gt.Equal(t, req["consumer"].(string), "alerts")
		gt.Equal(t, req["enabled"].(bool), true)

		params := req["params"].(map[string]any)
		gt.Equal(t, params["aggType"].(string), "count")
		gt.Equal(t, params["thresholdComparator"].(string), ">")
		gt.Equal(t, params["timeWindowUnit"].(string), "m")
		gt.Equal(t, params["timeWindowSize"].(float64), float64(5))
		gt.S(t, params["esQuery"].(string)).Contains(`"gte":"now-5m"`)
		gt.S(t, params["esQuery"].(string)).Contains("status:429")

		fmt.Fprint(w, `{"id":"rule-7"}`)
	}))
	defer srv.Close()

	client := alerting.New()
	resp, err := client.CreateThresholdRule(context.Background(), srv.URL, "key-1",
		"wave-detector", "weblogs-*", "status:429", 10000, 0)
	gt.NoError(t, err)
	gt.Equal(t, resp, `{"id":"rule-7"}`)
}

func TestCreateThresholdRuleWindow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		params := req["params"].(map[string]any)
		gt.Equal(t, params["timeWindowSize"].(float64), float64(15))
		gt.S(t, params["esQuery"].(string)).Contains(`"gte":"now-15m"`)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := alerting.New()
	_, err := client.CreateThresholdRule(context.Background(), srv.URL, "key-1",
		"wave-detector", "weblogs-*", "status:429", 10000, 15)
	gt.NoError(t, err)
}

func TestCreateThresholdRuleAuthNormalization(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := alerting.New()
	ctx := context.Background()

	_, err := client.CreateThresholdRule(ctx, srv.URL, "ApiKey preset", "r", "i", "q", 1, 5)
	gt.NoError(t, err)
	gt.Equal(t, got, "ApiKey preset")

	_, err = client.CreateThresholdRule(ctx, srv.URL, "Bearer jwt", "r", "i", "q", 1, 5)
	gt.NoError(t, err)
	gt.Equal(t, got, "Bearer jwt")
}

func TestCreateThresholdRuleConfiguration(t *testing.T) {
	client := alerting.New()
	ctx := context.Background()

	_, err := client.CreateThresholdRule(ctx, "", "key", "r", "i", "q", 1, 5)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagConfiguration))

	_, err = client.CreateThresholdRule(ctx, "https://kibana.example.com", "", "r", "i", "q", 1, 5)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagConfiguration))
}

func TestCreateThresholdRuleFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing privileges", http.StatusForbidden)
	}))
	defer srv.Close()

	client := alerting.New()
	_, err := client.CreateThresholdRule(context.Background(), srv.URL, "key-1", "r", "i", "q", 1, 5)
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagRemoteRequest))
}
