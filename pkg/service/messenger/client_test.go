package messenger_test

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
	"github.com/secmon-lab/casebook/pkg/service/messenger"
)

func TestPostMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.Method, http.MethodPost)
		gt.Equal(t, r.URL.Path, "/teams/team-1/channels/channel-1/messages")
		gt.Equal(t, r.Header.Get("Authorization"), "Bearer token-1")

		var req struct {
			Body struct {
				Content string `json:"content"`
			} `json:"body"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gt.Equal(t, req.Body.Content, "<b>update</b>")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"message-42"}`)
	}))
	defer srv.Close()

	client := messenger.New(srv.URL)
	msg, err := client.PostMessage(context.Background(), "token-1", "team-1", "channel-1", "<b>update</b>")
	gt.NoError(t, err)
	gt.Equal(t, msg.ID, "message-42")
}

func TestPostMessageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "channel is archived", http.StatusForbidden)
	}))
	defer srv.Close()

	client := messenger.New(srv.URL)
	_, err := client.PostMessage(context.Background(), "token-1", "team-1", "channel-1", "<b>update</b>")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagRemoteRequest))
	gt.S(t, err.Error()).Contains("message post failed")
}

func TestPostMessageBlankCredential(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := messenger.New(srv.URL)
	_, err := client.PostMessage(context.Background(), "", "team-1", "channel-1", "x")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, errs.TagConfiguration))
	gt.Equal(t, requests, 0)
}
