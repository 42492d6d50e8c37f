package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/model/remote"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
	"github.com/secmon-lab/casebook/pkg/utils/safe"
)

const (
	// Payloads up to this size go through a single content PUT.
	simpleUploadLimit = 4 * 1024 * 1024

	// Chunk size for resumable sessions. The remote API requires upload
	// ranges to be multiples of 320 KiB.
	uploadChunkSize = 320 * 1024
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.DriveClient = &Client{}

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

type createFolderRequest struct {
	Name             string         `json:"name"`
	Folder           map[string]any `json:"folder"`
	ConflictBehavior string         `json:"conflictBehavior"`
}

type uploadSessionRequest struct {
	Item uploadSessionItem `json:"item"`
}

type uploadSessionItem struct {
	ConflictBehavior string `json:"conflictBehavior"`
}

type uploadSessionResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// FolderName returns the remote folder name for an incident.
func FolderName(incidentID types.IncidentID) string {
	return "Incident-" + incidentID.String()
}

func (x *Client) EnsureIncidentFolder(ctx context.Context, credential, containerID, basePath string, incidentID types.IncidentID) (*remote.Item, error) {
	auth, err := x.authorize(credential)
	if err != nil {
		return nil, err
	}

	folderName := FolderName(incidentID)
	parentPath := strings.Trim(strings.TrimSpace(basePath), "/")
	url := fmt.Sprintf("%s/drives/%s/root:/%s:/children", x.baseURL, containerID, parentPath)

	body, err := json.Marshal(createFolderRequest{
		Name:             folderName,
		Folder:           map[string]any{},
		ConflictBehavior: "fail",
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal folder request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create folder request")
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "folder creation request failed", goerr.V("url", url))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode == http.StatusConflict {
		// Folder already exists; treat as success.
		logging.From(ctx).Debug("incident folder already exists", "folder", folderName)
		return &remote.Item{Name: folderName}, nil
	}

	return decodeItem(resp, "folder creation")
}

func (x *Client) UploadBytes(ctx context.Context, credential, containerID, itemPath string, data []byte, contentType string) (*remote.Item, error) {
	auth, err := x.authorize(credential)
	if err != nil {
		return nil, err
	}

	cleanPath := strings.TrimLeft(strings.TrimSpace(itemPath), "/")
	if len(data) <= simpleUploadLimit {
		return x.uploadSmall(ctx, auth, containerID, cleanPath, data, contentType)
	}
	return x.uploadWithSession(ctx, auth, containerID, cleanPath, data, contentType)
}

func (x *Client) uploadSmall(ctx context.Context, auth, containerID, itemPath string, data []byte, contentType string) (*remote.Item, error) {
	url := fmt.Sprintf("%s/drives/%s/root:/%s:/content", x.baseURL, containerID, itemPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upload request")
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", contentType)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "upload request failed", goerr.V("path", itemPath))
	}
	defer safe.Close(ctx, resp.Body)

	return decodeItem(resp, "upload")
}

func (x *Client) uploadWithSession(ctx context.Context, auth, containerID, itemPath string, data []byte, contentType string) (*remote.Item, error) {
	session, err := x.createSession(ctx, auth, containerID, itemPath)
	if err != nil {
		return nil, err
	}

	total := int64(len(data))
	logging.From(ctx).Debug("starting chunked upload",
		"path", itemPath,
		"size", humanize.Bytes(uint64(total)),
		"chunks", (total+uploadChunkSize-1)/uploadChunkSize,
	)

	// Chunks are strictly sequential: the remote session requires
	// monotonically increasing byte ranges.
	for start := int64(0); start < total; {
		end := start + uploadChunkSize
		if end > total {
			end = total
		}

		item, err := x.putChunk(ctx, session.UploadURL, contentType, data[start:end], start, end-1, total)
		if err != nil {
			return nil, err
		}
		if item != nil {
			return item, nil
		}

		start = end
	}

	return nil, goerr.New("upload session finished without returning an item descriptor",
		goerr.T(errs.TagIncompleteUpload), goerr.V("path", itemPath), goerr.V("total", total))
}

func (x *Client) createSession(ctx context.Context, auth, containerID, itemPath string) (*uploadSessionResponse, error) {
	url := fmt.Sprintf("%s/drives/%s/root:/%s:/createUploadSession", x.baseURL, containerID, itemPath)

	body, err := json.Marshal(uploadSessionRequest{Item: uploadSessionItem{ConflictBehavior: "fail"}})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal session request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session request")
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "upload session request failed", goerr.V("path", itemPath))
	}
	defer safe.Close(ctx, resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read session response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("upload session creation failed", goerr.T(errs.TagRemoteRequest),
			goerr.V("status", resp.StatusCode), goerr.V("body", string(respBody)))
	}

	var session uploadSessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, goerr.Wrap(err, "failed to decode session response", goerr.V("body", string(respBody)))
	}
	if session.UploadURL == "" {
		return nil, goerr.New("upload session response has no uploadUrl", goerr.T(errs.TagRemoteRequest),
			goerr.V("body", string(respBody)))
	}
	return &session, nil
}

// putChunk sends one byte range. It returns a non-nil item when the remote
// API acknowledges the completed file, usually on the final chunk.
func (x *Client) putChunk(ctx context.Context, uploadURL, contentType string, chunk []byte, start, end, total int64) (*remote.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(chunk))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create chunk request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, total))
	req.ContentLength = int64(len(chunk))

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "chunk upload failed",
			goerr.V("range", fmt.Sprintf("%d-%d/%d", start, end, total)))
	}
	defer safe.Close(ctx, resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read chunk response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("chunk upload rejected", goerr.T(errs.TagRemoteRequest),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
			goerr.V("range", fmt.Sprintf("%d-%d/%d", start, end, total)))
	}

	var item remote.Item
	if err := json.Unmarshal(respBody, &item); err == nil && item.ID != "" {
		return &item, nil
	}
	return nil, nil
}

func (x *Client) authorize(credential string) (string, error) {
	if x.baseURL == "" {
		return "", goerr.New("drive API base URL is not set", goerr.T(errs.TagConfiguration))
	}
	token := strings.TrimSpace(credential)
	if token == "" {
		return "", goerr.New("drive credential is empty", goerr.T(errs.TagConfiguration))
	}
	if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
		return token, nil
	}
	return "Bearer " + token, nil
}

func decodeItem(resp *http.Response, operation string) (*remote.Item, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response of "+operation)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New(operation+" failed", goerr.T(errs.TagRemoteRequest),
			goerr.V("status", resp.StatusCode), goerr.V("body", string(respBody)))
	}

	var item remote.Item
	if err := json.Unmarshal(respBody, &item); err != nil {
		return nil, goerr.Wrap(err, "failed to decode response of "+operation,
			goerr.V("body", string(respBody)))
	}
	return &item, nil
}
