package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/casebook/pkg/controller/http"
	"github.com/secmon-lab/casebook/pkg/domain/model/incident"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/repository/memory"
	"github.com/secmon-lab/casebook/pkg/service/alerting"
	"github.com/secmon-lab/casebook/pkg/service/drive"
	"github.com/secmon-lab/casebook/pkg/service/messenger"
	"github.com/secmon-lab/casebook/pkg/service/settings"
	"github.com/secmon-lab/casebook/pkg/usecase"
)

func newTestServer(s settings.Settings) *server.Server {
	uc := usecase.New(
		usecase.WithRepository(memory.New()),
		usecase.WithDriveClient(drive.NewMock()),
		usecase.WithMessengerClient(messenger.NewMock()),
		usecase.WithAlertClient(alerting.NewMock()),
		usecase.WithSettings(settings.NewProvider(s)),
	)
	return server.New(uc)
}

func postJSON(t *testing.T, srv *server.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func createIncident(t *testing.T, srv *server.Server) incident.Incident {
	t.Helper()
	rec := postJSON(t, srv, "/api/incidents", map[string]any{
		"title":            "Volumetric attack",
		"affected_service": "Public API",
		"description":      "flood",
		"severity":         "HIGH",
	})
	gt.Equal(t, rec.Code, http.StatusCreated)

	var inc incident.Incident
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inc))
	return inc
}

func TestCreateAndGetIncident(t *testing.T) {
	srv := newTestServer(settings.Settings{})
	inc := createIncident(t, srv)
	gt.Equal(t, inc.Status, types.IncidentStatusDetected)

	req := httptest.NewRequest(http.MethodGet, "/api/incidents/"+inc.ID.String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusOK)

	var got incident.Incident
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	gt.Equal(t, got.ID, inc.ID)
	gt.Equal(t, got.Title, "Volumetric attack")
}

func TestGetIncidentNotFound(t *testing.T) {
	srv := newTestServer(settings.Settings{})

	req := httptest.NewRequest(http.MethodGet, "/api/incidents/"+types.NewIncidentID().String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestCreateIncidentInvalidBody(t *testing.T) {
	srv := newTestServer(settings.Settings{})

	req := httptest.NewRequest(http.MethodPost, "/api/incidents", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestUpdateStatus(t *testing.T) {
	srv := newTestServer(settings.Settings{})
	inc := createIncident(t, srv)

	data, err := json.Marshal(map[string]string{"status": "CLOSED"})
	gt.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/incidents/"+inc.ID.String()+"/status", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusNoContent)

	req = httptest.NewRequest(http.MethodGet, "/api/incidents/"+inc.ID.String(), nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var got incident.Incident
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	gt.Equal(t, got.Status, types.IncidentStatusClosed)
	gt.NotNil(t, got.EndTime)
}

func TestWaveAndAuditRoutes(t *testing.T) {
	srv := newTestServer(settings.Settings{})
	inc := createIncident(t, srv)

	rec := postJSON(t, srv, fmt.Sprintf("/api/incidents/%s/waves", inc.ID), map[string]any{
		"peak_request_rate": 50000,
		"top_endpoint":      "/login",
	})
	gt.Equal(t, rec.Code, http.StatusCreated)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/incidents/%s/waves", inc.ID), nil)
	getRec := httptest.NewRecorder()
	srv.ServeHTTP(getRec, req)
	gt.Equal(t, getRec.Code, http.StatusOK)

	var waves []*incident.AttackWave
	gt.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &waves))
	gt.Array(t, waves).Length(1)
	gt.Equal(t, waves[0].PeakRequestRate, int64(50000))

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/incidents/%s/audit", inc.ID), nil)
	auditRec := httptest.NewRecorder()
	srv.ServeHTTP(auditRec, req)
	gt.Equal(t, auditRec.Code, http.StatusOK)

	var entries []*incident.AuditEntry
	gt.NoError(t, json.Unmarshal(auditRec.Body.Bytes(), &entries))
	gt.Array(t, entries).Length(2)
}

func TestWaveUnknownIncident(t *testing.T) {
	srv := newTestServer(settings.Settings{})

	rec := postJSON(t, srv, fmt.Sprintf("/api/incidents/%s/waves", types.NewIncidentID()), map[string]any{
		"peak_request_rate": 100,
	})
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestUploadEvidenceUnconfigured(t *testing.T) {
	srv := newTestServer(settings.Settings{})
	inc := createIncident(t, srv)

	rec := postJSON(t, srv, fmt.Sprintf("/api/incidents/%s/evidence/upload", inc.ID), map[string]any{
		"type":         "IP_LIST",
		"source_path":  "/no/such/file",
		"collected_by": "noc",
	})
	gt.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestStatusUpdateRoute(t *testing.T) {
	srv := newTestServer(settings.Settings{
		Credential: "token-1", TeamID: "team-1", ChannelID: "channel-1",
	})
	inc := createIncident(t, srv)

	rec := postJSON(t, srv, fmt.Sprintf("/api/incidents/%s/status-update", inc.ID), map[string]string{
		"body": "<b>update</b>",
	})
	gt.Equal(t, rec.Code, http.StatusOK)

	var resp map[string]string
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	gt.Equal(t, resp["message_id"], "message-1")
}

func TestDeleteIncidentRoute(t *testing.T) {
	srv := newTestServer(settings.Settings{})
	inc := createIncident(t, srv)

	req := httptest.NewRequest(http.MethodDelete, "/api/incidents/"+inc.ID.String(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusNoContent)

	req = httptest.NewRequest(http.MethodGet, "/api/incidents/"+inc.ID.String(), nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusNotFound)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(settings.Settings{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Equal(t, rec.Code, http.StatusOK)
}
