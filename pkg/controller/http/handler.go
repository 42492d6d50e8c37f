package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model/errs"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid request body", goerr.T(errs.TagValidation))
	}
	return nil
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errs.Handle(r.Context(), err)
	}
}

func incidentIDParam(r *http.Request) types.IncidentID {
	return types.IncidentID(chi.URLParam(r, "incidentID"))
}

type createIncidentRequest struct {
	Title           string         `json:"title"`
	AffectedService string         `json:"affected_service"`
	Description     string         `json:"description"`
	Severity        types.Severity `json:"severity"`
}

func (s *Server) createIncident(w http.ResponseWriter, r *http.Request) {
	var req createIncidentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	inc, err := s.uc.CreateIncident(r.Context(), req.Title, req.AffectedService, req.Description, req.Severity)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, inc)
}

func (s *Server) listIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := s.uc.ListIncidents(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, incidents)
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	inc, err := s.uc.GetIncident(r.Context(), incidentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if inc == nil {
		handleError(w, r, goerr.New("incident not found", goerr.T(errs.TagNotFound)))
		return
	}
	respondJSON(w, r, http.StatusOK, inc)
}

func (s *Server) deleteIncident(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.DeleteIncident(r.Context(), incidentIDParam(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status types.IncidentStatus `json:"status"`
}

func (s *Server) updateIncidentStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.uc.UpdateIncidentStatus(r.Context(), incidentIDParam(r), req.Status); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addWaveRequest struct {
	PeakRequestRate int64  `json:"peak_request_rate"`
	TopEndpoint     string `json:"top_endpoint"`
	Notes           string `json:"notes"`
}

func (s *Server) addWave(w http.ResponseWriter, r *http.Request) {
	var req addWaveRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	wave, err := s.uc.AddWave(r.Context(), incidentIDParam(r), req.PeakRequestRate, req.TopEndpoint, req.Notes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, wave)
}

func (s *Server) listWaves(w http.ResponseWriter, r *http.Request) {
	waves, err := s.uc.ListWaves(r.Context(), incidentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, waves)
}

type addMitigationRequest struct {
	Type          types.MitigationType   `json:"type"`
	Description   string                 `json:"description"`
	Status        types.MitigationStatus `json:"status"`
	Rationale     string                 `json:"rationale"`
	WaveID        types.WaveID           `json:"wave_id,omitempty"`
	ImplementedBy string                 `json:"implemented_by"`
}

func (s *Server) addMitigation(w http.ResponseWriter, r *http.Request) {
	var req addMitigationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	mitigation, err := s.uc.AddMitigation(r.Context(), incidentIDParam(r),
		req.Type, req.Description, req.Status, req.Rationale, req.WaveID, req.ImplementedBy)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, mitigation)
}

func (s *Server) listMitigations(w http.ResponseWriter, r *http.Request) {
	mitigations, err := s.uc.ListMitigations(r.Context(), incidentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, mitigations)
}

type addEvidenceRequest struct {
	Type        types.EvidenceType `json:"type"`
	LocalRef    string             `json:"local_ref"`
	CollectedBy string             `json:"collected_by"`
	WaveID      types.WaveID       `json:"wave_id,omitempty"`
	RemoteLink  string             `json:"remote_link,omitempty"`
	ContentHash string             `json:"content_hash,omitempty"`
}

func (s *Server) addManualEvidence(w http.ResponseWriter, r *http.Request) {
	var req addEvidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	evidence, err := s.uc.AddManualEvidence(r.Context(), incidentIDParam(r),
		req.Type, req.LocalRef, req.CollectedBy, req.WaveID, req.RemoteLink, req.ContentHash)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, evidence)
}

func (s *Server) listEvidence(w http.ResponseWriter, r *http.Request) {
	evidence, err := s.uc.ListEvidence(r.Context(), incidentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, evidence)
}

type uploadEvidenceRequest struct {
	Type        types.EvidenceType `json:"type"`
	SourcePath  string             `json:"source_path"`
	CollectedBy string             `json:"collected_by"`
}

func (s *Server) uploadEvidence(w http.ResponseWriter, r *http.Request) {
	var req uploadEvidenceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	evidence, err := s.uc.UploadEvidence(r.Context(), incidentIDParam(r), req.Type, req.SourcePath, req.CollectedBy)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, evidence)
}

func (s *Server) syncSnapshot(w http.ResponseWriter, r *http.Request) {
	remoteLink, err := s.uc.SyncSnapshot(r.Context(), incidentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"remote_link": remoteLink})
}

type statusUpdateRequest struct {
	Body string `json:"body"`
}

func (s *Server) postStatusUpdate(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	messageID, err := s.uc.PostStatusUpdate(r.Context(), incidentIDParam(r), req.Body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"message_id": messageID})
}

type alertRuleRequest struct {
	RuleName  string  `json:"rule_name"`
	Index     string  `json:"index"`
	Query     string  `json:"query"`
	Threshold float64 `json:"threshold"`
}

func (s *Server) provisionAlertRule(w http.ResponseWriter, r *http.Request) {
	var req alertRuleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	resp, err := s.uc.ProvisionAlertRule(r.Context(), incidentIDParam(r),
		req.RuleName, req.Index, req.Query, req.Threshold)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"response": resp})
}

func (s *Server) listAuditEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.uc.ListAuditEntries(r.Context(), incidentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entries)
}

func (s *Server) listCommunications(w http.ResponseWriter, r *http.Request) {
	comms, err := s.uc.ListCommunications(r.Context(), incidentIDParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, comms)
}
