// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/pomali/autogram/pkg/badge"
	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
	"github.com/pomali/autogram/pkg/hashing"
	"github.com/pomali/autogram/pkg/logging"
	"github.com/pomali/autogram/pkg/report"
	"github.com/pomali/autogram/pkg/surface"
	"github.com/pomali/autogram/pkg/visualization"
)

// VisualizationRequest is the body of the visualization endpoints.
type VisualizationRequest struct {
	Filename                 string `json:"filename"`
	ContentType              string `json:"contentType,omitempty"`
	Content                  []byte `json:"content"`
	Transformation           string `json:"transformation,omitempty"`
	TransformationOutputType string `json:"transformationOutputType,omitempty"`
	Schema                   string `json:"schema,omitempty"`
	// ResolveNative asks for a cached copy when the outcome needs an
	// external viewer.
	ResolveNative bool `json:"resolveNative,omitempty"`
}

// Fingerprint identifies the exact bytes that were rendered.
type Fingerprint struct {
	Algorithm string `json:"algorithm"`
	Value     string `json:"value"`
}

// VisualizationResponse is returned by POST /api/v1/visualization.
type VisualizationResponse struct {
	DocumentID  string                `json:"documentId"`
	Fingerprint Fingerprint           `json:"fingerprint"`
	Outcome     visualization.Outcome `json:"outcome"`
	NativePath  string                `json:"nativePath,omitempty"`
}

// BadgesResponse is returned by POST /api/v1/badges.
type BadgesResponse struct {
	Document string          `json:"document,omitempty"`
	Badges   []badge.Display `json:"badges"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Type    string `json:"type"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type errorResponse struct {
	Error ErrorBody `json:"error"`
}

type requestError struct {
	status int
	msg    string
	cause  error
}

func (e *requestError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *requestError) Unwrap() error { return e.cause }

func badRequest(msg string, cause error) error {
	return &requestError{status: http.StatusBadRequest, msg: msg, cause: cause}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	doc, params, req, err := s.decodeVisualization(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := s.render(r.Context(), doc, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	fp, err := hashing.Fingerprint(doc, s.hashAlg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := VisualizationResponse{
		DocumentID:  doc.ID().String(),
		Fingerprint: Fingerprint{Algorithm: fp.Algorithm(), Value: fp.Hex()},
		Outcome:     out,
	}

	if req.ResolveNative && out.NeedsNativeViewer() {
		path, err := s.session.ResolveNativeFallback(r.Context(), doc)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.NativePath = path
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVisualizationHTML(w http.ResponseWriter, r *http.Request) {
	doc, params, _, err := s.decodeVisualization(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.render(r.Context(), doc, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	page := surface.NewHTMLSurface(&buf, s.title+" - "+doc.Filename())
	if err := surface.Present(r.Context(), page, out); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, badRequest("failed to read request body", err))
		return
	}
	rep, err := report.Parse(data, "request")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	displays := make([]badge.Display, 0, len(rep.Signatures))
	for _, rec := range rep.Signatures {
		displays = append(displays, s.session.ComposeBadges(r.Context(), rec))
	}
	s.metrics.observeBadges(displays)
	writeJSON(w, http.StatusOK, BadgesResponse{Document: rep.Document, Badges: displays})
}

func (s *Server) decodeVisualization(w http.ResponseWriter, r *http.Request) (*document.Document, document.Parameters, VisualizationRequest, error) {
	var req VisualizationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, document.Parameters{}, req, badRequest("invalid request body", err)
	}
	if strings.TrimSpace(req.Filename) == "" {
		return nil, document.Parameters{}, req, badRequest("filename is required", nil)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = document.DetectContentType(req.Filename, req.Content)
	}
	doc := document.New(req.Filename, contentType, req.Content)
	params := document.Parameters{
		Transformation:           req.Transformation,
		TransformationOutputType: req.TransformationOutputType,
		Schema:                   req.Schema,
	}
	return doc, params, req, nil
}

func (s *Server) render(ctx context.Context, doc *document.Document, params document.Parameters) (visualization.Outcome, error) {
	out, err := s.session.ClassifyAndRender(ctx, doc, params)
	if err != nil {
		var e *errtypes.Error
		if errtypes.As(err, &e) {
			s.metrics.Failures.WithLabelValues(e.Type.String()).Inc()
		}
		return out, err
	}
	s.metrics.observeOutcome(out)
	return out, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorFor(err)
	log := s.logger.WithField(logging.FieldRequestID, middleware.GetReqID(r.Context()))
	if status >= http.StatusInternalServerError {
		log.Error("Request failed: %v", err)
	} else {
		log.Debug("Request rejected: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: body})
}

func errorFor(err error) (int, ErrorBody) {
	var e *errtypes.Error
	if errtypes.As(err, &e) {
		body := ErrorBody{
			Type:    e.Type.String(),
			Stage:   e.Stage,
			Message: e.UserMessage(),
			Detail:  e.Error(),
		}
		switch e.Type {
		case errtypes.ErrTypeInvalidReport:
			return http.StatusBadRequest, body
		case errtypes.ErrTypeCacheWrite:
			return http.StatusInternalServerError, body
		default:
			return http.StatusUnprocessableEntity, body
		}
	}

	var re *requestError
	if errors.As(err, &re) {
		return re.status, ErrorBody{Type: "BadRequest", Message: re.Error()}
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, ErrorBody{Type: "BadRequest", Message: err.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, ErrorBody{Type: "Timeout", Message: "request timed out"}
	}
	return http.StatusInternalServerError, ErrorBody{Type: "Internal", Message: "internal error", Detail: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already written; an encoding failure cannot be
	// reported to the client.
	_ = json.NewEncoder(w).Encode(v)
}
