package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/almare/zerocut/internal/analysis"
	"github.com/almare/zerocut/internal/export"
	"github.com/almare/zerocut/internal/geometry"
	"github.com/almare/zerocut/internal/model"
	"github.com/almare/zerocut/internal/store"
)

type server struct {
	cfg   model.PatternConfig
	store *store.Store
}

// patternRequest is the body of POST /api/v1/patterns.
type patternRequest struct {
	Measurements model.BodyMeasurements `json:"measurements"`
	BoltWidth    float64                `json:"bolt_width"`
	IncludeSVG   bool                   `json:"include_svg"`
	IncludeEncap bool                   `json:"include_encap"`
}

type patternResponse struct {
	Record analysis.Record `json:"record"`
	SVG    string          `json:"svg,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handlePattern(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req patternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Measurements.SubjectID == "" {
		req.Measurements.SubjectID = model.NewSubjectID()
	}
	if req.BoltWidth <= 0 {
		req.BoltWidth = 150.0
	}

	rec, err := analysis.AnalyzeSubject(req.Measurements, req.BoltWidth, s.cfg)
	if err != nil {
		var invalid *model.InvalidMeasurementError
		if errors.As(err, &invalid) {
			writeErr(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.Printf("analyze %s: %v", req.Measurements.SubjectID, err)
		writeErr(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	resp := patternResponse{Record: rec}
	if req.IncludeSVG {
		params := model.PatternParameters{
			SubjectID: rec.SubjectID,
			Width:     rec.PatternWidth,
			Height:    rec.PatternHeight,
		}
		opts := geometry.BuildOptions{
			IncludeEncap:      req.IncludeEncap,
			EncapWidth:        s.cfg.EncapWidth,
			IncludeSeamGuides: true,
		}
		pat, err := geometry.BuildPattern(params, rec.Template, opts)
		if err != nil {
			log.Printf("geometry %s: %v", rec.SubjectID, err)
			writeErr(w, http.StatusInternalServerError, "pattern geometry failed")
			return
		}
		resp.SVG = export.SVG(pat)
	}

	if _, err := s.store.SaveRecord(r.Context(), rec); err != nil {
		log.Printf("archive %s: %v", rec.SubjectID, err)
		writeErr(w, http.StatusInternalServerError, "failed to archive record")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleAnalysesList(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := s.store.ListRecords(r.Context(), limit)
	if err != nil {
		log.Printf("list analyses: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}

	writeJSON(w, http.StatusOK, analysis.BatchResult{Records: records})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}
