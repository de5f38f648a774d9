package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/alexiusacademia/gowall/internal/report"
	"github.com/alexiusacademia/gowall/internal/wall"
)

// maxBody caps request bodies; a wall request is a few dozen bytes.
const maxBody = 1 << 16

// CalcRequest is the body of the wall endpoints. Dimensions are in meters.
type CalcRequest struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

// CalcResponse is returned for a valid design.
type CalcResponse struct {
	Wall      report.WallSummary `json:"wall"`
	Materials *wall.MaterialList `json:"materials"`
}

// ErrorResponse carries a message and, for design failures, the error kind.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Handler serves the wall calculation API.
type Handler struct {
	Logger *zap.Logger
}

// Calc validates a wall and returns its material list.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	s, ml, ok := h.design(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, CalcResponse{
		Wall:      report.Summarize(s),
		Materials: ml,
	})
}

// Report returns the materials list as text, or as a PDF when the client
// accepts application/pdf.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	s, ml, ok := h.design(w, r)
	if !ok {
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/pdf") {
		var buf bytes.Buffer
		if err := report.WritePDF(&buf, s, ml); err != nil {
			h.Logger.Error("pdf generation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to generate report", "")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="climbing-wall.pdf"`)
		w.Write(buf.Bytes())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report.MaterialsList(s, ml)))
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// design decodes the request and runs the calculator. On failure it writes
// the response and returns ok=false.
func (h *Handler) design(w http.ResponseWriter, r *http.Request) (wall.Spec, *wall.MaterialList, bool) {
	var req CalcRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return wall.Spec{}, nil, false
	}

	s, err := wall.New(req.Height, req.Width, req.Depth)
	if err == nil {
		var ml *wall.MaterialList
		if ml, err = wall.Calculate(s); err == nil {
			h.Logger.Debug("design calculated",
				zap.Float64("angle", s.AngleDegrees()),
				zap.Int("sheets", ml.PlywoodSheets),
				zap.Float64("safe_kg", ml.SafeClimberWeightKg))
			return s, ml, true
		}
	}

	var verr *wall.ValidationError
	var cerr *wall.CapacityError
	if errors.As(err, &verr) || errors.As(err, &cerr) {
		h.Logger.Info("design rejected",
			zap.String("kind", wall.KindName(err)),
			zap.Float64("height", req.Height),
			zap.Float64("width", req.Width),
			zap.Float64("depth", req.Depth))
		writeError(w, http.StatusUnprocessableEntity, err.Error(), wall.KindName(err))
		return wall.Spec{}, nil, false
	}

	h.Logger.Error("calculation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "calculation failed", "")
	return wall.Spec{}, nil, false
}

// writeJSON encodes v before writing the status line, so a value that
// cannot be encoded becomes a 500 instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return fmt.Errorf("encode response: %w", err)
	}
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	// ErrorResponse holds only strings and always encodes.
	_ = writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		h.Logger.Error("response not sent", zap.Error(err))
	}
}
