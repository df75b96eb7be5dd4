package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrjoshuak/htmlcase/internal/casing"
	"github.com/mrjoshuak/htmlcase/internal/transform"
	"github.com/mrjoshuak/htmlcase/internal/version"
)

// TransformRequest is the body of POST /transform.
type TransformRequest struct {
	Transform casing.Directive `json:"transform" validate:"required"`
	HTML      *string          `json:"html" validate:"required"`
	Selector  string           `json:"selector,omitempty" validate:"excluded_with=XPath"`
	XPath     string           `json:"xpath,omitempty"`
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		s.log.DebugContext(r.Context(), "rejected request", "error", err)
		writeText(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	res, err := transform.Transform(*req.HTML, req.Transform, transform.Options{
		Selector:      req.Selector,
		XPath:         req.XPath,
		Normalization: s.opts.Normalization,
	})
	if err != nil {
		kind, _ := transform.KindOf(err)
		s.log.WarnContext(r.Context(), "transform failed", "kind", kind, "error", err)
		writeText(w, http.StatusBadRequest, "Invalid html: "+err.Error())
		return
	}

	s.log.DebugContext(r.Context(), "transformed",
		"directive", req.Transform,
		"targets", res.Targets,
		"text_nodes", res.TextNodes,
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.HTML))
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*TransformRequest, error) {
	if s.opts.MaxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodySize)
	}

	var req TransformRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		return nil, decodeError(err)
	}
	// Only whitespace may follow the object.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, decodeError(err)
	}

	if err := s.validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("body exceeds %d bytes", tooLarge.Limit)
	}
	return fmt.Errorf("decoding JSON: %w", err)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "excluded_with":
			msgs = append(msgs, field+" cannot be combined with "+strings.ToLower(e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation '%s'", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Hello, World!")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(version.Get())
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
