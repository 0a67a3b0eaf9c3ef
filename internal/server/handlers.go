package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jacoelho/jsonschema"
	jsonerrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsontext"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

type validateResponse struct {
	Errors []jsonerrors.Record `json:"errors"`
	Valid  bool                `json:"valid"`
}

type schemaResponse struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) putSchema(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	set := jsonschema.NewSchemaSet(s.opts)
	if err := set.AddResource("", data); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	schema, err := set.CompileContext(r.Context())
	if err != nil {
		s.fail(w, r, compileStatus(err), err)
		return
	}
	existed := s.store(name, schema)
	s.logger.Info("schema stored", slog.String("name", name), slog.Bool("replaced", existed))
	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	s.writeJSON(w, status, schemaResponse{Name: name, Created: !existed})
}

func (s *Server) deleteSchema(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if !s.remove(name) {
		s.fail(w, r, http.StatusNotFound, fmt.Errorf("schema %q not found", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) validateNamed(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	schema, ok := s.lookup(name)
	if !ok {
		s.fail(w, r, http.StatusNotFound, fmt.Errorf("schema %q not found", name))
		return
	}
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	report, err := schema.ValidateBytes(data)
	s.respondReport(w, r, report, err)
}

func (s *Server) validateAdHoc(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	// The envelope object adds one level above the instance.
	depth := s.opts.RuntimeOptions().InstanceMaxDepth() + 1
	body, err := jsontext.Parse(data, jsontext.MaxDepth(depth))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	schemaValue, hasSchema := body.Lookup("schema")
	instance, hasInstance := body.Lookup("instance")
	if body.Kind() != jsonvalue.KindObject || !hasSchema || !hasInstance {
		s.fail(w, r, http.StatusBadRequest, errors.New(`body must be an object with "schema" and "instance" members`))
		return
	}
	set := jsonschema.NewSchemaSet(s.opts)
	if err := set.AddValue("", schemaValue); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	schema, err := set.CompileContext(r.Context())
	if err != nil {
		s.fail(w, r, compileStatus(err), err)
		return
	}
	report, err := schema.ValidateValue(instance)
	s.respondReport(w, r, report, err)
}

func (s *Server) respondReport(w http.ResponseWriter, r *http.Request, report jsonerrors.Report, err error) {
	if err != nil {
		var parseErr *jsonerrors.ParseError
		if errors.As(err, &parseErr) {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		s.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusOK, validateResponse{Valid: report.Valid(), Errors: report.Records()})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, err)
			return nil, false
		}
		s.fail(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	return data, true
}

// compileStatus maps malformed schema bytes to 400 and every other compile
// failure to 422.
func compileStatus(err error) int {
	var parseErr *jsonerrors.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := requestIDFrom(r.Context())
	s.logger.Debug("request failed",
		slog.String("request_id", id),
		slog.Int("status", status),
		slog.Any("error", err))
	s.writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: id})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", slog.Any("error", err))
	}
}
