// Package httpapi exposes bb.Compiler as an optional HTTP service: a
// single POST /compile endpoint plus a health check. A Server is built
// with New and served by the caller; config.Config.ServeAddr does not
// start it. Grounded on the teacher's go.mod dependency
// on gorilla/mux; the teacher's own server/ package is a MySQL
// wire-protocol listener with no surviving HTTP-routing source to
// imitate directly, so the routing/handler shape here follows the
// straightforward net/http-handler-per-route idiom gorilla/mux is built
// for rather than a literal teacher call site.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/boltzmannbrain/bb"
	"github.com/boltzmannbrain/bb/internal/grammar"
	"github.com/boltzmannbrain/bb/model"
)

var log = logrus.WithField("system", "httpapi")

// Server wraps a bb.Compiler with an HTTP surface.
type Server struct {
	compiler *bb.Compiler
	router   *mux.Router
}

// New builds a Server around compiler.
func New(compiler *bb.Compiler) *Server {
	s := &Server{compiler: compiler, router: mux.NewRouter()}
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/compile", s.handleCompile).Methods(http.MethodPost)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// compileRequest is the JSON body accepted by POST /compile: grammar
// holds the raw input-grammar text (spec §6's input format), the same
// text a CLI invocation would read from a file.
type compileRequest struct {
	Grammar string `json:"grammar"`
}

type compileResponse struct {
	Source string `json:"source"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Grammar) == "" {
		writeError(w, http.StatusBadRequest, "grammar must not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	src, err := s.compiler.Compile(ctx, strings.NewReader(req.Grammar))
	if err != nil {
		log.WithError(err).Info("compile request failed")
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(compileResponse{Source: string(src)})
}

// statusFor maps the go-errors.v1 error taxonomy surfaced by bb.Compile
// to an HTTP status: anything caused by the submitted grammar is a 400,
// anything else (tuner process failures, internal template errors) is a
// 500.
func statusFor(err error) int {
	clientKinds := []interface {
		Is(error) bool
	}{
		grammar.ErrLex, grammar.ErrParse, grammar.ErrDuplicateType,
		model.ErrUnknownType, model.ErrNoAtoms, model.ErrDegenerateConstructor,
		model.ErrUnsupported, model.ErrFrequencyRequiresTuner, model.ErrInvalidFrequency,
	}
	for _, k := range clientKinds {
		if k.Is(err) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
