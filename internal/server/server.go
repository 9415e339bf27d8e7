package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/objectname"
	"github.com/vk/mgrid/internal/registry"
	"github.com/vk/mgrid/internal/remote"
)

// Credentials is the login/password pair session requests authenticate with.
type Credentials struct {
	Login    string
	Password string
}

// Server serves a registry over HTTP.
type Server struct {
	reg    *registry.Registry
	creds  Credentials
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]struct{}
}

// New creates a Server for the given registry and credentials.
func New(reg *registry.Registry, creds Credentials, logger *slog.Logger) *Server {
	return &Server{
		reg:      reg,
		creds:    creds,
		logger:   logger,
		sessions: make(map[string]struct{}),
	}
}

// Handler returns the HTTP handler exposing the registry.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/session", s.openSession)
	mux.HandleFunc("DELETE /v1/session", s.closeSession)
	mux.HandleFunc("POST /v1/registered", s.withSession(s.isRegistered))
	mux.HandleFunc("POST /v1/instanceof", s.withSession(s.isInstanceOf))
	mux.HandleFunc("POST /v1/invoke", s.withSession(s.invoke))
	mux.HandleFunc("POST /v1/register", s.withSession(s.register))
	mux.HandleFunc("POST /v1/unregister", s.withSession(s.unregister))
	mux.HandleFunc("GET /v1/query", s.withSession(s.queryAll))
	return mux
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request) {
	login, password, ok := r.BasicAuth()
	if !ok ||
		subtle.ConstantTimeCompare([]byte(login), []byte(s.creds.Login)) != 1 ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) != 1 {
		s.logger.Debug("Session request rejected.", "remote_addr", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, remote.CodeAuthFailed, "authentication rejected")
		return
	}

	var req remote.SessionRequest
	_ = json.NewDecoder(r.Body).Decode(&req) // service URL is informational

	token := newToken()
	s.mu.Lock()
	s.sessions[token] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug("Session opened.", "remote_addr", r.RemoteAddr, "service_url", req.ServiceURL)
	writeJSON(w, http.StatusOK, remote.SessionResponse{Token: token})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.sessions, bearerToken(r))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// withSession rejects requests that do not carry a live session token.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		_, ok := s.sessions[bearerToken(r)]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, remote.CodeAuthFailed, "no open session")
			return
		}
		next(w, r)
	}
}

func (s *Server) isRegistered(w http.ResponseWriter, r *http.Request) {
	var req remote.NameRequest
	name, ok := s.decodeName(w, r, &req, func() string { return req.Name })
	if !ok {
		return
	}
	registered, err := s.reg.IsRegistered(r.Context(), name)
	if err != nil {
		s.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, remote.BoolResponse{Value: registered})
}

func (s *Server) isInstanceOf(w http.ResponseWriter, r *http.Request) {
	var req remote.InstanceOfRequest
	name, ok := s.decodeName(w, r, &req, func() string { return req.Name })
	if !ok {
		return
	}
	instance, err := s.reg.IsInstanceOf(r.Context(), name, req.TypeName)
	if err != nil {
		s.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, remote.BoolResponse{Value: instance})
}

func (s *Server) invoke(w http.ResponseWriter, r *http.Request) {
	var req remote.InvokeRequest
	name, ok := s.decodeName(w, r, &req, func() string { return req.Name })
	if !ok {
		return
	}
	s.logger.Debug("Invoking managed operation.", "name", req.Name, "method", req.Method)
	result, err := s.reg.Invoke(r.Context(), name, req.Method, req.Args)
	if err != nil {
		s.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, remote.ValueResponse{Value: result})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req remote.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, remote.CodeInvalidArgument, "malformed request body: "+err.Error())
		return
	}
	desc, ok := s.reg.DescriptorFor(req.TypeName)
	if !ok {
		writeError(w, http.StatusBadRequest, remote.CodeInvalidArgument, "unknown contract "+req.TypeName)
		return
	}

	var registered objectname.Name
	var err error
	if req.Name == "" {
		registered, err = s.reg.Register(r.Context(), desc)
	} else {
		var name objectname.Name
		if name, err = objectname.Parse(req.Name); err != nil {
			writeError(w, http.StatusBadRequest, remote.CodeInvalidArgument, err.Error())
			return
		}
		registered, err = s.reg.RegisterNamed(r.Context(), desc, name)
	}
	if err != nil {
		s.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, remote.NameResponse{Name: registered.String()})
}

func (s *Server) unregister(w http.ResponseWriter, r *http.Request) {
	var req remote.NameRequest
	name, ok := s.decodeName(w, r, &req, func() string { return req.Name })
	if !ok {
		return
	}
	if err := s.reg.Unregister(r.Context(), name); err != nil {
		s.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) queryAll(w http.ResponseWriter, r *http.Request) {
	entries, err := s.reg.QueryAll(r.Context())
	if err != nil {
		s.writeRegistryError(w, err)
		return
	}
	out := remote.QueryResponse{Entries: make([]remote.QueryEntry, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, remote.QueryEntry{TypeName: e.TypeName, Name: e.Name.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeName decodes the request body into req and parses the object name
// nameField yields, writing the error response itself on failure.
func (s *Server) decodeName(w http.ResponseWriter, r *http.Request, req any, nameField func() string) (objectname.Name, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, remote.CodeInvalidArgument, "malformed request body: "+err.Error())
		return objectname.Name{}, false
	}
	name, err := objectname.Parse(nameField())
	if err != nil {
		writeError(w, http.StatusBadRequest, remote.CodeInvalidArgument, err.Error())
		return objectname.Name{}, false
	}
	return name, true
}

// writeRegistryError maps a registry error onto the wire taxonomy.
func (s *Server) writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mbean.ErrNameNotFound):
		writeError(w, http.StatusNotFound, remote.CodeNotFound, err.Error())
	case errdefs.IsInvalidArgument(err):
		writeError(w, http.StatusBadRequest, remote.CodeInvalidArgument, err.Error())
	case errdefs.IsOperationFailed(err):
		writeError(w, http.StatusInternalServerError, remote.CodeOperationFailed, err.Error())
	default:
		// An error the managed object itself raised.
		writeError(w, http.StatusInternalServerError, remote.CodeBeanError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, remote.ErrorResponse{Code: code, Message: message})
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func newToken() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
