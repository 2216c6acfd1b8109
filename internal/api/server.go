package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"kustomate/internal/core"
	"kustomate/internal/core/domain"
	"kustomate/internal/ports"
)

// Server exposes the intent pipeline over HTTP so other tooling can plan
// and apply patches without shelling out to the CLI.
type Server struct {
	intentParser   ports.IntentParser
	scannerFactory ports.ScannerFactory
	patchGenerator *core.PatchGenerator
}

func ProvideServer(
	intentParser ports.IntentParser,
	scannerFactory ports.ScannerFactory,
	patchGenerator *core.PatchGenerator,
) *Server {
	return &Server{
		intentParser:   intentParser,
		scannerFactory: scannerFactory,
		patchGenerator: patchGenerator,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/namespaces", s.handleNamespaces).Methods(http.MethodGet)
	router.HandleFunc("/resources", s.handleResources).Methods(http.MethodGet)
	router.HandleFunc("/command", s.handleCommand).Methods(http.MethodPost)
	router.HandleFunc("/apply", s.handleApply).Methods(http.MethodPost)
	return router
}

// ListenAndServe blocks serving the API on the given address.
func (s *Server) ListenAndServe(address string) error {
	server := &http.Server{
		Addr:         address,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return server.ListenAndServe()
}

type commandRequest struct {
	Command   string `json:"command"`
	Namespace string `json:"namespace,omitempty"`
	Selector  string `json:"selector,omitempty"`
	DryRun    *bool  `json:"dry_run,omitempty"`
}

type patchResponse struct {
	Name      string           `json:"name"`
	Kind      string           `json:"kind"`
	Namespace string           `json:"namespace"`
	Patch     domain.PatchTree `json:"patch"`
	YAML      string           `json:"yaml"`
	Diff      string           `json:"diff"`
	Applied   bool             `json:"applied"`
	Error     string           `json:"error,omitempty"`
}

type commandResponse struct {
	Request string          `json:"request"`
	Intents []domain.Intent `json:"intents"`
	Patches []patchResponse `json:"patches"`
	DryRun  bool            `json:"dry_run"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNamespaces(w http.ResponseWriter, _ *http.Request) {
	scanner, err := s.scannerFactory.ClusterScanner()
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	lister, ok := scanner.(ports.NamespaceLister)
	if !ok {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("scanner cannot list namespaces"))
		return
	}

	namespaces, err := lister.Namespaces()
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"namespaces": namespaces})
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	resourceType := r.URL.Query().Get("type")
	if resourceType == "" {
		resourceType = "all"
	}

	scanner, err := s.scannerFactory.ClusterScanner()
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	resources, err := scanner.Scan(domain.ResourceQuery{
		ResourceType:  resourceType,
		Namespace:     r.URL.Query().Get("namespace"),
		LabelSelector: r.URL.Query().Get("selector"),
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	type resourceSummary struct {
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		Namespace string `json:"namespace"`
	}
	summaries := make([]resourceSummary, 0, len(resources))
	for _, resource := range resources {
		summaries = append(summaries, resourceSummary{
			Kind:      resource.GetKind(),
			Name:      resource.GetName(),
			Namespace: resource.GetNamespace(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"resources": summaries})
}

// handleCommand plans the patches for a natural language command. Unless
// dry_run is explicitly false the patches are only planned, never applied.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	s.runCommand(w, r, true)
}

// handleApply plans and immediately applies, ignoring any dry_run field.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	s.runCommand(w, r, false)
}

func (s *Server) runCommand(w http.ResponseWriter, r *http.Request, defaultDryRun bool) {
	var request commandRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if request.Command == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("command is required"))
		return
	}

	dryRun := defaultDryRun
	if request.DryRun != nil {
		dryRun = *request.DryRun
	}

	intents, err := s.intentParser.Parse(r.Context(), request.Command)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("failed to parse command: %w", err))
		return
	}

	scanner, err := s.scannerFactory.ClusterScanner()
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	planner := core.ProvidePlanner(scanner, s.patchGenerator)
	records, err := planner.Plan(intents, request.Namespace, request.Selector)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	response := commandResponse{
		Request: request.Command,
		Intents: intents,
		DryRun:  dryRun,
		Patches: make([]patchResponse, 0, len(records)),
	}

	var applier ports.PatchApplier
	if !dryRun {
		applier, err = s.scannerFactory.ClusterApplier()
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
	}

	for _, record := range records {
		patch := patchResponse{
			Name:      record.Name,
			Kind:      record.Kind,
			Namespace: record.Namespace,
			Patch:     record.Patch,
			YAML:      record.YAML,
			Diff:      record.Diff,
		}

		if applier != nil {
			if err := applier.Apply(r.Context(), record); err != nil {
				patch.Error = err.Error()
			} else {
				patch.Applied = true
			}
		}

		response.Patches = append(response.Patches, patch)
	}

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
