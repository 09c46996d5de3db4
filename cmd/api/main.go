package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"demarche-mediation/internal/config"
	"demarche-mediation/internal/model"
	"demarche-mediation/internal/workflows"
)

type startResp struct {
	WorkflowID string `json:"workflowId"`
	RunID      string `json:"runId"`
}

type apiServer struct {
	tc  client.Client
	log *slog.Logger
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	tc, err := client.Dial(client.Options{HostPort: cfg.Temporal.HostPort})
	if err != nil {
		log.Fatalf("unable to create Temporal client: %v", err)
	}
	defer tc.Close()

	s := &apiServer{tc: tc, log: logger}

	r := chi.NewRouter()

	// One endpoint per upstream event type. Each request starts a dedicated
	// workflow execution carrying that one event; the response only
	// acknowledges the start, not the outcome.
	r.Post("/events/demarches", s.handleNewDemarche)
	r.Post("/events/statuses", s.handleStatusChange)
	r.Post("/events/documents", s.handleNewDocument)
	r.Post("/events/courriers", s.handleNewCourrier)

	registerUIRoutes(r, tc)

	logger.Info("api listening", "addr", cfg.API.Addr)
	log.Fatal(http.ListenAndServe(cfg.API.Addr, r))
}

func (s *apiServer) handleNewDemarche(w http.ResponseWriter, r *http.Request) {
	var event model.NewDemarche
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	s.start(w, workflowID("new-demarche", event.IDDemarcheSiMetier), workflows.ProcessNewDemarche, event)
}

func (s *apiServer) handleStatusChange(w http.ResponseWriter, r *http.Request) {
	var event model.StatusChange
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	s.start(w, workflowID("status-change", event.IDDemarcheSiMetier), workflows.ProcessStatusChange, event)
}

func (s *apiServer) handleNewDocument(w http.ResponseWriter, r *http.Request) {
	var event model.NewDocument
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	s.start(w, workflowID("new-document", event.IDDemarcheSiMetier), workflows.ProcessNewDocument, event)
}

func (s *apiServer) handleNewCourrier(w http.ResponseWriter, r *http.Request) {
	var event model.NewCourrier
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	s.start(w, workflowID("new-courrier", event.IDUsager), workflows.ProcessNewCourrier, event)
}

// workflowID builds "<kind>-<businessKey>-<uuid>". The business key makes
// executions searchable by prefix in the visibility store; the UUID suffix
// keeps repeated events for the same démarche from colliding.
func workflowID(kind, businessKey string) string {
	if businessKey == "" {
		businessKey = "unkeyed"
	}
	return kind + "-" + businessKey + "-" + uuid.NewString()
}

func (s *apiServer) start(w http.ResponseWriter, wid string, wf any, event any) {
	opts := client.StartWorkflowOptions{
		ID:                                       wid,
		TaskQueue:                                workflows.TaskQueue,
		WorkflowExecutionTimeout:                 5 * time.Minute,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	we, err := s.tc.ExecuteWorkflow(ctx, opts, wf, event)
	if err != nil {
		s.log.Error("unable to start workflow", "workflowId", wid, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, startResp{WorkflowID: we.GetID(), RunID: we.GetRunID()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
