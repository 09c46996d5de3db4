package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"

	"demarche-mediation/internal/config"
	"demarche-mediation/internal/model"
	"demarche-mediation/internal/workflows"
)

// Dev/test starter: feeds one event from a JSON file through the matching
// workflow and waits for the outcome. In normal operation events arrive via
// the api binary instead.
func main() {
	var (
		configPath string
		eventType  string
		eventFile  string
	)
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.StringVar(&eventType, "type", "demarche", "event type: demarche | status | document | courrier")
	flag.StringVar(&eventFile, "file", "", "path to the JSON event payload")
	flag.Parse()

	if eventFile == "" {
		log.Fatal("missing -file: path to the JSON event payload")
	}
	raw, err := os.ReadFile(eventFile)
	if err != nil {
		log.Fatalf("unable to read event file: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	c, err := client.Dial(client.Options{HostPort: cfg.Temporal.HostPort})
	if err != nil {
		log.Fatalf("unable to create Temporal client: %v", err)
	}
	defer c.Close()

	var (
		wf    any
		event any
		key   string
	)
	switch eventType {
	case "demarche":
		var e model.NewDemarche
		mustDecode(raw, &e)
		wf, event, key = workflows.ProcessNewDemarche, e, "new-demarche-"+e.IDDemarcheSiMetier
	case "status":
		var e model.StatusChange
		mustDecode(raw, &e)
		wf, event, key = workflows.ProcessStatusChange, e, "status-change-"+e.IDDemarcheSiMetier
	case "document":
		var e model.NewDocument
		mustDecode(raw, &e)
		wf, event, key = workflows.ProcessNewDocument, e, "new-document-"+e.IDDemarcheSiMetier
	case "courrier":
		var e model.NewCourrier
		mustDecode(raw, &e)
		wf, event, key = workflows.ProcessNewCourrier, e, "new-courrier-"+e.IDUsager
	default:
		log.Fatalf("unknown event type %q", eventType)
	}

	opts := client.StartWorkflowOptions{
		ID:                                       key + "-" + uuid.NewString(),
		TaskQueue:                                workflows.TaskQueue,
		WorkflowExecutionTimeout:                 5 * time.Minute,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	we, err := c.ExecuteWorkflow(ctx, opts, wf, event)
	if err != nil {
		log.Fatalf("unable to execute workflow: %v", err)
	}
	log.Printf("started workflow: WorkflowID=%s RunID=%s\n", we.GetID(), we.GetRunID())

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel2()

	if err := we.Get(ctx2, nil); err != nil {
		log.Fatalf("event processing failed: %v", err)
	}
	log.Println("event processed")
}

func mustDecode(raw []byte, v any) {
	if err := json.Unmarshal(raw, v); err != nil {
		log.Fatalf("unable to decode event payload: %v", err)
	}
}
