package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"demarche-mediation/internal/activities"
	"demarche-mediation/internal/backend"
	"demarche-mediation/internal/config"
	"demarche-mediation/internal/mapping"
	"demarche-mediation/internal/mediation"
	"demarche-mediation/internal/workflows"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	c, err := client.Dial(client.Options{HostPort: cfg.Temporal.HostPort})
	if err != nil {
		log.Fatalf("unable to create Temporal client: %v", err)
	}
	defer c.Close()

	mapper, err := mapping.NewDocumentMapper(cfg.Document.FileNameSanitizationPattern)
	if err != nil {
		log.Fatalf("invalid file name sanitization pattern: %v", err)
	}

	backendClient := backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), logger)
	demarches := mediation.NewDemarcheService(backendClient, logger)
	documents := mediation.NewDocumentService(backendClient, demarches, mapper, cfg.Document.MimeTypes, logger)

	w := worker.New(c, workflows.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.ProcessNewDemarche)
	w.RegisterWorkflow(workflows.ProcessStatusChange)
	w.RegisterWorkflow(workflows.ProcessNewDocument)
	w.RegisterWorkflow(workflows.ProcessNewCourrier)
	w.RegisterActivity(activities.New(demarches, documents))

	log.Printf("worker started (taskQueue=%s backend=%s)\n", workflows.TaskQueue, cfg.Backend.BaseURL)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker exited: %v", err)
	}
}
