package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"demarche-mediation/internal/model"
)

// TaskQueue is shared by the worker and every starter of these workflows.
const TaskQueue = "DEMARCHE_MEDIATION_TASK_QUEUE"

// activityOptions configures the single mediation activity of each workflow.
// MaximumAttempts is 1: a failed event is reported, never replayed, so the
// upstream producer stays the only source of redelivery.
func activityOptions(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})
}

// ProcessNewDemarche carries one démarche creation event to the backend.
func ProcessNewDemarche(ctx workflow.Context, event model.NewDemarche) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("processing demarche creation",
		"idDemarcheSiMetier", event.IDDemarcheSiMetier,
		"idUsager", event.IDUsager)

	ctx = activityOptions(ctx)
	return workflow.ExecuteActivity(ctx, "HandleNewDemarche", event).Get(ctx, nil)
}

// ProcessStatusChange carries one status change event to the backend.
func ProcessStatusChange(ctx workflow.Context, event model.StatusChange) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("processing status change",
		"idDemarcheSiMetier", event.IDDemarcheSiMetier,
		"nouvelEtat", event.NouvelEtat)

	ctx = activityOptions(ctx)
	return workflow.ExecuteActivity(ctx, "HandleStatusChange", event).Get(ctx, nil)
}

// ProcessNewDocument carries one document attachment event to the backend.
func ProcessNewDocument(ctx workflow.Context, event model.NewDocument) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("processing document",
		"idDemarcheSiMetier", event.IDDemarcheSiMetier,
		"libelleDocument", event.LibelleDocument)

	ctx = activityOptions(ctx)
	return workflow.ExecuteActivity(ctx, "HandleNewDocument", event).Get(ctx, nil)
}

// ProcessNewCourrier carries one courrier event, all documents included, to
// the backend.
func ProcessNewCourrier(ctx workflow.Context, event model.NewCourrier) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("processing courrier",
		"idUsager", event.IDUsager,
		"documents", len(event.Documents))

	ctx = activityOptions(ctx)
	return workflow.ExecuteActivity(ctx, "HandleNewCourrier", event).Get(ctx, nil)
}
