package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
)

type uiServer struct {
	tc client.Client
	t  *template.Template
}

type uiRow struct {
	WorkflowID string
	RunID      string
	Type       string
	Status     string
	StartTime  string
}

type uiIndexData struct {
	Tab   string
	Query string
	Rows  []uiRow
	Error string
}

type uiDetailData struct {
	WorkflowID string
	RunID      string
	Type       string
	Status     string
	StartTime  string
	CloseTime  string
	Error      string
}

func registerUIRoutes(r chi.Router, tc client.Client) {
	t := template.Must(template.New("base").Parse(uiTemplates))
	s := &uiServer{tc: tc, t: t}

	r.Get("/ui", s.handleIndex)
	r.Get("/ui/wf/{workflowId}", s.handleDetail)
}

// workflowIDPrefixes are the kinds used by the event endpoints when building
// workflow IDs. Search combines them so one business key finds all its
// executions regardless of event type.
var workflowIDPrefixes = []string{"new-demarche", "status-change", "new-document", "new-courrier"}

// handleIndex lists recent executions. It also supports searching by the
// business key embedded in the workflow ID via visibility query.
func (s *uiServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = "recent"
	}
	q := r.URL.Query().Get("q")

	data := uiIndexData{Tab: tab, Query: q}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	var query string
	if tab == "search" {
		if q == "" {
			_ = s.t.ExecuteTemplate(w, "index", data)
			return
		}
		// The business key sits right after the kind prefix, so STARTS_WITH
		// can find it. One clause per kind, OR-ed together.
		clauses := make([]string, len(workflowIDPrefixes))
		for i, p := range workflowIDPrefixes {
			clauses[i] = fmt.Sprintf(`WorkflowId STARTS_WITH "%s-%s"`, p, q)
		}
		query = strings.Join(clauses, " OR ")
	}

	resp, err := s.tc.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
		Query:    query,
		PageSize: 200, // single page; enough for an ops view
	})
	if err != nil {
		data.Error = err.Error()
		_ = s.t.ExecuteTemplate(w, "index", data)
		return
	}

	for _, ex := range resp.Executions {
		if ex.Execution == nil {
			continue
		}
		row := uiRow{
			WorkflowID: ex.Execution.WorkflowId,
			RunID:      ex.Execution.RunId,
			Status:     ex.Status.String(),
		}
		if ex.Type != nil {
			row.Type = ex.Type.Name
		}
		if ex.StartTime != nil {
			row.StartTime = ex.StartTime.AsTime().Format(time.RFC3339)
		}
		data.Rows = append(data.Rows, row)
	}

	_ = s.t.ExecuteTemplate(w, "index", data)
}

// handleDetail shows one execution: type, status and timing.
func (s *uiServer) handleDetail(w http.ResponseWriter, r *http.Request) {
	wid := chi.URLParam(r, "workflowId")
	rid := r.URL.Query().Get("runId")

	data := uiDetailData{WorkflowID: wid, RunID: rid}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	resp, err := s.tc.DescribeWorkflowExecution(ctx, wid, rid)
	if err != nil {
		data.Error = err.Error()
		_ = s.t.ExecuteTemplate(w, "detail", data)
		return
	}

	if info := resp.GetWorkflowExecutionInfo(); info != nil {
		data.Status = info.Status.String()
		if info.Type != nil {
			data.Type = info.Type.Name
		}
		if info.StartTime != nil {
			data.StartTime = info.StartTime.AsTime().Format(time.RFC3339)
		}
		if info.CloseTime != nil {
			data.CloseTime = info.CloseTime.AsTime().Format(time.RFC3339)
		}
	}

	_ = s.t.ExecuteTemplate(w, "detail", data)
}

// uiTemplates contains HTML templates for the UI pages. In a real application, these would be in separate .html files.
const uiTemplates = `
{{define "index"}}
<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Mediation Events</title>
  <style>
    body { font-family: sans-serif; margin: 24px; }
    .tabs a { margin-right: 12px; }
    table { border-collapse: collapse; width: 100%; margin-top: 12px; }
    th, td { border: 1px solid #ddd; padding: 8px; }
    .err { color: #b00020; }
    .muted { color: #666; }
  </style>
</head>
<body>
  <h2>Mediation Events</h2>

  <div class="tabs">
    <a href="/ui?tab=recent">Recent</a>
    <a href="/ui?tab=search">Search</a>
  </div>

  {{if .Error}}<p class="err">{{.Error}}</p>{{end}}

  {{if eq .Tab "search"}}
    <h3>Search by business key</h3>
    <p class="muted">Finds executions whose workflow ID carries the given idDemarcheSiMetier (or idUsager for courriers).</p>
    <form method="get" action="/ui">
      <input type="hidden" name="tab" value="search"/>
      <input name="q" placeholder="AEL-100000" value="{{.Query}}" style="width: 320px;"/>
      <button type="submit">Search</button>
    </form>
  {{else}}
    <h3>Recent executions</h3>
  {{end}}

  {{if .Rows}}
  <table>
    <thead><tr><th>Workflow</th><th>Type</th><th>Status</th><th>Started</th></tr></thead>
    <tbody>
    {{range .Rows}}
      <tr>
        <td><a href="/ui/wf/{{.WorkflowID}}?runId={{.RunID}}">{{.WorkflowID}}</a></td>
        <td>{{.Type}}</td>
        <td>{{.Status}}</td>
        <td>{{.StartTime}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>
  {{end}}
</body>
</html>
{{end}}

{{define "detail"}}
<!doctype html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Execution Detail</title>
  <style>
    body { font-family: sans-serif; margin: 24px; }
    .err { color: #b00020; }
    table { border-collapse: collapse; margin-top: 12px; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
  </style>
</head>
<body>
  <a href="/ui">&larr; Back</a>
  <h2>Execution Detail</h2>

  {{if .Error}}<p class="err">{{.Error}}</p>{{end}}

  <table>
    <tr><th>WorkflowID</th><td>{{.WorkflowID}}</td></tr>
    <tr><th>RunID</th><td>{{.RunID}}</td></tr>
    <tr><th>Type</th><td>{{.Type}}</td></tr>
    <tr><th>Status</th><td>{{.Status}}</td></tr>
    <tr><th>Started</th><td>{{.StartTime}}</td></tr>
    <tr><th>Closed</th><td>{{.CloseTime}}</td></tr>
  </table>
</body>
</html>
{{end}}
`
