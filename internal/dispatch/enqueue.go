package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"

	"github.com/nimbushr/syncengine/internal/config"
)

// Enqueuer builds and submits Cloud Tasks HTTP tasks that POST back to this
// service's own `/tasks/*` routes, OIDC-signed for the inbound verifier in
// oidc.go (§4.4 "Enqueue contract").
type Enqueuer struct {
	client *cloudtasks.Client
	cfg    *config.QueueConfig
}

// NewEnqueuer dials Cloud Tasks using application-default credentials.
func NewEnqueuer(ctx context.Context, cfg *config.QueueConfig) (*Enqueuer, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("dispatch: dial cloud tasks: %w", err)
	}
	return &Enqueuer{client: client, cfg: cfg}, nil
}

// Close releases the underlying gRPC connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// EnqueueResult is surfaced back to the caller of a `/cron/*` or enqueuing
// endpoint (§4.4: "Surface task_name and url in the response").
type EnqueueResult struct {
	TaskName string
	URL      string
}

// Enqueue builds an HTTP task POSTing body to relativeURL on this service
// and submits it to the configured queue. taskID, if non-empty, makes the
// task name deterministic (e.g. "export-snapshot-2026-07-30") so a retry
// within the same day dedupes instead of double-enqueueing.
func (e *Enqueuer) Enqueue(ctx context.Context, relativeURL, taskID string, body any) (EnqueueResult, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return EnqueueResult{}, fmt.Errorf("dispatch: marshal task body: %w", err)
	}

	url := e.cfg.ServiceURL + relativeURL
	task := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				Url:        url,
				HttpMethod: taskspb.HttpMethod_POST,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       payload,
				AuthorizationHeader: &taskspb.HttpRequest_OidcToken{
					OidcToken: &taskspb.OidcToken{
						ServiceAccountEmail: e.cfg.ServiceAccount,
						Audience:            e.cfg.Audience,
					},
				},
			},
		},
	}

	parent := fmt.Sprintf("projects/%s/locations/%s/queues/%s", e.cfg.Project, e.cfg.Region, e.cfg.Name)
	if taskID != "" {
		task.Name = parent + "/tasks/" + taskID
	}

	created, err := e.client.CreateTask(ctx, &taskspb.CreateTaskRequest{Parent: parent, Task: task})
	if err != nil {
		return EnqueueResult{}, fmt.Errorf("dispatch: create task: %w", err)
	}
	return EnqueueResult{TaskName: created.GetName(), URL: url}, nil
}
