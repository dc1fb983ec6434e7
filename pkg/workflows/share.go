package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// ShareWorkflowName is the workflow type the social posting service registers.
const ShareWorkflowName = "ShareContent"

// ShareRequest is the input of the ShareContent workflow.
type ShareRequest struct {
	ContentID uuid.UUID `json:"content_id"`
	Platforms []string  `json:"platforms"`
}

// workflowStarter is the part of client.Client the share requester uses.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// ShareRequester starts one ShareContent workflow per published item.
// The workflow ID is derived from the content ID, so a repeated request for
// the same item is absorbed by Temporal instead of posting twice.
type ShareRequester struct {
	starter   workflowStarter
	taskQueue string
	log       logger.Logger
}

// NewShareRequester returns a requester using tc's client.
func NewShareRequester(tc *TemporalClient, taskQueue string, log logger.Logger) *ShareRequester {
	return newShareRequester(tc.Client, taskQueue, log)
}

func newShareRequester(starter workflowStarter, taskQueue string, log logger.Logger) *ShareRequester {
	return &ShareRequester{starter: starter, taskQueue: taskQueue, log: log}
}

// RequestShares implements repositories.ShareRequester.
func (s *ShareRequester) RequestShares(ctx context.Context, contentID uuid.UUID, platforms []models.Platform) error {
	if len(platforms) == 0 {
		return nil
	}
	req := ShareRequest{ContentID: contentID, Platforms: make([]string, len(platforms))}
	for i, p := range platforms {
		req.Platforms[i] = string(p)
	}

	opts := client.StartWorkflowOptions{
		ID:        ShareWorkflowID(contentID),
		TaskQueue: s.taskQueue,
	}
	if _, err := s.starter.ExecuteWorkflow(ctx, opts, ShareWorkflowName, req); err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			s.log.InfoContext(ctx, "share workflow already started", "workflow_id", opts.ID)
			return nil
		}
		return fmt.Errorf("start share workflow for %s: %w", contentID, err)
	}
	s.log.InfoContext(ctx, "share workflow started",
		"workflow_id", opts.ID,
		"task_queue", s.taskQueue,
		"platforms", req.Platforms,
	)
	return nil
}

// ShareWorkflowID is the workflow ID used for contentID.
func ShareWorkflowID(contentID uuid.UUID) string {
	return "share-" + contentID.String()
}
