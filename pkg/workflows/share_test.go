package workflows

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/tocampus/governance/pkg/config"
	"github.com/tocampus/governance/pkg/logger"
	"github.com/tocampus/governance/services/governance/domain/models"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

type startCall struct {
	opts     client.StartWorkflowOptions
	workflow interface{}
	args     []interface{}
}

type fakeStarter struct {
	calls []startCall
	err   error
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, opts client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.calls = append(f.calls, startCall{opts: opts, workflow: workflow, args: args})
	return nil, f.err
}

func TestRequestShares_StartsWorkflow(t *testing.T) {
	starter := &fakeStarter{}
	s := newShareRequester(starter, "content-shares", nopLogger())
	id := uuid.New()

	err := s.RequestShares(context.Background(), id, []models.Platform{models.PlatformTwitter, models.PlatformLinkedIn})
	if err != nil {
		t.Fatalf("RequestShares: %v", err)
	}
	if len(starter.calls) != 1 {
		t.Fatalf("expected 1 start, got %d", len(starter.calls))
	}
	call := starter.calls[0]
	if call.opts.ID != "share-"+id.String() {
		t.Errorf("workflow id = %q", call.opts.ID)
	}
	if call.opts.TaskQueue != "content-shares" {
		t.Errorf("task queue = %q", call.opts.TaskQueue)
	}
	if call.workflow != ShareWorkflowName {
		t.Errorf("workflow = %v, want %s", call.workflow, ShareWorkflowName)
	}
	want := ShareRequest{ContentID: id, Platforms: []string{"TWITTER", "LINKEDIN"}}
	if len(call.args) != 1 || !reflect.DeepEqual(call.args[0], want) {
		t.Errorf("args = %+v, want %+v", call.args, want)
	}
}

func TestRequestShares_NoPlatforms(t *testing.T) {
	starter := &fakeStarter{}
	s := newShareRequester(starter, "q", nopLogger())
	if err := s.RequestShares(context.Background(), uuid.New(), nil); err != nil {
		t.Fatalf("RequestShares: %v", err)
	}
	if len(starter.calls) != 0 {
		t.Errorf("expected no workflow start, got %d", len(starter.calls))
	}
}

func TestRequestShares_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"already started is success", serviceerror.NewWorkflowExecutionAlreadyStarted("exists", "", ""), false},
		{"other errors propagate", errors.New("unavailable"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newShareRequester(&fakeStarter{err: tt.err}, "q", nopLogger())
			err := s.RequestShares(context.Background(), uuid.New(), []models.Platform{models.PlatformFacebook})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
