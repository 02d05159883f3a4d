// Package activity records who did what. Recording is a side channel:
// a failure is logged and never reaches the caller.
package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is one recorded action.
type Entry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Sink persists entries.
type Sink interface {
	LogActivity(ctx context.Context, e Entry) error
}

// Recorder writes entries to a Sink on a best-effort basis.
type Recorder struct {
	sink   Sink
	user   string
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder returns a recorder attributing entries to user. A nil sink
// records nothing.
func NewRecorder(sink Sink, user string, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{sink: sink, user: user, logger: logger, now: time.Now}
}

// Record stores an action with details encoded as JSON.
func (r *Recorder) Record(ctx context.Context, action, resource string, details map[string]any) {
	if r == nil || r.sink == nil {
		return
	}
	e := Entry{
		ID:        uuid.NewString(),
		Action:    action,
		Resource:  resource,
		User:      r.user,
		CreatedAt: r.now().UTC(),
	}
	if len(details) > 0 {
		b, err := json.Marshal(details)
		if err != nil {
			r.logger.Warn("activity details not encodable", zap.String("action", action), zap.Error(err))
		} else {
			e.Details = string(b)
		}
	}
	if err := r.sink.LogActivity(ctx, e); err != nil {
		r.logger.Warn("failed to record activity",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.Error(err))
	}
}
