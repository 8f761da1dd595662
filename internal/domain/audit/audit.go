// Package audit defines the append-only audit trail contract for transaction
// documents. The storage implementation lives in infrastructure.
package audit

import (
	"context"
	"encoding/json"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

// Action is the audited operation type.
type Action string

const (
	ActionCreate  Action = "create"
	ActionReceive Action = "receive"
)

// Entity names the audited document type.
type Entity string

const (
	EntityInbound    Entity = "inbound"
	EntityOutbound   Entity = "outbound"
	EntityProduction Entity = "production"
	EntityRawIssue   Entity = "raw_issue"
)

// Entry is one audit log record. Payload typically holds the document's
// line set as JSON.
type Entry struct {
	EntityType Entity
	EntityID   id.ID
	Action     Action
	UserID     string
	Payload    json.RawMessage
}

// Recorder persists audit entries.
type Recorder interface {
	Log(ctx context.Context, entry Entry) error
}

// Record logs a document event best-effort: a nil recorder is skipped and
// failures are logged, never propagated. Auditing happens after commit and
// must not fail the business operation.
func Record(ctx context.Context, r Recorder, entity Entity, entityID id.ID, action Action, payload any) {
	if r == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warn(ctx, "audit payload marshal failed", "entity", entity, "error", err)
		return
	}

	err = r.Log(ctx, Entry{
		EntityType: entity,
		EntityID:   entityID,
		Action:     action,
		Payload:    data,
	})
	if err != nil {
		logger.Warn(ctx, "audit log failed", "entity", entity, "entity_id", entityID, "error", err)
	}
}
