// Package repository defines the snapshot store interface and errors.
//
// Persistence is write-through and total: every mutation saves the whole
// pool state. Durability is best-effort; callers log and swallow save
// failures, keeping in-memory state authoritative for the session.
package repository

import (
	"context"

	"github.com/okian/underdog/internal/domain/model"
)

// Snapshots provides load/save access to the persisted pool state.
type Snapshots interface {
	// Load returns the stored snapshot, or ok=false when none exists.
	Load(ctx context.Context) (*model.PoolState, bool, error)

	// Save persists the whole snapshot, replacing any previous one.
	Save(ctx context.Context, state *model.PoolState) error
}
