// Package bedstore defines the storage contract shared by the MongoDB and
// local file backends. Callers receive an injected Store instance and must
// treat the Subscribe callback (or a fresh List) as the source of truth after
// any mutation.
package bedstore

import (
	"context"
	"errors"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
)

// ErrNotFound indicates the referenced bed record does not exist.
var ErrNotFound = errors.New("bed record not found")

// Store is the uniform read/write/subscribe surface over a bed collection.
type Store interface {
	// List returns a snapshot of every record, trashed ones included.
	List(ctx context.Context) ([]models.BedRecord, error)
	// Subscribe registers a callback invoked with a full snapshot whenever
	// the collection changes. The returned function cancels the subscription.
	Subscribe(fn func([]models.BedRecord)) (func(), error)
	// Create persists a new record and returns its assigned id.
	Create(ctx context.Context, rec models.BedRecord) (string, error)
	// Update applies the non-nil fields of patch to the record.
	Update(ctx context.Context, id string, patch BedPatch) error
	// Remove permanently erases the record.
	Remove(ctx context.Context, id string) error
	// Close releases the backend connection and stops change notification.
	Close(ctx context.Context) error
}

// BedPatch is a partial update. Nil fields are left untouched. DeletedAt
// pointing at an empty string clears the trash marker; the Mongo backend
// writes a null and the local backend drops the field, and readers treat
// both as active.
type BedPatch struct {
	Status      *models.BedStatus
	TenantName  *string
	TenantPhone *string
	Notes       *string
	MoveInDate  *string
	MonthlyRent *float64
	Payments    []models.Payment
	DeletedAt   *string
}

// Apply mutates rec in place with the patch fields. Backends that hold whole
// records (the local store) use this; the Mongo backend translates the same
// fields into a $set document instead.
func (p BedPatch) Apply(rec *models.BedRecord) {
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.TenantName != nil {
		rec.TenantName = *p.TenantName
	}
	if p.TenantPhone != nil {
		rec.TenantPhone = *p.TenantPhone
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
	if p.MoveInDate != nil {
		rec.MoveInDate = *p.MoveInDate
	}
	if p.MonthlyRent != nil {
		rec.MonthlyRent = *p.MonthlyRent
	}
	if p.Payments != nil {
		rec.Payments = p.Payments
	}
	if p.DeletedAt != nil {
		rec.DeletedAt = *p.DeletedAt
	}
}
