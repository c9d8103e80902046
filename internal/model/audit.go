package model

import "time"

// Audit holds the provenance columns shared by every table. A row is
// soft-deleted once DeletedAt is set; reads filter on deleted_at IS NULL.
type Audit struct {
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	CreatedBy  *string    `db:"created_by" json:"created_by"`
	ModifiedAt time.Time  `db:"modified_at" json:"modified_at"`
	ModifiedBy *string    `db:"modified_by" json:"modified_by"`
	DeletedAt  *time.Time `db:"deleted_at" json:"deleted_at"`
	DeletedBy  *string    `db:"deleted_by" json:"deleted_by"`
}

// NewAudit stamps a freshly created row.
func NewAudit(callerID *string, now time.Time) Audit {
	return Audit{
		CreatedAt:  now,
		CreatedBy:  callerID,
		ModifiedAt: now,
		ModifiedBy: callerID,
	}
}

// Touch records a modification.
func (a *Audit) Touch(callerID *string, now time.Time) {
	a.ModifiedAt = now
	a.ModifiedBy = callerID
}

// Deletion is the payload of a soft delete.
type Deletion struct {
	ID        string    `db:"id"`
	DeletedAt time.Time `db:"deleted_at"`
	DeletedBy *string   `db:"deleted_by"`
}

func NewDeletion(id string, callerID *string, now time.Time) Deletion {
	return Deletion{ID: id, DeletedAt: now, DeletedBy: callerID}
}

// CallerID converts an optional identity into the nullable audit value.
func CallerID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
