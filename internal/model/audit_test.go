package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuditStampsBothPairs(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	caller := CallerID("u-1")

	a := NewAudit(caller, now)

	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, now, a.ModifiedAt)
	assert.Equal(t, caller, a.CreatedBy)
	assert.Equal(t, caller, a.ModifiedBy)
	assert.Nil(t, a.DeletedAt)
	assert.Nil(t, a.DeletedBy)
}

func TestTouchOnlyChangesModified(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewAudit(nil, created)

	later := created.Add(time.Hour)
	a.Touch(CallerID("u-2"), later)

	assert.Equal(t, created, a.CreatedAt)
	assert.Nil(t, a.CreatedBy)
	assert.Equal(t, later, a.ModifiedAt)
	require.NotNil(t, a.ModifiedBy)
	assert.Equal(t, "u-2", *a.ModifiedBy)
}

func TestCallerID(t *testing.T) {
	assert.Nil(t, CallerID(""))
	require.NotNil(t, CallerID("abc"))
}

func TestUserPasswordIsNotSerialized(t *testing.T) {
	raw, err := json.Marshal(User{ID: "1", Email: "a@b.c", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.Contains(t, string(raw), `"deleted_at":null`)
}
