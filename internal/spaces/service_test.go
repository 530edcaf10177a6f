package spaces_test

import (
	"context"
	"testing"

	"osspace/internal/shared/apperrors"
	"osspace/internal/spaces"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&spaces.SpaceRequest{}))
	return db
}

func seedRequest(t *testing.T, db *gorm.DB) *spaces.SpaceRequest {
	t.Helper()
	request := &spaces.SpaceRequest{
		PreferredSlots: []string{"Saturday morning"},
		Purpose:        "Poetry reading circle",
		Status:         spaces.StatusRequested,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

type recordingSync struct {
	calls []string
}

func (r *recordingSync) SyncSpaceRequestStatus(_ context.Context, _ uuid.UUID, status string, changedBy string) error {
	r.calls = append(r.calls, status+"/"+changedBy)
	return nil
}

func TestUpdateRequest(t *testing.T) {
	db := newTestDB(t)
	service := spaces.NewService(spaces.NewRepository(db))
	sync := &recordingSync{}
	service.SetBookingSync(sync)
	request := seedRequest(t, db)

	notes := "Call scheduled for Tuesday 5pm"
	result, err := service.UpdateRequest(context.Background(), request.ID, "admin@osspace.in",
		spaces.UpdateSpaceRequestRequest{
			Status:     string(spaces.StatusApprovedCallScheduled),
			AdminNotes: &notes,
		})
	require.NoError(t, err)
	assert.Equal(t, spaces.StatusApprovedCallScheduled, result.Status)
	assert.Equal(t, notes, result.AdminNotes)

	var stored spaces.SpaceRequest
	require.NoError(t, db.Where("id = ?", request.ID).First(&stored).Error)
	assert.Equal(t, spaces.StatusApprovedCallScheduled, stored.Status)

	require.Len(t, sync.calls, 1)
	assert.Equal(t, "APPROVED_CALL_SCHEDULED/admin@osspace.in", sync.calls[0])
}

func TestUpdateRequest_InvalidStatus(t *testing.T) {
	db := newTestDB(t)
	service := spaces.NewService(spaces.NewRepository(db))
	request := seedRequest(t, db)

	_, err := service.UpdateRequest(context.Background(), request.ID, "admin@osspace.in",
		spaces.UpdateSpaceRequestRequest{Status: "MAYBE_LATER"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
}

func TestUpdateRequest_NotFound(t *testing.T) {
	db := newTestDB(t)
	service := spaces.NewService(spaces.NewRepository(db))

	_, err := service.UpdateRequest(context.Background(), uuid.New(), "admin@osspace.in",
		spaces.UpdateSpaceRequestRequest{Status: string(spaces.StatusDeclined)})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}
