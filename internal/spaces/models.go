package spaces

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the approval workflow state of a space rental request. It is
// mutated only by admin action; the REQUESTED state is set at creation.
type Status string

const (
	StatusRequested             Status = "REQUESTED"
	StatusApprovedCallScheduled Status = "APPROVED_CALL_SCHEDULED"
	StatusDeclined              Status = "DECLINED"
	StatusConfirmed             Status = "CONFIRMED"
	StatusNotProceeding         Status = "NOT_PROCEEDING"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusApprovedCallScheduled, StatusDeclined,
		StatusConfirmed, StatusNotProceeding:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// SpaceRequest is the negotiation record for a SPACE booking. The Booking
// row references it, not the other way around.
type SpaceRequest struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PreferredSlots []string  `json:"preferred_slots" gorm:"serializer:json;not null"`
	Purpose        string    `json:"purpose" gorm:"size:500"`
	Notes          string    `json:"notes" gorm:"type:text"`
	Status         Status    `json:"status" gorm:"type:varchar(32);default:'REQUESTED';index"`
	AdminNotes     string    `json:"admin_notes" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (SpaceRequest) TableName() string {
	return "space_requests"
}

func (r *SpaceRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type UpdateSpaceRequestRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"adminNotes"`
}

type SpaceRequestResponse struct {
	ID             string    `json:"id"`
	PreferredSlots []string  `json:"preferredSlots"`
	Purpose        string    `json:"purpose"`
	Notes          string    `json:"notes"`
	Status         Status    `json:"status"`
	AdminNotes     string    `json:"adminNotes"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (r *SpaceRequest) ToResponse() SpaceRequestResponse {
	return SpaceRequestResponse{
		ID:             r.ID.String(),
		PreferredSlots: r.PreferredSlots,
		Purpose:        r.Purpose,
		Notes:          r.Notes,
		Status:         r.Status,
		AdminNotes:     r.AdminNotes,
		CreatedAt:      r.CreatedAt,
	}
}
