package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID          uuid.UUID
	TherapistID uuid.UUID
	PatientID   uuid.UUID
	Rating      float64
	Comment     string
	CreatedAt   time.Time
}

// ReviewDetail decorates a review with the reviewer's display identity.
type ReviewDetail struct {
	Review
	PatientFirstName string
	PatientLastName  string
	PatientImageURL  *string
}
