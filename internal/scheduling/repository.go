package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound  = errors.New("slot not found")
	ErrDuplicateSlot = errors.New("one or more of these time slots already exist")
)

// Repository contains all DB interactions needed by the service.
//
// ClaimSlot and TransitionSlot are the two conditional compare-and-swap
// primitives the whole scheduling core leans on: each is a single UPDATE
// guarded by the current status, returning the updated row or ErrSlotNotFound
// when zero rows matched. Callers never read-then-write slot state.
type Repository interface {
	GetSlotByID(ctx context.Context, id uuid.UUID) (*Slot, error)
	GetSlotDetail(ctx context.Context, id uuid.UUID) (*SlotDetail, error)

	// For overlap validation at creation time
	ListSlotsByProvider(ctx context.Context, providerID uuid.UUID) ([]Slot, error)

	// Batch insert, all-or-nothing. A unique violation on
	// (provider_id, start_time) surfaces as ErrDuplicateSlot.
	CreateSlots(ctx context.Context, slots []Slot) error

	// ClaimSlot books an available slot for a consumer in one conditional
	// update. Zero rows affected means the slot is absent or not available;
	// the service disambiguates with a follow-up read.
	ClaimSlot(ctx context.Context, slotID, consumerID uuid.UUID) (*Slot, error)

	// TransitionSlot moves a slot from one status to another, conditional on
	// the current status.
	TransitionSlot(ctx context.Context, slotID uuid.UUID, from, to SlotStatus) (*Slot, error)

	// Listings
	ListAvailableSlots(ctx context.Context, providerID uuid.UUID) ([]Slot, error)
	ListProviderSchedule(ctx context.Context, providerID uuid.UUID) ([]SlotDetail, error)
	ListConsumerSchedule(ctx context.Context, consumerID uuid.UUID) ([]SlotDetail, error)

	// Reminders. CreateReminder is insert-or-ignore keyed by slot id and
	// reports whether a row was actually created.
	CreateReminder(ctx context.Context, rem Reminder) (bool, error)
	ListRemindersByConsumer(ctx context.Context, consumerID uuid.UUID) ([]Reminder, error)
}
