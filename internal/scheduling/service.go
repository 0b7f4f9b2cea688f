package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/config"
	redisclient "github.com/divijg19/Physiolink/internal/redis"
)

var (
	ErrNoSlots           = errors.New("at least one slot is required")
	ErrSlotUnavailable   = errors.New("this appointment slot is no longer available")
	ErrNotSlotOwner      = errors.New("only the provider who owns the slot can change its status")
	ErrInvalidStatus     = errors.New("status must be confirmed or rejected")
	ErrInvalidTransition = errors.New("slot is not in a state that allows this transition")
	ErrCreateInProgress  = errors.New("availability for this provider is being updated, please retry")
)

type Service struct {
	repo   Repository
	locker redisclient.Locker
	cfg    config.Config
}

func NewService(repo Repository, locker redisclient.Locker, cfg config.Config) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		cfg:    cfg,
	}
}

// CreateAvailability validates and persists a batch of open slots for a
// provider. The whole batch is checked before anything is written; the first
// invalid or overlapping candidate aborts with no partial insert. The
// provider lock keeps two concurrent creates for the same provider from
// interleaving between the overlap check and the insert; the unique index on
// (provider_id, start_time) backstops the lock and surfaces as
// ErrDuplicateSlot.
func (s *Service) CreateAvailability(ctx context.Context, providerID uuid.UUID, intervals []Interval) error {
	if len(intervals) == 0 {
		return ErrNoSlots
	}

	err := s.locker.WithProviderLock(ctx, providerID, func(lockCtx context.Context) error {
		existing, err := s.repo.ListSlotsByProvider(lockCtx, providerID)
		if err != nil {
			return fmt.Errorf("load provider slots: %w", err)
		}

		if err := ValidateIntervals(intervals, existing); err != nil {
			return err
		}

		slots := make([]Slot, 0, len(intervals))
		for _, iv := range intervals {
			slots = append(slots, Slot{
				ID:         uuid.New(),
				ProviderID: providerID,
				StartTime:  iv.StartTime,
				EndTime:    iv.EndTime,
				Status:     StatusAvailable,
			})
		}

		return s.repo.CreateSlots(lockCtx, slots)
	})

	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return ErrCreateInProgress
	}
	return err
}

// BookSlot claims an available slot for a consumer. The claim is a single
// conditional update, so under concurrent calls for the same slot exactly one
// wins. When the claim matches nothing, a follow-up read picks the right
// error kind; that read is only in the failure path and does not weaken the
// claim itself.
func (s *Service) BookSlot(ctx context.Context, slotID, consumerID uuid.UUID) (*SlotDetail, error) {
	claimed, err := s.repo.ClaimSlot(ctx, slotID, consumerID)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			if _, getErr := s.repo.GetSlotByID(ctx, slotID); getErr != nil {
				if errors.Is(getErr, ErrSlotNotFound) {
					return nil, ErrSlotNotFound
				}
				return nil, fmt.Errorf("check slot after failed claim: %w", getErr)
			}
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("claim slot: %w", err)
	}

	detail, err := s.repo.GetSlotDetail(ctx, claimed.ID)
	if err != nil {
		return nil, fmt.Errorf("load booked slot: %w", err)
	}
	return detail, nil
}

// UpdateStatus lets the owning provider confirm or reject a booked slot. The
// write goes through the same conditional primitive as booking, guarded on
// the current status being booked, so a racing update cannot double-apply.
// Confirmation schedules a reminder as a best-effort side effect: a failure
// there is logged and never fails the transition.
func (s *Service) UpdateStatus(ctx context.Context, slotID, callerID uuid.UUID, target SlotStatus) (*SlotDetail, error) {
	if target != StatusConfirmed && target != StatusRejected {
		return nil, ErrInvalidStatus
	}

	slot, err := s.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load slot: %w", err)
	}

	if slot.ProviderID != callerID {
		return nil, ErrNotSlotOwner
	}

	if !CanTransition(slot.Status, target) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.TransitionSlot(ctx, slotID, StatusBooked, target)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			// The slot moved out of booked between the load and the update.
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("transition slot: %w", err)
	}

	if updated.Status == StatusConfirmed {
		s.scheduleReminder(ctx, updated)
	}

	detail, err := s.repo.GetSlotDetail(ctx, updated.ID)
	if err != nil {
		return nil, fmt.Errorf("load updated slot: %w", err)
	}
	return detail, nil
}

// scheduleReminder derives a reminder from a confirmed slot. Fire-and-forget,
// log-only: the confirm has already happened and stands regardless of what
// happens here.
func (s *Service) scheduleReminder(ctx context.Context, slot *Slot) {
	if slot.ConsumerID == nil {
		log.Printf("slot %s confirmed without a consumer, skipping reminder", slot.ID)
		return
	}

	rem := Reminder{
		ID:         uuid.New(),
		SlotID:     slot.ID,
		ConsumerID: *slot.ConsumerID,
		ProviderID: slot.ProviderID,
		Message:    fmt.Sprintf("Reminder: appointment on %s", slot.StartTime.Format(time.RFC1123)),
		RemindAt:   slot.StartTime.Add(-s.cfg.ReminderLead),
	}

	created, err := s.repo.CreateReminder(ctx, rem)
	if err != nil {
		log.Printf("failed to create reminder for slot %s: %v", slot.ID, err)
		return
	}
	if !created {
		log.Printf("reminder for slot %s already exists, skipping", slot.ID)
	}
}

// ListAvailability returns a provider's open slots, earliest first.
func (s *Service) ListAvailability(ctx context.Context, providerID uuid.UUID) ([]Slot, error) {
	slots, err := s.repo.ListAvailableSlots(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	return slots, nil
}

// ListSchedule returns the caller's appointments. Providers see every slot
// they own regardless of status; anyone else sees only the slots they booked.
func (s *Service) ListSchedule(ctx context.Context, callerID uuid.UUID, role string) ([]SlotDetail, error) {
	var (
		details []SlotDetail
		err     error
	)
	if role == "pt" {
		details, err = s.repo.ListProviderSchedule(ctx, callerID)
	} else {
		details, err = s.repo.ListConsumerSchedule(ctx, callerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return details, nil
}

// ListReminders returns the consumer's reminders, soonest first.
func (s *Service) ListReminders(ctx context.Context, consumerID uuid.UUID) ([]Reminder, error) {
	reminders, err := s.repo.ListRemindersByConsumer(ctx, consumerID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}
