package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/review"
	"github.com/divijg19/Physiolink/internal/scheduling"
	"github.com/divijg19/Physiolink/internal/user"
)

// Auth

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Profile

type ProfileRequest struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Age             *int    `json:"age,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	Condition       *string `json:"condition,omitempty"`
	Goals           *string `json:"goals,omitempty"`
	Specialty       *string `json:"specialty,omitempty"`
	Location        *string `json:"location,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Credentials     *string `json:"credentials,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

type ProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Age             *int      `json:"age,omitempty"`
	Gender          *string   `json:"gender,omitempty"`
	Condition       *string   `json:"condition,omitempty"`
	Goals           *string   `json:"goals,omitempty"`
	Specialty       *string   `json:"specialty,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	Credentials     *string   `json:"credentials,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	Rating          float64   `json:"rating"`
	IsVerified      bool      `json:"is_verified"`
}

func toProfileResponse(p *user.Profile) ProfileResponse {
	return ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Age:             p.Age,
		Gender:          p.Gender,
		Condition:       p.Condition,
		Goals:           p.Goals,
		Specialty:       p.Specialty,
		Location:        p.Location,
		Bio:             p.Bio,
		Credentials:     p.Credentials,
		ProfileImageURL: p.ProfileImageURL,
		Rating:          p.Rating,
		IsVerified:      p.IsVerified,
	}
}

// Therapist discovery

type TherapistSlotResponse struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type TherapistResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	Profile        *ProfileResponse        `json:"profile,omitempty"`
	AvailableSlots int                     `json:"available_slots_count"`
	ReviewCount    int                     `json:"review_count"`
	UpcomingSlots  []TherapistSlotResponse `json:"upcoming_slots,omitempty"`
}

type TherapistPageResponse struct {
	Data       []TherapistResponse `json:"data"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
}

func toTherapistResponse(card *user.TherapistCard) TherapistResponse {
	resp := TherapistResponse{
		ID:             card.UserID,
		Email:          card.Email,
		AvailableSlots: card.AvailableSlots,
		ReviewCount:    card.ReviewCount,
	}
	if card.Profile != nil {
		p := toProfileResponse(card.Profile)
		resp.Profile = &p
	}
	for _, s := range card.UpcomingSlots {
		resp.UpcomingSlots = append(resp.UpcomingSlots, TherapistSlotResponse{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return resp
}

// Scheduling

type SlotInput struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type CreateAvailabilityRequest struct {
	Slots []SlotInput `json:"slots"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type PartyResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Specialty       *string   `json:"specialty,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
}

type SlotResponse struct {
	ID         uuid.UUID      `json:"id"`
	ProviderID uuid.UUID      `json:"provider_id"`
	ConsumerID *uuid.UUID     `json:"consumer_id,omitempty"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	Status     string         `json:"status"`
	Provider   *PartyResponse `json:"provider,omitempty"`
	Consumer   *PartyResponse `json:"consumer,omitempty"`
}

func toSlotResponse(s scheduling.Slot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		ProviderID: s.ProviderID,
		ConsumerID: s.ConsumerID,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Status:     string(s.Status),
	}
}

func toSlotDetailResponse(d *scheduling.SlotDetail) SlotResponse {
	resp := toSlotResponse(d.Slot)
	resp.Provider = toPartyResponse(d.Provider)
	resp.Consumer = toPartyResponse(d.Consumer)
	return resp
}

func toPartyResponse(p *scheduling.Party) *PartyResponse {
	if p == nil {
		return nil
	}
	return &PartyResponse{
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Specialty:       p.Specialty,
		ProfileImageURL: p.ProfileImageURL,
	}
}

type ReminderResponse struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slot_id"`
	ConsumerID uuid.UUID `json:"consumer_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Message    string    `json:"message"`
	RemindAt   time.Time `json:"remind_at"`
	Sent       bool      `json:"sent"`
}

func toReminderResponse(r scheduling.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:         r.ID,
		SlotID:     r.SlotID,
		ConsumerID: r.ConsumerID,
		ProviderID: r.ProviderID,
		Message:    r.Message,
		RemindAt:   r.RemindAt,
		Sent:       r.Sent,
	}
}

// Reviews

type CreateReviewRequest struct {
	TherapistID string  `json:"therapist_id"`
	Rating      float64 `json:"rating"`
	Comment     string  `json:"comment"`
}

type ReviewResponse struct {
	ID               uuid.UUID `json:"id"`
	TherapistID      uuid.UUID `json:"therapist_id"`
	PatientID        uuid.UUID `json:"patient_id"`
	Rating           float64   `json:"rating"`
	Comment          string    `json:"comment,omitempty"`
	PatientFirstName string    `json:"patient_first_name"`
	PatientLastName  string    `json:"patient_last_name"`
	PatientImageURL  *string   `json:"patient_image_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func toReviewResponse(d *review.ReviewDetail) ReviewResponse {
	return ReviewResponse{
		ID:               d.ID,
		TherapistID:      d.TherapistID,
		PatientID:        d.PatientID,
		Rating:           d.Rating,
		Comment:          d.Comment,
		PatientFirstName: d.PatientFirstName,
		PatientLastName:  d.PatientLastName,
		PatientImageURL:  d.PatientImageURL,
		CreatedAt:        d.CreatedAt,
	}
}

type MessageResponse struct {
	Msg string `json:"msg"`
}
