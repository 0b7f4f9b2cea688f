package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/auth"
)

type fakeRepo struct {
	users    map[uuid.UUID]User
	profiles map[uuid.UUID]Profile // keyed by user id

	lastFilter TherapistFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uuid.UUID]User),
		profiles: make(map[uuid.UUID]Profile),
	}
}

func (f *fakeRepo) CreateUser(ctx context.Context, u User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (f *fakeRepo) UpsertProfile(ctx context.Context, p Profile) (*Profile, error) {
	if existing, ok := f.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.Rating = existing.Rating
		p.IsVerified = existing.IsVerified
	}
	f.profiles[p.UserID] = p
	cp := p
	return &cp, nil
}

func (f *fakeRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeRepo) SetProfileRating(ctx context.Context, userID uuid.UUID, rating float64) error {
	p, ok := f.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.Rating = rating
	f.profiles[userID] = p
	return nil
}

func (f *fakeRepo) ListTherapists(ctx context.Context, filter TherapistFilter) (*TherapistPage, error) {
	f.lastFilter = filter
	return &TherapistPage{Page: filter.Page}, nil
}

func (f *fakeRepo) GetTherapistByID(ctx context.Context, id uuid.UUID, date string) (*TherapistCard, error) {
	u, ok := f.users[id]
	if !ok || u.Role != RoleTherapist {
		return nil, ErrTherapistNotFound
	}
	return &TherapistCard{UserID: id, Email: u.Email}, nil
}

func newTestService(repo Repository) (*Service, *auth.TokenIssuer) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewService(repo, tokens), tokens
}

func TestRegister(t *testing.T) {
	t.Run("creates user and issues a verifiable token", func(t *testing.T) {
		repo := newFakeRepo()
		svc, tokens := newTestService(repo)

		u, token, err := svc.Register(context.Background(), "Anna@Example.com", "s3cret", RolePatient)
		if err != nil {
			t.Fatalf("Register() = %v, want nil", err)
		}
		if u.Email != "anna@example.com" {
			t.Errorf("email = %q, want lowercased anna@example.com", u.Email)
		}
		if u.Role != RolePatient {
			t.Errorf("role = %q, want patient", u.Role)
		}
		if u.PasswordHash == "s3cret" {
			t.Error("password stored in plain text")
		}
		if !auth.CheckPassword("s3cret", u.PasswordHash) {
			t.Error("stored hash does not verify the original password")
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			t.Fatalf("Verify(issued token) = %v", err)
		}
		if claims.UserID != u.ID.String() || claims.Role != RolePatient {
			t.Errorf("claims = %s/%s, want %s/patient", claims.UserID, claims.Role, u.ID)
		}
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		svc, _ := newTestService(newFakeRepo())
		for _, role := range []string{RoleAdmin, "doctor", ""} {
			if _, _, err := svc.Register(context.Background(), "a@b.com", "pw", role); !errors.Is(err, ErrInvalidRole) {
				t.Errorf("Register(role=%q) = %v, want ErrInvalidRole", role, err)
			}
		}
	})

	t.Run("rejects empty credentials", func(t *testing.T) {
		svc, _ := newTestService(newFakeRepo())
		if _, _, err := svc.Register(context.Background(), "", "pw", RolePatient); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Register(empty email) = %v, want ErrInvalidCredentials", err)
		}
		if _, _, err := svc.Register(context.Background(), "a@b.com", "", RolePatient); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Register(empty password) = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeRepo()
		svc, _ := newTestService(repo)

		if _, _, err := svc.Register(context.Background(), "a@b.com", "pw", RolePatient); err != nil {
			t.Fatalf("first Register() = %v", err)
		}
		if _, _, err := svc.Register(context.Background(), "A@B.com", "pw2", RoleTherapist); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("second Register() = %v, want ErrEmailTaken", err)
		}
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc, tokens := newTestService(repo)

	registered, _, err := svc.Register(context.Background(), "anna@example.com", "s3cret", RoleTherapist)
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		u, token, err := svc.Login(context.Background(), "Anna@Example.com ", "s3cret")
		if err != nil {
			t.Fatalf("Login() = %v, want nil", err)
		}
		if u.ID != registered.ID {
			t.Errorf("user id = %s, want %s", u.ID, registered.ID)
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			t.Fatalf("Verify(login token) = %v", err)
		}
		if claims.Role != RoleTherapist {
			t.Errorf("token role = %q, want pt", claims.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "anna@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email gives the same error as a wrong password", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login() = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestSaveProfile(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	userID := uuid.New()

	t.Run("requires a name", func(t *testing.T) {
		_, err := svc.SaveProfile(context.Background(), userID, ProfileInput{FirstName: "  ", LastName: "Lee"})
		if !errors.Is(err, ErrNameRequired) {
			t.Fatalf("SaveProfile() = %v, want ErrNameRequired", err)
		}
	})

	t.Run("trims names and upserts in place", func(t *testing.T) {
		sportsRehab := "Sports Rehab"
		postSurgery := "Post-Surgery"
		p, err := svc.SaveProfile(context.Background(), userID, ProfileInput{FirstName: " Anna ", LastName: "Lee", Specialty: &sportsRehab})
		if err != nil {
			t.Fatalf("SaveProfile() = %v", err)
		}
		if p.FirstName != "Anna" {
			t.Errorf("first name = %q, want trimmed Anna", p.FirstName)
		}

		updated, err := svc.SaveProfile(context.Background(), userID, ProfileInput{FirstName: "Anna", LastName: "Lee", Specialty: &postSurgery})
		if err != nil {
			t.Fatalf("second SaveProfile() = %v", err)
		}
		if updated.ID != p.ID {
			t.Errorf("upsert created a new profile %s, want update of %s", updated.ID, p.ID)
		}
		if updated.Specialty == nil || *updated.Specialty != "Post-Surgery" {
			t.Errorf("specialty = %v, want Post-Surgery", updated.Specialty)
		}
	})
}

func TestListTherapistsPagination(t *testing.T) {
	tests := []struct {
		name      string
		in        TherapistFilter
		wantPage  int
		wantLimit int
	}{
		{"defaults", TherapistFilter{}, 1, 20},
		{"negative page clamps to first", TherapistFilter{Page: -3, Limit: 10}, 1, 10},
		{"limit capped", TherapistFilter{Page: 2, Limit: 500}, 2, 100},
		{"explicit values pass through", TherapistFilter{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc, _ := newTestService(repo)

			if _, err := svc.ListTherapists(context.Background(), tt.in); err != nil {
				t.Fatalf("ListTherapists() = %v", err)
			}
			if repo.lastFilter.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", repo.lastFilter.Page, tt.wantPage)
			}
			if repo.lastFilter.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", repo.lastFilter.Limit, tt.wantLimit)
			}
		})
	}
}

func TestGetTherapist(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	therapist, _, err := svc.Register(context.Background(), "pt@example.com", "pw", RoleTherapist)
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}
	patient, _, err := svc.Register(context.Background(), "patient@example.com", "pw", RolePatient)
	if err != nil {
		t.Fatalf("Register() = %v", err)
	}

	card, err := svc.GetTherapist(context.Background(), therapist.ID, "")
	if err != nil {
		t.Fatalf("GetTherapist() = %v", err)
	}
	if card.UserID != therapist.ID {
		t.Errorf("card user = %s, want %s", card.UserID, therapist.ID)
	}

	if _, err := svc.GetTherapist(context.Background(), patient.ID, ""); !errors.Is(err, ErrTherapistNotFound) {
		t.Fatalf("GetTherapist(patient id) = %v, want ErrTherapistNotFound", err)
	}
}
