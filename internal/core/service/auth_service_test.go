package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[uint]*domain.User
	nextID    uint
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[uint]*domain.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	clone := *u
	clone.ID = r.nextID
	clone.CreatedAt = time.Now().UTC()
	clone.UpdatedAt = clone.CreatedAt
	r.byID[clone.ID] = &clone
	r.nextID++
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.byID[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, existing := range r.byID {
		if id != u.ID && existing.Email == u.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// seedUser stores an account with a real bcrypt hash of the given password.
func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := repo.Create(context.Background(), &domain.User{
		Name:         "Seeded",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}

var nopLogger = zerolog.Nop()

func newAuthService(repo *stubUserRepo) *AuthService {
	tokens := NewTokenService(testSecret, time.Hour)
	return NewAuthService(repo, tokens, nopLogger)
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, token, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Hana Sato",
		Email:    "hana@example.com",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned user id")
	}
	if user.Role != domain.RoleCustomer {
		t.Errorf("new accounts must be customers, got %q", user.Role)
	}
	if token == "" {
		t.Error("expected a session token")
	}
	if user.PasswordHash == "supersecret" {
		t.Error("password must not be stored in plain text")
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Hana",
		Email:    "  Hana@Example.COM ",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "hana@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	seedUser(t, repo, "hana@example.com", "whatever", domain.RoleCustomer)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Impostor",
		Email:    "hana@example.com",
		Password: "different",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("db unavailable")
	svc := newAuthService(repo)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Hana",
		Email:    "hana@example.com",
		Password: "supersecret",
	})
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	seeded := seedUser(t, repo, "hana@example.com", "supersecret", domain.RoleCustomer)

	user, token, err := svc.Login(context.Background(), "hana@example.com", "supersecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != seeded.ID {
		t.Errorf("expected user %d, got %d", seeded.ID, user.ID)
	}
	if token == "" {
		t.Error("expected a session token")
	}
}

func TestAuthService_Login_TokenCarriesIdentity(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenService(testSecret, time.Hour)
	svc := NewAuthService(repo, tokens, nopLogger)
	seeded := seedUser(t, repo, "admin@example.com", "supersecret", domain.RoleAdmin)

	_, token, err := svc.Login(context.Background(), "admin@example.com", "supersecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != seeded.ID {
		t.Errorf("token uid: expected %d, got %d", seeded.ID, claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("token role: expected admin, got %q", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	seedUser(t, repo, "hana@example.com", "supersecret", domain.RoleCustomer)

	_, _, err := svc.Login(context.Background(), "hana@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "supersecret")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_NoUserEnumeration(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	seedUser(t, repo, "hana@example.com", "supersecret", domain.RoleCustomer)

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "supersecret")
	_, _, errWrongPw := svc.Login(context.Background(), "hana@example.com", "wrong")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) || !errors.Is(errWrongPw, domain.ErrInvalidCredentials) {
		t.Fatalf("both cases must return ErrInvalidCredentials: %v / %v", errUnknown, errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("error messages must match: %q vs %q", errUnknown, errWrongPw)
	}
}

// ---------------------------------------------------------------------------
// CurrentUser
// ---------------------------------------------------------------------------

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	seeded := seedUser(t, repo, "hana@example.com", "supersecret", domain.RoleCustomer)

	user, err := svc.CurrentUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != seeded.Email {
		t.Errorf("expected %q, got %q", seeded.Email, user.Email)
	}

	if _, err := svc.CurrentUser(context.Background(), 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
