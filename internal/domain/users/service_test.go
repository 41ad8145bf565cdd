package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cat-api/internal/ports/auth"
)

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if u.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *testRepo) UpdateByID(ctx context.Context, id string, in UpdateInput, now time.Time) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.PasswordHash != nil {
		u.PasswordHash = *in.PasswordHash
	}
	u.UpdatedAt = now
	r.byID[id] = u
	return u, nil
}

func (r *testRepo) DeleteByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	delete(r.byID, id)
	return u, nil
}

func TestService_Create_ForcesUserRoleAndHashes(t *testing.T) {
	svc := NewService(newTestRepo())

	u, err := svc.Create(context.Background(), CreateInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Role nace "user" sin importar lo que mande el cliente (el input ni
	// siquiera tiene campo role)
	if u.Role != auth.RoleUser {
		t.Fatalf("expected role user, got %s", u.Role)
	}

	if u.PasswordHash == "hunter22" || u.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []CreateInput{
		{Username: "a", Email: "a@example.com", Password: "hunter22"},
		{Username: "ada", Email: "", Password: "hunter22"},
		{Username: "ada", Email: "a@example.com", Password: "abc"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_UpdateCurrent_RequiresActor(t *testing.T) {
	svc := NewService(newTestRepo())

	name := "ada"
	if _, err := svc.UpdateCurrent(context.Background(), "", UpdateCurrentInput{Username: &name}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_UpdateCurrent_RehashesPassword(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), CreateInput{
		Username: "ada", Email: "ada@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	pw := "betterpass"
	updated, err := svc.UpdateCurrent(context.Background(), u.ID, UpdateCurrentInput{Password: &pw})
	if err != nil {
		t.Fatalf("UpdateCurrent error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("betterpass")); err != nil {
		t.Fatalf("new hash does not verify: %v", err)
	}
}

func TestService_DeleteCurrent_RemovesAccount(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), CreateInput{
		Username: "ada", Email: "ada@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.DeleteCurrent(context.Background(), u.ID); err != nil {
		t.Fatalf("DeleteCurrent error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

// La proyección pública nunca serializa password ni role.
func TestPublic_RedactsCredentialAndRole(t *testing.T) {
	u := User{
		ID:           "u1",
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "secret-hash",
		Role:         auth.RoleAdmin,
	}

	b, err := json.Marshal(u.ToPublic())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := strings.ToLower(string(b))
	for _, banned := range []string{"password", "role", "secret-hash", "admin"} {
		if strings.Contains(body, banned) {
			t.Fatalf("public projection leaks %q: %s", banned, body)
		}
	}
}
