package cats

import (
	"errors"
	"testing"

	"cat-api/internal/ports/auth"
)

func TestAuthorize_DecisionTable(t *testing.T) {
	record := Cat{ID: "c1", OwnerUserID: "u1"}

	owner := &auth.Claims{UserID: "u1", Role: auth.RoleUser}
	stranger := &auth.Claims{UserID: "u2", Role: auth.RoleUser}
	admin := &auth.Claims{UserID: "a1", Role: auth.RoleAdmin}

	cases := []struct {
		name  string
		actor *auth.Claims
		want  error
	}{
		{"no actor", nil, ErrUnauthorized},
		{"empty actor id", &auth.Claims{}, ErrUnauthorized},
		{"owner", owner, nil},
		{"admin on foreign record", admin, nil},
		// mismatch de ownership no revela existencia: not found, no 401
		{"stranger", stranger, ErrNotFound},
	}

	for _, tc := range cases {
		for _, action := range []Action{ActionUpdate, ActionDelete} {
			got := Authorize(tc.actor, record, action)
			if !errors.Is(got, tc.want) && !(got == nil && tc.want == nil) {
				t.Fatalf("%s/%s: expected %v, got %v", tc.name, action, tc.want, got)
			}
		}
	}
}
