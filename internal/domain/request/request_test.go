package request

import (
	"errors"
	"testing"

	"mentorlink/internal/domain/user"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "ACTIVE", "COMPLETED", "REJECTED"} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("expected %s to parse, got %v", s, err)
		}
	}

	if _, err := ParseStatus("CANCELLED"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := ParseStatus("pending"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("status values are case sensitive")
	}
}

func TestTerminal(t *testing.T) {
	if StatusPending.Terminal() || StatusActive.Terminal() {
		t.Fatalf("PENDING and ACTIVE are not terminal")
	}
	if !StatusCompleted.Terminal() || !StatusRejected.Terminal() {
		t.Fatalf("COMPLETED and REJECTED are terminal")
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		to      Status
		actor   user.Role
		allowed bool
	}{
		{StatusActive, user.RoleMentor, true},
		{StatusActive, user.RoleMentee, false},
		{StatusRejected, user.RoleMentor, true},
		{StatusRejected, user.RoleMentee, false},
		{StatusCompleted, user.RoleMentor, true},
		{StatusCompleted, user.RoleMentee, true},
	}

	for _, c := range cases {
		if got := TransitionAllowed(c.to, c.actor); got != c.allowed {
			t.Fatalf("TransitionAllowed(%s, %s) = %v, want %v", c.to, c.actor, got, c.allowed)
		}
	}

	if TransitionTarget(StatusPending) {
		t.Fatalf("PENDING must not be a transition target")
	}
	for _, s := range []Status{StatusActive, StatusCompleted, StatusRejected} {
		if !TransitionTarget(s) {
			t.Fatalf("%s must be a transition target", s)
		}
	}
}
