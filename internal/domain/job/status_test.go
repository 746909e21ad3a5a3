package job

import (
	"errors"
	"testing"
)

func TestParseApplicationStatus(t *testing.T) {
	cases := []struct {
		in   string
		want ApplicationStatus
	}{
		{"awaiting", ApplicationAwaiting},
		{"Reviewing", ApplicationReviewing},
		{"  ACCEPTED ", ApplicationAccepted},
		{"rejected", ApplicationRejected},
	}
	for _, c := range cases {
		got, err := ParseApplicationStatus(c.in)
		if err != nil {
			t.Fatalf("ParseApplicationStatus(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseApplicationStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := ParseApplicationStatus("pending"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]ApplicationStatus{
		{ApplicationAwaiting, ApplicationReviewing},
		{ApplicationReviewing, ApplicationAccepted},
		{ApplicationReviewing, ApplicationRejected},
	}
	for _, p := range allowed {
		if !p[0].CanTransition(p[1]) {
			t.Fatalf("expected %s -> %s to be allowed", p[0], p[1])
		}
	}

	denied := [][2]ApplicationStatus{
		{ApplicationAwaiting, ApplicationAccepted},
		{ApplicationAwaiting, ApplicationRejected},
		{ApplicationAccepted, ApplicationReviewing},
		{ApplicationRejected, ApplicationAwaiting},
		{ApplicationReviewing, ApplicationReviewing},
	}
	for _, p := range denied {
		if p[0].CanTransition(p[1]) {
			t.Fatalf("expected %s -> %s to be denied", p[0], p[1])
		}
	}
}
