//go:build unit

package reservation_test

import (
	"math/rand"
	"testing"
	"time"

	"reservas-backend/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC)

func slot(t *testing.T, startHour, startMin, endHour, endMin int) reservation.TimeSlot {
	t.Helper()
	s, err := reservation.NewTimeSlot(
		base.Add(time.Duration(startHour)*time.Hour+time.Duration(startMin)*time.Minute),
		base.Add(time.Duration(endHour)*time.Hour+time.Duration(endMin)*time.Minute),
	)
	require.NoError(t, err)
	return s
}

func booked(t *testing.T, title string, startHour, startMin, endHour, endMin int) reservation.BookedSlot {
	t.Helper()
	return reservation.BookedSlot{
		ID:     uuid.New(),
		Title:  title,
		Slot:   slot(t, startHour, startMin, endHour, endMin),
		UserID: uuid.New(),
	}
}

func TestValidateNew(t *testing.T) {
	now := base // midnight; all slots below start later the same day

	t.Run("accepts a free slot in an empty calendar", func(t *testing.T) {
		err := reservation.ValidateNew(slot(t, 9, 0, 10, 0), now, nil)
		require.NoError(t, err)
	})

	t.Run("rejects booking into the past regardless of availability", func(t *testing.T) {
		past, err := reservation.NewTimeSlot(
			time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC),
			time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		vErr := reservation.ValidateNew(past, now, nil)
		require.ErrorIs(t, vErr, reservation.ErrPastBooking)
	})

	t.Run("past check runs before conflict check", func(t *testing.T) {
		past, err := reservation.NewTimeSlot(base.Add(-2*time.Hour), base.Add(-1*time.Hour))
		require.NoError(t, err)

		existing := []reservation.BookedSlot{booked(t, "overlapping", 9, 0, 10, 0)}
		vErr := reservation.ValidateNew(past, now, existing)
		require.ErrorIs(t, vErr, reservation.ErrPastBooking)
	})

	t.Run("reports the conflicting reservation", func(t *testing.T) {
		a := booked(t, "Reservation A", 9, 0, 10, 0)

		err := reservation.ValidateNew(slot(t, 9, 30, 10, 30), now, []reservation.BookedSlot{a})
		require.ErrorIs(t, err, reservation.ErrScheduleConflict)

		var conflictErr *reservation.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.Len(t, conflictErr.Conflicts, 1)
		assert.Equal(t, a.ID, conflictErr.Conflicts[0].ID)
		assert.Equal(t, "Reservation A", conflictErr.Conflicts[0].Title)
	})

	t.Run("touching boundary does not conflict", func(t *testing.T) {
		a := booked(t, "Reservation A", 9, 0, 10, 0)

		err := reservation.ValidateNew(slot(t, 10, 0, 11, 0), now, []reservation.BookedSlot{a})
		require.NoError(t, err)
	})
}

func TestFindConflicts(t *testing.T) {
	existing := []reservation.BookedSlot{booked(t, "existing", 11, 0, 12, 0)}

	cases := []struct {
		name      string
		candidate reservation.TimeSlot
		conflicts bool
	}{
		{"candidate ends exactly at existing start", slot(t, 10, 0, 11, 0), false},
		{"candidate starts exactly at existing end", slot(t, 12, 0, 13, 0), false},
		{"one minute of overlap at the front", slot(t, 10, 59, 12, 0), true},
		{"one minute of overlap at the back", slot(t, 11, 59, 13, 0), true},
		{"candidate inside existing", slot(t, 11, 15, 11, 45), true},
		{"candidate covers existing", slot(t, 10, 0, 13, 0), true},
		{"identical interval", slot(t, 11, 0, 12, 0), true},
		{"disjoint before", slot(t, 8, 0, 9, 0), false},
		{"disjoint after", slot(t, 14, 0, 15, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conflicts := reservation.FindConflicts(tc.candidate, existing)
			if tc.conflicts {
				require.NotEmpty(t, conflicts)
			} else {
				require.Empty(t, conflicts)
			}
		})
	}
}

func TestFindConflicts_ReturnsAllOverlaps(t *testing.T) {
	first := booked(t, "first", 9, 0, 10, 0)
	second := booked(t, "second", 10, 30, 11, 30)
	third := booked(t, "third", 13, 0, 14, 0)

	conflicts := reservation.FindConflicts(
		slot(t, 9, 30, 11, 0),
		[]reservation.BookedSlot{first, second, third},
	)

	require.Len(t, conflicts, 2)
	assert.Equal(t, first.ID, conflicts[0].ID)
	assert.Equal(t, second.ID, conflicts[1].ID)
}

func TestValidateReschedule(t *testing.T) {
	now := base

	t.Run("accepts a free future slot", func(t *testing.T) {
		require.NoError(t, reservation.ValidateReschedule(slot(t, 9, 0, 10, 0), now, nil))
	})

	t.Run("rejects moving a reservation into the past", func(t *testing.T) {
		earlier, err := reservation.NewTimeSlot(base.Add(-3*time.Hour), base.Add(-2*time.Hour))
		require.NoError(t, err)

		vErr := reservation.ValidateReschedule(earlier, now, nil)
		require.ErrorIs(t, vErr, reservation.ErrPastBooking)
	})

	t.Run("past check runs before conflict check", func(t *testing.T) {
		earlier, err := reservation.NewTimeSlot(base.Add(-2*time.Hour), base.Add(-1*time.Hour))
		require.NoError(t, err)

		existing := []reservation.BookedSlot{booked(t, "overlapping", 9, 0, 10, 0)}
		vErr := reservation.ValidateReschedule(earlier, now, existing)
		require.ErrorIs(t, vErr, reservation.ErrPastBooking)
	})

	t.Run("still detects conflicts", func(t *testing.T) {
		a := booked(t, "other", 9, 0, 10, 0)
		err := reservation.ValidateReschedule(slot(t, 9, 30, 10, 30), now, []reservation.BookedSlot{a})
		require.ErrorIs(t, err, reservation.ErrScheduleConflict)
	})
}

// Accepting every candidate that ValidateNew clears must keep the room's
// confirmed set pairwise non-overlapping, whatever order requests arrive in.
func TestValidateNew_ScheduleStaysPairwiseDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := base

	for iter := 0; iter < 200; iter++ {
		var accepted []reservation.BookedSlot

		for i := 0; i < 50; i++ {
			startMin := rng.Intn(24 * 60)
			durMin := 1 + rng.Intn(4*60)
			candidate, err := reservation.NewTimeSlot(
				base.Add(time.Duration(startMin)*time.Minute),
				base.Add(time.Duration(startMin+durMin)*time.Minute),
			)
			require.NoError(t, err)

			if reservation.ValidateNew(candidate, now, accepted) != nil {
				continue
			}
			accepted = append(accepted, reservation.BookedSlot{ID: uuid.New(), Slot: candidate})
		}

		for i := range accepted {
			for j := i + 1; j < len(accepted); j++ {
				a, b := accepted[i].Slot, accepted[j].Slot
				require.Falsef(t, a.Overlaps(b),
					"iteration %d: accepted slots overlap: [%v,%v) and [%v,%v)",
					iter, a.Start(), a.End(), b.Start(), b.End())
			}
		}
	}
}
