//go:build unit

package room_test

import (
	"testing"

	"reservas-backend/internal/domain/room"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(room.Room{}),
	cmpopts.EquateEmpty(),
}

func TestNewRoom(t *testing.T) {
	cases := []struct {
		name     string
		roomName string
		capacity int
		location string
		roomType string
		errIs    error
	}{
		{name: "valid room", roomName: "Sala 101", capacity: 10, location: "Bloco A", roomType: "Reunião"},
		{name: "empty name", roomName: "", capacity: 10, location: "Bloco A", roomType: "Reunião", errIs: room.ErrEmptyRoomName},
		{name: "zero capacity", roomName: "Sala 101", capacity: 0, location: "Bloco A", roomType: "Reunião", errIs: room.ErrInvalidCapacity},
		{name: "negative capacity", roomName: "Sala 101", capacity: -3, location: "Bloco A", roomType: "Reunião", errIs: room.ErrInvalidCapacity},
		{name: "empty location", roomName: "Sala 101", capacity: 10, location: " ", roomType: "Reunião", errIs: room.ErrEmptyLocation},
		{name: "empty type", roomName: "Sala 101", capacity: 10, location: "Bloco A", roomType: "", errIs: room.ErrEmptyRoomType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := room.NewRoom(tc.roomName, tc.capacity, tc.location, tc.roomType, nil)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.True(t, r.IsActive())
			assert.Equal(t, tc.roomName, r.Name())
		})
	}
}

func TestRoomDeactivate(t *testing.T) {
	newRoom := func(t *testing.T) *room.Room {
		t.Helper()
		r, err := room.NewRoom("Sala 101", 10, "Bloco A", "Reunião", nil)
		require.NoError(t, err)
		return r
	}

	t.Run("deactivates when no future confirmed reservations", func(t *testing.T) {
		r := newRoom(t)
		require.NoError(t, r.Deactivate(0))
		assert.False(t, r.IsActive())
	})

	t.Run("refuses while future confirmed reservations exist", func(t *testing.T) {
		r := newRoom(t)
		require.ErrorIs(t, r.Deactivate(2), room.ErrRoomHasBookings)
		assert.True(t, r.IsActive())
	})

	t.Run("a deactivated room is no longer bookable", func(t *testing.T) {
		r := newRoom(t)
		require.NoError(t, r.EnsureBookable())

		require.NoError(t, r.Deactivate(0))
		require.ErrorIs(t, r.EnsureBookable(), room.ErrRoomNotBookable)
	})
}

func TestEquipment(t *testing.T) {
	eq := room.NewEquipment([]string{" Projetor ", "", "TV", "  "})

	if diff := cmp.Diff(room.Equipment{"Projetor", "TV"}, eq, cmpOpts...); diff != "" {
		t.Errorf("Equipment mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, eq.Contains("projetor"))
	assert.False(t, eq.Contains("Quadro"))
}
