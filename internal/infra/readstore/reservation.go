package readstore

import (
	"context"
	"time"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationViewSQL = `
SELECT r.id, r.titulo, r.descricao, r.data_inicio, r.data_fim, r.status,
       r.sala_id, s.nome AS sala_nome, r.usuario_id, u.username AS usuario_nome,
       r.created_at, r.updated_at
FROM reservas r
JOIN salas s ON s.id = r.sala_id
JOIN users u ON u.id = r.usuario_id
WHERE r.id = $1`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var (
		view      queries.ReservationView
		descricao pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, reservationViewSQL, id).Scan(
		&view.ID, &view.Title, &descricao, &view.StartsAt, &view.EndsAt, &view.Status,
		&view.RoomID, &view.RoomName, &view.UserID, &view.Username,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view.Description = pgconv.StringPtrFromPgtype(descricao)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

// Nil filter fields collapse to always-true predicates, keeping a single
// prepared statement for every filter combination.
const listReservationsSQL = `
SELECT r.id, r.titulo, r.data_inicio, r.data_fim, r.status,
       r.sala_id, s.nome AS sala_nome, r.usuario_id, u.username AS usuario_nome,
       r.created_at
FROM reservas r
JOIN salas s ON s.id = r.sala_id
JOIN users u ON u.id = r.usuario_id
WHERE ($1::uuid IS NULL OR r.usuario_id = $1)
  AND ($2::uuid IS NULL OR r.sala_id = $2)
  AND ($3::text IS NULL OR r.status = $3)
  AND ($4::timestamptz IS NULL OR r.data_fim > $4)
  AND ($5::timestamptz IS NULL OR r.data_inicio < $5)
ORDER BY r.data_inicio DESC, r.id`

func (r *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, listReservationsSQL,
		filter.OwnerID, filter.RoomID, filter.Status, filter.From, filter.Until,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			item      queries.ReservationListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.StartsAt, &item.EndsAt, &item.Status,
			&item.RoomID, &item.RoomName, &item.UserID, &item.Username,
			&createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}

const bookedSlotsSQL = `
SELECT id, titulo, data_inicio, data_fim, usuario_id
FROM reservas
WHERE sala_id = $1
  AND status = 'confirmed'
  AND ($2::uuid IS NULL OR id <> $2)
ORDER BY data_inicio`

// FindBookedSlots feeds the availability check. It reads without a room
// lock, so the answer is advisory; booking commands re-check inside
// their transaction.
func (r *ReservationReadStore) FindBookedSlots(ctx context.Context, roomID uuid.UUID, excludeID *uuid.UUID) ([]reservation.BookedSlot, error) {
	rows, err := r.db.Query(ctx, bookedSlotsSQL, roomID, excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booked slots", err)
	}
	defer rows.Close()

	var booked []reservation.BookedSlot
	for rows.Next() {
		var (
			id        uuid.UUID
			titulo    string
			inicio    time.Time
			fim       time.Time
			usuarioID uuid.UUID
		)
		if err := rows.Scan(&id, &titulo, &inicio, &fim, &usuarioID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked slot row", err)
		}
		slot, err := reservation.NewTimeSlot(inicio, fim)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid time range", err)
		}
		booked = append(booked, reservation.BookedSlot{ID: id, Title: titulo, Slot: slot, UserID: usuarioID})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booked slot rows", err)
	}
	return booked, nil
}
