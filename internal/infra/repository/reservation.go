package repository

import (
	"context"
	"time"

	"reservas-backend/internal/domain/reservation"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const createReservationSQL = `
INSERT INTO reservas (id, titulo, descricao, data_inicio, data_fim, status, sala_id, usuario_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createReservationSQL,
		res.ID(),
		res.Title().String(),
		res.Description().String(),
		res.TimeSlot().Start(),
		res.TimeSlot().End(),
		res.Status().String(),
		res.RoomID(),
		res.UserID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

const updateReservationSQL = `
UPDATE reservas
SET titulo = $2, descricao = $3, data_inicio = $4, data_fim = $5, status = $6, updated_at = now()
WHERE id = $1`

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx, updateReservationSQL,
		res.ID(),
		res.Title().String(),
		res.Description().String(),
		res.TimeSlot().Start(),
		res.TimeSlot().End(),
		res.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const findReservationByIDSQL = `
SELECT id, titulo, descricao, data_inicio, data_fim, status, sala_id, usuario_id, created_at, updated_at
FROM reservas
WHERE id = $1`

func (r *ReservationRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID     uuid.UUID
		titulo    string
		descricao pgtype.Text
		inicio    time.Time
		fim       time.Time
		status    string
		salaID    uuid.UUID
		usuarioID uuid.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx, findReservationByIDSQL, id).Scan(
		&resID, &titulo, &descricao, &inicio, &fim, &status, &salaID, &usuarioID, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return hydrateReservation(resID, titulo, descricao, inicio, fim, status, salaID, usuarioID, createdAt, updatedAt)
}

const findConfirmedByRoomSQL = `
SELECT id, titulo, data_inicio, data_fim, usuario_id
FROM reservas
WHERE sala_id = $1
  AND status = 'confirmed'
  AND ($2::uuid IS NULL OR id <> $2)
ORDER BY data_inicio`

// FindConfirmedByRoom returns the room's confirmed calendar for conflict
// checking, optionally excluding one reservation (self-exclusion on
// updates). Run it on a transaction holding the room lock before insert.
func (r *ReservationRepository) FindConfirmedByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID, excludeID *uuid.UUID) ([]reservation.BookedSlot, error) {
	rows, err := tx.Query(ctx, findConfirmedByRoomSQL, roomID, excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load confirmed reservations for room", err)
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
			return nil, infra.WrapRepoErr("failed to scan confirmed reservation row", err)
		}
		slot, err := reservation.NewTimeSlot(inicio, fim)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid time range", err)
		}
		booked = append(booked, reservation.BookedSlot{ID: id, Title: titulo, Slot: slot, UserID: usuarioID})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read confirmed reservation rows", err)
	}
	return booked, nil
}

const countFutureConfirmedByRoomSQL = `
SELECT count(*)
FROM reservas
WHERE sala_id = $1 AND status = 'confirmed' AND data_inicio > $2`

func (r *ReservationRepository) CountFutureConfirmedByRoom(ctx context.Context, tx db.DBTX, roomID uuid.UUID, after time.Time) (int, error) {
	var count int
	if err := tx.QueryRow(ctx, countFutureConfirmedByRoomSQL, roomID, after).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count future confirmed reservations", err)
	}
	return count, nil
}

func hydrateReservation(
	id uuid.UUID,
	titulo string,
	descricao pgtype.Text,
	inicio, fim time.Time,
	status string,
	salaID, usuarioID uuid.UUID,
	createdAt, updatedAt pgtype.Timestamptz,
) (*reservation.Reservation, error) {
	title, err := reservation.NewTitle(titulo)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid title", err)
	}
	slot, err := reservation.NewTimeSlot(inicio, fim)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid time range", err)
	}
	st, err := reservation.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid status", err)
	}

	var desc string
	if descricao.Valid {
		desc = descricao.String
	}

	return reservation.ReconstructReservation(
		id,
		title,
		reservation.NewDescription(desc),
		slot,
		st,
		salaID,
		usuarioID,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
