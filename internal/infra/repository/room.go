package repository

import (
	"context"
	"encoding/json"

	"reservas-backend/internal/domain/room"
	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

const createRoomSQL = `
INSERT INTO salas (id, nome, capacidade, localizacao, tipo, equipamentos, ativa)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (r *RoomRepository) Create(ctx context.Context, tx db.DBTX, rm *room.Room) (uuid.UUID, error) {
	equipment, err := json.Marshal(rm.Equipment())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode equipment list", err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, createRoomSQL,
		rm.ID(), rm.Name(), rm.Capacity(), rm.Location(), rm.RoomType(), equipment, rm.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room", err)
	}
	return id, nil
}

const updateRoomSQL = `
UPDATE salas
SET nome = $2, capacidade = $3, localizacao = $4, tipo = $5, equipamentos = $6, ativa = $7, updated_at = now()
WHERE id = $1`

func (r *RoomRepository) Update(ctx context.Context, tx db.DBTX, rm *room.Room) error {
	equipment, err := json.Marshal(rm.Equipment())
	if err != nil {
		return infra.WrapRepoErr("failed to encode equipment list", err)
	}

	tag, err := tx.Exec(ctx, updateRoomSQL,
		rm.ID(), rm.Name(), rm.Capacity(), rm.Location(), rm.RoomType(), equipment, rm.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

const roomColumns = `id, nome, capacidade, localizacao, tipo, equipamentos, ativa, created_at, updated_at`

const findRoomByIDSQL = `SELECT ` + roomColumns + ` FROM salas WHERE id = $1`

// LockByID fetches the room with FOR UPDATE, serializing concurrent
// bookings on the same room for the rest of the transaction.
const lockRoomByIDSQL = `SELECT ` + roomColumns + ` FROM salas WHERE id = $1 FOR UPDATE`

func (r *RoomRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error) {
	return r.scanRoom(tx.QueryRow(ctx, findRoomByIDSQL, id))
}

func (r *RoomRepository) LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*room.Room, error) {
	return r.scanRoom(tx.QueryRow(ctx, lockRoomByIDSQL, id))
}

const roomNameTakenSQL = `
SELECT EXISTS (
	SELECT 1 FROM salas WHERE nome = $1 AND ($2::uuid IS NULL OR id <> $2)
)`

func (r *RoomRepository) NameTaken(ctx context.Context, tx db.DBTX, name string, excludeID *uuid.UUID) (bool, error) {
	var taken bool
	if err := tx.QueryRow(ctx, roomNameTakenSQL, name, excludeID).Scan(&taken); err != nil {
		return false, infra.WrapRepoErr("failed to check room name", err)
	}
	return taken, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RoomRepository) scanRoom(row rowScanner) (*room.Room, error) {
	var (
		id          uuid.UUID
		nome        string
		capacidade  int
		localizacao string
		tipo        string
		equipRaw    []byte
		ativa       bool
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(&id, &nome, &capacidade, &localizacao, &tipo, &equipRaw, &ativa, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	equipment, err := decodeEquipment(equipRaw)
	if err != nil {
		return nil, err
	}

	return room.ReconstructRoom(
		id, nome, capacidade, localizacao, tipo, equipment, ativa,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func decodeEquipment(raw []byte) (room.Equipment, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, infra.WrapRepoErr("stored equipment list is not valid JSON", err)
	}
	return room.Equipment(items), nil
}
