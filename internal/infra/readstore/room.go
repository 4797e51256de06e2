package readstore

import (
	"context"
	"encoding/json"

	"reservas-backend/internal/infra"
	"reservas-backend/internal/infra/db"
	"reservas-backend/internal/pkg/pgconv"
	"reservas-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

const roomViewSQL = `
SELECT id, nome, capacidade, localizacao, tipo, equipamentos, ativa, created_at, updated_at
FROM salas
WHERE id = $1`

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row := r.db.QueryRow(ctx, roomViewSQL, id)
	view, err := scanRoomView(row)
	if err != nil {
		return nil, err
	}
	return view, nil
}

const listRoomsSQL = `
SELECT id, nome, capacidade, localizacao, tipo, equipamentos, ativa, created_at, updated_at
FROM salas
WHERE ($1::bool OR ativa)
  AND ($2::text IS NULL OR lower(tipo) = lower($2))
  AND ($3::int IS NULL OR capacidade >= $3)
  AND ($4::text IS NULL OR EXISTS (
        SELECT 1 FROM jsonb_array_elements_text(equipamentos) item
        WHERE lower(item) = lower($4)
      ))
ORDER BY nome`

func (r *RoomReadStore) List(ctx context.Context, filter queries.RoomFilter) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, listRoomsSQL,
		filter.IncludeInactive, filter.RoomType, filter.MinCapacity, filter.Equipment,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var result []*queries.RoomView
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoomView(row rowScanner) (*queries.RoomView, error) {
	var (
		view      queries.RoomView
		equipRaw  []byte
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID, &view.Name, &view.Capacity, &view.Location, &view.RoomType,
		&equipRaw, &view.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	if len(equipRaw) > 0 {
		if err := json.Unmarshal(equipRaw, &view.Equipment); err != nil {
			return nil, infra.WrapRepoErr("stored equipment list is not valid JSON", err)
		}
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
