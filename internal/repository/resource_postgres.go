package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botbee/botbee-backend/internal/entity"
)

// ResourceRepository defines the interface for knowledge resource persistence.
// Resource and chunk writes are one logical unit: a resource row never exists
// without its chunk rows.
type ResourceRepository interface {
	CreateWithChunks(ctx context.Context, resource entity.Resource, chunks []entity.Chunk) (*entity.Resource, error)
	Get(ctx context.Context, id string) (*entity.Resource, error)
	List(ctx context.Context, req *entity.ListResourcesRequest) ([]*entity.ResourceListItem, int, error)
	Delete(ctx context.Context, id string) error
}

var _ ResourceRepository = &ResourcePostgres{}

// ResourcePostgres implements ResourceRepository using PostgreSQL
type ResourcePostgres struct {
	db *pgxpool.Pool
}

func NewResourcePostgres(db *pgxpool.Pool) *ResourcePostgres {
	return &ResourcePostgres{db: db}
}

// CreateWithChunks inserts the resource row and its chunk batch in one
// transaction, so a failed chunk write leaves no dangling resource.
func (r *ResourcePostgres) CreateWithChunks(ctx context.Context, resource entity.Resource, chunks []entity.Chunk) (*entity.Resource, error) {
	resourceID, err := toPgUUID(resource.ID)
	if err != nil {
		return nil, fmt.Errorf("parse resource ID: %w", err)
	}
	botID, err := toPgUUID(resource.BotID)
	if err != nil {
		return nil, fmt.Errorf("parse bot ID: %w", err)
	}
	userID, err := toPgUUID(resource.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %s", entity.ErrStoreWrite, err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO bot_resources (id, bot_id, user_id, name, description, kind, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		resourceID, botID, userID, resource.Name, resource.Description, resource.Kind, resource.FileSize,
	)
	if err := row.Scan(&resource.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: insert resource: %s", entity.ErrStoreWrite, err)
	}

	batch := &pgx.Batch{}
	for _, chunk := range chunks {
		chunkID, err := toPgUUID(chunk.ID)
		if err != nil {
			return nil, fmt.Errorf("parse chunk ID: %w", err)
		}
		batch.Queue(`
			INSERT INTO bot_resource_chunks (id, resource_id, content, embedding)
			VALUES ($1, $2, $3, $4::vector)`,
			chunkID, resourceID, chunk.Content, encodeVector(chunk.Embedding),
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range chunks {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, fmt.Errorf("%w: insert chunks: %s", entity.ErrStoreWrite, err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("%w: insert chunks: %s", entity.ErrStoreWrite, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %s", entity.ErrStoreWrite, err)
	}

	return &resource, nil
}

func (r *ResourcePostgres) Get(ctx context.Context, id string) (*entity.Resource, error) {
	resourceID, err := toPgUUID(id)
	if err != nil {
		return nil, fmt.Errorf("parse resource ID: %w", err)
	}

	var rid, botID, userID pgtype.UUID
	resource := &entity.Resource{}
	err = r.db.QueryRow(ctx, `
		SELECT id, bot_id, user_id, name, description, kind, file_size, created_at
		FROM bot_resources
		WHERE id = $1`,
		resourceID,
	).Scan(&rid, &botID, &userID, &resource.Name, &resource.Description, &resource.Kind, &resource.FileSize, &resource.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrResourceNotFound
		}
		return nil, fmt.Errorf("%w: get resource: %s", entity.ErrStoreQuery, err)
	}

	resource.ID = fromPgUUID(rid)
	resource.BotID = fromPgUUID(botID)
	resource.UserID = fromPgUUID(userID)
	return resource, nil
}

// List returns one page of the caller's resources joined with bot names,
// optionally filtered by a case-insensitive name match, plus the total count.
func (r *ResourcePostgres) List(ctx context.Context, req *entity.ListResourcesRequest) ([]*entity.ResourceListItem, int, error) {
	userID, err := toPgUUID(req.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("parse user ID: %w", err)
	}

	pattern := "%" + req.Query + "%"

	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.bot_id, b.name, r.name, r.kind, r.file_size, r.created_at
		FROM bot_resources r
		LEFT JOIN bots b ON b.id = r.bot_id
		WHERE r.user_id = $1 AND ($2 = '' OR r.name ILIKE $3)
		ORDER BY r.created_at DESC
		LIMIT $4 OFFSET $5`,
		userID, req.Query, pattern, req.Limit, req.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list resources: %s", entity.ErrStoreQuery, err)
	}
	defer rows.Close()

	var items []*entity.ResourceListItem
	for rows.Next() {
		var id, botID pgtype.UUID
		var botName *string
		item := &entity.ResourceListItem{}
		if err := rows.Scan(&id, &botID, &botName, &item.Name, &item.Kind, &item.FileSize, &item.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: scan resource: %s", entity.ErrStoreQuery, err)
		}
		item.ID = fromPgUUID(id)
		item.BotID = fromPgUUID(botID)
		if botName != nil {
			item.BotName = *botName
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: list resources: %s", entity.ErrStoreQuery, err)
	}

	var total int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(id)
		FROM bot_resources
		WHERE user_id = $1 AND ($2 = '' OR name ILIKE $3)`,
		userID, req.Query, pattern,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count resources: %s", entity.ErrStoreQuery, err)
	}

	return items, total, nil
}

// Delete removes the resource's chunks and then the resource itself in one
// transaction, so no orphaned vectors survive the delete.
func (r *ResourcePostgres) Delete(ctx context.Context, id string) error {
	resourceID, err := toPgUUID(id)
	if err != nil {
		return fmt.Errorf("parse resource ID: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %s", entity.ErrStoreWrite, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bot_resource_chunks WHERE resource_id = $1`, resourceID); err != nil {
		return fmt.Errorf("%w: delete chunks: %s", entity.ErrStoreWrite, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM bot_resources WHERE id = $1`, resourceID)
	if err != nil {
		return fmt.Errorf("%w: delete resource: %s", entity.ErrStoreWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrResourceNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %s", entity.ErrStoreWrite, err)
	}

	return nil
}
