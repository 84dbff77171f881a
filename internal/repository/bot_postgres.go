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

// BotRepository defines the interface for bot persistence
type BotRepository interface {
	Create(ctx context.Context, bot entity.Bot) (*entity.Bot, error)
	Get(ctx context.Context, id string) (*entity.Bot, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.BotSummary, error)
	Delete(ctx context.Context, id string) error
}

var _ BotRepository = &BotPostgres{}

// BotPostgres implements BotRepository using PostgreSQL
type BotPostgres struct {
	db *pgxpool.Pool
}

func NewBotPostgres(db *pgxpool.Pool) *BotPostgres {
	return &BotPostgres{db: db}
}

func (r *BotPostgres) Create(ctx context.Context, bot entity.Bot) (*entity.Bot, error) {
	botID, err := toPgUUID(bot.ID)
	if err != nil {
		return nil, fmt.Errorf("parse bot ID: %w", err)
	}
	userID, err := toPgUUID(bot.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO bots (id, user_id, name, description, tone, language, greeting, avatar, brand_guidelines, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, user_id, name, description, tone, language, greeting, avatar, brand_guidelines, instructions, created_at`,
		botID, userID, bot.Name, bot.Description, bot.Tone, bot.Language,
		bot.Greeting, bot.Avatar, bot.BrandGuidelines, bot.Instructions,
	)

	created, err := scanBot(row)
	if err != nil {
		return nil, fmt.Errorf("%w: create bot: %s", entity.ErrStoreWrite, err)
	}

	return created, nil
}

func (r *BotPostgres) Get(ctx context.Context, id string) (*entity.Bot, error) {
	botID, err := toPgUUID(id)
	if err != nil {
		return nil, fmt.Errorf("parse bot ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, description, tone, language, greeting, avatar, brand_guidelines, instructions, created_at
		FROM bots
		WHERE id = $1`,
		botID,
	)

	bot, err := scanBot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrBotNotFound
		}
		return nil, fmt.Errorf("%w: get bot: %s", entity.ErrStoreQuery, err)
	}

	return bot, nil
}

func (r *BotPostgres) ListByUser(ctx context.Context, userID string) ([]*entity.BotSummary, error) {
	uid, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.name, COUNT(r.id)
		FROM bots b
		LEFT JOIN bot_resources r ON r.bot_id = b.id
		WHERE b.user_id = $1
		GROUP BY b.id, b.name
		ORDER BY b.name ASC`,
		uid,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list bots: %s", entity.ErrStoreQuery, err)
	}
	defer rows.Close()

	var bots []*entity.BotSummary
	for rows.Next() {
		var id pgtype.UUID
		summary := &entity.BotSummary{}
		if err := rows.Scan(&id, &summary.Name, &summary.ResourceCount); err != nil {
			return nil, fmt.Errorf("%w: scan bot summary: %s", entity.ErrStoreQuery, err)
		}
		summary.ID = fromPgUUID(id)
		bots = append(bots, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list bots: %s", entity.ErrStoreQuery, err)
	}

	return bots, nil
}

// Delete removes a bot; resources and chunks go with it via FK cascade.
func (r *BotPostgres) Delete(ctx context.Context, id string) error {
	botID, err := toPgUUID(id)
	if err != nil {
		return fmt.Errorf("parse bot ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM bots WHERE id = $1`, botID)
	if err != nil {
		return fmt.Errorf("%w: delete bot: %s", entity.ErrStoreWrite, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrBotNotFound
	}

	return nil
}

func scanBot(row pgx.Row) (*entity.Bot, error) {
	var id, userID pgtype.UUID
	bot := &entity.Bot{}
	err := row.Scan(
		&id, &userID, &bot.Name, &bot.Description, &bot.Tone, &bot.Language,
		&bot.Greeting, &bot.Avatar, &bot.BrandGuidelines, &bot.Instructions, &bot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	bot.ID = fromPgUUID(id)
	bot.UserID = fromPgUUID(userID)
	return bot, nil
}
