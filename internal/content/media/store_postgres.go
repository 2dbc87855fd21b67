package media

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dothai/truyenthong/internal/platform/database/schema"
	"github.com/dothai/truyenthong/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListMedia(context context.Context, f Filter, limit, offset int) ([]*Media, int, error) {
	m := schema.ContentMedia

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		m.ID, m.Kind, m.Title, m.FileURL, m.ThumbURL, m.MimeType, m.SizeBytes, m.UploaderID, m.CreatedAt,
		m.Table, m.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, m.Table, m.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if len(f.Kinds) > 0 {
		query += fmt.Sprintf(" AND %s = ANY($1)", m.Kind)
		countQuery += fmt.Sprintf(" AND %s = ANY($1)", m.Kind)
		args = append(args, f.Kinds)
		countArgs = append(countArgs, f.Kinds)
	}

	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", m.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_media")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_media")
	}
	defer rows.Close()

	var items []*Media
	for rows.Next() {
		item := &Media{}
		if err := rows.Scan(
			&item.ID, &item.Kind, &item.Title, &item.FileURL, &item.ThumbURL,
			&item.MimeType, &item.SizeBytes, &item.UploaderID, &item.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_media")
		}
		items = append(items, item)
	}

	return items, total, nil
}

func (repository *PostgresRepository) GetMedia(context context.Context, id string) (*Media, error) {
	m := schema.ContentMedia

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		m.ID, m.Kind, m.Title, m.FileURL, m.ThumbURL, m.MimeType, m.SizeBytes, m.UploaderID, m.CreatedAt,
		m.Table, m.ID, m.DeletedAt,
	)

	item := &Media{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&item.ID, &item.Kind, &item.Title, &item.FileURL, &item.ThumbURL,
		&item.MimeType, &item.SizeBytes, &item.UploaderID, &item.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_media")
	}

	return item, nil
}

func (repository *PostgresRepository) CreateMedia(context context.Context, media *Media) error {
	m := schema.ContentMedia

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING %s
	`,
		m.Table, m.ID, m.Kind, m.Title, m.FileURL, m.ThumbURL, m.MimeType, m.SizeBytes, m.UploaderID, m.CreatedAt,
		m.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		media.ID, media.Kind, media.Title, media.FileURL, media.ThumbURL,
		media.MimeType, media.SizeBytes, media.UploaderID,
	).Scan(&media.CreatedAt)

	return dberr.Wrap(err, "create_media")
}

func (repository *PostgresRepository) DeleteMedia(context context.Context, id string) error {
	m := schema.ContentMedia

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		m.Table, m.DeletedAt, m.ID, m.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_media")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
