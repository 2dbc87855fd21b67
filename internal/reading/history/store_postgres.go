package history

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

func (repository *PostgresRepository) RecordRead(context context.Context, event ReadEvent) error {
	r := schema.ReadingReadEvent

	// The composite primary key makes re-reading idempotent.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO NOTHING
	`, r.Table, r.UserID, r.MilestoneID, r.ReadAt, r.UserID, r.MilestoneID)

	if _, err := repository.db.Exec(context, query, event.UserID, event.MilestoneID); err != nil {
		return dberr.Wrap(err, "record_read")
	}
	return nil
}

func (repository *PostgresRepository) HasRead(context context.Context, userID, milestoneID string) (bool, error) {
	r := schema.ReadingReadEvent

	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)
	`, r.Table, r.UserID, r.MilestoneID)

	var exists bool
	if err := repository.db.QueryRow(context, query, userID, milestoneID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_read")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListReaders(context context.Context, milestoneID string, limit, offset int) ([]*Reader, int, error) {
	r := schema.ReadingReadEvent
	u := schema.UserAccount

	total, err := repository.CountReads(context, milestoneID)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT e.%s, u.%s, u.%s, u.%s, e.%s
		FROM %s e
		JOIN %s u ON u.%s = e.%s
		WHERE e.%s = $1 AND u.%s IS NULL
		ORDER BY e.%s DESC
		LIMIT $2 OFFSET $3
	`,
		r.UserID, u.FullName, u.Rank, u.Unit, r.ReadAt,
		r.Table, u.Table, u.ID, r.UserID,
		r.MilestoneID, u.DeletedAt, r.ReadAt,
	)

	rows, err := repository.db.Query(context, query, milestoneID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_readers")
	}
	defer rows.Close()

	var readers []*Reader
	for rows.Next() {
		var reader Reader
		if err := rows.Scan(&reader.UserID, &reader.FullName, &reader.Rank, &reader.Unit, &reader.ReadAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_reader")
		}
		readers = append(readers, &reader)
	}
	return readers, total, rows.Err()
}

func (repository *PostgresRepository) ListHistory(context context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	r := schema.ReadingReadEvent
	m := schema.ContentMilestone

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, r.Table, r.UserID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_history")
	}

	query := fmt.Sprintf(`
		SELECT e.%s, m.%s, m.%s, m.%s, e.%s
		FROM %s e
		JOIN %s m ON m.%s = e.%s
		WHERE e.%s = $1 AND m.%s IS NULL
		ORDER BY e.%s DESC
		LIMIT $2 OFFSET $3
	`,
		r.MilestoneID, m.Title, m.Slug, m.YearLabel, r.ReadAt,
		r.Table, m.Table, m.ID, r.MilestoneID,
		r.UserID, m.DeletedAt, r.ReadAt,
	)

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_history")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.MilestoneID, &entry.Title, &entry.Slug, &entry.YearLabel, &entry.ReadAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_history_entry")
		}
		entries = append(entries, &entry)
	}
	return entries, total, rows.Err()
}

func (repository *PostgresRepository) CountReads(context context.Context, milestoneID string) (int, error) {
	r := schema.ReadingReadEvent

	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, r.Table, r.MilestoneID)

	var total int
	if err := repository.db.QueryRow(context, query, milestoneID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_reads")
	}
	return total, nil
}
