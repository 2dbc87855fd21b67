package milestone

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

func (repository *PostgresRepository) ListMilestones(context context.Context, f Filter, limit, offset int) ([]*Milestone, int, error) {
	m := schema.ContentMilestone

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		m.ID, m.Title, m.Subtitle, m.Slug, m.YearLabel, m.SortOrder,
		m.Summary, m.CoverURL, m.AudioURL, m.Status, m.CreatedAt, m.UpdatedAt,
		m.Table, m.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, m.Table, m.DeletedAt)

	args := []any{}
	countArgs := []any{}

	appendCondition := func(condition string, value any) {
		placeholder := fmt.Sprintf(condition, len(args)+1)
		query += " AND " + placeholder
		countQuery += " AND " + fmt.Sprintf(condition, len(countArgs)+1)
		args = append(args, value)
		countArgs = append(countArgs, value)
	}

	if f.Status != "" {
		appendCondition(m.Status+" = $%d", f.Status)
	}
	if f.Year != "" {
		appendCondition(m.YearLabel+" ILIKE $%d", "%"+f.Year+"%")
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", m.SortOrder, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_milestones")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_milestones")
	}
	defer rows.Close()

	var milestones []*Milestone
	for rows.Next() {
		item := &Milestone{}
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Subtitle, &item.Slug, &item.YearLabel, &item.SortOrder,
			&item.Summary, &item.CoverURL, &item.AudioURL, &item.Status, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_milestone")
		}
		milestones = append(milestones, item)
	}

	return milestones, total, nil
}

func (repository *PostgresRepository) GetMilestone(context context.Context, id string) (*Milestone, error) {
	m := schema.ContentMilestone
	return repository.getOne(context, fmt.Sprintf("%s = $1", m.ID), id)
}

func (repository *PostgresRepository) GetMilestoneBySlug(context context.Context, slug string) (*Milestone, error) {
	m := schema.ContentMilestone
	return repository.getOne(context, fmt.Sprintf("%s = $1", m.Slug), slug)
}

// getOne loads a full milestone row, story body included.
func (repository *PostgresRepository) getOne(context context.Context, where string, arg any) (*Milestone, error) {
	m := schema.ContentMilestone

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s AND %s IS NULL
	`,
		m.ID, m.Title, m.Subtitle, m.Slug, m.YearLabel, m.SortOrder,
		m.Summary, m.StoryHTML, m.CoverURL, m.AudioURL, m.Status, m.CreatedAt, m.UpdatedAt,
		m.Table, where, m.DeletedAt,
	)

	item := &Milestone{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&item.ID, &item.Title, &item.Subtitle, &item.Slug, &item.YearLabel, &item.SortOrder,
		&item.Summary, &item.StoryHTML, &item.CoverURL, &item.AudioURL, &item.Status,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_milestone")
	}

	return item, nil
}

func (repository *PostgresRepository) CreateMilestone(context context.Context, milestone *Milestone) error {
	m := schema.ContentMilestone

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s, %s
	`,
		m.Table, m.ID, m.Title, m.Subtitle, m.Slug, m.YearLabel, m.SortOrder,
		m.Summary, m.StoryHTML, m.CoverURL, m.AudioURL, m.Status, m.CreatedAt, m.UpdatedAt,
		m.CreatedAt, m.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		milestone.ID, milestone.Title, milestone.Subtitle, milestone.Slug, milestone.YearLabel,
		milestone.SortOrder, milestone.Summary, milestone.StoryHTML, milestone.CoverURL,
		milestone.AudioURL, milestone.Status,
	).Scan(&milestone.CreatedAt, &milestone.UpdatedAt)

	return dberr.Wrap(err, "create_milestone")
}

func (repository *PostgresRepository) UpdateMilestone(context context.Context, milestone *Milestone) error {
	m := schema.ContentMilestone

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		m.Table, m.Title, m.Subtitle, m.Slug, m.YearLabel, m.SortOrder,
		m.Summary, m.StoryHTML, m.CoverURL, m.AudioURL, m.Status, m.UpdatedAt,
		m.ID, m.DeletedAt,
		m.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		milestone.ID, milestone.Title, milestone.Subtitle, milestone.Slug, milestone.YearLabel,
		milestone.SortOrder, milestone.Summary, milestone.StoryHTML, milestone.CoverURL,
		milestone.AudioURL, milestone.Status,
	).Scan(&milestone.UpdatedAt)

	return dberr.Wrap(err, "update_milestone")
}

func (repository *PostgresRepository) DeleteMilestone(context context.Context, id string) error {
	m := schema.ContentMilestone

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		m.Table, m.DeletedAt, m.ID, m.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_milestone")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListQuestions(context context.Context, milestoneID string) ([]Question, error) {
	q := schema.ContentMilestoneQuestion

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		q.ID, q.MilestoneID, q.Prompt, q.Options, q.CorrectIndex, q.SortOrder,
		q.Table, q.MilestoneID, q.SortOrder,
	)

	rows, err := repository.db.Query(context, query, milestoneID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_questions")
	}
	defer rows.Close()

	questions := make([]Question, 0)
	for rows.Next() {
		item := Question{}
		if err := rows.Scan(&item.ID, &item.MilestoneID, &item.Prompt, &item.Options, &item.CorrectIndex, &item.SortOrder); err != nil {
			return nil, dberr.Wrap(err, "scan_question")
		}
		questions = append(questions, item)
	}

	return questions, nil
}

func (repository *PostgresRepository) ReplaceQuestions(context context.Context, milestoneID string, questions []Question) error {
	q := schema.ContentMilestoneQuestion

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_replace_questions")
	}
	defer func() { _ = tx.Rollback(context) }()

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, q.Table, q.MilestoneID)
	if _, err := tx.Exec(context, deleteQuery, milestoneID); err != nil {
		return dberr.Wrap(err, "clear_questions")
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`,
		q.Table, q.ID, q.MilestoneID, q.Prompt, q.Options, q.CorrectIndex, q.SortOrder,
		q.CreatedAt, q.UpdatedAt,
	)

	for _, question := range questions {
		if _, err := tx.Exec(context, insertQuery,
			question.ID, milestoneID, question.Prompt, question.Options,
			question.CorrectIndex, question.SortOrder,
		); err != nil {
			return dberr.Wrap(err, "insert_question")
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_replace_questions")
	}
	return nil
}
