package quiz

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

func (repository *PostgresRepository) CreateResult(context context.Context, result *Result) error {
	q := schema.ReadingQuizResult

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s
	`,
		q.Table, q.ID, q.UserID, q.MilestoneID, q.Score, q.Total, q.SubmittedAt,
		q.SubmittedAt,
	)

	err := repository.db.QueryRow(context, query,
		result.ID, result.UserID, result.MilestoneID, result.Score, result.Total,
	).Scan(&result.SubmittedAt)
	if err != nil {
		return dberr.Wrap(err, "create_quiz_result")
	}
	return nil
}

func (repository *PostgresRepository) ListAttempts(context context.Context, userID string, limit, offset int) ([]*Attempt, int, error) {
	q := schema.ReadingQuizResult
	m := schema.ContentMilestone

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, q.Table, q.UserID)

	var total int
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_quiz_attempts")
	}

	query := fmt.Sprintf(`
		SELECT r.%s, m.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s m ON m.%s = r.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		q.MilestoneID, m.Title, q.Score, q.Total, q.SubmittedAt,
		q.Table, m.Table, m.ID, q.MilestoneID,
		q.UserID, q.SubmittedAt,
	)

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_quiz_attempts")
	}
	defer rows.Close()

	var attempts []*Attempt
	for rows.Next() {
		var attempt Attempt
		if err := rows.Scan(&attempt.MilestoneID, &attempt.Title, &attempt.Score, &attempt.Total, &attempt.SubmittedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_quiz_attempt")
		}
		attempts = append(attempts, &attempt)
	}
	return attempts, total, rows.Err()
}

func (repository *PostgresRepository) BestScores(context context.Context, milestoneID string) ([]RankedScore, error) {
	q := schema.ReadingQuizResult

	query := fmt.Sprintf(`
		SELECT %s, MAX(%s)
		FROM %s
		WHERE %s = $1
		GROUP BY %s
		ORDER BY MAX(%s) DESC
	`,
		q.UserID, q.Score,
		q.Table,
		q.MilestoneID,
		q.UserID,
		q.Score,
	)

	rows, err := repository.db.Query(context, query, milestoneID)
	if err != nil {
		return nil, dberr.Wrap(err, "best_scores")
	}
	defer rows.Close()

	var scores []RankedScore
	for rows.Next() {
		var score RankedScore
		if err := rows.Scan(&score.UserID, &score.Score); err != nil {
			return nil, dberr.Wrap(err, "scan_best_score")
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (repository *PostgresRepository) FindIdentities(context context.Context, userIDs []string) (map[string]identity, error) {
	if len(userIDs) == 0 {
		return map[string]identity{}, nil
	}

	u := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1) AND %s IS NULL
	`,
		u.ID, u.FullName, u.Rank, u.Unit,
		u.Table, u.ID, u.DeletedAt,
	)

	rows, err := repository.db.Query(context, query, userIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "find_identities")
	}
	defer rows.Close()

	identities := make(map[string]identity, len(userIDs))
	for rows.Next() {
		var id string
		var who identity
		if err := rows.Scan(&id, &who.FullName, &who.Rank, &who.Unit); err != nil {
			return nil, dberr.Wrap(err, "scan_identity")
		}
		identities[id] = who
	}
	return identities, rows.Err()
}
