package article

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

func (repository *PostgresRepository) ListArticles(context context.Context, f Filter, limit, offset int) ([]*Article, int, error) {
	a := schema.ContentArticle

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		a.ID, a.Title, a.Slug, a.Category, a.Summary, a.CoverURL,
		a.Status, a.ViewCount, a.AuthorID, a.PublishedAt, a.CreatedAt, a.UpdatedAt,
		a.Table, a.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, a.Table, a.DeletedAt)

	args := []any{}
	countArgs := []any{}

	appendCondition := func(condition string, value any) {
		placeholder := fmt.Sprintf("$%d", len(args)+1)
		query += fmt.Sprintf(" AND %s %s", condition, placeholder)
		countQuery += fmt.Sprintf(" AND %s %s", condition, placeholder)
		args = append(args, value)
		countArgs = append(countArgs, value)
	}

	if f.Category != "" {
		appendCondition(a.Category+" =", f.Category)
	}
	if f.Status != "" {
		appendCondition(a.Status+" =", f.Status)
	}
	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		placeholder := fmt.Sprintf("$%d", len(args)+1)
		clause := fmt.Sprintf(" AND (%s ILIKE %s OR %s ILIKE %s)", a.Title, placeholder, a.Summary, placeholder)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s DESC NULLS LAST, %s DESC LIMIT $%d OFFSET $%d",
		a.PublishedAt, a.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_articles")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles")
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		item := &Article{}
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Slug, &item.Category, &item.Summary, &item.CoverURL,
			&item.Status, &item.ViewCount, &item.AuthorID, &item.PublishedAt, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, item)
	}

	return articles, total, nil
}

func (repository *PostgresRepository) GetArticle(context context.Context, id string) (*Article, error) {
	a := schema.ContentArticle
	return repository.getOne(context, fmt.Sprintf("%s = $1", a.ID), id)
}

func (repository *PostgresRepository) GetArticleBySlug(context context.Context, slug string) (*Article, error) {
	a := schema.ContentArticle
	return repository.getOne(context, fmt.Sprintf("%s = $1", a.Slug), slug)
}

func (repository *PostgresRepository) getOne(context context.Context, where string, arg any) (*Article, error) {
	a := schema.ContentArticle

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s AND %s IS NULL
	`,
		a.ID, a.Title, a.Slug, a.Category, a.Summary, a.BodyHTML, a.CoverURL,
		a.Status, a.ViewCount, a.AuthorID, a.PublishedAt, a.CreatedAt, a.UpdatedAt,
		a.Table, where, a.DeletedAt,
	)

	item := &Article{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&item.ID, &item.Title, &item.Slug, &item.Category, &item.Summary, &item.BodyHTML,
		&item.CoverURL, &item.Status, &item.ViewCount, &item.AuthorID, &item.PublishedAt,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_article")
	}

	return item, nil
}

func (repository *PostgresRepository) CreateArticle(context context.Context, article *Article) error {
	a := schema.ContentArticle

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s
	`,
		a.Table, a.ID, a.Title, a.Slug, a.Category, a.Summary, a.BodyHTML,
		a.CoverURL, a.Status, a.AuthorID, a.PublishedAt, a.CreatedAt, a.UpdatedAt,
		a.CreatedAt, a.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		article.ID, article.Title, article.Slug, article.Category, article.Summary,
		article.BodyHTML, article.CoverURL, article.Status, article.AuthorID, article.PublishedAt,
	).Scan(&article.CreatedAt, &article.UpdatedAt)

	return dberr.Wrap(err, "create_article")
}

func (repository *PostgresRepository) UpdateArticle(context context.Context, article *Article) error {
	a := schema.ContentArticle

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		a.Table, a.Title, a.Slug, a.Category, a.Summary, a.BodyHTML, a.CoverURL, a.UpdatedAt,
		a.ID, a.DeletedAt,
		a.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		article.ID, article.Title, article.Slug, article.Category,
		article.Summary, article.BodyHTML, article.CoverURL,
	).Scan(&article.UpdatedAt)

	return dberr.Wrap(err, "update_article")
}

func (repository *PostgresRepository) SetStatus(context context.Context, id, status string) error {
	a := schema.ContentArticle

	// publishedat is stamped the first time an article goes live.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2,
		    %s = CASE WHEN $2 = '%s' AND %s IS NULL THEN NOW() ELSE %s END,
		    %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		a.Table, a.Status,
		a.PublishedAt, StatusPublished, a.PublishedAt, a.PublishedAt,
		a.UpdatedAt,
		a.ID, a.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id, status)
	if err != nil {
		return dberr.Wrap(err, "set_article_status")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) IncrementViewCount(context context.Context, id string) error {
	a := schema.ContentArticle

	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 AND %s IS NULL`,
		a.Table, a.ViewCount, a.ViewCount, a.ID, a.DeletedAt,
	)

	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "increment_view_count")
}

func (repository *PostgresRepository) DeleteArticle(context context.Context, id string) error {
	a := schema.ContentArticle

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		a.Table, a.DeletedAt, a.ID, a.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_article")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
