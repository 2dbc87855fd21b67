package article

import (
	"context"
	"log/slog"

	"github.com/dothai/truyenthong/internal/platform/validate"
	"github.com/dothai/truyenthong/pkg/pointer"
	"github.com/dothai/truyenthong/pkg/slug"
	"github.com/dothai/truyenthong/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListArticles(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {
	return service.repo.ListArticles(context, filter, limit, offset)
}

func (service *Service) GetArticle(context context.Context, id string) (*Article, error) {
	return service.repo.GetArticle(context, id)
}

// ReadArticleBySlug resolves an article for display and bumps its view count.
// The counter update is best-effort: a failed bump never blocks the read.
func (service *Service) ReadArticleBySlug(context context.Context, articleSlug string) (*Article, error) {
	item, err := service.repo.GetArticleBySlug(context, articleSlug)
	if err != nil {
		return nil, err
	}

	if err := service.repo.IncrementViewCount(context, item.ID); err != nil {
		service.logger.Warn("article_view_count_failed",
			slog.String("article_id", item.ID),
			slog.Any("error", err),
		)
	} else {
		item.ViewCount++
	}

	return item, nil
}

func (service *Service) CreateArticle(context context.Context, article *Article) error {
	if err := service.validateArticle(article); err != nil {
		return err
	}

	article.ID = uuidv7.New()
	if article.Slug == "" {
		article.Slug = slug.From(article.Title)
	}
	if article.Status == "" {
		article.Status = StatusDraft
	}

	if err := service.repo.CreateArticle(context, article); err != nil {
		return err
	}

	service.logger.Info("article_created",
		slog.String("article_id", article.ID),
		slog.String("title", article.Title),
	)
	return nil
}

// UpdateArticle merges a partial update over the stored row. Status is not
// part of the payload; publishing has its own endpoints.
func (service *Service) UpdateArticle(context context.Context, id string, input UpdateInput) (*Article, error) {
	item, err := service.repo.GetArticle(context, id)
	if err != nil {
		return nil, err
	}

	item.Title = pointer.Fallback(input.Title, item.Title)
	item.Slug = pointer.Fallback(input.Slug, item.Slug)
	item.Category = pointer.Fallback(input.Category, item.Category)
	item.Summary = pointer.Fallback(input.Summary, item.Summary)
	item.BodyHTML = pointer.Fallback(input.BodyHTML, item.BodyHTML)
	item.CoverURL = pointer.Fallback(input.CoverURL, item.CoverURL)

	if err := service.validateArticle(item); err != nil {
		return nil, err
	}

	if item.Slug == "" {
		item.Slug = slug.From(item.Title)
	}

	if err := service.repo.UpdateArticle(context, item); err != nil {
		return nil, err
	}

	service.logger.Info("article_updated", slog.String("article_id", id))
	return item, nil
}

// Publish flips an article to the published state, stamping publishedat the
// first time around.
func (service *Service) Publish(context context.Context, id string) error {
	if err := service.repo.SetStatus(context, id, StatusPublished); err != nil {
		return err
	}
	service.logger.Info("article_published", slog.String("article_id", id))
	return nil
}

// Unpublish returns an article to draft without losing its first publish date.
func (service *Service) Unpublish(context context.Context, id string) error {
	if err := service.repo.SetStatus(context, id, StatusDraft); err != nil {
		return err
	}
	service.logger.Info("article_unpublished", slog.String("article_id", id))
	return nil
}

func (service *Service) DeleteArticle(context context.Context, id string) error {
	if err := service.repo.DeleteArticle(context, id); err != nil {
		return err
	}

	service.logger.Warn("article_deleted", slog.String("article_id", id))
	return nil
}

func (service *Service) validateArticle(article *Article) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, article.Title).MaxLen(FieldTitle, article.Title, 300).
		Required(FieldCategory, article.Category).
		OneOf(FieldCategory, article.Category, CategoryNews, CategoryActivity, CategoryTradition).
		Required(FieldBody, article.BodyHTML)

	if article.CoverURL != "" {
		validator.URL(FieldCoverURL, article.CoverURL)
	}
	if article.Status != "" {
		validator.OneOf(FieldStatus, article.Status, StatusDraft, StatusPublished)
	}

	return validator.Err()
}
