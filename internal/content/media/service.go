package media

import (
	"context"
	"log/slog"

	"github.com/dothai/truyenthong/internal/platform/validate"
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

func (service *Service) ListMedia(context context.Context, filter Filter, limit, offset int) ([]*Media, int, error) {
	return service.repo.ListMedia(context, filter, limit, offset)
}

func (service *Service) GetMedia(context context.Context, id string) (*Media, error) {
	return service.repo.GetMedia(context, id)
}

func (service *Service) CreateMedia(context context.Context, media *Media) error {
	validator := &validate.Validator{}
	validator.Required(FieldKind, media.Kind).
		OneOf(FieldKind, media.Kind, KindImage, KindVideo, KindAudio, KindDocument).
		Required(FieldTitle, media.Title).MaxLen(FieldTitle, media.Title, 300).
		Required(FieldFileURL, media.FileURL).URL(FieldFileURL, media.FileURL)

	if media.ThumbURL != "" {
		validator.URL(FieldThumbURL, media.ThumbURL)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	media.ID = uuidv7.New()

	if err := service.repo.CreateMedia(context, media); err != nil {
		return err
	}

	service.logger.Info("media_created",
		slog.String("media_id", media.ID),
		slog.String("kind", media.Kind),
	)
	return nil
}

func (service *Service) DeleteMedia(context context.Context, id string) error {
	if err := service.repo.DeleteMedia(context, id); err != nil {
		return err
	}

	service.logger.Warn("media_deleted", slog.String("media_id", id))
	return nil
}
