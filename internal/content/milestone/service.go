package milestone

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

func (service *Service) ListMilestones(context context.Context, filter Filter, limit, offset int) ([]*Milestone, int, error) {
	return service.repo.ListMilestones(context, filter, limit, offset)
}

// GetMilestone returns a milestone with its full story body and quiz questions.
func (service *Service) GetMilestone(context context.Context, id string) (*Milestone, error) {
	item, err := service.repo.GetMilestone(context, id)
	if err != nil {
		return nil, err
	}
	return service.attachQuestions(context, item)
}

func (service *Service) GetMilestoneBySlug(context context.Context, milestoneSlug string) (*Milestone, error) {
	item, err := service.repo.GetMilestoneBySlug(context, milestoneSlug)
	if err != nil {
		return nil, err
	}
	return service.attachQuestions(context, item)
}

func (service *Service) attachQuestions(context context.Context, item *Milestone) (*Milestone, error) {
	questions, err := service.repo.ListQuestions(context, item.ID)
	if err != nil {
		return nil, err
	}
	item.Questions = questions
	return item, nil
}

func (service *Service) CreateMilestone(context context.Context, milestone *Milestone) error {
	if err := service.validateMilestone(milestone); err != nil {
		return err
	}

	milestone.ID = uuidv7.New()
	if milestone.Slug == "" {
		milestone.Slug = slug.From(milestone.Title)
	}
	if milestone.Status == "" {
		milestone.Status = StatusDraft
	}

	if err := service.repo.CreateMilestone(context, milestone); err != nil {
		return err
	}

	service.logger.Info("milestone_created",
		slog.String("milestone_id", milestone.ID),
		slog.String("title", milestone.Title),
	)
	return nil
}

// UpdateMilestone merges a partial update over the stored row and writes it
// back, returning the updated milestone.
func (service *Service) UpdateMilestone(context context.Context, id string, input UpdateInput) (*Milestone, error) {
	item, err := service.repo.GetMilestone(context, id)
	if err != nil {
		return nil, err
	}

	item.Title = pointer.Fallback(input.Title, item.Title)
	item.Subtitle = pointer.Fallback(input.Subtitle, item.Subtitle)
	item.Slug = pointer.Fallback(input.Slug, item.Slug)
	item.YearLabel = pointer.Fallback(input.YearLabel, item.YearLabel)
	item.SortOrder = pointer.Fallback(input.SortOrder, item.SortOrder)
	item.Summary = pointer.Fallback(input.Summary, item.Summary)
	item.StoryHTML = pointer.Fallback(input.StoryHTML, item.StoryHTML)
	item.CoverURL = pointer.Fallback(input.CoverURL, item.CoverURL)
	item.AudioURL = pointer.Fallback(input.AudioURL, item.AudioURL)
	item.Status = pointer.Fallback(input.Status, item.Status)

	if err := service.validateMilestone(item); err != nil {
		return nil, err
	}

	if item.Slug == "" {
		item.Slug = slug.From(item.Title)
	}

	if err := service.repo.UpdateMilestone(context, item); err != nil {
		return nil, err
	}

	service.logger.Info("milestone_updated", slog.String("milestone_id", id))
	return item, nil
}

func (service *Service) DeleteMilestone(context context.Context, id string) error {
	if err := service.repo.DeleteMilestone(context, id); err != nil {
		return err
	}

	service.logger.Warn("milestone_deleted", slog.String("milestone_id", id))
	return nil
}

// ReplaceQuestions swaps the milestone's entire quiz in one transaction.
func (service *Service) ReplaceQuestions(context context.Context, milestoneID string, questions []Question) error {
	validator := &validate.Validator{}
	for _, question := range questions {
		validator.Required(FieldPrompt, question.Prompt).
			Custom(FieldOptions, len(question.Options) < 2, "At least two options are required").
			Custom(FieldCorrect, question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options),
				"Must be a valid option index")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	// Milestone must exist before attaching a quiz.
	if _, err := service.repo.GetMilestone(context, milestoneID); err != nil {
		return err
	}

	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuidv7.New()
		}
		questions[i].SortOrder = i
	}

	if err := service.repo.ReplaceQuestions(context, milestoneID, questions); err != nil {
		return err
	}

	service.logger.Info("milestone_quiz_replaced",
		slog.String("milestone_id", milestoneID),
		slog.Int("question_count", len(questions)),
	)
	return nil
}

func (service *Service) validateMilestone(milestone *Milestone) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, milestone.Title).MaxLen(FieldTitle, milestone.Title, 300).
		Required(FieldYearLabel, milestone.YearLabel).MaxLen(FieldYearLabel, milestone.YearLabel, 50).
		Required(FieldStory, milestone.StoryHTML)

	if milestone.CoverURL != "" {
		validator.URL(FieldCoverURL, milestone.CoverURL)
	}
	if milestone.AudioURL != "" {
		validator.URL(FieldAudioURL, milestone.AudioURL)
	}
	if milestone.Status != "" {
		validator.OneOf(FieldStatus, milestone.Status, StatusDraft, StatusPublished)
	}

	return validator.Err()
}
