package reader

import (
	"context"
	"log/slog"
	"time"

	"github.com/dothai/truyenthong/internal/content/milestone"
	"github.com/dothai/truyenthong/internal/platform/apperr"
	"github.com/dothai/truyenthong/internal/reading/book"
)

// MilestoneSource supplies the documents a session can open. Both lookups
// return the full story body and quiz questions.
type MilestoneSource interface {
	GetMilestone(ctx context.Context, id string) (*milestone.Milestone, error)
	GetMilestoneBySlug(ctx context.Context, slug string) (*milestone.Milestone, error)
}

// OpenRequest names the milestone to open, by id or by slug. ID wins when
// both are set.
type OpenRequest struct {
	MilestoneID string `json:"milestone_id"`
	Slug        string `json:"slug"`
}

type Service struct {
	milestones MilestoneSource
	registry   *Registry
	marker     book.ReadMarker
	reporter   book.ResultReporter

	pageCharBudget int
	transition     time.Duration
	logger         *slog.Logger
}

func NewService(
	milestones MilestoneSource,
	registry *Registry,
	marker book.ReadMarker,
	reporter book.ResultReporter,
	pageCharBudget int,
	transition time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		milestones:     milestones,
		registry:       registry,
		marker:         marker,
		reporter:       reporter,
		pageCharBudget: pageCharBudget,
		transition:     transition,
		logger:         logger,
	}
}

// OpenSession paginates the milestone story and registers a new session.
// Draft milestones open only when canPreview is set; everyone else sees the
// same not-found as for a missing id.
func (service *Service) OpenSession(context context.Context, request OpenRequest, reader *book.Reader, canPreview bool) (string, book.View, error) {
	ownerID := ""
	if reader != nil {
		ownerID = reader.UserID
	}

	// The epoch is claimed before the milestone fetch so that a slow fetch
	// racing a newer open attempt by the same reader cannot register a
	// session for the older document.
	epoch := service.registry.NextEpoch(ownerID)

	item, err := service.lookup(context, request)
	if err != nil {
		return "", book.View{}, err
	}

	if item.Status != milestone.StatusPublished && !canPreview {
		return "", book.View{}, apperr.NotFound("Milestone")
	}

	session := book.NewSession(toDocument(item), reader, book.Config{
		PageCharBudget:  service.pageCharBudget,
		TransitionDelay: service.transition,
	}, service.marker, service.reporter, service.logger)

	sessionID := service.registry.Put(session, ownerID, epoch)
	if sessionID == "" {
		return "", book.View{}, apperr.Conflict("A newer reading session was opened")
	}

	service.logger.Info("reading_session_opened",
		slog.String("milestone_id", item.ID),
		slog.String("user_id", ownerID),
	)

	return sessionID, session.Snapshot(), nil
}

// Session resolves an open session for its caller.
func (service *Service) Session(sessionID, callerID string) (*book.Session, error) {
	return service.registry.Acquire(sessionID, callerID)
}

// CloseSession discards a session. Unknown ids close silently.
func (service *Service) CloseSession(sessionID, callerID string) {
	service.registry.Remove(sessionID, callerID)
}

func (service *Service) lookup(context context.Context, request OpenRequest) (*milestone.Milestone, error) {
	switch {
	case request.MilestoneID != "":
		return service.milestones.GetMilestone(context, request.MilestoneID)
	case request.Slug != "":
		return service.milestones.GetMilestoneBySlug(context, request.Slug)
	default:
		return nil, apperr.ValidationError("Either milestone_id or slug is required")
	}
}

// toDocument projects a milestone onto the reading engine's document shape.
func toDocument(item *milestone.Milestone) book.Document {
	questions := make([]book.Question, 0, len(item.Questions))
	for _, question := range item.Questions {
		questions = append(questions, book.Question{
			ID:           question.ID,
			Prompt:       question.Prompt,
			Options:      question.Options,
			CorrectIndex: question.CorrectIndex,
		})
	}

	return book.Document{
		ID:        item.ID,
		Title:     item.Title,
		Subtitle:  item.Subtitle,
		YearLabel: item.YearLabel,
		StoryHTML: item.StoryHTML,
		Summary:   item.Summary,
		CoverURL:  item.CoverURL,
		AudioURL:  item.AudioURL,
		Questions: questions,
	}
}
