package milestone

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dothai/truyenthong/internal/platform/apperr"
	"github.com/dothai/truyenthong/internal/platform/middleware"
	requestutil "github.com/dothai/truyenthong/internal/platform/request"
	"github.com/dothai/truyenthong/internal/platform/respond"
	"github.com/dothai/truyenthong/internal/platform/sec"
	"github.com/dothai/truyenthong/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public: members browse the published timeline
	router.Get("/", handler.listMilestones)
	router.Get("/{id}", handler.getMilestone)
	router.Get("/by-slug/{slug}", handler.getMilestoneBySlug)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createMilestone)
		editorRoute.Patch("/{id}", handler.updateMilestone)
		editorRoute.Put("/{id}/questions", handler.replaceQuestions)

		// Admin strict only
		editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteMilestone)
	})
}

func (handler *Handler) listMilestones(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	// Anonymous and member traffic only ever sees published milestones.
	// Editors may request drafts explicitly.
	filter := Filter{
		Status: StatusPublished,
		Year:   request.URL.Query().Get("year"),
	}
	claims := requestutil.Claims(request)
	if claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleEditor) {
		filter.Status = request.URL.Query().Get("status")
	}

	milestones, total, err := handler.service.ListMilestones(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, milestones, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMilestone(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	item, err := handler.service.GetMilestone(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if hideDraft(request, item) {
		respond.Error(writer, request, apperr.NotFound("Milestone"))
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) getMilestoneBySlug(writer http.ResponseWriter, request *http.Request) {
	milestoneSlug := requestutil.ID(request, "slug")

	item, err := handler.service.GetMilestoneBySlug(request.Context(), milestoneSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if hideDraft(request, item) {
		respond.Error(writer, request, apperr.NotFound("Milestone"))
		return
	}
	respond.OK(writer, item)
}

// hideDraft reports whether an unpublished milestone must stay invisible to
// the caller. Drafts look exactly like missing rows to non-editors.
func hideDraft(request *http.Request, item *Milestone) bool {
	if item.Status == StatusPublished {
		return false
	}
	claims := requestutil.Claims(request)
	return claims == nil || !sec.UserRole(claims.Role).AtLeast(sec.RoleEditor)
}

func (handler *Handler) createMilestone(writer http.ResponseWriter, request *http.Request) {
	var input Milestone
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateMilestone(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateMilestone(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateMilestone(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

type replaceQuestionsRequest struct {
	Questions []questionInput `json:"questions"`
}

// questionInput accepts the editor payload including the correct answer,
// which the public Question JSON never exposes.
type questionInput struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

func (handler *Handler) replaceQuestions(writer http.ResponseWriter, request *http.Request) {
	milestoneID := requestutil.ID(request, "id")

	var input replaceQuestionsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	questions := make([]Question, len(input.Questions))
	for i, q := range input.Questions {
		questions[i] = Question{
			ID:           q.ID,
			MilestoneID:  milestoneID,
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		}
	}

	if err := handler.service.ReplaceQuestions(request.Context(), milestoneID, questions); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"question_count": len(questions)})
}

func (handler *Handler) deleteMilestone(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteMilestone(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
