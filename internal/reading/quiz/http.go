package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dothai/truyenthong/internal/platform/middleware"
	requestutil "github.com/dothai/truyenthong/internal/platform/request"
	"github.com/dothai/truyenthong/internal/platform/respond"
	"github.com/dothai/truyenthong/pkg/convert"
	"github.com/dothai/truyenthong/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/milestones/{id}/leaderboard", handler.leaderboard)

	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireAuth)

		memberRoute.Get("/me", handler.listMyAttempts)
	})
}

func (handler *Handler) leaderboard(writer http.ResponseWriter, request *http.Request) {
	milestoneID := requestutil.ID(request, "id")
	limit := convert.ToIntD(request.URL.Query().Get("limit"), DefaultLeaderboardSize)

	entries, err := handler.service.Leaderboard(request.Context(), milestoneID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) listMyAttempts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	attempts, total, err := handler.service.ListAttempts(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, attempts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
