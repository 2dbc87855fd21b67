package history

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireAuth)

		memberRoute.Get("/me", handler.listMyHistory)
	})

	// The reader roster exposes names and units, so it stays behind the
	// editor role.
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Get("/milestones/{id}/readers", handler.listReaders)
	})
}

func (handler *Handler) listMyHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	entries, total, err := handler.service.ListHistory(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) listReaders(writer http.ResponseWriter, request *http.Request) {
	milestoneID := requestutil.ID(request, "id")
	paginationParams := pagination.FromRequest(request)

	readers, total, err := handler.service.ListReaders(request.Context(), milestoneID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, readers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
