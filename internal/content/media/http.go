package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dothai/truyenthong/internal/platform/middleware"
	requestutil "github.com/dothai/truyenthong/internal/platform/request"
	"github.com/dothai/truyenthong/internal/platform/respond"
	"github.com/dothai/truyenthong/internal/platform/sec"
	"github.com/dothai/truyenthong/pkg/pagination"
	"github.com/dothai/truyenthong/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public gallery
	router.Get("/", handler.listMedia)
	router.Get("/{id}", handler.getMedia)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createMedia)

		// Admin strict only
		editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteMedia)
	})
}

func (handler *Handler) listMedia(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	// ?kind=image,video narrows the gallery to the listed kinds.
	filter := Filter{
		Kinds: query.StringSlice(request.URL.Query().Get("kind")),
	}

	items, total, err := handler.service.ListMedia(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMedia(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	item, err := handler.service.GetMedia(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) createMedia(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Media
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.UploaderID = claims.UserID

	if err := handler.service.CreateMedia(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteMedia(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteMedia(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
