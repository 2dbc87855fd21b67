package article

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
	// Public
	router.Get("/", handler.listArticles)
	router.Get("/by-slug/{slug}", handler.readArticle)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Get("/{id}", handler.getArticle)
		editorRoute.Post("/", handler.createArticle)
		editorRoute.Patch("/{id}", handler.updateArticle)
		editorRoute.Post("/{id}/publish", handler.publishArticle)
		editorRoute.Post("/{id}/unpublish", handler.unpublishArticle)

		// Admin strict only
		editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteArticle)
	})
}

func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Category: request.URL.Query().Get("category"),
		Status:   StatusPublished,
		Query:    request.URL.Query().Get("q"),
	}

	// Editors may list drafts; everyone else is pinned to published.
	claims := requestutil.Claims(request)
	if claims != nil && sec.UserRole(claims.Role).AtLeast(sec.RoleEditor) {
		filter.Status = request.URL.Query().Get("status")
	}

	articles, total, err := handler.service.ListArticles(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) readArticle(writer http.ResponseWriter, request *http.Request) {
	articleSlug := requestutil.ID(request, "slug")

	item, err := handler.service.ReadArticleBySlug(request.Context(), articleSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Drafts look exactly like missing rows to non-editors.
	if item.Status != StatusPublished {
		claims := requestutil.Claims(request)
		if claims == nil || !sec.UserRole(claims.Role).AtLeast(sec.RoleEditor) {
			respond.Error(writer, request, apperr.NotFound("Article"))
			return
		}
	}
	respond.OK(writer, item)
}

func (handler *Handler) getArticle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	item, err := handler.service.GetArticle(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Article
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.AuthorID = claims.UserID

	if err := handler.service.CreateArticle(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateArticle(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) publishArticle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.Publish(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"status": StatusPublished})
}

func (handler *Handler) unpublishArticle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.Unpublish(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"status": StatusDraft})
}

func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteArticle(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
