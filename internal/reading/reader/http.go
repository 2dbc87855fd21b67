package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dothai/truyenthong/internal/platform/request"
	"github.com/dothai/truyenthong/internal/platform/respond"
	"github.com/dothai/truyenthong/internal/platform/sec"
	"github.com/dothai/truyenthong/internal/platform/validate"
	"github.com/dothai/truyenthong/internal/reading/book"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the reading-session API. Every route works for
// anonymous visitors; signing in adds read tracking and quiz submission.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/sessions", handler.openSession)
	router.Get("/sessions/{sid}", handler.getSession)
	router.Delete("/sessions/{sid}", handler.closeSession)

	router.Post("/sessions/{sid}/navigate", handler.navigate)
	router.Post("/sessions/{sid}/jump-to-quiz", handler.jumpToQuiz)

	router.Post("/sessions/{sid}/answers", handler.selectAnswer)
	router.Post("/sessions/{sid}/submit", handler.submitQuiz)
	router.Post("/sessions/{sid}/retry", handler.retryQuiz)
}

// sessionEnvelope is the open-session response: the id the client must
// present on every later call, plus the initial cover view.
type sessionEnvelope struct {
	SessionID string    `json:"session_id"`
	View      book.View `json:"view"`
}

func (handler *Handler) openSession(writer http.ResponseWriter, request *http.Request) {
	var input OpenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := requestutil.Claims(request)

	var bookReader *book.Reader
	canPreview := false
	if claims != nil {
		bookReader = &book.Reader{
			UserID:   claims.UserID,
			UserName: claims.FullName,
			Rank:     claims.Rank,
			Unit:     claims.Unit,
		}
		canPreview = sec.UserRole(claims.Role).AtLeast(sec.RoleEditor)
	}

	sessionID, view, err := handler.service.OpenSession(request.Context(), input, bookReader, canPreview)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sessionEnvelope{SessionID: sessionID, View: view})
}

func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.acquire(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session.Snapshot())
}

func (handler *Handler) closeSession(writer http.ResponseWriter, request *http.Request) {
	handler.service.CloseSession(requestutil.ID(request, "sid"), callerID(request))
	respond.NoContent(writer)
}

func (handler *Handler) navigate(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Direction string `json:"direction"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.OneOf("direction", input.Direction, string(book.DirectionPrev), string(book.DirectionNext))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.acquire(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session.Navigate(request.Context(), book.Direction(input.Direction)))
}

func (handler *Handler) jumpToQuiz(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.acquire(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session.JumpToQuiz(request.Context()))
}

func (handler *Handler) selectAnswer(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		QuestionID  string `json:"question_id"`
		OptionIndex int    `json:"option_index"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("question_id", input.QuestionID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.acquire(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := session.SelectAnswer(input.QuestionID, input.OptionIndex); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session.Snapshot())
}

func (handler *Handler) submitQuiz(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.acquire(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := session.SubmitQuiz(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}

func (handler *Handler) retryQuiz(writer http.ResponseWriter, request *http.Request) {
	session, err := handler.acquire(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, session.RetryQuiz())
}

func (handler *Handler) acquire(request *http.Request) (*book.Session, error) {
	return handler.service.Session(requestutil.ID(request, "sid"), callerID(request))
}

func callerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}
