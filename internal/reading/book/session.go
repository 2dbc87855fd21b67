package book

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dothai/truyenthong/internal/platform/apperr"
)

// Direction is a navigation request relative to the current spread.
type Direction string

const (
	// DirectionPrev moves one spread toward the cover.
	DirectionPrev Direction = "prev"
	// DirectionNext moves one spread toward the quiz.
	DirectionNext Direction = "next"
)

// DefaultTransitionDelay is the page-flip window during which further
// navigation requests are ignored.
const DefaultTransitionDelay = 600 * time.Millisecond

// bestEffortTimeout bounds fire-and-forget collaborator calls so a slow
// backend cannot pile up goroutines indefinitely.
const bestEffortTimeout = 5 * time.Second

// Config tunes a session at open time. Zero values fall back to defaults.
type Config struct {
	// PageCharBudget is the visible-character budget per page.
	PageCharBudget int

	// TransitionDelay is the flip window. During the window, navigation
	// requests are dropped; once it elapses the pending spread is committed.
	TransitionDelay time.Duration

	// HasQuizOverride forces the quiz spread on or off regardless of the
	// document's question list. Nil means "derive from the document".
	HasQuizOverride *bool

	// Now is the clock source. Injected for deterministic tests; defaults
	// to [time.Now].
	Now func() time.Time
}

// Session is the mutable state of one open document for one reader.
//
// # Concurrency
//
// Every entry point serializes on an internal mutex, so a session is safe to
// drive from concurrent HTTP requests. The flip window is a state flag with
// a deadline, not a sleeping timer: elapsed transitions are committed lazily
// on the next entry.
type Session struct {
	mu sync.Mutex

	document Document
	reader   *Reader
	pages    []Page
	spreads  *SpreadSet

	current        int
	pending        int
	inTransition   bool
	transitionEnds time.Time
	hasMarkedRead  bool
	closed         bool

	quiz *quizRun

	delay time.Duration
	now   func() time.Time

	marker   ReadMarker
	reporter ResultReporter
	logger   *slog.Logger
}

// NewSession opens a document: paginates the story, builds the spread index,
// and positions the reader on the cover.
//
// reader may be nil (anonymous). marker and reporter may be nil, in which
// case the corresponding side effects are skipped.
func NewSession(document Document, reader *Reader, cfg Config, marker ReadMarker, reporter ResultReporter, logger *slog.Logger) *Session {
	if cfg.PageCharBudget <= 0 {
		cfg.PageCharBudget = DefaultPageCharBudget
	}
	if cfg.TransitionDelay <= 0 {
		cfg.TransitionDelay = DefaultTransitionDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	hasQuiz := document.HasQuiz()
	if cfg.HasQuizOverride != nil {
		hasQuiz = *cfg.HasQuizOverride
	}

	pages := Paginate(document.StoryHTML, cfg.PageCharBudget)

	session := &Session{
		document: document,
		reader:   reader,
		pages:    pages,
		spreads:  BuildSpreads(pages, hasQuiz),
		delay:    cfg.TransitionDelay,
		now:      cfg.Now,
		marker:   marker,
		reporter: reporter,
		logger:   logger,
	}

	if hasQuiz {
		session.quiz = newQuizRun(document.Questions)
	}

	return session
}

// # Navigation

// Navigate requests a one-spread move and returns the resulting view.
//
// A request issued while a flip is still in progress is silently dropped.
// Targets outside the valid range are clamped, so navigating next on the
// final spread changes nothing but still consumes a flip window.
func (s *Session) Navigate(ctx context.Context, direction Direction) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commitElapsed()

	if s.closed || s.inTransition {
		return s.view()
	}

	step := -1
	if direction == DirectionNext {
		step = 1
	}

	target := clamp(s.current+step, 0, s.spreads.Total()-1)

	s.pending = target
	s.inTransition = true
	s.transitionEnds = s.now().Add(s.delay)

	s.maybeMarkRead(ctx, target)

	return s.view()
}

// JumpToQuiz moves straight to the quiz spread, bypassing the flip window.
// It is a no-op when the document has no quiz.
func (s *Session) JumpToQuiz(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commitElapsed()

	if s.closed || !s.spreads.HasQuiz() {
		return s.view()
	}

	target := s.spreads.Total() - 1
	s.maybeMarkRead(ctx, target)

	s.current = target
	s.pending = target
	s.inTransition = false

	return s.view()
}

// Close discards the session. Every later call is a no-op returning the
// final view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// commitElapsed finishes a flip whose window has passed. Callers hold s.mu.
func (s *Session) commitElapsed() {
	if s.inTransition && !s.now().Before(s.transitionEnds) {
		s.current = s.pending
		s.inTransition = false
	}
}

// maybeMarkRead fires the read-history collaborator exactly once per session:
// on the first accepted move off the cover by a signed-in reader. The latch
// is set before the call returns, so the collaborator outcome cannot cause a
// second attempt. Callers hold s.mu.
func (s *Session) maybeMarkRead(ctx context.Context, target int) {
	if target == 0 || s.current != 0 || s.hasMarkedRead {
		return
	}
	if s.reader == nil || s.marker == nil {
		return
	}

	s.hasMarkedRead = true

	event := ReadEvent{
		UserID:        s.reader.UserID,
		UserName:      s.reader.UserName,
		Rank:          s.reader.Rank,
		Unit:          s.reader.Unit,
		DocumentID:    s.document.ID,
		DocumentTitle: s.document.Title,
	}

	// Fire-and-forget on a detached context: closing the HTTP request that
	// triggered the flip must not cancel the mark in flight.
	detached := context.WithoutCancel(ctx)
	go func() {
		callCtx, cancel := context.WithTimeout(detached, bestEffortTimeout)
		defer cancel()

		if err := s.marker.MarkRead(callCtx, event); err != nil {
			s.logger.Warn("read_mark_failed",
				slog.String("document_id", event.DocumentID),
				slog.String("user_id", event.UserID),
				slog.Any("error", err),
			)
		}
	}()
}

// # Quiz Operations

// SelectAnswer records an option choice for a question. Selections after
// submission are ignored without error.
func (s *Session) SelectAnswer(questionID string, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		return apperr.Unprocessable("This document has no quiz")
	}

	s.quiz.selectAnswer(questionID, optionIndex)
	return nil
}

// SubmitQuiz scores the quiz and reports the result.
//
// It fails with an authentication error for anonymous sessions and with a
// validation error while any question is unanswered; neither failure touches
// quiz state. The locally computed score is authoritative: a failed remote
// report is logged and swallowed.
func (s *Session) SubmitQuiz(ctx context.Context) (QuizState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		return QuizState{}, apperr.Unprocessable("This document has no quiz")
	}
	if s.reader == nil {
		return s.quiz.snapshot(), apperr.Unauthorized("Authentication required to submit the quiz")
	}

	score, err := s.quiz.submit()
	if err != nil {
		return s.quiz.snapshot(), err
	}

	if s.reporter != nil {
		result := QuizResult{
			UserID:         s.reader.UserID,
			UserName:       s.reader.UserName,
			Rank:           s.reader.Rank,
			Unit:           s.reader.Unit,
			DocumentID:     s.document.ID,
			Topic:          s.document.Title,
			Score:          score,
			TotalQuestions: len(s.document.Questions),
			SubmittedAt:    s.now(),
		}

		detached := context.WithoutCancel(ctx)
		logger := s.logger
		reporter := s.reporter
		go func() {
			callCtx, cancel := context.WithTimeout(detached, bestEffortTimeout)
			defer cancel()

			if err := reporter.ReportResult(callCtx, result); err != nil {
				logger.Warn("quiz_result_report_failed",
					slog.String("user_id", result.UserID),
					slog.String("topic", result.Topic),
					slog.Any("error", err),
				)
			}
		}()
	}

	return s.quiz.snapshot(), nil
}

// RetryQuiz clears answers and score for another attempt. No-op unless the
// quiz has been submitted.
func (s *Session) RetryQuiz() QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		return QuizState{}
	}

	s.quiz.retry()
	return s.quiz.snapshot()
}

// # Read Accessors

// View is a consistent read-only snapshot of the session for the host view.
type View struct {
	Document     Document   `json:"document"`
	Spread       Spread     `json:"spread"`
	CurrentIndex int        `json:"current_index"`
	TotalSpreads int        `json:"total_spreads"`
	InTransition bool       `json:"in_transition"`
	IsCover      bool       `json:"is_cover"`
	IsQuizSpread bool       `json:"is_quiz_spread"`
	IsLastSpread bool       `json:"is_last_spread"`
	HasQuiz      bool       `json:"has_quiz"`
	Quiz         *QuizState `json:"quiz,omitempty"`
}

// Snapshot returns the current view, committing any elapsed flip first.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commitElapsed()
	return s.view()
}

// Questions returns the quiz questions for rendering on the quiz spread.
// Correct answers are not part of the JSON representation.
func (s *Session) Questions() []Question {
	return s.document.Questions
}

// DocumentID returns the identifier of the open document.
func (s *Session) DocumentID() string {
	return s.document.ID
}

// view assembles a [View]. Callers hold s.mu.
func (s *Session) view() View {
	spread, err := s.spreads.At(s.current)
	if err != nil {
		// Unreachable: current is always clamped. Fall back to the cover
		// rather than propagating an impossible error to the host.
		s.logger.Error("spread_index_invariant_violated", slog.Int("index", s.current))
		spread = Spread{Index: 0, Kind: SpreadCover}
	}

	view := View{
		Document:     s.document,
		Spread:       spread,
		CurrentIndex: s.current,
		TotalSpreads: s.spreads.Total(),
		InTransition: s.inTransition,
		IsCover:      spread.Kind == SpreadCover,
		IsQuizSpread: spread.Kind == SpreadQuiz,
		IsLastSpread: s.current == s.spreads.Total()-1,
		HasQuiz:      s.spreads.HasQuiz(),
	}

	if s.quiz != nil {
		state := s.quiz.snapshot()
		view.Quiz = &state
	}

	return view
}

// HasMarkedRead reports whether the read event for this session has fired.
func (s *Session) HasMarkedRead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMarkedRead
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
