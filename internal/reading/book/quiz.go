package book

import (
	"github.com/dothai/truyenthong/internal/platform/apperr"
)

// QuizPhase is the lifecycle phase of the embedded quiz.
type QuizPhase string

const (
	// QuizAnswering accepts answer selections.
	QuizAnswering QuizPhase = "answering"
	// QuizSubmitted is reached after a successful submit. Only Retry leaves it.
	QuizSubmitted QuizPhase = "submitted"
)

// quizRun is the mutable quiz sub-state nested inside a session.
//
// It carries no lock of its own: every method is called with the owning
// session's mutex held.
type quizRun struct {
	questions []Question
	answers   map[string]int
	phase     QuizPhase
	score     int
}

func newQuizRun(questions []Question) *quizRun {
	return &quizRun{
		questions: questions,
		answers:   make(map[string]int, len(questions)),
		phase:     QuizAnswering,
	}
}

// selectAnswer records the chosen option for a question. The last selection
// wins. Selections after submission are silently ignored.
func (q *quizRun) selectAnswer(questionID string, optionIndex int) {
	if q.phase == QuizSubmitted {
		return
	}
	if !q.hasQuestion(questionID) {
		return
	}
	q.answers[questionID] = optionIndex
}

// submit scores the quiz and moves it to the submitted phase.
//
// Preconditions: every question answered, and a signed-in reader present
// (checked by the session before delegating here).
func (q *quizRun) submit() (int, error) {
	if q.phase == QuizSubmitted {
		return q.score, apperr.Conflict("Quiz has already been submitted")
	}

	for _, question := range q.questions {
		if _, answered := q.answers[question.ID]; !answered {
			return 0, apperr.ValidationError("All questions must be answered before submitting",
				apperr.FieldError{Field: "answers", Message: "Question " + question.ID + " has no answer"})
		}
	}

	score := 0
	for _, question := range q.questions {
		if q.answers[question.ID] == question.CorrectIndex {
			score++
		}
	}

	q.score = score
	q.phase = QuizSubmitted
	return score, nil
}

// retry clears answers and score and returns to the answering phase.
// It is a no-op unless the quiz has been submitted.
func (q *quizRun) retry() {
	if q.phase != QuizSubmitted {
		return
	}
	q.answers = make(map[string]int, len(q.questions))
	q.score = 0
	q.phase = QuizAnswering
}

func (q *quizRun) hasQuestion(questionID string) bool {
	for _, question := range q.questions {
		if question.ID == questionID {
			return true
		}
	}
	return false
}

// QuizState is a read-only snapshot of the quiz sub-session.
type QuizState struct {
	Phase          QuizPhase      `json:"phase"`
	Answered       int            `json:"answered"`
	TotalQuestions int            `json:"total_questions"`
	Answers        map[string]int `json:"answers"`
	// Score is meaningful only when Phase is [QuizSubmitted].
	Score int `json:"score"`
}

func (q *quizRun) snapshot() QuizState {
	answers := make(map[string]int, len(q.answers))
	for id, choice := range q.answers {
		answers[id] = choice
	}

	return QuizState{
		Phase:          q.phase,
		Answered:       len(q.answers),
		TotalQuestions: len(q.questions),
		Answers:        answers,
		Score:          q.score,
	}
}
