package quiz

import (
	"github.com/pkg/errors"

	"aiacademy/internal/model"
)

var (
	ErrNoQuestions        = errors.New("quiz has no questions")
	ErrSubmitted          = errors.New("quiz already submitted")
	ErrOptionOutOfRange   = errors.New("option out of range")
	ErrQuestionOutOfRange = errors.New("question index out of range")
)

// LastQuestionNotice is shown when an action tries to move past the end
const LastQuestionNotice = "This is the last question. Click 'Submit Test' to finish."

const unset = -1

// Move describes the navigation done by SaveAndNext or MarkForReview
type Move struct {
	From  int
	To    int
	AtEnd bool // move past the last question was refused
}

// Session is one attempt at a topic. It is not safe for concurrent use.
type Session struct {
	topic      string
	questions  []model.Question
	selections []int
	statuses   []model.QuestionStatus
	current    int
	pending    int
	result     *model.QuizResult
}

// NewSession validates questions and returns a session positioned on the first one
func NewSession(topic string, questions []model.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i, q := range questions {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, errors.Errorf("question %d: correct option %d not in %d options", i, q.Answer, len(q.Options))
		}
	}

	s := &Session{
		topic:      topic,
		questions:  questions,
		selections: make([]int, len(questions)),
		statuses:   make([]model.QuestionStatus, len(questions)),
		pending:    unset,
	}
	for i := range questions {
		s.selections[i] = unset
		s.statuses[i] = model.StatusNotAnswered
	}
	return s, nil
}

func (s *Session) Topic() string   { return s.topic }
func (s *Session) Total() int      { return len(s.questions) }
func (s *Session) Current() int    { return s.current }
func (s *Session) Submitted() bool { return s.result != nil }

// Result is nil until the session is submitted
func (s *Session) Result() *model.QuizResult { return s.result }

// Status returns the palette status of question i
func (s *Session) Status(i int) model.QuestionStatus { return s.statuses[i] }

// Selection returns the committed option of question i
func (s *Session) Selection(i int) (int, bool) {
	return s.selections[i], s.selections[i] != unset
}

// Pending returns the option chosen on screen but not yet committed
func (s *Session) Pending() (int, bool) {
	return s.pending, s.pending != unset
}

// Select picks an option of the current question without committing it
func (s *Session) Select(option int) error {
	if s.Submitted() {
		return ErrSubmitted
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return ErrOptionOutOfRange
	}
	s.pending = option
	return nil
}

// GoTo jumps to question i. Statuses are left alone; the committed
// selection of i becomes the pending one.
func (s *Session) GoTo(i int) error {
	if s.Submitted() {
		return ErrSubmitted
	}
	if i < 0 || i >= len(s.questions) {
		return ErrQuestionOutOfRange
	}
	s.load(i)
	return nil
}

// SaveAndNext commits the pending option, if any, then advances
func (s *Session) SaveAndNext() (Move, error) {
	if s.Submitted() {
		return Move{}, ErrSubmitted
	}
	if s.pending != unset {
		s.selections[s.current] = s.pending
		s.statuses[s.current] = model.StatusAnswered
	}
	return s.advance(), nil
}

// MarkForReview commits the pending option, if any, flags the question and advances
func (s *Session) MarkForReview() (Move, error) {
	if s.Submitted() {
		return Move{}, ErrSubmitted
	}
	if s.pending != unset {
		s.selections[s.current] = s.pending
	}
	s.statuses[s.current] = model.StatusMarkedForReview
	return s.advance(), nil
}

// Clear resets the current question to not answered and stays on it
func (s *Session) Clear() error {
	if s.Submitted() {
		return ErrSubmitted
	}
	s.pending = unset
	s.selections[s.current] = unset
	s.statuses[s.current] = model.StatusNotAnswered
	return nil
}

// Submit scores the session. It is terminal: every later call fails with ErrSubmitted.
func (s *Session) Submit() (model.QuizResult, error) {
	if s.Submitted() {
		return *s.result, ErrSubmitted
	}
	res := model.QuizResult{Total: len(s.questions)}
	for i, sel := range s.selections {
		if sel == unset {
			continue
		}
		res.Attempted++
		if sel == s.questions[i].Answer {
			res.Score++
		}
	}
	s.result = &res
	return res, nil
}

// Palette lists every question with its status
func (s *Session) Palette() []model.PaletteEntry {
	out := make([]model.PaletteEntry, len(s.questions))
	for i := range s.questions {
		out[i] = model.PaletteEntry{
			Index:   i,
			Status:  s.statuses[i],
			Current: i == s.current,
		}
	}
	return out
}

// CurrentQuestion is the current question without its answer
func (s *Session) CurrentQuestion() model.QuestionView {
	q := s.questions[s.current]
	return model.QuestionView{
		Index:   s.current,
		Label:   q.Label,
		Options: q.Options,
	}
}

// Selections returns committed selections, nil where unset
func (s *Session) Selections() []*int {
	out := make([]*int, len(s.selections))
	for i, sel := range s.selections {
		if sel != unset {
			v := sel
			out[i] = &v
		}
	}
	return out
}

func (s *Session) advance() Move {
	m := Move{From: s.current, To: s.current}
	if s.current >= len(s.questions)-1 {
		m.AtEnd = true
		return m
	}
	s.load(s.current + 1)
	m.To = s.current
	return m
}

func (s *Session) load(i int) {
	s.current = i
	s.pending = s.selections[i]
}
