package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"aiacademy/internal/bank"
	"aiacademy/internal/cache"
	"aiacademy/internal/logger"
	"aiacademy/internal/model"
	"aiacademy/internal/quiz"
	"aiacademy/internal/repository"
)

// resultPostTimeout bounds the background post of a finished attempt
const resultPostTimeout = 10 * time.Second

// ResultRecorder stores a scored attempt
type ResultRecorder interface {
	Submit(ctx context.Context, userID string, in *model.SubmitTestRequest) (float64, error)
}

// TimerFunc starts a countdown and returns a stop func
type TimerFunc func(cd *quiz.Countdown, onTick func(remaining int), onExpire func()) (stop func())

type hostedSession struct {
	mu        sync.Mutex
	id        string
	userID    string
	topicName string
	state     *quiz.Session
	countdown *quiz.Countdown
	stop      func()
	startedAt time.Time
	touched   bool // any answer or navigation since Start
}

// QuizService hosts running quiz attempts. Each attempt lives in memory
// until it is submitted; Redis keeps a snapshot for reads, including the
// result afterwards.
type QuizService struct {
	banks       repository.QuestionRepo
	bankCache   cache.BankCache
	snapshots   cache.SessionCache
	results     ResultRecorder
	broadcaster Broadcaster
	log         logger.Logger
	budget      int
	startTimer  TimerFunc

	mu   sync.RWMutex
	live map[string]*hostedSession
	wg   sync.WaitGroup
}

// NewQuizService creates a quiz service. budget is the time per attempt in seconds.
func NewQuizService(
	banks repository.QuestionRepo,
	bankCache cache.BankCache,
	snapshots cache.SessionCache,
	results ResultRecorder,
	log logger.Logger,
	budget int,
) *QuizService {
	if budget <= 0 {
		budget = quiz.DefaultBudget
	}
	return &QuizService{
		banks:       banks,
		bankCache:   bankCache,
		snapshots:   snapshots,
		results:     results,
		broadcaster: noopBroadcaster{},
		log:         log,
		budget:      budget,
		startTimer:  quiz.StartTimer,
		live:        make(map[string]*hostedSession),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *QuizService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Topics lists the seeded topics, falling back to the full catalogue
func (s *QuizService) Topics(ctx context.Context) ([]model.Topic, error) {
	topics, err := s.banks.ListTopics(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list topics")
	}
	if len(topics) == 0 {
		return bank.Topics, nil
	}
	return topics, nil
}

// Start opens a new attempt at topic for userID and starts its clock
func (s *QuizService) Start(ctx context.Context, userID, topic string) (*model.QuizSessionView, error) {
	qb, err := s.loadBank(ctx, topic)
	if err != nil {
		return nil, err
	}

	state, err := quiz.NewSession(topic, qb.Questions)
	if err != nil {
		return nil, errors.Wrapf(err, "question bank %s", topic)
	}

	hs := &hostedSession{
		id:        uuid.New().String(),
		userID:    userID,
		topicName: qb.Name,
		state:     state,
		countdown: quiz.NewCountdown(s.budget),
		startedAt: time.Now(),
	}
	if hs.topicName == "" {
		hs.topicName = bank.TopicName(topic)
	}

	s.mu.Lock()
	s.live[hs.id] = hs
	s.mu.Unlock()

	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.stop = s.startTimer(hs.countdown,
		func(remaining int) {
			s.broadcaster.BroadcastToSession(hs.id, EventTick, TickEvent{Remaining: remaining, Clock: quiz.Clock(remaining)})
		},
		func() { s.expire(hs) },
	)

	view := s.view(hs)
	s.persist(ctx, view)
	return view, nil
}

// Get returns the current view of a session owned by userID
func (s *QuizService) Get(ctx context.Context, userID, sessionID string) (*model.QuizSessionView, error) {
	if hs := s.lookup(sessionID); hs != nil {
		if hs.userID != userID {
			return nil, ErrNotOwner
		}
		hs.mu.Lock()
		defer hs.mu.Unlock()
		return s.view(hs), nil
	}

	view, err := s.snapshots.Get(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session snapshot")
	}
	if view == nil {
		return nil, ErrSessionNotFound
	}
	if view.UserID != userID {
		return nil, ErrNotOwner
	}
	return view, nil
}

// Select sets the pending option of the current question
func (s *QuizService) Select(ctx context.Context, userID, sessionID string, option int) (*model.QuizSessionView, error) {
	return s.mutate(ctx, userID, sessionID, func(st *quiz.Session) error {
		return st.Select(option)
	})
}

// GoTo jumps to a question from the palette
func (s *QuizService) GoTo(ctx context.Context, userID, sessionID string, index int) (*model.QuizSessionView, error) {
	return s.mutate(ctx, userID, sessionID, func(st *quiz.Session) error {
		return st.GoTo(index)
	})
}

// Clear resets the current question
func (s *QuizService) Clear(ctx context.Context, userID, sessionID string) (*model.QuizSessionView, error) {
	return s.mutate(ctx, userID, sessionID, func(st *quiz.Session) error {
		return st.Clear()
	})
}

// SaveAndNext commits the pending option and moves on
func (s *QuizService) SaveAndNext(ctx context.Context, userID, sessionID string) (*model.MoveResponse, error) {
	return s.move(ctx, userID, sessionID, (*quiz.Session).SaveAndNext)
}

// MarkForReview flags the current question and moves on
func (s *QuizService) MarkForReview(ctx context.Context, userID, sessionID string) (*model.MoveResponse, error) {
	return s.move(ctx, userID, sessionID, (*quiz.Session).MarkForReview)
}

// Submit scores the attempt. A session can be submitted once; later calls
// fail with quiz.ErrSubmitted.
func (s *QuizService) Submit(ctx context.Context, userID, sessionID string) (*model.QuizSessionView, error) {
	hs, err := s.owned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	return s.finish(hs, false)
}

// Close stops every running clock and waits for pending result posts
func (s *QuizService) Close() error {
	s.mu.Lock()
	for _, hs := range s.live {
		if hs.stop != nil {
			hs.stop()
		}
	}
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

func (s *QuizService) mutate(ctx context.Context, userID, sessionID string, fn func(*quiz.Session) error) (*model.QuizSessionView, error) {
	hs, err := s.owned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	if err := fn(hs.state); err != nil {
		return nil, err
	}
	hs.touched = true
	view := s.view(hs)
	s.persist(ctx, view)
	return view, nil
}

func (s *QuizService) move(ctx context.Context, userID, sessionID string, fn func(*quiz.Session) (quiz.Move, error)) (*model.MoveResponse, error) {
	var m quiz.Move
	view, err := s.mutate(ctx, userID, sessionID, func(st *quiz.Session) error {
		var err error
		m, err = fn(st)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &model.MoveResponse{Session: view, AtEnd: m.AtEnd}
	if m.AtEnd {
		resp.Notice = quiz.LastQuestionNotice
	}
	return resp, nil
}

// owned returns the live session, or an error explaining why it cannot be acted on
func (s *QuizService) owned(ctx context.Context, userID, sessionID string) (*hostedSession, error) {
	if hs := s.lookup(sessionID); hs != nil {
		if hs.userID != userID {
			return nil, ErrNotOwner
		}
		return hs, nil
	}

	view, err := s.snapshots.Get(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session snapshot")
	}
	if view == nil {
		return nil, ErrSessionNotFound
	}
	if view.UserID != userID {
		return nil, ErrNotOwner
	}
	if view.Submitted {
		return nil, quiz.ErrSubmitted
	}
	// known to Redis but not to this process, e.g. after a restart
	return nil, ErrSessionNotFound
}

func (s *QuizService) lookup(sessionID string) *hostedSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live[sessionID]
}

// expire runs on the timer goroutine when time is up
func (s *QuizService) expire(hs *hostedSession) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if _, err := s.finish(hs, true); err != nil && errors.Cause(err) != quiz.ErrSubmitted {
		s.log.Error("quiz: forced submit failed", err, map[string]interface{}{"session": hs.id})
	}
}

// finish is the single submission path for manual and forced submits.
// hs.mu must be held.
func (s *QuizService) finish(hs *hostedSession, forced bool) (*model.QuizSessionView, error) {
	res, err := hs.state.Submit()
	if err != nil {
		return nil, err
	}
	if hs.stop != nil {
		hs.stop()
	}

	s.mu.Lock()
	delete(s.live, hs.id)
	s.mu.Unlock()

	skip := forced && s.abandoned(hs)
	view := s.view(hs)
	s.persist(context.Background(), view)
	s.broadcaster.BroadcastToSession(hs.id, EventSubmitted, SubmittedEvent{Result: res, Forced: forced})

	if skip {
		s.log.Info("quiz: abandoned attempt expired, result not recorded",
			map[string]interface{}{"session": hs.id, "uid": hs.userID, "topic": hs.state.Topic()})
		return view, nil
	}
	s.wg.Add(1)
	go s.postResult(hs.userID, hs.state.Topic(), res)
	return view, nil
}

// abandoned reports whether nobody has been on the attempt since it started:
// no answer or navigation and no client watching the clock. hs.mu must be held.
func (s *QuizService) abandoned(hs *hostedSession) bool {
	return !hs.touched && s.broadcaster.Subscribers(hs.id) == 0
}

// postResult records the attempt. Failures are logged and dropped.
func (s *QuizService) postResult(userID, topic string, res model.QuizResult) {
	defer s.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), resultPostTimeout)
	defer cancel()

	_, err := s.results.Submit(ctx, userID, &model.SubmitTestRequest{
		Topic:          topic,
		Score:          res.Score,
		TotalQuestions: res.Total,
	})
	if err != nil {
		s.log.Error("quiz: could not record result", err, map[string]interface{}{"uid": userID, "topic": topic})
	}
}

func (s *QuizService) persist(ctx context.Context, view *model.QuizSessionView) {
	if err := s.snapshots.Set(ctx, view); err != nil {
		s.log.Warn("quiz: could not cache session snapshot", err, map[string]interface{}{"session": view.ID})
	}
}

func (s *QuizService) loadBank(ctx context.Context, topic string) (*model.QuestionBank, error) {
	qb, err := s.bankCache.GetBank(ctx, topic)
	if err != nil {
		s.log.Warn("quiz: bank cache read failed", err, map[string]interface{}{"topic": topic})
	}
	if qb != nil {
		return qb, nil
	}

	qb, err = s.banks.GetByTopic(ctx, topic)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load question bank")
	}
	if qb == nil {
		return nil, ErrTopicNotFound
	}
	if err := s.bankCache.SetBank(ctx, qb); err != nil {
		s.log.Warn("quiz: could not cache bank", err, map[string]interface{}{"topic": topic})
	}
	return qb, nil
}

// view snapshots hs. hs.mu must be held.
func (s *QuizService) view(hs *hostedSession) *model.QuizSessionView {
	st := hs.state
	remaining := hs.countdown.Remaining()
	v := &model.QuizSessionView{
		ID:               hs.id,
		UserID:           hs.userID,
		Topic:            st.Topic(),
		TopicName:        hs.topicName,
		Current:          st.Current(),
		Total:            st.Total(),
		Selections:       st.Selections(),
		Palette:          st.Palette(),
		RemainingSeconds: remaining,
		Clock:            quiz.Clock(remaining),
		Submitted:        st.Submitted(),
		Result:           st.Result(),
		StartedAt:        hs.startedAt,
	}
	if !st.Submitted() {
		q := st.CurrentQuestion()
		v.Question = &q
		if p, ok := st.Pending(); ok {
			v.Pending = &p
		}
	}
	return v
}
