package service

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"aiacademy/internal/cache"
	"aiacademy/internal/logger"
	"aiacademy/internal/model"
	"aiacademy/internal/repository"
)

// ResultService records finished tests and keeps overall scores current
type ResultService struct {
	users       repository.UserRepo
	results     repository.ResultRepo
	leaderboard cache.LeaderboardCache
	log         logger.Logger
	now         func() time.Time
}

// NewResultService creates a new result service
func NewResultService(
	users repository.UserRepo,
	results repository.ResultRepo,
	leaderboard cache.LeaderboardCache,
	log logger.Logger,
) *ResultService {
	return &ResultService{
		users:       users,
		results:     results,
		leaderboard: leaderboard,
		log:         log,
		now:         time.Now,
	}
}

// Submit stores a result, then recomputes the user's overall score as the
// mean percentage of all results rounded to two decimals. Concurrent submits
// for one user may finish out of order; the score built from more results wins.
func (s *ResultService) Submit(ctx context.Context, userID string, in *model.SubmitTestRequest) (float64, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	now := s.now()
	result := &model.TestResult{
		UserID:         userID,
		Topic:          in.Topic,
		Score:          in.Score,
		TotalQuestions: in.TotalQuestions,
		Percentage:     in.Percentage(),
		Timestamp:      now,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return 0, errors.Wrap(err, "failed to save result")
	}

	avg, count, err := s.results.AveragePercentage(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to average results")
	}
	overall := roundTo2(avg)
	current, err := s.users.SetOverallScore(ctx, userID, overall, count, now.Format(lastUpdatedLayout))
	if err != nil {
		return 0, errors.Wrap(err, "failed to update overall score")
	}

	if topics, err := s.results.CompletedTopics(ctx, userID); err != nil {
		s.log.Warn("results: could not count topics", err, map[string]interface{}{"uid": userID})
	} else if err := s.users.SetCourses(ctx, userID, coursesFor(len(topics))); err != nil {
		s.log.Warn("results: could not store courses", err, map[string]interface{}{"uid": userID})
	}

	if !current {
		// a submit that saw more results has already stored its score
		return overall, nil
	}
	if err := s.leaderboard.UpdateScore(ctx, userID, overall); err != nil {
		s.log.Warn("leaderboard: could not update score", err, map[string]interface{}{"uid": userID})
	}
	return overall, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
