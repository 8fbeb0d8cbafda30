package service

import (
	"context"
	"io"
	"time"

	"dario.cat/mergo"
	"github.com/pkg/errors"

	"aiacademy/internal/cache"
	"aiacademy/internal/logger"
	"aiacademy/internal/model"
	"aiacademy/internal/repository"
)

// lastUpdatedLayout renders like "05/03/2025 02:30 PM"
const lastUpdatedLayout = "02/01/2006 03:04 PM"

// monthlyAttendance is the attendance series shown until attendance is tracked
var monthlyAttendance = []float64{90, 85, 92, 88, 95, 91, 89, 93, 94, 91, 93, 90}

const weeksShown = 5

// ProfileService handles student profiles
type ProfileService struct {
	users       repository.UserRepo
	results     repository.ResultRepo
	images      ImageStore
	leaderboard cache.LeaderboardCache
	log         logger.Logger
	now         func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(
	users repository.UserRepo,
	results repository.ResultRepo,
	images ImageStore,
	leaderboard cache.LeaderboardCache,
	log logger.Logger,
) *ProfileService {
	return &ProfileService{
		users:       users,
		results:     results,
		images:      images,
		leaderboard: leaderboard,
		log:         log,
		now:         time.Now,
	}
}

// Register stores a fresh profile with no courses and a zero score.
// An existing profile under the same uid is replaced.
func (s *ProfileService) Register(ctx context.Context, in *model.RegisterRequest) error {
	user := &model.User{
		ID:             in.UID,
		Name:           in.Name,
		Email:          in.Email,
		RegisterNumber: in.RegisterNumber,
		Degree:         in.Degree,
		Batch:          in.Batch,
		College:        in.College,
		LastUpdated:    s.stamp(),
		Courses:        model.Courses{Completed: 0, InProgress: 0},
		OverallScore:   0,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Wrap(err, "failed to save user")
	}

	if err := s.leaderboard.UpdateScore(ctx, user.ID, 0); err != nil {
		s.log.Warn("leaderboard: could not add user", err, map[string]interface{}{"uid": user.ID})
	}
	return nil
}

// Get returns the profile with courses and performance derived from results
func (s *ProfileService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	topics, err := s.results.CompletedTopics(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count completed topics")
	}
	best, err := s.results.MonthlyBest(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate monthly scores")
	}

	user.Courses = coursesFor(len(topics))
	user.Performance = &model.Performance{
		Monthly: model.Series{
			Attendance: append([]float64(nil), monthlyAttendance...),
			Exam:       best[:],
		},
		Weekly: model.Series{
			Attendance: make([]float64, weeksShown),
			Exam:       make([]float64, weeksShown),
		},
	}
	return user, nil
}

// Update merges the non-empty fields of in over the stored profile
func (s *ProfileService) Update(ctx context.Context, id string, in *model.UpdateProfileRequest) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return ErrUserNotFound
	}

	patch := model.User{
		Name:           in.Name,
		Email:          in.Email,
		RegisterNumber: in.RegisterNumber,
		Degree:         in.Degree,
		Batch:          in.Batch,
		College:        in.College,
		LastUpdated:    s.stamp(),
	}
	if err := mergo.Merge(user, patch, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "failed to merge profile")
	}
	return errors.Wrap(s.users.Save(ctx, user), "failed to save user")
}

// UploadImage hosts a new profile picture and stores its URL
func (s *ProfileService) UploadImage(ctx context.Context, id, filename string, r io.Reader) (string, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return "", errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	url, err := s.images.Upload(ctx, id, filename, r)
	if err != nil {
		return "", err
	}
	if err := s.users.SetProfileImage(ctx, id, url, s.stamp()); err != nil {
		return "", errors.Wrap(err, "failed to save image url")
	}
	return url, nil
}

func (s *ProfileService) stamp() string {
	return s.now().Format(lastUpdatedLayout)
}

func coursesFor(completed int) model.Courses {
	if completed > model.TotalCourses {
		completed = model.TotalCourses
	}
	return model.Courses{Completed: completed, InProgress: model.TotalCourses - completed}
}
