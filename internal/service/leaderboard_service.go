package service

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"aiacademy/internal/cache"
	"aiacademy/internal/logger"
	"aiacademy/internal/model"
	"aiacademy/internal/repository"
)

// LeaderboardSize is the number of ranked users returned
const LeaderboardSize = 100

// LeaderboardService ranks users by overall score. Redis holds the
// ranking; it is rebuilt from Mongo whenever it does not cover every user.
type LeaderboardService struct {
	users repository.UserRepo
	cache cache.LeaderboardCache
	log   logger.Logger
}

func NewLeaderboardService(users repository.UserRepo, lb cache.LeaderboardCache, log logger.Logger) *LeaderboardService {
	return &LeaderboardService{users: users, cache: lb, log: log}
}

// Top returns up to LeaderboardSize users, highest score first
func (s *LeaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	ranked, err := s.ranked(ctx)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.UserID
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ranked users")
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]model.LeaderboardEntry, 0, len(ranked))
	for _, r := range ranked {
		u, ok := byID[r.UserID]
		if !ok {
			continue // deleted since it was ranked
		}
		entries = append(entries, entryFor(u, r.Score))
	}
	return entries, nil
}

// ranked reads the top of the ZSET when it holds exactly one member per
// user, and rebuilds it from Mongo otherwise
func (s *LeaderboardService) ranked(ctx context.Context) ([]cache.ScoreEntry, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	size, err := s.cache.Size(ctx)
	if err != nil {
		s.log.Warn("leaderboard: cache read failed, using database", err)
		return s.rebuild(ctx)
	}
	if size != total {
		return s.rebuild(ctx)
	}

	top, err := s.cache.GetTop(ctx, LeaderboardSize)
	if err != nil {
		s.log.Warn("leaderboard: cache read failed, using database", err)
		return s.rebuild(ctx)
	}
	return top, nil
}

func (s *LeaderboardService) rebuild(ctx context.Context) ([]cache.ScoreEntry, error) {
	users, err := s.users.ListScores(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user scores")
	}

	entries := make([]cache.ScoreEntry, len(users))
	for i, u := range users {
		entries[i] = cache.ScoreEntry{UserID: u.ID, Score: u.OverallScore}
	}
	// same order as ZREVRANGE: score, then member, both descending
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID > entries[j].UserID
	})

	if err := s.cache.Replace(ctx, entries); err != nil {
		s.log.Warn("leaderboard: could not rebuild cache", err)
	}
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries, nil
}

func entryFor(u *model.User, score float64) model.LeaderboardEntry {
	pic := u.ProfileImageURL
	if pic == "" {
		pic = model.DefaultProfilePic
	}
	return model.LeaderboardEntry{
		ProfilePic: pic,
		Name:       u.Name,
		College:    u.College,
		Score:      score,
	}
}
