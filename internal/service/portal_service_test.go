package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiacademy/internal/logger"
	"aiacademy/internal/model"
)

type portalFixture struct {
	users       *fakeUserRepo
	results     *fakeResultRepo
	images      *fakeImageStore
	leaderboard *fakeLeaderboard
	profiles    *ProfileService
	resultSvc   *ResultService
	now         time.Time
}

func newPortalFixture(users ...*model.User) *portalFixture {
	f := &portalFixture{
		users:       newFakeUserRepo(users...),
		results:     &fakeResultRepo{},
		images:      &fakeImageStore{uploaded: map[string][]byte{}},
		leaderboard: newFakeLeaderboard(),
		now:         time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC),
	}
	f.profiles = NewProfileService(f.users, f.results, f.images, f.leaderboard, logger.Discard())
	f.profiles.now = func() time.Time { return f.now }
	f.resultSvc = NewResultService(f.users, f.results, f.leaderboard, logger.Discard())
	f.resultSvc.now = func() time.Time { return f.now }
	return f
}

func TestProfileRegister(t *testing.T) {
	f := newPortalFixture()
	ctx := context.Background()

	err := f.profiles.Register(ctx, &model.RegisterRequest{
		UID: "u1", Email: "ada@example.com", Name: "Ada", College: "MIT",
	})
	require.NoError(t, err)

	stored, _ := f.users.GetByID(ctx, "u1")
	require.NotNil(t, stored)
	assert.Equal(t, "Ada", stored.Name)
	assert.Equal(t, model.Courses{}, stored.Courses)
	assert.Zero(t, stored.OverallScore)
	assert.Equal(t, "05/03/2025 02:30 PM", stored.LastUpdated)

	score, ok := f.leaderboard.scores["u1"]
	assert.True(t, ok)
	assert.Zero(t, score)
}

func TestProfileGetDerivesCoursesAndPerformance(t *testing.T) {
	f := newPortalFixture(&model.User{ID: "u1", Name: "Ada"})
	ctx := context.Background()
	add := func(topic string, month time.Month, pct float64) {
		_ = f.results.Create(ctx, &model.TestResult{
			UserID: "u1", Topic: topic, Percentage: pct,
			Timestamp: time.Date(2025, month, 10, 0, 0, 0, 0, time.UTC),
		})
	}
	add("python", time.January, 40)
	add("python", time.January, 80)
	add("sql", time.March, 60)
	add("python", time.March, 20)

	user, err := f.profiles.Get(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, model.Courses{Completed: 2, InProgress: 7}, user.Courses)
	require.NotNil(t, user.Performance)
	assert.Equal(t, []float64{80, 0, 60, 0, 0, 0, 0, 0, 0, 0, 0, 0}, user.Performance.Monthly.Exam)
	assert.Equal(t, []float64{90, 85, 92, 88, 95, 91, 89, 93, 94, 91, 93, 90}, user.Performance.Monthly.Attendance)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, user.Performance.Weekly.Exam)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, user.Performance.Weekly.Attendance)
}

func TestProfileGetUnknownUser(t *testing.T) {
	f := newPortalFixture()
	_, err := f.profiles.Get(context.Background(), "ghost")
	assert.Equal(t, ErrUserNotFound, errors.Cause(err))
}

func TestProfileUpdateMergesNonEmptyFields(t *testing.T) {
	f := newPortalFixture(&model.User{
		ID: "u1", Name: "Ada", Email: "ada@example.com", College: "MIT", Degree: "BSc", OverallScore: 75.5,
	})
	ctx := context.Background()

	err := f.profiles.Update(ctx, "u1", &model.UpdateProfileRequest{College: "Stanford", Batch: "2026"})
	require.NoError(t, err)

	u, _ := f.users.GetByID(ctx, "u1")
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "BSc", u.Degree)
	assert.Equal(t, "Stanford", u.College)
	assert.Equal(t, "2026", u.Batch)
	assert.Equal(t, 75.5, u.OverallScore)

	err = f.profiles.Update(ctx, "ghost", &model.UpdateProfileRequest{Name: "x"})
	assert.Equal(t, ErrUserNotFound, errors.Cause(err))
}

func TestProfileUploadImage(t *testing.T) {
	f := newPortalFixture(&model.User{ID: "u1", Name: "Ada"})
	ctx := context.Background()

	url, err := f.profiles.UploadImage(ctx, "u1", "me.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "https://img.example.com/quiz_portal_profiles/u1.jpg", url)
	assert.Equal(t, []byte("png-bytes"), f.images.uploaded["u1"])
	u, _ := f.users.GetByID(ctx, "u1")
	assert.Equal(t, url, u.ProfileImageURL)
}

func TestResultSubmitAveragesPercentages(t *testing.T) {
	f := newPortalFixture(&model.User{ID: "u1", Name: "Ada"})
	ctx := context.Background()

	overall, err := f.resultSvc.Submit(ctx, "u1", &model.SubmitTestRequest{Topic: "python", Score: 3, TotalQuestions: 5})
	require.NoError(t, err)
	assert.Equal(t, 60.0, overall)

	overall, err = f.resultSvc.Submit(ctx, "u1", &model.SubmitTestRequest{Topic: "sql", Score: 2, TotalQuestions: 3})
	require.NoError(t, err)
	// (60 + 66.666...) / 2
	assert.Equal(t, 63.33, overall)

	u, _ := f.users.GetByID(ctx, "u1")
	assert.Equal(t, 63.33, u.OverallScore)
	assert.Equal(t, model.Courses{Completed: 2, InProgress: 7}, u.Courses)
	assert.Equal(t, 63.33, f.leaderboard.scores["u1"])

	stored := f.results.forUser("u1")
	require.Len(t, stored, 2)
	assert.Equal(t, 60.0, stored[0].Percentage)
	assert.Equal(t, f.now, stored[0].Timestamp)
}

func TestResultSubmitUnknownUser(t *testing.T) {
	f := newPortalFixture()
	_, err := f.resultSvc.Submit(context.Background(), "ghost", &model.SubmitTestRequest{Topic: "python", Score: 1, TotalQuestions: 1})
	assert.Equal(t, ErrUserNotFound, errors.Cause(err))
	assert.Empty(t, f.results.results)
}

func TestResultSubmitSurvivesLeaderboardOutage(t *testing.T) {
	f := newPortalFixture(&model.User{ID: "u1"})
	f.leaderboard.err = errors.New("redis down")

	overall, err := f.resultSvc.Submit(context.Background(), "u1", &model.SubmitTestRequest{Topic: "java", Score: 1, TotalQuestions: 4})
	require.NoError(t, err)
	assert.Equal(t, 25.0, overall)
	assert.NotContains(t, f.leaderboard.scores, "u1")

	u, _ := f.users.GetByID(context.Background(), "u1")
	assert.Equal(t, 25.0, u.OverallScore)
}

func TestResultSubmitKeepsNewerOverallScore(t *testing.T) {
	// another submit already stored an average over three results
	f := newPortalFixture(&model.User{ID: "u1", OverallScore: 90, ResultCount: 3})
	ctx := context.Background()

	overall, err := f.resultSvc.Submit(ctx, "u1", &model.SubmitTestRequest{Topic: "sql", Score: 1, TotalQuestions: 4})
	require.NoError(t, err)
	assert.Equal(t, 25.0, overall)

	u, _ := f.users.GetByID(ctx, "u1")
	assert.Equal(t, 90.0, u.OverallScore)
	assert.Equal(t, 3, u.ResultCount)
	assert.NotContains(t, f.leaderboard.scores, "u1")
}

func TestLeaderboardFromCache(t *testing.T) {
	f := newPortalFixture(
		&model.User{ID: "a", Name: "Ada", College: "MIT", ProfileImageURL: "https://img/a.jpg", OverallScore: 70},
		&model.User{ID: "b", Name: "Bob", College: "CMU", OverallScore: 90},
	)
	ctx := context.Background()
	_ = f.leaderboard.UpdateScore(ctx, "a", 70)
	_ = f.leaderboard.UpdateScore(ctx, "b", 90)

	svc := NewLeaderboardService(f.users, f.leaderboard, logger.Discard())
	entries, err := svc.Top(ctx)
	require.NoError(t, err)

	assert.Equal(t, []model.LeaderboardEntry{
		{ProfilePic: model.DefaultProfilePic, Name: "Bob", College: "CMU", Score: 90},
		{ProfilePic: "https://img/a.jpg", Name: "Ada", College: "MIT", Score: 70},
	}, entries)
	assert.Zero(t, f.leaderboard.replaced)
}

func TestLeaderboardColdCacheFallsBackAndWarms(t *testing.T) {
	f := newPortalFixture(
		&model.User{ID: "a", Name: "Ada", OverallScore: 55},
		&model.User{ID: "b", Name: "Bob", OverallScore: 80.25},
	)
	ctx := context.Background()

	svc := NewLeaderboardService(f.users, f.leaderboard, logger.Discard())
	entries, err := svc.Top(ctx)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "Bob", entries[0].Name)
	assert.Equal(t, 80.25, entries[0].Score)
	assert.Equal(t, model.DefaultProfilePic, entries[0].ProfilePic)
	assert.Equal(t, map[string]float64{"a": 55, "b": 80.25}, f.leaderboard.scores)
	assert.Equal(t, 1, f.leaderboard.replaced)
}

func TestLeaderboardRebuildsPartialRanking(t *testing.T) {
	f := newPortalFixture(
		&model.User{ID: "a", Name: "Ada", OverallScore: 80},
		&model.User{ID: "b", Name: "Bob", OverallScore: 60},
	)
	ctx := context.Background()

	// Redis lost the ranking, then a new student registered
	require.NoError(t, f.profiles.Register(ctx, &model.RegisterRequest{UID: "c", Email: "cy@example.com", Name: "Cy"}))
	require.Len(t, f.leaderboard.scores, 1)

	svc := NewLeaderboardService(f.users, f.leaderboard, logger.Discard())
	entries, err := svc.Top(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"Ada", "Bob", "Cy"}, []string{entries[0].Name, entries[1].Name, entries[2].Name})
	assert.Equal(t, 1, f.leaderboard.replaced)

	// the rebuilt ranking covers everyone, so the next read is served from it
	_, err = svc.Top(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.leaderboard.replaced)
}

func TestLeaderboardDropsDeletedMembers(t *testing.T) {
	f := newPortalFixture(&model.User{ID: "a", Name: "Ada", OverallScore: 70})
	ctx := context.Background()
	_ = f.leaderboard.UpdateScore(ctx, "a", 70)
	_ = f.leaderboard.UpdateScore(ctx, "gone", 99)

	entries, err := NewLeaderboardService(f.users, f.leaderboard, logger.Discard()).Top(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada", entries[0].Name)
	assert.Equal(t, map[string]float64{"a": 70}, f.leaderboard.scores)
}

func TestLeaderboardCacheOutageUsesDatabase(t *testing.T) {
	f := newPortalFixture(
		&model.User{ID: "a", Name: "Ada", OverallScore: 40},
		&model.User{ID: "b", Name: "Bob", OverallScore: 75},
	)
	f.leaderboard.err = errors.New("redis down")

	entries, err := NewLeaderboardService(f.users, f.leaderboard, logger.Discard()).Top(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Bob", entries[0].Name)
	assert.Equal(t, 40.0, entries[1].Score)
}

func TestLeaderboardLimit(t *testing.T) {
	var users []*model.User
	for i := 0; i < LeaderboardSize+20; i++ {
		users = append(users, &model.User{ID: string(rune('A'+i%26)) + strings.Repeat("x", i), OverallScore: float64(i)})
	}
	f := newPortalFixture(users...)

	entries, err := NewLeaderboardService(f.users, f.leaderboard, logger.Discard()).Top(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, LeaderboardSize)
	assert.Equal(t, float64(LeaderboardSize+19), entries[0].Score)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
	}
}

func TestChatbotReply(t *testing.T) {
	bot := NewChatbotService()
	tests := []struct {
		msg  string
		want string
	}{
		{"", "Please say something."},
		{"Who is KARTHICK?", "Veerakarthick is a developer of the AI Academy portal."},
		{"sarjan and vinith", "Sarjan is a developer of the AI Academy portal."},
		{"tell me about vinith", "Vinith is a developer of the AI Academy portal."},
		{"leaderboard test", "The leaderboard shows student rankings based on their average test scores. Scores are updated every time you complete a new assessment."},
		{"how do I take a Test", "You can take tests on various subjects in the Assessments section. Your scores will contribute to your overall ranking on the leaderboard."},
		{"edit profile", "You can view and edit your profile details, including your name, college, and profile picture, on the Profile page."},
		{"my score?", "Your overall score is the average of the percentage you get on all completed tests. Keep taking assessments to improve it!"},
		{"what is the dashboard", "The dashboard gives you an overview of your performance in tests and your progress in completing all the available courses."},
		{"Hello", "Hello! How can I help you with the AI Academy portal today? You can ask me about the dashboard, assessments, profile, or leaderboard."},
		{"this", "Hello! How can I help you with the AI Academy portal today? You can ask me about the dashboard, assessments, profile, or leaderboard."},
		{"weather", "Sorry, I can only answer questions about this portal. Try asking about the 'leaderboard', 'assessments', 'profile', or your 'score'."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bot.Reply(tt.msg), "message %q", tt.msg)
	}
}

func TestBuildDashboard(t *testing.T) {
	user := &model.User{
		Name: "Ada", Email: "ada@example.com", Degree: "BSc", College: "MIT",
		Courses: model.Courses{Completed: 2, InProgress: 7},
		Performance: &model.Performance{
			Monthly: model.Series{Attendance: monthlyAttendance, Exam: []float64{80, 0, 60}},
			Weekly:  model.Series{Attendance: make([]float64, 5), Exam: make([]float64, 5)},
		},
	}

	d := BuildDashboard(user)

	assert.Equal(t, "Welcome back, Ada!", d.Greeting)
	assert.Equal(t, 22, d.CompletionPercentage)
	assert.Equal(t, []string{"Completed", "In Progress"}, d.Courses.Labels)
	assert.Equal(t, []int{2, 7}, d.Courses.Values)

	monthly := d.Performance["monthly"]
	assert.Len(t, monthly.Labels, 12)
	assert.Equal(t, "Jan", monthly.Labels[0])
	require.Len(t, monthly.Datasets, 2)
	assert.Equal(t, "Attendance %", monthly.Datasets[0].Label)
	assert.Equal(t, "Highest Score %", monthly.Datasets[1].Label)
	assert.Equal(t, []float64{80, 0, 60, 0, 0, 0, 0, 0, 0, 0, 0, 0}, monthly.Datasets[1].Data)

	weekly := d.Performance["weekly"]
	assert.Equal(t, []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}, weekly.Labels)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, completionPercentage(0, 0))
	assert.Equal(t, 0, completionPercentage(0, 9))
	assert.Equal(t, 11, completionPercentage(1, 8))
	assert.Equal(t, 56, completionPercentage(5, 4))
	assert.Equal(t, 100, completionPercentage(9, 0))
}

func TestDashboardServiceUsesProfile(t *testing.T) {
	f := newPortalFixture(&model.User{ID: "u1", Name: "Ada"})
	d, err := NewDashboardService(f.profiles).Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 9}, d.Courses.Values)
	assert.Equal(t, 0, d.CompletionPercentage)

	_, err = NewDashboardService(f.profiles).Get(context.Background(), "ghost")
	assert.Equal(t, ErrUserNotFound, errors.Cause(err))
}
