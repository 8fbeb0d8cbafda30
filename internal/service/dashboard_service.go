package service

import (
	"context"
	"fmt"
	"math"

	"aiacademy/internal/model"
)

var (
	monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	weekLabels  = []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"}
)

// DashboardService shapes a profile into chart data
type DashboardService struct {
	profiles *ProfileService
}

func NewDashboardService(profiles *ProfileService) *DashboardService {
	return &DashboardService{profiles: profiles}
}

func (s *DashboardService) Get(ctx context.Context, userID string) (*model.Dashboard, error) {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(user), nil
}

// BuildDashboard renders the donut and bar charts for user
func BuildDashboard(user *model.User) *model.Dashboard {
	completed, inProgress := user.Courses.Completed, user.Courses.InProgress
	d := &model.Dashboard{
		Name:                 user.Name,
		Greeting:             fmt.Sprintf("Welcome back, %s!", user.Name),
		Email:                user.Email,
		Degree:               user.Degree,
		College:              user.College,
		ProfileImageURL:      user.ProfileImageURL,
		CompletionPercentage: completionPercentage(completed, inProgress),
		Courses: model.DonutChart{
			Labels: []string{"Completed", "In Progress"},
			Values: []int{completed, inProgress},
		},
		Performance: map[string]model.BarChart{},
	}

	perf := user.Performance
	if perf == nil {
		perf = &model.Performance{}
	}
	d.Performance["monthly"] = barChart(monthLabels, perf.Monthly)
	d.Performance["weekly"] = barChart(weekLabels, perf.Weekly)
	return d
}

func completionPercentage(completed, inProgress int) int {
	total := completed + inProgress
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func barChart(labels []string, s model.Series) model.BarChart {
	return model.BarChart{
		Labels: labels,
		Datasets: []model.Dataset{
			{Label: "Attendance %", Data: padSeries(s.Attendance, len(labels))},
			{Label: "Highest Score %", Data: padSeries(s.Exam, len(labels))},
		},
	}
}

// padSeries fits data to n points, zero filling the tail
func padSeries(data []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, data)
	return out
}
