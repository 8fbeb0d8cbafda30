package model

// LeaderboardEntry is one row of the leaderboard table
type LeaderboardEntry struct {
	ProfilePic string  `json:"profilePic"`
	Name       string  `json:"name"`
	College    string  `json:"college"`
	Score      float64 `json:"score"`
}

// LeaderboardResponse is returned by GET /api/leaderboard
type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
