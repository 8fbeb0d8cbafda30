package service

import "strings"

const (
	emptyMessageReply = "Please say something."
	fallbackReply     = "Sorry, I can only answer questions about this portal. Try asking about the 'leaderboard', 'assessments', 'profile', or your 'score'."
)

type chatRule struct {
	keywords []string
	reply    string
}

// Rules are tried in order; the first keyword found wins.
var chatRules = []chatRule{
	{[]string{"karthick"}, "Veerakarthick is a developer of the AI Academy portal."},
	{[]string{"sarjan"}, "Sarjan is a developer of the AI Academy portal."},
	{[]string{"vinith"}, "Vinith is a developer of the AI Academy portal."},
	{[]string{"leaderboard"}, "The leaderboard shows student rankings based on their average test scores. Scores are updated every time you complete a new assessment."},
	{[]string{"assessment", "test"}, "You can take tests on various subjects in the Assessments section. Your scores will contribute to your overall ranking on the leaderboard."},
	{[]string{"profile"}, "You can view and edit your profile details, including your name, college, and profile picture, on the Profile page."},
	{[]string{"score"}, "Your overall score is the average of the percentage you get on all completed tests. Keep taking assessments to improve it!"},
	{[]string{"dashboard"}, "The dashboard gives you an overview of your performance in tests and your progress in completing all the available courses."},
	{[]string{"hello", "hi"}, "Hello! How can I help you with the AI Academy portal today? You can ask me about the dashboard, assessments, profile, or leaderboard."},
}

// ChatbotService answers questions about the portal from fixed rules
type ChatbotService struct{}

func NewChatbotService() *ChatbotService {
	return &ChatbotService{}
}

// Reply matches keywords case-insensitively anywhere in message
func (s *ChatbotService) Reply(message string) string {
	if message == "" {
		return emptyMessageReply
	}
	msg := strings.ToLower(message)
	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.reply
			}
		}
	}
	return fallbackReply
}
