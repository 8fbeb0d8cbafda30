package model

// ChatRequest is the body of POST /api/chatbot
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the bot reply
type ChatResponse struct {
	Reply string `json:"reply"`
}
