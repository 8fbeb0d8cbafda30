// Package docs registers the Swagger document served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/register": {"post": {"tags": ["user"], "summary": "Store a new student profile", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Sign in with email and password", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Create an account and its profile", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/user/{id}": {"get": {"tags": ["user"], "summary": "Profile with courses and performance", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/user/{id}/update": {"post": {"tags": ["user"], "summary": "Update profile fields", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/user/{id}/upload_image": {"post": {"tags": ["user"], "summary": "Upload a profile picture", "consumes": ["multipart/form-data"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "file", "name": "profileImage", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/user/{id}/submit_test": {"post": {"tags": ["user"], "summary": "Record a finished assessment", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/user/{id}/dashboard": {"get": {"tags": ["user"], "summary": "Chart data for the dashboard", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/leaderboard": {"get": {"tags": ["portal"], "summary": "Top 100 students by overall score", "responses": {"200": {"description": "OK"}}}},
        "/api/chatbot": {"post": {"tags": ["portal"], "summary": "Help chatbot reply", "responses": {"200": {"description": "OK"}}}},
        "/api/topics": {"get": {"tags": ["quiz"], "summary": "Assessment topics", "responses": {"200": {"description": "OK"}}}},
        "/api/quiz/sessions": {"post": {"tags": ["quiz"], "summary": "Start a timed attempt", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}},
        "/api/quiz/sessions/{id}": {"get": {"tags": ["quiz"], "summary": "Current session view", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}},
        "/api/quiz/sessions/{id}/selection": {"put": {"tags": ["quiz"], "summary": "Choose an option", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/quiz/sessions/{id}/goto/{index}": {"post": {"tags": ["quiz"], "summary": "Jump to a question", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/quiz/sessions/{id}/save-next": {"post": {"tags": ["quiz"], "summary": "Save and move on", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/quiz/sessions/{id}/mark-review": {"post": {"tags": ["quiz"], "summary": "Mark for review and move on", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/quiz/sessions/{id}/clear": {"post": {"tags": ["quiz"], "summary": "Clear the current answer", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/quiz/sessions/{id}/submit": {"post": {"tags": ["quiz"], "summary": "Score the attempt", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AI Academy API",
	Description:      "Student portal with timed assessments",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
