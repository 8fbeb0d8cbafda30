package model

// TotalCourses is the number of assessment topics offered
const TotalCourses = 9

// DefaultProfilePic is shown on the leaderboard for users without a picture
const DefaultProfilePic = "https://i.stack.imgur.com/34AD2.jpg"

// Courses counts assessment topics by completion
type Courses struct {
	Completed  int `json:"completed" bson:"completed"`
	InProgress int `json:"inProgress" bson:"inProgress"`
}

// Series is one chart granularity
type Series struct {
	Attendance []float64 `json:"attendance"`
	Exam       []float64 `json:"exam"`
}

// Performance holds both chart granularities
type Performance struct {
	Monthly Series `json:"monthly"`
	Weekly  Series `json:"weekly"`
}

// User is a registered student profile, keyed by the identity provider uid
type User struct {
	ID              string       `json:"-" bson:"_id"`
	Name            string       `json:"name" bson:"name"`
	Email           string       `json:"email" bson:"email"`
	RegisterNumber  string       `json:"registerNumber" bson:"registerNumber"`
	Degree          string       `json:"degree" bson:"degree"`
	Batch           string       `json:"batch" bson:"batch"`
	College         string       `json:"college" bson:"college"`
	ProfileImageURL string       `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	LastUpdated     string       `json:"lastUpdated" bson:"lastUpdated"`
	Courses         Courses      `json:"courses" bson:"courses"`
	OverallScore    float64      `json:"overallScore" bson:"overallScore"`
	ResultCount     int          `json:"-" bson:"resultCount"` // results behind OverallScore
	Performance     *Performance `json:"performance,omitempty" bson:"-"`
}

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	UID            string `json:"uid" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required,notblank"`
	RegisterNumber string `json:"registerNumber"`
	Degree         string `json:"degree"`
	Batch          string `json:"batch"`
	College        string `json:"college"`
}

// UpdateProfileRequest is the body of POST /api/user/{id}/update.
// Empty fields keep their stored value.
type UpdateProfileRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email" validate:"omitempty,email"`
	RegisterNumber string `json:"registerNumber"`
	Degree         string `json:"degree"`
	Batch          string `json:"batch"`
	College        string `json:"college"`
}

// Response is the envelope used by the portal endpoints
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// UserResponse is returned by GET /api/user/{id}
type UserResponse struct {
	Success bool  `json:"success"`
	Data    *User `json:"data"`
}

// ImageUploadResponse is returned by POST /api/user/{id}/upload_image
type ImageUploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}
