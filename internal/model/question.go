package model

// Question is one multiple-choice item of a question bank
type Question struct {
	Label   string   `json:"q" bson:"q" yaml:"q"`
	Options []string `json:"options" bson:"options" yaml:"options"`
	Answer  int      `json:"answer" bson:"answer" yaml:"answer"` // index into Options
}

// QuestionView is what a test taker sees: no correct option
type QuestionView struct {
	Index   int      `json:"index"`
	Label   string   `json:"q"`
	Options []string `json:"options"`
}

// QuestionBank is the persisted set of questions for one topic
type QuestionBank struct {
	Topic     string     `json:"topic" bson:"topic"`
	Name      string     `json:"name" bson:"name"`
	Questions []Question `json:"questions" bson:"questions"`
}

// Topic is a catalogue entry shown on the assessments page
type Topic struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
