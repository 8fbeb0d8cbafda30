package bank

import "aiacademy/internal/model"

// UnknownTopicName is shown for topic keys outside the catalogue
const UnknownTopicName = "Unknown Test"

// Topics is the assessment catalogue in display order
var Topics = []model.Topic{
	{Key: "python", Name: "Python Programming"},
	{Key: "java", Name: "Java Programming"},
	{Key: "cplusplus", Name: "C++ Programming"},
	{Key: "javascript", Name: "JavaScript"},
	{Key: "sql", Name: "SQL & Databases"},
	{Key: "dsa", Name: "Data Structures & Algorithms"},
	{Key: "quantitative", Name: "Quantitative Aptitude"},
	{Key: "logical", Name: "Logical Reasoning"},
	{Key: "verbal", Name: "Verbal Ability"},
}

var topicNames = func() map[string]string {
	m := make(map[string]string, len(Topics))
	for _, t := range Topics {
		m[t.Key] = t.Name
	}
	return m
}()

// TopicName maps a topic key to its display name
func TopicName(key string) string {
	if name, ok := topicNames[key]; ok {
		return name
	}
	return UnknownTopicName
}

// IsKnown reports whether key is in the catalogue
func IsKnown(key string) bool {
	_, ok := topicNames[key]
	return ok
}
