package bank

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"aiacademy/internal/model"
)

type file struct {
	Topics map[string]topicEntry `yaml:"topics"`
}

type topicEntry struct {
	Name      string           `yaml:"name"`
	Questions []model.Question `yaml:"questions"`
}

// Load parses a question bank YAML file
func Load(path string) ([]model.QuestionBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "bank.Load")
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads banks from YAML of the form
//
//	topics:
//	  python:
//	    name: Python Programming
//	    questions:
//	      - q: ...
//	        options: [...]
//	        answer: 1
//
// Banks come back sorted by topic key. A missing name falls back to the catalogue.
func Parse(r io.Reader) ([]model.QuestionBank, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "bank.Parse")
	}
	if len(doc.Topics) == 0 {
		return nil, errors.New("bank.Parse: no topics")
	}

	keys := make([]string, 0, len(doc.Topics))
	for k := range doc.Topics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	banks := make([]model.QuestionBank, 0, len(keys))
	for _, k := range keys {
		entry := doc.Topics[k]
		b := model.QuestionBank{Topic: k, Name: entry.Name, Questions: entry.Questions}
		if b.Name == "" {
			b.Name = TopicName(k)
		}
		if err := Validate(b); err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, nil
}

// Validate checks every question has at least two options and a valid answer
func Validate(b model.QuestionBank) error {
	if len(b.Questions) == 0 {
		return errors.Errorf("topic %s: no questions", b.Topic)
	}
	for i, q := range b.Questions {
		if q.Label == "" {
			return errors.Errorf("topic %s question %d: empty text", b.Topic, i+1)
		}
		if len(q.Options) < 2 {
			return errors.Errorf("topic %s question %d: need at least 2 options", b.Topic, i+1)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return errors.Errorf("topic %s question %d: answer %d out of range", b.Topic, i+1, q.Answer)
		}
	}
	return nil
}
