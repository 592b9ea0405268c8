package services

import "github.com/vnkhanh/survey-kit/models"

// Rules builds the question key -> rule set mapping in question order. A later
// question with the same key overwrites an earlier one.
func Rules(questions []models.Question) map[string]string {
	out := make(map[string]string, len(questions))
	for _, q := range questions {
		out[q.Key] = q.Rules
	}
	return out
}
