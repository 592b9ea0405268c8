package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

// AnswerValidationError lists the answers that broke their question's rules,
// keyed by question key.
type AnswerValidationError struct {
	Fields map[string]string
}

func (e *AnswerValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid answers: " + strings.Join(parts, "; ")
}

// AnswerValidator runs question rules, written as validator tags
// ("required,numeric", "omitempty,email", "oneof=yes no"), against answers.
type AnswerValidator struct {
	validate *validator.Validate
}

func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{validate: validator.New()}
}

// errRulePanic marks a validator panic: an unknown tag, or a tag that cannot
// apply to the value's type.
var errRulePanic = errors.New("rule cannot be applied")

// CheckRules reports a *ConfigurationError when rules is not a usable tag.
func (v *AnswerValidator) CheckRules(key, rules string) error {
	if strings.TrimSpace(rules) == "" {
		return nil
	}
	if _, err := v.run("", rules); err != nil {
		if errors.Is(err, errRulePanic) {
			return &utils.ConfigurationError{Key: "rules:" + key, Value: rules}
		}
		return err
	}
	return nil
}

func (v *AnswerValidator) run(value interface{}, rules string) (verr validator.ValidationErrors, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errRulePanic
		}
	}()
	if e := v.validate.Var(value, rules); e != nil {
		if ve, ok := e.(validator.ValidationErrors); ok {
			return ve, nil
		}
		return nil, e
	}
	return nil, nil
}

// Validate checks answers against the combined rules of questions and returns
// the answer rows to store. Keys that match no question are rejected. A
// missing answer is only checked when its rules contain "required".
func (v *AnswerValidator) Validate(questions []models.Question, answers map[string]interface{}) ([]models.Answer, error) {
	byKey := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byKey[q.Key] = q
	}
	rules := Rules(questions)

	fields := map[string]string{}
	for key := range answers {
		if _, ok := byKey[key]; !ok {
			fields[key] = "unknown question"
		}
	}

	out := make([]models.Answer, 0, len(answers))
	for _, q := range questions {
		// trùng key: chỉ câu hỏi cuối cùng được dùng
		if byKey[q.Key].ID != q.ID {
			continue
		}
		value, present := answers[q.Key]
		tag := strings.TrimSpace(rules[q.Key])

		if tag != "" && (present || hasRequired(tag)) {
			// stored rules that never parse are the survey's fault, not the client's
			if err := v.CheckRules(q.Key, tag); err != nil {
				return nil, err
			}
			verrs, err := v.run(value, tag)
			if errors.Is(err, errRulePanic) {
				fields[q.Key] = "unsupported value"
				continue
			}
			if err != nil {
				return nil, err
			}
			if len(verrs) > 0 {
				fields[q.Key] = fmt.Sprintf("failed on %q", verrs[0].Tag())
				continue
			}
		}
		if !present || value == nil {
			continue
		}
		s, err := answerString(value)
		if err != nil {
			fields[q.Key] = "unsupported value"
			continue
		}
		out = append(out, models.Answer{QuestionID: q.ID, Value: s})
	}

	if len(fields) > 0 {
		return nil, &AnswerValidationError{Fields: fields}
	}
	return out, nil
}

func hasRequired(tag string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.HasPrefix(strings.TrimSpace(part), "required") {
			return true
		}
	}
	return false
}

func answerString(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
