package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxSubjectLen is the column limit on question subjects.
	MaxSubjectLen = 200
	// MaxContentLen bounds question and answer bodies against unreasonable inputs.
	MaxContentLen = 50000
)

// ValidateSubject checks a question subject for presence and length.
func ValidateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if utf8.RuneCountInString(subject) > MaxSubjectLen {
		return fmt.Errorf("subject must not exceed %d characters", MaxSubjectLen)
	}
	return nil
}

// ValidateContent checks a question or answer body for presence and length.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > MaxContentLen {
		return fmt.Errorf("content must not exceed %d characters", MaxContentLen)
	}
	return nil
}
