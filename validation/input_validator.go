// Package validation provides input validation for the patient API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/metricare/patient-api/interfaces"
)

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all validations
var (
	// Drug names: alphanumeric + spaces + safe pharmaceutical punctuation
	drugNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'/%(),]+$`)

	// Patient ids: alphanumeric with hyphens (e.g. BIO-20231205)
	patientIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct{}

// Compile-time check to ensure InputValidatorImpl implements InputValidator
var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateDrugName validates a drug name or search query
func (v *InputValidatorImpl) ValidateDrugName(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("drug name cannot be empty")
	}

	if len(input) < 2 {
		return fmt.Errorf("drug name too short: minimum 2 characters")
	}

	if len(input) > 100 {
		return fmt.Errorf("drug name too long: maximum 100 characters")
	}

	// Word count validation to prevent abusive queries with many short words
	words := strings.Fields(input)
	if len(words) > 6 {
		return fmt.Errorf("drug name too complex: maximum 6 words allowed")
	}

	// Check for potentially dangerous patterns using string matching (5-10x faster than regex)
	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !drugNameRegex.MatchString(input) {
		return fmt.Errorf("drug name contains invalid characters. Only letters, numbers, spaces, and common pharmaceutical punctuation are allowed")
	}

	if v.hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// ValidatePatientID validates a patient identifier path parameter
func (v *InputValidatorImpl) ValidatePatientID(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("patient id cannot be empty")
	}

	if len(input) > 64 {
		return fmt.Errorf("patient id too long: maximum 64 characters")
	}

	if !patientIDRegex.MatchString(input) {
		return fmt.Errorf("patient id contains invalid characters. Only letters, numbers and hyphens are allowed")
	}

	return nil
}

// hasExcessiveRepetition checks for abuse patterns with excessive character repetition
func (v *InputValidatorImpl) hasExcessiveRepetition(input string) bool {
	// Same character repeated more than 10 times consecutively
	for i := 0; i < len(input)-10; i++ {
		allSame := true
		for j := 1; j <= 10; j++ {
			if input[i] != input[i+j] {
				allSame = false
				break
			}
		}
		if allSame {
			return true
		}
	}
	return false
}
