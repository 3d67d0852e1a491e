// Package validation gates input to the interaction engine: request
// hygiene for every user-supplied string, and recognition of medication
// names before any pair work runs.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/interfaces"
)

// MaxInputLength is the longest medication name accepted.
const MaxInputLength = 100

// maxWords bounds the number of words in one name.
const maxWords = 8

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all validations
var (
	// Letters (any script), digits, spaces and the punctuation found in
	// drug names: "co-trimoxazole", "vitamin b12", "tylenol #3", "5%"
	inputRegex = regexp.MustCompile(`^[\p{L}\p{M}0-9\s\-\.\+'/,#%()]+$`)

	alnumRegex = regexp.MustCompile(`[\p{L}0-9]`)

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
		// LDAP injection patterns
		"*)(", "*|(", "*)%",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// Recognizer reports whether a name refers to a known drug.
type Recognizer interface {
	IsRecognized(name string) bool
}

// Compile-time check to ensure DataValidatorImpl implements InputValidator
var _ interfaces.InputValidator = (*DataValidatorImpl)(nil)

// DataValidatorImpl implements the interfaces.InputValidator interface
type DataValidatorImpl struct {
	recognizer Recognizer
}

// NewDataValidator creates a validator backed by the given recognizer
func NewDataValidator(recognizer Recognizer) *DataValidatorImpl {
	return &DataValidatorImpl{recognizer: recognizer}
}

// ValidateMedications partitions names by recognition, keeping input
// order. Blank names are invalid.
func (v *DataValidatorImpl) ValidateMedications(names []string) entities.ValidationResult {
	result := entities.ValidationResult{
		Valid:   []string{},
		Invalid: []string{},
	}

	for _, name := range names {
		if strings.TrimSpace(name) != "" && v.recognizer.IsRecognized(name) {
			result.Valid = append(result.Valid, name)
		} else {
			result.Invalid = append(result.Invalid, name)
		}
	}

	return result
}

// ValidateMedicationList checks batch size and every name's hygiene.
func (v *DataValidatorImpl) ValidateMedicationList(names []string, max int) error {
	if len(names) == 0 {
		return fmt.Errorf("at least one medication is required")
	}
	if max > 0 && len(names) > max {
		return fmt.Errorf("too many medications: maximum %d allowed", max)
	}

	for i, name := range names {
		if err := v.ValidateInput(name); err != nil {
			return fmt.Errorf("medication %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateInput validates user input strings with enhanced security
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > MaxInputLength {
		return fmt.Errorf("input too long: maximum %d characters", MaxInputLength)
	}

	// Word count validation to prevent DoS attacks with many short words
	if len(strings.Fields(input)) > maxWords {
		return fmt.Errorf("input too complex: maximum %d words allowed", maxWords)
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces and - . + ' / , # %% ( ) are allowed")
	}

	if !alnumRegex.MatchString(input) {
		return fmt.Errorf("input must contain at least one letter or digit")
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// hasExcessiveRepetition checks for the same byte repeated more than 10
// times consecutively
func hasExcessiveRepetition(input string) bool {
	run := 1
	for i := 1; i < len(input); i++ {
		if input[i] == input[i-1] {
			run++
			if run > 10 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
