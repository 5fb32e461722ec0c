package validator

import (
	"fmt"

	"fileupload/internal/domain"
)

// Rule is one upload constraint: Check reports whether the file satisfies
// it, Message is returned to the client when it does not.
type Rule struct {
	Key     string
	Message string
	Check   func(*domain.CandidateFile) bool
	// Limit is the byte ceiling of a size rule, zero otherwise.
	Limit int64
}

// Rule keys.
const (
	RuleKeyMaxSize     = "file.max_size"
	RuleKeyContentType = "file.content_type"
)

// UploadValidator evaluates an ordered rule table against a candidate file.
type UploadValidator struct {
	rules []Rule
}

// NewUploadValidator creates a validator over the given rules, evaluated in
// order.
func NewUploadValidator(rules ...Rule) *UploadValidator {
	return &UploadValidator{rules: rules}
}

// DefaultUploadValidator enforces the 5 MiB ceiling and the JPEG, PNG, PDF,
// Markdown content-type allow list.
func DefaultUploadValidator() *UploadValidator {
	return NewUploadValidator(NewUploadRules(domain.MaxUploadSize, domain.AllowedContentTypes)...)
}

// NewUploadRules builds the size rule followed by the content-type rule.
func NewUploadRules(maxSize int64, allowed []string) []Rule {
	return []Rule{
		MaxSizeRule(maxSize),
		ContentTypeRule(allowed),
	}
}

// MaxSizeRule fails files larger than maxSize bytes.
func MaxSizeRule(maxSize int64) Rule {
	msg := domain.MsgFileTooLarge
	if maxSize != domain.MaxUploadSize {
		msg = "File size should be less than " + formatSize(maxSize)
	}
	return Rule{
		Key:     RuleKeyMaxSize,
		Message: msg,
		Check: func(f *domain.CandidateFile) bool {
			return f.Size() <= maxSize
		},
		Limit: maxSize,
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// ContentTypeRule fails files whose declared content type is not in allowed.
// The comparison is exact.
func ContentTypeRule(allowed []string) Rule {
	set := make(map[string]struct{}, len(allowed))
	for _, ct := range allowed {
		set[ct] = struct{}{}
	}
	return Rule{
		Key:     RuleKeyContentType,
		Message: domain.MsgUnsupportedType,
		Check: func(f *domain.CandidateFile) bool {
			_, ok := set[f.ContentType]
			return ok
		},
	}
}

// Result holds the outcome of validating one file.
type Result struct {
	File       *domain.CandidateFile
	Violations []string
}

// Valid reports whether every rule passed.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns nil for a valid file, otherwise a *domain.ValidationError
// listing every violation.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &domain.ValidationError{Reasons: r.Violations}
}

// Validate runs every rule and collects the message of each failing one.
func (v *UploadValidator) Validate(f *domain.CandidateFile) Result {
	res := Result{File: f}
	for _, rule := range v.rules {
		if !rule.Check(f) {
			res.Violations = append(res.Violations, rule.Message)
		}
	}
	return res
}

// SizeLimit returns the smallest byte ceiling among the size rules, or 0
// when no size rule is configured.
func (v *UploadValidator) SizeLimit() int64 {
	var limit int64
	for _, rule := range v.rules {
		if rule.Limit > 0 && (limit == 0 || rule.Limit < limit) {
			limit = rule.Limit
		}
	}
	return limit
}

// Rules returns the configured rules in evaluation order.
func (v *UploadValidator) Rules() []Rule {
	out := make([]Rule, len(v.rules))
	copy(out, v.rules)
	return out
}
