package tools

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrValidation marks malformed tool arguments. Such calls never reach the
// analysis.
var ErrValidation = errors.New("invalid arguments")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("revision", isRevision)
	return v
}

// isRevision accepts a single branch, tag or commit name. Option-like values
// and ranges are refused so they are never handed to git.
func isRevision(fl validator.FieldLevel) bool {
	ref := strings.TrimSpace(fl.Field().String())
	if ref == "" {
		return true
	}
	return !strings.HasPrefix(ref, "-") &&
		!strings.Contains(ref, "..") &&
		!strings.ContainsFunc(ref, func(r rune) bool { return r <= ' ' || r == 0x7f })
}

// bindArguments decodes the call arguments into target and validates it.
func bindArguments(req mcp.CallToolRequest, target any) error {
	if err := req.BindArguments(target); err != nil {
		return errors.Mark(errors.Wrap(err, "invalid arguments"), ErrValidation)
	}
	if err := validate.Struct(target); err != nil {
		return errors.Mark(describeValidation(err), ErrValidation)
	}
	return nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "invalid arguments")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value())))
		case "revision":
			msgs = append(msgs, fmt.Sprintf("%s must name a single branch or commit, got %q", fe.Field(), fmt.Sprint(fe.Value())))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return errors.Newf("invalid arguments: %s", strings.Join(msgs, "; "))
}

// toolError turns an internal failure into an error result the caller can read.
func toolError(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("❌ Error: %s: %v", action, err))
}

// stringOr returns the trimmed value of s, or fallback when it is nil or blank.
func stringOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return strings.TrimSpace(*s)
}
