package catalog

import (
	"regexp"
	"strings"

	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
)

var hexCodeRe = regexp.MustCompile(`^(?:[0-9A-F]{3}|[0-9A-F]{6})$`)

// normalizeColorCode strips a leading hash, uppercases, and requires a 3- or
// 6-digit hex value.
func normalizeColorCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if code == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}
	if !hexCodeRe.MatchString(code) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "code must be a 3 or 6 digit hex value")
	}
	return code, nil
}
