package hris

import (
	"errors"
	"strings"

	"github.com/nimbushr/syncengine/internal/httpx"
)

func asStatusError(err error, target **httpx.StatusError) bool {
	return errors.As(err, target)
}

func containsAny(haystack string, needles ...string) bool {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
