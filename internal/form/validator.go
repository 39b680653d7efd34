package form

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
)

// ValidateStruct is validation.ValidateStruct that reports every failed field
// as a single validation error.
func ValidateStruct(structField interface{}, rules ...*validation.FieldRules) error {
	var msgs []string
	for _, rule := range rules {
		err := validation.ValidateStruct(structField, rule)
		if err == nil {
			continue
		}
		var ve validation.Errors
		if !errors.As(err, &ve) {
			return err
		}
		msgs = append(msgs, fieldMessages(ve)...)
	}
	if len(msgs) == 0 {
		return nil
	}
	return gerr.Validation("%s", strings.Join(msgs, " "))
}

func fieldMessages(ve validation.Errors) []string {
	keys := make([]string, 0, len(ve))
	for k := range ve {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, formatErrMsg(k+": "+ve[k].Error()))
	}
	return msgs
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}
