package sync

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mattermost/mattermost/server/public/model"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

// datePatternRegex matches YYYY-MM-DD. Month-specific day limits are not checked.
var datePatternRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

// inferFieldType picks the Custom Profile Attribute type for an exchange attribute:
//   - multiple-valued attributes become multiselect fields
//   - single values shaped like YYYY-MM-DD become date fields
//   - everything else is text
//
// The type is only decided when a field is created; Mattermost does not allow
// changing it afterwards.
func inferFieldType(attribute exchange.Attribute) model.PropertyFieldType {
	switch a := attribute.(type) {
	case exchange.ValuesAttribute:
		return model.PropertyFieldTypeMultiselect
	case exchange.ValueAttribute:
		if a.Value != nil && datePatternRegex.MatchString(*a.Value) {
			return model.PropertyFieldTypeDate
		}
		return model.PropertyFieldTypeText
	default:
		return model.PropertyFieldTypeText
	}
}

// toDisplayName turns an attribute name such as "security_clearance" or
// "start-date" into "Security Clearance" or "Start Date".
func toDisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
