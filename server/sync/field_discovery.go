package sync

import "github.com/mattermost/idp-exchange-attribute-sync/server/exchange"

// discoverFields returns, for every attribute name appearing on any user, the
// first attribute usable as a type sample. Single attributes without a value
// say nothing about the type and are skipped, so a name whose values are all
// unset is not discovered.
//
// Users may carry different attribute sets; the result is their union.
func discoverFields(users []exchange.UserResponse) map[string]exchange.Attribute {
	fields := make(map[string]exchange.Attribute)

	for _, user := range users {
		for _, attribute := range user.Attributes {
			if single, ok := attribute.(exchange.ValueAttribute); ok && single.Value == nil {
				continue
			}

			name := attribute.AttributeName()
			if _, exists := fields[name]; !exists {
				fields[name] = attribute
			}
		}
	}

	return fields
}

// collectOptions returns the distinct values of the multiple-valued attribute
// fieldName across all users, in first-seen order.
func collectOptions(users []exchange.UserResponse, fieldName string) []string {
	seen := make(map[string]struct{})
	var options []string

	for _, user := range users {
		for _, attribute := range user.Attributes {
			multiple, ok := attribute.(exchange.ValuesAttribute)
			if !ok || multiple.Name != fieldName {
				continue
			}
			for _, value := range multiple.Values {
				if _, exists := seen[value]; exists {
					continue
				}
				seen[value] = struct{}{}
				options = append(options, value)
			}
		}
	}

	return options
}
