package sync

import (
	"testing"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/stretchr/testify/assert"

	"github.com/mattermost/idp-exchange-attribute-sync/server/exchange"
)

func TestInferFieldType(t *testing.T) {
	tests := []struct {
		name      string
		attribute exchange.Attribute
		expected  model.PropertyFieldType
	}{
		{
			name:      "multiple values return multiselect",
			attribute: exchange.ValuesAttribute{Name: "groups", Values: []string{"a", "b"}},
			expected:  model.PropertyFieldTypeMultiselect,
		},
		{
			name:      "empty multiple values return multiselect",
			attribute: exchange.ValuesAttribute{Name: "groups"},
			expected:  model.PropertyFieldTypeMultiselect,
		},
		{
			name:      "date value returns date",
			attribute: exchange.ValueAttribute{Name: "start", Value: exchange.StringValue("2023-01-15")},
			expected:  model.PropertyFieldTypeDate,
		},
		{
			name:      "leap day returns date",
			attribute: exchange.ValueAttribute{Name: "start", Value: exchange.StringValue("2024-02-29")},
			expected:  model.PropertyFieldTypeDate,
		},
		{
			name:      "date with time returns text",
			attribute: exchange.ValueAttribute{Name: "start", Value: exchange.StringValue("2023-01-15T10:00:00")},
			expected:  model.PropertyFieldTypeText,
		},
		{
			name:      "invalid month returns text",
			attribute: exchange.ValueAttribute{Name: "start", Value: exchange.StringValue("2023-13-01")},
			expected:  model.PropertyFieldTypeText,
		},
		{
			name:      "plain text returns text",
			attribute: exchange.ValueAttribute{Name: "grade", Value: exchange.StringValue("5a")},
			expected:  model.PropertyFieldTypeText,
		},
		{
			name:      "unset value returns text",
			attribute: exchange.ValueAttribute{Name: "grade"},
			expected:  model.PropertyFieldTypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferFieldType(tt.attribute))
		})
	}
}

func TestToDisplayName(t *testing.T) {
	tests := map[string]string{
		"security_clearance": "Security Clearance",
		"start-date":         "Start Date",
		"department":         "Department",
		"user_id":            "User Id",
		"__grade__":          "Grade",
		"élève_type":         "Élève Type",
		"":                   "",
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, toDisplayName(input))
		})
	}
}
