package exchange

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// AttributeType is the discriminant stored in the "type" member of an attribute.
type AttributeType string

const (
	AttributeTypeSingle   AttributeType = "single"
	AttributeTypeMultiple AttributeType = "multiple"
)

// Attribute is a named piece of user data returned by the exchange. It is
// implemented by ValueAttribute and ValuesAttribute only.
type Attribute interface {
	AttributeName() string
	Type() AttributeType

	isAttribute()
}

// ValueAttribute holds a single value. A nil Value means the attribute is
// known to the exchange but has no value.
type ValueAttribute struct {
	Name  string
	Value *string
}

func (a ValueAttribute) AttributeName() string { return a.Name }
func (a ValueAttribute) Type() AttributeType   { return AttributeTypeSingle }
func (ValueAttribute) isAttribute()            {}

func (a ValueAttribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string        `json:"name"`
		Type  AttributeType `json:"type"`
		Value *string       `json:"value"`
	}{a.Name, AttributeTypeSingle, a.Value})
}

// ValuesAttribute holds an ordered list of values.
type ValuesAttribute struct {
	Name   string
	Values []string
}

func (a ValuesAttribute) AttributeName() string { return a.Name }
func (a ValuesAttribute) Type() AttributeType   { return AttributeTypeMultiple }
func (ValuesAttribute) isAttribute()            {}

func (a ValuesAttribute) MarshalJSON() ([]byte, error) {
	values := a.Values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(struct {
		Name   string        `json:"name"`
		Type   AttributeType `json:"type"`
		Values []string      `json:"values"`
	}{a.Name, AttributeTypeMultiple, values})
}

// StringValue is a convenience for building a non-nil ValueAttribute value.
func StringValue(s string) *string {
	return &s
}

// DecodeAttribute decodes one wire attribute, dispatching on its "type"
// member. Any shape not matching its own discriminant fails with an error
// wrapping ErrMalformedAttribute.
func DecodeAttribute(data []byte) (Attribute, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, errors.Wrap(ErrMalformedAttribute, err.Error())
	}

	var name string
	if raw, ok := members["name"]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, errors.Wrap(ErrMalformedAttribute, "name is not a string")
		}
	}

	var kind AttributeType
	raw, ok := members["type"]
	if !ok {
		return nil, errors.Wrapf(ErrMalformedAttribute, "attribute %q has no type", name)
	}
	if err := json.Unmarshal(raw, &kind); err != nil {
		return nil, errors.Wrapf(ErrMalformedAttribute, "attribute %q has a non-string type", name)
	}

	switch kind {
	case AttributeTypeSingle:
		raw, ok := members["value"]
		if !ok {
			return nil, errors.Wrapf(ErrMalformedAttribute, "single attribute %q has no value", name)
		}
		if isPresent(members, "values") {
			return nil, errors.Wrapf(ErrMalformedAttribute, "single attribute %q carries values", name)
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, errors.Wrapf(ErrMalformedAttribute, "single attribute %q value is not a string", name)
		}
		return ValueAttribute{Name: name, Value: value}, nil

	case AttributeTypeMultiple:
		if !isPresent(members, "values") {
			return nil, errors.Wrapf(ErrMalformedAttribute, "multiple attribute %q has no values", name)
		}
		if isPresent(members, "value") {
			return nil, errors.Wrapf(ErrMalformedAttribute, "multiple attribute %q carries a value", name)
		}
		var elements []*string
		if err := json.Unmarshal(members["values"], &elements); err != nil {
			return nil, errors.Wrapf(ErrMalformedAttribute, "multiple attribute %q values are not strings", name)
		}
		values := make([]string, 0, len(elements))
		for _, element := range elements {
			if element == nil {
				return nil, errors.Wrapf(ErrMalformedAttribute, "multiple attribute %q has a null value", name)
			}
			values = append(values, *element)
		}
		return ValuesAttribute{Name: name, Values: values}, nil

	default:
		return nil, errors.Wrapf(ErrMalformedAttribute, "attribute %q has unknown type %q", name, kind)
	}
}

// isPresent reports whether key exists with a non-null value.
func isPresent(members map[string]json.RawMessage, key string) bool {
	raw, ok := members[key]
	return ok && string(raw) != "null"
}

// Attributes is the wire list of attributes of a user, in wire order.
type Attributes []Attribute

func (a Attributes) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Attribute(a))
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(ErrMalformedAttribute, "attributes is not a list")
	}

	decoded := make(Attributes, 0, len(items))
	for _, item := range items {
		attribute, err := DecodeAttribute(item)
		if err != nil {
			return err
		}
		decoded = append(decoded, attribute)
	}

	*a = decoded
	return nil
}

// Find returns the first attribute with the given name.
func (a Attributes) Find(name string) (Attribute, bool) {
	for _, attribute := range a {
		if attribute.AttributeName() == name {
			return attribute, true
		}
	}
	return nil, false
}
