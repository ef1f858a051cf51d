package exchange

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Serializer converts DTOs to and from their wire form.
type Serializer interface {
	// Encode serializes v. When serializeNull is false, null object members
	// are left out of the output.
	Encode(v interface{}, serializeNull bool) ([]byte, error)
	Decode(data []byte, v interface{}) error
}

// JSONSerializer is the default Serializer.
type JSONSerializer struct{}

func (JSONSerializer) Encode(v interface{}, serializeNull bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}
	if serializeNull {
		return data, nil
	}

	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(err, "failed to re-read encoded request")
	}
	return json.Marshal(dropNulls(tree))
}

func (JSONSerializer) Decode(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func dropNulls(node interface{}) interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		for key, value := range n {
			if value == nil {
				delete(n, key)
				continue
			}
			n[key] = dropNulls(value)
		}
	case []interface{}:
		for i, value := range n {
			n[i] = dropNulls(value)
		}
	}
	return node
}
