// ABOUTME: Wire encoding for items in the persistent backends
// ABOUTME: Attributes keep their type tag so Numbers survive the round trip
package store

import (
	"encoding/json"
	"fmt"
)

// wireAttr is the tagged wire form of one attribute value. Exactly one of
// the fields is set.
type wireAttr struct {
	S *string `json:"S,omitempty"`
	N *Number `json:"N,omitempty"`
}

// MarshalItem encodes an item for storage. Only string and Number attribute
// values are supported.
func MarshalItem(item Item) ([]byte, error) {
	wire := make(map[string]wireAttr, len(item))
	for attr, value := range item {
		switch v := value.(type) {
		case string:
			wire[attr] = wireAttr{S: &v}
		case Number:
			wire[attr] = wireAttr{N: &v}
		default:
			return nil, fmt.Errorf("attribute %s: unsupported value type %T", attr, value)
		}
	}
	return json.Marshal(wire)
}

// UnmarshalItem decodes an item written by MarshalItem.
func UnmarshalItem(data []byte) (Item, error) {
	wire := map[string]wireAttr{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	item := make(Item, len(wire))
	for attr, value := range wire {
		switch {
		case value.S != nil:
			item[attr] = *value.S
		case value.N != nil:
			item[attr] = *value.N
		default:
			return nil, fmt.Errorf("attribute %s: no value set", attr)
		}
	}
	return item, nil
}
