// ABOUTME: Tests for the tagged wire encoding
// ABOUTME: Numbers must survive storage without becoming floats
package store

import (
	"strings"
	"testing"
)

func TestMarshalItemRoundTrip(t *testing.T) {
	item := Item{
		"Title":      "hello",
		"CreateTime": NumberFromFloat(1627984879.9),
	}

	data, err := MarshalItem(item)
	if err != nil {
		t.Fatalf("MarshalItem() error = %v", err)
	}

	got, err := UnmarshalItem(data)
	if err != nil {
		t.Fatalf("UnmarshalItem() error = %v", err)
	}
	if got["Title"] != "hello" {
		t.Errorf("Title = %v, want hello", got["Title"])
	}
	n, ok := got["CreateTime"].(Number)
	if !ok {
		t.Fatalf("CreateTime = %T, want Number", got["CreateTime"])
	}
	if n != NumberFromFloat(1627984879.9) {
		t.Errorf("CreateTime = %q, want exact decimal string", n)
	}
}

func TestMarshalItem_TypeTags(t *testing.T) {
	data, err := MarshalItem(Item{"N": Number("1.5"), "S": "x"})
	if err != nil {
		t.Fatalf("MarshalItem() error = %v", err)
	}
	// A numeric string attribute and a Number must stay distinguishable.
	s := string(data)
	if !strings.Contains(s, `"N":{"N":"1.5"}`) {
		t.Errorf("marshaled form missing tagged number: %s", s)
	}
	if !strings.Contains(s, `"S":{"S":"x"}`) {
		t.Errorf("marshaled form missing tagged string: %s", s)
	}
}

func TestMarshalItem_RejectsUnsupportedTypes(t *testing.T) {
	if _, err := MarshalItem(Item{"Bad": 42}); err == nil {
		t.Error("MarshalItem() with int value: expected error")
	}
	if _, err := MarshalItem(Item{"Bad": []string{"x"}}); err == nil {
		t.Error("MarshalItem() with slice value: expected error")
	}
}

func TestUnmarshalItem_Malformed(t *testing.T) {
	if _, err := UnmarshalItem([]byte(`{`)); err == nil {
		t.Error("UnmarshalItem() with truncated json: expected error")
	}
	if _, err := UnmarshalItem([]byte(`{"Attr":{}}`)); err == nil {
		t.Error("UnmarshalItem() with untagged attribute: expected error")
	}
}
