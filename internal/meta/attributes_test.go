package meta

import (
	"encoding/json"
	"testing"
)

func TestSetGetDelClone(t *testing.T) {
	attrs := New(nil)
	attrs.Set("a", "1")
	if value, ok := attrs.Get("a"); !ok || value != "1" {
		t.Fatalf("get failed")
	}
	attrs.Set("", "ignored")
	if _, ok := attrs.Get(""); ok {
		t.Fatalf("empty key should be ignored")
	}
	attrs.Set("tags", []any{"x", map[string]any{"k": "v"}})
	cloned := attrs.Clone()
	if len(cloned) != 2 || cloned["a"] != "1" {
		t.Fatalf("clone failed: %+v", cloned)
	}
	// mutating the clone's nested values must not leak back
	cloned["tags"].([]any)[1].(map[string]any)["k"] = "changed"
	if attrs["tags"].([]any)[1].(map[string]any)["k"] != "v" {
		t.Fatalf("clone shares nested state")
	}
	attrs.Del("a")
	if _, ok := attrs.Get("a"); ok {
		t.Fatalf("del failed")
	}
}

func TestEqualAndKeys(t *testing.T) {
	a := New(map[string]any{"name": "A", "n": 1.0, "nested": map[string]any{"z": true}})
	b := New(map[string]any{"nested": map[string]any{"z": true}, "n": 1.0, "name": "A"})
	if !a.Equal(b) {
		t.Fatalf("expected equal")
	}
	b["name"] = "B"
	if a.Equal(b) {
		t.Fatalf("expected not equal")
	}
	keys := a.Keys()
	if len(keys) != 3 || keys[0] != "n" || keys[1] != "name" || keys[2] != "nested" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestStableJSONAndRoundtrip(t *testing.T) {
	attrs := New(map[string]any{"b": "2", "a": 1.5, "c": map[string]any{"y": 1.0, "x": nil}})
	b1, _ := attrs.MarshalStableJSON()
	if string(b1) != `{"a":1.5,"b":"2","c":{"x":null,"y":1}}` {
		t.Fatalf("unexpected stable json: %s", string(b1))
	}
	var unmarshaled Attributes
	if err := json.Unmarshal(b1, &unmarshaled); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !unmarshaled.Equal(attrs) {
		t.Fatalf("roundtrip mismatch: %+v", unmarshaled)
	}
	var empty Attributes
	if err := json.Unmarshal([]byte("null"), &empty); err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("null should decode to empty attributes: %v %+v", err, empty)
	}
}
