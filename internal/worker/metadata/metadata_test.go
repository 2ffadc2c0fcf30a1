package metadata

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
)

func TestCloneDoesNotAlias(t *testing.T) {
	original := Metadata{"a": "1", "b": "2"}
	clone := original.Clone()
	clone["a"] = "changed"

	if original["a"] != "1" {
		t.Fatalf("expected original map to stay untouched, got %q", original["a"])
	}
	if len(clone) != len(original) {
		t.Fatalf("expected clone to have same size")
	}
}

func TestCloneEmpty(t *testing.T) {
	var m Metadata
	cloned := m.Clone()
	if cloned == nil {
		t.Fatal("expected non-nil map")
	}
	if len(cloned) != 0 {
		t.Fatal("expected empty map")
	}
}

func TestWithKeepsBaseUnchanged(t *testing.T) {
	base := Metadata{"foo": "bar"}
	enriched := base.With("baz", "qux")
	if base["baz"] != "" {
		t.Fatalf("expected base map to remain unchanged")
	}
	if enriched["baz"] != "qux" {
		t.Fatalf("expected enriched map to add entry")
	}
}

func TestNewPairs(t *testing.T) {
	md := New("key", "value", "another", "entry")
	if md["key"] != "value" {
		t.Fatalf("expected key to be set")
	}
	if md["another"] != "entry" {
		t.Fatalf("expected another entry to be set")
	}
}

func TestWatermillConversion(t *testing.T) {
	wm := message.Metadata{"entity_type": "Customer"}
	md := FromWatermill(wm)
	md["entity_type"] = "Order"
	if wm["entity_type"] != "Customer" {
		t.Fatalf("expected conversion to copy, source changed to %q", wm["entity_type"])
	}

	back := ToWatermill(md)
	if back["entity_type"] != "Order" {
		t.Fatalf("expected converted metadata to carry value, got %q", back["entity_type"])
	}

	if FromWatermill(nil) == nil || ToWatermill(nil) == nil {
		t.Fatal("expected nil inputs to convert to empty maps")
	}
}
