package ids

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
)

func TestTaskID(t *testing.T) {
	t.Run("length is always 9", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			id, err := TaskID()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(id) != TaskIDLength {
				t.Errorf("expected length %d, got %d for id %q", TaskIDLength, len(id), id)
			}
		}
	})

	t.Run("contains only lowercase alphanumeric characters", func(t *testing.T) {
		pattern := regexp.MustCompile(`^[a-z0-9]+$`)
		for i := 0; i < 100; i++ {
			id, err := TaskID()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !pattern.MatchString(id) {
				t.Errorf("id %q contains unexpected characters", id)
			}
		}
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id, err := TaskID()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen[id] {
				t.Errorf("duplicate id generated: %q", id)
			}
			seen[id] = true
		}
	})
}

func TestItemID(t *testing.T) {
	a, b := ItemID(), ItemID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Errorf("expected distinct ids, got %q twice", a)
	}
}

func TestSerialNumber(t *testing.T) {
	for i := 0; i < 200; i++ {
		serial, err := SerialNumber(2024)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(serial, "PR-2024-") {
			t.Fatalf("unexpected prefix: %q", serial)
		}
		n, err := strconv.Atoi(strings.TrimPrefix(serial, "PR-2024-"))
		if err != nil {
			t.Fatalf("serial suffix is not a number: %q", serial)
		}
		if n < 1000 || n > 9999 {
			t.Errorf("serial suffix %d out of range", n)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"hello_world", "hello-world"},
		{"Hello---World", "hello-world"},
		{"  Hello  ", "hello"},
		{"PR-2024-1002", "pr-2024-1002"},
		{"Supply: Meds!", "supply-meds"},
		{"توريد أدوية", "توريد-أدوية"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := Slug(tc.input); got != tc.expected {
				t.Errorf("Slug(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
