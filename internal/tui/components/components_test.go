package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"github.com/amalmed/opstrack/internal/view"
)

func TestProgress_View(t *testing.T) {
	tests := []struct {
		name    string
		p       Progress
		prefix  string
		percent string
	}{
		{name: "zero", p: NewProgress(0, 8), prefix: "□□□□□□□□", percent: "0%"},
		{name: "half", p: NewProgress(50, 8), prefix: "■■■■□□□□", percent: "50%"},
		{name: "clamped above", p: NewProgress(140, 4), prefix: "■■■■", percent: "100%"},
		{name: "clamped below", p: NewProgress(-5, 4), prefix: "□□□□", percent: "0%"},
		{name: "checklist", p: NewChecklistProgress(1, 4, 4), prefix: "■□□□", percent: "25%"},
		{name: "empty checklist", p: NewChecklistProgress(0, 0, 4), prefix: "□□□□", percent: "0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.View()
			if !strings.Contains(result, tt.prefix) {
				t.Errorf("expected bar %q, got: %s", tt.prefix, result)
			}
			if !strings.HasSuffix(result, tt.percent) {
				t.Errorf("expected %s, got: %s", tt.percent, result)
			}
		})
	}
}

func TestProgress_View_ZeroWidth(t *testing.T) {
	if result := NewProgress(50, 0).View(); result != "" {
		t.Errorf("expected empty string for zero width, got: %s", result)
	}
}

func TestStatusBar_Render(t *testing.T) {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	}

	t.Run("help only", func(t *testing.T) {
		result := NewStatusBar().Render(80, bindings, "", false)
		if !strings.Contains(result, "quit") || !strings.Contains(result, "search") {
			t.Errorf("expected help items, got: %s", result)
		}
		if !strings.Contains(result, "•") {
			t.Errorf("expected separator, got: %s", result)
		}
	})

	t.Run("with notice", func(t *testing.T) {
		result := NewStatusBar().Render(80, bindings, "Saved", false)
		if !strings.Contains(result, "Saved") || !strings.Contains(result, "quit") {
			t.Errorf("expected help and notice, got: %s", result)
		}
	})

	t.Run("warning wins when narrow", func(t *testing.T) {
		result := NewStatusBar().Render(20, bindings, "Not saved", true)
		if !strings.Contains(result, "Not saved") {
			t.Errorf("expected warning, got: %s", result)
		}
	})
}

func TestHistogram_View(t *testing.T) {
	h := Histogram{
		Title: "By status",
		Buckets: []view.Bucket{
			{Key: "pending", Label: "Pending", Color: "#f59e0b", Count: 4},
			{Key: "completed", Label: "Completed", Color: "#22c55e", Count: 1},
		},
		Width: 40,
	}
	result := h.View()
	lines := strings.Split(result, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title and 2 bars, got %d lines:\n%s", len(lines), result)
	}
	if strings.Count(lines[1], "█") <= strings.Count(lines[2], "█") {
		t.Errorf("larger count should have the longer bar:\n%s", result)
	}
	if !strings.HasSuffix(lines[2], " 1") {
		t.Errorf("expected count at end of line, got %q", lines[2])
	}
}

func TestHistogram_View_Empty(t *testing.T) {
	result := Histogram{Title: "By category", Width: 40}.View()
	if !strings.Contains(result, "No tasks") {
		t.Errorf("expected empty message, got: %s", result)
	}
}
