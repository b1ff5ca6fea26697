package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Status", 420, DefaultWidth)
	for _, want := range []string{"Arise", "Status", "420 XP"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHints(t *testing.T) {
	out := RenderHints([]Hint{{Command: "arise quests", Description: "today's quests"}})
	if !strings.Contains(out, "arise quests") || !strings.Contains(out, "today's quests") {
		t.Errorf("hints = %q", out)
	}
}
