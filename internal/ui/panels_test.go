package ui

import (
	"testing"

	"github.com/five82/cardstock/internal/card"
	"github.com/five82/cardstock/internal/prefs"
)

func findField(t *testing.T, panelName, label string) field {
	t.Helper()
	for _, p := range editorPanels() {
		if p.name != panelName {
			continue
		}
		for _, f := range p.fields {
			if f.label == label {
				return f
			}
		}
	}
	t.Fatalf("field %s/%s not found", panelName, label)
	return field{}
}

func TestEveryFieldProducesValidPatches(t *testing.T) {
	c := card.Default()
	for _, p := range editorPanels() {
		for _, f := range p.fields {
			var patches []card.Patch
			switch f.kind {
			case kindNumber:
				for _, steps := range []int{-1000, -1, 1, 1000} {
					if patch, ok := f.nudge(c, steps); ok {
						patches = append(patches, patch)
					}
				}
			case kindToggle:
				patches = append(patches, f.toggle(c))
			case kindChoice:
				if patch, ok := f.cycle(c, 1); ok {
					patches = append(patches, patch)
				}
			case kindText, kindColor:
				patches = append(patches, f.setText(c, f.text(c)))
			}
			for _, patch := range patches {
				if patch.IsEmpty() {
					t.Fatalf("%s/%s produced an empty patch", p.name, f.label)
				}
				if err := patch.Validate(); err != nil {
					t.Fatalf("%s/%s produced invalid patch: %v", p.name, f.label, err)
				}
			}
		}
	}
}

func TestNestedSetterKeepsSiblings(t *testing.T) {
	c := card.Default()
	c.Shadow.Color = "#123456"

	patch, ok := findField(t, "Shadow", "Blur").nudge(c, 1)
	if !ok {
		t.Fatal("nudge returned ok=false")
	}
	got := card.Apply(c, patch).Shadow
	if got.Blur != c.Shadow.Blur+1 {
		t.Fatalf("Blur = %d, want %d", got.Blur, c.Shadow.Blur+1)
	}
	if got.Color != "#123456" || got.OffsetY != c.Shadow.OffsetY {
		t.Fatalf("sibling shadow values lost: %+v", got)
	}
}

func TestNudgeRoundsFloats(t *testing.T) {
	c := card.Default()
	c.Shadow.Opacity = 0.35

	patch, _ := findField(t, "Shadow", "Opacity").nudge(c, 1)
	if got := patch.Shadow.Opacity; got != 0.4 {
		t.Fatalf("Opacity = %v, want 0.4", got)
	}
}

func TestNudgeAtBoundReportsNoChange(t *testing.T) {
	c := card.Default()
	c.Width = 2000
	if _, ok := findField(t, "Style", "Width").nudge(c, 1); ok {
		t.Fatal("nudge past max returned ok=true")
	}
}

func TestCycleWraps(t *testing.T) {
	c := card.Default()
	f := findField(t, "Typography", "Align")

	c.Typography.Align = "right"
	patch, _ := f.cycle(c, 1)
	if got := patch.Typography.Align; got != "left" {
		t.Fatalf("cycle(right, +1) = %q, want left", got)
	}
	c.Typography.Align = "left"
	patch, _ = f.cycle(c, -1)
	if got := patch.Typography.Align; got != "right" {
		t.Fatalf("cycle(left, -1) = %q, want right", got)
	}
}

func TestPanelIndex(t *testing.T) {
	panels := editorPanels()
	if got := panelIndex(panels, "Shadow"); panels[got].name != "Shadow" {
		t.Fatalf("panelIndex(Shadow) = %d (%s)", got, panels[got].name)
	}
	if got := panelIndex(panels, "missing"); got != 0 {
		t.Fatalf("panelIndex(missing) = %d, want 0", got)
	}
	if panels[len(panels)-1].name != presetsPanel {
		t.Fatal("presets panel is not last")
	}
}

func TestPanelNamesMatchPrefs(t *testing.T) {
	panels := editorPanels()
	if len(panels) != len(prefs.Panels) {
		t.Fatalf("panels = %d, prefs.Panels = %d", len(panels), len(prefs.Panels))
	}
	for i, p := range panels {
		if p.name != prefs.Panels[i] {
			t.Fatalf("panel %d = %q, prefs.Panels[%d] = %q", i, p.name, i, prefs.Panels[i])
		}
	}
}
