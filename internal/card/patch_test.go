package card

import (
	"errors"
	"strings"
	"testing"
)

func TestApply_ShallowMergeKeepsUntouchedFields(t *testing.T) {
	c := Default()
	c.Title = "A"
	c.BackgroundColor = "#ff0000"

	got := Apply(c, Patch{Title: Ptr("X")})
	if got.Title != "X" {
		t.Fatalf("Title = %q, want %q", got.Title, "X")
	}
	if got.BackgroundColor != "#ff0000" {
		t.Fatalf("BackgroundColor = %q, want %q", got.BackgroundColor, "#ff0000")
	}
	if c.Title != "A" {
		t.Fatalf("Apply modified its input: Title = %q", c.Title)
	}
}

func TestApply_NestedStructReplacedWholesale(t *testing.T) {
	c := Default()
	c.Shadow = Shadow{Enabled: true, Blur: 10, Color: "#000000", Opacity: 0.5}

	got := Apply(c, Patch{Shadow: &Shadow{Blur: 40}})
	want := Shadow{Blur: 40}
	if got.Shadow != want {
		t.Fatalf("Shadow = %#v, want %#v (no deep merge)", got.Shadow, want)
	}
}

func TestApply_PatchIsNotAliased(t *testing.T) {
	s := Shadow{Blur: 4, Color: "#000000"}
	p := Patch{Shadow: &s}
	got := Apply(Default(), p)

	s.Blur = 99
	if got.Shadow.Blur != 4 {
		t.Fatalf("Shadow.Blur = %d after mutating patch source, want 4", got.Shadow.Blur)
	}
}

func TestMerge_LaterFieldsWin(t *testing.T) {
	a := Patch{Width: Ptr(100), Title: Ptr("first")}
	b := Patch{Width: Ptr(200)}
	c := Patch{Width: Ptr(300), Height: Ptr(50)}

	got := a.Merge(b).Merge(c)
	if *got.Width != 300 {
		t.Fatalf("Width = %d, want 300", *got.Width)
	}
	if *got.Height != 50 {
		t.Fatalf("Height = %d, want 50", *got.Height)
	}
	if *got.Title != "first" {
		t.Fatalf("Title = %q, want %q", *got.Title, "first")
	}
	if *a.Width != 100 {
		t.Fatalf("Merge modified receiver: Width = %d", *a.Width)
	}
}

func TestFieldsAndIsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Fatal("empty patch IsEmpty() = false")
	}
	p := Patch{Width: Ptr(10), Shadow: &Shadow{}}
	got := strings.Join(p.Fields(), ",")
	if got != "width,shadow" {
		t.Fatalf("Fields() = %q, want %q", got, "width,shadow")
	}
	if p.String() != "patch{width,shadow}" {
		t.Fatalf("String() = %q", p.String())
	}
}

func TestValidate(t *testing.T) {
	d := Default()
	tests := []struct {
		name    string
		patch   Patch
		wantErr string
	}{
		{"ok width", Patch{Width: Ptr(400)}, ""},
		{"width too small", Patch{Width: Ptr(1)}, "width 1 out of range"},
		{"bad colour", Patch{BorderColor: Ptr("red")}, "borderColor \"red\" is not a hex colour"},
		{"default nested values", Patch{Shadow: &d.Shadow, Typography: &d.Typography, Background: &d.Background, Transform: &d.Transform, Effects: &d.Effects}, ""},
		{"bad align", Patch{Typography: func() *Typography { ty := d.Typography; ty.Align = "justify"; return &ty }()}, "typography.align"},
		{"odd weight", Patch{Typography: func() *Typography { ty := d.Typography; ty.FontWeight = 450; return &ty }()}, "multiple of 100"},
		{"opacity", Patch{Effects: &Effects{Opacity: 2, Brightness: 100}}, "effects.opacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidPatch) {
				t.Fatalf("Validate() error %v does not wrap ErrInvalidPatch", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	err := Patch{Width: Ptr(0), Height: Ptr(0)}.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "width") || !strings.Contains(msg, "height") {
		t.Fatalf("Validate() = %q, want both width and height reported", msg)
	}
}

func TestDefault_HasIDAndValidValues(t *testing.T) {
	a, b := Default(), Default()
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("Default IDs = %q, %q, want distinct non-empty", a.ID, b.ID)
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
}

func TestCardValidate(t *testing.T) {
	c := Default()
	c.Width = -500
	c.BackgroundColor = "nope"
	c.Effects.Opacity = 7

	err := c.Validate()
	if !errors.Is(err, ErrInvalidPatch) {
		t.Fatalf("Validate() = %v, want ErrInvalidPatch", err)
	}
	for _, field := range []string{"width", "backgroundColor", "effects.opacity"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("Validate() = %q, want mention of %s", err, field)
		}
	}
}

func TestAsPatchDoesNotAlias(t *testing.T) {
	c := Default()
	p := c.AsPatch()
	*p.Width = 999
	p.Shadow.Blur = 99
	if c.Width == 999 || c.Shadow.Blur == 99 {
		t.Fatalf("AsPatch aliases the card: width %d blur %d", c.Width, c.Shadow.Blur)
	}
	if got := Apply(Card{}, c.AsPatch()); got.Title != c.Title || got.Effects != c.Effects {
		t.Fatalf("Apply(AsPatch) = %+v, want fields of %+v", got, c)
	}
}
