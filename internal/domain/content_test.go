package domain

import "testing"

func TestPartitionWidgets(t *testing.T) {
	tests := []struct {
		name      string
		widgets   []Widget
		wantLeft  []string
		wantRight []string
	}{
		{
			name:      "empty input",
			widgets:   nil,
			wantLeft:  nil,
			wantRight: nil,
		},
		{
			name: "mixed widgets keep relative order",
			widgets: []Widget{
				{Type: "resources"},
				{Type: "search"},
				{Type: "greeting"},
				{Type: "datetime"},
				{Type: "openweathermap"},
				{Type: "kubernetes"},
			},
			wantLeft:  []string{"resources", "greeting", "kubernetes"},
			wantRight: []string{"search", "datetime", "openweathermap"},
		},
		{
			name: "all right-aligned",
			widgets: []Widget{
				{Type: "weather"},
				{Type: "openmeteo"},
				{Type: "weatherapi"},
			},
			wantLeft:  nil,
			wantRight: []string{"weather", "openmeteo", "weatherapi"},
		},
		{
			name: "unknown types stay left",
			widgets: []Widget{
				{Type: "glances"},
				{Type: "unifi_console"},
			},
			wantLeft:  []string{"glances", "unifi_console"},
			wantRight: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := PartitionWidgets(tt.widgets)

			if len(left)+len(right) != len(tt.widgets) {
				t.Fatalf("partition lost widgets: %d + %d != %d",
					len(left), len(right), len(tt.widgets))
			}

			checkTypes(t, "left", left, tt.wantLeft)
			checkTypes(t, "right", right, tt.wantRight)
		})
	}
}

func checkTypes(t *testing.T, side string, got []Widget, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s group has %d widgets, want %d", side, len(got), len(want))
	}
	for i, w := range got {
		if w.Type != want[i] {
			t.Errorf("%s[%d].Type = %q, want %q", side, i, w.Type, want[i])
		}
	}
}

func TestSettingsDefaults(t *testing.T) {
	var s Settings

	if got := s.EffectiveTheme(); got != DefaultTheme {
		t.Errorf("EffectiveTheme() = %q, want %q", got, DefaultTheme)
	}
	if got := s.EffectiveColor(); got != DefaultColor {
		t.Errorf("EffectiveColor() = %q, want %q", got, DefaultColor)
	}
	if got := s.EffectiveLanguage(); got != "en" {
		t.Errorf("EffectiveLanguage() = %q, want en", got)
	}
}

func TestSettingsExplicitValues(t *testing.T) {
	s := Settings{Theme: "light", Color: "rose", Language: "de"}

	if got := s.EffectiveTheme(); got != "light" {
		t.Errorf("EffectiveTheme() = %q, want light", got)
	}
	if got := s.EffectiveColor(); got != "rose" {
		t.Errorf("EffectiveColor() = %q, want rose", got)
	}
	if got := s.EffectiveLanguage(); got != "de" {
		t.Errorf("EffectiveLanguage() = %q, want de", got)
	}
}

func TestSettingsLayoutFor(t *testing.T) {
	s := Settings{
		Layout: map[string]GroupLayout{
			"Media": {Style: "row", Columns: 3},
		},
	}

	l, ok := s.LayoutFor("Media")
	if !ok {
		t.Fatal("LayoutFor(Media) not found")
	}
	if l.Style != "row" || l.Columns != 3 {
		t.Errorf("LayoutFor(Media) = %+v, want row/3", l)
	}

	if _, ok := s.LayoutFor("Missing"); ok {
		t.Error("LayoutFor(Missing) found, want miss")
	}
}
