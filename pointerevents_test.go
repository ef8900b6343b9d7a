package touchtree

import "testing"

func TestPointerEventsZeroValueIsAuto(t *testing.T) {
	var p PointerEvents
	if p != PointerEventsAuto {
		t.Errorf("zero value = %v, want auto", p)
	}
	if n := NewBox("n", 1, 1); n.PointerEvents != PointerEventsAuto {
		t.Errorf("NewBox mode = %v, want auto", n.PointerEvents)
	}
}

func TestPointerEventsTruthTable(t *testing.T) {
	tests := []struct {
		mode     PointerEvents
		self     bool
		children bool
		prunes   bool
	}{
		{PointerEventsAuto, true, true, false},
		{PointerEventsNone, false, false, true},
		{PointerEventsBoxNone, false, true, false},
		{PointerEventsBoxOnly, true, false, false},
		{PointerEvents(42), false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r := tt.mode.permeability()
			if r.self != tt.self || r.children != tt.children {
				t.Errorf("permeability = %+v, want self=%v children=%v", r, tt.self, tt.children)
			}
			if got := tt.mode.Prunes(); got != tt.prunes {
				t.Errorf("Prunes() = %v, want %v", got, tt.prunes)
			}
		})
	}
}

func TestParsePointerEvents(t *testing.T) {
	tests := []struct {
		in   string
		want PointerEvents
	}{
		{"auto", PointerEventsAuto},
		{"none", PointerEventsNone},
		{"box-none", PointerEventsBoxNone},
		{"box-only", PointerEventsBoxOnly},
		{"BOX_NONE", PointerEventsBoxNone},
		{"  Box-Only ", PointerEventsBoxOnly},
		{"AUTO", PointerEventsAuto},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePointerEvents(tt.in)
			if err != nil {
				t.Fatalf("ParsePointerEvents(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePointerEvents(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePointerEventsUnknown(t *testing.T) {
	for _, in := range []string{"", "boxnone", "passthrough"} {
		if _, err := ParsePointerEvents(in); err == nil {
			t.Errorf("ParsePointerEvents(%q) should fail", in)
		}
	}
}

func TestPointerEventsTextRoundTrip(t *testing.T) {
	for _, mode := range []PointerEvents{PointerEventsAuto, PointerEventsNone, PointerEventsBoxNone, PointerEventsBoxOnly} {
		text, err := mode.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", mode, err)
		}
		var got PointerEvents
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != mode {
			t.Errorf("round trip %v -> %q -> %v", mode, text, got)
		}
	}
}

func TestPointerEventsMarshalInvalid(t *testing.T) {
	if _, err := PointerEvents(9).MarshalText(); err == nil {
		t.Error("MarshalText of out-of-range mode should fail")
	}
	if got := PointerEvents(9).String(); got != "PointerEvents(9)" {
		t.Errorf("String() = %q", got)
	}
}
