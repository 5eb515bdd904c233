package domain

import (
	"errors"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "N5", want: LevelN5},
		{in: "n3", want: LevelN3},
		{in: "1", want: LevelN1},
		{in: "JLPT-N2", want: LevelN2},
		{in: " N4 ", want: LevelN4},
		{in: "N6", wantErr: true},
		{in: "N0", wantErr: true},
		{in: "beginner", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("ParseLevel(%q) error = %v, want ErrValidation", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevel_Within(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Level
		want bool
	}{
		{name: "same level", a: LevelN4, b: LevelN4, want: true},
		{name: "one easier", a: LevelN4, b: LevelN5, want: true},
		{name: "one harder", a: LevelN4, b: LevelN3, want: true},
		{name: "two apart", a: LevelN5, b: LevelN3, want: false},
		{name: "unknown candidate", a: LevelN5, b: LevelUnknown, want: false},
		{name: "unknown source", a: LevelUnknown, b: LevelUnknown, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.a.Within(tt.b, 1); got != tt.want {
				t.Errorf("%v.Within(%v, 1) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevel_IsBeginner(t *testing.T) {
	t.Parallel()

	want := map[Level]bool{
		LevelN5: true, LevelN4: true, LevelN3: false, LevelN2: false, LevelN1: false, LevelUnknown: false,
	}
	for l, w := range want {
		if got := l.IsBeginner(); got != w {
			t.Errorf("%d.IsBeginner() = %v, want %v", l, got, w)
		}
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	t.Parallel()

	b, err := LevelN3.MarshalText()
	if err != nil || string(b) != "N3" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
	var l Level
	if err := l.UnmarshalText([]byte("N3")); err != nil || l != LevelN3 {
		t.Fatalf("UnmarshalText = %v, %v", l, err)
	}
	if err := l.UnmarshalText(nil); err != nil || l != LevelUnknown {
		t.Fatalf("UnmarshalText(empty) = %v, %v", l, err)
	}
}

func TestVerbClass_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range []VerbClass{VerbClassIchidan, VerbClassGodan, VerbClassGodanSpecial, VerbClassSuruIrregular, VerbClassKuruIrregular} {
		if !c.IsValid() {
			t.Errorf("%q should be valid", c)
		}
	}
	if VerbClass("nidan").IsValid() {
		t.Error("unknown class reported valid")
	}
}
