package core

import "testing"

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{SuccessLevel, "SUCCESS"},
		{WarningLevel, "WARNING"},
		{ErrorLevel, "ERROR"},
		{CriticalLevel, "CRITICAL"},
		{Level(33), "Level 33"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_Values(t *testing.T) {
	// The numbers are shared with other logging ecosystems and must not drift
	want := map[Level]int{
		TraceLevel:    5,
		DebugLevel:    10,
		InfoLevel:     20,
		SuccessLevel:  25,
		WarningLevel:  30,
		ErrorLevel:    40,
		CriticalLevel: 50,
	}
	for level, n := range want {
		if int(level) != n {
			t.Errorf("%s = %d, want %d", level, int(level), n)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"info", InfoLevel, false},
		{"SUCCESS", SuccessLevel, false},
		{"warn", WarningLevel, false},
		{"Warning", WarningLevel, false},
		{"fatal", CriticalLevel, false},
		{" trace ", TraceLevel, false},
		{"25", SuccessLevel, false},
		{"15", Level(15), false},
		{"-1", 0, true},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAddLevelName(t *testing.T) {
	AddLevelName(Level(35), "NOTICE")

	if got := Level(35).String(); got != "NOTICE" {
		t.Errorf("String() = %q, want NOTICE", got)
	}
	got, err := ParseLevel("notice")
	if err != nil || got != Level(35) {
		t.Errorf("ParseLevel(notice) = %v, %v", got, err)
	}
}

func TestLevel_UnmarshalText(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("error")); err != nil {
		t.Fatal(err)
	}
	if l != ErrorLevel {
		t.Errorf("got %v, want ERROR", l)
	}
	if err := l.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error for unknown level")
	}
}
