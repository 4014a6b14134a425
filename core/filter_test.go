package core

import "testing"

func acceptAll(*Entry) bool { return true }
func rejectAll(*Entry) bool { return false }
func onlyErrors(e *Entry) bool { return e.Level >= ErrorLevel }

func TestLogFilter_AndChain(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		level   Level
		want    bool
	}{
		{"empty chain accepts", nil, InfoLevel, true},
		{"single accept", []Filter{FilterFunc(acceptAll)}, InfoLevel, true},
		{"single reject", []Filter{FilterFunc(rejectAll)}, InfoLevel, false},
		{"one of two rejects", []Filter{FilterFunc(acceptAll), FilterFunc(onlyErrors)}, InfoLevel, false},
		{"both accept", []Filter{FilterFunc(acceptAll), FilterFunc(onlyErrors)}, ErrorLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := NewLogFilter(tt.filters...)
			if got := lf.Accept(&Entry{Level: tt.level}); got != tt.want {
				t.Errorf("Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogFilter_DuplicateRegistration(t *testing.T) {
	lf := NewLogFilter()
	lf.AddFilter(FilterFunc(onlyErrors)).AddFilter(FilterFunc(onlyErrors))
	if lf.Len() != 1 {
		t.Errorf("Len() = %d after duplicate AddFilter, want 1", lf.Len())
	}

	rf := AllowRoots("app")
	lf.AddFilter(rf)
	lf.AddFilter(rf)
	if lf.Len() != 2 {
		t.Errorf("Len() = %d after duplicate pointer filter, want 2", lf.Len())
	}

	// A distinct RootFilter with the same roots is a different filter
	lf.AddFilter(AllowRoots("app"))
	if lf.Len() != 3 {
		t.Errorf("Len() = %d, want 3", lf.Len())
	}

	if lf.Accept(&Entry{Level: InfoLevel, LoggerName: "app"}) {
		t.Error("expected rejection from onlyErrors")
	}
	if !lf.Accept(&Entry{Level: ErrorLevel, LoggerName: "app.db"}) {
		t.Error("expected acceptance")
	}
}

func minLevel(level Level) FilterFunc {
	return func(e *Entry) bool { return e.Level >= level }
}

type nameGate struct {
	allow bool
}

func (g *nameGate) Allow(*Entry) bool { return g.allow }

func TestLogFilter_DistinctFuncsAreKept(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		level   Level
		want    bool
	}{
		{
			name:    "closures from one literal",
			filters: []Filter{minLevel(InfoLevel), minLevel(ErrorLevel)},
			level:   WarningLevel,
			want:    false,
		},
		{
			name:    "method values on different receivers",
			filters: []Filter{FilterFunc((&nameGate{allow: true}).Allow), FilterFunc((&nameGate{allow: false}).Allow)},
			level:   CriticalLevel,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf := NewLogFilter(tt.filters...)
			if lf.Len() != 2 {
				t.Errorf("Len() = %d, want 2", lf.Len())
			}
			if got := lf.Accept(&Entry{Level: tt.level}); got != tt.want {
				t.Errorf("Accept(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLogFilter_SameClosureOnce(t *testing.T) {
	errorsOnly := minLevel(ErrorLevel)
	lf := NewLogFilter(errorsOnly, errorsOnly, FilterFunc(onlyErrors))
	lf.AddFilter(errorsOnly)
	if lf.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lf.Len())
	}
}

func TestLogFilter_NilIgnored(t *testing.T) {
	lf := NewLogFilter(nil)
	if lf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", lf.Len())
	}
}

func TestRootFilter(t *testing.T) {
	rf := AllowRoots("app", "http")
	tests := []struct {
		name string
		want bool
	}{
		{"app", true},
		{"app.db.pool", true},
		{"http.server", true},
		{"apps", false},
		{"other.app", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rf.Filter(&Entry{LoggerName: tt.name}); got != tt.want {
				t.Errorf("Filter(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
