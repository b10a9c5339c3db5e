package transform

import "testing"

func TestReplaceModule_Apply(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		replacement string
		in          string
		want        string
	}{
		{
			name:        "literal replacement",
			pattern:     "foo",
			replacement: "bar",
			in:          "foo baz foo",
			want:        "bar baz bar",
		},
		{
			name:        "group reference",
			pattern:     `(\w+)=(\w+)`,
			replacement: "$2=$1",
			in:          "key=value",
			want:        "value=key",
		},
		{
			name:        "no match leaves line unchanged",
			pattern:     "absent",
			replacement: "x",
			in:          "nothing here",
			want:        "nothing here",
		},
		{
			name:        "strip digits",
			pattern:     `\d+`,
			replacement: "",
			in:          "a1b22c333",
			want:        "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewReplaceFromConfig(ReplaceConfig{Pattern: tt.pattern, Replacement: tt.replacement})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := m.Apply(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewReplaceFromConfig_InvalidPattern(t *testing.T) {
	if _, err := NewReplaceFromConfig(ReplaceConfig{Pattern: "("}); err == nil {
		t.Error("expected error for invalid pattern, got nil")
	}
	if _, err := NewReplaceFromConfig(ReplaceConfig{}); err == nil {
		t.Error("expected error for missing pattern, got nil")
	}
}

func TestParseReplaceConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  map[string]interface{}
		wantErr bool
	}{
		{name: "missing pattern", config: map[string]interface{}{"replacement": "x"}, wantErr: true},
		{name: "non-string replacement", config: map[string]interface{}{"pattern": "a", "replacement": 1}, wantErr: true},
		{name: "replacement optional", config: map[string]interface{}{"pattern": "a"}, wantErr: false},
		{name: "full config", config: map[string]interface{}{"pattern": "a", "replacement": "b"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReplaceConfig(tt.config)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
