package shader

import (
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		defines []string
		want    string
	}{
		{"no defines", "#version 410 core\nvoid main(){}\n", nil, "#version 410 core\nvoid main(){}\n"},
		{"after version", "#version 410 core\nvoid main(){}\n", []string{"FOG", "MAX_LIGHTS 8"},
			"#version 410 core\n#define FOG\n#define MAX_LIGHTS 8\nvoid main(){}\n"},
		{"leading blank lines", "\n  #version 410 core\nx\n", []string{"A"}, "#version 410 core\n#define A\nx\n"},
		{"no version", "void main(){}\n", []string{"A"}, "#define A\nvoid main(){}\n"},
		{"version only", "#version 410 core", []string{"A"}, "#version 410 core\n#define A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.src, tt.defines); got != tt.want {
				t.Errorf("Preprocess() = %q, want %q", got, tt.want)
			}
		})
	}
}
