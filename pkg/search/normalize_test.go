package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "bolt m8", NormalizeTerm("  Bolt M8 "))
	assert.Equal(t, "", NormalizeTerm("   "))
	assert.Equal(t, "çelik", NormalizeTerm("Çelik"))
}

func TestEscapeQueryString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"widget", "widget"},
		{"a+b", `a\+b`},
		{"SKU-001", `SKU\-001`},
		{"path/to", `path\/to`},
		{"<b>", "b"},
		{`say "hi"`, `say \"hi\"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeQueryString(tt.in), tt.in)
	}
}
