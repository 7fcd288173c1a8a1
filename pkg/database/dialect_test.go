package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{term: "bolt", want: "%bolt%"},
		{term: "_", want: `%\_%`},
		{term: "50%", want: `%50\%%`},
		{term: `a\b`, want: `%a\\b%`},
		{term: `\%_`, want: `%\\\%\_%`},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.term))
		})
	}
}
