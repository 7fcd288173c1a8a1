package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestLockLocations(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{driver: "pgx", want: " FOR UPDATE OF sl"},
		{driver: "sqlite3", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			assert.Equal(t, tt.want, lockLocations(sqlx.NewDb(nil, tt.driver)))
		})
	}
}
