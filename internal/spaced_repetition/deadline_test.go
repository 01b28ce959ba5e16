package spaced_repetition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressInterval(t *testing.T) {
	tests := []struct {
		name          string
		intervalDays  int
		daysRemaining int
		want          int
	}{
		{"a week left passes through", 10, 7, 10},
		{"long goal passes through", 45, 30, 45},
		{"six days left caps at three", 10, 6, 3},
		{"four days left caps at two", 5, 4, 2},
		{"short interval untouched", 1, 6, 1},
		{"one day left forces next-day review", 10, 1, 0},
		{"deadline today forces next-day review", 3, 0, 0},
		{"zero interval stays zero", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompressInterval(tt.intervalDays, tt.daysRemaining))
		})
	}
}
