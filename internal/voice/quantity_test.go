package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"add two apples", 2},
		{"add 5 apples", 5},
		{"add apples", 1},
		{"buy a dozen", 1}, // "a" counts as one, "dozen" is not in the table
		{"get couple of pears", 2},
		{"few bananas", 3},
		{"add twenty eggs", 20},
		{"add 0 apples", 1},
		{"", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractQuantity(tt.in), "ExtractQuantity(%q)", tt.in)
	}
}

// The word table must match whole words only; "a" firing inside "add" would
// make every add command quantity 1 regardless of the digits that follow.
func TestExtractQuantityWordBoundaries(t *testing.T) {
	assert.Equal(t, 5, ExtractQuantity("add 5 apples"))
	assert.Equal(t, 10, ExtractQuantity("grab 10 bananas"))
}

// Earlier table entries win: "one" beats a later digit.
func TestExtractQuantityTableOrder(t *testing.T) {
	assert.Equal(t, 1, ExtractQuantity("one pack of 6 eggs"))
}
