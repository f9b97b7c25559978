package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertSlice(t *testing.T) {
	tests := []struct {
		name     string
		arr      []int
		pos      int
		elements []int
		want     []int
	}{
		{"insert single element in middle", []int{1, 2, 4, 5}, 2, []int{3}, []int{1, 2, 3, 4, 5}},
		{"insert multiple elements at start", []int{3, 4}, 0, []int{1, 2}, []int{1, 2, 3, 4}},
		{"insert multiple elements at end", []int{1, 2}, 2, []int{3, 4}, []int{1, 2, 3, 4}},
		{"insert into empty slice", []int{}, 0, []int{1, 2}, []int{1, 2}},
		{"insert empty slice", []int{1, 2}, 1, []int{}, []int{1, 2}},
		{"negative position clamps", []int{2}, -3, []int{1}, []int{1, 2}},
		{"position past end clamps", []int{1}, 9, []int{2}, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertSlice(tt.arr, tt.pos, tt.elements...))
		})
	}
}

func TestInsertSlice_DoesNotAliasInput(t *testing.T) {
	arr := make([]int, 3, 10)
	copy(arr, []int{1, 2, 3})

	out := InsertSlice(arr, 1, 9)
	assert.Equal(t, []int{1, 2, 3}, arr)
	assert.Equal(t, []int{1, 9, 2, 3}, out)
}

func TestRemoveSlice(t *testing.T) {
	tests := []struct {
		name     string
		arr      []rune
		from, to int
		want     []rune
	}{
		{"middle", []rune("abcde"), 1, 3, []rune("ade")},
		{"prefix", []rune("abc"), 0, 1, []rune("bc")},
		{"suffix clamped", []rune("abc"), 2, 9, []rune("ab")},
		{"empty range", []rune("abc"), 2, 2, []rune("abc")},
		{"inverted range", []rune("abc"), 2, 1, []rune("abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveSlice(tt.arr, tt.from, tt.to))
		})
	}
}
