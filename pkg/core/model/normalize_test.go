package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeActiveDays_IntList(t *testing.T) {
	set, err := NormalizeActiveDays([]int{0, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{0: true, 2: true, 4: true}, set)
}

func TestNormalizeActiveDays_JSONList(t *testing.T) {
	set, err := NormalizeActiveDays("[0, 1, 5]")
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{0: true, 1: true, 5: true}, set)
}

func TestNormalizeActiveDays_CSV(t *testing.T) {
	set, err := NormalizeActiveDays("1, 3,6")
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 3: true, 6: true}, set)
}

func TestNormalizeActiveDays_JSONMap(t *testing.T) {
	set, err := NormalizeActiveDays(`{"0": true, "3": true, "5": false}`)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{0: true, 3: true}, set)
}

func TestNormalizeActiveDays_Empty(t *testing.T) {
	set, err := NormalizeActiveDays(nil)
	require.NoError(t, err)
	assert.Empty(t, set)

	set, err = NormalizeActiveDays("")
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestNormalizeActiveDays_OutOfRange(t *testing.T) {
	_, err := NormalizeActiveDays([]int{7})
	assert.Error(t, err)

	_, err = NormalizeActiveDays("[-1]")
	assert.Error(t, err)
}

func TestNormalizeActiveDays_BadInput(t *testing.T) {
	_, err := NormalizeActiveDays("[not json")
	assert.Error(t, err)

	_, err = NormalizeActiveDays(3.14)
	assert.Error(t, err)
}
