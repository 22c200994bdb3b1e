package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager_WrapsBothWays(t *testing.T) {
	p := NewPager(3)
	assert.Equal(t, "Pallet 1/3", p.Title())

	assert.Equal(t, 1, p.Next())
	assert.Equal(t, 2, p.Next())
	assert.Equal(t, 0, p.Next(), "next on the last page wraps to the first")

	assert.Equal(t, 2, p.Prev(), "prev on the first page wraps to the last")
	assert.Equal(t, "Pallet 3/3", p.Title())
}

func TestPager_SinglePage(t *testing.T) {
	p := NewPager(1)
	assert.Equal(t, 0, p.Next())
	assert.Equal(t, 0, p.Prev())
	assert.Equal(t, "Pallet 1/1", p.Title())
}

func TestPager_Empty(t *testing.T) {
	p := NewPager(0)
	assert.Equal(t, 0, p.Next())
	assert.Equal(t, 0, p.Prev())
	assert.Equal(t, 0, p.Total())
	assert.Equal(t, "Pallet 0/0", p.Title())
}
