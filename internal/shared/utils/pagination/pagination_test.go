package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsBounds(t *testing.T) {
	p := Params{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultSize, p.Size)

	p = Params{Page: -3, Size: 1000}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxSize, p.Size)
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Size: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestNewPageComputesPages(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 41, Params{Page: 1, Size: 20})
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, int64(41), page.Total)

	empty := NewPage[string](nil, 0, Params{Page: 1, Size: 20})
	assert.NotNil(t, empty.Items, "items must marshal as an empty array, not null")
	assert.Equal(t, 0, empty.Pages)
}
