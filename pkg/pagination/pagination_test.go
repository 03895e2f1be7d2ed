package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero page", Params{Page: 0, Size: 10}, Params{Page: 1, Size: 10}},
		{"negative page", Params{Page: -3, Size: 10}, Params{Page: 1, Size: 10}},
		{"zero size", Params{Page: 2, Size: 0}, Params{Page: 2, Size: DefaultPageSize}},
		{"already sane", Params{Page: 5, Size: 20}, Params{Page: 5, Size: 20}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Size: 4}.Offset())
	assert.Equal(t, 4, Params{Page: 2, Size: 4}.Offset())
	assert.Equal(t, 0, Params{Page: 0, Size: 4}.Offset())
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/catalog?page=3", nil)
	assert.Equal(t, Params{Page: 3, Size: 4}, FromRequest(r, 4))

	r = httptest.NewRequest("GET", "/catalog?page=banana", nil)
	assert.Equal(t, Params{Page: 1, Size: 4}, FromRequest(r, 4))

	r = httptest.NewRequest("GET", "/catalog", nil)
	assert.Equal(t, Params{Page: 1, Size: 4}, FromRequest(r, 4))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Size: 4}, 9)
	assert.Equal(t, 2, meta.Page)
	assert.EqualValues(t, 9, meta.TotalItems)
	assert.Equal(t, 3, meta.TotalPages)

	// An empty result set still lands on one page.
	meta = NewMeta(Params{Page: 1, Size: 4}, 0)
	assert.Equal(t, 1, meta.TotalPages)
}
