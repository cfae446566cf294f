package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrangementEqual(t *testing.T) {
	base := Arrangement{
		{ID: "book", Component: "orderbook", X: 0, Y: 0, W: 6, H: 8, Settings: map[string]string{"depth": "25"}},
		{ID: "chart", Component: "chart", X: 6, Y: 0, W: 18, H: 8},
	}

	assert.True(t, base.Equal(base.Clone()))
	assert.True(t, Arrangement(nil).Equal(Arrangement{}))

	moved := base.Clone()
	moved[1].X = 4
	assert.False(t, base.Equal(moved))

	reordered := Arrangement{base[1], base[0]}
	assert.False(t, base.Equal(reordered))

	resettled := base.Clone()
	resettled[0].Settings["depth"] = "50"
	assert.False(t, base.Equal(resettled))
	assert.Equal(t, "25", base[0].Settings["depth"], "clone must not share settings")
}

func TestArrangementWidget(t *testing.T) {
	a := Arrangement{{ID: "book"}, {ID: "chart"}}

	w, ok := a.Widget("chart")
	assert.True(t, ok)
	assert.Equal(t, "chart", w.ID)

	_, ok = a.Widget("ticker")
	assert.False(t, ok)
}
