package cart

import (
	"testing"

	"github.com/fekuna/ecoscan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Total(t *testing.T) {
	items := []model.CartItem{
		model.NewCartItem("1", model.Product{ID: "a", Name: "A", Price: 10.99}, 2),
		model.NewCartItem("2", model.Product{ID: "b", Name: "B", Price: 3.99, Status: "ECO"}, 1),
	}

	v := Render(items)

	assert.Equal(t, "$25.97", v.Total)
	assert.Empty(t, v.Message)
	require.Len(t, v.Lines, 2)
	assert.Equal(t, "$10.99", v.Lines[0].Price)
	assert.Equal(t, "$21.98", v.Lines[0].Subtotal)
	assert.Equal(t, 2, v.Lines[0].Quantity)
	assert.False(t, v.Lines[0].EcoFriendly)
	assert.True(t, v.Lines[1].EcoFriendly)
}

func TestRender_Empty(t *testing.T) {
	for _, items := range [][]model.CartItem{nil, {}} {
		v := Render(items)
		assert.Equal(t, "$0.00", v.Total)
		assert.Equal(t, MessageEmpty, v.Message)
		assert.Empty(t, v.Lines)
	}
}

func TestRender_NoFloatDrift(t *testing.T) {
	items := []model.CartItem{
		model.NewCartItem("1", model.Product{ID: "a", Price: 0.1}, 3),
		model.NewCartItem("2", model.Product{ID: "b", Price: 0.2}, 1),
	}
	assert.Equal(t, "$0.50", Render(items).Total)
}

func TestProductPrice(t *testing.T) {
	assert.Equal(t, "$2.68", ProductPrice(model.Product{Price: 2.675}))
	assert.Equal(t, "$24.99", ProductPrice(model.Product{Price: 24.99}))
	assert.Equal(t, "$0.00", ProductPrice(model.Product{}))
}

func TestRenderLoadFailure(t *testing.T) {
	v := RenderLoadFailure()
	assert.Equal(t, MessageLoadFailed, v.Message)
	assert.Equal(t, "$0.00", v.Total)
	assert.Empty(t, v.Lines)
}
