package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCartItem_EcoFlagIsCaseSensitive(t *testing.T) {
	cases := map[string]bool{
		"ECO":          true,
		"eco":          false,
		"Eco":          false,
		" ECO":         false,
		"CONVENTIONAL": false,
		"":             false,
	}
	for status, want := range cases {
		item := NewCartItem("1", Product{ID: "p", Status: status}, 1)
		assert.Equal(t, want, item.IsEcoFriendly, "status %q", status)
	}
}

func TestProductCode_FallsBackToID(t *testing.T) {
	assert.Equal(t, "123", Product{ID: "123"}.Code())
	assert.Equal(t, "0042", Product{ID: "123", Barcode: "0042"}.Code())
}
