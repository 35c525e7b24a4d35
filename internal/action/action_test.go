package action

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTokens(t *testing.T) {
	cases := map[string]Action{
		"back_menu":                Of(BackMenu),
		"show_all":                 Of(ShowAll),
		"filter_options":           Of(FilterOptions),
		"brand_filter":             Of(BrandFilter),
		"size_filter":              Of(SizeFilter),
		"apply_filters":            Of(ApplyFilters),
		"reset_filters":            Of(ResetFilters),
		"admin_panel":              Of(AdminPanel),
		"add_shoe_prompt":          Of(AddShoePrompt),
		"remove_shoe_menu":         Of(RemoveShoeMenu),
		"admin_list_shoes":         Of(AdminListShoes),
		"cancel_add":               Of(CancelAdd),
		"toggle_brand_Nike":        ToggleBrandOf("Nike"),
		"toggle_brand_New Balance": ToggleBrandOf("New Balance"),
		"toggle_size_42.5":         {Kind: ToggleSize, SizeToken: "42.5"},
		"toggle_size_42,5":         {Kind: ToggleSize, SizeToken: "42,5"},
		"remove_17":                RemoveOf(17),
		"page_2":                   PageOf(2),
	}
	for data, want := range cases {
		got, err := Decode(data)
		require.NoError(t, err, data)
		assert.Equal(t, want, got, data)
		assert.Equal(t, data, got.Encode(), data)
	}
}

func TestDecodeRejectsUnknown(t *testing.T) {
	for _, data := range []string{"", "nope", "remove_x", "page_", "page_two"} {
		_, err := Decode(data)
		assert.ErrorIs(t, err, ErrUnknown, data)
	}
}

func TestToggleSizeOfTrimsZeros(t *testing.T) {
	assert.Equal(t, "toggle_size_43", ToggleSizeOf(43.0).Encode())
	assert.Equal(t, "toggle_size_42.5", ToggleSizeOf(42.5).Encode())
}

func TestFits(t *testing.T) {
	assert.True(t, ToggleBrandOf("Nike").Fits())
	assert.False(t, ToggleBrandOf(strings.Repeat("x", 60)).Fits())
}

func TestDecodeCallback(t *testing.T) {
	key, payload, err := DecodeCallback("page_4")
	require.NoError(t, err)
	assert.Equal(t, "page", key)
	assert.Equal(t, PageOf(4), payload)

	_, _, err = DecodeCallback("bogus")
	assert.Error(t, err)
}
