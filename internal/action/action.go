// Package action encodes and decodes the callback data carried by inline
// buttons.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/sneakerbot/core/telegram/format"
)

// Kind identifies a button action. Kinds double as callback registry keys.
type Kind string

const (
	BackMenu       Kind = "back_menu"
	ShowAll        Kind = "show_all"
	FilterOptions  Kind = "filter_options"
	BrandFilter    Kind = "brand_filter"
	SizeFilter     Kind = "size_filter"
	ToggleBrand    Kind = "toggle_brand"
	ToggleSize     Kind = "toggle_size"
	ApplyFilters   Kind = "apply_filters"
	ResetFilters   Kind = "reset_filters"
	AdminPanel     Kind = "admin_panel"
	AddShoePrompt  Kind = "add_shoe_prompt"
	RemoveShoeMenu Kind = "remove_shoe_menu"
	RemoveShoe     Kind = "remove"
	AdminListShoes Kind = "admin_list_shoes"
	Page           Kind = "page"
	CancelAdd      Kind = "cancel_add"
)

// MaxDataLen is Telegram's limit on callback data, in bytes.
const MaxDataLen = 64

// ErrUnknown is returned for callback data no action matches.
var ErrUnknown = errors.New("action: unknown callback data")

var plain = map[string]Kind{
	string(BackMenu):       BackMenu,
	string(ShowAll):        ShowAll,
	string(FilterOptions):  FilterOptions,
	string(BrandFilter):    BrandFilter,
	string(SizeFilter):     SizeFilter,
	string(ApplyFilters):   ApplyFilters,
	string(ResetFilters):   ResetFilters,
	string(AdminPanel):     AdminPanel,
	string(AddShoePrompt):  AddShoePrompt,
	string(RemoveShoeMenu): RemoveShoeMenu,
	string(AdminListShoes): AdminListShoes,
	string(CancelAdd):      CancelAdd,
}

const (
	prefixToggleBrand = "toggle_brand_"
	prefixToggleSize  = "toggle_size_"
	prefixRemove      = "remove_"
	prefixPage        = "page_"
)

// Action is a decoded button press. Only the payload field matching Kind is set.
type Action struct {
	Kind  Kind
	Brand string
	// SizeToken is the raw size text; parsing is left to the handler so a bad
	// token can be reported to the user.
	SizeToken string
	ShoeID    int64
	Page      int
}

// Of returns a payload-free action.
func Of(k Kind) Action { return Action{Kind: k} }

// ToggleBrandOf returns the action toggling brand.
func ToggleBrandOf(brand string) Action { return Action{Kind: ToggleBrand, Brand: brand} }

// ToggleSizeOf returns the action toggling size.
func ToggleSizeOf(size float64) Action {
	return Action{Kind: ToggleSize, SizeToken: format.Size(size)}
}

// RemoveOf returns the action deleting shoe id.
func RemoveOf(id int64) Action { return Action{Kind: RemoveShoe, ShoeID: id} }

// PageOf returns the action rendering catalog page n.
func PageOf(n int) Action { return Action{Kind: Page, Page: n} }

// Encode renders a as callback data.
func (a Action) Encode() string {
	switch a.Kind {
	case ToggleBrand:
		return prefixToggleBrand + a.Brand
	case ToggleSize:
		return prefixToggleSize + a.SizeToken
	case RemoveShoe:
		return prefixRemove + strconv.FormatInt(a.ShoeID, 10)
	case Page:
		return prefixPage + strconv.Itoa(a.Page)
	default:
		return string(a.Kind)
	}
}

// Fits reports whether the encoded action is within Telegram's data limit.
func (a Action) Fits() bool {
	return len(a.Encode()) <= MaxDataLen
}

// Decode parses callback data. Exact tokens win over prefixed ones, so
// "remove_shoe_menu" never reads as a removal.
func Decode(data string) (Action, error) {
	if k, ok := plain[data]; ok {
		return Of(k), nil
	}
	switch {
	case strings.HasPrefix(data, prefixToggleBrand):
		return ToggleBrandOf(strings.TrimPrefix(data, prefixToggleBrand)), nil
	case strings.HasPrefix(data, prefixToggleSize):
		return Action{Kind: ToggleSize, SizeToken: strings.TrimPrefix(data, prefixToggleSize)}, nil
	case strings.HasPrefix(data, prefixRemove):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, prefixRemove), 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknown, data)
		}
		return RemoveOf(id), nil
	case strings.HasPrefix(data, prefixPage):
		n, err := strconv.Atoi(strings.TrimPrefix(data, prefixPage))
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknown, data)
		}
		return PageOf(n), nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknown, data)
}

// DecodeCallback adapts Decode to the callback router, keying handlers by Kind.
func DecodeCallback(data string) (string, any, error) {
	a, err := Decode(data)
	if err != nil {
		return "", nil, err
	}
	return string(a.Kind), a, nil
}
