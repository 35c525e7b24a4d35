package shop

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/sneakerbot/core/telegram/format"
	"github.com/m3rciful/sneakerbot/core/telegram/keyboard"
	"github.com/m3rciful/sneakerbot/internal/action"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

// MaxMessageLen is Telegram's limit on message text.
const MaxMessageLen = 4096

const removeNameLimit = 32

// screen is a rendered text message with its inline keyboard.
type screen struct {
	text   string
	markup *tele.ReplyMarkup
}

func btn(text string, a action.Action) keyboard.Button {
	return keyboard.Button{Text: text, Data: a.Encode()}
}

func backBtn() keyboard.Button { return btn(btnBack, action.Of(action.BackMenu)) }

func mainScreen(shopName string, admin bool) screen {
	kb := keyboard.New().Column(
		btn(btnShowAll, action.Of(action.ShowAll)),
		btn(btnFilters, action.Of(action.FilterOptions)),
	)
	if admin {
		kb.Row(btn(btnAdminPanel, action.Of(action.AdminPanel)))
	}
	return screen{
		text:   fmt.Sprintf(textMainMenu, format.EscapeHTML(shopName)),
		markup: kb.Markup(),
	}
}

func filterScreen(f session.Filter) screen {
	var info strings.Builder
	if len(f.Brands) > 0 {
		escaped := make([]string, len(f.Brands))
		for i, b := range f.Brands {
			escaped[i] = format.EscapeHTML(b)
		}
		fmt.Fprintf(&info, textFilterBrands, strings.Join(escaped, ", "))
	}
	if len(f.Sizes) > 0 {
		fmt.Fprintf(&info, textFilterSizes, format.Sizes(f.Sizes))
	}

	var text strings.Builder
	text.WriteString(textFilterTitle)
	if info.Len() > 0 {
		text.WriteString(textFilterCurrent)
		text.WriteString(info.String())
	}
	text.WriteString(textFilterFooter)

	return screen{
		text: text.String(),
		markup: keyboard.New().Column(
			btn(btnBrandFilter, action.Of(action.BrandFilter)),
			btn(btnSizeFilter, action.Of(action.SizeFilter)),
			btn(btnApply, action.Of(action.ApplyFilters)),
			btn(btnReset, action.Of(action.ResetFilters)),
			backBtn(),
		).Markup(),
	}
}

func mark(selected bool) string {
	if selected {
		return markSelected
	}
	return markUnselected
}

// brandScreen lists brands with their selection marks. Brands whose callback
// data would exceed Telegram's limit get no button and are returned in skipped.
func brandScreen(brands []string, f session.Filter) (scr screen, skipped []string) {
	kb := keyboard.New()
	for _, b := range brands {
		a := action.ToggleBrandOf(b)
		if !a.Fits() {
			skipped = append(skipped, b)
			continue
		}
		kb.Row(btn(mark(f.HasBrand(b))+" "+b, a))
	}
	return screen{text: textBrandMenu, markup: kb.Row(backBtn()).Markup()}, skipped
}

func sizeScreen(sizes []float64, f session.Filter) screen {
	kb := keyboard.New()
	for _, v := range sizes {
		label := mark(f.HasSize(v)) + " " + fmt.Sprintf(textSizeButton, format.Size(v))
		kb.Row(btn(label, action.ToggleSizeOf(v)))
	}
	return screen{text: textSizeMenu, markup: kb.Row(backBtn()).Markup()}
}

func adminScreen() screen {
	return screen{
		text: textAdminMenu,
		markup: keyboard.New().Column(
			btn(btnAddShoe, action.Of(action.AddShoePrompt)),
			btn(btnRemoveShoe, action.Of(action.RemoveShoeMenu)),
			btn(btnListShoes, action.Of(action.AdminListShoes)),
			btn(btnMainMenu, action.Of(action.BackMenu)),
		).Markup(),
	}
}

// removeScreen lists shoes newest first, one delete button each. shoes must be
// ordered by id ascending.
func removeScreen(shoes []catalog.Shoe) screen {
	text := textRemoveTitle
	if len(shoes) == 0 {
		text = textRemoveEmpty
	}
	kb := keyboard.New()
	for i := len(shoes) - 1; i >= 0; i-- {
		s := shoes[i]
		label := fmt.Sprintf(textRemoveButton,
			format.Truncate(s.Name, removeNameLimit, "…"),
			format.Truncate(s.Brand, removeNameLimit, "…"),
			format.Size(s.Size), s.Price, s.ID)
		kb.Row(btn(label, action.RemoveOf(s.ID)))
	}
	return screen{text: text, markup: kb.Row(backBtn()).Markup()}
}

// adminListScreen renders the full catalog as text. Lines that would push the
// message past MaxMessageLen are dropped and a cut mark is appended.
func adminListScreen(shoes []catalog.Shoe) screen {
	var b strings.Builder
	b.WriteString(textListTitle)
	if len(shoes) == 0 {
		b.WriteString(textListEmpty)
	}
	used := utf8.RuneCountInString(textListTitle)
	budget := MaxMessageLen - utf8.RuneCountInString(textListCut)
	for _, s := range shoes {
		line := fmt.Sprintf(textListLine, s.ID, format.EscapeHTML(s.Name), format.EscapeHTML(s.Brand), format.Size(s.Size), s.Price)
		n := utf8.RuneCountInString(line)
		if used+n > budget {
			b.WriteString(textListCut)
			break
		}
		b.WriteString(line)
		used += n
	}
	return screen{
		text:   b.String(),
		markup: keyboard.New().Row(backBtn()).Markup(),
	}
}

// Caption renders one catalog item.
func Caption(s catalog.Shoe, contact string) string {
	link := format.EscapeHTML(contact)
	return fmt.Sprintf(textCaption,
		format.EscapeHTML(s.Name),
		format.EscapeHTML(s.Brand),
		format.Size(s.Size),
		s.Price,
		s.ID,
		link, link,
	)
}

func controlsScreen(w window) screen {
	var nav []keyboard.Button
	if w.Page > 0 {
		nav = append(nav, btn(btnPrev, action.PageOf(w.Page-1)))
	}
	if w.End < w.Total {
		nav = append(nav, btn(btnNext, action.PageOf(w.Page+1)))
	}
	return screen{
		text: fmt.Sprintf(textControls, w.Page+1, w.Pages, w.Total),
		markup: keyboard.New().Row(nav...).Row(
			btn(btnMainMenu, action.Of(action.BackMenu)),
			btn(btnChangeFilter, action.Of(action.FilterOptions)),
		).Markup(),
	}
}
