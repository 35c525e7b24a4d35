package shop

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// dump renders a screen as its text followed by one line per keyboard row.
func dump(scr screen) []byte {
	var b strings.Builder
	b.WriteString(scr.text)
	b.WriteString("\n---\n")
	if scr.markup != nil {
		for _, row := range scr.markup.InlineKeyboard {
			cells := make([]string, len(row))
			for i, btn := range row {
				cells[i] = btn.Text + " [" + btn.Data + "]"
			}
			b.WriteString(strings.Join(cells, " | "))
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

func goldenShoes() []catalog.Shoe {
	return []catalog.Shoe{
		{ID: 1, Name: "Nike Air Max 90", Brand: "Nike", Size: 42, Price: 4500},
		{ID: 2, Name: "Adidas Ultraboost", Brand: "Adidas", Size: 43.5, Price: 5200},
		{ID: 3, Name: "New Balance 574", Brand: "New Balance", Size: 41, Price: 3800},
	}
}

func TestCaptionGolden(t *testing.T) {
	g := newGoldie(t)

	g.Assert(t, "caption", []byte(Caption(catalog.Shoe{ID: 7, Name: "Nike Air Max 90", Brand: "Nike", Size: 42.5, Price: 4500}, "takar28")))
	g.Assert(t, "caption_escaped", []byte(Caption(catalog.Shoe{ID: 8, Name: `Air <Max> & "Co"`, Brand: "Nike", Size: 44, Price: 100}, "takar28")))
}

func TestCaptionEscapesContact(t *testing.T) {
	c := Caption(catalog.Shoe{ID: 1, Name: "A", Brand: "B", Size: 42, Price: 1}, `shop'<x>`)
	assert.Contains(t, c, `<a href='tg://resolve?domain=shop&#39;&lt;x&gt;'>@shop&#39;&lt;x&gt;</a>`)
	assert.NotContains(t, c, "shop'")
}

func TestAdminListGolden(t *testing.T) {
	newGoldie(t).Assert(t, "admin_list", dump(adminListScreen(goldenShoes())))
}

func TestRemoveListGolden(t *testing.T) {
	newGoldie(t).Assert(t, "remove_list", dump(removeScreen(goldenShoes())))
}

func TestFilterMenuGolden(t *testing.T) {
	f := session.Filter{Brands: []string{"Nike", "Adidas"}, Sizes: []float64{42.5, 43}}
	newGoldie(t).Assert(t, "filter_menu", dump(filterScreen(f)))
}

func TestControlsGolden(t *testing.T) {
	newGoldie(t).Assert(t, "controls_middle_page", dump(controlsScreen(paginate(7, 1, 3))))
}
