package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/sneakerbot/internal/action"
	"github.com/m3rciful/sneakerbot/internal/catalog"
)

func TestRemoveListNewestFirst(t *testing.T) {
	f := newFixture(t, shoe("A", "Nike", 42, 100), shoe("B", "Adidas", 43, 200))

	_, err := f.shop.HandleAction(context.Background(), press(testAdmin, 30), action.Of(action.RemoveShoeMenu))
	require.NoError(t, err)

	assert.Equal(t, textRemoveTitle, f.out.lastEdit().Text)
	assert.Equal(t, []string{"remove_2", "remove_1", "back_menu"}, buttonData(f.out.lastEdit().Markup))
}

func TestRemoveShoe(t *testing.T) {
	f := newFixture(t, shoe("A", "Nike", 42, 100), shoe("B", "Adidas", 43, 200))
	ctx := context.Background()

	notice, err := f.shop.HandleAction(ctx, press(testAdmin, 30), action.RemoveOf(1))
	require.NoError(t, err)
	assert.Equal(t, Notice{Text: "✅ Товар ID:1 успішно видалено!", Alert: true}, notice)
	assert.Equal(t, []string{"remove_2", "back_menu"}, buttonData(f.out.lastEdit().Markup))

	notice, err = f.shop.HandleAction(ctx, press(testAdmin, 30), action.RemoveOf(9))
	require.NoError(t, err)
	assert.Equal(t, Notice{Text: "❌ Товар ID:9 не знайдено.", Alert: true}, notice)
	assert.Equal(t, []string{"remove_2", "back_menu"}, buttonData(f.out.lastEdit().Markup))

	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRemoveLastShoeShowsEmptyList(t *testing.T) {
	f := newFixture(t, shoe("A", "Nike", 42, 100))

	_, err := f.shop.HandleAction(context.Background(), press(testAdmin, 30), action.RemoveOf(1))
	require.NoError(t, err)

	assert.Equal(t, textRemoveEmpty, f.out.lastEdit().Text)
	assert.Equal(t, []string{"back_menu"}, buttonData(f.out.lastEdit().Markup))
}

func TestRemoveStoreFailure(t *testing.T) {
	f := newFixture(t, shoe("A", "Nike", 42, 100))
	f.store.Fail = errors.New("locked")

	notice, err := f.shop.HandleAction(context.Background(), press(testAdmin, 30), action.RemoveOf(1))
	require.NoError(t, err)

	assert.Equal(t, alert(alertRemoveFailed), notice)
}

func TestAdminListOrderedByID(t *testing.T) {
	f := newFixture(t, shoe("A", "Nike", 42, 100), shoe("B", "Adidas", 43.5, 200))

	_, err := f.shop.HandleAction(context.Background(), press(testAdmin, 30), action.Of(action.AdminListShoes))
	require.NoError(t, err)

	text := f.out.lastEdit().Text
	assert.Less(t, strings.Index(text, "🆔 1: A"), strings.Index(text, "🆔 2: B"))
	assert.Contains(t, text, "🆔 2: B (Adidas, 43.5 розмір, 200 грн)\n")
	assert.Equal(t, []string{"back_menu"}, buttonData(f.out.lastEdit().Markup))
}

func TestAdminListEmpty(t *testing.T) {
	assert.Equal(t, textListTitle+textListEmpty, adminListScreen(nil).text)
}

func TestAdminListTruncatedToMessageLimit(t *testing.T) {
	var shoes []catalog.Shoe
	for i := 1; i <= 200; i++ {
		shoes = append(shoes, catalog.Shoe{
			ID:    int64(i),
			Name:  fmt.Sprintf("Limited edition runner %03d", i),
			Brand: "New Balance",
			Size:  44.5,
			Price: 12000,
		})
	}

	text := adminListScreen(shoes).text

	assert.LessOrEqual(t, utf8.RuneCountInString(text), MaxMessageLen)
	assert.True(t, strings.HasSuffix(text, "\n"+textListCut))
	assert.NotContains(t, text, "🆔 200:")
}
