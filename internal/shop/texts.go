package shop

const (
	emojiShoes   = "👟"
	emojiFilter  = "🔍"
	emojiSize    = "📏"
	emojiBrand   = "🏷️"
	emojiAdmin   = "🛠️"
	emojiAdd     = "➕"
	emojiRemove  = "🗑️"
	emojiList    = "📋"
	emojiBack    = "🔙"
	emojiApply   = "✅"
	emojiReset   = "❌"
	emojiNext    = "➡️"
	emojiPrev    = "⬅️"
	emojiMoney   = "💵"
	emojiInfo    = "ℹ️"
	emojiSuccess = "✅"
	emojiError   = "❌"

	markSelected   = "✅"
	markUnselected = "◻️"
)

const (
	btnShowAll      = emojiShoes + " Усі товари"
	btnFilters      = emojiFilter + " Фільтр товарів"
	btnAdminPanel   = emojiAdmin + " Адмін-панель"
	btnBrandFilter  = emojiBrand + " Фільтр по бренду"
	btnSizeFilter   = emojiSize + " Фільтр по розміру"
	btnApply        = emojiApply + " Застосувати фільтри"
	btnReset        = emojiReset + " Скинути фільтри"
	btnBack         = emojiBack + " Назад"
	btnMainMenu     = emojiBack + " Головне меню"
	btnChangeFilter = emojiFilter + " Змінити фільтри"
	btnAddShoe      = emojiAdd + " Додати товар"
	btnRemoveShoe   = emojiRemove + " Видалити товар"
	btnListShoes    = emojiList + " Список товарів"
	btnPrev         = emojiPrev + " Попередні"
	btnNext         = "Наступні " + emojiNext
	btnCancel       = emojiError + " Скасувати"
)

const (
	textMainMenu      = emojiShoes + " <b>Магазин взуття %s</b>\nОберіть опцію:"
	textFilterTitle   = "⚙️ <b>Фільтрація товарів</b>\n\n"
	textFilterCurrent = emojiFilter + " <b>Поточні фільтри:</b>\n"
	textFilterBrands  = emojiBrand + " <b>Бренди:</b> %s\n"
	textFilterSizes   = emojiSize + " <b>Розміри:</b> %s\n"
	textFilterFooter  = "Оберіть параметри фільтрації:"
	textBrandMenu     = emojiBrand + " <b>Оберіть бренди:</b>"
	textSizeMenu      = emojiSize + " <b>Оберіть розміри:</b>"
	textSizeButton    = "Розмір %s"
	textAdminMenu     = emojiAdmin + " <b>Адмін-панель</b>\nОберіть дію:"

	textRemoveTitle  = emojiRemove + " <b>Оберіть товар для видалення:</b>"
	textRemoveEmpty  = emojiInfo + " Наразі немає товарів для видалення."
	textRemoveButton = "🗑️ %s (%s, %s, %d грн) - ID: %d"
	textListTitle    = emojiList + " <b>Список усіх товарів:</b>\n\n"
	textListEmpty    = "Наразі немає доданих товарів."
	textListLine     = "🆔 %d: %s (%s, %s розмір, %d грн)\n"
	textListCut      = "…"

	textCaption = emojiShoes + " <b>%s</b>\n" +
		emojiBrand + " <b>Бренд:</b> %s\n" +
		emojiSize + " <b>Розмір:</b> %s\n" +
		emojiMoney + " <b>Ціна:</b> %d грн\n" +
		"🆔 ID: %d\n\n" +
		"Для замовлення писати: <a href='tg://resolve?domain=%s'>@%s</a>"
	textPhotoFailed = "\n\n" + emojiError + " Не вдалося завантажити зображення."
	textNotFound    = "🙁 <b>На жаль, товарів за вашим запитом не знайдено.</b>"
	textEmptyPage   = "🙁 <b>На цій сторінці немає товарів.</b>"
	textPageFailed  = emojiError + " Виникла помилка при завантаженні товарів. Будь ласка, спробуйте пізніше."
	textControls    = "📄 <b>Сторінка %d/%d | Знайдено товарів: %d</b>"

	textPromptName  = "Будь ласка, введіть <b>назву</b> товару:"
	textPromptBrand = "Тепер введіть <b>бренд</b> товару:"
	textPromptSize  = "Введіть <b>розмір</b> товару (наприклад 42.5 або 43):"
	textPromptPrice = "Введіть <b>ціну</b> товару (ціле число):"
	textPromptImage = "Надішліть <b>URL зображення</b> товару (або напишіть 'ні', якщо немає):"
	textEmptyValue  = emojiError + " Значення не може бути порожнім. Спробуйте ще раз."
	textBadSize     = emojiError + " Некоректний розмір. Будь ласка, введіть число (наприклад 42.5)."
	textBadPrice    = emojiError + " Некоректна ціна. Будь ласка, введіть ціле число."
	textSizeNotPos  = " Розмір повинен бути додатнім числом."
	textPriceNotPos = " Ціна повинна бути додатнім числом."
	textAdded       = emojiSuccess + " Товар успішно додано!"
	textAddFailed   = emojiError + " Виникла внутрішня помилка при додаванні товару."
	textAddCanceled = emojiInfo + " Додавання товару скасовано."
	textNoDraft     = emojiInfo + " Немає активного додавання товару."

	alertFiltersReset = "Фільтри скинуто!"
	alertBadSize      = emojiError + " Помилка формату розміру."
	alertBrandsFailed = emojiError + " Помилка завантаження брендів."
	alertSizesFailed  = emojiError + " Помилка завантаження розмірів."
	alertRemoveLoad   = emojiError + " Помилка завантаження товарів для видалення."
	alertListFailed   = emojiError + " Помилка завантаження списку товарів."
	alertRemoved      = emojiSuccess + " Товар ID:%d успішно видалено!"
	alertRemoveMiss   = emojiError + " Товар ID:%d не знайдено."
	alertRemoveFailed = emojiError + " Помилка при видаленні товару."
	alertUnsupported  = "⚠️ Непідтримувана дія."

	// TextNoAccess is shown by the capability gate.
	TextNoAccess = "У вас немає доступу до цієї функції."
	textUseMenu  = TextNoAccess + " Будь ласка, використовуйте кнопки меню."
)
