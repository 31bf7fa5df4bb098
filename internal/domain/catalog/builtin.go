package catalog

import "github.com/shopspring/decimal"

// Builtin menu content. These entries ship with the binary and are merged
// with persisted custom entries at read time; they are never written to the
// store and cannot be modified.

var builtinCategories = []Category{
	{ID: "appetizers", DisplayName: "مقبلات", Icon: "🥗"},
	{ID: "fattah", DisplayName: "فتة", Icon: "🍛"},
	{ID: "drinks", DisplayName: "مشروبات", Icon: "🥤"},
	{ID: "desserts", DisplayName: "حلو", Icon: "🍮"},
}

var builtinItems = []Item{
	{ID: "bread", Name: "Bread", NameLocal: "عيش", Price: egp(10), CategoryID: "appetizers"},
	{ID: "salad", Name: "Salad", NameLocal: "سلطة", Price: egp(10), CategoryID: "appetizers"},
	{ID: "heavy-salad", Name: "Heavy Salad", NameLocal: "سلطة تقيلة", Price: egp(10), CategoryID: "appetizers"},
	{ID: "lentil-hummus", Name: "Lentil Hummus", NameLocal: "عدس حمص", Price: egp(10), CategoryID: "appetizers"},
	{ID: "hummus-drink", Name: "Hummus Shami Drink", NameLocal: "حمص شام مشروب", Price: egp(15), CategoryID: "appetizers"},
	{ID: "tomato-sauce", Name: "Tomato Sauce", NameLocal: "شطة طماطم", Price: egp(5), CategoryID: "appetizers"},
	{ID: "dukkah", Name: "Dukkah", NameLocal: "دقة", Price: egp(5), CategoryID: "appetizers"},
	{ID: "hot-sauce", Name: "Hot Sauce", NameLocal: "شطة", Price: egp(5), CategoryID: "appetizers"},

	{ID: "fattah-plain", Name: "Plain Fattah", NameLocal: "فتة سادة", Price: egp(55), CategoryID: "fattah"},
	{ID: "fattah-chicken", Name: "Chicken Fattah", NameLocal: "فتة فراخ", Price: egp(70), CategoryID: "fattah"},
	{ID: "fattah-meat", Name: "Meat Fattah", NameLocal: "فتة لحمة", Price: egp(70), CategoryID: "fattah"},
	{ID: "fattah-liver", Name: "Liver Fattah", NameLocal: "فتة كبدة", Price: egp(70), CategoryID: "fattah"},
	{ID: "fattah-sausage", Name: "Sausage Fattah", NameLocal: "فتة سجق", Price: egp(70), CategoryID: "fattah"},

	{ID: "water-small", Name: "Small Water", NameLocal: "مياه صغيرة", Price: egp(10), CategoryID: "drinks"},
	{ID: "water-large", Name: "Large Water", NameLocal: "مياه كبيرة", Price: egp(15), CategoryID: "drinks"},
	{ID: "soda-can", Name: "Soda Can", NameLocal: "مشروب غازي كانز", Price: egp(18), CategoryID: "drinks"},
	{ID: "soda-liter", Name: "Soda 1 Liter", NameLocal: "مشروب غازي 1 لتر", Price: egp(35), CategoryID: "drinks"},

	{ID: "rice-pudding-plain", Name: "Plain Rice Pudding", NameLocal: "أرز بلبن سادة", Price: egp(22), CategoryID: "desserts"},
	{ID: "rice-pudding-cream", Name: "Rice Pudding with Cream", NameLocal: "أرز بلبن قشدة", Price: egp(23), CategoryID: "desserts"},
	{ID: "rice-pudding-nuts", Name: "Rice Pudding with Nuts", NameLocal: "أرز بلبن مكسرات", Price: egp(30), CategoryID: "desserts"},
	{ID: "rice-pudding-basbousa", Name: "Rice Pudding with Basbousa", NameLocal: "أرز بلبن بسبوسة", Price: egp(30), CategoryID: "desserts"},
	{ID: "rice-pudding-nutella", Name: "Rice Pudding with Nutella", NameLocal: "أرز بلبن نوتيلا", Price: egp(30), CategoryID: "desserts"},
	{ID: "rice-pudding-lotus", Name: "Rice Pudding with Lotus", NameLocal: "أرز بلبن لوتس", Price: egp(30), CategoryID: "desserts"},
}

var (
	builtinCategoryIDs = make(map[string]struct{}, len(builtinCategories))
	builtinItemIDs     = make(map[string]struct{}, len(builtinItems))
)

func init() {
	for _, c := range builtinCategories {
		builtinCategoryIDs[c.ID] = struct{}{}
	}
	for _, it := range builtinItems {
		builtinItemIDs[it.ID] = struct{}{}
	}
}

func egp(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}
