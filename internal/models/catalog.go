package models

// CategoryOption pairs a suggested category or item label with its icon.
type CategoryOption struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// PredefinedCategories are the stock categories offered when adding items.
var PredefinedCategories = []CategoryOption{
	{Label: "Skin Care", Icon: "✨"},
	{Label: "Make-up", Icon: "💄"},
	{Label: "Body Care", Icon: "🧴"},
	{Label: "Fruits", Icon: "🍎"},
	{Label: "Vegetables", Icon: "🥦"},
	{Label: "Dairy", Icon: "🥛"},
	{Label: "Meats", Icon: "🥩"},
	{Label: "Office Supplies", Icon: "✏️"},
	{Label: "Daily Use", Icon: "🧻"},
}

// PredefinedUnits are the counting units offered when adding items.
var PredefinedUnits = []string{"kg", "bottle", "jar", "pcs", "pack"}

// categoryItems maps each predefined category to its suggested items.
var categoryItems = map[string][]CategoryOption{
	"Skin Care": {
		{Label: "Moisturizer", Icon: "💧"},
		{Label: "Face Wash", Icon: "🧼"},
		{Label: "Sunscreen", Icon: "☀️"},
		{Label: "Face Mask", Icon: "🧖‍♀️"},
		{Label: "Toner", Icon: "🧴"},
		{Label: "Serum", Icon: "🧪"},
		{Label: "Eye Cream", Icon: "👁️"},
		{Label: "Exfoliator", Icon: "✨"},
		{Label: "Night Cream", Icon: "🌙"},
		{Label: "BB Cream", Icon: "🎨"},
		{Label: "Essence", Icon: "💎"},
		{Label: "Facial Oil", Icon: "🌿"},
	},
	"Make-up": {
		{Label: "Foundation", Icon: "🎭"},
		{Label: "Lipstick", Icon: "💋"},
		{Label: "Blush", Icon: "🌸"},
		{Label: "Eyeshadow Palette", Icon: "🎨"},
		{Label: "Mascara", Icon: "👁️"},
		{Label: "Eyeliner", Icon: "🖊️"},
		{Label: "Concealer", Icon: "✨"},
		{Label: "Lip Gloss", Icon: "💄"},
		{Label: "Eyebrow Pencil", Icon: "📝"},
		{Label: "Setting Spray", Icon: "💦"},
		{Label: "Primer", Icon: "🧴"},
		{Label: "Highlighter", Icon: "⭐"},
		{Label: "Bronzer", Icon: "☀️"},
	},
	"Body Care": {
		{Label: "Body Lotion", Icon: "🧴"},
		{Label: "Soap", Icon: "🧼"},
		{Label: "Shower Gel", Icon: "🚿"},
		{Label: "Shampoo", Icon: "🛁"},
		{Label: "Conditioner", Icon: "💆‍♀️"},
		{Label: "Body Scrub", Icon: "🌊"},
		{Label: "Hand Cream", Icon: "🤲"},
		{Label: "Deodorant", Icon: "💨"},
		{Label: "Body Oil", Icon: "🌿"},
		{Label: "Hair Mask", Icon: "💇‍♀️"},
		{Label: "Foot Cream", Icon: "🦶"},
		{Label: "Bath Salts", Icon: "🧂"},
	},
	"Fruits": {
		{Label: "Apple", Icon: "🍎"},
		{Label: "Banana", Icon: "🍌"},
		{Label: "Orange", Icon: "🍊"},
		{Label: "Grapes", Icon: "🍇"},
		{Label: "Strawberry", Icon: "🍓"},
		{Label: "Watermelon", Icon: "🍉"},
		{Label: "Mango", Icon: "🥭"},
		{Label: "Pineapple", Icon: "🍍"},
		{Label: "Peach", Icon: "🍑"},
		{Label: "Kiwi", Icon: "🥝"},
		{Label: "Blueberry", Icon: "🫐"},
		{Label: "Lemon", Icon: "🍋"},
		{Label: "Pear", Icon: "🍐"},
	},
	"Vegetables": {
		{Label: "Carrot", Icon: "🥕"},
		{Label: "Broccoli", Icon: "🥦"},
		{Label: "Spinach", Icon: "🍃"},
		{Label: "Potato", Icon: "🥔"},
		{Label: "Tomato", Icon: "🍅"},
		{Label: "Cucumber", Icon: "🥒"},
		{Label: "Bell Pepper", Icon: "🫑"},
		{Label: "Onion", Icon: "🧅"},
		{Label: "Garlic", Icon: "🧄"},
		{Label: "Lettuce", Icon: "🥬"},
		{Label: "Corn", Icon: "🌽"},
		{Label: "Mushroom", Icon: "🍄"},
	},
	"Dairy": {
		{Label: "Milk", Icon: "🥛"},
		{Label: "Yogurt", Icon: "🍦"},
		{Label: "Cheese", Icon: "🧀"},
		{Label: "Butter", Icon: "🧈"},
		{Label: "Cream", Icon: "🍨"},
		{Label: "Sour Cream", Icon: "🥄"},
		{Label: "Cottage Cheese", Icon: "🍶"},
		{Label: "Cream Cheese", Icon: "🧈"},
		{Label: "Whipped Cream", Icon: "🍰"},
		{Label: "Ice Cream", Icon: "🍦"},
		{Label: "Condensed Milk", Icon: "🥫"},
	},
	"Meats": {
		{Label: "Chicken Breast", Icon: "🍗"},
		{Label: "Ground Beef", Icon: "🍖"},
		{Label: "Pork", Icon: "🥓"},
		{Label: "Salmon", Icon: "🐟"},
		{Label: "Tuna", Icon: "🐠"},
		{Label: "Shrimp", Icon: "🦐"},
		{Label: "Bacon", Icon: "🥓"},
		{Label: "Sausage", Icon: "🌭"},
		{Label: "Lamb", Icon: "🍖"},
		{Label: "Turkey", Icon: "🦃"},
		{Label: "Duck", Icon: "🦆"},
		{Label: "Crab", Icon: "🦀"},
	},
	"Office Supplies": {
		{Label: "Notebook", Icon: "📓"},
		{Label: "Pen", Icon: "🖊️"},
		{Label: "Paper", Icon: "📄"},
		{Label: "Stapler", Icon: "📎"},
		{Label: "Tape", Icon: "📏"},
		{Label: "Scissors", Icon: "✂️"},
		{Label: "Highlighter", Icon: "🖍️"},
		{Label: "Sticky Notes", Icon: "📝"},
		{Label: "Folder", Icon: "📁"},
		{Label: "Binder", Icon: "📚"},
		{Label: "Eraser", Icon: "🧽"},
		{Label: "Ruler", Icon: "📐"},
	},
	"Daily Use": {
		{Label: "Toilet Paper", Icon: "🧻"},
		{Label: "Toothpaste", Icon: "🦷"},
		{Label: "Laundry Detergent", Icon: "🧺"},
		{Label: "Dish Soap", Icon: "🍽️"},
		{Label: "Trash Bags", Icon: "🗑️"},
		{Label: "Paper Towels", Icon: "🧻"},
		{Label: "Tissues", Icon: "🤧"},
		{Label: "Cleaning Spray", Icon: "🧴"},
		{Label: "Sponge", Icon: "🧽"},
		{Label: "Aluminum Foil", Icon: "📦"},
		{Label: "Plastic Wrap", Icon: "📦"},
		{Label: "Batteries", Icon: "🔋"},
	},
}

// SuggestedItems returns the catalog entries for a predefined category,
// or nil for custom categories.
func SuggestedItems(category string) []CategoryOption {
	return categoryItems[category]
}

// ItemIcon looks up the catalog icon for an item name, falling back to the
// generic box glyph.
func ItemIcon(name string) string {
	for _, options := range categoryItems {
		for _, opt := range options {
			if opt.Label == name {
				return opt.Icon
			}
		}
	}
	return "📦"
}
