package cost

// Fixed tables the cost engine consults. These mirror hard-coded data
// in the army books rather than anything configurable at runtime.

// SpritePoolCap is the shared point cap across all active upgrades of
// the pooled "sprites" type.
const SpritePoolCap = 50

// spriteType is the pooled-budget upgrade type.
const spriteType = "sprites"

// Category magic item budgets for generic characters.
var categoryBudgets = map[string]int{
	"Lords":  100,
	"Heroes": 50,
}

// namedCharacterBudget entries match case-insensitively on name prefix,
// so renamed variants ("Orion, King in the Woods") still resolve.
type namedBudget struct {
	prefix string
	budget int
}

var namedCharacterBudgets = []namedBudget{
	{"orion", 100},
	{"ariel", 100},
	{"durthu", 75},
	{"drycha", 0},
	{"naestra", 0},
	{"arahan", 0},
	{"sceolan", 50},
	{"glam", 25},
}

// namedCharacterDefaultBudget applies to named characters missing from
// the table above.
const namedCharacterDefaultBudget = 50

// PerModelAmmoUnits lists the unit ids whose special ammunition is
// priced per model; everyone else pays the flat price.
var PerModelAmmoUnits = map[string]bool{
	"glade-guard":     true,
	"deepwood-scouts": true,
	"waywatchers":     true,
}
