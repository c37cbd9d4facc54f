package game

// ItemKey is a tagged inventory key: either one of the fixed item enum
// values or a `thing:<Kind>` wrapper letting any placeable structure be
// carried (spec.md §3). Item and ThingKind are mutually exclusive; a
// zero-value ItemKey with Item == ItemNone and ThingKind == KindNone is
// invalid and never stored.
type ItemKey struct {
	Item      Item
	ThingKind Kind // set instead of Item for "thing:<Kind>" carried-structure keys
}

// Item is the fixed inventory item enum (spec.md §3).
type Item uint8

const (
	ItemNone Item = iota
	ItemGold
	ItemStone
	ItemBar
	ItemWater
	ItemWheat
	ItemWood
	ItemSpear
	ItemLantern
	ItemArmor
	ItemBread
	ItemFish
	ItemPlant
	ItemMeat
	ItemRelic
	ItemHearts
)

// Key constructs an ItemKey for a fixed enum item.
func Key(i Item) ItemKey { return ItemKey{Item: i} }

// ThingKey constructs a "thing:<Kind>" carried-structure ItemKey.
func ThingKey(k Kind) ItemKey { return ItemKey{ThingKind: k} }

// Resource is a per-team stockpile bucket (spec.md §3/§4.5).
type Resource uint8

const (
	ResourceFood Resource = iota
	ResourceWood
	ResourceStone
	ResourceGold
	ResourceWater
)

// foodItems are the inventory items that aggregate into the Food stockpile
// resource on dropoff.
var foodItems = map[Item]bool{
	ItemWheat: true, ItemBread: true, ItemFish: true, ItemPlant: true, ItemMeat: true,
}

// resourceForItem maps a carried item to the stockpile resource it
// dropoffs into, if any.
func resourceForItem(i Item) (Resource, bool) {
	if foodItems[i] {
		return ResourceFood, true
	}
	switch i {
	case ItemWood:
		return ResourceWood, true
	case ItemStone:
		return ResourceStone, true
	case ItemGold:
		return ResourceGold, true
	case ItemWater:
		return ResourceWater, true
	default:
		return 0, false
	}
}

// Inventory is a sparse item-key → count map with a global per-entity cap.
// Hot fixed-enum items live in a small array; thing-kind items spill into a
// side map, per spec.md §9's "Inventory map" design note.
type Inventory struct {
	counts     [int(ItemRelic) + 2]int // indexed by Item; size covers all fixed enum values
	thingCount map[Kind]int
	cap        int
}

// NewInventory creates an empty inventory with the given per-entity cap.
func NewInventory(cap int) *Inventory {
	return &Inventory{cap: cap}
}

// Total returns the sum of all carried item counts.
func (inv *Inventory) Total() int {
	total := 0
	for _, c := range inv.counts {
		total += c
	}
	for _, c := range inv.thingCount {
		total += c
	}
	return total
}

// Count returns how many of the given key are carried.
func (inv *Inventory) Count(k ItemKey) int {
	if k.ThingKind != KindNone {
		return inv.thingCount[k.ThingKind]
	}
	return inv.counts[k.Item]
}

// Add attempts to add n units of key k, capped by the inventory's own
// capacity (set by NewInventory). Returns the quantity actually added.
func (inv *Inventory) Add(k ItemKey, n int) int {
	if n <= 0 {
		return 0
	}
	room := inv.cap - inv.Total()
	if room <= 0 {
		return 0
	}
	add := n
	if add > room {
		add = room
	}
	if k.ThingKind != KindNone {
		if inv.thingCount == nil {
			inv.thingCount = make(map[Kind]int)
		}
		inv.thingCount[k.ThingKind] += add
	} else {
		inv.counts[k.Item] += add
	}
	return add
}

// Remove attempts to remove n units of key k. Returns the quantity actually
// removed (never more than was present).
func (inv *Inventory) Remove(k ItemKey, n int) int {
	if n <= 0 {
		return 0
	}
	have := inv.Count(k)
	remove := n
	if remove > have {
		remove = have
	}
	if k.ThingKind != KindNone {
		inv.thingCount[k.ThingKind] -= remove
		if inv.thingCount[k.ThingKind] <= 0 {
			delete(inv.thingCount, k.ThingKind)
		}
	} else {
		inv.counts[k.Item] -= remove
	}
	return remove
}

// IsEmpty reports whether the inventory carries nothing.
func (inv *Inventory) IsEmpty() bool { return inv.Total() == 0 }

// Clear empties the inventory.
func (inv *Inventory) Clear() {
	for i := range inv.counts {
		inv.counts[i] = 0
	}
	inv.thingCount = nil
}

// Snapshot returns every nonzero (key, count) pair, for dropoff/death/debug use.
func (inv *Inventory) Snapshot() map[ItemKey]int {
	out := make(map[ItemKey]int)
	for item, c := range inv.counts {
		if c > 0 {
			out[Key(Item(item))] = c
		}
	}
	for kind, c := range inv.thingCount {
		if c > 0 {
			out[ThingKey(kind)] = c
		}
	}
	return out
}

// Stockpile is a per-team resource ledger with atomic multi-line withdraw
// semantics (spec.md §3: "withdraw fails atomically if any line cannot be
// paid").
type Stockpile struct {
	counts [int(ResourceWater) + 1]int
}

// NewStockpile creates an empty stockpile.
func NewStockpile() *Stockpile { return &Stockpile{} }

// Get returns the current count of a resource.
func (s *Stockpile) Get(r Resource) int { return s.counts[r] }

// Deposit adds to a resource bucket; dropoff never fails.
func (s *Stockpile) Deposit(r Resource, n int) {
	if n > 0 {
		s.counts[r] += n
	}
}

// CanAfford reports whether every line in cost can be paid.
func (s *Stockpile) CanAfford(cost map[Resource]int) bool {
	for r, n := range cost {
		if s.counts[r] < n {
			return false
		}
	}
	return true
}

// Withdraw pays every line in cost, atomically: if any line is short, no
// resource is deducted and false is returned.
func (s *Stockpile) Withdraw(cost map[Resource]int) bool {
	if !s.CanAfford(cost) {
		return false
	}
	for r, n := range cost {
		s.counts[r] -= n
	}
	return true
}
