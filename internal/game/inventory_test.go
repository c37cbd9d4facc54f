package game

import "testing"

func TestInventory_AddCapsAtMax(t *testing.T) {
	inv := NewInventory(5)
	added := inv.Add(Key(ItemWood), 3)
	if added != 3 {
		t.Fatalf("expected to add 3, got %d", added)
	}
	added = inv.Add(Key(ItemStone), 10)
	if added != 2 {
		t.Fatalf("expected add to cap at remaining room (2), got %d", added)
	}
	if inv.Total() != 5 {
		t.Errorf("expected total capped at 5, got %d", inv.Total())
	}
}

func TestInventory_RemoveNeverGoesNegative(t *testing.T) {
	inv := NewInventory(5)
	inv.Add(Key(ItemGold), 2)
	removed := inv.Remove(Key(ItemGold), 10)
	if removed != 2 {
		t.Errorf("expected Remove to cap at what's present (2), got %d", removed)
	}
	if inv.Count(Key(ItemGold)) != 0 {
		t.Error("expected count to reach exactly 0")
	}
}

func TestInventory_ThingKindSeparateFromItem(t *testing.T) {
	inv := NewInventory(5)
	inv.Add(ThingKey(KindLantern), 1)
	inv.Add(Key(ItemGold), 1)
	if inv.Count(ThingKey(KindLantern)) != 1 {
		t.Error("expected thing-kind key to be tracked independently")
	}
	if inv.Count(Key(ItemGold)) != 1 {
		t.Error("expected item key to be tracked independently")
	}
	if inv.Total() != 2 {
		t.Errorf("expected total 2, got %d", inv.Total())
	}
}

func TestInventory_Snapshot(t *testing.T) {
	inv := NewInventory(10)
	inv.Add(Key(ItemWood), 2)
	inv.Add(ThingKey(KindBarrel), 1)
	snap := inv.Snapshot()
	if snap[Key(ItemWood)] != 2 || snap[ThingKey(KindBarrel)] != 1 {
		t.Errorf("unexpected snapshot contents: %+v", snap)
	}
}

func TestInventory_Clear(t *testing.T) {
	inv := NewInventory(5)
	inv.Add(Key(ItemWood), 3)
	inv.Clear()
	if !inv.IsEmpty() {
		t.Error("expected inventory to be empty after Clear")
	}
}

func TestStockpile_WithdrawIsAtomic(t *testing.T) {
	s := NewStockpile()
	s.Deposit(ResourceWood, 10)
	s.Deposit(ResourceGold, 1)

	ok := s.Withdraw(map[Resource]int{ResourceWood: 5, ResourceGold: 5})
	if ok {
		t.Fatal("expected withdraw to fail atomically when any line is short")
	}
	if s.Get(ResourceWood) != 10 {
		t.Error("expected wood to be untouched when the gold line failed")
	}

	ok = s.Withdraw(map[Resource]int{ResourceWood: 5})
	if !ok || s.Get(ResourceWood) != 5 {
		t.Errorf("expected a fully affordable withdraw to succeed, balance=%d", s.Get(ResourceWood))
	}
}
