package game

// meleeDamageRange reaches one tile in the facing direction.
const meleeDamageRange = 1

// spearWedgeDepth is how many tiles deep a spear thrust reaches (spec.md §4.6).
const spearWedgeDepth = 3

// Attack resolves an Attack(dir) action for attacker, dispatching by unit
// class per spec.md §4.6: Monk heals instead of damaging, ranged classes
// scan to their base range, spear carriers hit a 3-deep wedge, everyone
// else is a single adjacent melee strike. Returns whether the attack did
// anything and, if not, why (for Stats bookkeeping).
func (w *World) Attack(attacker *Thing, dir Direction) (bool, NoopReason) {
	if dir == DirNone {
		return false, NoopInvalid
	}
	attacker.Orientation = dir

	switch {
	case attacker.Kind == KindAgent && attacker.UnitClass == UnitMonk:
		return w.monkHeal(attacker, dir)
	case attacker.Kind == KindAgent && attacker.UnitClass.IsRangedClass():
		return w.rangedAttack(attacker, dir)
	case attacker.Kind == KindAgent && attacker.Inventory != nil && attacker.Inventory.Count(Key(ItemSpear)) > 0:
		return w.spearAttack(attacker, dir)
	default:
		return w.meleeAttack(attacker, dir)
	}
}

func (w *World) monkHeal(attacker *Thing, dir Direction) (bool, NoopReason) {
	target := w.Grid.Blocking(attacker.Pos.Add(dir.Delta()))
	if target == nil || target.TeamID != attacker.TeamID || target.HP >= target.MaxHP {
		return false, NoopInfeasible
	}
	target.HP += 3
	if target.HP > target.MaxHP {
		target.HP = target.MaxHP
	}
	w.Grid.Tile(target.Pos).ApplyTint(TintHeal, 4)
	w.Obs.UpdateCell(target.Pos, w.Store)
	return true, NoopNone
}

func (w *World) rangedAttack(attacker *Thing, dir Direction) (bool, NoopReason) {
	rng := attacker.UnitClass.BaseRange()
	cur := attacker.Pos
	for i := 1; i <= rng; i++ {
		cur = cur.Add(dir.Delta())
		if !w.Grid.InBounds(cur) {
			break
		}
		target := w.Grid.Blocking(cur)
		if target == nil {
			continue
		}
		if target.TeamID == attacker.TeamID {
			return false, NoopInfeasible
		}
		w.strike(attacker, target)
		return true, NoopNone
	}
	return false, NoopInfeasible
}

func (w *World) spearAttack(attacker *Thing, dir Direction) (bool, NoopReason) {
	hitAny := false
	d := dir.Delta()
	side := Pos{X: -d.Y, Y: d.X}
	cur := attacker.Pos
	for i := 1; i <= spearWedgeDepth; i++ {
		cur = cur.Add(d)
		// Each depth covers the forward tile and the two tiles beside it.
		for _, p := range [3]Pos{cur, cur.Add(side), cur.Add(Pos{X: -side.X, Y: -side.Y})} {
			target := w.Grid.Blocking(p)
			if target == nil || target.TeamID == attacker.TeamID {
				continue
			}
			w.strike(attacker, target)
			hitAny = true
		}
	}
	if !hitAny {
		return false, NoopInfeasible
	}
	return true, NoopNone
}

func (w *World) meleeAttack(attacker *Thing, dir Direction) (bool, NoopReason) {
	target := w.Grid.Blocking(attacker.Pos.Add(dir.Delta()))
	if target == nil || target.TeamID == attacker.TeamID {
		return false, NoopInfeasible
	}
	w.strike(attacker, target)
	return true, NoopNone
}

// strike applies the full damage pipeline from attacker to target and
// handles death, per spec.md §4.6: base -> blacksmith tier -> counter-class
// bonus -> tank-aura halving -> armor tier -> inventory armor absorption -> HP.
func (w *World) strike(attacker, target *Thing) {
	pos := target.Pos
	dmg := w.computeDamage(attacker, target)
	w.Stats.ActionAttack++
	w.Grid.Tile(pos).ApplyTint(TintAttack, 3)
	w.applyDamage(target, dmg)
	w.Obs.UpdateCell(pos, w.Store)
}

func (w *World) computeDamage(attacker, target *Thing) int {
	dmg := attacker.AttackDamage

	if attacker.Kind == KindAgent {
		if team, ok := w.Teams[attacker.TeamID]; ok {
			dmg += team.blacksmithDamageBonus(attacker.UnitClass.Category())
		}
		dmg += BonusAgainst(attacker.UnitClass, target.UnitClass)
	}

	if target.Kind == KindAgent && w.hasFriendlyTankAuraNear(target) {
		dmg /= 2
	}

	if target.Kind == KindAgent {
		if team, ok := w.Teams[target.TeamID]; ok {
			dmg -= team.armorReduction()
		}
		if target.Inventory != nil && target.Inventory.Count(Key(ItemArmor)) > 0 {
			dmg -= 2
		}
	}

	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// hasFriendlyTankAuraNear reports whether a tank-class ally of target's
// team stands within its aura radius of target (spec.md §4.6).
func (w *World) hasFriendlyTankAuraNear(target *Thing) bool {
	for _, ally := range w.Store.ByKind(KindAgent) {
		if ally == target || ally.TeamID != target.TeamID || !ally.IsValidPos() {
			continue
		}
		radius := ally.UnitClass.TankAuraRadius()
		if radius == 0 {
			continue
		}
		if ally.Pos.Chebyshev(target.Pos) <= radius {
			return true
		}
	}
	return false
}

// applyDamage subtracts dmg from target's HP (or Hearts, for doors/altars
// which track lives separately from structural HP per spec.md §4.6) and
// triggers death handling once it reaches zero.
func (w *World) applyDamage(target *Thing, dmg int) {
	if dmg <= 0 {
		return
	}
	switch target.Kind {
	case KindDoor, KindAltar:
		if target.Hearts > 0 {
			target.Hearts--
			return
		}
	}
	target.HP -= dmg
	if target.HP > 0 {
		return
	}
	target.HP = 0
	if target.Kind == KindAgent {
		w.killAgent(target)
		return
	}
	w.destroyThing(target)
}

// killAgent handles agent death per spec.md §3/§4.2: the agent's position
// moves to the off-grid sentinel (it never leaves the agents[] array), its
// last tile is cleared and re-observed, a corpse is dropped, and the
// termination flag is set for the external interface to report this step.
func (w *World) killAgent(agent *Thing) {
	mustHold(agent.Kind == KindAgent, "World.killAgent", "target is not an agent")
	lastPos := agent.Pos
	w.Grid.ClearBlocking(agent, lastPos)
	agent.Pos = Sentinel
	w.Store.setTerminated(agent.AgentID, true)
	w.Stats.AgentsKilled++

	if agent.Inventory != nil {
		agent.Inventory.Clear()
	}

	corpse := w.Store.Recycle(KindCorpse)
	if corpse == nil {
		corpse = &Thing{Kind: KindCorpse}
		w.Store.Add(corpse)
	}
	corpse.HP = 1
	corpse.MaxHP = 1
	corpse.TeamID = agent.TeamID
	corpse.Cooldown = corpseDecayTicks
	w.Grid.PlaceBackground(corpse, lastPos)

	w.Grid.Tile(lastPos).ApplyTint(TintDeath, 5)
	w.Obs.UpdateCell(lastPos, w.Store)
}

// corpseDecayTicks is how long a corpse lingers before decaying to a skeleton.
const corpseDecayTicks = 50

// DecayCorpses advances corpse decay countdowns, turning expired corpses
// into skeletons (spec.md §4.9's background-decoration lifecycle).
func (w *World) DecayCorpses() {
	for _, c := range append([]*Thing(nil), w.Store.ByKind(KindCorpse)...) {
		c.Cooldown--
		if c.Cooldown <= 0 {
			pos := c.Pos
			w.Grid.ClearBackground(c, pos)
			w.Store.Remove(c)
			skeleton := &Thing{Kind: KindSkeleton, HP: 1, MaxHP: 1}
			w.Store.Add(skeleton)
			w.Grid.PlaceBackground(skeleton, pos)
			w.Obs.UpdateCell(pos, w.Store)
		}
	}
}

// destroyThing removes a non-agent entity once its HP reaches zero.
func (w *World) destroyThing(t *Thing) {
	pos := t.Pos
	w.Grid.Remove(t)
	w.Store.Remove(t)
	w.Obs.UpdateCell(pos, w.Store)
}
