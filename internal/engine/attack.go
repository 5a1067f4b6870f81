package engine

import (
	"sort"

	"chesstactics/internal/tactics"
)

type attackCandidate struct {
	enemy  *tactics.Unit
	target *tactics.Unit
	damage int
	score  int
}

// attackDamage: bosses always finish their target.
func attackDamage(en, p *tactics.Unit) int {
	if en.IsBoss {
		return p.Health
	}
	return tactics.Damage(en.Attack, p.Defense)
}

func (e *Engine) scoreAttack(en, p *tactics.Unit) int {
	dmg := attackDamage(en, p)
	score := e.params.HitBase - p.Health
	if p.Health <= dmg {
		score = e.params.KillBase - p.Health
	}
	if en.AssignedTarget == p.ID {
		score += e.params.AssignedBonus
	}
	return score
}

func (e *Engine) attackCandidates(g *tactics.Game, players []*tactics.Unit) []attackCandidate {
	var out []attackCandidate
	for _, en := range g.LiveUnits(tactics.Enemy) {
		if en.HasActed || g.EnemyAP < en.AttackCost() {
			continue
		}
		for _, p := range players {
			if !p.IsAlive() || !g.CanStrike(en, p.Pos) {
				continue
			}
			out = append(out, attackCandidate{
				enemy:  en,
				target: p,
				damage: attackDamage(en, p),
				score:  e.scoreAttack(en, p),
			})
		}
	}
	e.count(len(out))
	return out
}

// bestAttack picks the globally highest-scoring (enemy, target) pair;
// on ties the first pair in roster order wins.
func (e *Engine) bestAttack(g *tactics.Game, players []*tactics.Unit) (tactics.EnemyAction, bool) {
	cands := e.attackCandidates(g, players)
	if len(cands) == 0 {
		return tactics.EnemyAction{}, false
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	c := cands[0]
	return tactics.EnemyAction{
		Kind:   tactics.ActionAttack,
		Actor:  c.enemy.ID,
		Target: c.target.ID,
		Dest:   c.target.Pos,
		Cost:   c.enemy.AttackCost(),
		Damage: c.damage,
		Score:  c.score,
	}, true
}
