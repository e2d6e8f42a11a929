package game

import "fmt"

// PlayCard moves the named card from the acting side's hand onto its
// battlefield slot and passes the turn. A rejected play mutates nothing.
func (s *State) PlayCard(side Side, cardID string, hands Hands) (Card, error) {
	switch s.Status {
	case StatusWaiting:
		return Card{}, ErrGameNotStarted
	case StatusFinished:
		return Card{}, ErrGameFinished
	}
	if s.CurrentTurn != side {
		return Card{}, ErrNotYourTurn
	}
	if len(s.Battlefield[side]) > 0 {
		return Card{}, ErrSlotOccupied
	}

	hand := hands[side]
	idx := -1
	for i, c := range hand {
		if c.InstanceID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Card{}, fmt.Errorf("%w: %s", ErrCardNotInHand, cardID)
	}

	card := hand[idx]
	hands[side] = append(hand[:idx], hand[idx+1:]...)
	s.Battlefield[side] = []Card{card}
	s.CurrentTurn = side.Opponent()
	s.appendLog(fmt.Sprintf("%s played %s", side, card.Name), "play")
	return card, nil
}

// CombatResult reports one resolved tick.
type CombatResult struct {
	Damage      map[Side]int  `json:"damage"` // damage dealt BY each side
	RoundWinner Side          `json:"roundWinner"`
	Killed      map[Side]bool `json:"killed"` // keyed by the dead card's owner
	EnergyLoss  map[Side]int  `json:"energyLoss"`
	Finished    bool          `json:"finished"`
}

// ResolveCombat runs one simultaneous combat round. It returns false when
// the tick is a no-op: the game is not in play or either battlefield slot
// is empty. All mutations land before the caller broadcasts anything.
func (s *State) ResolveCombat(r Rules) (*CombatResult, bool) {
	if s.Status != StatusPlaying {
		return nil, false
	}
	if len(s.Battlefield[SidePlayer1]) == 0 || len(s.Battlefield[SidePlayer2]) == 0 {
		return nil, false
	}

	c1 := &s.Battlefield[SidePlayer1][0]
	c2 := &s.Battlefield[SidePlayer2][0]

	// Both attacks read pre-tick stats, so order does not matter.
	dmg1 := damage(c1.Attack, c2.Defense, r)
	dmg2 := damage(c2.Attack, c1.Defense, r)
	c2.HP -= dmg1
	c1.HP -= dmg2

	winner := roundWinner(dmg1, dmg2, c1, c2)
	loser := winner.Opponent()

	res := &CombatResult{
		Damage:      map[Side]int{SidePlayer1: dmg1, SidePlayer2: dmg2},
		RoundWinner: winner,
		Killed:      map[Side]bool{},
		EnergyLoss:  map[Side]int{},
	}

	winnerLoss := max(r.DamageFloor, res.Damage[winner]*r.EnergyLossPct/100)
	if winnerLoss > s.Energy[winner] {
		winnerLoss = s.Energy[winner]
	}
	loserLoss := 2 * winnerLoss
	if loserLoss > s.Energy[loser] {
		loserLoss = s.Energy[loser]
	}
	s.Energy[winner] -= winnerLoss
	s.Energy[loser] -= loserLoss
	res.EnergyLoss[winner] = winnerLoss
	res.EnergyLoss[loser] = loserLoss

	s.appendLog(fmt.Sprintf("%s hit for %d, %s hit for %d", c1.Name, dmg1, c2.Name, dmg2), "combat")

	for _, side := range []Side{SidePlayer1, SidePlayer2} {
		card := s.Battlefield[side][0]
		if card.HP <= 0 {
			res.Killed[side] = true
			s.KillCount[side.Opponent()]++
			s.Battlefield[side] = []Card{}
			s.appendLog(fmt.Sprintf("%s was destroyed", card.Name), "kill")
		}
	}

	// The round loser starts the next turn.
	s.CurrentTurn = loser

	if s.Energy[SidePlayer1] <= 0 || s.Energy[SidePlayer2] <= 0 {
		s.Status = StatusFinished
		res.Finished = true
		s.appendLog("Battle finished", "system")
	}
	return res, true
}

func damage(attack, defense int, r Rules) int {
	d := attack - defense*r.DefenseFactorPct/100
	if d < r.DamageFloor {
		d = r.DamageFloor
	}
	return d
}

// roundWinner picks the side that dealt more damage, falling back to the
// higher post-damage hp ratio. A full tie goes to player1.
func roundWinner(dmg1, dmg2 int, c1, c2 *Card) Side {
	if dmg1 > dmg2 {
		return SidePlayer1
	}
	if dmg2 > dmg1 {
		return SidePlayer2
	}
	// Compare hp/maxHp without floating point: cross-multiply.
	if c1.HP*c2.MaxHP >= c2.HP*c1.MaxHP {
		return SidePlayer1
	}
	return SidePlayer2
}

// Winner reports the overall winner of a finished game: the side whose
// energy is still positive. If both dropped to zero in the same tick, the
// side with more energy left wins; an exact tie goes to player1.
func (s *State) Winner() Side {
	if s.Energy[SidePlayer1] > 0 && s.Energy[SidePlayer2] <= 0 {
		return SidePlayer1
	}
	if s.Energy[SidePlayer2] > 0 && s.Energy[SidePlayer1] <= 0 {
		return SidePlayer2
	}
	if s.Energy[SidePlayer2] > s.Energy[SidePlayer1] {
		return SidePlayer2
	}
	return SidePlayer1
}
