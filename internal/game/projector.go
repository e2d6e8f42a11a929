package game

import "fmt"

const (
	HiddenCardName  = "Hidden Card"
	HiddenCardImage = "/cards/hidden.png"
)

// View is what one player is allowed to see. The opponent's hand appears
// only as placeholders.
type View struct {
	ViewerSide  Side            `json:"viewerSide"`
	YourTurn    bool            `json:"yourTurn"`
	CurrentTurn Side            `json:"currentTurn"`
	Status      Status          `json:"gameStatus"`
	Battlefield map[Side][]Card `json:"battlefield"`
	Hands       map[Side][]Card `json:"hands"`
	CombatLog   []LogEntry      `json:"combatLog"`
	KillCount   map[Side]int    `json:"killCount"`
	Energy      map[Side]int    `json:"energy"`
}

// Project derives the viewer's state from the canonical one. Deterministic:
// same inputs, same view. The battlefield is public on both sides; only the
// opponent's hand is replaced by placeholders whose ids are stable per slot
// so clients keep element identity across updates.
func Project(s *State, hands Hands, viewer Side) View {
	opp := viewer.Opponent()
	v := View{
		ViewerSide:  viewer,
		YourTurn:    s.CurrentTurn == viewer,
		CurrentTurn: s.CurrentTurn,
		Status:      s.Status,
		Battlefield: map[Side][]Card{
			SidePlayer1: copyCards(s.Battlefield[SidePlayer1]),
			SidePlayer2: copyCards(s.Battlefield[SidePlayer2]),
		},
		Hands: map[Side][]Card{
			viewer: copyCards(hands[viewer]),
			opp:    maskHand(hands[opp], opp),
		},
		CombatLog: s.CombatLog,
		KillCount: map[Side]int{
			SidePlayer1: s.KillCount[SidePlayer1],
			SidePlayer2: s.KillCount[SidePlayer2],
		},
		Energy: map[Side]int{
			SidePlayer1: s.Energy[SidePlayer1],
			SidePlayer2: s.Energy[SidePlayer2],
		},
	}
	return v
}

func maskHand(hand []Card, owner Side) []Card {
	masked := make([]Card, len(hand))
	for i := range hand {
		masked[i] = Card{
			InstanceID: fmt.Sprintf("hidden-%s-%d", owner, i),
			Name:       HiddenCardName,
			ImageURL:   HiddenCardImage,
		}
	}
	return masked
}

func copyCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
