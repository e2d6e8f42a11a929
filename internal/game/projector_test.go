package game

import (
	"fmt"
	"reflect"
	"testing"
)

func TestProjectMasksOpponentHandOnly(t *testing.T) {
	s := playingState(t)
	s.Battlefield[SidePlayer1] = []Card{card("bf1", 30, 10, 100)}
	s.Battlefield[SidePlayer2] = []Card{card("bf2", 25, 15, 90)}
	hands := Hands{
		SidePlayer1: {card("h1", 30, 10, 100), card("h2", 20, 20, 80)},
		SidePlayer2: {card("h3", 40, 5, 70)},
	}

	v := Project(s, hands, SidePlayer1)

	if got := v.Hands[SidePlayer1]; !reflect.DeepEqual(got, hands[SidePlayer1]) {
		t.Fatalf("own hand was altered: %+v", got)
	}
	for i, c := range v.Hands[SidePlayer2] {
		if c.Attack != 0 || c.Defense != 0 || c.HP != 0 || c.MaxHP != 0 {
			t.Fatalf("opponent hand card %d leaked stats: %+v", i, c)
		}
		if c.Name != HiddenCardName || c.ImageURL != HiddenCardImage {
			t.Fatalf("opponent hand card %d not marked hidden: %+v", i, c)
		}
		if want := fmt.Sprintf("hidden-player2-%d", i); c.InstanceID != want {
			t.Fatalf("placeholder id = %s, want %s", c.InstanceID, want)
		}
	}

	// The battlefield is public from both perspectives.
	if v.Battlefield[SidePlayer2][0].Attack != 25 {
		t.Fatalf("opponent battlefield card was masked: %+v", v.Battlefield[SidePlayer2][0])
	}

	v2 := Project(s, hands, SidePlayer2)
	if v2.Hands[SidePlayer2][0].InstanceID != "h3" {
		t.Fatalf("player2 does not see own hand: %+v", v2.Hands[SidePlayer2])
	}
	if v2.Hands[SidePlayer1][0].Name != HiddenCardName {
		t.Fatalf("player1 hand visible to player2: %+v", v2.Hands[SidePlayer1])
	}
}

func TestProjectDeterministic(t *testing.T) {
	s := playingState(t)
	hands := Hands{
		SidePlayer1: {card("h1", 30, 10, 100)},
		SidePlayer2: {card("h2", 40, 5, 70), card("h3", 15, 25, 110)},
	}
	a := Project(s, hands, SidePlayer1)
	b := Project(s, hands, SidePlayer1)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("projection is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestProjectTurnRelativeToViewer(t *testing.T) {
	s := playingState(t) // player1 opens
	hands := Hands{SidePlayer1: {}, SidePlayer2: {}}

	v1 := Project(s, hands, SidePlayer1)
	v2 := Project(s, hands, SidePlayer2)
	if !v1.YourTurn || v2.YourTurn {
		t.Fatalf("yourTurn flags wrong: p1=%v p2=%v", v1.YourTurn, v2.YourTurn)
	}
	if v1.ViewerSide != SidePlayer1 || v2.ViewerSide != SidePlayer2 {
		t.Fatalf("viewer sides wrong: %s %s", v1.ViewerSide, v2.ViewerSide)
	}
	if v1.CurrentTurn != SidePlayer1 || v2.CurrentTurn != SidePlayer1 {
		t.Fatalf("currentTurn should stay canonical")
	}
}
