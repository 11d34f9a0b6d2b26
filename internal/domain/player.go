package domain

import "github.com/google/uuid"

// PlayerState is the tagged-variant state of a Player within a hand.
type PlayerState string

const (
	Active   PlayerState = "Active"
	Standing PlayerState = "Standing"
	Busted   PlayerState = "Busted"
)

// Terminal reports whether the state is one a turn cannot return from.
func (s PlayerState) Terminal() bool {
	return s == Standing || s == Busted
}

// Player is identified by email within a Game. CardsHistory is the ordered
// sequence of drawn cards; AceValues maps an Ace card's id to its current
// revaluation (true = counts 11, false = counts 1); Points is the derived
// score recomputed after every draw and every Ace revaluation.
type Player struct {
	Email        string             `json:"email"`
	CardsHistory []Card             `json:"cards_history"`
	AceValues    map[uuid.UUID]bool `json:"ace_values"`
	Points       int                `json:"points"`
	State        PlayerState        `json:"state"`
}

// NewPlayer creates a fresh Active player with an empty hand.
func NewPlayer(email string) *Player {
	return &Player{
		Email:        email,
		CardsHistory: []Card{},
		AceValues:    make(map[uuid.UUID]bool),
		State:        Active,
	}
}

// Busted reports whether the player's state is the (permanent) Busted state.
func (p *Player) Busted() bool {
	return p.State == Busted
}

// addCard appends a card to the history, defaults any Ace to counting 11,
// and recomputes points. It does not itself enforce turn/phase rules —
// callers (Game) are responsible for those.
func (p *Player) addCard(c Card) {
	p.CardsHistory = append(p.CardsHistory, c)
	if c.IsAce() {
		p.AceValues[c.ID] = true
	}
	p.recomputePoints()
}

// setAceValue revalues a single Ace already in the player's history. It is
// the caller's (Game's) job to enforce the revaluation contract's
// game/player-state preconditions — this only enforces the card-level ones:
// the card must belong to this player's history and must be an Ace.
func (p *Player) setAceValue(cardID uuid.UUID, asEleven bool) error {
	found := false
	for _, c := range p.CardsHistory {
		if c.ID == cardID {
			if !c.IsAce() {
				return NewError(KindInvalidAce, "card is not an Ace")
			}
			found = true
			break
		}
	}
	if !found {
		return NewError(KindInvalidAce, "card is not in this player's history")
	}
	p.AceValues[cardID] = asEleven
	p.recomputePoints()
	return nil
}

// recomputePoints sums base values for non-Ace cards plus 11/1 per each
// Ace's current flag, then freezes the player into Busted if the total
// exceeds 21. Once Busted, the state never reverts to Active.
func (p *Player) recomputePoints() {
	total := 0
	for _, c := range p.CardsHistory {
		if c.IsAce() {
			if p.AceValues[c.ID] {
				total += 11
			} else {
				total += 1
			}
			continue
		}
		total += c.BaseValue
	}
	p.Points = total
	if p.Points > 21 {
		p.State = Busted
	}
}
