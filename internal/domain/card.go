package domain

import "github.com/google/uuid"

// Suit is one of the four standard card suits.
type Suit string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

var AllSuits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Name is a card rank: A, 2..10, J, Q, K.
type Name string

const (
	Ace   Name = "A"
	Two   Name = "2"
	Three Name = "3"
	Four  Name = "4"
	Five  Name = "5"
	Six   Name = "6"
	Seven Name = "7"
	Eight Name = "8"
	Nine  Name = "9"
	Ten   Name = "10"
	Jack  Name = "J"
	Queen Name = "Q"
	King  Name = "K"
)

var AllNames = []Name{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// baseValues maps a rank to its base point value. Ace base is 1 — its
// re-scored value (1 or 11) is applied by Player.recomputePoints, never here.
var baseValues = map[Name]int{
	Ace: 1, Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8, Nine: 9,
	Ten: 10, Jack: 10, Queen: 10, King: 10,
}

// Card is an immutable playing card with a unique id assigned at deck
// construction.
type Card struct {
	ID        uuid.UUID `json:"id"`
	Name      Name      `json:"name"`
	Suit      Suit      `json:"suit"`
	BaseValue int       `json:"base_value"`
}

func newCard(name Name, suit Suit) Card {
	return Card{
		ID:        uuid.New(),
		Name:      name,
		Suit:      suit,
		BaseValue: baseValues[name],
	}
}

// IsAce reports whether the card is an Ace — the only rank whose scoring
// contribution is re-valuable.
func (c Card) IsAce() bool {
	return c.Name == Ace
}
