package domain

import (
	"math/rand"
)

// Deck is an ordered, mutable sequence of remaining cards: a standard
// 52-card deck with exactly four cards per name, one per suit, each with a
// unique id. Cards are removed from it as they are drawn.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck builds a fresh, full 52-card deck in suit/name order. Shuffling is
// not required by the spec's draw rule (uniform-random removal), so the
// deck starts in construction order and Draw selects a random remaining
// card each time — equivalent in distribution to a pre-shuffled sequential
// deal, and it keeps the "remaining cards" set trivially inspectable.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range AllSuits {
		for _, name := range AllNames {
			cards = append(cards, newCard(name, suit))
		}
	}
	return &Deck{
		cards: cards,
		rng:   rand.New(rand.NewSource(rand.Int63())),
	}
}

// NewDeckFromCards rebuilds a Deck from an explicit card set — used to
// restore a deck's remaining-cards state after JSON unmarshaling.
func NewDeckFromCards(cards []Card) *Deck {
	cp := make([]Card, len(cards))
	copy(cp, cards)
	return &Deck{
		cards: cp,
		rng:   rand.New(rand.NewSource(rand.Int63())),
	}
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, in no particular order
// significant to gameplay — used for serialization and invariant checks.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Draw removes and returns a uniformly random remaining card. Fails with
// KindDeckEmpty when no cards remain.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, NewError(KindDeckEmpty, "deck is empty")
	}
	i := d.rng.Intn(len(d.cards))
	card := d.cards[i]
	d.cards[i] = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}
