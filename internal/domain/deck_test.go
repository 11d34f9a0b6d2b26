package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck()
	require.Equal(t, 52, d.Remaining())

	seen := make(map[string]bool)
	countByName := make(map[Name]int)
	for _, c := range d.Cards() {
		assert.False(t, seen[c.ID.String()], "card id must be unique")
		seen[c.ID.String()] = true
		countByName[c.Name]++
	}
	for _, n := range AllNames {
		assert.Equal(t, 4, countByName[n], "expected four cards of name %s", n)
	}
}

func TestDeckDrawRemovesCard(t *testing.T) {
	d := NewDeck()
	card, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, 51, d.Remaining())
	for _, c := range d.Cards() {
		assert.NotEqual(t, card.ID, c.ID)
	}
}

func TestDeckExhaustion(t *testing.T) {
	d := NewDeck()
	for i := 0; i < 52; i++ {
		_, err := d.Draw()
		require.NoError(t, err)
	}
	_, err := d.Draw()
	require.Error(t, err)
	assert.Equal(t, KindDeckEmpty, KindOf(err))
}

func TestCardJSONRoundTrip(t *testing.T) {
	d := NewDeck()
	card, err := d.Draw()
	require.NoError(t, err)

	data, err := json.Marshal(card)
	require.NoError(t, err)

	var back Card
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, card, back)
}
