package catalog

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"monster-arena/internal/game"
)

// Template is an immutable monster definition.
type Template struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Attack   int    `json:"attack"`
	Defense  int    `json:"defense"`
	MaxHP    int    `json:"maxHp"`
	ImageURL string `json:"imageUrl"`
}

// Catalog deals card instances from the fixed template list. Safe for
// concurrent use; the rand source is guarded.
type Catalog struct {
	mu        sync.Mutex
	rng       *rand.Rand
	templates []Template
}

func New(seed int64) *Catalog {
	return &Catalog{
		rng:       rand.New(rand.NewSource(seed)),
		templates: templates,
	}
}

// Templates returns the ordered catalog.
func (c *Catalog) Templates() []Template {
	return c.templates
}

func (c *Catalog) Size() int {
	return len(c.templates)
}

// DealHand draws n distinct templates via a uniform random permutation of
// the full catalog and instantiates each at full hp.
func (c *Catalog) DealHand(n int) ([]game.Card, error) {
	if n > len(c.templates) {
		return nil, fmt.Errorf("cannot deal %d cards from a catalog of %d", n, len(c.templates))
	}
	c.mu.Lock()
	idx := c.rng.Perm(len(c.templates))
	c.mu.Unlock()

	hand := make([]game.Card, 0, n)
	for _, i := range idx[:n] {
		hand = append(hand, instantiate(c.templates[i]))
	}
	return hand, nil
}

// Draw deals a single uniformly chosen card, used for hand top-ups.
func (c *Catalog) Draw() game.Card {
	c.mu.Lock()
	i := c.rng.Intn(len(c.templates))
	c.mu.Unlock()
	return instantiate(c.templates[i])
}

func instantiate(t Template) game.Card {
	return game.Card{
		InstanceID: fmt.Sprintf("%d-%s", t.ID, uuid.NewString()[:8]),
		TemplateID: t.ID,
		Name:       t.Name,
		Attack:     t.Attack,
		Defense:    t.Defense,
		HP:         t.MaxHP,
		MaxHP:      t.MaxHP,
		ImageURL:   t.ImageURL,
	}
}
