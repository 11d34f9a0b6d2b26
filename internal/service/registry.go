// Package service hosts the concurrency-safe registries and orchestration
// that compose domain operations into user-facing actions, per §4.6 of the
// design: one mutex-guarded registry per entity kind, never sharded.
package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

// GameRegistry exclusively owns all Games behind a single mutex.
type GameRegistry struct {
	mu    sync.Mutex
	games map[uuid.UUID]*domain.Game
}

func NewGameRegistry() *GameRegistry {
	return &GameRegistry{games: make(map[uuid.UUID]*domain.Game)}
}

// Put registers a newly created game.
func (r *GameRegistry) Put(g *domain.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[g.ID] = g
}

// WithGame resolves id, runs fn while holding the registry lock, and
// returns fn's error (or GameNotFound if id is unknown). No operation
// inside fn may block — all suspension happens at the HTTP layer.
func (r *GameRegistry) WithGame(id uuid.UUID, fn func(*domain.Game) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return domain.NewError(domain.KindGameNotFound, "game not found")
	}
	return fn(g)
}

// View resolves id and runs fn on the live game while holding the registry
// lock, exactly as WithGame does; it exists for callers that only render
// state. No copy is made, so fn must not keep the pointer past its return.
func (r *GameRegistry) View(id uuid.UUID, fn func(*domain.Game) error) error {
	return r.WithGame(id, fn)
}

// ListOpen returns every game still in the Enrolling state.
func (r *GameRegistry) ListOpen() []*domain.Game {
	r.mu.Lock()
	defer r.mu.Unlock()
	open := make([]*domain.Game, 0)
	for _, g := range r.games {
		if !g.Finished && g.CanEnroll() {
			open = append(open, g)
		}
	}
	return open
}

// UserRegistry exclusively owns all Users behind a single mutex, indexed
// by id and by email.
type UserRegistry struct {
	mu        sync.Mutex
	usersByID map[uuid.UUID]*domain.User
	idByEmail map[string]uuid.UUID
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{
		usersByID: make(map[uuid.UUID]*domain.User),
		idByEmail: make(map[string]uuid.UUID),
	}
}

// Create registers a new user, failing with UserAlreadyExists if the email
// is already taken.
func (r *UserRegistry) Create(email, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.idByEmail[email]; exists {
		return nil, domain.NewError(domain.KindUserAlreadyExists, "email already registered")
	}
	u := domain.NewUser(email, passwordHash)
	r.usersByID[u.ID] = u
	r.idByEmail[email] = u.ID
	return u, nil
}

// ByEmail looks up a user by email.
func (r *UserRegistry) ByEmail(email string) (*domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.idByEmail[email]
	if !ok {
		return nil, false
	}
	return r.usersByID[id], true
}

// ByID looks up a user by id.
func (r *UserRegistry) ByID(id uuid.UUID) (*domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.usersByID[id]
	return u, ok
}

// InvitationRegistry exclusively owns all Invitations behind a single
// mutex.
type InvitationRegistry struct {
	mu          sync.Mutex
	invitations map[uuid.UUID]*domain.Invitation
}

func NewInvitationRegistry() *InvitationRegistry {
	return &InvitationRegistry{invitations: make(map[uuid.UUID]*domain.Invitation)}
}

func (r *InvitationRegistry) Put(inv *domain.Invitation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invitations[inv.ID] = inv
}

// WithInvitation resolves id, runs fn while holding the registry lock.
func (r *InvitationRegistry) WithInvitation(id uuid.UUID, fn func(*domain.Invitation) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[id]
	if !ok {
		return domain.NewError(domain.KindInvitationNotFound, "invitation not found")
	}
	return fn(inv)
}

// PendingFor returns pending, non-expired invitations for email, lazily
// expiring any whose deadline has passed as a side effect.
func (r *InvitationRegistry) PendingFor(email string) []*domain.Invitation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Invitation, 0)
	for _, inv := range r.invitations {
		if inv.InviteeEmail != email {
			continue
		}
		inv.SweepExpiry()
		if inv.Status == domain.Pending {
			out = append(out, inv)
		}
	}
	return out
}

// CleanupExpired bulk-sweeps every Pending invitation past its deadline to
// Expired. Intended to be called on a timer (§4.3).
func (r *InvitationRegistry) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, inv := range r.invitations {
		if inv.Status == domain.Pending && inv.ExpiredNow() {
			inv.SweepExpiry()
			count++
		}
	}
	return count
}
