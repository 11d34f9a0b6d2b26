package service

import (
	"github.com/google/uuid"

	"github.com/swarm-blackjack/tablehouse/internal/domain"
)

// PasswordHasher is implemented by internal/auth. Kept as an interface here
// so the service layer depends on a narrow contract, not auth's KDF choice.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// UserService registers and authenticates Users. It never touches bearer
// tokens — that is internal/auth's and the HTTP layer's concern.
type UserService struct {
	users  *UserRegistry
	hasher PasswordHasher
}

func NewUserService(users *UserRegistry, hasher PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Register hashes password and creates a User. Fails with
// UserAlreadyExists if email is taken.
func (s *UserService) Register(email, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "password hashing failed", err)
	}
	return s.users.Create(email, hash)
}

// Authenticate verifies email/password and returns the matching User.
// Fails with InvalidCredentials on any mismatch — deliberately the same
// error for "no such user" and "wrong password" to avoid leaking which one
// it was.
func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	u, ok := s.users.ByEmail(email)
	if !ok {
		return nil, domain.NewError(domain.KindInvalidCredentials, "invalid email or password")
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, domain.NewError(domain.KindInvalidCredentials, "invalid email or password")
	}
	return u, nil
}

// ByID looks up a user by id, for the HTTP layer to resolve a token's
// subject into a display identity when needed.
func (s *UserService) ByID(id uuid.UUID) (*domain.User, bool) {
	return s.users.ByID(id)
}
