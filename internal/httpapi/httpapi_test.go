package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarm-blackjack/tablehouse/internal/auth"
	"github.com/swarm-blackjack/tablehouse/internal/config"
	"github.com/swarm-blackjack/tablehouse/internal/logging"
	"github.com/swarm-blackjack/tablehouse/internal/service"
)

func newTestServer(requestsPerMinute int) *Server {
	cfg := config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		API:  config.APIConfig{VersionDeprecationMonths: 6},
	}
	return NewServer(cfg, Deps{
		Games:       service.NewGameService(service.NewGameRegistry()),
		Users:       service.NewUserService(service.NewUserRegistry(), auth.NewArgon2Hasher()),
		Invitations: service.NewInvitationService(service.NewInvitationRegistry(), service.NewGameRegistry()),
		Tokens:      auth.NewTokenIssuer("test-secret", time.Hour),
		Limiter:     auth.NewRateLimiter(requestsPerMinute),
		Logger:      logging.New(),
	})
}

// Games and Invitations need to share the same GameRegistry for the
// accept-enrolls-player flow to work across test helpers that build a
// Server with independent services wired below.
func newTestServerWithSharedGames(requestsPerMinute int) *Server {
	games := service.NewGameRegistry()
	cfg := config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		API:  config.APIConfig{VersionDeprecationMonths: 6},
	}
	return NewServer(cfg, Deps{
		Games:       service.NewGameService(games),
		Users:       service.NewUserService(service.NewUserRegistry(), auth.NewArgon2Hasher()),
		Invitations: service.NewInvitationService(service.NewInvitationRegistry(), games),
		Tokens:      auth.NewTokenIssuer("test-secret", time.Hour),
		Limiter:     auth.NewRateLimiter(requestsPerMinute),
		Logger:      logging.New(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, h http.Handler, email string) (string, string) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", registerRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", loginRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Token, resp.UserID.String()
}

func TestHealthEndpointsUnauthenticated(t *testing.T) {
	h := newTestServer(60).Router()
	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedEndpointWithoutBearerIs401(t *testing.T) {
	h := newTestServer(60).Router()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/games", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedEndpointWithExpiredBearerIs401(t *testing.T) {
	srv := newTestServer(60)
	srv.tokens = auth.NewTokenIssuer("test-secret", -time.Hour)
	h := srv.Router()

	token, _ := registerAndLogin(t, h, "expired@x")
	// token was minted with a -1h TTL, so it is already expired.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/games", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	h := newTestServer(60).Router()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", registerRequest{Email: "a@x", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "WEAK_PASSWORD", env.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h := newTestServer(60).Router()
	registerAndLogin(t, h, "a@x")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", loginRequest{Email: "a@x", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateGameAndEnrollNonMemberRejected(t *testing.T) {
	h := newTestServer(60).Router()
	creatorToken, _ := registerAndLogin(t, h, "creator@x")
	strangerToken, _ := registerAndLogin(t, h, "stranger@x")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/games", creatorToken, createGameRequest{EnrollmentTimeoutSeconds: 300})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createGameResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = doJSON(t, h, http.MethodGet, "/api/v1/games/"+created.GameID.String(), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "PLAYER_NOT_IN_GAME", env.Code)
}

func TestHappyTwoPlayerFlow(t *testing.T) {
	h := newTestServer(60).Router()
	aToken, _ := registerAndLogin(t, h, "a@x")
	bToken, _ := registerAndLogin(t, h, "b@x")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/games", aToken, createGameRequest{EnrollmentTimeoutSeconds: 300})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createGameResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	gameID := created.GameID.String()

	// The creator is not auto-enrolled, so a enrolls explicitly.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/enroll", aToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/enroll", bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/close-enrollment", aToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var closed closeEnrollmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&closed))
	assert.Equal(t, []string{"a@x", "b@x"}, closed.TurnOrder)

	// Each draw ends the drawer's turn, so the stands come on the next round.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/draw", aToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/draw", bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/stand", aToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/stand", bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/games/"+gameID+"/results", aToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results resultsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
	if results.Winner == nil {
		assert.Len(t, results.TiedPlayers, 2)
	} else {
		assert.Empty(t, results.TiedPlayers)
	}
}

func TestNotYourTurnRejection(t *testing.T) {
	h := newTestServer(60).Router()
	aToken, _ := registerAndLogin(t, h, "a@x")
	bToken, _ := registerAndLogin(t, h, "b@x")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/games", aToken, createGameRequest{EnrollmentTimeoutSeconds: 300})
	var created createGameResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	gameID := created.GameID.String()

	doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/enroll", aToken, nil)
	doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/enroll", bToken, nil)
	doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/close-enrollment", aToken, nil)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/draw", bToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "NOT_YOUR_TURN", env.Code)
}

func TestRateLimitExceeded(t *testing.T) {
	h := newTestServer(2).Router()
	token, _ := registerAndLogin(t, h, "a@x")

	rec := doJSON(t, h, http.MethodGet, "/api/v1/games/open", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodGet, "/api/v1/games/open", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/games/open", token, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestInvitationAcceptEnrollsPlayerViaHTTP(t *testing.T) {
	h := newTestServerWithSharedGames(60).Router()
	aToken, _ := registerAndLogin(t, h, "a@x")
	bToken, _ := registerAndLogin(t, h, "b@x")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/games", aToken, createGameRequest{EnrollmentTimeoutSeconds: 300})
	var created createGameResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	gameID := created.GameID.String()

	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+gameID+"/invitations", aToken, createInvitationRequest{InviteeEmail: "b@x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var inv invitationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&inv))

	rec = doJSON(t, h, http.MethodPost, "/api/v1/invitations/"+inv.ID.String()+"/accept", bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/games/"+gameID, bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view gameView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	_, enrolled := view.Players["b@x"]
	assert.True(t, enrolled)
}

func TestCreateInvitationRejectsStranger(t *testing.T) {
	h := newTestServerWithSharedGames(60).Router()
	aToken, _ := registerAndLogin(t, h, "a@x")
	strangerToken, _ := registerAndLogin(t, h, "stranger@x")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/games", aToken, createGameRequest{EnrollmentTimeoutSeconds: 300})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created createGameResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = doJSON(t, h, http.MethodPost, "/api/v1/games/"+created.GameID.String()+"/invitations", strangerToken, createInvitationRequest{InviteeEmail: "c@x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "PLAYER_NOT_IN_GAME", env.Code)
}

func TestSunsetHeadersPresentOnVersionedRoutes(t *testing.T) {
	h := newTestServer(60).Router()
	token, _ := registerAndLogin(t, h, "a@x")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "false", rec.Header().Get("X-API-Deprecated"))
	assert.NotEmpty(t, rec.Header().Get("X-API-Sunset-Date"))
}
