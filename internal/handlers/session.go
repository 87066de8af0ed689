package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/adyen/storefront-e2e/internal/models"
)

// SessionCookie names the cookie that identifies a visitor
const SessionCookie = "storefront_session"

// ShopSession is one visitor's cart and checkout progress
type ShopSession struct {
	Cart     models.Cart
	Checkout models.CheckoutProgress
}

// Reset empties the cart and restarts checkout after an order is placed
func (s *ShopSession) Reset() {
	s.Cart.Clear()
	s.Checkout = models.CheckoutProgress{}
}

// SessionStore keeps visitor sessions in memory, keyed by a uuid cookie
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*ShopSession
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*ShopSession),
	}
}

// With runs fn on the request's session while holding the store lock. A
// visitor without a known cookie gets a new session and cookie, so With
// must be called before anything is written to w.
func (s *SessionStore) With(w http.ResponseWriter, r *http.Request, fn func(*ShopSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	session, ok := s.sessions[id]
	if !ok {
		id = uuid.NewString()
		session = &ShopSession{}
		s.sessions[id] = session
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return fn(session)
}

// View runs fn on the request's session for callers that only read it
func (s *SessionStore) View(w http.ResponseWriter, r *http.Request, fn func(*ShopSession)) {
	// With only fails when fn does
	_ = s.With(w, r, func(session *ShopSession) error {
		fn(session)
		return nil
	})
}
