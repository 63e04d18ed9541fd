package sessions

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	sessionCookieName = "asili_session"

	userIDSessionKey = "userID"
)

// SessionStore errors wrap ErrStorage only when the backing store failed;
// a missing or unreadable cookie is simply no user.
type SessionStore interface {
	GetUserID(r *http.Request) (uint, error)
	SetUserID(w http.ResponseWriter, r *http.Request, userID uint) error
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

// Manager reads and writes the logged-in user on top of any gorilla store.
type Manager struct {
	store sessions.Store
}

func NewManager(store sessions.Store) *Manager {
	return &Manager{store: store}
}

// getSession returns a usable session unless the store itself failed. A
// cookie that fails to decode (rotated keys, tampering, expired row) yields
// a fresh one.
func (m *Manager) getSession(r *http.Request) (*sessions.Session, error) {
	session, err := m.store.Get(r, sessionCookieName)
	if err != nil {
		if errors.Is(err, ErrStorage) {
			return nil, err
		}
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("discarding unreadable session")
	}
	if session == nil {
		session = sessions.NewSession(m.store, sessionCookieName)
	}
	return session, nil
}

func (m *Manager) GetUserID(r *http.Request) (uint, error) {
	session, err := m.getSession(r)
	if err != nil {
		return 0, err
	}
	userID, ok := session.Values[userIDSessionKey].(uint)
	if !ok {
		return 0, nil
	}
	return userID, nil
}

func (m *Manager) SetUserID(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, err := m.getSession(r)
	if err != nil {
		return err
	}
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (m *Manager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := m.getSession(r)
	if err != nil {
		return err
	}
	session.Values = make(map[interface{}]interface{})
	if session.Options == nil {
		session.Options = &sessions.Options{Path: "/"}
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
