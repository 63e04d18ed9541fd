package sessions

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const defaultMaxAge = 86400 * 7

// ErrStorage marks a failure of the sessions table itself, as opposed to a
// cookie or row that cannot be decoded.
var ErrStorage = errors.New("session storage failed")

// DBStore is a gorilla sessions.Store that keeps session values in the
// sessions table. The cookie holds only the signed and encrypted session ID.
type DBStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options
	repo    repositories.SessionRepository
}

func NewDBStore(repo repositories.SessionRepository, keyPairs ...[]byte) *DBStore {
	store := &DBStore{
		Codecs: securecookie.CodecsFromPairs(keyPairs...),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		repo: repo,
	}
	store.MaxAge(store.Options.MaxAge)
	return store
}

// MaxAge sets the lifetime of new sessions and of the codecs that sign them.
func (s *DBStore) MaxAge(age int) {
	s.Options.MaxAge = age
	for _, codec := range s.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxAge(age)
		}
	}
}

func (s *DBStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *DBStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, errCookie := r.Cookie(name)
	if errCookie != nil {
		return session, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		session.ID = ""
		return session, err
	}

	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}
	if !found {
		session.ID = ""
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

func (s *DBStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.repo.Delete(r.Context(), session.ID); err != nil {
				return fmt.Errorf("%w: %w", ErrStorage, err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}

	if err := s.save(r.Context(), session); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *DBStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	row, err := s.repo.Find(ctx, session.ID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if row == nil {
		return false, nil
	}
	if err := securecookie.DecodeMulti(session.Name(), row.Data, &session.Values, s.Codecs...); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DBStore) save(ctx context.Context, session *sessions.Session) error {
	encoded, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return err
	}

	maxAge := session.Options.MaxAge
	if maxAge == 0 {
		maxAge = defaultMaxAge
	}

	return s.repo.Save(ctx, &models.Session{
		ID:        session.ID,
		Data:      encoded,
		ExpiresAt: time.Now().Add(time.Duration(maxAge) * time.Second),
	})
}
