package helpers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/gorilla/mux"
)

type contextKey string

const (
	ContextKeyUser contextKey = "userObject"
)

// ParseID reads a numeric path variable such as {id}.
func ParseID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// ParseNumericID is ParseID that also accepts 0. Deletes use it: any
// numeric id is a valid target, even one that can never exist.
func ParseNumericID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// PositiveIntQuery returns the query value when it parses as a positive
// integer and fallback otherwise.
func PositiveIntQuery(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(ContextKeyUser).(*models.User)
	return user
}
