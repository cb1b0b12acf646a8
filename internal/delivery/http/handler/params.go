package handler

import (
	"net/http"
	"strings"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// bloodGroupParam reads an optional blood group from the query string. "+" is
// decoded as a space by url parsing, so "A " is read back as "A+".
func bloodGroupParam(r *http.Request) (entity.BloodGroup, error) {
	raw := r.URL.Query().Get("bloodGroup")
	if raw == "" {
		return "", nil
	}
	if strings.HasSuffix(raw, " ") {
		raw = strings.TrimRight(raw, " ") + "+"
	}
	return entity.ParseBloodGroup(raw)
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// firstQuery returns the first non-empty value among the given query keys.
func firstQuery(r *http.Request, keys ...string) string {
	q := r.URL.Query()
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}
