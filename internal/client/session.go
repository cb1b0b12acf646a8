package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Identity is the signed-in account as the client sees it.
type Identity struct {
	ID         uuid.UUID         `json:"id"`
	Username   string            `json:"username"`
	Email      string            `json:"email,omitempty"`
	Role       entity.Role       `json:"role"`
	City       string            `json:"city,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	BloodGroup entity.BloodGroup `json:"bloodGroup,omitempty"`
}

// IdentityFromUser converts a server user. A missing or unknown role is an error.
func IdentityFromUser(u dto.UserResponse) (Identity, error) {
	role, err := entity.ParseRole(u.Role)
	if err != nil {
		return Identity{}, err
	}
	id := Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     role,
		City:     u.City,
		Phone:    u.Phone,
	}
	if u.BloodGroup != "" {
		group, err := entity.ParseBloodGroup(u.BloodGroup)
		if err != nil {
			return Identity{}, err
		}
		id.BloodGroup = group
	}
	return id, nil
}

func (i Identity) validate() error {
	if i.Role == "" {
		return entity.ErrMissingRole
	}
	if !i.Role.Valid() {
		return fmt.Errorf("%w: %q", entity.ErrUnknownRole, i.Role)
	}
	return nil
}

// Snapshot is the raw durable form of a session.
type Snapshot struct {
	User  []byte
	Token string
}

// Store is durable client storage. Load returns nil when nothing is stored.
type Store interface {
	Load() (*Snapshot, error)
	Save(snap Snapshot) error
	Clear() error
}

const (
	userFile  = "user.json"
	tokenFile = "token"
)

// FileStore keeps the session as two files under dir.
type FileStore struct {
	fs  afero.Fs
	dir string
}

func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

func (s *FileStore) Load() (*Snapshot, error) {
	user, err := afero.ReadFile(s.fs, filepath.Join(s.dir, userFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	token, err := afero.ReadFile(s.fs, filepath.Join(s.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return &Snapshot{User: user}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{User: user, Token: strings.TrimSpace(string(token))}, nil
}

func (s *FileStore) Save(snap Snapshot) error {
	if err := s.fs.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, userFile), snap.User, 0o600); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, filepath.Join(s.dir, tokenFile), []byte(snap.Token), 0o600)
}

func (s *FileStore) Clear() error {
	for _, name := range []string{userFile, tokenFile} {
		if err := s.fs.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

type Event int

const (
	EventLogin Event = iota + 1
	EventLogout
)

func (e Event) String() string {
	switch e {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	}
	return "unknown"
}

// Session holds the current identity and bearer token. It is created once and
// handed to every component that needs it.
type Session struct {
	mu       sync.RWMutex
	store    Store
	log      *logrus.Logger
	identity *Identity
	token    string
	loading  bool

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Event)
}

// NewSession starts in the loading state until Restore runs.
func NewSession(store Store, log *logrus.Logger) *Session {
	return &Session{
		store:   store,
		log:     log,
		loading: true,
		subs:    make(map[int]func(Event)),
	}
}

// Restore reloads identity and token from the store. Unreadable content is
// cleared and treated as no session.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	defer func() { s.loading = false }()

	s.identity, s.token = nil, ""

	snap, err := s.store.Load()
	if err != nil {
		s.log.Warnf("Failed to read stored session: %+v", fmt.Errorf("%w: %v", ErrStateRestore, err))
		return
	}
	if snap == nil {
		return
	}

	var id Identity
	if err := json.Unmarshal(snap.User, &id); err != nil {
		s.discard(fmt.Errorf("%w: %v", ErrStateRestore, err))
		return
	}
	if err := id.validate(); err != nil {
		s.discard(fmt.Errorf("%w: %v", ErrStateRestore, err))
		return
	}
	if snap.Token == "" {
		s.discard(fmt.Errorf("%w: %v", ErrStateRestore, ErrEmptyToken))
		return
	}

	s.identity = &id
	s.token = snap.Token
}

func (s *Session) discard(cause error) {
	s.log.Warnf("Discarding stored session: %+v", cause)
	if err := s.store.Clear(); err != nil {
		s.log.Warnf("Failed to clear stored session: %+v", err)
	}
}

// Login persists identity and token and notifies subscribers.
func (s *Session) Login(identity Identity, token string) error {
	if err := identity.validate(); err != nil {
		return err
	}
	if token == "" {
		return ErrEmptyToken
	}

	user, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.store.Save(Snapshot{User: user, Token: token}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.identity = &identity
	s.token = token
	s.loading = false
	s.mu.Unlock()

	s.notify(EventLogin)
	return nil
}

// Logout clears identity and token everywhere and notifies subscribers.
func (s *Session) Logout() error {
	s.mu.Lock()
	err := s.store.Clear()
	s.identity = nil
	s.token = ""
	s.mu.Unlock()

	s.notify(EventLogout)
	return err
}

func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.token != ""
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers fn for login and logout events. The returned func removes it.
func (s *Session) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) notify(e Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
