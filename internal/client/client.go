package client

import (
	"context"
	"time"

	"nearest-blood-locator/internal/delivery/dto"

	"github.com/sirupsen/logrus"
)

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Store     Store
	Confirmer Confirmer
	Log       *logrus.Logger
}

// Client wires the session into every component that depends on it.
type Client struct {
	Session   *Session
	API       *API
	Guard     *AccessGuard
	Router    *RoleRouter
	Criteria  *CriteriaModel
	Matcher   *Matcher
	Records   *RecordManager
	Dashboard *DashboardLoader

	log *logrus.Logger
}

// New builds a client and restores any stored session.
func New(opts Options) *Client {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	confirm := opts.Confirmer
	if confirm == nil {
		confirm = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
	}
	session := NewSession(opts.Store, log)
	api := NewAPI(opts.BaseURL, opts.Timeout, session)

	c := &Client{
		Session:   session,
		API:       api,
		Guard:     NewAccessGuard(session),
		Router:    NewRoleRouter(session),
		Criteria:  NewCriteriaModel(),
		Matcher:   NewMatcher(api, log),
		Records:   NewRecordManager(api, session, confirm, log),
		Dashboard: NewDashboardLoader(api, session),
		log:       log,
	}
	session.Restore()
	return c
}

func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return c.API.Register(ctx, req)
}

// Login authenticates against the server and stores the resulting session.
func (c *Client) Login(ctx context.Context, identifier, password string) (Identity, error) {
	result, err := c.API.Login(ctx, identifier, password)
	if err != nil {
		return Identity{}, err
	}
	identity, err := IdentityFromUser(result.User)
	if err != nil {
		return Identity{}, err
	}
	if err := c.Session.Login(identity, result.AccessToken); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// Logout revokes the token on the server when possible and always clears the
// local session.
func (c *Client) Logout(ctx context.Context) error {
	if c.Session.IsAuthenticated() {
		if err := c.API.Logout(ctx); err != nil {
			c.log.Warnf("Failed to revoke token: %+v", err)
		}
	}
	return c.Session.Logout()
}

// Search validates input through the criteria model and runs the search.
func (c *Client) Search(ctx context.Context, bloodGroup, location string) (*SearchResult, error) {
	q, err := c.Criteria.Submit(bloodGroup, location)
	if err != nil {
		return nil, err
	}
	return c.Matcher.Search(ctx, q)
}
