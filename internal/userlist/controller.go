// Package userlist holds the state behind the user form and list: the user
// collection, the form draft, the editing target, in-flight tracking and the
// error banner. Renderers read it through State and mutate it only through the
// Controller's operations.
package userlist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/EO-DataHub/eodhp-user-console/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Banner messages shown when an operation fails.
const (
	ErrMsgFetch          = "failed to fetch"
	ErrMsgCreate         = "failed to create"
	ErrMsgUpdate         = "failed to update"
	ErrMsgDelete         = "failed to delete"
	ErrMsgTargetNotFound = "failed to update: user no longer exists"
)

// ErrUnknownField is returned when a draft field name is not recognised.
var ErrUnknownField = errors.New("unknown draft field")

// Directory is the remote collaborator holding the persisted users.
type Directory interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, provisionalID models.UserID, draft models.Draft) (*models.User, error)
	UpdateUser(ctx context.Context, id models.UserID, draft models.Draft) (*models.User, error)
	DeleteUser(ctx context.Context, id models.UserID) error
}

// Op identifies the kind of a network operation.
type Op string

const (
	OpFetch  Op = "fetch"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// requestKey scopes request tokens. A response is only applied while its
// token is the latest one issued under the same key.
type requestKey struct {
	op     Op
	target string
}

// Controller owns the user collection and the form state.
type Controller struct {
	dir Directory
	log zerolog.Logger

	// newID generates the placeholder id sent with a create.
	newID func() models.UserID

	activate sync.Once

	mu       sync.Mutex
	users    []models.User
	draft    models.Draft
	editing  *models.UserID
	errMsg   string
	inFlight map[Op]int
	latest   map[requestKey]uint64
	seq      uint64
}

// New creates a controller in Creating mode with an empty collection.
func New(dir Directory, logger zerolog.Logger) *Controller {
	return &Controller{
		dir:      dir,
		log:      logger.With().Str("component", "userlist").Logger(),
		newID:    func() models.UserID { return models.UserID(uuid.NewString()) },
		users:    []models.User{},
		inFlight: make(map[Op]int),
		latest:   make(map[requestKey]uint64),
	}
}

// Activate performs the initial fetch. Only the first call does anything.
func (c *Controller) Activate(ctx context.Context) {
	c.activate.Do(func() {
		c.FetchAll(ctx)
	})
}

// FetchAll replaces the collection with the directory's current users.
func (c *Controller) FetchAll(ctx context.Context) {
	key := requestKey{op: OpFetch}
	token := c.begin(key)

	users, err := c.dir.ListUsers(ctx)

	c.finish(key, token, func() {
		if err != nil {
			c.log.Error().Err(err).Msg("Error fetching users")
			c.errMsg = ErrMsgFetch
			return
		}
		if users == nil {
			users = []models.User{}
		}
		c.users = users
	})
}

// Create sends draft to the directory and appends the user it returns. The
// placeholder id sent along is never kept.
func (c *Controller) Create(ctx context.Context, draft models.Draft) {
	provisionalID := c.newID()
	key := requestKey{op: OpCreate, target: provisionalID.String()}
	token := c.begin(key)

	user, err := c.dir.CreateUser(ctx, provisionalID, draft)

	c.finish(key, token, func() {
		if err != nil {
			c.log.Error().Err(err).Msg("Error creating user")
			c.errMsg = ErrMsgCreate
			return
		}
		c.users = append(c.users, *user)
		if c.editing == nil {
			c.draft = models.Draft{}
		}
	})
}

// Update sends draft to the directory for the user id and swaps the returned
// representation into the collection. An id that is no longer in the
// collection fails without a network call and leaves edit mode.
func (c *Controller) Update(ctx context.Context, id models.UserID, draft models.Draft) {
	c.mu.Lock()
	if c.indexOf(id) < 0 {
		c.log.Warn().Str("user_id", id.String()).Msg("Update target no longer exists")
		c.targetGone(id)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	key := requestKey{op: OpUpdate, target: id.String()}
	token := c.begin(key)

	user, err := c.dir.UpdateUser(ctx, id, draft)

	c.finish(key, token, func() {
		if err != nil {
			c.log.Error().Err(err).Str("user_id", id.String()).Msg("Error updating user")
			c.errMsg = ErrMsgUpdate
			return
		}

		i := c.indexOf(id)
		if i < 0 {
			c.log.Warn().Str("user_id", id.String()).Msg("Updated user was removed while the update was in flight")
			c.targetGone(id)
			return
		}
		c.users[i] = *user
		if c.editing != nil && *c.editing == id {
			c.editing = nil
			c.draft = models.Draft{}
		}
	})
}

// Delete removes the user from the directory and then from the collection.
func (c *Controller) Delete(ctx context.Context, id models.UserID) {
	key := requestKey{op: OpDelete, target: id.String()}
	token := c.begin(key)

	err := c.dir.DeleteUser(ctx, id)

	c.finish(key, token, func() {
		if err != nil {
			c.log.Error().Err(err).Str("user_id", id.String()).Msg("Error deleting user")
			c.errMsg = ErrMsgDelete
			return
		}
		c.users = slices.DeleteFunc(c.users, func(u models.User) bool {
			return u.ID == id
		})
	})
}

// Submit creates or updates from the current draft depending on the form mode.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	draft := c.draft
	var target *models.UserID
	if c.editing != nil {
		id := *c.editing
		target = &id
	}
	c.mu.Unlock()

	if target == nil {
		c.Create(ctx, draft)
		return
	}
	c.Update(ctx, *target, draft)
}

// BeginEdit switches the form to editing user and loads its fields.
func (c *Controller) BeginEdit(user models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := user.ID
	c.editing = &id
	c.draft = models.DraftFromUser(user)
}

// CancelEdit returns the form to Creating mode with an empty draft.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editing = nil
	c.draft = models.Draft{}
}

// UpdateDraftField sets one field of the draft.
func (c *Controller) UpdateDraftField(field models.DraftField, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.draft.Set(field, value); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// User looks up a user of the collection by id.
func (c *Controller) User(id models.UserID) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.User{}, false
	}
	return c.users[i], true
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Users:    slices.Clone(c.users),
		Draft:    c.draft,
		Error:    c.errMsg,
		InFlight: make(map[Op]int, len(c.inFlight)),
	}
	if c.editing != nil {
		id := *c.editing
		s.Editing = &id
	}
	for op, n := range c.inFlight {
		if n > 0 {
			s.InFlight[op] = n
			s.Loading = true
		}
	}
	return s
}

// begin issues a token for key, marks the operation kind in flight and
// clears the banner.
func (c *Controller) begin(key requestKey) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.latest[key] = c.seq
	c.inFlight[key.op]++
	c.errMsg = ""
	return c.seq
}

// finish releases the in-flight mark and runs apply under the lock unless a
// newer request with the same key was issued meanwhile.
func (c *Controller) finish(key requestKey, token uint64, apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight[key.op]--
	if c.latest[key] != token {
		c.log.Debug().
			Str("op", string(key.op)).
			Str("target", key.target).
			Uint64("token", token).
			Msg("Discarding superseded response")
		return
	}
	delete(c.latest, key)
	apply()
}

// targetGone handles an update whose target is missing. Callers hold c.mu.
func (c *Controller) targetGone(id models.UserID) {
	c.errMsg = ErrMsgTargetNotFound
	if c.editing != nil && *c.editing == id {
		c.editing = nil
		c.draft = models.Draft{}
	}
}

// indexOf returns the position of id in the collection or -1. Callers hold c.mu.
func (c *Controller) indexOf(id models.UserID) int {
	return slices.IndexFunc(c.users, func(u models.User) bool {
		return u.ID == id
	})
}
