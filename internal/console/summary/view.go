package summary

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/rolesconsole/pkg/directorysdk"
	"github.com/aussiebroadwan/rolesconsole/pkg/slogx"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Directory is the read side of the directory API the dashboard needs.
type Directory interface {
	ListUsers(ctx context.Context) ([]directorysdk.User, error)
	ListRoles(ctx context.Context) ([]directorysdk.Role, error)
}

// State is a snapshot of the dashboard. Users and Roles are never nil.
type State struct {
	Loading   bool                `json:"loading"`
	Users     []directorysdk.User `json:"users"`
	Roles     []directorysdk.Role `json:"roles"`
	Stats     Stats               `json:"stats"`
	UpdatedAt time.Time           `json:"updated_at"`
	Err       *FetchError         `json:"-"`
}

// Option configures a View.
type Option func(*View)

// WithTimeout bounds each joint fetch. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(v *View) { v.timeout = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(v *View) { v.now = now }
}

// View holds the dashboard summary and refreshes it from the directory.
// It is safe for concurrent use.
type View struct {
	dir     Directory
	timeout time.Duration
	now     func() time.Time

	group singleflight.Group

	mu    sync.RWMutex
	state State
}

func NewView(dir Directory, opts ...Option) *View {
	v := &View{
		dir:     dir,
		timeout: 10 * time.Second,
		now:     time.Now,
		state:   emptyState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func emptyState() State {
	return State{
		Users: []directorysdk.User{},
		Roles: []directorysdk.Role{},
		Stats: Compute(nil, nil),
	}
}

// State returns the current snapshot.
func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Load fetches users and roles concurrently and replaces the snapshot only
// when both succeed. On failure the previous data is kept, the error is
// logged and recorded in State.Err. Concurrent calls share one fetch.
func (v *View) Load(ctx context.Context) State {
	log := slogx.FromContext(ctx)

	_, _, _ = v.group.Do("load", func() (any, error) {
		v.setLoading(true)

		// The fetch is shared, so one caller going away must not cancel it
		// for the others.
		fetchCtx := context.WithoutCancel(ctx)
		if v.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, v.timeout)
			defer cancel()
		}

		start := time.Now()
		users, roles, err := v.fetch(fetchCtx)
		elapsed := time.Since(start).Seconds()

		if err != nil {
			var fe *FetchError
			if !errors.As(err, &fe) {
				fe = &FetchError{Resource: "unknown", Err: err}
			}
			fe.At = v.now()

			fetchLatency.WithLabelValues("error").Observe(elapsed)
			fetchFailures.WithLabelValues(fe.Resource).Inc()
			log.Error("dashboard fetch failed",
				slog.String("resource", fe.Resource),
				slog.Any("error", fe.Err),
			)

			v.mu.Lock()
			v.state.Loading = false
			v.state.Err = fe
			v.mu.Unlock()
			return nil, nil
		}

		fetchLatency.WithLabelValues("ok").Observe(elapsed)
		log.Debug("dashboard fetched",
			slog.Int("users", len(users)),
			slog.Int("roles", len(roles)),
		)

		v.mu.Lock()
		v.state = State{
			Users:     users,
			Roles:     roles,
			Stats:     Compute(users, roles),
			UpdatedAt: v.now(),
		}
		v.mu.Unlock()
		return nil, nil
	})

	return v.State()
}

func (v *View) setLoading(b bool) {
	v.mu.Lock()
	v.state.Loading = b
	v.mu.Unlock()
}

func (v *View) fetch(ctx context.Context) ([]directorysdk.User, []directorysdk.Role, error) {
	var (
		users []directorysdk.User
		roles []directorysdk.Role
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := v.dir.ListUsers(gctx)
		if err != nil {
			return &FetchError{Resource: "users", Err: err}
		}
		users = u
		return nil
	})
	g.Go(func() error {
		r, err := v.dir.ListRoles(gctx)
		if err != nil {
			return &FetchError{Resource: "roles", Err: err}
		}
		roles = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if users == nil {
		users = []directorysdk.User{}
	}
	if roles == nil {
		roles = []directorysdk.Role{}
	}
	return users, roles, nil
}

// Cards returns the stat cards for the current snapshot.
func (v *View) Cards() []Card {
	return CardsFor(v.State().Stats)
}

// Activate navigates to the page behind card key.
func (v *View) Activate(key CardKey, nav Navigator) error {
	path, err := CardPath(key)
	if err != nil {
		return err
	}
	nav.NavigateTo(path)
	return nil
}
