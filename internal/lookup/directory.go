package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/cache"
	"github.com/mimiro-io/zabbix-objects/internal/api"
	"github.com/mimiro-io/zabbix-objects/internal/conf"
	"github.com/mimiro-io/zabbix-objects/internal/objects"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

// Directory looks hosts and host groups up by name and keeps the results for a
// while. Concurrent lookups of the same name share one remote call.
type Directory struct {
	caller objects.Caller
	hosts  cache.Cache
	groups cache.Cache
	flight singleflight.Group
	logger *zap.SugaredLogger
}

// NewDirectory wires a directory to the shared session.
func NewDirectory(lc fx.Lifecycle, env *conf.Env, session *api.SyncSession, logger *zap.SugaredLogger) *Directory {
	d := New(session, env.Lookup.CacheTTL, env.Lookup.CacheSize, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return d.Close()
		},
	})
	return d
}

func New(caller objects.Caller, ttl time.Duration, size int, logger *zap.SugaredLogger) *Directory {
	options := []cache.Option{cache.WithMaximumSize(size)}
	if ttl > 0 {
		options = append(options, cache.WithExpireAfterWrite(ttl))
	}
	return &Directory{
		caller: caller,
		hosts:  cache.New(options...),
		groups: cache.New(options...),
		logger: logger.Named("lookup"),
	}
}

// Host returns the named host, or nil when the server knows no such host.
func (d *Directory) Host(ctx context.Context, name string) (*objects.Host, error) {
	if v, ok := d.hosts.GetIfPresent(name); ok {
		return v.(*objects.Host), nil
	}
	v, err, _ := d.flight.Do("host:"+name, func() (any, error) {
		// shared by every waiter, so not bound to the first caller's cancellation
		h, err := objects.HostByName(context.WithoutCancel(ctx), d.caller, name)
		if err != nil || h == nil {
			return h, err
		}
		d.hosts.Put(name, h)
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*objects.Host), nil
}

// HostGroup returns the named host group, or nil when there is none.
func (d *Directory) HostGroup(ctx context.Context, name string) (*objects.HostGroup, error) {
	if v, ok := d.groups.GetIfPresent(name); ok {
		return v.(*objects.HostGroup), nil
	}
	v, err, _ := d.flight.Do("group:"+name, func() (any, error) {
		g, err := objects.HostGroupByName(context.WithoutCancel(ctx), d.caller, name)
		if err != nil || g == nil {
			return g, err
		}
		d.groups.Put(name, g)
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*objects.HostGroup), nil
}

// EnsureGroup returns the named host group, creating it first when missing.
func (d *Directory) EnsureGroup(ctx context.Context, name string) (*objects.HostGroup, error) {
	g, err := d.HostGroup(ctx, name)
	if err != nil || g != nil {
		return g, err
	}

	id, err := objects.CreateHostGroup(ctx, d.caller, name)
	if err != nil {
		return nil, err
	}
	d.logger.Infof("Created host group %s with id %s", name, id)

	g, err = d.HostGroup(ctx, name)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("host group %s: %w after create", name, ErrNotFound)
	}
	return g, nil
}

// AddHostToGroup adds an existing host to a group, creating the group when
// needed. It reports whether the server confirmed exactly that host.
func (d *Directory) AddHostToGroup(ctx context.Context, hostName, groupName string) (bool, error) {
	h, err := d.Host(ctx, hostName)
	if err != nil {
		return false, err
	}
	if h == nil {
		return false, fmt.Errorf("host %s: %w", hostName, ErrNotFound)
	}
	g, err := d.EnsureGroup(ctx, groupName)
	if err != nil {
		return false, err
	}

	ok, err := g.AddHost(ctx, h)
	if err != nil {
		return false, err
	}
	d.Invalidate(hostName, groupName)
	return ok, nil
}

// Invalidate drops the cached host and host group with the given names.
func (d *Directory) Invalidate(names ...string) {
	for _, name := range names {
		d.hosts.Invalidate(name)
		d.groups.Invalidate(name)
	}
}

func (d *Directory) Close() error {
	herr := d.hosts.Close()
	gerr := d.groups.Close()
	return errors.Join(herr, gerr)
}
