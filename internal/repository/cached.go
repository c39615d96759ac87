package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pyramide/event-api/internal/cache"
	"github.com/pyramide/event-api/internal/domain"
)

const (
	keyAccounts         = "users:all"
	keyAccountPrefix    = "users:id:"
	keyInvitations      = "invitations:"
	keyInvitationsAll   = "invitations:all"
	keyInviterPrefix    = "invitations:inviter:"
	keyInviteStatPrefix = "invitations:stats:"
	keyEventConfig      = "event:config"
)

func accountKey(id uint) string { return fmt.Sprintf("%s%d", keyAccountPrefix, id) }

type AccountStore interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	FindByID(ctx context.Context, id uint) (domain.Account, error)
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	ListReachable(ctx context.Context) ([]domain.Account, error)
	SetBanned(ctx context.Context, id uint, banned bool) error
	SetRole(ctx context.Context, id uint, role domain.Role) error
	SetAttendance(ctx context.Context, id uint, attending *bool) error
}

// CachedAccountRepository shadows account reads in the cache. Every write
// goes to the store first and then drops the affected keys.
type CachedAccountRepository struct {
	AccountStore
	cache   cache.Cache
	ttl     time.Duration
	itemTTL time.Duration
}

func NewCachedAccountRepository(store AccountStore, c cache.Cache, ttl, itemTTL time.Duration) *CachedAccountRepository {
	return &CachedAccountRepository{
		AccountStore: store,
		cache:        c,
		ttl:          ttl,
		itemTTL:      itemTTL,
	}
}

func (r *CachedAccountRepository) FindByID(ctx context.Context, id uint) (domain.Account, error) {
	return cache.GetOrLoad(ctx, r.cache, accountKey(id), r.itemTTL, func(ctx context.Context) (domain.Account, error) {
		return r.AccountStore.FindByID(ctx, id)
	})
}

func (r *CachedAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	return cache.GetOrLoad(ctx, r.cache, keyAccounts, r.ttl, r.AccountStore.List)
}

func (r *CachedAccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	created, err := r.AccountStore.Create(ctx, account)
	if err != nil {
		return domain.Account{}, err
	}
	cache.Invalidate(ctx, r.cache, keyAccounts)

	return created, nil
}

func (r *CachedAccountRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	if err := r.AccountStore.SetBanned(ctx, id, banned); err != nil {
		return err
	}
	cache.Invalidate(ctx, r.cache, keyAccounts, accountKey(id))

	return nil
}

func (r *CachedAccountRepository) SetRole(ctx context.Context, id uint, role domain.Role) error {
	if err := r.AccountStore.SetRole(ctx, id, role); err != nil {
		return err
	}
	cache.Invalidate(ctx, r.cache, keyAccounts, accountKey(id))

	return nil
}

func (r *CachedAccountRepository) SetAttendance(ctx context.Context, id uint, attending *bool) error {
	if err := r.AccountStore.SetAttendance(ctx, id, attending); err != nil {
		return err
	}
	cache.Invalidate(ctx, r.cache, keyAccounts, accountKey(id))

	return nil
}

type InvitationStore interface {
	Issue(ctx context.Context, invitation domain.Invitation, quota int) (domain.Invitation, error)
	FindByID(ctx context.Context, id uint) (domain.Invitation, error)
	FindByIdentity(ctx context.Context, identity string) (domain.Invitation, error)
	ListByInviter(ctx context.Context, inviterID uint) ([]domain.Invitation, error)
	ListAll(ctx context.Context) ([]domain.Invitation, error)
	Stats(ctx context.Context, inviterID uint) (domain.InviteStats, error)
	Accept(ctx context.Context, identity string, at time.Time) (bool, error)
	Cancel(ctx context.Context, id, inviterID uint) (bool, error)
}

// CachedInvitationRepository caches invitation listings and per-inviter
// stats. Quota enforcement never reads from here: Issue always locks the
// inviter row in the store.
type CachedInvitationRepository struct {
	InvitationStore
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedInvitationRepository(store InvitationStore, c cache.Cache, ttl time.Duration) *CachedInvitationRepository {
	return &CachedInvitationRepository{
		InvitationStore: store,
		cache:           c,
		ttl:             ttl,
	}
}

func (r *CachedInvitationRepository) ListAll(ctx context.Context) ([]domain.Invitation, error) {
	return cache.GetOrLoad(ctx, r.cache, keyInvitationsAll, r.ttl, r.InvitationStore.ListAll)
}

func (r *CachedInvitationRepository) ListByInviter(ctx context.Context, inviterID uint) ([]domain.Invitation, error) {
	key := fmt.Sprintf("%s%d", keyInviterPrefix, inviterID)
	return cache.GetOrLoad(ctx, r.cache, key, r.ttl, func(ctx context.Context) ([]domain.Invitation, error) {
		return r.InvitationStore.ListByInviter(ctx, inviterID)
	})
}

func (r *CachedInvitationRepository) Stats(ctx context.Context, inviterID uint) (domain.InviteStats, error) {
	key := fmt.Sprintf("%s%d", keyInviteStatPrefix, inviterID)
	return cache.GetOrLoad(ctx, r.cache, key, r.ttl, func(ctx context.Context) (domain.InviteStats, error) {
		return r.InvitationStore.Stats(ctx, inviterID)
	})
}

func (r *CachedInvitationRepository) Issue(ctx context.Context, invitation domain.Invitation, quota int) (domain.Invitation, error) {
	issued, err := r.InvitationStore.Issue(ctx, invitation, quota)
	if err != nil {
		return domain.Invitation{}, err
	}
	r.dropInviter(ctx, invitation.InviterID)
	// Issuing may create a placeholder account.
	cache.Invalidate(ctx, r.cache, keyAccounts)

	return issued, nil
}

func (r *CachedInvitationRepository) Accept(ctx context.Context, identity string, at time.Time) (bool, error) {
	changed, err := r.InvitationStore.Accept(ctx, identity, at)
	if err != nil {
		return false, err
	}
	if changed {
		cache.InvalidatePrefix(ctx, r.cache, keyInvitations)
	}

	return changed, nil
}

func (r *CachedInvitationRepository) Cancel(ctx context.Context, id, inviterID uint) (bool, error) {
	changed, err := r.InvitationStore.Cancel(ctx, id, inviterID)
	if err != nil {
		return false, err
	}
	if changed {
		r.dropInviter(ctx, inviterID)
	}

	return changed, nil
}

func (r *CachedInvitationRepository) dropInviter(ctx context.Context, inviterID uint) {
	cache.Invalidate(ctx, r.cache,
		keyInvitationsAll,
		fmt.Sprintf("%s%d", keyInviterPrefix, inviterID),
		fmt.Sprintf("%s%d", keyInviteStatPrefix, inviterID),
	)
}

type EventStore interface {
	EnsureSingleton(ctx context.Context, defaults domain.EventConfig) error
	Get(ctx context.Context) (domain.EventConfig, error)
	Update(ctx context.Context, conf domain.EventConfig) (domain.EventConfig, error)
	Admit(ctx context.Context, accountID uint) (bool, error)
}

// CachedEventRepository caches the event configuration. Admit always runs
// against the store so the capacity check never sees a stale counter.
type CachedEventRepository struct {
	EventStore
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedEventRepository(store EventStore, c cache.Cache, ttl time.Duration) *CachedEventRepository {
	return &CachedEventRepository{
		EventStore: store,
		cache:      c,
		ttl:        ttl,
	}
}

func (r *CachedEventRepository) Get(ctx context.Context) (domain.EventConfig, error) {
	return cache.GetOrLoad(ctx, r.cache, keyEventConfig, r.ttl, r.EventStore.Get)
}

func (r *CachedEventRepository) Update(ctx context.Context, conf domain.EventConfig) (domain.EventConfig, error) {
	updated, err := r.EventStore.Update(ctx, conf)
	if err != nil {
		return domain.EventConfig{}, err
	}
	cache.Invalidate(ctx, r.cache, keyEventConfig)

	return updated, nil
}

func (r *CachedEventRepository) Admit(ctx context.Context, accountID uint) (bool, error) {
	admitted, err := r.EventStore.Admit(ctx, accountID)
	if err != nil {
		return false, err
	}
	if admitted {
		cache.Invalidate(ctx, r.cache, keyEventConfig, keyAccounts, accountKey(accountID))
	}

	return admitted, nil
}
