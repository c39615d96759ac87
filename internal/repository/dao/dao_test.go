package dao

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pyramide/event-api/internal/domain"
)

type DAOTestSuite struct {
	suite.Suite
	pool     *dockertest.Pool
	resource *dockertest.Resource
	db       *gorm.DB
	ctx      context.Context
}

func TestDAOTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	suite.Run(t, new(DAOTestSuite))
}

func (s *DAOTestSuite) SetupSuite() {
	pool, err := dockertest.NewPool("")
	if err != nil {
		s.T().Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		s.T().Skipf("docker unavailable: %v", err)
	}
	s.pool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=pyramide",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err)
	s.resource = resource
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost port=%s user=postgres password=postgres dbname=pyramide sslmode=disable",
		resource.GetPort("5432/tcp"))
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}
		s.db = db
		return nil
	})
	s.Require().NoError(err)

	s.ctx = context.Background()
}

func (s *DAOTestSuite) TearDownSuite() {
	if s.pool != nil && s.resource != nil {
		_ = s.pool.Purge(s.resource)
	}
}

func (s *DAOTestSuite) SetupTest() {
	s.Require().NoError(dropAllTables(s.db))
	s.Require().NoError(InitTables(s.db))
}

func (s *DAOTestSuite) account(username, role string) Account {
	created, err := NewAccountDAO(s.db).Insert(s.ctx, Account{ExternalID: username, Username: username, Role: role})
	s.Require().NoError(err)
	return created
}

func (s *DAOTestSuite) seedEvent(maxParticipants int) {
	err := NewEventDAO(s.db).EnsureSingleton(s.ctx, EventConfig{
		EventDate:         time.Date(2026, 12, 31, 22, 0, 0, 0, time.UTC),
		MaxParticipants:   maxParticipants,
		Currency:          "USD",
		MaxInvitesPerUser: 5,
	})
	s.Require().NoError(err)
}

func (s *DAOTestSuite) TestAccount_DuplicateUsername() {
	s.account("alice", "guest")

	_, err := NewAccountDAO(s.db).Insert(s.ctx, Account{ExternalID: "alice2", Username: "alice", Role: "guest"})

	s.ErrorIs(err, domain.ErrConflict)
}

func (s *DAOTestSuite) TestAccount_ExternalIDIsUnique() {
	d := NewAccountDAO(s.db)

	_, err := d.Insert(s.ctx, Account{ExternalID: "boss", Username: "boss", Role: "admin"})
	s.Require().NoError(err)
	_, err = d.Insert(s.ctx, Account{ExternalID: "boss2", Username: "boss2", Role: "admin"})
	s.Require().NoError(err)

	_, err = d.Insert(s.ctx, Account{ExternalID: "boss", Username: "boss3", Role: "admin"})
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *DAOTestSuite) TestAdmit_ConcurrentLastSeat() {
	s.seedEvent(1)
	a := s.account("a", "guest")
	b := s.account("b", "guest")
	d := NewEventDAO(s.db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			_, errs[i] = d.Admit(s.ctx, id)
		}(i, id)
	}
	wg.Wait()

	full := 0
	for _, err := range errs {
		if err != nil {
			s.ErrorIs(err, domain.ErrEventFull)
			full++
		}
	}
	s.Equal(1, full)

	conf, err := d.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, conf.CurrentParticipants)
}

func (s *DAOTestSuite) TestAdmit_CountsAccountOnce() {
	s.seedEvent(10)
	a := s.account("a", "guest")
	d := NewEventDAO(s.db)

	first, err := d.Admit(s.ctx, a.ID)
	s.Require().NoError(err)
	second, err := d.Admit(s.ctx, a.ID)
	s.Require().NoError(err)

	s.True(first)
	s.False(second)
	conf, _ := d.Get(s.ctx)
	s.Equal(1, conf.CurrentParticipants)
}

func (s *DAOTestSuite) TestAdmit_FullRollsBackAdmittedFlag() {
	s.seedEvent(1)
	a := s.account("a", "guest")
	b := s.account("b", "guest")
	d := NewEventDAO(s.db)

	_, err := d.Admit(s.ctx, a.ID)
	s.Require().NoError(err)
	_, err = d.Admit(s.ctx, b.ID)
	s.ErrorIs(err, domain.ErrEventFull)

	got, err := NewAccountDAO(s.db).FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.False(got.Admitted)
}

func (s *DAOTestSuite) TestAdmit_ZeroCapIsUnlimited() {
	s.seedEvent(0)
	d := NewEventDAO(s.db)

	for _, name := range []string{"a", "b", "c"} {
		admitted, err := d.Admit(s.ctx, s.account(name, "guest").ID)
		s.Require().NoError(err)
		s.True(admitted)
	}

	conf, _ := d.Get(s.ctx)
	s.Equal(3, conf.CurrentParticipants)
}

func (s *DAOTestSuite) TestEventUpdate_KeepsCounter() {
	s.seedEvent(10)
	a := s.account("a", "guest")
	d := NewEventDAO(s.db)
	_, err := d.Admit(s.ctx, a.ID)
	s.Require().NoError(err)

	conf, err := d.Get(s.ctx)
	s.Require().NoError(err)
	conf.MaxParticipants = 50
	conf.CurrentParticipants = 0
	conf.MaxTicketPrice = decimal.NewNullDecimal(decimal.NewFromInt(50))

	updated, err := d.Update(s.ctx, conf)
	s.Require().NoError(err)
	s.Equal(50, updated.MaxParticipants)
	s.Equal(1, updated.CurrentParticipants)
	s.True(updated.MaxTicketPrice.Valid)
}

func (s *DAOTestSuite) TestIssue_QuotaDuplicateAndPlaceholder() {
	inviter := s.account("host", "guest")
	d := NewInvitationDAO(s.db)

	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("friend%d", i)
		_, err := d.Issue(s.ctx,
			Invitation{InviterID: inviter.ID, InviteeIdentity: name, InviteeName: name, Status: statusPending},
			Account{ExternalID: name, Username: name, Role: "guest", InvitedBy: &inviter.ID},
			5,
		)
		s.Require().NoError(err)
	}

	_, err := d.Issue(s.ctx,
		Invitation{InviterID: inviter.ID, InviteeIdentity: "sixth", InviteeName: "sixth", Status: statusPending},
		Account{ExternalID: "sixth", Username: "sixth", Role: "guest"},
		5,
	)
	s.ErrorIs(err, domain.ErrQuotaExceeded)

	other := s.account("other", "guest")
	_, err = d.Issue(s.ctx,
		Invitation{InviterID: other.ID, InviteeIdentity: "friend0", InviteeName: "friend0", Status: statusPending},
		Account{ExternalID: "friend0", Username: "friend0", Role: "guest"},
		5,
	)
	s.ErrorIs(err, domain.ErrDuplicateInvitee)

	placeholder, err := NewAccountDAO(s.db).FindByUsername(s.ctx, "friend3")
	s.Require().NoError(err)
	s.Nil(placeholder.Attending)
	s.Equal(inviter.ID, *placeholder.InvitedBy)

	_, err = NewAccountDAO(s.db).FindByUsername(s.ctx, "sixth")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *DAOTestSuite) TestIssue_CancelFreesSlot() {
	inviter := s.account("host", "guest")
	d := NewInvitationDAO(s.db)

	inv, err := d.Issue(s.ctx,
		Invitation{InviterID: inviter.ID, InviteeIdentity: "x", InviteeName: "x", Status: statusPending},
		Account{ExternalID: "x", Username: "x", Role: "guest"}, 1)
	s.Require().NoError(err)

	ok, err := d.Cancel(s.ctx, inv.ID, inviter.ID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = d.Cancel(s.ctx, inv.ID, inviter.ID)
	s.Require().NoError(err)
	s.False(ok)

	_, err = d.Issue(s.ctx,
		Invitation{InviterID: inviter.ID, InviteeIdentity: "y", InviteeName: "y", Status: statusPending},
		Account{ExternalID: "y", Username: "y", Role: "guest"}, 1)
	s.NoError(err)
}

func (s *DAOTestSuite) TestAccept_Idempotent() {
	inviter := s.account("host", "guest")
	d := NewInvitationDAO(s.db)
	_, err := d.Issue(s.ctx,
		Invitation{InviterID: inviter.ID, InviteeIdentity: "x", InviteeName: "x", Status: statusPending},
		Account{ExternalID: "x", Username: "x", Role: "guest"}, -1)
	s.Require().NoError(err)

	now := time.Now().UTC()
	first, err := d.Accept(s.ctx, "x", now)
	s.Require().NoError(err)
	second, err := d.Accept(s.ctx, "x", now.Add(time.Hour))
	s.Require().NoError(err)

	s.True(first)
	s.False(second)

	counts, err := d.CountByStatus(s.ctx, inviter.ID)
	s.Require().NoError(err)
	s.Equal([]StatusCount{{Status: statusAccepted, Count: 1}}, counts)
}

func (s *DAOTestSuite) barItem(price string, qty int) BarItem {
	item, err := NewBarDAO(s.db).InsertItem(s.ctx, BarItem{
		Name:        "Mojito",
		Category:    "cocktail",
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}, qty)
	s.Require().NoError(err)
	return item
}

func (s *DAOTestSuite) sale(bartenderID uint, item BarItem, qty int, actual string) (BarTransaction, error) {
	amount := decimal.RequireFromString(actual)
	return NewBarDAO(s.db).CommitSale(s.ctx, BarTransaction{
		BartenderID:  bartenderID,
		Lines:        []BarTransactionLine{{ItemID: item.ID, Name: item.Name, Quantity: qty, UnitPrice: item.Price}},
		Subtotal:     amount,
		ActualAmount: amount,
	})
}

func (s *DAOTestSuite) TestCommitSale_StockRunsOut() {
	bartender := s.account("barkeep", "bartender")
	item := s.barItem("8.00", 3)

	_, err := s.sale(bartender.ID, item, 3, "24.00")
	s.Require().NoError(err)

	items, err := NewBarDAO(s.db).FindItemsByIDs(s.ctx, []uint{item.ID})
	s.Require().NoError(err)
	s.Equal(0, items[0].Inventory.Quantity)

	_, err = s.sale(bartender.ID, item, 1, "8.00")
	s.ErrorIs(err, domain.ErrInsufficientStock)
	var derr *domain.Error
	s.Require().True(errors.As(err, &derr))
	s.Equal(item.ID, derr.Details["item_id"])

	balance, err := NewBarDAO(s.db).FindBalance(s.ctx, bartender.ID)
	s.Require().NoError(err)
	s.Equal("24.00", balance.TotalSales.StringFixed(2))

	sales, err := NewBarDAO(s.db).ListTransactions(s.ctx, &bartender.ID, 10)
	s.Require().NoError(err)
	s.Len(sales, 1)
}

func (s *DAOTestSuite) TestCommitSale_ConcurrentLastUnit() {
	bartender := s.account("barkeep", "bartender")
	item := s.barItem("5.00", 1)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.sale(bartender.ID, item, 1, "5.00")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			s.ErrorIs(err, domain.ErrInsufficientStock)
		}
	}
	s.Equal(1, ok)
}

func (s *DAOTestSuite) TestPayout_Bound() {
	bartender := s.account("barkeep", "bartender")
	admin := s.account("boss", "admin")
	item := s.barItem("10.00", 100)
	_, err := s.sale(bartender.ID, item, 10, "100.00")
	s.Require().NoError(err)

	d := NewBarDAO(s.db)
	payout := func(amount string) error {
		_, err := d.InsertPayout(s.ctx, BarPayout{
			BartenderID: bartender.ID,
			Amount:      decimal.RequireFromString(amount),
			PaidBy:      admin.ID,
		})
		return err
	}

	s.Require().NoError(payout("40"))
	balance, _ := d.FindBalance(s.ctx, bartender.ID)
	s.Equal("60.00", balance.TotalSales.Sub(balance.TotalPayouts).StringFixed(2))

	s.ErrorIs(payout("70"), domain.ErrExceedsOutstanding)
	s.Require().NoError(payout("60"))

	balance, _ = d.FindBalance(s.ctx, bartender.ID)
	s.True(balance.TotalSales.Sub(balance.TotalPayouts).IsZero())

	payouts, err := d.ListPayouts(s.ctx, &bartender.ID)
	s.Require().NoError(err)
	s.Len(payouts, 2)
}

func (s *DAOTestSuite) TestPayout_NoSales() {
	bartender := s.account("barkeep", "bartender")

	_, err := NewBarDAO(s.db).InsertPayout(s.ctx, BarPayout{BartenderID: bartender.ID, Amount: decimal.NewFromInt(1)})

	s.ErrorIs(err, domain.ErrExceedsOutstanding)
}

func (s *DAOTestSuite) TestTicket_UniquePerAccountAndVerifyOnce() {
	guest := s.account("guest", "guest")
	inspector := s.account("door", "ticket-inspector")
	d := NewTicketDAO(s.db)

	ticket := Ticket{
		AccountID:     guest.ID,
		Code:          "code-1",
		Price:         decimal.RequireFromString("38.00"),
		Currency:      "USD",
		Tier:          domain.TierGuest,
		PaymentStatus: string(domain.PaymentUnpaid),
		IssuedAt:      time.Now().UTC(),
	}
	_, err := d.Insert(s.ctx, ticket)
	s.Require().NoError(err)

	ticket.Code = "code-2"
	_, err = d.Insert(s.ctx, ticket)
	s.ErrorIs(err, domain.ErrTicketExists)

	paid := time.Now().UTC()
	ok, err := d.SetPaymentStatus(s.ctx, "code-1", string(domain.PaymentPaid), &paid)
	s.Require().NoError(err)
	s.False(ok, "payment before verification must not apply")

	first, err := d.MarkVerified(s.ctx, "code-1", inspector.ID, time.Now().UTC())
	s.Require().NoError(err)
	second, err := d.MarkVerified(s.ctx, "code-1", inspector.ID, time.Now().UTC())
	s.Require().NoError(err)
	s.True(first)
	s.False(second)

	ok, err = d.SetPaymentStatus(s.ctx, "code-1", string(domain.PaymentPaid), &paid)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *DAOTestSuite) TestIncident_ResolveNeedsPeople() {
	sec := s.account("sec", "security")
	d := NewIncidentDAO(s.db)

	incident, err := d.Insert(s.ctx, SecurityIncident{Type: "fight", Description: "bar area", ReportedBy: sec.ID, PeopleNeeded: 1, Status: "open"})
	s.Require().NoError(err)

	ok, err := d.Resolve(s.ctx, incident.ID, time.Now())
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(d.Assign(s.ctx, incident.ID, sec.ID))
	s.Require().NoError(d.Assign(s.ctx, incident.ID, sec.ID))

	found, err := d.FindByID(s.ctx, incident.ID)
	s.Require().NoError(err)
	s.Len(found.Assignments, 1)

	ok, err = d.Resolve(s.ctx, incident.ID, time.Now())
	s.Require().NoError(err)
	s.True(ok)
}

func (s *DAOTestSuite) TestLoginCode_Lifecycle() {
	d := NewLoginCodeDAO(s.db)
	expires := time.Now().Add(10 * time.Minute)

	s.Require().NoError(d.Upsert(s.ctx, LoginCode{Username: "alice", CodeHash: "h1", ExpiresAt: expires}))
	n, err := d.IncrementAttempts(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Require().NoError(d.Upsert(s.ctx, LoginCode{Username: "alice", CodeHash: "h2", ExpiresAt: expires}))
	code, err := d.Find(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("h2", code.CodeHash)
	s.Equal(0, code.Attempts)

	s.Require().NoError(d.Delete(s.ctx, "alice"))
	_, err = d.Find(s.ctx, "alice")
	s.ErrorIs(err, domain.ErrInvalidCredential)
}
