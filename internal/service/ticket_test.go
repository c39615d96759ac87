package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pyramide/event-api/internal/domain"
	clockMocks "github.com/pyramide/event-api/internal/pkg/clock/mocks"
	"github.com/pyramide/event-api/internal/service/mocks"
)

type TicketServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockTickets   *mocks.MockTicketRepository
	mockAccounts  *mocks.MockAccountReader
	mockInvites   *mocks.MockInviteStatsReader
	mockEvent     *mocks.MockEventConfigReader
	mockDiscounts *mocks.MockBarDiscounter
	mockEmitter   *mocks.MockEventEmitter
	mockClock     *clockMocks.MockClock
	service       *TicketService
	ctx           context.Context

	testTime time.Time
	guest    domain.Account
	conf     domain.EventConfig
}

func (s *TicketServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockTickets = mocks.NewMockTicketRepository(s.mockCtrl)
	s.mockAccounts = mocks.NewMockAccountReader(s.mockCtrl)
	s.mockInvites = mocks.NewMockInviteStatsReader(s.mockCtrl)
	s.mockEvent = mocks.NewMockEventConfigReader(s.mockCtrl)
	s.mockDiscounts = mocks.NewMockBarDiscounter(s.mockCtrl)
	s.mockEmitter = mocks.NewMockEventEmitter(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2026, 6, 20, 21, 30, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockEmitter.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.guest = domain.Account{ID: 1, Username: "alice", Role: domain.RoleGuest}
	s.conf = domain.EventConfig{
		Currency:          "USD",
		MaxInvitesPerUser: 5,
		MinTicketPrice:    decimal.NewNullDecimal(decimal.NewFromInt(30)),
		MaxTicketPrice:    decimal.NewNullDecimal(decimal.NewFromInt(50)),
	}

	s.service = NewTicketService(
		s.mockTickets,
		s.mockAccounts,
		s.mockInvites,
		s.mockEvent,
		s.mockDiscounts,
		s.mockEmitter,
		s.mockClock,
	)
}

func (s *TicketServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTicketServiceSuite(t *testing.T) {
	suite.Run(t, new(TicketServiceTestSuite))
}

func (s *TicketServiceTestSuite) TestQuote_ThreeAcceptedOfFive() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvites.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{Accepted: 3, Pending: 1}, nil)

	quote, err := s.service.Quote(s.ctx, s.guest.ID)
	s.Require().NoError(err)
	s.Require().True(quote.Price.Valid)
	s.Equal("38.00", quote.Price.Decimal.StringFixed(2))
	s.Equal("USD", quote.Currency)
	s.Equal(4, quote.Used)
	s.True(quote.Configured)
}

func (s *TicketServiceTestSuite) TestQuote_NoPricingConfigured() {
	s.conf.MinTicketPrice = decimal.NullDecimal{}
	s.conf.MaxTicketPrice = decimal.NullDecimal{}
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvites.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{}, nil)

	quote, err := s.service.Quote(s.ctx, s.guest.ID)
	s.Require().NoError(err)
	s.False(quote.Configured)
	s.False(quote.Price.Valid)
}

func (s *TicketServiceTestSuite) TestGenerate_FreezesPrice() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvites.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{Accepted: 3}, nil)
	s.mockTickets.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, t domain.Ticket) (domain.Ticket, error) {
			t.ID = 11
			return t, nil
		})

	ticket, err := s.service.Generate(s.ctx, s.guest.ID)
	s.Require().NoError(err)
	s.Equal("38.00", ticket.Price.StringFixed(2))
	s.Equal(domain.PaymentUnpaid, ticket.PaymentStatus)
	s.Equal(domain.TierGuest, ticket.Tier)
	s.Len(ticket.Code, 36)
	s.Equal(s.testTime, ticket.IssuedAt)
}

func (s *TicketServiceTestSuite) TestGenerate_StaffTicketIsFree() {
	staff := domain.Account{ID: 3, Username: "sec", Role: domain.RoleSecurity}
	s.mockAccounts.EXPECT().FindByID(s.ctx, staff.ID).Return(staff, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvites.EXPECT().Stats(s.ctx, staff.ID).Return(domain.InviteStats{}, nil)
	s.mockTickets.EXPECT().Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, t domain.Ticket) (domain.Ticket, error) { return t, nil })

	ticket, err := s.service.Generate(s.ctx, staff.ID)
	s.Require().NoError(err)
	s.True(ticket.Price.IsZero())
	s.Equal(domain.PaymentFree, ticket.PaymentStatus)
	s.Equal(domain.TierStaff, ticket.Tier)
}

func (s *TicketServiceTestSuite) TestGenerate_SecondTicketConflicts() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvites.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{}, nil)
	s.mockTickets.EXPECT().Create(s.ctx, gomock.Any()).Return(domain.Ticket{}, domain.ErrTicketExists)

	_, err := s.service.Generate(s.ctx, s.guest.ID)
	s.ErrorIs(err, domain.ErrTicketExists)
}

func (s *TicketServiceTestSuite) expectAdmissionLookups() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil).AnyTimes()
	s.mockInvites.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{Accepted: 2}, nil).AnyTimes()
	s.mockDiscounts.EXPECT().DiscountFor(s.ctx, s.guest.ID).Return(decimal.NewFromInt(10), nil).AnyTimes()
}

func (s *TicketServiceTestSuite) TestVerify_TwiceReportsAlreadyVerified() {
	ticket := domain.Ticket{
		ID:            11,
		AccountID:     s.guest.ID,
		Code:          "c0de",
		Price:         decimal.NewFromInt(38),
		PaymentStatus: domain.PaymentUnpaid,
	}
	verified := ticket
	verified.VerifiedAt = &s.testTime
	inspector := uint(20)

	s.expectAdmissionLookups()
	gomock.InOrder(
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(ticket, nil),
		s.mockTickets.EXPECT().MarkVerified(s.ctx, "c0de", inspector, s.testTime).Return(true, nil),
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(verified, nil),
	)

	first, err := s.service.Verify(s.ctx, inspector, "c0de")
	s.Require().NoError(err)
	s.Equal(domain.ScanVerified, first.Status)
	s.Equal(domain.ColorBlue, first.Color)
	s.Equal("10", first.BarDiscount.String())

	second, err := s.service.Verify(s.ctx, inspector, "c0de")
	s.Require().NoError(err)
	s.Equal(domain.ScanAlreadyVerified, second.Status)
	s.Equal(s.testTime, *second.VerifiedAt)
}

func (s *TicketServiceTestSuite) TestVerify_LostRaceReportsWinner() {
	ticket := domain.Ticket{ID: 11, AccountID: s.guest.ID, Code: "c0de", PaymentStatus: domain.PaymentFree}
	earlier := s.testTime.Add(-time.Second)
	winner := ticket
	winner.VerifiedAt = &earlier

	s.expectAdmissionLookups()
	gomock.InOrder(
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(ticket, nil),
		s.mockTickets.EXPECT().MarkVerified(s.ctx, "c0de", uint(20), s.testTime).Return(false, nil),
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(winner, nil),
	)

	got, err := s.service.Verify(s.ctx, 20, "c0de")
	s.Require().NoError(err)
	s.Equal(domain.ScanAlreadyVerified, got.Status)
	s.Equal(earlier, *got.VerifiedAt)
}

func (s *TicketServiceTestSuite) TestVerify_UnknownCode() {
	s.mockTickets.EXPECT().FindByCode(s.ctx, "nope").Return(domain.Ticket{}, ErrTicketNotFound)

	_, err := s.service.Verify(s.ctx, 20, "nope")
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(err, ErrInvalidTicket)
}

func (s *TicketServiceTestSuite) TestConfirmPayment() {
	unverified := domain.Ticket{ID: 11, AccountID: s.guest.ID, Code: "c0de", Price: decimal.NewFromInt(38), PaymentStatus: domain.PaymentUnpaid}
	verified := unverified
	verified.VerifiedAt = &s.testTime

	s.Run("requires verification", func() {
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(unverified, nil)

		_, err := s.service.ConfirmPayment(s.ctx, "c0de", true)
		s.ErrorIs(err, domain.ErrTicketNotVerified)
	})

	s.Run("free ticket has nothing due", func() {
		free := verified
		free.PaymentStatus = domain.PaymentFree
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(free, nil)

		_, err := s.service.ConfirmPayment(s.ctx, "c0de", true)
		s.ErrorIs(err, domain.ErrNoPaymentDue)
	})

	s.Run("marks paid", func() {
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(verified, nil)
		s.mockTickets.EXPECT().SetPaymentStatus(s.ctx, "c0de", domain.PaymentPaid, &s.testTime).Return(true, nil)

		got, err := s.service.ConfirmPayment(s.ctx, "c0de", true)
		s.Require().NoError(err)
		s.Equal(domain.PaymentPaid, got.PaymentStatus)
		s.Equal(s.testTime, *got.PaidAt)
	})

	s.Run("confirming twice is harmless", func() {
		paid := verified
		paid.PaymentStatus = domain.PaymentPaid
		s.mockTickets.EXPECT().FindByCode(s.ctx, "c0de").Return(paid, nil)
		s.mockTickets.EXPECT().SetPaymentStatus(s.ctx, "c0de", domain.PaymentPaid, gomock.Any()).Return(true, nil)

		got, err := s.service.ConfirmPayment(s.ctx, "c0de", true)
		s.Require().NoError(err)
		s.Equal(domain.PaymentPaid, got.PaymentStatus)
	})
}
