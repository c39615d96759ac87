package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pyramide/event-api/internal/domain"
	clockMocks "github.com/pyramide/event-api/internal/pkg/clock/mocks"
	"github.com/pyramide/event-api/internal/service/mocks"
)

type InvitationServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockInvitations *mocks.MockInvitationRepository
	mockAccounts    *mocks.MockInvitationAccountRepository
	mockEvent       *mocks.MockEventConfigReader
	mockEmitter     *mocks.MockEventEmitter
	mockClock       *clockMocks.MockClock
	service         *InvitationService
	ctx             context.Context

	testTime time.Time
	guest    domain.Account
	admin    domain.Account
	conf     domain.EventConfig
}

func (s *InvitationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockInvitations = mocks.NewMockInvitationRepository(s.mockCtrl)
	s.mockAccounts = mocks.NewMockInvitationAccountRepository(s.mockCtrl)
	s.mockEvent = mocks.NewMockEventConfigReader(s.mockCtrl)
	s.mockEmitter = mocks.NewMockEventEmitter(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockEmitter.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.guest = domain.Account{ID: 1, Username: "alice", Role: domain.RoleGuest}
	s.admin = domain.Account{ID: 2, Username: "boss", Role: domain.RoleAdmin}
	s.conf = domain.EventConfig{Currency: "USD", MaxInvitesPerUser: 5}

	s.service = NewInvitationService(s.mockInvitations, s.mockAccounts, s.mockEvent, s.mockEmitter, s.mockClock)
}

func (s *InvitationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInvitationServiceSuite(t *testing.T) {
	suite.Run(t, new(InvitationServiceTestSuite))
}

func (s *InvitationServiceTestSuite) TestIssue_NormalizesAndStores() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvitations.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{Pending: 2, Accepted: 1}, nil)
	s.mockInvitations.EXPECT().
		Issue(s.ctx, domain.Invitation{
			InviterID:       s.guest.ID,
			InviteeIdentity: "bob",
			InviteeName:     "Bob",
			Status:          domain.InvitationPending,
		}, 5).
		DoAndReturn(func(_ context.Context, inv domain.Invitation, _ int) (domain.Invitation, error) {
			inv.ID = 10
			inv.CreatedAt = s.testTime
			return inv, nil
		})

	got, err := s.service.Issue(s.ctx, s.guest.ID, " @Bob ", "Bob")
	s.Require().NoError(err)
	s.Equal(uint(10), got.ID)
	s.Equal("bob", got.InviteeIdentity)
}

func (s *InvitationServiceTestSuite) TestIssue_SixthInvitationExceedsQuota() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvitations.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{Pending: 3, Accepted: 2, Cancelled: 4}, nil)

	_, err := s.service.Issue(s.ctx, s.guest.ID, "frank", "Frank")
	s.ErrorIs(err, domain.ErrQuotaExceeded)
}

func (s *InvitationServiceTestSuite) TestIssue_StoreQuotaRaceIsReported() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvitations.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{Pending: 4}, nil)
	s.mockInvitations.EXPECT().Issue(s.ctx, gomock.Any(), 5).Return(domain.Invitation{}, domain.ErrQuotaExceeded)

	_, err := s.service.Issue(s.ctx, s.guest.ID, "erin", "Erin")
	s.ErrorIs(err, domain.ErrQuotaExceeded)
}

func (s *InvitationServiceTestSuite) TestIssue_AdminIsUnlimited() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.admin.ID).Return(s.admin, nil)
	s.mockInvitations.EXPECT().Issue(s.ctx, gomock.Any(), -1).Return(domain.Invitation{ID: 99}, nil)

	got, err := s.service.Issue(s.ctx, s.admin.ID, "guest-100", "Guest")
	s.Require().NoError(err)
	s.Equal(uint(99), got.ID)
}

func (s *InvitationServiceTestSuite) TestIssue_NegativeConfiguredQuotaAllowsNothing() {
	s.conf.MaxInvitesPerUser = -1
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvitations.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{}, nil)

	_, err := s.service.Issue(s.ctx, s.guest.ID, "bob", "Bob")
	s.ErrorIs(err, domain.ErrQuotaExceeded)
}

func (s *InvitationServiceTestSuite) TestIssue_BannedInviter() {
	s.guest.IsBanned = true
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)

	_, err := s.service.Issue(s.ctx, s.guest.ID, "bob", "Bob")
	s.ErrorIs(err, domain.ErrBanned)
	s.Equal(domain.KindForbidden, domain.KindOf(err))
}

func (s *InvitationServiceTestSuite) TestIssue_RejectsSelf() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)

	_, err := s.service.Issue(s.ctx, s.guest.ID, "@Alice", "Me")
	s.ErrorIs(err, domain.ErrInviteCycle)
}

func (s *InvitationServiceTestSuite) TestIssue_RejectsAncestor() {
	grandparentID, parentID := uint(30), uint(31)
	s.guest.InvitedBy = &parentID
	parent := domain.Account{ID: parentID, Username: "carol", InvitedBy: &grandparentID}
	grandparent := domain.Account{ID: grandparentID, Username: "dave"}

	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockAccounts.EXPECT().FindByID(s.ctx, parentID).Return(parent, nil)
	s.mockAccounts.EXPECT().FindByID(s.ctx, grandparentID).Return(grandparent, nil)

	_, err := s.service.Issue(s.ctx, s.guest.ID, "dave", "Dave")
	s.ErrorIs(err, domain.ErrInviteCycle)
}

func (s *InvitationServiceTestSuite) TestIssue_DuplicateInvitee() {
	s.mockAccounts.EXPECT().FindByID(s.ctx, s.guest.ID).Return(s.guest, nil)
	s.mockEvent.EXPECT().Get(s.ctx).Return(s.conf, nil)
	s.mockInvitations.EXPECT().Stats(s.ctx, s.guest.ID).Return(domain.InviteStats{}, nil)
	s.mockInvitations.EXPECT().Issue(s.ctx, gomock.Any(), 5).Return(domain.Invitation{}, domain.ErrDuplicateInvitee)

	_, err := s.service.Issue(s.ctx, s.guest.ID, "bob", "Bob")
	s.ErrorIs(err, domain.ErrDuplicateInvitee)
	s.Equal(domain.KindConflict, domain.KindOf(err))
}

func (s *InvitationServiceTestSuite) TestAccept_IsIdempotent() {
	gomock.InOrder(
		s.mockInvitations.EXPECT().Accept(s.ctx, "bob", s.testTime).Return(true, nil),
		s.mockInvitations.EXPECT().Accept(s.ctx, "bob", s.testTime).Return(false, nil),
	)

	changed, err := s.service.Accept(s.ctx, "@BOB")
	s.Require().NoError(err)
	s.True(changed)

	changed, err = s.service.Accept(s.ctx, "bob")
	s.Require().NoError(err)
	s.False(changed)
}

func (s *InvitationServiceTestSuite) TestCancel() {
	pending := domain.Invitation{ID: 7, InviterID: s.guest.ID, Status: domain.InvitationPending}

	s.Run("inviter cancels pending", func() {
		s.mockInvitations.EXPECT().FindByID(s.ctx, uint(7)).Return(pending, nil)
		s.mockInvitations.EXPECT().Cancel(s.ctx, uint(7), s.guest.ID).Return(true, nil)

		s.NoError(s.service.Cancel(s.ctx, 7, s.guest.ID))
	})

	s.Run("someone else", func() {
		s.mockInvitations.EXPECT().FindByID(s.ctx, uint(7)).Return(pending, nil)

		s.ErrorIs(s.service.Cancel(s.ctx, 7, 42), domain.ErrNotCancellable)
	})

	s.Run("already accepted", func() {
		accepted := pending
		accepted.Status = domain.InvitationAccepted
		s.mockInvitations.EXPECT().FindByID(s.ctx, uint(7)).Return(accepted, nil)

		s.ErrorIs(s.service.Cancel(s.ctx, 7, s.guest.ID), domain.ErrNotCancellable)
	})

	s.Run("accepted concurrently", func() {
		s.mockInvitations.EXPECT().FindByID(s.ctx, uint(7)).Return(pending, nil)
		s.mockInvitations.EXPECT().Cancel(s.ctx, uint(7), s.guest.ID).Return(false, nil)

		s.ErrorIs(s.service.Cancel(s.ctx, 7, s.guest.ID), domain.ErrNotCancellable)
	})
}
