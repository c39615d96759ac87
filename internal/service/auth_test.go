package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pyramide/event-api/internal/domain"
	clockMocks "github.com/pyramide/event-api/internal/pkg/clock/mocks"
	"github.com/pyramide/event-api/internal/service/mocks"
)

var codeInMessage = regexp.MustCompile(`verification code: (\d+)`)

type AuthServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockAccounts    *mocks.MockAuthAccountRepository
	mockCodes       *mocks.MockLoginCodeRepository
	mockInvitations *mocks.MockAuthInvitations
	mockCapacity    *mocks.MockParticipantRegistrar
	mockSender      *mocks.MockMessageSender
	mockAlerter     *mocks.MockAlerter
	mockClock       *clockMocks.MockClock
	ctx             context.Context

	testTime time.Time
	opts     AuthOptions
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockAccounts = mocks.NewMockAuthAccountRepository(s.mockCtrl)
	s.mockCodes = mocks.NewMockLoginCodeRepository(s.mockCtrl)
	s.mockInvitations = mocks.NewMockAuthInvitations(s.mockCtrl)
	s.mockCapacity = mocks.NewMockParticipantRegistrar(s.mockCtrl)
	s.mockSender = mocks.NewMockMessageSender(s.mockCtrl)
	s.mockAlerter = mocks.NewMockAlerter(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.opts = AuthOptions{
		CodeTTL:     10 * time.Minute,
		CodeLength:  6,
		MaxAttempts: 3,
		SendTimeout: time.Second,
		IsAdmin:     func(u string) bool { return u == "boss" },
	}
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) newService() *AuthService {
	return NewAuthService(
		s.mockAccounts,
		s.mockCodes,
		s.mockInvitations,
		s.mockCapacity,
		s.mockSender,
		s.mockAlerter,
		s.mockClock,
		s.opts,
	)
}

func (s *AuthServiceTestSuite) storedCode(code string, attempts int, expiresAt time.Time) domain.LoginCode {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	s.Require().NoError(err)

	return domain.LoginCode{Username: "alice", CodeHash: string(hash), Attempts: attempts, ExpiresAt: expiresAt}
}

func (s *AuthServiceTestSuite) TestRequestCode_SendsHashedCode() {
	var saved domain.LoginCode
	var sent string
	s.mockCodes.EXPECT().Save(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c domain.LoginCode) error {
			saved = c
			return nil
		})
	s.mockSender.EXPECT().Send(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, text string) error {
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline)
			sent = text
			return nil
		})

	devCode, err := s.newService().RequestCode(s.ctx, "@Alice")
	s.Require().NoError(err)
	s.Empty(devCode)

	s.Equal("alice", saved.Username)
	s.Equal(s.testTime.Add(10*time.Minute), saved.ExpiresAt)

	m := codeInMessage.FindStringSubmatch(sent)
	s.Require().Len(m, 2)
	s.Len(m[1], 6)
	s.NotEqual(m[1], saved.CodeHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(saved.CodeHash), []byte(m[1])))
}

func (s *AuthServiceTestSuite) TestRequestCode_DevFallbackReturnsCode() {
	s.mockCodes.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)
	s.mockSender.EXPECT().Send(gomock.Any(), "alice", gomock.Any()).Return(errors.New("channel down"))

	devCode, err := s.newService().RequestCode(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(devCode, 6)
}

func (s *AuthServiceTestSuite) TestRequestCode_ProductionFailureAlertsOps() {
	s.opts.Production = true
	s.mockCodes.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)
	s.mockSender.EXPECT().Send(gomock.Any(), "alice", gomock.Any()).Return(errors.New("channel down"))
	s.mockAlerter.EXPECT().Alert(s.ctx, gomock.Any()).Return(nil)

	devCode, err := s.newService().RequestCode(s.ctx, "alice")
	s.ErrorIs(err, domain.ErrUpstreamUnavailable)
	s.Empty(devCode)
}

func (s *AuthServiceTestSuite) TestVerifyCode_MissingCode() {
	s.mockCodes.EXPECT().Find(s.ctx, "alice").Return(domain.LoginCode{}, ErrLoginCodeNotFound)

	_, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.ErrorIs(err, domain.ErrInvalidCredential)
}

func (s *AuthServiceTestSuite) TestVerifyCode_ExpiredCodeIsDeleted() {
	s.mockCodes.EXPECT().Find(s.ctx, "alice").Return(s.storedCode("123456", 0, s.testTime.Add(-time.Second)), nil)
	s.mockCodes.EXPECT().Delete(s.ctx, "alice").Return(nil)

	_, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.ErrorIs(err, domain.ErrExpired)
}

func (s *AuthServiceTestSuite) TestVerifyCode_WrongCodeCountsAttempts() {
	stored := s.storedCode("123456", 0, s.testTime.Add(time.Minute))

	s.Run("below the limit", func() {
		s.mockCodes.EXPECT().Find(s.ctx, "alice").Return(stored, nil)
		s.mockCodes.EXPECT().IncrementAttempts(s.ctx, "alice").Return(1, nil)

		_, err := s.newService().VerifyCode(s.ctx, "alice", "000000")
		s.ErrorIs(err, domain.ErrInvalidCredential)
	})

	s.Run("limit reached deletes the code", func() {
		s.mockCodes.EXPECT().Find(s.ctx, "alice").Return(stored, nil)
		s.mockCodes.EXPECT().IncrementAttempts(s.ctx, "alice").Return(3, nil)
		s.mockCodes.EXPECT().Delete(s.ctx, "alice").Return(nil)

		_, err := s.newService().VerifyCode(s.ctx, "alice", "000000")
		s.ErrorIs(err, domain.ErrInvalidCredential)
	})
}

func (s *AuthServiceTestSuite) expectValidCode() {
	s.mockCodes.EXPECT().Find(s.ctx, "alice").Return(s.storedCode("123456", 0, s.testTime.Add(time.Minute)), nil)
	s.mockCodes.EXPECT().Delete(s.ctx, "alice").Return(nil)
}

func (s *AuthServiceTestSuite) TestVerifyCode_InvitedPlaceholderLogsIn() {
	inviterID := uint(1)
	placeholder := domain.Account{ID: 5, Username: "alice", Role: domain.RoleGuest, InvitedBy: &inviterID}

	s.expectValidCode()
	s.mockAccounts.EXPECT().FindByUsername(s.ctx, "alice").Return(placeholder, nil)
	s.mockInvitations.EXPECT().FindByIdentity(s.ctx, "alice").Return(domain.Invitation{Status: domain.InvitationPending}, nil)
	gomock.InOrder(
		s.mockCapacity.EXPECT().Register(s.ctx, placeholder).Return(nil),
		s.mockInvitations.EXPECT().Accept(s.ctx, "alice").Return(true, nil),
	)

	got, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.Require().NoError(err)
	s.Equal(uint(5), got.ID)
	s.True(got.Admitted)
}

func (s *AuthServiceTestSuite) TestVerifyCode_UninvitedGuestIsRejected() {
	s.expectValidCode()
	s.mockAccounts.EXPECT().FindByUsername(s.ctx, "alice").Return(domain.Account{}, ErrAccountNotFound)
	s.mockInvitations.EXPECT().FindByIdentity(s.ctx, "alice").Return(domain.Invitation{}, ErrInvitationNotFound)

	_, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.ErrorIs(err, domain.ErrNotInvited)
}

func (s *AuthServiceTestSuite) TestVerifyCode_CancelledInvitationIsRejected() {
	s.expectValidCode()
	s.mockAccounts.EXPECT().FindByUsername(s.ctx, "alice").Return(domain.Account{ID: 5, Username: "alice", Role: domain.RoleGuest}, nil)
	s.mockInvitations.EXPECT().FindByIdentity(s.ctx, "alice").Return(domain.Invitation{Status: domain.InvitationCancelled}, nil)

	_, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.ErrorIs(err, domain.ErrNotInvited)
}

func (s *AuthServiceTestSuite) TestVerifyCode_BannedAccount() {
	s.expectValidCode()
	s.mockAccounts.EXPECT().FindByUsername(s.ctx, "alice").Return(domain.Account{ID: 5, Username: "alice", IsBanned: true}, nil)

	_, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.ErrorIs(err, domain.ErrBanned)
}

func (s *AuthServiceTestSuite) TestVerifyCode_EventFull() {
	account := domain.Account{ID: 5, Username: "alice", Role: domain.RoleGuest}
	s.expectValidCode()
	s.mockAccounts.EXPECT().FindByUsername(s.ctx, "alice").Return(account, nil)
	s.mockInvitations.EXPECT().FindByIdentity(s.ctx, "alice").Return(domain.Invitation{Status: domain.InvitationAccepted}, nil)
	s.mockCapacity.EXPECT().Register(s.ctx, account).Return(domain.ErrEventFull)

	_, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.ErrorIs(err, domain.ErrEventFull)
}

func (s *AuthServiceTestSuite) TestVerifyCode_EventFullLeavesInvitationPending() {
	inviterID := uint(1)
	s.expectValidCode()
	s.mockAccounts.EXPECT().FindByUsername(s.ctx, "alice").Return(domain.Account{}, ErrAccountNotFound)
	s.mockInvitations.EXPECT().FindByIdentity(s.ctx, "alice").
		Return(domain.Invitation{InviterID: inviterID, InviteeName: "Alice", Status: domain.InvitationPending}, nil)
	s.mockAccounts.EXPECT().Create(s.ctx, domain.Account{
		Username:   "alice",
		ExternalID: "alice",
		FullName:   "Alice",
		Role:       domain.RoleGuest,
		InvitedBy:  &inviterID,
	}).Return(domain.Account{ID: 5, Username: "alice", ExternalID: "alice", Role: domain.RoleGuest}, nil)
	s.mockCapacity.EXPECT().Register(s.ctx, gomock.Any()).Return(domain.ErrEventFull)
	s.mockInvitations.EXPECT().Accept(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.newService().VerifyCode(s.ctx, "alice", "123456")
	s.ErrorIs(err, domain.ErrEventFull)
}

func (s *AuthServiceTestSuite) TestVerifyCode_AdminHandleCreatesAdmin() {
	hash, err := bcrypt.GenerateFromPassword([]byte("654321"), bcrypt.MinCost)
	s.Require().NoError(err)

	s.mockCodes.EXPECT().Find(s.ctx, "boss").Return(domain.LoginCode{Username: "boss", CodeHash: string(hash), ExpiresAt: s.testTime.Add(time.Minute)}, nil)
	s.mockCodes.EXPECT().Delete(s.ctx, "boss").Return(nil)
	s.mockAccounts.EXPECT().FindByUsername(s.ctx, "boss").Return(domain.Account{}, ErrAccountNotFound)
	s.mockAccounts.EXPECT().Create(s.ctx, domain.Account{Username: "boss", ExternalID: "boss", Role: domain.RoleAdmin}).
		Return(domain.Account{ID: 1, Username: "boss", ExternalID: "boss", Role: domain.RoleAdmin}, nil)
	s.mockCapacity.EXPECT().Register(s.ctx, gomock.Any()).Return(nil)
	s.mockInvitations.EXPECT().Accept(s.ctx, "boss").Return(false, nil)

	got, err := s.newService().VerifyCode(s.ctx, "Boss", "654321")
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, got.Role)
	s.False(got.Admitted)
}

func (s *AuthServiceTestSuite) TestVerifyCode_EachAdminHandleGetsItsOwnIdentity() {
	s.opts.IsAdmin = func(u string) bool { return u == "boss" || u == "boss2" }
	hash, err := bcrypt.GenerateFromPassword([]byte("654321"), bcrypt.MinCost)
	s.Require().NoError(err)

	created := map[string]string{}
	for i, handle := range []string{"boss", "boss2"} {
		s.mockCodes.EXPECT().Find(s.ctx, handle).Return(domain.LoginCode{Username: handle, CodeHash: string(hash), ExpiresAt: s.testTime.Add(time.Minute)}, nil)
		s.mockCodes.EXPECT().Delete(s.ctx, handle).Return(nil)
		s.mockAccounts.EXPECT().FindByUsername(s.ctx, handle).Return(domain.Account{}, ErrAccountNotFound)
		id := uint(i + 1)
		s.mockAccounts.EXPECT().Create(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a domain.Account) (domain.Account, error) {
				created[a.Username] = a.ExternalID
				a.ID = id
				return a, nil
			})
		s.mockCapacity.EXPECT().Register(s.ctx, gomock.Any()).Return(nil)
		s.mockInvitations.EXPECT().Accept(s.ctx, handle).Return(false, nil)
	}

	svc := s.newService()
	for _, handle := range []string{"boss", "boss2"} {
		got, err := svc.VerifyCode(s.ctx, handle, "654321")
		s.Require().NoError(err)
		s.Equal(domain.RoleAdmin, got.Role)
	}
	s.Equal(map[string]string{"boss": "boss", "boss2": "boss2"}, created)
}
