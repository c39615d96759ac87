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

type BarServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockBar      *mocks.MockBarRepository
	mockInvites  *mocks.MockInviteStatsReader
	mockAccounts *mocks.MockAccountReader
	mockEmitter  *mocks.MockEventEmitter
	mockClock    *clockMocks.MockClock
	service      *BarService
	ctx          context.Context

	beer  domain.BarItem
	chips domain.BarItem
}

func (s *BarServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBar = mocks.NewMockBarRepository(s.mockCtrl)
	s.mockInvites = mocks.NewMockInviteStatsReader(s.mockCtrl)
	s.mockAccounts = mocks.NewMockAccountReader(s.mockCtrl)
	s.mockEmitter = mocks.NewMockEventEmitter(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.mockClock.EXPECT().Now().Return(time.Date(2026, 6, 20, 22, 0, 0, 0, time.UTC)).AnyTimes()
	s.mockEmitter.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.beer = domain.BarItem{ID: 1, Name: "Beer", Price: decimal.RequireFromString("3.50"), IsAvailable: true, Quantity: 10}
	s.chips = domain.BarItem{ID: 2, Name: "Chips", Price: decimal.RequireFromString("2.80"), IsAvailable: true, Quantity: 3}

	s.service = NewBarService(s.mockBar, s.mockInvites, s.mockAccounts, s.mockEmitter, s.mockClock)
}

func (s *BarServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBarServiceSuite(t *testing.T) {
	suite.Run(t, new(BarServiceTestSuite))
}

func echoSale(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	sale.ID = 100
	return sale, nil
}

func (s *BarServiceTestSuite) TestRecordSale_AppliesExplicitDiscount() {
	percent := decimal.NewFromInt(15)
	s.mockBar.EXPECT().FindItems(s.ctx, []uint{1, 2}).Return([]domain.BarItem{s.chips, s.beer}, nil)
	s.mockBar.EXPECT().CommitSale(s.ctx, gomock.Any()).DoAndReturn(echoSale)

	sale, err := s.service.RecordSale(s.ctx, SaleRequest{
		BartenderID:     9,
		Items:           map[uint]int{2: 1, 1: 2},
		DiscountPercent: &percent,
	})
	s.Require().NoError(err)

	// 2 x 3.50 + 1 x 2.80 = 9.80, minus 15% = 8.33
	s.Equal("9.80", sale.Subtotal.StringFixed(2))
	s.Equal("8.33", sale.Actual.StringFixed(2))
	s.Require().Len(sale.Lines, 2)
	s.Equal(uint(1), sale.Lines[0].ItemID)
	s.Equal(uint(2), sale.Lines[1].ItemID)
}

func (s *BarServiceTestSuite) TestRecordSale_UsesCustomerTierDiscount() {
	customerID := uint(4)
	s.mockAccounts.EXPECT().FindByID(s.ctx, customerID).Return(domain.Account{ID: customerID}, nil)
	s.mockBar.EXPECT().PresetDiscount(s.ctx, customerID).Return(nil, nil)
	s.mockInvites.EXPECT().Stats(s.ctx, customerID).Return(domain.InviteStats{Accepted: 3}, nil)
	s.mockBar.EXPECT().ListInviteDiscounts(s.ctx).Return([]domain.InviteDiscount{
		{InviteCount: 1, Percent: decimal.NewFromInt(5)},
		{InviteCount: 3, Percent: decimal.NewFromInt(10)},
		{InviteCount: 5, Percent: decimal.NewFromInt(20)},
	}, nil)
	s.mockBar.EXPECT().FindItems(s.ctx, []uint{1}).Return([]domain.BarItem{s.beer}, nil)
	s.mockBar.EXPECT().CommitSale(s.ctx, gomock.Any()).DoAndReturn(echoSale)

	sale, err := s.service.RecordSale(s.ctx, SaleRequest{
		BartenderID: 9,
		CustomerID:  &customerID,
		Items:       map[uint]int{1: 4},
	})
	s.Require().NoError(err)
	s.Equal("10", sale.DiscountPercent.String())
	s.Equal("14.00", sale.Subtotal.StringFixed(2))
	s.Equal("12.60", sale.Actual.StringFixed(2))
}

func (s *BarServiceTestSuite) TestRecordSale_PresetOverridesTiers() {
	customerID := uint(4)
	preset := decimal.NewFromInt(50)
	s.mockAccounts.EXPECT().FindByID(s.ctx, customerID).Return(domain.Account{ID: customerID}, nil)
	s.mockBar.EXPECT().PresetDiscount(s.ctx, customerID).Return(&preset, nil)
	s.mockBar.EXPECT().FindItems(s.ctx, []uint{2}).Return([]domain.BarItem{s.chips}, nil)
	s.mockBar.EXPECT().CommitSale(s.ctx, gomock.Any()).DoAndReturn(echoSale)

	sale, err := s.service.RecordSale(s.ctx, SaleRequest{
		BartenderID: 9,
		CustomerID:  &customerID,
		Items:       map[uint]int{2: 1},
	})
	s.Require().NoError(err)
	s.Equal("1.40", sale.Actual.StringFixed(2))
}

func (s *BarServiceTestSuite) TestRecordSale_Rejections() {
	s.Run("empty cart", func() {
		_, err := s.service.RecordSale(s.ctx, SaleRequest{BartenderID: 9})
		s.Equal(domain.KindInvalid, domain.KindOf(err))
	})

	s.Run("non positive quantity", func() {
		_, err := s.service.RecordSale(s.ctx, SaleRequest{BartenderID: 9, Items: map[uint]int{1: 0}})
		s.Equal(domain.KindInvalid, domain.KindOf(err))
	})

	s.Run("discount above 100", func() {
		percent := decimal.NewFromInt(120)
		_, err := s.service.RecordSale(s.ctx, SaleRequest{BartenderID: 9, Items: map[uint]int{1: 1}, DiscountPercent: &percent})
		s.Equal(domain.KindInvalid, domain.KindOf(err))
	})

	s.Run("unknown item", func() {
		s.mockBar.EXPECT().FindItems(s.ctx, []uint{77}).Return(nil, nil)

		_, err := s.service.RecordSale(s.ctx, SaleRequest{BartenderID: 9, Items: map[uint]int{77: 1}})
		s.Equal(domain.KindNotFound, domain.KindOf(err))
	})

	s.Run("unavailable item", func() {
		hidden := s.beer
		hidden.IsAvailable = false
		s.mockBar.EXPECT().FindItems(s.ctx, []uint{1}).Return([]domain.BarItem{hidden}, nil)

		_, err := s.service.RecordSale(s.ctx, SaleRequest{BartenderID: 9, Items: map[uint]int{1: 1}})
		s.ErrorIs(err, domain.ErrItemUnavailable)
	})

	s.Run("stock runs out at commit", func() {
		s.mockBar.EXPECT().FindItems(s.ctx, []uint{2}).Return([]domain.BarItem{s.chips}, nil)
		s.mockBar.EXPECT().CommitSale(s.ctx, gomock.Any()).Return(domain.Sale{}, domain.InsufficientStock(2, 4))

		_, err := s.service.RecordSale(s.ctx, SaleRequest{BartenderID: 9, Items: map[uint]int{2: 4}})
		s.ErrorIs(err, domain.ErrInsufficientStock)
	})
}

func (s *BarServiceTestSuite) TestRecordPayout() {
	s.Run("zero amount", func() {
		_, err := s.service.RecordPayout(s.ctx, domain.Payout{BartenderID: 9, Amount: decimal.Zero})
		s.ErrorIs(err, domain.ErrInvalidAmount)
	})

	s.Run("negative amount", func() {
		_, err := s.service.RecordPayout(s.ctx, domain.Payout{BartenderID: 9, Amount: decimal.NewFromInt(-5)})
		s.ErrorIs(err, domain.ErrInvalidAmount)
	})

	s.Run("exceeds outstanding", func() {
		s.mockBar.EXPECT().RecordPayout(s.ctx, gomock.Any()).Return(domain.Payout{}, domain.ErrExceedsOutstanding)

		_, err := s.service.RecordPayout(s.ctx, domain.Payout{BartenderID: 9, Amount: decimal.NewFromInt(70)})
		s.ErrorIs(err, domain.ErrExceedsOutstanding)
	})

	s.Run("rounds to cents", func() {
		s.mockBar.EXPECT().RecordPayout(s.ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p domain.Payout) (domain.Payout, error) {
				p.ID = 1
				return p, nil
			})

		got, err := s.service.RecordPayout(s.ctx, domain.Payout{BartenderID: 9, Amount: decimal.RequireFromString("60.004")})
		s.Require().NoError(err)
		s.Equal("60.00", got.Amount.StringFixed(2))
	})
}

func (s *BarServiceTestSuite) TestBalances_FillsUsernames() {
	s.mockBar.EXPECT().ListBalances(s.ctx).Return([]domain.BartenderBalance{
		{BartenderID: 9, TotalSales: decimal.NewFromInt(100), TotalPayouts: decimal.NewFromInt(40)},
	}, nil)
	s.mockAccounts.EXPECT().FindByID(s.ctx, uint(9)).Return(domain.Account{ID: 9, Username: "barry"}, nil)

	got, err := s.service.Balances(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("barry", got[0].Username)
	s.Equal("60", got[0].Outstanding().String())
}

func (s *BarServiceTestSuite) TestSetInventory_RejectsNegative() {
	err := s.service.SetInventory(s.ctx, 1, -1)
	s.Equal(domain.KindInvalid, domain.KindOf(err))
}

func (s *BarServiceTestSuite) TestCreateItem_StartsAvailable() {
	s.mockBar.EXPECT().CreateItem(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, item domain.BarItem) (domain.BarItem, error) {
			s.True(item.IsAvailable)
			item.ID = 3
			return item, nil
		})

	got, err := s.service.CreateItem(s.ctx, domain.BarItem{Name: "Water", Price: decimal.NewFromInt(1), Quantity: 24})
	s.Require().NoError(err)
	s.Equal(uint(3), got.ID)
}
