package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]models.BedRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BedRecord), args.Error(1)
}

func (m *MockStore) Subscribe(fn func([]models.BedRecord)) (func(), error) {
	args := m.Called(fn)
	return func() {}, args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, rec models.BedRecord) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, id string, patch bedstore.BedPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStore) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type BillingServiceTestSuite struct {
	suite.Suite
	mockStore *MockStore
	service   *Service
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockStore = &MockStore{}
	suite.service = NewService(suite.mockStore, nil)
	suite.service.now = func() time.Time {
		return time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	}
	suite.mockStore.Test(suite.T())
}

func (suite *BillingServiceTestSuite) TearDownTest() {
	suite.mockStore.AssertExpectations(suite.T())
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}

func (suite *BillingServiceTestSuite) TestSetRent_Success() {
	ctx := context.Background()
	suite.mockStore.On("List", ctx).Return([]models.BedRecord{{ID: "b1", TenantName: "Ana"}}, nil)
	suite.mockStore.On("Update", ctx, "b1", mock.MatchedBy(func(p bedstore.BedPatch) bool {
		return p.MonthlyRent != nil && *p.MonthlyRent == 5000
	})).Return(nil)

	err := suite.service.SetRent(ctx, "b1", 5000)
	assert.NoError(suite.T(), err)
}

func (suite *BillingServiceTestSuite) TestSetRent_LockedOncePositive() {
	ctx := context.Background()
	suite.mockStore.On("List", ctx).Return([]models.BedRecord{{ID: "b1", MonthlyRent: 4500}}, nil)

	err := suite.service.SetRent(ctx, "b1", 5000)
	assert.ErrorIs(suite.T(), err, ErrRentLocked)
	suite.mockStore.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestSetRent_RejectsNonPositive() {
	err := suite.service.SetRent(context.Background(), "b1", 0)
	assert.ErrorIs(suite.T(), err, ErrInvalidRent)

	err = suite.service.SetRent(context.Background(), "b1", -100)
	assert.ErrorIs(suite.T(), err, ErrInvalidRent)
}

func (suite *BillingServiceTestSuite) TestSetRent_NotFound() {
	ctx := context.Background()
	suite.mockStore.On("List", ctx).Return([]models.BedRecord{}, nil)

	err := suite.service.SetRent(ctx, "missing", 5000)
	assert.ErrorIs(suite.T(), err, bedstore.ErrNotFound)
}

func (suite *BillingServiceTestSuite) TestAddPayment_AppendsSorted() {
	ctx := context.Background()
	rec := models.BedRecord{ID: "b1", Payments: []models.Payment{{Date: "2024-03-01", Amount: 2000}}}
	suite.mockStore.On("List", ctx).Return([]models.BedRecord{rec}, nil)
	suite.mockStore.On("Update", ctx, "b1", mock.MatchedBy(func(p bedstore.BedPatch) bool {
		return len(p.Payments) == 2 &&
			p.Payments[0].Date == "2024-02-10" &&
			p.Payments[1].Date == "2024-03-01"
	})).Return(nil)

	err := suite.service.AddPayment(ctx, "b1", "2024-02-10", 1500)
	assert.NoError(suite.T(), err)
}

func (suite *BillingServiceTestSuite) TestAddPayment_LegacyLedgerMerged() {
	ctx := context.Background()
	// The legacy single figure becomes a payment dated today before the new
	// entry is appended.
	rec := models.BedRecord{ID: "b1", AmountPaid: 3000}
	suite.mockStore.On("List", ctx).Return([]models.BedRecord{rec}, nil)
	suite.mockStore.On("Update", ctx, "b1", mock.MatchedBy(func(p bedstore.BedPatch) bool {
		return len(p.Payments) == 2 &&
			p.Payments[0].Date == "2024-03-15" && p.Payments[0].Amount == 500 &&
			p.Payments[1].Date == "2024-03-20" && p.Payments[1].Amount == 3000
	})).Return(nil)

	err := suite.service.AddPayment(ctx, "b1", "2024-03-15", 500)
	assert.NoError(suite.T(), err)
}

func (suite *BillingServiceTestSuite) TestAddPayment_RejectsNonPositive() {
	err := suite.service.AddPayment(context.Background(), "b1", "2024-03-15", 0)
	assert.ErrorIs(suite.T(), err, ErrInvalidAmount)
}

func (suite *BillingServiceTestSuite) TestAddPayment_RejectsBadDate() {
	err := suite.service.AddPayment(context.Background(), "b1", "03/15/2024", 100)
	assert.ErrorIs(suite.T(), err, ErrInvalidDate)
}

func (suite *BillingServiceTestSuite) TestAddPayment_EmptyDateDefaultsToToday() {
	ctx := context.Background()
	suite.mockStore.On("List", ctx).Return([]models.BedRecord{{ID: "b1"}}, nil)
	suite.mockStore.On("Update", ctx, "b1", mock.MatchedBy(func(p bedstore.BedPatch) bool {
		return len(p.Payments) == 1 && p.Payments[0].Date == "2024-03-20"
	})).Return(nil)

	err := suite.service.AddPayment(ctx, "b1", "", 100)
	assert.NoError(suite.T(), err)
}
