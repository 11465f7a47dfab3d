package services_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	clock      *testClock
	rateSource *MockRateSource
	service    portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.clock = newTestClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	suite.rateSource = new(MockRateSource)
	suite.service = services.NewExchangeRateService(suite.rateSource, "usd",
		services.WithRatesTTL(time.Hour),
		services.WithRatesClock(suite.clock.Now))
}

func sampleRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{"EUR": dec("0.92"), "MXN": dec("17.05")}
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_CachesWithinTTL() {
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(sampleRates(), nil).Once()

	first, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	suite.False(first.Stale)
	suite.Equal("USD", first.Base)

	suite.clock.Advance(59 * time.Minute)
	second, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(first.FetchedAt, second.FetchedAt)
	suite.rateSource.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_RefreshesAfterTTL() {
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(sampleRates(), nil).Twice()

	_, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	suite.clock.Advance(time.Hour)
	snap, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(suite.clock.Now(), snap.FetchedAt)
	suite.rateSource.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_ServesStaleOnFailure() {
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(sampleRates(), nil).Once()
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(nil, errors.New("timeout")).Once()

	_, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	suite.clock.Advance(2 * time.Hour)

	snap, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	suite.True(snap.Stale)
	suite.True(snap.Rates["EUR"].Equal(dec("0.92")))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_UnavailableWithoutCache() {
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(nil, errors.New("timeout")).Once()

	_, err := suite.service.GetRates(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_ConcurrentCallersShareOneFetch() {
	release := make(chan struct{})
	suite.rateSource.On("FetchRates", mock.Anything, "USD").
		Run(func(mock.Arguments) { <-release }).
		Return(sampleRates(), nil).Once()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.GetRates(suite.ctx)
			suite.NoError(err)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	suite.rateSource.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

// blockingRateSource answers once release is closed, or fails when its context ends first.
type blockingRateSource struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingRateSource) FetchRates(ctx context.Context, _ string) (map[string]decimal.Decimal, error) {
	if b.calls.Add(1) == 1 {
		close(b.entered)
	}
	select {
	case <-b.release:
		return sampleRates(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_FirstCallerCancelDoesNotFailOthers() {
	source := &blockingRateSource{entered: make(chan struct{}), release: make(chan struct{})}
	service := services.NewExchangeRateService(source, "usd", services.WithRatesClock(suite.clock.Now))

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = service.GetRates(firstCtx)
	}()
	<-source.entered

	secondErr := make(chan error, 1)
	go func() {
		_, err := service.GetRates(suite.ctx)
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	time.Sleep(20 * time.Millisecond)
	close(source.release)

	suite.NoError(<-secondErr)
	<-firstDone
	suite.Equal(int32(1), source.calls.Load())
}

func (suite *ExchangeRateServiceTestSuite) TestConvert() {
	suite.rateSource.On("FetchRates", mock.Anything, "USD").Return(sampleRates(), nil).Once()

	converted, err := suite.service.Convert(suite.ctx, dec("10.555"), "mxn")
	suite.Require().NoError(err)
	suite.True(converted.Equal(dec("179.96")), converted.String())

	same, err := suite.service.Convert(suite.ctx, dec("10"), "USD")
	suite.Require().NoError(err)
	suite.True(same.Equal(dec("10")))

	_, err = suite.service.Convert(suite.ctx, dec("10"), "XYZ")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
