package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/handlers"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
)

const testSecret = "handlers-test-secret"

type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	movement  *MockMovementService
	reporting *MockReportingService
	account   *MockAccountService
	userToken string
	adminTok  string
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.movement = new(MockMovementService)
	s.reporting = new(MockReportingService)
	s.account = new(MockAccountService)

	container := &portssvc.ServiceContainer{
		Movement:  s.movement,
		Reporting: s.reporting,
		Account:   s.account,
	}
	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{JWTSecret: testSecret, IsProduction: true}, container)

	s.userToken = s.signToken("owner-1", domain.RoleUser)
	s.adminTok = s.signToken("admin-1", domain.RoleAdmin)
}

func (s *HandlersTestSuite) TearDownTest() {
	s.movement.AssertExpectations(s.T())
	s.reporting.AssertExpectations(s.T())
	s.account.AssertExpectations(s.T())
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) signToken(subject string, role domain.Role) string {
	claims := middleware.Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(s.T(), err)
	return signed
}

func (s *HandlersTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, handlers.APIBasePath+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func sampleTransfer() domain.Transaction {
	dest := "acc-2"
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.Transaction{
		TransactionID:        "txn-1",
		SourceAccountID:      "acc-1",
		DestinationAccountID: &dest,
		Kind:                 domain.KindTransfer,
		Amount:               decimal.RequireFromString("300.50"),
		Status:               domain.StatusCompleted,
		AuditFields:          domain.AuditFields{CreatedAt: now, CreatedBy: "owner-1", LastUpdatedAt: now, LastUpdatedBy: "owner-1"},
	}
}

var userCaller = domain.Caller{OwnerID: "owner-1", Role: domain.RoleUser}
var adminCaller = domain.Caller{OwnerID: "admin-1", Role: domain.RoleAdmin}

func (s *HandlersTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "OK", w.Body.String())
}

func (s *HandlersTestSuite) TestTransfer_Created() {
	txn := sampleTransfer()
	s.movement.On("Transfer", mock.Anything, userCaller, mock.MatchedBy(func(req dto.TransferRequest) bool {
		return req.FromAccountNumber == "1000000001" &&
			req.ToAccountNumber == "1000000002" &&
			req.Amount.Equal(decimal.RequireFromString("300.50"))
	})).Return(&txn, nil).Once()

	w := s.do(http.MethodPost, "/transactions/transfer", s.userToken, map[string]any{
		"fromAccountNumber": "1000000001",
		"toAccountNumber":   "1000000002",
		"amount":            "300.50",
	})

	require.Equal(s.T(), http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "txn-1", resp.TransactionID)
	assert.Equal(s.T(), domain.KindTransfer, resp.Kind)
	assert.True(s.T(), resp.Amount.Equal(decimal.RequireFromString("300.5")))
	require.NotNil(s.T(), resp.DestinationAccountID)
	assert.Equal(s.T(), "acc-2", *resp.DestinationAccountID)
}

func (s *HandlersTestSuite) TestTransfer_ServiceErrorsMapToStatus() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"insufficient funds", fmt.Errorf("%w: balance too low", apperrors.ErrInsufficientFunds), http.StatusUnprocessableEntity},
		{"daily limit", fmt.Errorf("%w: daily limit reached", apperrors.ErrLimitExceeded), http.StatusUnprocessableEntity},
		{"unknown destination", fmt.Errorf("%w: account 1000000002", apperrors.ErrNotFound), http.StatusNotFound},
		{"inactive account", fmt.Errorf("%w: account inactive", apperrors.ErrInvalidState), http.StatusConflict},
		{"not the owner", fmt.Errorf("%w: not your account", apperrors.ErrForbidden), http.StatusForbidden},
		{"same account", fmt.Errorf("%w: same account", apperrors.ErrValidation), http.StatusBadRequest},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.movement.On("Transfer", mock.Anything, userCaller, mock.Anything).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/transactions/transfer", s.userToken, map[string]any{
				"fromAccountNumber": "1000000001",
				"toAccountNumber":   "1000000002",
				"amount":            "10",
			})

			assert.Equal(s.T(), tt.status, w.Code)
			assert.Equal(s.T(), tt.err.Error(), errorBody(s.T(), w))
		})
	}
}

func (s *HandlersTestSuite) TestTransfer_InternalErrorHidesMessage() {
	s.movement.On("Transfer", mock.Anything, userCaller, mock.Anything).
		Return(nil, fmt.Errorf("pq: connection reset by peer")).Once()

	w := s.do(http.MethodPost, "/transactions/transfer", s.userToken, map[string]any{
		"fromAccountNumber": "1000000001",
		"toAccountNumber":   "1000000002",
		"amount":            "10",
	})

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(s.T(), "Failed to transfer", errorBody(s.T(), w))
}

func (s *HandlersTestSuite) TestTransfer_InvalidBodyNeverReachesService() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"three decimals", map[string]any{"fromAccountNumber": "1000000001", "toAccountNumber": "1000000002", "amount": "10.005"}},
		{"zero amount", map[string]any{"fromAccountNumber": "1000000001", "toAccountNumber": "1000000002", "amount": "0"}},
		{"negative amount", map[string]any{"fromAccountNumber": "1000000001", "toAccountNumber": "1000000002", "amount": "-5"}},
		{"short account number", map[string]any{"fromAccountNumber": "12345", "toAccountNumber": "1000000002", "amount": "10"}},
		{"letters in account number", map[string]any{"fromAccountNumber": "10000000ab", "toAccountNumber": "1000000002", "amount": "10"}},
		{"missing destination", map[string]any{"fromAccountNumber": "1000000001", "amount": "10"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/transactions/transfer", s.userToken, tt.body)
			assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		})
	}
	s.movement.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestAuth_MissingOrInvalidToken() {
	w := s.do(http.MethodPost, "/transactions/transfer", "", map[string]any{})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/transactions/transfer", "not-a-jwt", map[string]any{})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	claims := middleware.Claims{
		Role:             string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{Subject: "owner-1"},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(s.T(), err)
	w = s.do(http.MethodPost, "/transactions/transfer", forged, map[string]any{})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestAuth_UnknownRoleForbidden() {
	token := s.signToken("owner-1", domain.Role("GUEST"))
	w := s.do(http.MethodGet, "/accounts/me", token, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestDeposit_AdminOnly() {
	w := s.do(http.MethodPost, "/transactions/deposit", s.userToken, map[string]any{
		"toAccountNumber": "1000000002",
		"amount":          "100",
	})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	s.movement.AssertNotCalled(s.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestDeposit_Created() {
	txn := sampleTransfer()
	txn.Kind = domain.KindDeposit
	s.movement.On("Deposit", mock.Anything, adminCaller, mock.MatchedBy(func(req dto.DepositRequest) bool {
		return req.ToAccountNumber == "1000000002" && req.Amount.Equal(decimal.NewFromInt(100))
	})).Return(&txn, nil).Once()

	w := s.do(http.MethodPost, "/transactions/deposit", s.adminTok, map[string]any{
		"toAccountNumber": "1000000002",
		"amount":          100,
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
}

func (s *HandlersTestSuite) TestReverseDeposit() {
	s.Run("window expired", func() {
		s.movement.On("ReverseDeposit", mock.Anything, adminCaller, "txn-old").
			Return(nil, fmt.Errorf("%w: deposit older than 1m0s", apperrors.ErrWindowExpired)).Once()

		w := s.do(http.MethodPost, "/transactions/deposit/txn-old/reverse", s.adminTok, nil)
		assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("already reversed", func() {
		s.movement.On("ReverseDeposit", mock.Anything, adminCaller, "txn-rev").
			Return(nil, fmt.Errorf("%w: deposit already reversed", apperrors.ErrInvalidState)).Once()

		w := s.do(http.MethodPost, "/transactions/deposit/txn-rev/reverse", s.adminTok, nil)
		assert.Equal(s.T(), http.StatusConflict, w.Code)
	})

	s.Run("reversed", func() {
		txn := sampleTransfer()
		txn.Kind = domain.KindDeposit
		txn.Status = domain.StatusReversed
		change := &domain.BalanceChange{Transaction: txn, AccountID: "acc-2", NewBalance: decimal.NewFromInt(50)}
		s.movement.On("ReverseDeposit", mock.Anything, adminCaller, "txn-1").Return(change, nil).Once()

		w := s.do(http.MethodPost, "/transactions/deposit/txn-1/reverse", s.adminTok, nil)
		assert.Equal(s.T(), http.StatusOK, w.Code)
	})
}

func (s *HandlersTestSuite) TestRecentMovements_PassesLimit() {
	txns := []domain.Transaction{sampleTransfer()}
	s.reporting.On("RecentMovements", mock.Anything, userCaller, "acc-1", 3).Return(txns, nil).Once()

	w := s.do(http.MethodGet, "/transactions/accounts/acc-1/recent?limit=3", s.userToken, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var resp []dto.TransactionResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(s.T(), resp, 1)
}

func (s *HandlersTestSuite) TestRecentMovements_LimitOutOfRange() {
	w := s.do(http.MethodGet, "/transactions/accounts/acc-1/recent?limit=500", s.userToken, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestTopAccounts_AdminOnly() {
	w := s.do(http.MethodGet, "/transactions/top-accounts", s.userToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	s.reporting.On("TopAccounts", mock.Anything, adminCaller).Return([]domain.TopAccount{}, nil).Once()
	w = s.do(http.MethodGet, "/transactions/top-accounts", s.adminTok, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestGetMyAccount_NotFound() {
	s.account.On("GetMyAccount", mock.Anything, userCaller).
		Return(nil, fmt.Errorf("%w: no account for owner-1", apperrors.ErrNotFound)).Once()

	w := s.do(http.MethodGet, "/accounts/me", s.userToken, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestExchangeRates_NotConfigured() {
	w := s.do(http.MethodGet, "/exchange-rates", s.userToken, nil)
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodGet, "/exchange-rates/convert?amount=10&currency=USD", s.userToken, nil)
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}

// Exchange rate and favorite routes with configured services.
func TestConfiguredOptionalServices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rates := new(MockExchangeRateService)
	favorites := new(MockFavoriteService)
	router := gin.New()
	handlers.RegisterRoutes(router, &config.Config{JWTSecret: testSecret, IsProduction: true}, &portssvc.ServiceContainer{
		ExchangeRate: rates,
		Favorite:     favorites,
	})

	claims := middleware.Claims{
		Role: string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "owner-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rates.On("Convert", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(100))
	}), "USD").Return(decimal.RequireFromString("12.85"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, handlers.APIBasePath+"/exchange-rates/convert?amount=100&currency=USD", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"currency":"USD"`)

	favorites.On("RemoveFavorite", mock.Anything, userCaller, "fav-1").Return(nil).Once()
	req = httptest.NewRequest(http.MethodDelete, handlers.APIBasePath+"/favorites/fav-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	favorites.On("IsFavorite", mock.Anything, userCaller, "1000000002").
		Return(&domain.Favorite{FavoriteID: "fav-2", AccountNumber: "1000000002", Alias: "bob"}, true, nil).Once()
	req = httptest.NewRequest(http.MethodGet, handlers.APIBasePath+"/favorites/check/1000000002", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var check dto.FavoriteCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.True(t, check.IsFavorite)
	require.NotNil(t, check.Favorite)
	assert.Equal(t, "fav-2", check.Favorite.FavoriteID)

	req = httptest.NewRequest(http.MethodGet, handlers.APIBasePath+"/favorites/search", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	rates.AssertExpectations(t)
	favorites.AssertExpectations(t)
}
