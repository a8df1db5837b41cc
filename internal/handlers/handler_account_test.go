package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	mocks  *serviceMocks
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	container, mocks := newServiceMocks()
	suite.mocks = mocks
	suite.router = newTestRouter(container, "")
}

func (suite *AccountHandlerTestSuite) doJSON(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.T(), userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Code: "1105",
		Name: "Petty Cash",
		Kind: domain.CurrentAsset,
	}
	expected := &domain.Account{
		AccountID: uuid.NewString(),
		Code:      "1105",
		Name:      "Petty Cash",
		Kind:      domain.CurrentAsset,
		Balance:   decimal.Zero,
		IsActive:  true,
	}

	suite.mocks.Account.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Code == "1105" && r.Kind == domain.CurrentAsset
		}),
		userID, // Expect the user ID from the token
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", reqBody, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.AccountID, resp.AccountID)
	suite.Equal("1105", resp.Code)
	suite.True(resp.IsActive)
	suite.mocks.Account.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	userID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		Code: "1101",
		Name: "Another Till",
		Kind: domain.CurrentAsset,
	}

	suite.mocks.Account.On("CreateAccount",
		mock.AnythingOfType("*context.valueCtx"), mock.Anything, userID,
	).Return(nil, fmt.Errorf("code 1101 taken: %w", apperrors.ErrDuplicate)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", reqBody, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mocks.Account.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingToken() {
	reqBody := dto.CreateAccountRequest{
		Code: "1105",
		Name: "Petty Cash",
		Kind: domain.CurrentAsset,
	}
	raw, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mocks.Account.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mocks.Account.On("GetAccountByID",
		mock.AnythingOfType("*context.valueCtx"), accountID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/"+accountID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mocks.Account.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	userID := uuid.NewString()
	expected := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1101", Name: "Operating till", Kind: domain.CurrentAsset, Balance: decimal.NewFromInt(500), IsActive: true},
		{AccountID: uuid.NewString(), Code: "1102", Name: "Consolidated till", Kind: domain.CurrentAsset, Balance: decimal.NewFromInt(12000), IsActive: true},
	}

	suite.mocks.Account.On("ListAccounts",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(p dto.ListAccountsParams) bool {
			return p.Limit == 10 && !p.IncludeInactive
		}),
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts?limit=10", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.Equal("1101", resp.Accounts[0].Code)
	suite.mocks.Account.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestEnsureDefaultAccounts_Success() {
	userID := uuid.NewString()
	expected := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1101", Name: "Operating till", Kind: domain.CurrentAsset, IsActive: true},
		{AccountID: uuid.NewString(), Code: "1102", Name: "Consolidated till", Kind: domain.CurrentAsset, IsActive: true},
		{AccountID: uuid.NewString(), Code: "1103", Name: "Mobile wallet", Kind: domain.CurrentAsset, IsActive: true},
		{AccountID: uuid.NewString(), Code: "1104", Name: "Bank account", Kind: domain.CurrentAsset, IsActive: true},
	}

	suite.mocks.Account.On("EnsureDefaultAccounts",
		mock.AnythingOfType("*context.valueCtx"), userID,
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/accounts/defaults", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 4)
	suite.mocks.Account.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mocks.Account.On("DeactivateAccount",
		mock.AnythingOfType("*context.valueCtx"), accountID, userID,
	).Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mocks.Account.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccountEntries_Success() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	expected := []domain.BalanceEntry{
		{
			EntryID:      uuid.NewString(),
			AccountID:    accountID,
			EntryDate:    time.Now(),
			Amount:       decimal.NewFromInt(150),
			BalanceAfter: decimal.NewFromInt(650),
			Description:  "Sale income (cash)",
		},
	}

	suite.mocks.Account.On("ListAccountEntries",
		mock.AnythingOfType("*context.valueCtx"), accountID, 50, (*string)(nil),
	).Return(expected, "", nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/"+accountID+"/entries", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Equal(expected[0].EntryID, resp.Entries[0].EntryID)
	suite.Empty(resp.NextToken)
	suite.mocks.Account.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestVerifyAccountBalance_Consistent() {
	userID := uuid.NewString()
	accountID := uuid.NewString()
	balance := decimal.NewFromFloat(1234.56)

	suite.mocks.Ledger.On("VerifyAccountBalance",
		mock.AnythingOfType("*context.valueCtx"), accountID,
	).Return(balance, balance, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/"+accountID+"/verification", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceVerificationResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Consistent)
	suite.True(resp.CachedBalance.Equal(resp.ComputedBalance))
	suite.mocks.Ledger.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestVerifyAccountBalance_Mismatch() {
	userID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mocks.Ledger.On("VerifyAccountBalance",
		mock.AnythingOfType("*context.valueCtx"), accountID,
	).Return(decimal.NewFromInt(100), decimal.NewFromInt(90), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/"+accountID+"/verification", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceVerificationResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Consistent)
	suite.mocks.Ledger.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
