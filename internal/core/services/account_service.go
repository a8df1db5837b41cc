package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultAccounts is the fixed set every deployment bootstraps. All four are
// liquid global accounts; branch-scoped variants are created on first use.
var defaultAccounts = []struct {
	Code string
	Name string
}{
	{domain.CodeOperatingTill, "Operating till"},
	{domain.CodeConsolidatedTill, "Consolidated till"},
	{domain.CodeMobileWallet, "Mobile wallet"},
	{domain.CodeBank, "Bank account"},
}

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithLedgerRepository adds the ledger repository dependency, used for entry
// listing and opening-balance postings.
func WithLedgerRepository(repo portsrepo.LedgerRepositoryFacade) ServiceOption {
	return func(s *accountService) {
		s.ledgerRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// defaultAccountName returns the well-known name for a default code, or a
// generic one for codes outside the fixed set.
func defaultAccountName(code string) string {
	for _, def := range defaultAccounts {
		if def.Code == code {
			return def.Name
		}
	}
	return fmt.Sprintf("Account %s", code)
}

// validateKindPayloads checks that the kind-specific payloads match the
// account kind: exactly the payload the kind calls for, nothing else.
func validateKindPayloads(kind domain.AccountKind, fixedAsset *dto.FixedAssetPayload, liability *dto.LiabilityPayload) error {
	switch kind {
	case domain.FixedAsset:
		if fixedAsset == nil {
			return fmt.Errorf("%w: fixed asset payload is required for kind %s", apperrors.ErrValidation, kind)
		}
		if liability != nil {
			return fmt.Errorf("%w: liability payload is not allowed for kind %s", apperrors.ErrValidation, kind)
		}
	case domain.CurrentLiability, domain.LongTermLiability:
		if liability == nil {
			return fmt.Errorf("%w: liability payload is required for kind %s", apperrors.ErrValidation, kind)
		}
		if fixedAsset != nil {
			return fmt.Errorf("%w: fixed asset payload is not allowed for kind %s", apperrors.ErrValidation, kind)
		}
	case domain.CurrentAsset:
		if fixedAsset != nil || liability != nil {
			return fmt.Errorf("%w: kind %s carries no payload", apperrors.ErrValidation, kind)
		}
	default:
		return fmt.Errorf("%w: unknown account kind %s", apperrors.ErrValidation, kind)
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := validateKindPayloads(req.Kind, req.FixedAsset, req.Liability); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		BranchID:  req.BranchID,
		Code:      req.Code,
		Name:      req.Name,
		Kind:      req.Kind,
		Balance:   decimal.Zero,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.FixedAsset != nil {
		account.FixedAsset = &domain.FixedAssetDetail{
			OriginalValue:           req.FixedAsset.OriginalValue,
			AccumulatedDepreciation: req.FixedAsset.AccumulatedDepreciation,
		}
	}
	if req.Liability != nil {
		account.Liability = &domain.LiabilityDetail{
			Creditor:     req.Liability.Creditor,
			InterestRate: req.Liability.InterestRate,
			DueDate:      req.Liability.DueDate,
		}
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists in scope", apperrors.ErrDuplicate, req.Code)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("code", account.Code))
		return nil, err
	}

	// A non-zero opening balance flows through the poster so the entry log
	// stays authoritative from the account's first day.
	if req.OpeningBalance != nil && !req.OpeningBalance.IsZero() {
		if s.ledgerRepo == nil {
			err := apperrors.NewInternalServerError("ledger repository not configured for opening balance posting", nil)
			s.LogError(ctx, err, "Cannot post opening balance", slog.String("account_id", account.AccountID))
			return nil, err
		}
		intent := domain.PostingIntent{
			AccountID:   account.AccountID,
			Delta:       *req.OpeningBalance,
			EntryDate:   now,
			Description: "Opening balance",
		}
		entries, err := s.ledgerRepo.PostEntries(ctx, []domain.PostingIntent{intent}, creatorUserID)
		if err != nil {
			s.LogError(ctx, err, "Failed to post opening balance",
				slog.String("account_id", account.AccountID))
			return nil, fmt.Errorf("failed to post opening balance: %w", err)
		}
		account.Balance = entries[0].BalanceAfter
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("kind", string(account.Kind)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}

	s.LogDebug(ctx, "Account retrieved successfully",
		slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, branchID *string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, branchID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code",
				slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.AccountListFilter{
		BranchID:        params.BranchID,
		IncludeInactive: params.IncludeInactive,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	if params.Kind != nil {
		kind := domain.AccountKind(*params.Kind)
		switch kind {
		case domain.CurrentAsset, domain.FixedAsset, domain.CurrentLiability, domain.LongTermLiability:
			filter.Kind = &kind
		default:
			return nil, fmt.Errorf("%w: unknown account kind %s", apperrors.ErrValidation, *params.Kind)
		}
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", filter.Limit),
			slog.Int("offset", filter.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}

	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) ListLiquidAccounts(ctx context.Context, branchID *string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListLiquidAccounts(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list liquid accounts")
		return nil, fmt.Errorf("failed to list liquid accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) ListAccountEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.BalanceEntry, string, error) {
	// Resolve the account first so callers get NotFound instead of an empty page.
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return nil, "", err
	}

	if limit <= 0 {
		limit = 50
	}

	entries, next, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entries",
			slog.String("account_id", accountID))
		return nil, "", fmt.Errorf("failed to list entries for account %s: %w", accountID, err)
	}

	s.LogDebug(ctx, "Account entries listed successfully",
		slog.String("account_id", accountID),
		slog.Int("count", len(entries)))
	return entries, next, nil
}

func (s *accountService) UpdateAccountDetails(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err // GetAccountByID already logs errors
	}

	// Apply updates
	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.FixedAsset != nil {
		if account.Kind != domain.FixedAsset {
			return nil, fmt.Errorf("%w: fixed asset payload is not allowed for kind %s", apperrors.ErrValidation, account.Kind)
		}
		account.FixedAsset = &domain.FixedAssetDetail{
			OriginalValue:           req.FixedAsset.OriginalValue,
			AccumulatedDepreciation: req.FixedAsset.AccumulatedDepreciation,
		}
		updated = true
	}
	if req.Liability != nil {
		if !account.IsLiability() {
			return nil, fmt.Errorf("%w: liability payload is not allowed for kind %s", apperrors.ErrValidation, account.Kind)
		}
		account.Liability = &domain.LiabilityDetail{
			Creditor:     req.Liability.Creditor,
			InterestRate: req.Liability.InterestRate,
			DueDate:      req.Liability.DueDate,
		}
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err // GetAccountByID already logs errors
	}

	// Money parked on a deactivated account would be unreachable by postings,
	// so require it to be moved out first.
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %s still holds a balance of %s", apperrors.ErrValidation, accountID, account.Balance.String())
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.String("account_id", accountID))
	return nil
}

// GetOrCreateAccount resolves the account with the given scope and code,
// creating it zero-balanced when missing. The upsert guarantees concurrent
// callers converge on a single row.
func (s *accountService) GetOrCreateAccount(ctx context.Context, branchID *string, code string, actor string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, branchID, code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up account by code", slog.String("code", code))
		return nil, err
	}

	now := time.Now().UTC()
	candidate := domain.Account{
		AccountID: uuid.NewString(),
		BranchID:  branchID,
		Code:      code,
		Name:      defaultAccountName(code),
		Kind:      domain.CurrentAsset,
		Balance:   decimal.Zero,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	created, err := s.accountRepo.UpsertAccountByCode(ctx, candidate)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert account by code", slog.String("code", code))
		return nil, fmt.Errorf("failed to get or create account %s: %w", code, err)
	}

	if created.AccountID == candidate.AccountID {
		s.LogInfo(ctx, "Account bootstrapped",
			slog.String("account_id", created.AccountID),
			slog.String("code", code))
	}
	return created, nil
}

// EnsureDefaultAccounts bootstraps the fixed default set of global accounts.
func (s *accountService) EnsureDefaultAccounts(ctx context.Context, actor string) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(defaultAccounts))
	for _, def := range defaultAccounts {
		account, err := s.GetOrCreateAccount(ctx, nil, def.Code, actor)
		if err != nil {
			return nil, fmt.Errorf("failed to ensure default account %s: %w", def.Code, err)
		}
		accounts = append(accounts, *account)
	}

	s.LogInfo(ctx, "Default accounts ensured", slog.Int("count", len(accounts)))
	return accounts, nil
}
