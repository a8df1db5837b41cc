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
	"github.com/shopspring/decimal"
)

var (
	ErrZeroPosting         = errors.New("posting delta must be non-zero")
	ErrTransferUnbalanced  = errors.New("transfer legs must cancel to zero")
	ErrTransferSameAccount = errors.New("transfer legs must hit two different accounts")
)

// ledgerService implements the LedgerSvcFacade interface. It owns no logic
// beyond validation and delegation: the repository performs the lock, the
// balance write and the entry insert as one unit of work.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func validateIntent(intent domain.PostingIntent) error {
	if intent.AccountID == "" {
		return fmt.Errorf("%w: posting intent is missing its account", apperrors.ErrValidation)
	}
	if intent.Delta.IsZero() {
		return fmt.Errorf("%w: account %s", ErrZeroPosting, intent.AccountID)
	}
	return nil
}

func (s *ledgerService) Post(ctx context.Context, intent domain.PostingIntent, actor string) (*domain.BalanceEntry, error) {
	if err := validateIntent(intent); err != nil {
		return nil, err
	}
	if intent.EntryDate.IsZero() {
		intent.EntryDate = time.Now().UTC()
	}

	entries, err := s.ledgerRepo.PostEntries(ctx, []domain.PostingIntent{intent}, actor)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to post entry",
				slog.String("account_id", intent.AccountID),
				slog.String("delta", intent.Delta.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Entry posted",
		slog.String("entry_id", entries[0].EntryID),
		slog.String("account_id", intent.AccountID),
		slog.String("delta", intent.Delta.String()),
		slog.String("balance_after", entries[0].BalanceAfter.String()))
	return &entries[0], nil
}

func (s *ledgerService) Transfer(ctx context.Context, from, to domain.PostingIntent, actor string) ([]domain.BalanceEntry, error) {
	if err := validateIntent(from); err != nil {
		return nil, err
	}
	if err := validateIntent(to); err != nil {
		return nil, err
	}
	if from.AccountID == to.AccountID {
		return nil, fmt.Errorf("%w: account %s", ErrTransferSameAccount, from.AccountID)
	}
	if !from.Delta.Add(to.Delta).IsZero() {
		return nil, fmt.Errorf("%w: %s and %s", ErrTransferUnbalanced, from.Delta.String(), to.Delta.String())
	}
	if !from.Delta.IsNegative() {
		return nil, fmt.Errorf("%w: the source leg must carry the negative delta", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if from.EntryDate.IsZero() {
		from.EntryDate = now
	}
	if to.EntryDate.IsZero() {
		to.EntryDate = now
	}

	entries, err := s.ledgerRepo.PostTransferEntries(ctx, nil, from, to, actor)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to post transfer",
				slog.String("from_account_id", from.AccountID),
				slog.String("to_account_id", to.AccountID),
				slog.String("amount", to.Delta.String()))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transfer posted",
		slog.String("from_account_id", from.AccountID),
		slog.String("to_account_id", to.AccountID),
		slog.String("amount", to.Delta.String()))
	return entries, nil
}

func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.BalanceEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) VerifyAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for balance verification",
				slog.String("account_id", accountID))
		}
		return decimal.Zero, decimal.Zero, err
	}

	computed, err := s.ledgerRepo.SumEntriesForAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum entries for balance verification",
			slog.String("account_id", accountID))
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}

	if !account.Balance.Equal(computed) {
		s.LogWarn(ctx, "Cached balance diverges from entry log",
			slog.String("account_id", accountID),
			slog.String("cached", account.Balance.String()),
			slog.String("computed", computed.String()))
	}

	return account.Balance, computed, nil
}
