package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsevents "github.com/atelierops/shop_ledger_app/internal/core/ports/events"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/atelierops/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// liquidationService implements the LiquidationSvcFacade interface. A
// liquidation is a pure ledger transfer from the operating till to the
// consolidated till; no business transaction row is written, the paired
// entries with their shared LIQ- reference are the record.
type liquidationService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
	publisher  portsevents.EventPublisher
}

// LiquidationServiceOption is a functional option for configuring the liquidation service
type LiquidationServiceOption func(*liquidationService)

// WithLiquidationEventPublisher sets the event publisher for liquidation events.
func WithLiquidationEventPublisher(publisher portsevents.EventPublisher) LiquidationServiceOption {
	return func(s *liquidationService) {
		s.publisher = publisher
	}
}

// NewLiquidationService creates a new liquidation service with the provided options
func NewLiquidationService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	options ...LiquidationServiceOption,
) portssvc.LiquidationSvcFacade {
	svc := &liquidationService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
		publisher:  portsevents.NoopPublisher{},
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure liquidationService implements the LiquidationSvcFacade interface
var _ portssvc.LiquidationSvcFacade = (*liquidationService)(nil)

func (s *liquidationService) Liquidate(ctx context.Context, req dto.CreateLiquidationRequest, actor string) (*domain.LiquidationResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: liquidation amount must be positive", apperrors.ErrValidation)
	}

	source, err := s.accountSvc.GetOrCreateAccount(ctx, req.BranchID, domain.CodeOperatingTill, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve operating till: %w", err)
	}

	// Friendly precheck; the authoritative sufficiency check runs again under
	// the row lock inside the posting.
	if source.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: operating till holds %s, cannot liquidate %s",
			apperrors.ErrInsufficientFunds, source.Balance.String(), req.Amount.String())
	}

	destination, err := s.accountSvc.GetOrCreateAccount(ctx, req.BranchID, domain.CodeConsolidatedTill, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve consolidated till: %w", err)
	}

	now := time.Now().UTC()
	reference := accounting.LiquidationReference(now)
	description := req.Notes
	if description == "" {
		description = "Till liquidation"
	}

	from := domain.PostingIntent{
		AccountID:    source.AccountID,
		Delta:        req.Amount.Neg(),
		EntryDate:    now,
		Description:  description,
		Reference:    reference,
		RequireFunds: true,
	}
	to := domain.PostingIntent{
		AccountID:   destination.AccountID,
		Delta:       req.Amount,
		EntryDate:   now,
		Description: description,
		Reference:   reference,
	}

	entries, err := s.ledgerRepo.PostTransferEntries(ctx, nil, from, to, actor)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to post liquidation",
				slog.String("reference", reference),
				slog.String("amount", req.Amount.String()))
		}
		return nil, err
	}

	result := &domain.LiquidationResult{
		Reference:            reference,
		Amount:               req.Amount,
		SourceAccountID:      source.AccountID,
		DestinationAccountID: destination.AccountID,
		SourceBalance:        entries[0].BalanceAfter,
		DestinationBalance:   entries[1].BalanceAfter,
		SourceEntryID:        entries[0].EntryID,
		DestinationEntryID:   entries[1].EntryID,
		LiquidatedAt:         now,
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(portsevents.TopicLiquidationCompleted, portsevents.LiquidationCompletedEvent{
			Reference:            reference,
			Amount:               req.Amount,
			SourceAccountID:      source.AccountID,
			DestinationAccountID: destination.AccountID,
			LiquidatedAt:         now,
		}); err != nil {
			s.LogWarn(ctx, "Failed to publish liquidation event",
				slog.String("reference", reference),
				slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "Liquidation completed",
		slog.String("reference", reference),
		slog.String("amount", req.Amount.String()),
		slog.String("source_balance", result.SourceBalance.String()),
		slog.String("destination_balance", result.DestinationBalance.String()))
	return result, nil
}

func (s *liquidationService) History(ctx context.Context, req dto.LiquidationHistoryRequest) ([]domain.LiquidationRecord, error) {
	destination, err := s.accountSvc.GetAccountByCode(ctx, req.BranchID, domain.CodeConsolidatedTill)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No consolidated till yet means nothing was ever liquidated.
			return []domain.LiquidationRecord{}, nil
		}
		return nil, fmt.Errorf("failed to resolve consolidated till: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.ledgerRepo.ListLiquidationEntries(ctx, destination.AccountID, req.FromDate, req.ToDate, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list liquidation entries",
			slog.String("account_id", destination.AccountID))
		return nil, fmt.Errorf("failed to list liquidation history: %w", err)
	}

	records := make([]domain.LiquidationRecord, len(entries))
	for i, entry := range entries {
		records[i] = domain.LiquidationRecord{
			EntryID:      entry.EntryID,
			Reference:    entry.Reference,
			Amount:       entry.Amount,
			BalanceAfter: entry.BalanceAfter,
			Notes:        entry.Description,
			LiquidatedAt: entry.EntryDate,
			CreatedBy:    entry.CreatedBy,
		}
	}

	s.LogDebug(ctx, "Liquidation history listed", slog.Int("count", len(records)))
	return records, nil
}
