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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNoPaymentToAdjust       = errors.New("expense has no payment to adjust")
	ErrMissingCorrectionTarget = errors.New("a correction must target the amount or the account")
	ErrPaymentNotPosted        = errors.New("expense payment was never posted to an account")
	ErrRefundExceedsPaid       = errors.New("refund exceeds the paid amount")
)

// adjustmentService implements the AdjustmentSvcFacade interface. Corrections
// never edit ledger history: every money consequence is a new compensating
// entry, and the adjustment row ties the expense, the entries, and the
// before/after payment snapshots together. Postings, expense update and
// adjustment insert land in one storage transaction.
type adjustmentService struct {
	BaseService
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	accountSvc     portssvc.AccountReaderSvc
	publisher      portsevents.EventPublisher
}

// AdjustmentServiceOption is a functional option for configuring the adjustment service
type AdjustmentServiceOption func(*adjustmentService)

// WithAdjustmentEventPublisher sets the event publisher for adjustment events.
func WithAdjustmentEventPublisher(publisher portsevents.EventPublisher) AdjustmentServiceOption {
	return func(s *adjustmentService) {
		s.publisher = publisher
	}
}

// NewAdjustmentService creates a new adjustment service with the provided options
func NewAdjustmentService(
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	options ...AdjustmentServiceOption,
) portssvc.AdjustmentSvcFacade {
	svc := &adjustmentService{
		adjustmentRepo: adjustmentRepo,
		expenseRepo:    expenseRepo,
		accountSvc:     accountSvc,
		publisher:      portsevents.NoopPublisher{},
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure adjustmentService implements the AdjustmentSvcFacade interface
var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// paidExpense fetches the expense and rejects the correction when nothing was
// ever paid against it.
func (s *adjustmentService) paidExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense for adjustment",
				slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	if !expense.HasPayments() {
		return nil, fmt.Errorf("%w: expense %s", ErrNoPaymentToAdjust, expenseID)
	}
	return expense, nil
}

func snapshotOf(expense *domain.Expense) domain.PaymentSnapshot {
	return domain.PaymentSnapshot{
		Amount:        expense.Amount,
		AmountPaid:    expense.AmountPaid,
		PaymentMethod: expense.PaymentMethod,
		AccountID:     expense.PaymentAccountID,
	}
}

// save persists the adjustment atomically with its postings and the expense
// update, then announces it. The repository fills the created entry ids in.
func (s *adjustmentService) save(ctx context.Context, adjustment domain.Adjustment, intents []domain.PostingIntent, updated domain.Expense) (*domain.Adjustment, error) {
	saved, entries, err := s.adjustmentRepo.SaveAdjustment(ctx, adjustment, intents, updated)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to save adjustment",
				slog.String("expense_id", adjustment.ExpenseID),
				slog.String("reason", string(adjustment.Reason)))
		}
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(portsevents.TopicExpenseAdjusted, portsevents.ExpenseAdjustedEvent{
			ExpenseID:       saved.ExpenseID,
			AdjustmentID:    saved.AdjustmentID,
			Reason:          string(saved.Reason),
			AdjustmentDelta: saved.AdjustmentDelta,
			AdjustedAt:      saved.CreatedAt,
		}); err != nil {
			s.LogWarn(ctx, "Failed to publish adjustment event",
				slog.String("adjustment_id", saved.AdjustmentID),
				slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "Adjustment applied",
		slog.String("adjustment_id", saved.AdjustmentID),
		slog.String("expense_id", saved.ExpenseID),
		slog.String("reason", string(saved.Reason)),
		slog.Int("entry_count", len(entries)))
	return saved, nil
}

func (s *adjustmentService) Adjust(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, actor string) (*domain.Adjustment, error) {
	if req.NewAmount == nil && req.NewAccountID == nil {
		return nil, ErrMissingCorrectionTarget
	}

	expense, err := s.paidExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	newAmount := expense.Amount
	if req.NewAmount != nil {
		if req.NewAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: corrected amount must be positive", apperrors.ErrValidation)
		}
		newAmount = *req.NewAmount
	}
	amountChanged := !newAmount.Equal(expense.Amount)

	accountChanged := false
	var newAccount *domain.Account
	if req.NewAccountID != nil {
		if expense.PaymentAccountID == nil {
			return nil, fmt.Errorf("%w: expense %s", ErrPaymentNotPosted, expenseID)
		}
		if *req.NewAccountID != *expense.PaymentAccountID {
			newAccount, err = s.accountSvc.GetAccountByID(ctx, *req.NewAccountID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve corrected account: %w", err)
			}
			if !newAccount.IsActive {
				return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, newAccount.AccountID)
			}
			accountChanged = true
		}
	}

	newMethod := expense.PaymentMethod
	methodChanged := false
	if req.NewPaymentMethod != nil {
		method := domain.PaymentMethod(*req.NewPaymentMethod)
		if !method.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPaymentMethod, method)
		}
		if expense.PaymentMethod == nil || *expense.PaymentMethod != method {
			newMethod = &method
			methodChanged = true
		}
	}

	if !amountChanged && !accountChanged && !methodChanged {
		return nil, fmt.Errorf("%w: the correction changes nothing", apperrors.ErrValidation)
	}

	reason := domain.ReasonAmountCorrection
	switch {
	case amountChanged && accountChanged:
		reason = domain.ReasonBoth
	case accountChanged:
		reason = domain.ReasonAccountCorrection
	}

	now := time.Now().UTC()
	reference := accounting.AdjustmentReference(expenseID)
	intents := make([]domain.PostingIntent, 0, 3)

	// The excess over the corrected amount is refunded to the current account
	// before any account move, so the move only carries what stays paid.
	newPaid := expense.AmountPaid
	if amountChanged && newAmount.LessThan(expense.AmountPaid) {
		excess := expense.AmountPaid.Sub(newAmount)
		if expense.PaymentAccountID == nil {
			return nil, fmt.Errorf("%w: expense %s", ErrPaymentNotPosted, expenseID)
		}
		intents = append(intents, domain.PostingIntent{
			AccountID:   *expense.PaymentAccountID,
			Delta:       excess,
			EntryDate:   now,
			Description: fmt.Sprintf("Adjustment refund: %s", req.Description),
			Reference:   reference,
		})
		newPaid = newAmount
	}

	newAccountID := expense.PaymentAccountID
	if accountChanged {
		// Return the remaining paid amount to the old account and take it from
		// the new one. The debit leg fails when the new account cannot cover
		// it, leaving the expense untouched.
		intents = append(intents,
			domain.PostingIntent{
				AccountID:   *expense.PaymentAccountID,
				Delta:       newPaid,
				EntryDate:   now,
				Description: fmt.Sprintf("Adjustment return: %s", req.Description),
				Reference:   reference,
			},
			domain.PostingIntent{
				AccountID:    newAccount.AccountID,
				Delta:        newPaid.Neg(),
				EntryDate:    now,
				Description:  fmt.Sprintf("Adjustment payment: %s", req.Description),
				Reference:    reference,
				RequireFunds: true,
			},
		)
		newAccountID = &newAccount.AccountID
	}

	delta := decimal.Zero
	for _, intent := range intents {
		delta = delta.Add(intent.Delta)
	}

	updated := *expense
	updated.Amount = newAmount
	updated.AmountPaid = newPaid
	updated.IsPaid = accounting.IsPaid(newAmount, newPaid)
	updated.PaymentMethod = newMethod
	updated.PaymentAccountID = newAccountID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	adjustment := domain.Adjustment{
		AdjustmentID:    uuid.NewString(),
		ExpenseID:       expenseID,
		Reason:          reason,
		Description:     req.Description,
		Previous:        snapshotOf(expense),
		New:             snapshotOf(&updated),
		AdjustmentDelta: delta,
		CreatedAt:       now,
		CreatedBy:       actor,
	}

	return s.save(ctx, adjustment, intents, updated)
}

func (s *adjustmentService) Revert(ctx context.Context, expenseID string, req dto.RevertExpenseRequest, actor string) (*domain.Adjustment, error) {
	expense, err := s.paidExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.PaymentAccountID == nil {
		return nil, fmt.Errorf("%w: expense %s", ErrPaymentNotPosted, expenseID)
	}

	now := time.Now().UTC()
	intents := []domain.PostingIntent{{
		AccountID:   *expense.PaymentAccountID,
		Delta:       expense.AmountPaid,
		EntryDate:   now,
		Description: fmt.Sprintf("Payment reversal: %s", req.Description),
		Reference:   accounting.ReversalReference(expenseID),
	}}

	updated := *expense
	updated.AmountPaid = decimal.Zero
	updated.IsPaid = false
	updated.PaymentMethod = nil
	updated.PaymentAccountID = nil
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	adjustment := domain.Adjustment{
		AdjustmentID:    uuid.NewString(),
		ExpenseID:       expenseID,
		Reason:          domain.ReasonErrorReversal,
		Description:     req.Description,
		Previous:        snapshotOf(expense),
		New:             snapshotOf(&updated),
		AdjustmentDelta: expense.AmountPaid,
		CreatedAt:       now,
		CreatedBy:       actor,
	}

	return s.save(ctx, adjustment, intents, updated)
}

func (s *adjustmentService) PartialRefund(ctx context.Context, expenseID string, req dto.PartialRefundRequest, actor string) (*domain.Adjustment, error) {
	expense, err := s.paidExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: refund amount must be positive", apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(expense.AmountPaid) {
		return nil, fmt.Errorf("%w: refunding %s of a paid %s", ErrRefundExceedsPaid, req.Amount.String(), expense.AmountPaid.String())
	}
	if expense.PaymentAccountID == nil {
		return nil, fmt.Errorf("%w: expense %s", ErrPaymentNotPosted, expenseID)
	}

	now := time.Now().UTC()
	intents := []domain.PostingIntent{{
		AccountID:   *expense.PaymentAccountID,
		Delta:       req.Amount,
		EntryDate:   now,
		Description: fmt.Sprintf("Partial refund: %s", req.Description),
		Reference:   accounting.AdjustmentReference(expenseID),
	}}

	updated := *expense
	updated.AmountPaid = expense.AmountPaid.Sub(req.Amount)
	updated.IsPaid = accounting.IsPaid(updated.Amount, updated.AmountPaid)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	adjustment := domain.Adjustment{
		AdjustmentID:    uuid.NewString(),
		ExpenseID:       expenseID,
		Reason:          domain.ReasonPartialRefund,
		Description:     req.Description,
		Previous:        snapshotOf(expense),
		New:             snapshotOf(&updated),
		AdjustmentDelta: req.Amount,
		CreatedAt:       now,
		CreatedBy:       actor,
	}

	return s.save(ctx, adjustment, intents, updated)
}

func (s *adjustmentService) History(ctx context.Context, expenseID string) ([]domain.Adjustment, error) {
	// Resolve the expense first so callers get NotFound instead of an empty
	// timeline.
	if _, err := s.expenseRepo.FindExpenseByID(ctx, expenseID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense for adjustment history",
				slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.ListAdjustmentsByExpense(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list adjustments",
			slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to list adjustments for expense %s: %w", expenseID, err)
	}
	if adjustments == nil {
		return []domain.Adjustment{}, nil
	}

	s.LogDebug(ctx, "Adjustment history listed",
		slog.String("expense_id", expenseID),
		slog.Int("count", len(adjustments)))
	return adjustments, nil
}
