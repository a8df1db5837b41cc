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
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// transactionService implements the TransactionSvcFacade interface. It records
// business financial events and drives their postings: record first, post
// second, and treat a posting failure as a reconciliation item rather than a
// failed payment.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	registry        portssvc.AccountRegistrySvc
	publisher       portsevents.EventPublisher
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionEventPublisher sets the event publisher for posting lifecycle events.
func WithTransactionEventPublisher(publisher portsevents.EventPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.publisher = publisher
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	registry portssvc.AccountRegistrySvc,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		transactionRepo: transactionRepo,
		ledgerRepo:      ledgerRepo,
		registry:        registry,
		publisher:       portsevents.NoopPublisher{},
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// publish sends an event and logs instead of failing: by the time an event
// goes out the money state is already durable.
func (s *transactionService) publish(ctx context.Context, topic string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(topic, event); err != nil {
		s.LogWarn(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
	}
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	filter := portsrepo.TransactionListFilter{
		BranchID:     params.BranchID,
		UnpostedOnly: params.UnpostedOnly,
		Limit:        params.Limit,
		NextToken:    params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.Type != nil {
		txnType := domain.TransactionType(*params.Type)
		switch txnType {
		case domain.TransactionIncome, domain.TransactionExpense, domain.TransactionTransfer:
			filter.Type = &txnType
		default:
			return nil, "", fmt.Errorf("%w: unknown transaction type %s", apperrors.ErrValidation, *params.Type)
		}
	}
	if params.SourceType != nil {
		sourceType := domain.SourceType(*params.SourceType)
		filter.SourceType = &sourceType
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}

	s.LogDebug(ctx, "Transactions listed successfully", slog.Int("count", len(txns)))
	return txns, nextToken, nil
}

func (s *transactionService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.PostingResult, error) {
	if req.Type != domain.TransactionIncome && req.Type != domain.TransactionExpense {
		return nil, fmt.Errorf("%w: type must be income or expense, got %s", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPaymentMethod, req.PaymentMethod)
	}

	now := time.Now().UTC()
	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = domain.SourceManual
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BranchID:      req.BranchID,
		Type:          req.Type,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		Category:      req.Category,
		SourceType:    sourceType,
		SourceID:      req.SourceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	// The business event is durable before any posting attempt; a posting
	// failure must never void a payment that already happened.
	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	code, routable := RouteForPaymentMethod(txn.PaymentMethod)
	if !routable {
		s.LogInfo(ctx, "Posting skipped for deferred payment method",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("payment_method", string(txn.PaymentMethod)))
		return &domain.PostingResult{Transaction: txn, Outcome: domain.OutcomeSkippedDeferred}, nil
	}

	entryDate := now
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entry, account, err := s.postRecorded(ctx, &txn, code, entryDate, actor)
	if err != nil {
		// Recorded but not posted: surface as a reconciliation item, not as a
		// failed request.
		s.LogError(ctx, err, "Transaction recorded but ledger posting failed",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("account_code", code))
		s.publish(ctx, portsevents.TopicPostingFailed, portsevents.PostingFailedEvent{
			TransactionID: txn.TransactionID,
			AccountCode:   code,
			Reason:        err.Error(),
			FailedAt:      time.Now().UTC(),
		})
		return &domain.PostingResult{Transaction: txn, Outcome: domain.OutcomePostingFailed}, nil
	}

	txn.PostedAccountID = &account.AccountID
	s.publish(ctx, portsevents.TopicTransactionPosted, portsevents.TransactionPostedEvent{
		TransactionID: txn.TransactionID,
		AccountID:     account.AccountID,
		EntryID:       entry.EntryID,
		Amount:        entry.Amount,
		BalanceAfter:  entry.BalanceAfter,
		PostedAt:      entry.CreatedAt,
	})

	s.LogInfo(ctx, "Transaction recorded and posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", account.AccountID),
		slog.String("entry_id", entry.EntryID))
	return &domain.PostingResult{Transaction: txn, Entry: entry, Outcome: domain.OutcomePosted}, nil
}

// postRecorded resolves the target account and posts the ledger side of an
// already-saved transaction. The posting stamps posted_account_id in the same
// unit of work, so a transaction posts at most once.
func (s *transactionService) postRecorded(ctx context.Context, txn *domain.Transaction, code string, entryDate time.Time, actor string) (*domain.BalanceEntry, *domain.Account, error) {
	account, err := s.registry.GetOrCreateAccount(ctx, txn.BranchID, code, actor)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve account %s: %w", code, err)
	}

	delta, err := accounting.SignedDelta(txn.Type, txn.Amount)
	if err != nil {
		return nil, nil, err
	}

	intent := domain.PostingIntent{
		AccountID:   account.AccountID,
		Delta:       delta,
		EntryDate:   entryDate,
		Description: txn.Description,
	}

	entry, err := s.ledgerRepo.PostTransactionEntry(ctx, txn.TransactionID, intent, actor)
	if err != nil {
		return nil, nil, err
	}
	return entry, account, nil
}

func (s *transactionService) RecordIncome(ctx context.Context, req dto.RecordIncomeRequest, actor string) (*domain.PostingResult, error) {
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Income from %s %s", req.SourceType, req.SourceID)
	}

	return s.RecordTransaction(ctx, dto.CreateTransactionRequest{
		Type:          domain.TransactionIncome,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Description:   description,
		SourceType:    req.SourceType,
		SourceID:      req.SourceID,
		BranchID:      req.BranchID,
	}, actor)
}

func (s *transactionService) RecordExpensePayment(ctx context.Context, req dto.RecordExpensePaymentRequest, actor string) (*domain.PostingResult, error) {
	if req.ExpenseID == "" {
		return nil, fmt.Errorf("%w: expense id is required", apperrors.ErrValidation)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Expense payment %s", req.ExpenseID)
	}

	return s.RecordTransaction(ctx, dto.CreateTransactionRequest{
		Type:          domain.TransactionExpense,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Description:   description,
		SourceType:    domain.SourceExpense,
		SourceID:      req.ExpenseID,
		BranchID:      req.BranchID,
	}, actor)
}

func (s *transactionService) RecordTransfer(ctx context.Context, req dto.RecordTransferRequest, actor string) (*domain.TransferResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: account %s", ErrTransferSameAccount, req.FromAccountID)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		BranchID:      req.BranchID,
		Type:          domain.TransactionTransfer,
		Amount:        req.Amount,
		PaymentMethod: domain.PaymentTransfer,
		Description:   req.Description,
		SourceType:    domain.SourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transfer transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	from := domain.PostingIntent{
		AccountID:    req.FromAccountID,
		Delta:        req.Amount.Neg(),
		EntryDate:    now,
		Description:  req.Description,
		RequireFunds: true,
	}
	to := domain.PostingIntent{
		AccountID:   req.ToAccountID,
		Delta:       req.Amount,
		EntryDate:   now,
		Description: req.Description,
	}

	// Unlike income and expense, a transfer is the money movement itself;
	// there is no external payment to protect, so a failed posting fails the
	// whole operation and leaves the saved transaction unposted.
	entries, err := s.ledgerRepo.PostTransferEntries(ctx, &txn.TransactionID, from, to, actor)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to post transfer",
				slog.String("transaction_id", txn.TransactionID))
		}
		return nil, err
	}

	txn.PostedAccountID = &req.FromAccountID
	txn.CounterAccountID = &req.ToAccountID

	s.LogInfo(ctx, "Transfer recorded and posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("amount", req.Amount.String()))
	return &domain.TransferResult{
		Transaction: txn,
		FromEntry:   entries[0],
		ToEntry:     entries[1],
	}, nil
}
