package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assetscore/internal/calculator"
	"assetscore/internal/domain"
	"assetscore/internal/logger"
	"assetscore/internal/repository"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// supportedCurrencies is the fixed set the converter accepts. Codes
// must also resolve in the ISO registry - a typo'd entry here should
// fail validation, not produce a phantom currency.
var supportedCurrencies = map[string]struct{}{
	"USD": {},
	"BRL": {},
	"EUR": {},
	"GBP": {},
	"JPY": {},
	"CAD": {},
	"CHF": {},
	"AUD": {},
}

func isSupportedCurrency(code string) bool {
	if _, ok := supportedCurrencies[code]; !ok {
		return false
	}
	return money.GetCurrency(code) != nil
}

type ConversionOptions struct {
	AsOf          *time.Time
	CorrelationID *uuid.UUID
	UserID        *uuid.UUID
}

type ConversionItem struct {
	Value        string
	FromCurrency string
}

// BatchConversionResult carries each item's outcome in-band so one bad
// item cannot block the rest of the batch.
type BatchConversionResult struct {
	Item   ConversionItem
	Result *domain.CurrencyConversionResult
	Err    error
}

type CurrencyService interface {
	Convert(ctx context.Context, value, fromCurrency, toCurrency string, opts *ConversionOptions) (*domain.CurrencyConversionResult, error)
	ConvertBatch(ctx context.Context, items []ConversionItem, toCurrency string) []BatchConversionResult
}

type currencyServiceHandler struct {
	RateRepository repository.ExchangeRateRepository
	EventStore     repository.EventStore
	EmitEvents     bool

	now func() time.Time
}

func NewCurrencyService(
	rateRepository repository.ExchangeRateRepository,
	eventStore repository.EventStore,
	emitEvents bool,
) CurrencyService {
	return currencyServiceHandler{
		RateRepository: rateRepository,
		EventStore:     eventStore,
		EmitEvents:     emitEvents,
		now:            time.Now,
	}
}

// Convert converts value between two supported currencies using a
// stored rate. The multiply runs at full precision; the 4-digit
// rounding happens only on the final result. A stale rate (fetched
// over 24h ago) is flagged and logged but never blocks the conversion.
func (h currencyServiceHandler) Convert(
	ctx context.Context,
	value, fromCurrency, toCurrency string,
	opts *ConversionOptions,
) (*domain.CurrencyConversionResult, error) {
	if opts == nil {
		opts = &ConversionOptions{}
	}

	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	to := strings.ToUpper(strings.TrimSpace(toCurrency))
	if !isSupportedCurrency(from) {
		return nil, domain.NewError(domain.ErrCodeInvalidCurrency, "unsupported currency %q", fromCurrency)
	}
	if !isSupportedCurrency(to) {
		return nil, domain.NewError(domain.ErrCodeInvalidCurrency, "unsupported currency %q", toCurrency)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalidValue, "value %q is not a number", value)
	}
	if amount.IsNegative() {
		return nil, domain.NewError(domain.ErrCodeInvalidValue, "value %q must be non-negative", value)
	}

	if from == to {
		result := &domain.CurrencyConversionResult{
			Value:        calculator.FormatFixed(amount),
			FromCurrency: from,
			ToCurrency:   to,
			Rate:         "1",
			RateSource:   domain.RateSourceSameCurrency,
			IsStaleRate:  false,
		}
		h.emitConversionEvent(ctx, amount, result, opts)
		return result, nil
	}

	rate, err := h.lookupRate(from, to, opts.AsOf)
	if err != nil {
		return nil, err
	}

	isStale := rate.IsStale(h.now())
	if isStale {
		logger.FromContext(ctx).Warnw(
			"converting with a stale exchange rate",
			"from", from,
			"to", to,
			"fetchedAt", rate.FetchedAt,
		)
	}

	result := &domain.CurrencyConversionResult{
		Value:        calculator.FormatFixed(amount.Mul(rate.Rate)),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate.Rate.String(),
		RateSource:   rate.Source,
		IsStaleRate:  isStale,
	}
	h.emitConversionEvent(ctx, amount, result, opts)

	return result, nil
}

// lookupRate finds a stored rate for (from, to), falling back to the
// inverse pair with rate 1/r. The inverse case keeps the stored rate's
// source and timestamps so staleness is judged on the real fetch time.
func (h currencyServiceHandler) lookupRate(from, to string, asOf *time.Time) (*domain.ExchangeRate, error) {
	direct, err := h.RateRepository.GetRate(from, to, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exchange rate %s/%s: %w", from, to, err)
	}
	if direct != nil {
		return direct, nil
	}

	inverse, err := h.RateRepository.GetRate(to, from, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to look up exchange rate %s/%s: %w", to, from, err)
	}
	if inverse != nil {
		return &domain.ExchangeRate{
			BaseCurrency:   from,
			TargetCurrency: to,
			Rate:           decimal.NewFromInt(1).Div(inverse.Rate),
			Source:         inverse.Source,
			FetchedAt:      inverse.FetchedAt,
			RateDate:       inverse.RateDate,
		}, nil
	}

	return nil, domain.NewError(domain.ErrCodeRateNotFound, "no exchange rate stored for %s/%s", from, to)
}

// ConvertBatch converts each item independently. Failures are carried
// per item; no shared state exists between items.
func (h currencyServiceHandler) ConvertBatch(
	ctx context.Context,
	items []ConversionItem,
	toCurrency string,
) []BatchConversionResult {
	out := make([]BatchConversionResult, 0, len(items))
	for _, item := range items {
		result, err := h.Convert(ctx, item.Value, item.FromCurrency, toCurrency, nil)
		out = append(out, BatchConversionResult{
			Item:   item,
			Result: result,
			Err:    err,
		})
	}

	return out
}

// emitConversionEvent appends a CURRENCY_CONVERTED audit event,
// fire-and-forget: the append runs in its own goroutine and its
// failure is logged, never surfaced. Advisory logging, not the
// load-bearing audit trail the scoring pipeline writes.
func (h currencyServiceHandler) emitConversionEvent(
	ctx context.Context,
	fromAmount decimal.Decimal,
	result *domain.CurrencyConversionResult,
	opts *ConversionOptions,
) {
	if !h.EmitEvents || h.EventStore == nil {
		return
	}

	correlationID := uuid.New()
	if opts.CorrelationID != nil {
		correlationID = *opts.CorrelationID
	}

	event, err := domain.NewCalculationEvent(correlationID, opts.UserID, domain.EventTypeCurrencyConverted, 1, domain.CurrencyConvertedPayload{
		CorrelationID: correlationID,
		FromAmount:    fromAmount.String(),
		ToAmount:      result.Value,
		FromCurrency:  result.FromCurrency,
		ToCurrency:    result.ToCurrency,
		Rate:          result.Rate,
		IsStaleRate:   result.IsStaleRate,
	})
	if err != nil {
		logger.FromContext(ctx).Warnw("failed to build conversion audit event", "error", err)
		return
	}

	log := logger.FromContext(ctx)
	userID := opts.UserID
	go func() {
		if err := h.EventStore.Append(userID, event); err != nil {
			log.Warnw("failed to append conversion audit event", "error", err, "correlationId", correlationID)
		}
	}()
}
