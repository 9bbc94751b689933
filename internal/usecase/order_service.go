package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
	"github.com/Gunvolt24/purchase-order/pkg/metrics"
	"github.com/Gunvolt24/purchase-order/pkg/validate"
)

// Тексты ответов, которые видит клиент.
const (
	MsgCouldNotProcess   = "Purchase order could not be processed"
	MsgExceptionOccurred = "Exception occurred"
)

var (
	// ErrPurchaseOrderInvalid: заказ не прошёл разбор или валидацию.
	ErrPurchaseOrderInvalid = errors.New("purchase order is invalid")
	// ErrPurchaseOrderDeclined: хранилище отказалось записать заказ.
	ErrPurchaseOrderDeclined = errors.New("purchase order declined by store")
	// ErrPurchaseOrderFailed: непредвиденный сбой конвейера.
	ErrPurchaseOrderFailed = errors.New("purchase order processing failed")
)

// NotFoundMessage: текст ответа для отсутствующего заказа.
func NotFoundMessage(poID int) string {
	return fmt.Sprintf("Purchase order with id %d not found", poID)
}

// Проверка, что OrderService удовлетворяет интерфейсу PurchaseOrderService.
var _ ports.PurchaseOrderService = (*OrderService)(nil)

// OrderService: прикладная логика заказов на покупку (без знаний о транспорте).
type OrderService struct {
	store     ports.OrderStore     // граница хранения
	cache     ports.OrderCache     // read-кэш; при nil без кэша
	log       ports.Logger         // логгер
	validator ports.OrderValidator // валидатор запроса
}

// NewOrderService: DI-конструктор.
func NewOrderService(
	store ports.OrderStore,
	cache ports.OrderCache,
	log ports.Logger,
	validator ports.OrderValidator,
) *OrderService {
	return &OrderService{
		store:     store,
		cache:     cache,
		log:       log,
		validator: validator,
	}
}

// GetByID: заказ по poId: сначала из кэша, при промахе, из хранилища с записью в кэш.
func (s *OrderService) GetByID(ctx context.Context, poID int) (out domain.Outcome) {
	defer func() { metrics.PurchaseOrderLookups.WithLabelValues(out.Kind.String()).Inc() }()

	if s.cache != nil {
		if summary, found := s.cache.Get(ctx, poID); found {
			s.log.Infof(ctx, "cache hit for po_id=%d", poID)
			return domain.Found(summary)
		}
		s.log.Infof(ctx, "cache miss for po_id=%d", poID)
	}

	start := time.Now()
	summary, err := s.store.FindByID(ctx, poID)
	if err != nil {
		s.log.Errorf(ctx, "store.FindByID failed po_id=%d err=%v", poID, err)
		return domain.Failed(MsgExceptionOccurred)
	}
	if summary == nil {
		s.log.Warnf(ctx, "purchase order not found po_id=%d", poID)
		return domain.NotFound(NotFoundMessage(poID))
	}

	s.cacheSet(ctx, summary)
	s.log.Infof(ctx, "store fetch po_id=%d took=%s", poID, time.Since(start))
	return domain.Found(summary)
}

// Process: конвейер обработки заказа:
//  1. валидация (все правила, без короткого замыкания);
//  2. вычисление эффектов (членство, лист отгрузки);
//  3. одна атомарная запись в хранилище;
//  4. формирование ответа: из хранилища берётся только poId, остальное, из запроса.
//
// Любая паника внутри этапов превращается в Unprocessable("Exception occurred").
func (s *OrderService) Process(ctx context.Context, req *domain.OrderRequest) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf(ctx, "purchase order pipeline panic: %v\n%s", r, debug.Stack())
			out = domain.Unprocessable(MsgExceptionOccurred)
		}
		metrics.PurchaseOrders.WithLabelValues(out.Kind.String()).Inc()
	}()

	failures := s.validator.Validate(ctx, req)
	if !failures.IsValid() {
		s.log.Warnf(ctx, "validation failed customer_id=%d failures=%d", customerOf(req), len(failures))
		return domain.ValidationFailed(failures)
	}

	eff := DeriveEffects(req)

	stored, err := s.store.Persist(ctx, req, eff)
	if err != nil {
		s.log.Errorf(ctx, "store.Persist failed customer_id=%d err=%v", req.CustomerID, err)
		return domain.Unprocessable(MsgExceptionOccurred)
	}
	if stored == nil {
		s.log.Warnf(ctx, "store declined purchase order customer_id=%d", req.CustomerID)
		return domain.Unprocessable(MsgCouldNotProcess)
	}

	summary := &domain.OrderSummary{
		PoID:       stored.PoID,
		CustomerID: req.CustomerID,
		Items:      req.Titles(),
		Total:      req.Total(),
	}
	s.cacheSet(ctx, summary)

	s.log.Infof(ctx, "purchase order created po_id=%d customer_id=%d items=%d memberships=%v shipping=%v",
		summary.PoID, summary.CustomerID, len(summary.Items), eff.Memberships, eff.PhysicalItemIDs)
	return domain.Created(summary)
}

// ProcessFromMessage: обработать заказ, пришедший из Kafka (raw JSON), тем же конвейером.
// Строгий разбор (DisallowUnknownFields, без хвоста); результат, отличный от Created,
// возвращается ошибкой, обёрнутой одним из ErrPurchaseOrder*.
func (s *OrderService) ProcessFromMessage(ctx context.Context, raw []byte) error {
	req, err := validate.DecodeOrderRequest(raw)
	if err != nil {
		s.log.Warnf(ctx, "purchase order message rejected err=%v", err)
		return fmt.Errorf("%w: %w", ErrPurchaseOrderInvalid, err)
	}

	out := s.Process(ctx, req)
	switch out.Kind {
	case domain.OutcomeCreated:
		return nil
	case domain.OutcomeValidationFailed:
		return fmt.Errorf("%w: %w", ErrPurchaseOrderInvalid, validate.AsError(out.Failures))
	case domain.OutcomeUnprocessable:
		if out.Message == MsgCouldNotProcess {
			return ErrPurchaseOrderDeclined
		}
		return ErrPurchaseOrderFailed
	default:
		return fmt.Errorf("%w: unexpected outcome %s", ErrPurchaseOrderFailed, out.Kind)
	}
}

// WarmUpCache: прогрев кэша последними N заказами хранилища.
// Если n <= 0, нет кэша или хранилище не умеет LastN, прогрев не выполняется (это не ошибка).
func (s *OrderService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 || s.cache == nil {
		s.log.Warnf(ctx, "cache warm-up skipped (n=%d)", n)
		return nil
	}
	recent, ok := s.store.(ports.RecentOrders)
	if !ok {
		s.log.Warnf(ctx, "cache warm-up skipped: store has no LastN")
		return nil
	}

	start := time.Now()
	list, err := recent.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "store.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d purchase orders in %s", len(list), time.Since(start))
	return nil
}

func (s *OrderService) cacheSet(ctx context.Context, summary *domain.OrderSummary) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, summary); err != nil {
		s.log.Warnf(ctx, "cache.Set failed po_id=%d err=%v", summary.PoID, err)
	}
}

func customerOf(req *domain.OrderRequest) int {
	if req == nil {
		return 0
	}
	return req.CustomerID
}
