package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	_ ports.OrderStore   = (*OrderStore)(nil)
	_ ports.RecentOrders = (*OrderStore)(nil)
	_ ports.OutboxStore  = (*OrderStore)(nil)
)

// OrderStore: хранилище заказов на Postgres (pgxpool).
// Decimal передаётся строкой и читается через ::text, чтобы не терять точность.
type OrderStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewOrderStore: конструктор OrderStore.
func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool, now: time.Now}
}

// Persist: одна транзакция: заказ и позиции, членство клиента, лист отгрузки, события outbox.
// Пустой запрос отклоняется: (nil, nil).
func (s *OrderStore) Persist(ctx context.Context, req *domain.OrderRequest, eff domain.Effects) (*domain.OrderSummary, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, nil
	}

	transaction, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// после Commit Rollback возвращает ErrTxClosed
	defer func() { _ = transaction.Rollback(ctx) }()

	total := req.Total()

	// 1) purchase_orders: poId выдаёт последовательность.
	var poID int
	if err = transaction.QueryRow(ctx, `
		INSERT INTO purchase_orders (customer_id, total) VALUES ($1, $2::numeric)
		RETURNING po_id
	`, req.CustomerID, total.String()).Scan(&poID); err != nil {
		return nil, fmt.Errorf("insert purchase order: %w", err)
	}

	// 2) purchase_order_items: одним batch’ем.
	if err = insertItems(ctx, transaction, poID, req.Items); err != nil {
		return nil, err
	}

	// 3) customer_memberships: активация идемпотентна.
	for _, m := range eff.Memberships {
		if _, err = transaction.Exec(ctx, `
			INSERT INTO customer_memberships (customer_id, membership, po_id) VALUES ($1, $2, $3)
			ON CONFLICT (customer_id, membership) DO NOTHING
		`, req.CustomerID, string(m), poID); err != nil {
			return nil, fmt.Errorf("activate membership: %w", err)
		}
	}

	// 4) shipping_slips: только при наличии физических позиций.
	if len(eff.PhysicalItemIDs) > 0 {
		if err = insertShippingSlip(ctx, transaction, poID, req.CustomerID, eff.PhysicalItemIDs); err != nil {
			return nil, err
		}
	}

	// 5) order_events: outbox.
	events, err := domain.SideEffectEvents(poID, req.CustomerID, eff, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("build events: %w", err)
	}
	for _, ev := range events {
		if _, err = transaction.Exec(ctx, `
			INSERT INTO order_events (id, kind, po_id, customer_id, payload, created_at)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6)
		`, ev.ID, string(ev.Kind), ev.PoID, ev.CustomerID, string(ev.Payload), ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert order event: %w", err)
		}
	}

	// Завершаем транзакцию
	if err := transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &domain.OrderSummary{
		PoID:       poID,
		CustomerID: req.CustomerID,
		Items:      req.Titles(),
		Total:      total,
	}, nil
}

// FindByID: заказ по poId. Если не нашли, возвращает (nil, nil).
func (s *OrderStore) FindByID(ctx context.Context, poID int) (*domain.OrderSummary, error) {
	summary := domain.OrderSummary{PoID: poID}
	var total string

	err := s.pool.QueryRow(ctx, `
		SELECT customer_id, total::text FROM purchase_orders WHERE po_id = $1
	`, poID).Scan(&summary.CustomerID, &total)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select purchase order: %w", err)
	}
	if summary.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT title FROM purchase_order_items WHERE po_id = $1 ORDER BY position
	`, poID)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	summary.Items = make([]string, 0)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		summary.Items = append(summary.Items, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items rows: %w", err)
	}

	return &summary, nil
}

// LastN: последние N заказов (для прогрева кэша), новые первыми.
// Берём только poId, затем дочитываем полные заказы.
func (s *OrderStore) LastN(ctx context.Context, n int) ([]*domain.OrderSummary, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT po_id FROM purchase_orders ORDER BY po_id DESC LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select last ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("last rows: %w", err)
	}

	result := make([]*domain.OrderSummary, 0, len(ids))
	for _, id := range ids {
		summary, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			result = append(result, summary)
		}
	}
	return result, nil
}

// PendingEvents: неопубликованные события в порядке создания.
func (s *OrderStore) PendingEvents(ctx context.Context, limit int) ([]domain.OrderEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, kind, po_id, customer_id, payload::text, created_at
		FROM order_events
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select pending events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.OrderEvent, 0)
	for rows.Next() {
		var (
			ev      domain.OrderEvent
			kind    string
			payload string
		)
		if err := rows.Scan(&ev.ID, &kind, &ev.PoID, &ev.CustomerID, &payload, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Kind = domain.EventKind(kind)
		ev.Payload = json.RawMessage(payload)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event rows: %w", err)
	}
	return events, nil
}

// MarkPublished: проставить published_at для событий.
func (s *OrderStore) MarkPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `
		UPDATE order_events SET published_at = now()
		WHERE id = ANY($1::text[]) AND published_at IS NULL
	`, ids); err != nil {
		return fmt.Errorf("mark events published: %w", err)
	}
	return nil
}

// Seed: загрузить заказы с заданными poId (если их ещё нет) и сдвинуть последовательность.
// Позиции восстанавливаются по названию из каталога.
func (s *OrderStore) Seed(ctx context.Context, orders []*domain.OrderSummary, catalog []domain.OrderLineItem) error {
	byTitle := make(map[string]domain.OrderLineItem, len(catalog))
	for _, it := range catalog {
		byTitle[it.Title] = it
	}

	transaction, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	for _, o := range orders {
		tag, err := transaction.Exec(ctx, `
			INSERT INTO purchase_orders (po_id, customer_id, total) VALUES ($1, $2, $3::numeric)
			ON CONFLICT (po_id) DO NOTHING
		`, o.PoID, o.CustomerID, o.Total.String())
		if err != nil {
			return fmt.Errorf("seed purchase order %d: %w", o.PoID, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}

		items := make([]domain.OrderLineItem, 0, len(o.Items))
		for _, title := range o.Items {
			it, ok := byTitle[title]
			if !ok {
				return fmt.Errorf("seed purchase order %d: unknown item %q", o.PoID, title)
			}
			items = append(items, it)
		}
		if err := insertItems(ctx, transaction, o.PoID, items); err != nil {
			return err
		}
	}

	if _, err := transaction.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('purchase_orders', 'po_id'),
			(SELECT COALESCE(MAX(po_id), 0) + 1 FROM purchase_orders), false)
	`); err != nil {
		return fmt.Errorf("advance po_id sequence: %w", err)
	}

	return transaction.Commit(ctx)
}

// insertItems: вставка позиций через pgx.Batch (одна сетевая итерация).
func insertItems(ctx context.Context, tx pgx.Tx, poID int, items []domain.OrderLineItem) error {
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(`
			INSERT INTO purchase_order_items (po_id, position, item_id, title, price, is_physical)
			VALUES ($1, $2, $3, $4, $5::numeric, $6)
		`, poID, i, it.ID, it.Title, it.Price.String(), it.IsPhysicalItem)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}
	return nil
}

// insertShippingSlip: лист отгрузки и его позиции.
func insertShippingSlip(ctx context.Context, tx pgx.Tx, poID, customerID int, itemIDs []int) error {
	var slipID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO shipping_slips (po_id, customer_id) VALUES ($1, $2) RETURNING slip_id
	`, poID, customerID).Scan(&slipID); err != nil {
		return fmt.Errorf("insert shipping slip: %w", err)
	}

	batch := &pgx.Batch{}
	for i, id := range itemIDs {
		batch.Queue(`
			INSERT INTO shipping_slip_items (slip_id, position, item_id) VALUES ($1, $2, $3)
		`, slipID, i, id)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert shipping slip items: %w", err)
	}
	return nil
}
