package ports

import "context"

// Worker: фоновый компонент, работающий до отмены контекста.
type Worker interface {
	Run(ctx context.Context) error
}

// MessageConsumer: читатель топика заказов. Run блокирует до отмены ctx,
// Close освобождает соединение с брокером после остановки Run.
type MessageConsumer interface {
	Worker
	Close() error
}
