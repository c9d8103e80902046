package listener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pagination"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubUseCase struct {
	mock.Mock
}

func (s *stubUseCase) ListProducts(context.Context, pagination.Request) (*pagination.Result[model.Product], error) {
	return nil, nil
}

func (s *stubUseCase) GetProduct(context.Context, string) (*model.Product, error) {
	return nil, nil
}

func (s *stubUseCase) CreateProduct(context.Context, *dto.CreateProductInput) (*model.Product, error) {
	return nil, nil
}

func (s *stubUseCase) UpdateProduct(context.Context, *dto.UpdateProductInput) (*model.Product, error) {
	return nil, nil
}

func (s *stubUseCase) DeleteProduct(context.Context, string, *string) (bool, error) {
	return false, nil
}

func (s *stubUseCase) AdjustStock(ctx context.Context, id string, delta int, callerID *string) (bool, error) {
	args := s.Called(ctx, id, delta, callerID)
	return args.Bool(0), args.Error(1)
}

// queueReader replays queued messages, then blocks until ctx is done.
type queueReader struct {
	msgs []kafka.Message
	errs []error
}

func (q *queueReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(q.errs) > 0 {
		err := q.errs[0]
		q.errs = q.errs[1:]
		return kafka.Message{}, err
	}
	if len(q.msgs) > 0 {
		m := q.msgs[0]
		q.msgs = q.msgs[1:]
		return m, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func TestProcessOrderCreated(t *testing.T) {
	uc := &stubUseCase{}
	l := NewStockListener(&queueReader{}, uc, logger.NewNop())

	uc.On("AdjustStock", mock.Anything, "p-1", -2, (*string)(nil)).Return(true, nil)
	uc.On("AdjustStock", mock.Anything, "p-2", -1, (*string)(nil)).Return(false, nil)

	l.processMessage(context.Background(), []byte(`{
		"event_type": "OrderCreated",
		"payload": {"id": "o-1", "items": [
			{"product_id": "p-1", "quantity": 2},
			{"product_id": "p-2", "quantity": 0.5},
			{"product_id": "p-3", "quantity": 0},
			{"product_id": "", "quantity": 4}
		]}
	}`))

	uc.AssertExpectations(t)
	uc.AssertNumberOfCalls(t, "AdjustStock", 2)
}

func TestProcessIgnoresOtherEvents(t *testing.T) {
	uc := &stubUseCase{}
	l := NewStockListener(&queueReader{}, uc, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"event_type":"OrderCancelled","payload":{"items":[{"product_id":"p-1","quantity":1}]}}`))
	l.processMessage(context.Background(), []byte(`not json`))

	uc.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStartStopsOnCancel(t *testing.T) {
	uc := &stubUseCase{}
	reader := &queueReader{
		errs: []error{errors.New("broker unavailable")},
		msgs: []kafka.Message{{Value: []byte(`{"event_type":"OrderCreated","payload":{"id":"o-2","items":[{"product_id":"p-9","quantity":1}]}}`)}},
	}
	l := NewStockListener(reader, uc, logger.NewNop())
	l.retryDelay = time.Millisecond

	processed := make(chan struct{})
	uc.On("AdjustStock", mock.Anything, "p-9", -1, (*string)(nil)).
		Run(func(mock.Arguments) { close(processed) }).
		Return(true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(done)
	}()

	select {
	case <-processed:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not processed")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
	assert.Empty(t, reader.msgs)
}
