package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	orderdomain "github.com/wyfcoding/cafekiosk/internal/order/domain"
	productdomain "github.com/wyfcoding/cafekiosk/internal/product/domain"
	stockdomain "github.com/wyfcoding/cafekiosk/internal/stock/domain"
)

var registeredAt = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

func TestPlaceOrder(t *testing.T) {
	t.Run("PlacesOrderForHandmadeProductsWithoutStockRecords", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("001", productdomain.TypeHandmade, 1000)
		store.addProduct("002", productdomain.TypeHandmade, 3000)
		svc := newService(store, nil, nil)

		result, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"001", "002"},
			RegisteredAt:   registeredAt,
		})
		require.NoError(t, err)
		require.Equal(t, int64(4000), result.TotalPrice)
		require.Equal(t, registeredAt, result.RegisteredAt)
		require.Len(t, result.Lines, 2)
		require.Equal(t, "001", result.Lines[0].ProductNumber)
		require.Equal(t, "002", result.Lines[1].ProductNumber)
		require.Len(t, store.orders, 1)
	})

	t.Run("DuplicateNumbersProduceDuplicateLinesAndAggregatedDemand", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("002", productdomain.TypeBottle, 2000)
		store.addStock("002", 5)
		svc := newService(store, nil, nil)

		result, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"002", "002"},
			RegisteredAt:   registeredAt,
		})
		require.NoError(t, err)
		require.Len(t, result.Lines, 2)
		require.Equal(t, int64(4000), result.TotalPrice)
		require.Equal(t, 3, store.stocks["002"].Quantity)
	})

	t.Run("FailsWithInsufficientStockAndLeavesQuantityUnchanged", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("002", productdomain.TypeBottle, 2000)
		store.addStock("002", 2)
		svc := newService(store, nil, nil)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"002", "002", "002"},
			RegisteredAt:   registeredAt,
		})
		require.ErrorIs(t, err, stockdomain.ErrInsufficientStock)
		require.Equal(t, 2, store.stocks["002"].Quantity)
		require.Empty(t, store.orders)
	})

	t.Run("RollsBackEarlierDeductionsWhenLaterOneFails", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("002", productdomain.TypeBottle, 2000)
		store.addProduct("003", productdomain.TypeBakery, 3000)
		store.addStock("002", 5)
		store.addStock("003", 0)
		svc := newService(store, nil, nil)

		// "002" 先于 "003" 扣减成功，"003" 失败后整体回滚
		_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"002", "003"},
			RegisteredAt:   registeredAt,
		})
		require.ErrorIs(t, err, stockdomain.ErrInsufficientStock)
		require.Equal(t, 5, store.stocks["002"].Quantity)
		require.Equal(t, 0, store.stocks["003"].Quantity)
		require.Empty(t, store.orders)
	})

	t.Run("FailsWhenProductNumberUnknown", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("001", productdomain.TypeHandmade, 1000)
		svc := newService(store, nil, nil)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"001", "999"},
			RegisteredAt:   registeredAt,
		})
		require.ErrorIs(t, err, orderdomain.ErrProductNotFound)
		require.Empty(t, store.orders)
	})

	t.Run("FailsWhenStockRecordMissingForStockBearingProduct", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("002", productdomain.TypeBottle, 2000)
		svc := newService(store, nil, nil)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"002"},
			RegisteredAt:   registeredAt,
		})
		require.ErrorIs(t, err, stockdomain.ErrStockNotFound)
		require.Empty(t, store.orders)
	})

	t.Run("RejectsEmptyProductNumberList", func(t *testing.T) {
		svc := newService(newMemStore(), nil, nil)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: nil,
			RegisteredAt:   registeredAt,
		})
		require.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("PublishesEventAndNotifiesAfterSuccessfulPlacement", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("001", productdomain.TypeHandmade, 1000)
		publisher := &recordingPublisher{}
		notifier := &recordingNotifier{}
		svc := newService(store, publisher, notifier)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"001"},
			RegisteredAt:   registeredAt,
		})
		require.NoError(t, err)
		require.Len(t, publisher.published, 1)
		require.Len(t, notifier.notified, 1)
	})

	t.Run("DoesNotPublishOrNotifyOnFailure", func(t *testing.T) {
		store := newMemStore()
		publisher := &recordingPublisher{}
		notifier := &recordingNotifier{}
		svc := newService(store, publisher, notifier)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"999"},
			RegisteredAt:   registeredAt,
		})
		require.Error(t, err)
		require.Empty(t, publisher.published)
		require.Empty(t, notifier.notified)
	})

	t.Run("PublishFailureDoesNotFailPlacement", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("001", productdomain.TypeHandmade, 1000)
		publisher := &recordingPublisher{err: fmt.Errorf("broker unreachable")}
		svc := newService(store, publisher, nil)

		result, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
			ProductNumbers: []string{"001"},
			RegisteredAt:   registeredAt,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		require.Len(t, store.orders, 1)
	})
}

func TestPlaceOrderConcurrency(t *testing.T) {
	t.Run("ExactlyOneOfTwoConcurrentPlacementsWinsLastUnit", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("002", productdomain.TypeBottle, 2000)
		store.addStock("002", 1)
		svc := newService(store, nil, nil)

		results := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
					ProductNumbers: []string{"002"},
					RegisteredAt:   registeredAt,
				})
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var succeeded, insufficient int
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, stockdomain.ErrInsufficientStock)
				insufficient++
			}
		}
		require.Equal(t, 1, succeeded)
		require.Equal(t, 1, insufficient)
		require.Equal(t, 0, store.stocks["002"].Quantity)
		require.Len(t, store.orders, 1)
	})

	t.Run("StockNeverGoesNegativeUnderManyConcurrentPlacements", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("002", productdomain.TypeBottle, 2000)
		store.addStock("002", 5)
		svc := newService(store, nil, nil)

		const attempts = 20
		results := make(chan error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
					ProductNumbers: []string{"002"},
					RegisteredAt:   registeredAt,
				})
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var succeeded int
		for err := range results {
			if err == nil {
				succeeded++
			}
		}
		require.Equal(t, 5, succeeded)
		require.Equal(t, 0, store.stocks["002"].Quantity)
		require.Len(t, store.orders, 5)
	})
}

func newService(store *memStore, publisher EventPublisher, notifier Notifier) *OrderCommandService {
	return NewOrderCommandService(
		memOrderRepo{store},
		memProductRepo{store},
		memStockRepo{store},
		productdomain.DefaultStockPolicy(),
		store,
		publisher,
		notifier,
	)
}

// memStore 为三个仓储提供共享存储并实现事务边界。
// InTx 用互斥锁串行化事务（对应行锁语义），出错时恢复快照（对应回滚）
type memStore struct {
	mu       sync.Mutex
	products map[string]*productdomain.Product
	stocks   map[string]*stockdomain.Stock
	orders   []*orderdomain.Order
	nextID   uint
}

var _ Transactor = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*productdomain.Product),
		stocks:   make(map[string]*stockdomain.Stock),
		nextID:   1,
	}
}

func (m *memStore) addProduct(number string, productType productdomain.ProductType, price int64) {
	m.products[number] = &productdomain.Product{
		ProductNumber: number,
		Type:          productType,
		SellingStatus: productdomain.StatusSelling,
		Name:          "menu " + number,
		Price:         price,
	}
}

func (m *memStore) addStock(number string, quantity int) {
	m.stocks[number] = stockdomain.NewStock(number, quantity)
}

func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stockSnapshot := make(map[string]*stockdomain.Stock, len(m.stocks))
	for number, s := range m.stocks {
		copied := *s
		stockSnapshot[number] = &copied
	}
	orderSnapshot := m.orders
	idSnapshot := m.nextID

	if err := fn(ctx); err != nil {
		m.stocks = stockSnapshot
		m.orders = orderSnapshot
		m.nextID = idSnapshot
		return err
	}
	return nil
}

type memOrderRepo struct{ store *memStore }

var _ orderdomain.OrderRepository = memOrderRepo{}

func (r memOrderRepo) Save(ctx context.Context, order *orderdomain.Order) error {
	order.ID = r.store.nextID
	r.store.nextID++
	r.store.orders = append(r.store.orders, order)
	return nil
}

func (r memOrderRepo) Get(ctx context.Context, id uint) (*orderdomain.Order, error) {
	for _, o := range r.store.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

type memProductRepo struct{ store *memStore }

var _ productdomain.ProductRepository = memProductRepo{}

func (r memProductRepo) Save(ctx context.Context, product *productdomain.Product) error {
	r.store.products[product.ProductNumber] = product
	return nil
}

func (r memProductRepo) FindByNumbers(ctx context.Context, numbers []string) (map[string]*productdomain.Product, error) {
	result := make(map[string]*productdomain.Product)
	for _, n := range numbers {
		if p, ok := r.store.products[n]; ok {
			result[n] = p
		}
	}
	return result, nil
}

func (r memProductRepo) FindBySellingStatuses(ctx context.Context, statuses []productdomain.SellingStatus) ([]*productdomain.Product, error) {
	var result []*productdomain.Product
	for _, p := range r.store.products {
		for _, s := range statuses {
			if p.SellingStatus == s {
				result = append(result, p)
				break
			}
		}
	}
	return result, nil
}

func (r memProductRepo) LatestProductNumber(ctx context.Context) (string, error) {
	latest := ""
	for number := range r.store.products {
		if number > latest {
			latest = number
		}
	}
	return latest, nil
}

type memStockRepo struct{ store *memStore }

var _ stockdomain.StockRepository = memStockRepo{}

func (r memStockRepo) Save(ctx context.Context, stock *stockdomain.Stock) error {
	r.store.stocks[stock.ProductNumber] = stock
	return nil
}

func (r memStockRepo) FindByNumbers(ctx context.Context, numbers []string) (map[string]*stockdomain.Stock, error) {
	result := make(map[string]*stockdomain.Stock)
	for _, n := range numbers {
		if s, ok := r.store.stocks[n]; ok {
			result[n] = s
		}
	}
	return result, nil
}

func (r memStockRepo) Deduct(ctx context.Context, productNumber string, quantity int) error {
	stock, ok := r.store.stocks[productNumber]
	if !ok {
		return fmt.Errorf("%w: product %s", stockdomain.ErrStockNotFound, productNumber)
	}
	return stock.Deduct(quantity)
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*orderdomain.Order
	err       error
}

func (p *recordingPublisher) PublishOrderPlaced(ctx context.Context, order *orderdomain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, order)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	notified []*orderdomain.Order
}

func (n *recordingNotifier) NotifyOrderPlaced(ctx context.Context, order *orderdomain.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, order)
	return nil
}
