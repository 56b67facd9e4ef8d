package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/repository"
)

// fakeCartRepo хранит корзины в памяти.
type fakeCartRepo struct {
	carts map[uuid.UUID]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]*models.Cart)}
}

func (f *fakeCartRepo) GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	for _, cart := range f.carts {
		if cart.UserID == userID {
			return cart, nil
		}
	}
	cart := &models.Cart{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	f.carts[cart.ID] = cart
	return cart, nil
}

func (f *fakeCartRepo) List(ctx context.Context) ([]models.Cart, error) {
	var out []models.Cart
	for _, cart := range f.carts {
		out = append(out, *cart)
	}
	return out, nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	cart := f.carts[cartID]
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			return &cart.Items[i], nil
		}
	}
	item := models.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: quantity}
	cart.Items = append(cart.Items, item)
	return &cart.Items[len(cart.Items)-1], nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	cart := f.carts[cartID]
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartItemNotFound
}

func TestCartService_AddAndRemove(t *testing.T) {
	book := &models.Product{ID: uuid.New(), Name: "Дубровский", Price: 100, StockQuantity: 10}
	svc := NewCartService(newFakeCartRepo(), newFakeCatalog(book))

	ctx := context.Background()
	userID := uuid.New()

	// Повторное добавление увеличивает количество.
	item, err := svc.AddItem(ctx, userID, book.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = svc.AddItem(ctx, userID, book.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	cart, err := svc.Get(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	// Удаление позиции.
	assert.NoError(t, svc.RemoveItem(ctx, userID, item.ID))
	cart, _ = svc.Get(ctx, userID)
	assert.Empty(t, cart.Items)

	// Удаление отсутствующей позиции отвечает типизированным NOT_FOUND,
	// а не внутренней ошибкой.
	err = svc.RemoveItem(ctx, userID, uuid.New())
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeNotFound))
}

func TestCartService_Validation(t *testing.T) {
	book := &models.Product{ID: uuid.New(), Name: "Дубровский", Price: 100, StockQuantity: 10}
	svc := NewCartService(newFakeCartRepo(), newFakeCatalog(book))

	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, book.ID, 0)
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeValidationFailed))

	_, err = svc.AddItem(ctx, userID, uuid.New(), 1)
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeNotFound))
}

func TestCatalogService_Product(t *testing.T) {
	book := &models.Product{ID: uuid.New(), Name: "Капитанская дочка", Price: 250}
	svc := NewCatalogService(newFakeCatalog(book))
	ctx := context.Background()

	found, err := svc.Product(ctx, book.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Капитанская дочка", found.Name)

	_, err = svc.Product(ctx, uuid.New())
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeNotFound))
}

func TestCatalogService_FilterValidation(t *testing.T) {
	svc := NewCatalogService(newFakeCatalog())
	ctx := context.Background()

	min, max := 100.0, 50.0
	_, err := svc.FilterProducts(ctx, models.ProductFilter{MinPrice: &min, MaxPrice: &max})
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeValidationFailed))

	negative := -1.0
	_, err = svc.FilterProducts(ctx, models.ProductFilter{MinPrice: &negative})
	assert.True(t, apperror.IsCode(err, apperror.ErrCodeValidationFailed))

	cheap := &models.Product{ID: uuid.New(), Name: "Брошюра", Price: 30}
	dear := &models.Product{ID: uuid.New(), Name: "Подарочное издание", Price: 500}
	svc = NewCatalogService(newFakeCatalog(cheap, dear))

	low, high := 10.0, 100.0
	products, err := svc.FilterProducts(ctx, models.ProductFilter{MinPrice: &low, MaxPrice: &high})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Брошюра", products[0].Name)
}
