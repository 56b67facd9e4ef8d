package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/pkg/apperror"
	"github.com/ignatzorin/bookstore-backend/internal/repository"
)

// OrderRepository описывает зависимости OrderService от хранилища.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status models.OrderStatus) (*models.Order, error)
	ListItems(ctx context.Context) ([]models.OrderItem, error)
}

// PaymentStore описывает зависимости от хранилища платежей.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context) ([]models.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error
}

// OrderService отвечает за заказы и связанные с ними платежи.
type OrderService struct {
	repo     OrderRepository
	payments PaymentStore
	catalog  CatalogRepository
}

// OrderItemInput — позиция создаваемого заказа.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput — данные нового заказа.
type CreateOrderInput struct {
	Items  []OrderItemInput
	Method models.PaymentMethod
}

// NewOrderService создаёт сервис заказов.
func NewOrderService(repo OrderRepository, payments PaymentStore, catalog CatalogRepository) *OrderService {
	return &OrderService{repo: repo, payments: payments, catalog: catalog}
}

// Create формирует заказ: цены позиций берутся из каталога на момент
// оформления, вместе с заказом создаётся платёж в статусе pending.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "заказ не может быть пустым")
	}

	method := in.Method
	if method == "" {
		method = models.PaymentMethodCashOnDelivery
	}
	if !method.IsValid() {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "неизвестный способ оплаты")
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusCreated,
	}

	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "количество должно быть не меньше 1")
		}

		product, err := s.catalog.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "товар не найден")
			}
			return nil, fmt.Errorf("order service: проверка товара: %w", err)
		}
		if product.StockQuantity < item.Quantity {
			return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed,
				fmt.Sprintf("товара %q недостаточно на складе", product.Name))
		}

		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		order.TotalPrice += product.Price * float64(item.Quantity)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("order service: создание заказа: %w", err)
	}

	payment := &models.Payment{
		UserID:  &userID,
		OrderID: order.ID,
		Amount:  order.TotalPrice,
		Status:  models.PaymentStatusPending,
		Method:  method,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("order service: создание платежа: %w", err)
	}

	return order, nil
}

// ListOwn возвращает заказы пользователя.
func (s *OrderService) ListOwn(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll возвращает все заказы. Только для администраторов.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.repo.List(ctx)
}

// ListAllItems возвращает все позиции заказов. Только для администраторов.
func (s *OrderService) ListAllItems(ctx context.Context) ([]models.OrderItem, error) {
	return s.repo.ListItems(ctx)
}

// GetOwn возвращает заказ пользователя вместе с позициями.
func (s *OrderService) GetOwn(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "заказ не найден")
		}
		return nil, fmt.Errorf("order service: загрузка заказа: %w", err)
	}
	return order, nil
}

// UpdateStatus меняет статус собственного заказа. Переход в paid
// дополнительно завершает связанный платёж.
func (s *OrderService) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, apperror.NewWithMessage(apperror.ErrCodeValidationFailed, "неизвестный статус заказа")
	}

	order, err := s.repo.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.NewWithMessage(apperror.ErrCodeNotFound, "заказ не найден")
		}
		return nil, fmt.Errorf("order service: смена статуса: %w", err)
	}

	if status == models.OrderStatusPaid {
		if payment, err := s.payments.GetByOrderID(ctx, id); err == nil {
			if err := s.payments.UpdateStatus(ctx, payment.ID, models.PaymentStatusCompleted); err != nil {
				return nil, fmt.Errorf("order service: завершение платежа: %w", err)
			}
		} else if !errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, fmt.Errorf("order service: загрузка платежа: %w", err)
		}
	}

	return order, nil
}

// ListPayments возвращает все платежи. Только для администраторов.
func (s *OrderService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}
