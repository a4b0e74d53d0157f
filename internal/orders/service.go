package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adirahmanto/craftline-backend/pkg/db"
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	"github.com/adirahmanto/craftline-backend/pkg/enums"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
	"github.com/adirahmanto/craftline-backend/pkg/pagination"
	"github.com/adirahmanto/craftline-backend/pkg/storage/supabase"
	"github.com/adirahmanto/craftline-backend/pkg/types"
)

// Service exposes checkout and the order workflow.
type Service interface {
	CreateOrder(ctx context.Context, customerID *uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, filter ListFilter, page pagination.Params) (*types.Page[OrderDTO], error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*types.Page[OrderDTO], error)
	UploadPaymentImage(ctx context.Context, orderID uuid.UUID, customerID uuid.UUID, image *ImageUpload) (*OrderDTO, error)
	PaymentImageURL(ctx context.Context, orderID uuid.UUID) (string, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	UpdateDetailStatus(ctx context.Context, orderID uuid.UUID, detailID int, status enums.OrderStatus) (*OrderDTO, error)
}

type uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	PublicURL(key string) string
	SignedURL(ctx context.Context, key string) (string, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	store    uploader
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs an order service instance.
func NewService(repo *Repository, dbClient *db.Client, store uploader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		store:    store,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// CreateOrder writes the order header and every line item in one
// transaction. Item images upload best-effort: a failed upload logs a
// warning and the row keeps nil references, but any row insert failure rolls
// the whole order back. A payment proof, when included, must upload before
// the transaction starts; its failure aborts the order outright.
func (s *service) CreateOrder(ctx context.Context, customerID *uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}
	for i := range input.Items {
		if input.Items[i].Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if input.Items[i].TotalPrice < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item total price cannot be negative")
		}
	}

	status := enums.OrderStatusPending
	var paymentName, paymentURL *string
	if input.PaymentImage != nil {
		key, url, err := s.uploadPayment(ctx, uuid.NewString(), input.PaymentImage)
		if err != nil {
			return nil, err
		}
		paymentName, paymentURL = &key, &url
		status = enums.OrderStatusPaymentUploaded
	}

	var orderID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order := &models.Order{
			CustomerID:       customerID,
			FullName:         input.FullName,
			Phone:            input.Phone,
			Address:          input.Address,
			PaymentImageName: paymentName,
			PaymentImageURL:  paymentURL,
			Status:           status,
		}
		if _, err := txRepo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		orderID = order.ID

		for i := range input.Items {
			item := &input.Items[i]

			ok, err := txRepo.ProductExists(ctx, item.ProductID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d references an unknown product", i))
			}

			detail := &models.OrderDetail{
				OrderID:            order.ID,
				ProductID:          item.ProductID,
				Size:               item.Size,
				MaterialID:         item.MaterialID,
				VariantID:          item.VariantID,
				ColorID:            item.ColorID,
				BorderLengthID:     item.BorderLengthID,
				BorderLengthAmount: item.BorderLengthAmount,
				CustomColumnID:     item.CustomColumnID,
				CustomColumnAnswer: item.CustomColumnAnswer,
				Text:               item.Text,
				LogoCostAddition:   item.LogoCostAddition,
				Status:             status,
				Quantity:           item.Quantity,
				TotalPrice:         item.TotalPrice,
			}

			if item.Design != nil {
				key := supabase.OrderItemKey(i, item.Design.Filename, s.now())
				if name, url, err := s.uploadItemImage(ctx, key, item.Design); err != nil {
					s.logg.Warn(s.logg.WithField(ctx, "item_index", i), "design upload failed, keeping item without image")
				} else {
					detail.DesignName, detail.DesignURL = &name, &url
				}
			}
			if item.Logo != nil {
				key := supabase.OrderLogoKey(i, item.Logo.Filename, s.now())
				if name, url, err := s.uploadItemImage(ctx, key, item.Logo); err != nil {
					s.logg.Warn(s.logg.WithField(ctx, "item_index", i), "logo upload failed, keeping item without image")
				} else {
					detail.LogoName, detail.LogoURL = &name, &url
				}
			}

			if _, err := txRepo.CreateDetail(ctx, detail); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order detail")
			}
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	return s.GetOrder(ctx, orderID)
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "db: load order")
	}
	return NewOrderDTO(order), nil
}

// PaymentImageURL returns a time-limited download URL for the order's
// payment proof. Proofs stay in a private bucket, so staff review goes
// through a signed URL rather than a public one.
func (s *service) PaymentImageURL(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return "", notFoundOr(err, "order not found", "db: load order")
	}
	if order.PaymentImageName == nil {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "order has no payment image")
	}

	url, err := s.store.SignedURL(ctx, *order.PaymentImageName)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage: sign payment image url")
	}
	return url, nil
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter, page pagination.Params) (*types.Page[OrderDTO], error) {
	page = pagination.Normalize(page)
	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}

	data := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		data = append(data, *NewOrderDTO(&rows[i]))
	}
	return &types.Page[OrderDTO]{
		Page:    page.Page,
		Limit:   page.Limit,
		Data:    data,
		Total:   total,
		HasMore: page.HasMore(total),
	}, nil
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page pagination.Params) (*types.Page[OrderDTO], error) {
	return s.ListOrders(ctx, ListFilter{CustomerID: &customerID}, page)
}

// UploadPaymentImage attaches proof of payment to an order the customer
// owns and advances it to PAYMENT_UPLOADED.
func (s *service) UploadPaymentImage(ctx context.Context, orderID uuid.UUID, customerID uuid.UUID, image *ImageUpload) (*OrderDTO, error) {
	if image == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment image is required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "db: load order")
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is already closed")
	}

	key, url, err := s.uploadPayment(ctx, orderID.String(), image)
	if err != nil {
		return nil, err
	}

	order.PaymentImageName = &key
	order.PaymentImageURL = &url
	order.Status = enums.OrderStatusPaymentUploaded
	if _, err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
	}

	return s.GetOrder(ctx, orderID)
}

// UpdateOrderStatus moves the order through the staff workflow. Closed
// orders stay closed.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", status))
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "db: load order")
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is already closed")
	}

	order.Status = status
	if _, err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order")
	}
	return s.GetOrder(ctx, orderID)
}

// UpdateDetailStatus moves a single line item through the workflow.
func (s *service) UpdateDetailStatus(ctx context.Context, orderID uuid.UUID, detailID int, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", status))
	}

	detail, err := s.repo.FindDetail(ctx, orderID, detailID)
	if err != nil {
		return nil, notFoundOr(err, "order item not found", "db: load order item")
	}
	if detail.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order item is already closed")
	}

	detail.Status = status
	if _, err := s.repo.UpdateDetail(ctx, detail); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order item")
	}
	return s.GetOrder(ctx, orderID)
}

func (s *service) uploadItemImage(ctx context.Context, key string, image *ImageUpload) (string, string, error) {
	if err := s.upload(ctx, key, image); err != nil {
		return "", "", err
	}
	return key, s.store.PublicURL(key), nil
}

func (s *service) uploadPayment(ctx context.Context, orderRef string, image *ImageUpload) (string, string, error) {
	key := supabase.PaymentImageKey(orderRef, image.Filename, s.now())
	if err := s.upload(ctx, key, image); err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage: upload payment image")
	}
	return key, s.store.PublicURL(key), nil
}

func (s *service) upload(ctx context.Context, key string, image *ImageUpload) error {
	ct := image.ContentType
	if ct == "" {
		ct = supabase.ContentTypeFor(image.Filename)
	}
	return s.store.Upload(ctx, key, ct, image.Data)
}

func notFoundOr(err error, notFoundMsg, wrapMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, wrapMsg)
}
