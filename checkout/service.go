package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/session"
	"github.com/raushankrgupta/shoplungu/storage"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
	"go.uber.org/zap"
)

// LastOrderKey holds the order hand-off record in the session namespace
const LastOrderKey = "last-order"

const deliveryWindow = 7 * 24 * time.Hour

var (
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrPaymentFailed wraps any failure of the simulated payment step
	ErrPaymentFailed = errors.New("checkout: payment failed")
)

// ChargeFunc performs the payment for an order
type ChargeFunc func(ctx context.Context, order models.Order) error

// Service places orders for sessions
type Service struct {
	// Delay is how long the simulated payment takes
	Delay  time.Duration
	Mailer *utils.Mailer
	Logger *zap.Logger
	// Charge defaults to a payment that always succeeds
	Charge ChargeFunc

	now func() time.Time
}

func NewService(delay time.Duration, mailer *utils.Mailer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Delay: delay, Mailer: mailer, Logger: logger, now: time.Now}
}

// PlaceOrder validates the form, waits out the simulated payment and turns the
// cart into an order. The cart is cleared only once the payment succeeds, and
// the wait is not cut short when ctx is cancelled.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session, form Form) (models.Order, error) {
	if errs := form.Validate(); errs != nil {
		return models.Order{}, errs
	}

	empty := false
	sess.Cart.View(func(c *store.Cart) { empty = c.TotalItems() == 0 })
	if empty {
		return models.Order{}, ErrEmptyCart
	}

	ctx = context.WithoutCancel(ctx)
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		<-timer.C
	}

	var order models.Order
	var placeErr error
	err := sess.Cart.Update(ctx, func(c *store.Cart) {
		items := c.Items()
		if len(items) == 0 {
			placeErr = ErrEmptyCart
			return
		}
		order = s.buildOrder(items, form)
		if s.Charge != nil {
			if err := s.Charge(ctx, order); err != nil {
				placeErr = fmt.Errorf("%w: %v", ErrPaymentFailed, err)
				return
			}
		}
		c.Clear()
	})
	if placeErr != nil {
		s.Logger.Warn("Order not placed", zap.String("session_id", sess.ID), zap.Error(placeErr))
		return models.Order{}, placeErr
	}
	if err != nil {
		// the cart is already empty in memory, the order stands
		s.Logger.Error("Failed to persist cleared cart", zap.String("order", order.OrderNumber), zap.Error(err))
	}

	if data, err := json.Marshal(order); err != nil {
		s.Logger.Error("Failed to encode order", zap.String("order", order.OrderNumber), zap.Error(err))
	} else if err := sess.Storage().Put(ctx, LastOrderKey, data); err != nil {
		s.Logger.Error("Failed to store order hand-off", zap.String("order", order.OrderNumber), zap.Error(err))
	}

	if form.SaveInfo {
		s.saveContactInfo(ctx, sess, form)
	}
	s.sendConfirmation(ctx, order)

	s.Logger.Info("Order placed",
		zap.String("order", order.OrderNumber),
		zap.String("session_id", sess.ID),
		zap.Int("lines", len(order.Items)),
		zap.Float64("total", order.Total))
	return order, nil
}

func (s *Service) buildOrder(items []models.CartItem, form Form) models.Order {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	totals := ComputeTotals(subtotal)
	now := s.now()
	address := form.shippingAddress()

	return models.Order{
		OrderNumber:       utils.GenerateOrderID(),
		OrderDate:         now,
		EstimatedDelivery: now.Add(deliveryWindow),
		Email:             strings.TrimSpace(form.Email),
		Items:             items,
		ShippingAddress:   address,
		BillingAddress:    address,
		PaymentMethod:     form.paymentLabel(),
		Subtotal:          totals.Subtotal,
		Shipping:          totals.Shipping,
		Tax:               totals.Tax,
		Total:             totals.Total,
	}
}

// saveContactInfo copies phone and address from the form onto the signed-in user
func (s *Service) saveContactInfo(ctx context.Context, sess *session.Session, form Form) {
	err := sess.Auth.Update(ctx, func(a *store.Auth) {
		user, ok := a.CurrentUser()
		if !ok || !a.IsAuthenticated() {
			return
		}
		user.Phone = form.Phone
		user.Address = &models.Address{
			Street:  form.Address,
			City:    form.City,
			State:   form.State,
			ZipCode: form.ZipCode,
			Country: form.shippingAddress().Country,
		}
		a.UpdateUser(user)
	})
	if err != nil {
		s.Logger.Warn("Failed to save checkout details to profile", zap.Error(err))
	}
}

func (s *Service) sendConfirmation(ctx context.Context, order models.Order) {
	if !s.Mailer.Enabled() || order.Email == "" {
		return
	}
	subject, text, html := confirmationEmail(order)
	if err := s.Mailer.SendEmail(ctx, order.ShippingAddress.FullName, order.Email, subject, text, html); err != nil {
		s.Logger.Warn("Failed to send order confirmation", zap.String("order", order.OrderNumber), zap.Error(err))
	}
}

// Confirmation returns the order handed off by the last checkout of the session
// and deletes it, so a second call no longer sees it. Without a hand-off record
// it returns a placeholder order for display.
func (s *Service) Confirmation(ctx context.Context, sess *session.Session, orderNumber string) (models.Order, error) {
	data, err := storage.Take(ctx, sess.Storage(), LastOrderKey)
	switch {
	case err == nil:
		var order models.Order
		decodeErr := json.Unmarshal(data, &order)
		if decodeErr == nil {
			return order, nil
		}
		s.Logger.Warn("Discarding unreadable order hand-off", zap.String("session_id", sess.ID), zap.Error(decodeErr))
	case !errors.Is(err, storage.ErrNotFound):
		return models.Order{}, fmt.Errorf("failed to read order hand-off: %w", err)
	}
	return s.placeholderOrder(orderNumber), nil
}

func (s *Service) placeholderOrder(orderNumber string) models.Order {
	now := s.now()
	if orderNumber == "" {
		orderNumber = fmt.Sprintf("SL%d", now.UnixMilli())
	}
	address := models.OrderAddress{
		FullName:   "John Doe",
		Address:    "123 Main Street",
		City:       "Riyadh",
		PostalCode: "11564",
		Country:    defaultCountry,
	}
	return models.Order{
		OrderNumber:       orderNumber,
		OrderDate:         now,
		EstimatedDelivery: now.Add(deliveryWindow),
		Items:             []models.CartItem{},
		ShippingAddress:   address,
		BillingAddress:    address,
		PaymentMethod:     "Credit Card ending in ****1234",
		Subtotal:          299.99,
		Shipping:          25.00,
		Tax:               32.50,
		Total:             357.49,
		Placeholder:       true,
	}
}
