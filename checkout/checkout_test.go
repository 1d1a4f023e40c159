package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/session"
	"github.com/raushankrgupta/shoplungu/storage"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func validForm() Form {
	return Form{
		Email:         "jane@example.com",
		FirstName:     "Jane",
		LastName:      "Doe",
		Phone:         "+966 11 123 4567",
		Address:       "1 King Fahd Road",
		City:          "Riyadh",
		State:         "Riyadh Province",
		ZipCode:       "11564",
		PaymentMethod: PaymentCard,
		CardNumber:    "4242 4242 4242 4242",
		ExpiryDate:    "12/29",
		CVV:           "123",
		NameOnCard:    "Jane Doe",
	}
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	m := session.NewManager(storage.NewMemory(), []byte("secret"), time.Hour, store.DemoCredential("", nil), nil)
	sess, _, err := m.Issue(context.Background())
	require.NoError(t, err)
	return sess
}

func fillCart(t *testing.T, sess *session.Session) {
	t.Helper()
	require.NoError(t, sess.Cart.Update(context.Background(), func(c *store.Cart) {
		c.AddItem(models.CartItem{ProductID: "1", Name: "Classic Oxford Shirt", Price: 49.99, Size: "M", Color: "White", Quantity: 1})
		c.AddItem(models.CartItem{ProductID: "4", Name: "Stretch Chino Pants", Price: 20, Size: "32", Color: "Khaki", Quantity: 2})
	}))
}

func newService(delay time.Duration) *Service {
	s := NewService(delay, nil, nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

func cartSize(sess *session.Session) int {
	n := 0
	sess.Cart.View(func(c *store.Cart) { n = c.TotalItems() })
	return n
}

func TestFormValidate(t *testing.T) {
	assert.Nil(t, validForm().Validate())

	tests := []struct {
		name  string
		edit  func(*Form)
		field string
		msg   string
	}{
		{"missing email", func(f *Form) { f.Email = "" }, "email", "Email is required"},
		{"bad email", func(f *Form) { f.Email = "jane@" }, "email", "Invalid email format"},
		{"missing first name", func(f *Form) { f.FirstName = " " }, "first_name", "First name is required"},
		{"missing phone", func(f *Form) { f.Phone = "" }, "phone", "Phone number is required"},
		{"short phone", func(f *Form) { f.Phone = "12345" }, "phone", "Invalid phone number"},
		{"missing zip", func(f *Form) { f.ZipCode = "" }, "zip_code", "ZIP code is required"},
		{"missing card number", func(f *Form) { f.CardNumber = "" }, "card_number", "Card number is required"},
		{"missing cvv", func(f *Form) { f.CVV = "" }, "cvv", "CVV is required"},
		{"unknown payment", func(f *Form) { f.PaymentMethod = "crypto" }, "payment_method", "Unsupported payment method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.edit(&f)
			errs := f.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}

	cod := validForm()
	cod.PaymentMethod = PaymentCOD
	cod.CardNumber, cod.ExpiryDate, cod.CVV, cod.NameOnCard = "", "", "", ""
	assert.Nil(t, cod.Validate(), "card fields are only required for card payments")

	errs := Form{}.Validate()
	assert.Len(t, errs, 12)
	assert.Contains(t, errs.Error(), "address: Address is required")
}

func TestPrefillForm(t *testing.T) {
	f := PrefillForm(store.DemoCredential("", nil).Profile)
	assert.Equal(t, "admin@shoplungu.com", f.Email)
	assert.Equal(t, "123 Admin Street", f.Address)
	assert.Equal(t, "Saudi Arabia", f.Country)
	assert.Equal(t, PaymentCard, f.PaymentMethod)

	f = PrefillForm(models.User{Email: "new@example.com"})
	assert.Equal(t, "Saudi Arabia", f.Country)
	assert.Empty(t, f.City)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		subtotal float64
		want     Totals
	}{
		{0, Totals{Subtotal: 0, Shipping: 10, Tax: 0, Total: 10}},
		{40, Totals{Subtotal: 40, Shipping: 10, Tax: 3.2, Total: 53.2}},
		{100, Totals{Subtotal: 100, Shipping: 10, Tax: 8, Total: 118}},
		{150, Totals{Subtotal: 150, Shipping: 0, Tax: 12, Total: 162}},
		{89.99, Totals{Subtotal: 89.99, Shipping: 10, Tax: 7.2, Total: 107.19}},
	}
	for _, tt := range tests {
		got := ComputeTotals(tt.subtotal)
		assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9, "subtotal %v", tt.subtotal)
		assert.InDelta(t, tt.want.Shipping, got.Shipping, 1e-9, "shipping %v", tt.subtotal)
		assert.InDelta(t, tt.want.Tax, got.Tax, 1e-9, "tax %v", tt.subtotal)
		assert.InDelta(t, tt.want.Total, got.Total, 1e-9, "total %v", tt.subtotal)
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	fillCart(t, sess)

	order, err := newService(10*time.Millisecond).PlaceOrder(ctx, sess, validForm())
	require.NoError(t, err)

	assert.Regexp(t, `^SL\d+$`, order.OrderNumber)
	assert.Equal(t, fixedNow, order.OrderDate)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), order.EstimatedDelivery)
	assert.Len(t, order.Items, 2)
	assert.InDelta(t, 89.99, order.Subtotal, 1e-9)
	assert.InDelta(t, 10.0, order.Shipping, 1e-9)
	assert.InDelta(t, 107.19, order.Total, 1e-9)
	assert.Equal(t, "Jane Doe", order.ShippingAddress.FullName)
	assert.Equal(t, "Saudi Arabia", order.ShippingAddress.Country)
	assert.Equal(t, order.ShippingAddress, order.BillingAddress)
	assert.Equal(t, "Credit Card ending in ****4242", order.PaymentMethod)
	assert.False(t, order.Placeholder)

	assert.Zero(t, cartSize(sess))
}

func TestConfirmationConsumesHandOff(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	fillCart(t, sess)
	svc := newService(0)

	placed, err := svc.PlaceOrder(ctx, sess, validForm())
	require.NoError(t, err)

	got, err := svc.Confirmation(ctx, sess, "")
	require.NoError(t, err)
	assert.Equal(t, placed.OrderNumber, got.OrderNumber)
	assert.Equal(t, placed.Items, got.Items)
	assert.True(t, placed.OrderDate.Equal(got.OrderDate))

	again, err := svc.Confirmation(ctx, sess, placed.OrderNumber)
	require.NoError(t, err)
	assert.True(t, again.Placeholder, "the hand-off is read once")
	assert.Equal(t, placed.OrderNumber, again.OrderNumber)
}

func TestConfirmationPlaceholder(t *testing.T) {
	sess := newSession(t)
	svc := newService(0)

	order, err := svc.Confirmation(context.Background(), sess, "")
	require.NoError(t, err)
	assert.True(t, order.Placeholder)
	assert.Equal(t, "SL1741946400000", order.OrderNumber)
	assert.Equal(t, "John Doe", order.ShippingAddress.FullName)
	assert.Equal(t, "Credit Card ending in ****1234", order.PaymentMethod)
	assert.Equal(t, 357.49, order.Total)
	assert.Empty(t, order.Items)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	_, err := newService(time.Hour).PlaceOrder(context.Background(), newSession(t), validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderRejectsInvalidForm(t *testing.T) {
	sess := newSession(t)
	fillCart(t, sess)

	form := validForm()
	form.Email = "nope"
	_, err := newService(time.Hour).PlaceOrder(context.Background(), sess, form)

	var fieldErrs FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "Invalid email format", fieldErrs["email"])
	assert.Equal(t, 3, cartSize(sess))
}

func TestPaymentFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	fillCart(t, sess)

	svc := newService(0)
	svc.Charge = func(context.Context, models.Order) error { return errors.New("gateway timeout") }

	_, err := svc.PlaceOrder(ctx, sess, validForm())
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Equal(t, 3, cartSize(sess))

	order, err := svc.Confirmation(ctx, sess, "")
	require.NoError(t, err)
	assert.True(t, order.Placeholder, "a failed payment hands nothing off")
}

func TestCartClearedOnlyAfterDelay(t *testing.T) {
	sess := newSession(t)
	fillCart(t, sess)
	svc := newService(200 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := svc.PlaceOrder(context.Background(), sess, validForm())
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 3, cartSize(sess), "cart is untouched while payment is pending")

	require.NoError(t, <-done)
	assert.Zero(t, cartSize(sess))
}

func TestPlaceOrderIgnoresCancellation(t *testing.T) {
	sess := newSession(t)
	fillCart(t, sess)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(20*time.Millisecond).PlaceOrder(ctx, sess, validForm())
	require.NoError(t, err)
	assert.Zero(t, cartSize(sess))
}

func TestSaveInfoUpdatesProfile(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	fillCart(t, sess)
	require.NoError(t, sess.Auth.Update(ctx, func(a *store.Auth) {
		a.Register(models.Registration{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "secret1"})
	}))

	form := validForm()
	form.SaveInfo = true
	_, err := newService(0).PlaceOrder(ctx, sess, form)
	require.NoError(t, err)

	sess.Auth.View(func(a *store.Auth) {
		user, ok := a.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "+966 11 123 4567", user.Phone)
		require.NotNil(t, user.Address)
		assert.Equal(t, "1 King Fahd Road", user.Address.Street)
	})
}

func TestConfirmationEmail(t *testing.T) {
	order := newService(0).buildOrder([]models.CartItem{
		{ProductID: "1", Name: "Tee <Limited>", Price: 1200, Size: "M", Color: "Red", Quantity: 1},
	}, validForm())

	subject, text, html := confirmationEmail(order)
	assert.Contains(t, subject, order.OrderNumber)
	assert.Contains(t, text, "1 x Tee <Limited> (M, Red) $1,200")
	assert.Contains(t, text, "Shipping: $0")
	assert.Contains(t, html, "Tee &lt;Limited&gt;")
	assert.Contains(t, text, "March 21, 2025")
}
