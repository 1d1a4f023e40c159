// Package checkout turns a session's cart into an order: form validation,
// totals, the simulated payment step and the confirmation hand-off.
package checkout

import (
	"sort"
	"strings"

	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/utils"
)

// Payment methods accepted by the form
const (
	PaymentCard = "card"
	PaymentCOD  = "cod"
)

const defaultCountry = "Saudi Arabia"

// Form is the checkout form as submitted by the client
type Form struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`

	PaymentMethod string `json:"payment_method"`
	CardNumber    string `json:"card_number"`
	ExpiryDate    string `json:"expiry_date"`
	CVV           string `json:"cvv"`
	NameOnCard    string `json:"name_on_card"`

	SaveInfo   bool `json:"save_info"`
	Newsletter bool `json:"newsletter"`
}

// FieldErrors maps a form field to its message
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid checkout form: " + strings.Join(parts, ", ")
}

// PrefillForm returns a form filled from the signed-in user's profile
func PrefillForm(user models.User) Form {
	f := Form{
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Phone:         user.Phone,
		Country:       defaultCountry,
		PaymentMethod: PaymentCard,
	}
	if a := user.Address; a != nil {
		f.Address = a.Street
		f.City = a.City
		f.State = a.State
		f.ZipCode = a.ZipCode
		if a.Country != "" {
			f.Country = a.Country
		}
	}
	return f
}

// Validate returns the problems with the form, or nil
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	required := func(field, value, message string) bool {
		if strings.TrimSpace(value) == "" {
			errs[field] = message
			return false
		}
		return true
	}

	if required("email", f.Email, "Email is required") && !utils.ValidateEmail(f.Email) {
		errs["email"] = "Invalid email format"
	}
	required("first_name", f.FirstName, "First name is required")
	required("last_name", f.LastName, "Last name is required")
	if required("phone", f.Phone, "Phone number is required") && !utils.ValidatePhone(f.Phone) {
		errs["phone"] = "Invalid phone number"
	}

	required("address", f.Address, "Address is required")
	required("city", f.City, "City is required")
	required("state", f.State, "State is required")
	required("zip_code", f.ZipCode, "ZIP code is required")

	switch f.PaymentMethod {
	case PaymentCard, "":
		required("card_number", f.CardNumber, "Card number is required")
		required("expiry_date", f.ExpiryDate, "Expiry date is required")
		required("cvv", f.CVV, "CVV is required")
		required("name_on_card", f.NameOnCard, "Name on card is required")
	case PaymentCOD:
	default:
		errs["payment_method"] = "Unsupported payment method"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f Form) shippingAddress() models.OrderAddress {
	country := f.Country
	if country == "" {
		country = defaultCountry
	}
	return models.OrderAddress{
		FullName:   strings.TrimSpace(f.FirstName + " " + f.LastName),
		Address:    f.Address,
		City:       f.City,
		State:      f.State,
		PostalCode: f.ZipCode,
		Country:    country,
	}
}

// paymentLabel is the display form of the payment method, never the card number
func (f Form) paymentLabel() string {
	if f.PaymentMethod == PaymentCOD {
		return "Cash on Delivery"
	}
	digits := make([]rune, 0, len(f.CardNumber))
	for _, r := range f.CardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return "Credit Card"
	}
	return "Credit Card ending in ****" + string(digits[len(digits)-4:])
}
