package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/shoplungu/checkout"
	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/store"
	"github.com/raushankrgupta/shoplungu/utils"
)

const paymentFailedMessage = "Payment failed. Please try again."

// CheckoutFormHandler returns the checkout form prefilled from the profile,
// with the cart it would order
func (h *Handler) CheckoutFormHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Checkout Form API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	cart := cartState(sess)
	if cart.TotalItems == 0 {
		utils.RespondError(w, &logMessageBuilder, "Your cart is empty", http.StatusConflict)
		return
	}

	form := checkout.PrefillForm(models.User{})
	sess.Auth.View(func(a *store.Auth) {
		if user, ok := a.CurrentUser(); ok && a.IsAuthenticated() {
			form = checkout.PrefillForm(user)
		}
	})
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"form": form,
		"cart": cart,
	})
}

// CheckoutHandler places the order. The request returns after the simulated
// payment delay.
func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Checkout API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.Checkout.PlaceOrder(r.Context(), sess, form)
	var fieldErrs checkout.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		respondFieldErrors(w, &logMessageBuilder, fieldErrs)
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		utils.RespondError(w, &logMessageBuilder, "Your cart is empty", http.StatusConflict)
		return
	case err != nil:
		utils.AddToLogMessage(&logMessageBuilder, err.Error())
		utils.RespondError(w, &logMessageBuilder, paymentFailedMessage, http.StatusBadGateway)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Order %s placed, total %s", order.OrderNumber, utils.FormatPrice(order.Total)))
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"order_number": order.OrderNumber,
		"order":        order,
	})
}

// ConfirmationHandler hands the last placed order to the confirmation view.
// The order is returned once; later calls get a placeholder.
func (h *Handler) ConfirmationHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(h.Logger, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Order Confirmation API]")

	sess, err := GetSessionFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusInternalServerError)
		return
	}

	order, err := h.Checkout.Confirmation(r.Context(), sess, r.URL.Query().Get("order"))
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, err.Error())
		utils.RespondError(w, &logMessageBuilder, "Failed to load order", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"order": order})
}
