package checkout

import (
	"fmt"
	"html"
	"strings"

	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/utils"
)

func confirmationEmail(order models.Order) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("Your ShopLungu order %s", order.OrderNumber)

	var t, h strings.Builder
	fmt.Fprintf(&t, "Thank you for your order, %s!\n\n", order.ShippingAddress.FullName)
	fmt.Fprintf(&t, "Order number: %s\n", order.OrderNumber)
	fmt.Fprintf(&t, "Estimated delivery: %s\n\n", order.EstimatedDelivery.Format("January 2, 2006"))

	fmt.Fprintf(&h, "<p>Thank you for your order, %s!</p>", html.EscapeString(order.ShippingAddress.FullName))
	fmt.Fprintf(&h, "<p>Order number: <strong>%s</strong><br>Estimated delivery: %s</p><ul>",
		order.OrderNumber, order.EstimatedDelivery.Format("January 2, 2006"))

	for _, item := range order.Items {
		line := fmt.Sprintf("%d x %s (%s, %s) %s", item.Quantity, item.Name, item.Size, item.Color, utils.FormatPrice(item.LineTotal()))
		t.WriteString(line + "\n")
		h.WriteString("<li>" + html.EscapeString(line) + "</li>")
	}

	fmt.Fprintf(&t, "\nSubtotal: %s\nShipping: %s\nTax: %s\nTotal: %s\n",
		utils.FormatPrice(order.Subtotal), utils.FormatPrice(order.Shipping),
		utils.FormatPrice(order.Tax), utils.FormatPrice(order.Total))
	fmt.Fprintf(&h, "</ul><p>Subtotal: %s<br>Shipping: %s<br>Tax: %s<br><strong>Total: %s</strong></p>",
		utils.FormatPrice(order.Subtotal), utils.FormatPrice(order.Shipping),
		utils.FormatPrice(order.Tax), utils.FormatPrice(order.Total))

	return subject, t.String(), h.String()
}
