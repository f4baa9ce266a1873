package emailControllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type OrderEmailItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderEmailInput struct {
	CustomerEmail   string           `json:"customer_email"`
	CustomerName    string           `json:"customer_name"`
	OrderNumber     string           `json:"order_number"`
	OrderDate       string           `json:"order_date"`
	Items           []OrderEmailItem `json:"items"`
	Subtotal        float64          `json:"subtotal"`
	Tax             float64          `json:"tax"`
	Shipping        float64          `json:"shipping"`
	Total           float64          `json:"total"`
	ShippingAddress string           `json:"shipping_address"`
}

// POST /api/send-order-email
func SendOrderEmail(mailer *Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input OrderEmailInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.CustomerEmail == "" || input.OrderNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		if input.CustomerName == "" {
			input.CustomerName = "Valued Customer"
		}
		if input.OrderDate == "" {
			input.OrderDate = time.Now().Format("January 2, 2006")
		}

		if mailer == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
			return
		}

		subject := fmt.Sprintf("Order Confirmed - #%s", input.OrderNumber)
		if err := mailer.send(input.CustomerEmail, subject, orderEmailBody(input)); err != nil {
			log.Printf("❌ Failed to send order email for #%s: %v", input.OrderNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func orderEmailBody(input OrderEmailInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", input.CustomerName)
	fmt.Fprintf(&b, "<p>Order <strong>#%s</strong> placed on %s.</p>", input.OrderNumber, input.OrderDate)

	b.WriteString("<table><tr><th>Item</th><th>Qty</th><th>Price</th></tr>")
	for _, item := range input.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>$%.2f</td></tr>", item.Name, item.Quantity, item.Price)
	}
	b.WriteString("</table>")

	fmt.Fprintf(&b, "<p>Subtotal: $%.2f<br>Tax: $%.2f<br>Shipping: $%.2f<br><strong>Total: $%.2f</strong></p>",
		input.Subtotal, input.Tax, input.Shipping, input.Total)

	if input.ShippingAddress != "" {
		fmt.Fprintf(&b, "<p>Shipping to: %s</p>", input.ShippingAddress)
	}

	return b.String()
}
