package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
)

func rupees(v float64) string {
	return "Rs " + strconv.FormatFloat(v, 'f', -1, 64)
}

// OrderConfirmation lists every line of the order with its total.
func OrderConfirmation(o models.Order) string {
	lines := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, fmt.Sprintf("• %s x%d - %s", item.ProductName, item.Quantity, rupees(item.Total)))
	}

	return fmt.Sprintf(`🛒 *Order Confirmation*
Order ID: #%s

%s

💰 Total: %s
Payment: %s

धन्यवाद! Thank you for your purchase!
- किराना डिजिटल`, o.ID, strings.Join(lines, "\n"), rupees(o.Total), strings.ToUpper(string(o.PaymentMethod)))
}

func PaymentReceipt(o models.Order) string {
	var sb strings.Builder
	sb.WriteString("🧾 *Payment Receipt*\n")
	sb.WriteString(fmt.Sprintf("Order ID: #%s\n", o.ID))
	if o.TransactionID != "" {
		sb.WriteString(fmt.Sprintf("Transaction: %s\n", o.TransactionID))
	}
	sb.WriteString(fmt.Sprintf("\nSubtotal: %s\nVAT: %s\n💰 Paid: %s via %s\n",
		rupees(o.Subtotal), rupees(o.Tax), rupees(o.Total), strings.ToUpper(string(o.PaymentMethod))))
	sb.WriteString("\nभुक्तानी प्राप्त भयो। Payment received.\n- किराना डिजिटल")
	return sb.String()
}

func StockAlert(productName string, currentStock int) string {
	return fmt.Sprintf(`⚠️ *Stock Alert*

%s
Current Stock: %d units

कृपया अर्डर दिनुहोस्।
Please reorder soon.

- Kirana Digital`, productName, currentStock)
}

func PaymentReminder(customerName string, amount float64) string {
	return fmt.Sprintf(`💳 *Payment Reminder*

Dear %s,

Outstanding Amount: %s

कृपया भुक्तानी गर्नुहोस्।
Please make payment.

Thank you!
- किराना डिजिटल`, customerName, rupees(amount))
}

// ReorderSuggestion adds the supplier line only when a phone is known.
func ReorderSuggestion(productName string, quantity int, supplierPhone string) string {
	msg := fmt.Sprintf(`📦 *Smart Reorder Suggestion*

Product: %s
Recommended Order: %d units

Based on AI sales prediction.`, productName, quantity)

	if supplierPhone != "" {
		msg += "\n\nSupplier: " + supplierPhone
	}
	return msg + "\n\n- Kirana Digital AI"
}
