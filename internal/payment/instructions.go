package payment

import "fmt"

// Instructions returns the customer-facing steps for a method. "bank" keeps
// its own transfer instructions even though it settles through Fonepay.
func Instructions(method string, amount float64) string {
	switch method {
	case "esewa":
		return fmt.Sprintf(`eSewa Payment Instructions:
1. Open eSewa app
2. Scan QR code or enter Merchant ID: %s
3. Enter amount: Rs %.2f
4. Complete payment`, gateways["esewa"].merchantID, amount)

	case "khalti":
		return fmt.Sprintf(`Khalti Payment Instructions:
1. Open Khalti app
2. Select 'Pay to Merchant'
3. Enter Merchant Code: %s
4. Amount: Rs %.2f`, gateways["khalti"].merchantID, amount)

	case "fonepay":
		return fmt.Sprintf(`Fonepay Payment Instructions:
1. Open Fonepay or your bank app
2. Scan the QR code
3. Confirm amount: Rs %.2f
4. Complete payment`, amount)

	case "bank":
		return fmt.Sprintf(`Bank Transfer Instructions:
Account Name: Kirana Digital
Account No: 0123456789
Bank: Nepal Bank Ltd
Amount: Rs %.2f`, amount)

	case "connectips":
		return fmt.Sprintf(`ConnectIPS Instructions:
1. Login to your bank app
2. Select ConnectIPS
3. Merchant ID: %s
4. Amount: Rs %.2f`, gateways["connectips"].merchantID, amount)
	}
	return "Payment instructions not available"
}
