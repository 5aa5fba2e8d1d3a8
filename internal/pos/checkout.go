package pos

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/rogerio-castellano/kirana-pos/internal/notify"
	"github.com/rogerio-castellano/kirana-pos/internal/payment"
	"github.com/rogerio-castellano/kirana-pos/internal/repo"
)

var (
	ErrPaymentFailed  = errors.New("payment failed")
	ErrInvalidBarcode = errors.New("invalid barcode")
	ErrNoSupplier     = errors.New("product has no supplier contact")
	ErrNoPhone        = errors.New("customer has no phone number")
)

type CheckoutRequest struct {
	PaymentMethod models.PaymentMethod
	CustomerName  string
	CustomerPhone string
	// Bank is required for ConnectIPS.
	Bank string
}

type Receipt struct {
	Order    models.Order     `json:"order"`
	Products []models.Product `json:"products"`
	Messages []models.Message `json:"messages,omitempty"`
}

// Checkout settles the cart. Gateway payments are verified before anything is
// written; the order and all stock decrements are then stored together. The
// cart is cleared only when the sale has been stored.
func (s *Service) Checkout(ctx context.Context, cart *Cart, req CheckoutRequest) (Receipt, error) {
	if cart == nil || cart.Len() == 0 {
		return Receipt{}, ErrEmptyCart
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCash
	}

	totals := cart.Totals()
	order := models.Order{
		ID:            s.newID(),
		Items:         cart.Items(),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}

	if req.PaymentMethod.Digital() {
		txID, err := s.pay(ctx, order, req.Bank)
		if err != nil {
			return Receipt{}, err
		}
		order.TransactionID = txID

		gateway := payment.GatewayName(req.PaymentMethod)
		s.voice.PlayAlert(notify.FormatPaymentAlert(gateway, order.Total, notify.Nepali), notify.Nepali)
	}

	now := s.clock.Now()
	order.PaymentStatus = models.PaymentCompleted
	order.CreatedAt = now
	order.CompletedAt = &now

	stored, updated, err := s.store.CommitSale(ctx, order)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to store order: %w", err)
	}
	log.Printf("✅ Order %s completed: Rs %.2f via %s", stored.ID, stored.Total, stored.PaymentMethod)

	for _, p := range updated {
		if _, low := models.ClassifyStock(p.Stock, p.MinStock); low {
			s.voice.PlayAlert(notify.FormatStockAlert(p.Name, p.Stock, notify.Nepali), notify.Nepali)
		}
	}

	receipt := Receipt{Order: stored, Products: updated}
	if req.CustomerPhone != "" {
		receipt.Messages = s.notifyCustomer(ctx, stored)
	}

	cart.Clear()
	return receipt, nil
}

// pay runs one gateway session to completion and returns its transaction id.
func (s *Service) pay(ctx context.Context, order models.Order, bank string) (string, error) {
	session, err := s.payments.NewSession(order.PaymentMethod, order.Total, order.ID)
	if err != nil {
		return "", err
	}
	if order.PaymentMethod == models.PaymentConnectIPS {
		if bank == "" {
			return "", payment.ErrBankRequired
		}
		if err := session.SelectBank(bank); err != nil {
			return "", err
		}
	}

	res, err := session.Pay(ctx)
	if err != nil {
		return "", err
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", ErrPaymentFailed, res.Message)
	}
	return res.TransactionID, nil
}

// notifyCustomer never fails the sale: the order is already stored.
func (s *Service) notifyCustomer(ctx context.Context, o models.Order) []models.Message {
	var sent []models.Message

	msg, err := s.messenger.Send(ctx, o.CustomerPhone, notify.OrderConfirmation(o), models.MessageOrderConfirmation)
	if err != nil {
		log.Printf("⚠️ Order confirmation for %s not sent: %v", o.ID, err)
		return sent
	}
	sent = append(sent, msg)

	if o.PaymentMethod.Digital() {
		msg, err := s.messenger.Send(ctx, o.CustomerPhone, notify.PaymentReceipt(o), models.MessagePaymentReceipt)
		if err != nil {
			log.Printf("⚠️ Payment receipt for %s not sent: %v", o.ID, err)
			return sent
		}
		sent = append(sent, msg)
	}
	return sent
}

// Scan reads one barcode and looks up its product. The code is returned even
// when the lookup fails.
func (s *Service) Scan(ctx context.Context) (string, models.Product, error) {
	code, err := s.scanner.Scan(ctx)
	if err != nil {
		return "", models.Product{}, err
	}
	if !notify.IsValidBarcode(code) {
		return code, models.Product{}, fmt.Errorf("%w: %q", ErrInvalidBarcode, code)
	}

	p, err := s.store.ProductByBarcode(ctx, code)
	if err != nil {
		return code, models.Product{}, fmt.Errorf("barcode %s: %w", code, err)
	}
	return code, p, nil
}

// ScanToCart scans a barcode and adds the matching product to cart.
func (s *Service) ScanToCart(ctx context.Context, cart *Cart) (models.Product, error) {
	_, p, err := s.Scan(ctx)
	if err != nil {
		return models.Product{}, err
	}
	if err := cart.Add(p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartFromLines builds a cart against the current catalogue, applying the same
// stock checks as adding units one at a time.
func (s *Service) CartFromLines(ctx context.Context, lines []CartLine) (*Cart, error) {
	cart := s.NewCart()
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, l.ProductID)
		}
		p, err := s.store.Product(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", l.ProductID, err)
		}
		if err := cart.Add(p); err != nil {
			return nil, err
		}
		if l.Quantity > 1 {
			if err := cart.UpdateQuantity(p.ID, l.Quantity-1); err != nil {
				return nil, err
			}
		}
	}
	return cart, nil
}

// SendReorderAlert messages the product's supplier with the forecast's
// recommended order quantity.
func (s *Service) SendReorderAlert(ctx context.Context, productID string) (models.Message, error) {
	p, err := s.store.Product(ctx, productID)
	if err != nil {
		return models.Message{}, err
	}
	if p.Supplier == "" {
		return models.Message{}, fmt.Errorf("%w: %s", ErrNoSupplier, p.Name)
	}
	orders, err := s.store.Orders(ctx)
	if err != nil {
		return models.Message{}, err
	}

	preds := s.forecaster.PredictDemand([]models.Product{p}, orders)
	qty := preds[0].RecommendedOrder

	body := notify.ReorderSuggestion(p.Name, qty, p.Supplier)
	return s.messenger.Send(ctx, p.Supplier, body, models.MessageReorderSuggestion)
}

// SendPaymentReminder messages a customer about their outstanding credit.
func (s *Service) SendPaymentReminder(ctx context.Context, customerID string) (models.Message, error) {
	customers, err := s.store.Customers(ctx)
	if err != nil {
		return models.Message{}, err
	}
	for _, c := range customers {
		if c.ID != customerID {
			continue
		}
		if c.Phone == "" {
			return models.Message{}, ErrNoPhone
		}
		return s.messenger.Send(ctx, c.Phone, notify.PaymentReminder(c.Name, c.Credit), models.MessagePaymentReminder)
	}
	return models.Message{}, repo.ErrCustomerNotFound
}
