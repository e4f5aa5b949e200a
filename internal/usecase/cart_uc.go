package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/makeupglamours/shop/internal/domain"
)

const cartKeyPrefix = "cart:"

// CartUC owns the cart lifecycle: it loads session carts from the key-value
// collaborator, runs the stock reconciliation on them, and persists a
// snapshot after every mutation.
type CartUC struct {
	Products domain.ProductRepo
	Config   domain.SiteConfigRepo
	Store    domain.KVStore
}

func (uc *CartUC) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	raw, err := uc.Store.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{}, nil
		}
		return nil, err
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		// A corrupt snapshot is unrecoverable; start the session over.
		log.Warn().Err(err).Str("session", sessionID).Msg("discarding unreadable cart snapshot")
		return &domain.Cart{}, nil
	}
	return &cart, nil
}

func (uc *CartUC) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	if cart.IsEmpty() {
		return uc.Store.Del(ctx, cartKeyPrefix+sessionID)
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return uc.Store.Set(ctx, cartKeyPrefix+sessionID, raw)
}

// Add puts qty units of a product, or of one of its variants, into the
// session cart. The returned count is how many units fit under the stock
// ceiling; zero means the line is already at capacity.
func (uc *CartUC) Add(ctx context.Context, sessionID string, productID uuid.UUID, variantID *uuid.UUID, qty int) (*domain.Cart, int, error) {
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	var v *domain.Variant
	if variantID != nil {
		if v = p.VariantByID(*variantID); v == nil {
			return nil, 0, domain.ErrNotFound
		}
	}
	cart, err := uc.Get(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	added, err := cart.Add(p, v, qty)
	if err != nil {
		return nil, 0, err
	}
	if added > 0 {
		if err := uc.save(ctx, sessionID, cart); err != nil {
			return nil, 0, err
		}
	}
	return cart, added, nil
}

func (uc *CartUC) UpdateQuantity(ctx context.Context, sessionID, lineID string, qty int) (*domain.Cart, error) {
	cart, err := uc.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(lineID, qty)
	if err := uc.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartUC) Remove(ctx context.Context, sessionID, lineID string) (*domain.Cart, error) {
	cart, err := uc.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Remove(lineID)
	if err := uc.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CheckoutLink formats the session cart as a WhatsApp order message and
// returns the deep link the browser should be sent to. The cart is left
// untouched: the actual sale is closed over chat and stock is only adjusted
// by whoever fulfills it.
func (uc *CartUC) CheckoutLink(ctx context.Context, sessionID string) (string, error) {
	cart, err := uc.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if cart.IsEmpty() {
		return "", domain.ErrEmptyCart
	}
	cfg, err := uc.Config.Get(ctx)
	if err != nil {
		return "", err
	}
	return CheckoutURL(cfg.PhoneNumber, OrderMessage(cart)), nil
}

// OrderMessage renders the cart as the plain-text summary sent over
// WhatsApp: greeting, one line per cart entry, bolded total.
func OrderMessage(cart *domain.Cart) string {
	var b strings.Builder
	b.WriteString("Hola, estoy interesado/a en finalizar la compra de los siguientes productos:\n\n")
	for i, l := range cart.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %dx %s - $%.2f", l.Quantity, l.DisplayName(), l.Subtotal())
	}
	fmt.Fprintf(&b, "\n\n*Total a Pagar: $%.2f*", cart.Total())
	return b.String()
}

// CheckoutURL builds the wa.me deep link for a destination phone number and
// a pre-composed message.
func CheckoutURL(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
