package quote

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// PricingPolicy parámetros de precios de un despliegue. Solo uno de los dos modos está activo.
type PricingPolicy struct {
	Mode               entity.PricingMode
	InstallmentPremium decimal.Decimal // 0.15: el precio de lista lleva un 15% de prima de cuotas
	TaxRate            decimal.Decimal // 0.20: impuesto plano sumado en modo tax
	RoundPlaces        int32
}

// DefaultPricingPolicy modo cuotas, prima 15%, impuesto 20%, dos decimales.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		Mode:               entity.PricingModeInstallment,
		InstallmentPremium: decimal.RequireFromString("0.15"),
		TaxRate:            decimal.RequireFromString("0.20"),
		RoundPlaces:        2,
	}
}

// ParsePricingPolicy construye la política a partir de los valores de configuración (texto).
func ParsePricingPolicy(mode, premium, taxRate string, roundPlaces int) (PricingPolicy, error) {
	p := PricingPolicy{Mode: entity.PricingMode(mode), RoundPlaces: int32(roundPlaces)}
	var err error
	if p.InstallmentPremium, err = decimal.NewFromString(premium); err != nil {
		return PricingPolicy{}, fmt.Errorf("%w: prima de cuotas %q", domain.ErrInvalidInput, premium)
	}
	if p.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return PricingPolicy{}, fmt.Errorf("%w: tasa de impuesto %q", domain.ErrInvalidInput, taxRate)
	}
	if err := p.Validate(); err != nil {
		return PricingPolicy{}, err
	}
	return p, nil
}

// Validate revisa modo, tasas no negativas y decimales.
func (p PricingPolicy) Validate() error {
	switch p.Mode {
	case entity.PricingModeInstallment, entity.PricingModeTax:
	default:
		return fmt.Errorf("%w: modo de precios %q", domain.ErrInvalidInput, p.Mode)
	}
	if p.InstallmentPremium.IsNegative() || p.TaxRate.IsNegative() {
		return fmt.Errorf("%w: las tasas no pueden ser negativas", domain.ErrInvalidInput)
	}
	if p.RoundPlaces < 0 {
		return fmt.Errorf("%w: decimales de redondeo", domain.ErrInvalidInput)
	}
	return nil
}

// Pricing importes derivados de un carrito.
type Pricing struct {
	Mode            entity.PricingMode
	Subtotal        decimal.Decimal
	ListTotal       decimal.Decimal
	DiscountApplied bool
	DiscountedTotal decimal.Decimal
	TaxRate         decimal.Decimal
	TaxAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
}

// Subtotal Σ(precio unitario × cantidad).
func Subtotal(lines []entity.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Price calcula los importes según el modo activo.
//
// installment: DiscountedTotal = ListTotal / (1 + prima) si applyDiscount, si no ListTotal.
// tax: TaxAmount = ListTotal × tasa, GrandTotal = ListTotal + TaxAmount; applyDiscount se ignora.
// Los importes derivados se redondean a RoundPlaces (mitad hacia arriba, lejos de cero).
func Price(lines []entity.CartLine, applyDiscount bool, policy PricingPolicy) Pricing {
	list := Subtotal(lines)
	p := Pricing{
		Mode:            policy.Mode,
		Subtotal:        list,
		ListTotal:       list,
		DiscountedTotal: list,
		TaxAmount:       decimal.Zero,
		TaxRate:         decimal.Zero,
		GrandTotal:      list,
	}

	switch policy.Mode {
	case entity.PricingModeTax:
		p.TaxRate = policy.TaxRate
		p.TaxAmount = list.Mul(policy.TaxRate).Round(policy.RoundPlaces)
		p.GrandTotal = list.Add(p.TaxAmount)
	default:
		p.Mode = entity.PricingModeInstallment
		if applyDiscount {
			p.DiscountApplied = true
			p.DiscountedTotal = list.Div(decimal.NewFromInt(1).Add(policy.InstallmentPremium)).Round(policy.RoundPlaces)
		}
		p.GrandTotal = p.DiscountedTotal
	}
	return p
}
