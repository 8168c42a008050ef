// Package pedido defines the canonical order record used throughout the
// pipeline: the platform-agnostic shape every input variant is normalized
// into and every output is mapped from.
//
// JSON tags keep the upstream pt-BR field names so the backup file stays
// compatible with the records the marketplace export produced.
package pedido

import (
	"fmt"
	"strings"

	"github.com/pvlabs/yampi2bling/internal/domain/money"
)

// Record is one order line item. Every field is always populated — absent
// input maps to the empty string, never null — so downstream mapping is
// total over malformed exports.
type Record struct {
	ID                 string `json:"id"`
	Data               string `json:"data"`
	Cliente            string `json:"cliente"`
	ClienteDocument    string `json:"cliente_document"`
	ClienteEmail       string `json:"cliente_email"`
	ClienteTelefone    string `json:"cliente_telefone"`
	EntregaRua         string `json:"entrega_rua"`
	EntregaNumero      string `json:"entrega_numero"`
	EntregaComplemento string `json:"entrega_complemento"`
	EntregaBairro      string `json:"entrega_bairro"`
	EntregaCidade      string `json:"entrega_cidade"`
	EntregaEstado      string `json:"entrega_estado"`
	EntregaCEP         string `json:"entrega_cep"`
	Produto            string `json:"produto"`
	IDVariante         string `json:"id_variante"`
	SKU                string `json:"sku"`

	Quantidade    money.Flex `json:"quantidade"`
	TotalFrete    money.Flex `json:"total_frete"`
	TotalDesconto money.Flex `json:"total_desconto"`

	Entrega      string `json:"entrega"`
	Pagamento    string `json:"pagamento"`
	Parcelamento string `json:"parcelamento"`

	// Attached by the quote engine. Absent until a run succeeds for this
	// order; absent forever if the CEP was invalid or the call failed.
	OpcoesFrete      []RateOption `json:"opcoes_frete,omitempty"`
	FreteSelecionado *RateOption  `json:"frete_selecionado,omitempty"`
}

// RateOption is one carrier rate returned for an order. Field names mirror
// the Frenet wire format, price included (numeric transmitted as text).
type RateOption struct {
	Carrier            string     `json:"Carrier"`
	CarrierCode        string     `json:"CarrierCode,omitempty"`
	ServiceCode        string     `json:"ServiceCode,omitempty"`
	ServiceDescription string     `json:"ServiceDescription"`
	ShippingPrice      money.Flex `json:"ShippingPrice"`
	DeliveryTime       string     `json:"DeliveryTime,omitempty"`
	Error              bool       `json:"Error,omitempty"`
	Msg                string     `json:"Msg,omitempty"`
}

// Price returns the option's numeric price.
func (o RateOption) Price() float64 {
	return o.ShippingPrice.Float(0)
}

// Label formats the option the way the export schema wants the carrier
// column: "Carrier (ServiceDescription)".
func (o RateOption) Label() string {
	return fmt.Sprintf("%s (%s)", o.Carrier, o.ServiceDescription)
}

// CEPDigits returns the destination postal code reduced to its digits.
func (r *Record) CEPDigits() string {
	var b strings.Builder
	for _, c := range r.EntregaCEP {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Quantity returns the coerced unit quantity, defaulting to 1.
func (r *Record) Quantity() float64 {
	return r.Quantidade.Float(1)
}

// Freight returns the freight value to charge for this order: the selected
// quote price when one exists, else the marketplace's original freight.
func (r *Record) Freight() float64 {
	if r.FreteSelecionado != nil {
		return r.FreteSelecionado.Price()
	}
	return r.TotalFrete.Float(0)
}

// Discount returns the coerced discount amount.
func (r *Record) Discount() float64 {
	return r.TotalDesconto.Float(0)
}

// SelectFrete overrides the selected rate with the option at idx. Selecting
// the already-selected index is a no-op in effect.
func (r *Record) SelectFrete(idx int) error {
	if idx < 0 || idx >= len(r.OpcoesFrete) {
		return fmt.Errorf("frete option %d out of range (order has %d options)", idx, len(r.OpcoesFrete))
	}
	opt := r.OpcoesFrete[idx]
	r.FreteSelecionado = &opt
	return nil
}
