package frenet

import "github.com/pvlabs/yampi2bling/internal/domain/pedido"

// QuoteItem describes one package in a quote request.
type QuoteItem struct {
	Weight   float64 `json:"Weight"`
	Length   float64 `json:"Length"`
	Height   float64 `json:"Height"`
	Width    float64 `json:"Width"`
	Quantity float64 `json:"Quantity"`
	SKU      string  `json:"SKU"`
}

// QuoteRequest is the payload sent to the Frenet shipping quote endpoint.
// SellerCEP and RecipientCountry are attached by the client; callers fill
// in the rest.
type QuoteRequest struct {
	SellerCEP            string      `json:"SellerCEP"`
	RecipientCEP         string      `json:"RecipientCEP"`
	ShipmentInvoiceValue float64     `json:"ShipmentInvoiceValue"`
	ShippingItemArray    []QuoteItem `json:"ShippingItemArray"`
	RecipientCountry     string      `json:"RecipientCountry"`
}

// QuoteResponse is the upstream response. The misspelled field name is
// Frenet's, not ours.
type QuoteResponse struct {
	ShippingSevicesArray []pedido.RateOption `json:"ShippingSevicesArray"`
}
