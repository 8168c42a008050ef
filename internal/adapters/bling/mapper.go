// Package bling maps canonical records into the Bling order-import schema
// and writes the import workbook plus the JSON backup file.
//
// Column names are literal contract: Bling's import feature matches them
// exactly, misspellings included ("Trasportadora" is theirs, keep it).
package bling

import (
	"strings"
	"time"

	"github.com/pvlabs/yampi2bling/internal/domain/catalog"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
	"github.com/pvlabs/yampi2bling/internal/domain/region"
)

// NoteRecalculated marks orders whose freight came from a Frenet quote.
const NoteRecalculated = "Frete Recalculado via Frenet"

// dueDateDays is how far ahead the expected date is set.
const dueDateDays = 5

// Columns is the import schema, in order.
var Columns = []string{
	"Nr Pedido",
	"Nome Comprador",
	"Data da Venda",
	"CPF/CNPJ Comprador",
	"Endereço Comprador",
	"Bairro Comprador",
	"Número Comprador",
	"Complemento Comprador",
	"CEP Comprador",
	"Cidade Comprador",
	"UF Comprador",
	"Telefone Comprador",
	"Celular Comprador",
	"E-mail Comprador",
	"Produto",
	"SKU",
	"Un",
	"Quantidade",
	"Valor Unitário",
	"Valor Total",
	"Total Pedido",
	"Valor Frete Pedido",
	"Valor Desconto Pedido",
	"Nome Entrega",
	"Endereço Entrega",
	"Número Entrega",
	"Complemento Entrega",
	"Cidade Entrega",
	"UF Entrega",
	"CEP Entrega",
	"Bairro Entrega",
	"Trasportadora",
	"Serviço",
	"Tipo Frete",
	"Observações",
	"Método Pagamento",
	"Qtd Parcela",
	"Data Prevista",
	"Vendedor",
	"Forma Pagamento",
}

// Row is one mapped output row, keyed by column name. Writers iterate
// Columns to keep the order fixed.
type Row map[string]interface{}

// MapRecord maps one canonical record to its import row. It is called for
// every record whether or not a quote exists: unquoted orders keep the
// marketplace freight and carrier label, with no note.
func MapRecord(rec *pedido.Record, now time.Time) Row {
	kit := catalog.Resolve(rec.SKU, rec.Produto)
	qty := rec.Quantity()
	discount := rec.Discount()

	freight := rec.TotalFrete.Float(0)
	carrier := rec.Entrega
	note := ""
	if rec.FreteSelecionado != nil {
		freight = rec.FreteSelecionado.Price()
		carrier = rec.FreteSelecionado.Label()
		note = NoteRecalculated
	}

	lineTotal := kit.Price * qty
	orderTotal := lineTotal + freight - discount
	uf := region.UF(rec.EntregaEstado)

	// The export embeds a time component; Bling wants the date alone.
	saleDate := ""
	if rec.Data != "" {
		saleDate = strings.SplitN(rec.Data, " ", 2)[0]
	}

	dueDate := now.AddDate(0, 0, dueDateDays).Format("02/01/2006")

	return Row{
		"Nr Pedido":             rec.ID,
		"Nome Comprador":        rec.Cliente,
		"Data da Venda":         saleDate,
		"CPF/CNPJ Comprador":    rec.ClienteDocument,
		"Endereço Comprador":    rec.EntregaRua,
		"Bairro Comprador":      rec.EntregaBairro,
		"Número Comprador":      rec.EntregaNumero,
		"Complemento Comprador": rec.EntregaComplemento,
		"CEP Comprador":         rec.EntregaCEP,
		"Cidade Comprador":      rec.EntregaCidade,
		"UF Comprador":          uf,
		"Telefone Comprador":    rec.ClienteTelefone,
		"Celular Comprador":     rec.ClienteTelefone,
		"E-mail Comprador":      rec.ClienteEmail,
		"Produto":               rec.Produto,
		"SKU":                   kit.SKU,
		"Un":                    "KIT",
		"Quantidade":            qty,
		"Valor Unitário":        kit.Price,
		"Valor Total":           lineTotal,
		"Total Pedido":          orderTotal,
		"Valor Frete Pedido":    freight,
		"Valor Desconto Pedido": discount,
		"Nome Entrega":          rec.Cliente,
		"Endereço Entrega":      rec.EntregaRua,
		"Número Entrega":        rec.EntregaNumero,
		"Complemento Entrega":   rec.EntregaComplemento,
		"Cidade Entrega":        rec.EntregaCidade,
		"UF Entrega":            uf,
		"CEP Entrega":           rec.EntregaCEP,
		"Bairro Entrega":        rec.EntregaBairro,
		"Trasportadora":         carrier,
		"Serviço":               "",
		"Tipo Frete":            "R",
		"Observações":           note,
		"Método Pagamento":      rec.Pagamento,
		"Qtd Parcela":           rec.Parcelamento,
		"Data Prevista":         dueDate,
		"Vendedor":              "",
		"Forma Pagamento":       rec.Pagamento,
	}
}
