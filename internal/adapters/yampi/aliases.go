package yampi

import (
	"strings"

	"github.com/pvlabs/yampi2bling/internal/domain/money"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

// fieldSpec maps one canonical record field to the ordered list of column
// names it may arrive under. Aliases are matched case-insensitively after
// trimming; the first alias with a non-empty value wins, else the default.
//
// Upstream exports drift: the Yampi CSV uses snake_case names, re-imported
// Bling sheets use the Bling column labels, and hand-edited sheets use
// whatever short name the operator typed. New variants are handled by
// adding an alias here, nowhere else.
type fieldSpec struct {
	aliases  []string
	fallback string
	assign   func(*pedido.Record, string)
}

var fieldSpecs = []fieldSpec{
	{
		aliases: []string{"id", "nr pedido", "número pedido", "numero pedido", "pedido"},
		assign:  func(r *pedido.Record, v string) { r.ID = v },
	},
	{
		aliases: []string{"data", "data da venda", "data venda"},
		assign:  func(r *pedido.Record, v string) { r.Data = v },
	},
	{
		aliases: []string{"cliente", "nome comprador", "nome entrega", "nome", "comprador"},
		assign:  func(r *pedido.Record, v string) { r.Cliente = v },
	},
	{
		aliases: []string{"cliente_document", "cpf/cnpj comprador", "cpf/cnpj", "cpf", "documento"},
		assign:  func(r *pedido.Record, v string) { r.ClienteDocument = v },
	},
	{
		aliases: []string{"cliente_email", "e-mail comprador", "e-mail", "email"},
		assign:  func(r *pedido.Record, v string) { r.ClienteEmail = v },
	},
	{
		aliases: []string{"cliente_telefone", "telefone comprador", "celular comprador", "telefone", "celular"},
		assign:  func(r *pedido.Record, v string) { r.ClienteTelefone = v },
	},
	{
		aliases: []string{"entrega_rua", "endereço comprador", "endereco comprador", "endereço entrega", "endereco entrega", "endereço", "endereco", "rua"},
		assign:  func(r *pedido.Record, v string) { r.EntregaRua = v },
	},
	{
		aliases: []string{"entrega_numero", "número comprador", "numero comprador", "número entrega", "numero entrega", "número", "numero"},
		assign:  func(r *pedido.Record, v string) { r.EntregaNumero = v },
	},
	{
		aliases: []string{"entrega_complemento", "complemento comprador", "complemento entrega", "complemento"},
		assign:  func(r *pedido.Record, v string) { r.EntregaComplemento = v },
	},
	{
		aliases: []string{"entrega_bairro", "bairro comprador", "bairro entrega", "bairro"},
		assign:  func(r *pedido.Record, v string) { r.EntregaBairro = v },
	},
	{
		aliases: []string{"entrega_cidade", "cidade comprador", "cidade entrega", "cidade"},
		assign:  func(r *pedido.Record, v string) { r.EntregaCidade = v },
	},
	{
		aliases: []string{"entrega_estado", "uf comprador", "uf entrega", "estado", "uf"},
		assign:  func(r *pedido.Record, v string) { r.EntregaEstado = v },
	},
	{
		aliases: []string{"entrega_cep", "cep comprador", "cep entrega", "cep"},
		assign:  func(r *pedido.Record, v string) { r.EntregaCEP = v },
	},
	{
		aliases: []string{"produto", "descrição", "descricao", "item"},
		assign:  func(r *pedido.Record, v string) { r.Produto = v },
	},
	{
		aliases: []string{"id_variante", "id variante", "variante"},
		assign:  func(r *pedido.Record, v string) { r.IDVariante = v },
	},
	{
		aliases: []string{"sku", "sku produto", "código", "codigo"},
		assign:  func(r *pedido.Record, v string) { r.SKU = v },
	},
	{
		aliases:  []string{"quantidade", "qtd", "qtde", "quant"},
		fallback: "1",
		assign:   func(r *pedido.Record, v string) { r.Quantidade = money.Flex(v) },
	},
	{
		aliases: []string{"total_frete", "valor frete pedido", "valor frete", "frete"},
		assign:  func(r *pedido.Record, v string) { r.TotalFrete = money.Flex(v) },
	},
	{
		aliases: []string{"total_desconto", "valor desconto pedido", "valor desconto", "desconto"},
		assign:  func(r *pedido.Record, v string) { r.TotalDesconto = money.Flex(v) },
	},
	{
		aliases:  []string{"entrega", "trasportadora", "transportadora", "forma de envio"},
		fallback: "Padrao",
		assign:   func(r *pedido.Record, v string) { r.Entrega = v },
	},
	{
		aliases:  []string{"pagamento", "método pagamento", "metodo pagamento", "forma pagamento"},
		fallback: "Não Informado",
		assign:   func(r *pedido.Record, v string) { r.Pagamento = v },
	},
	{
		aliases: []string{"parcelamento", "qtd parcela", "parcelas"},
		assign:  func(r *pedido.Record, v string) { r.Parcelamento = v },
	},
}

// columnKey normalizes a column name for alias matching.
func columnKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// recordFromRow resolves one raw row into a canonical record through the
// alias table. Every field is assigned, so records are total even when the
// source sheet carries only a handful of columns.
func recordFromRow(row map[string]string) pedido.Record {
	var rec pedido.Record
	for _, spec := range fieldSpecs {
		value := spec.fallback
		for _, alias := range spec.aliases {
			if v, ok := row[alias]; ok && strings.TrimSpace(v) != "" {
				value = strings.TrimSpace(v)
				break
			}
		}
		spec.assign(&rec, value)
	}
	return rec
}
