package yampi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "id,data,cliente,cliente_document,cliente_email,cliente_telefone," +
	"entrega_rua,entrega_numero,entrega_complemento,entrega_bairro,entrega_cidade," +
	"entrega_estado,entrega_cep,produto,sku,quantidade,total_frete,total_desconto," +
	"entrega,pagamento,parcelamento;"

const sampleLine = `"4321";"10/01/2025 14:32";"Maria Silva";"123.456.789-00";` +
	`"maria@email.com";"(11) 99999-0000";"Rua das Flores";"100";"Apto 12";"Centro";` +
	`"São Paulo";"São Paulo";"01310-100";"Kit 10 Panos";"8812733";"567-PVLC";"1";` +
	`"""18,90""";"""0,00""";"PAC";"Cartão de Crédito";"1"`

func TestParseCSV(t *testing.T) {
	input := sampleHeader + "\n" + sampleLine + "\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "4321", rec.ID)
	assert.Equal(t, "10/01/2025 14:32", rec.Data)
	assert.Equal(t, "Maria Silva", rec.Cliente)
	assert.Equal(t, "123.456.789-00", rec.ClienteDocument)
	assert.Equal(t, "São Paulo", rec.EntregaEstado)
	assert.Equal(t, "01310-100", rec.EntregaCEP)
	assert.Equal(t, "Kit 10 Panos", rec.Produto)
	assert.Equal(t, "8812733", rec.IDVariante)
	assert.Equal(t, "567-PVLC", rec.SKU)
	assert.Equal(t, 1.0, rec.Quantity())
	assert.Equal(t, 18.90, rec.Freight())
	assert.Equal(t, 0.0, rec.Discount())
	assert.Equal(t, "PAC", rec.Entrega)
	assert.Equal(t, "Cartão de Crédito", rec.Pagamento)
}

func TestParseCSVTable_HeaderSplice(t *testing.T) {
	// 15 header names; the variant-id column lands at index 14 no matter
	// how long the original header is.
	input := "a,b,c,d,e,f,g,h,i,j,k,l,m,n,o\n1;2;3;4;5;6;7;8;9;10;11;12;13;14;15"

	table, err := ParseCSVTable(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Headers, 16)
	assert.Equal(t, "id_variante", table.Headers[14])
	assert.Equal(t, "o", table.Headers[15])

	require.Len(t, table.Rows, 1)
	// Positional zip: the row's 15th value lands under the spliced name,
	// and the now-16th header gets the empty default.
	assert.Equal(t, "15", table.Rows[0]["id_variante"])
	assert.Equal(t, "", table.Rows[0]["o"])
}

func TestParseCSVTable_SpliceAppendsOnShortHeader(t *testing.T) {
	input := "a,b,c\n1;2;3"

	table, err := ParseCSVTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Headers, 4)
	assert.Equal(t, "id_variante", table.Headers[3])
	assert.Equal(t, "", table.Rows[0]["id_variante"])
}

func TestParseCSVTable_QuotedInternalComma(t *testing.T) {
	// Doubled quotes inside a fragment survive the unquoting pass, so the
	// comma-aware split keeps the value in one piece.
	input := "a,b,c\n" + `"1";"Pano ""Azul, Grande"" Kit";"3"`

	table, err := ParseCSVTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, `Pano "Azul, Grande" Kit`, table.Rows[0]["b"])
	assert.Equal(t, "3", table.Rows[0]["c"])
}

func TestParseCSVTable_MissingTrailingValues(t *testing.T) {
	input := "a,b,c\n1;2"

	table, err := ParseCSVTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1", table.Rows[0]["a"])
	assert.Equal(t, "2", table.Rows[0]["b"])
	assert.Equal(t, "", table.Rows[0]["c"])
	assert.Equal(t, "", table.Rows[0]["id_variante"])
}

func TestParseCSV_OneRecordPerNonBlankLine(t *testing.T) {
	input := sampleHeader + "\n" + sampleLine + "\n\n   \n" + sampleLine + "\n" + sampleLine

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestParseCSV_TrailingSeparatorOnHeaderStripped(t *testing.T) {
	table, err := ParseCSVTable(strings.NewReader("a,b;\n1;2"))
	require.NoError(t, err)
	// "b" must not carry the stray separator.
	assert.Equal(t, "b", table.Headers[1])
}

func TestParseCSV_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("   \n  "))
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("empty header line", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(";\n1;2"))
		assert.ErrorIs(t, err, ErrEmptyHeader)
	})
}

func TestParseCSV_EveryFieldPopulated(t *testing.T) {
	// A record built from a sparse row still carries every canonical
	// field: empty strings, never missing.
	input := "id,cliente\n77;Ana"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "77", rec.ID)
	assert.Equal(t, "Ana", rec.Cliente)
	assert.Equal(t, "", rec.EntregaCEP)
	assert.Equal(t, "", rec.SKU)
	// Literal defaults for the fields that carry them.
	assert.Equal(t, "1", rec.Quantidade.String())
	assert.Equal(t, "Padrao", rec.Entrega)
	assert.Equal(t, "Não Informado", rec.Pagamento)
}
