package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatBRL(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
	assert.Equal(t, "R$ 100,00", FormatBRL(decimal.NewFromInt(100)))
}

func TestGenerateSaleReceipt(t *testing.T) {
	name, cpf := "João", "11144477735"
	sale := &entity.Sale{
		Number:          "V000042",
		SaleDate:        time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		Subtotal:        decimal.NewFromInt(100),
		Total:           decimal.NewFromInt(100),
		PaymentMethod:   "pix",
		Installments:    1,
		Status:          entity.SaleConfirmed,
		SalespersonName: "Ana Souza",
		Items: []entity.SaleItem{{
			ProductCode: "P010", ProductName: "Roteador", Quantity: 2,
			UnitPrice: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(100),
		}},
	}
	customer := &entity.Customer{PersonType: entity.PersonIndividual, FirstName: &name, CPF: &cpf}

	out, err := NewReceiptGenerator("Micro ERP").GenerateSaleReceipt(context.Background(), sale, customer)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewReceiptGenerator("Micro ERP").GenerateSaleReceipt(context.Background(), sale, nil)
	assert.NoError(t, err)
}

func TestCustomerDocument(t *testing.T) {
	cnpj := "11222333000181"
	assert.Equal(t, "CNPJ 11.222.333/0001-81", customerDocument(&entity.Customer{PersonType: entity.PersonCompany, CNPJ: &cnpj}))
	cpf := "52998224725"
	assert.Equal(t, "CPF 529.982.247-25", customerDocument(&entity.Customer{PersonType: entity.PersonIndividual, CPF: &cpf}))
}
