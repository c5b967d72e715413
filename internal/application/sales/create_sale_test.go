package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/testutil/memrepo"
)

type saleFixture struct {
	store      *memrepo.Store
	create     *CreateSaleUseCase
	sales      *SaleUseCase
	customerID int64
	sellerID   int64
	productID  int64
}

func newSaleFixture(t *testing.T, decrementStock bool) *saleFixture {
	t.Helper()
	ctx := context.Background()
	store := memrepo.New()

	role := &entity.Role{Name: "Vendedor", AccessLevel: entity.LevelVendedor, Active: true}
	require.NoError(t, store.RoleRepo().Create(ctx, role))
	seller := &entity.Employee{FirstName: "Ana", LastName: "Souza", CPF: "52998224725", RoleID: role.ID, Username: "ana", Active: true}
	require.NoError(t, store.EmployeeRepo().Create(ctx, seller))
	name, cpf := "João", "11144477735"
	customer := &entity.Customer{PersonType: entity.PersonIndividual, FirstName: &name, CPF: &cpf, Active: true}
	require.NoError(t, store.CustomerRepo().Create(ctx, customer))
	product := &entity.Product{
		Code: "P010", Name: "Roteador", SalePrice: decimal.NewFromInt(50),
		CommissionPercent: decimal.NewFromInt(10), StockCurrent: 5, Active: true,
	}
	require.NoError(t, store.ProductRepo().Create(ctx, product))

	stock := inventory.NewUpdateStockUseCase(store.TxRunner(), store.MovementRepo())
	return &saleFixture{
		store:      store,
		create:     NewCreateSaleUseCase(store.TxRunner(), store.ProductRepo(), stock, decrementStock),
		sales:      NewSaleUseCase(store.SaleRepo(), store.TxRunner(), stock, decrementStock),
		customerID: customer.ID,
		sellerID:   seller.ID,
		productID:  product.ID,
	}
}

func (f *saleFixture) request(qty int) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerID:    f.customerID,
		SalespersonID: f.sellerID,
		Items:         []dto.SaleItemRequest{{ProductID: f.productID, Quantity: qty}},
	}
}

var vendedor = &entity.Principal{EmployeeID: 99, AccessLevel: entity.LevelVendedor}

// ─── Cálculo ─────────────────────────────────────────────────────────────────

func TestCreateSale_DosPorCincuentaDaCien(t *testing.T) {
	f := newSaleFixture(t, false)

	sale, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
	require.NoError(t, err)

	assert.NotZero(t, sale.ID)
	assert.Equal(t, "V000001", sale.Number)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(100)), sale.Subtotal.String())
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(100)), sale.Total.String())
	assert.Equal(t, entity.SaleConfirmed, sale.Status)
	assert.Equal(t, entity.PaymentMethodDefault, sale.PaymentMethod)
	assert.Equal(t, 1, sale.Installments)

	require.Len(t, sale.Items, 1)
	item := sale.Items[0]
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, item.CommissionValue.Equal(decimal.NewFromInt(10)), item.CommissionValue.String())

	require.Len(t, f.store.Commissions, 1)
	for _, c := range f.store.Commissions {
		assert.Equal(t, f.sellerID, c.EmployeeID)
		assert.Equal(t, entity.PaymentPending, c.Status)
		assert.True(t, c.Value.Equal(decimal.NewFromInt(10)))
	}
	assert.Equal(t, 5, f.store.Products[f.productID].StockCurrent, "sin decremento configurado el estoque no cambia")
}

func TestCreateSale_DescuentosYAcrescimo(t *testing.T) {
	f := newSaleFixture(t, false)
	price := decimal.RequireFromString("33.33")
	pct := decimal.RequireFromString("7.5")
	in := f.request(3)
	in.Items[0].UnitPrice = &price
	in.Items[0].CommissionPercent = &pct
	in.Items[0].ItemDiscount = decimal.RequireFromString("9.99")
	in.Discount = decimal.NewFromInt(10)
	in.Surcharge = decimal.RequireFromString("2.50")

	sale, err := f.create.CreateSale(context.Background(), vendedor, in)
	require.NoError(t, err)

	// 3 × 33.33 − 9.99 = 90.00 ; 90 − 10 + 2.5 = 82.50
	assert.Equal(t, "90", sale.Subtotal.String())
	assert.Equal(t, "82.5", sale.Total.String())
	// 90 × 7.5 / 100 = 6.75
	assert.Equal(t, "6.75", sale.Items[0].CommissionValue.String())
}

func TestCreateSale_SinComisionNoCreaFila(t *testing.T) {
	f := newSaleFixture(t, false)
	zero := decimal.Zero
	in := f.request(1)
	in.Items[0].CommissionPercent = &zero

	_, err := f.create.CreateSale(context.Background(), vendedor, in)
	require.NoError(t, err)
	assert.Empty(t, f.store.Commissions)
}

// ─── Validación ──────────────────────────────────────────────────────────────

func TestCreateSale_Validacion(t *testing.T) {
	f := newSaleFixture(t, false)

	_, err := f.create.CreateSale(context.Background(), vendedor, dto.CreateSaleRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Cliente é obrigatório")
	assert.Contains(t, err.Error(), "Vendedor é obrigatório")
	assert.Contains(t, err.Error(), "Pelo menos um item é obrigatório")

	in := f.request(0)
	_, err = f.create.CreateSale(context.Background(), vendedor, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Item 1: quantidade deve ser maior que zero")
}

func TestCreateSale_TotalNoPositivo(t *testing.T) {
	f := newSaleFixture(t, false)
	in := f.request(1)
	in.Discount = decimal.NewFromInt(50)

	_, err := f.create.CreateSale(context.Background(), vendedor, in)
	require.Error(t, err)
	assert.EqualError(t, err, "Valor total inválido")
	assert.Empty(t, f.store.Sales)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	f := newSaleFixture(t, false)
	in := f.request(1)
	in.Items[0].ProductID = 9999

	_, err := f.create.CreateSale(context.Background(), vendedor, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Atomicidad ──────────────────────────────────────────────────────────────

func TestCreateSale_FalloEnItemNoDejaNada(t *testing.T) {
	for _, op := range []string{"SaleRepo.CreateItem", "CommissionRepo.Create"} {
		t.Run(op, func(t *testing.T) {
			f := newSaleFixture(t, false)
			f.store.FailOn[op] = nil

			_, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
			require.ErrorIs(t, err, memrepo.ErrInjected)
			assert.Empty(t, f.store.Sales)
			assert.Empty(t, f.store.Items)
			assert.Empty(t, f.store.Commissions)
			assert.Equal(t, 1, f.store.Rollbacks)
		})
	}
}

func TestCreateSale_ConDecrementoDescuentaEstoque(t *testing.T) {
	f := newSaleFixture(t, true)

	sale, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
	require.NoError(t, err)
	assert.Equal(t, 3, f.store.Products[f.productID].StockCurrent)

	require.Len(t, f.store.Movements, 1)
	mov := f.store.Movements[0]
	assert.Equal(t, entity.MovementOut, mov.Direction)
	require.NotNil(t, mov.SaleID)
	assert.Equal(t, sale.ID, *mov.SaleID)
}

func TestCreateSale_ConDecrementoSinEstoqueRevierteVenta(t *testing.T) {
	f := newSaleFixture(t, true)

	_, err := f.create.CreateSale(context.Background(), vendedor, f.request(6))
	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 5, stockErr.Available)
	assert.Empty(t, f.store.Sales)
	assert.Empty(t, f.store.Commissions)
	assert.Equal(t, 5, f.store.Products[f.productID].StockCurrent)
}

func TestCreateSale_OrcamentoNoDescuentaEstoque(t *testing.T) {
	f := newSaleFixture(t, true)
	in := f.request(2)
	in.Status = string(entity.SaleQuote)

	_, err := f.create.CreateSale(context.Background(), vendedor, in)
	require.NoError(t, err)
	assert.Equal(t, 5, f.store.Products[f.productID].StockCurrent)
	assert.Empty(t, f.store.Movements)
}
