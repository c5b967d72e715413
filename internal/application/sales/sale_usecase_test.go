package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/testutil/memrepo"
)

func TestSaleUseCase_GetIncluyeItems(t *testing.T) {
	f := newSaleFixture(t, false)
	created, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
	require.NoError(t, err)

	sale, err := f.sales.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "João", sale.CustomerName)
	assert.Equal(t, "Ana Souza", sale.SalespersonName)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Roteador", sale.Items[0].ProductName)

	_, err = f.sales.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUseCase_ListFiltraPorPeriodoInclusivo(t *testing.T) {
	f := newSaleFixture(t, false)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	in := f.request(1)
	in.SaleDate = &entity.Date{Time: day.Add(18 * time.Hour)}
	_, err := f.create.CreateSale(context.Background(), vendedor, in)
	require.NoError(t, err)

	got, err := f.sales.List(context.Background(), ListFilter{DateFrom: &entity.Date{Time: day}, DateTo: &entity.Date{Time: day}})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	next := day.AddDate(0, 0, 1)
	got, err = f.sales.List(context.Background(), ListFilter{DateFrom: &entity.Date{Time: next}})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.sales.List(context.Background(), ListFilter{Status: "perdida"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleUseCase_CancelarCancelaComisionesYDevuelveEstoque(t *testing.T) {
	f := newSaleFixture(t, true)
	sale, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
	require.NoError(t, err)
	require.Equal(t, 3, f.store.Products[f.productID].StockCurrent)

	require.NoError(t, f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, string(entity.SaleCancelled)))

	assert.Equal(t, entity.SaleCancelled, f.store.Sales[sale.ID].Status)
	for _, c := range f.store.Commissions {
		assert.Equal(t, entity.PaymentCancelled, c.Status)
	}
	assert.Equal(t, 5, f.store.Products[f.productID].StockCurrent)
	require.Len(t, f.store.Movements, 2)
	assert.Equal(t, entity.MovementIn, f.store.Movements[1].Direction)
}

func TestSaleUseCase_CanceladaEsTerminal(t *testing.T) {
	f := newSaleFixture(t, false)
	sale, err := f.create.CreateSale(context.Background(), vendedor, f.request(1))
	require.NoError(t, err)
	require.NoError(t, f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "cancelada"))

	err = f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "confirmada")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.SaleCancelled, f.store.Sales[sale.ID].Status)
}

func TestSaleUseCase_ConfirmarOrcamentoDescuentaEstoque(t *testing.T) {
	f := newSaleFixture(t, true)
	in := f.request(2)
	in.Status = "orcamento"
	sale, err := f.create.CreateSale(context.Background(), vendedor, in)
	require.NoError(t, err)

	require.NoError(t, f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "confirmada"))
	assert.Equal(t, 3, f.store.Products[f.productID].StockCurrent)

	require.NoError(t, f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "instalada"))
	assert.Equal(t, 3, f.store.Products[f.productID].StockCurrent)
}

func TestSaleUseCase_ConDecrementoNoVuelveAOrcamento(t *testing.T) {
	f := newSaleFixture(t, true)
	sale, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
	require.NoError(t, err)
	require.Equal(t, 3, f.store.Products[f.productID].StockCurrent)

	err = f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "orcamento")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.SaleConfirmed, f.store.Sales[sale.ID].Status)

	require.NoError(t, f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "confirmada"))
	assert.Equal(t, 3, f.store.Products[f.productID].StockCurrent)
	assert.Len(t, f.store.Movements, 1)
}

func TestSaleUseCase_SinDecrementoPuedeVolverAOrcamento(t *testing.T) {
	f := newSaleFixture(t, false)
	sale, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
	require.NoError(t, err)

	require.NoError(t, f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "orcamento"))
	require.NoError(t, f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "confirmada"))
	assert.Equal(t, 5, f.store.Products[f.productID].StockCurrent)
	assert.Empty(t, f.store.Movements)
}

func TestSaleUseCase_StatusLeeLaVentaConBloqueo(t *testing.T) {
	f := newSaleFixture(t, true)
	sale, err := f.create.CreateSale(context.Background(), vendedor, f.request(2))
	require.NoError(t, err)

	f.store.FailOn["SaleRepo.GetForUpdate"] = nil
	err = f.sales.UpdateStatus(context.Background(), vendedor, sale.ID, "cancelada")
	assert.ErrorIs(t, err, memrepo.ErrInjected)
	assert.Equal(t, entity.SaleConfirmed, f.store.Sales[sale.ID].Status)
	assert.Equal(t, 3, f.store.Products[f.productID].StockCurrent)
}

func TestSaleUseCase_StatusInvalido(t *testing.T) {
	f := newSaleFixture(t, false)
	err := f.sales.UpdateStatus(context.Background(), vendedor, 1, "vendida")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.sales.UpdateStatus(context.Background(), vendedor, 777, "instalada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
