package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/testutil/memrepo"
)

func newProductFixture() (*ProductUseCase, *memrepo.Store) {
	store := memrepo.New()
	stock := inventory.NewUpdateStockUseCase(store.TxRunner(), store.MovementRepo())
	return NewProductUseCase(store.ProductRepo(), store.TxRunner(), stock), store
}

var gerente = &entity.Principal{EmployeeID: 3, AccessLevel: entity.LevelGerente}

func productRequest(name string) dto.ProductRequest {
	return dto.ProductRequest{Name: name, SalePrice: decimal.NewFromInt(120), CommissionPercent: decimal.NewFromInt(5)}
}

func TestProductUseCase_CodigoGeneradoSecuencial(t *testing.T) {
	uc, _ := newProductFixture()
	ctx := context.Background()

	a, err := uc.Create(ctx, gerente, productRequest("Modem"))
	require.NoError(t, err)
	b, err := uc.Create(ctx, gerente, productRequest("Cabo"))
	require.NoError(t, err)

	assert.Equal(t, "P001", a.Code)
	assert.Equal(t, "P002", b.Code)
	assert.Equal(t, entity.UnitDefault, a.Unit)
	assert.Regexp(t, `^P\d{3}$`, b.Code)
}

func TestProductUseCase_CodigoInformadoDuplicado(t *testing.T) {
	uc, _ := newProductFixture()
	in := productRequest("Modem")
	in.Code = "MOD-1"
	_, err := uc.Create(context.Background(), gerente, in)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), gerente, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_EstoqueInicialComoMovimiento(t *testing.T) {
	uc, store := newProductFixture()
	in := productRequest("Antena")
	in.InitialStock = 12

	p, err := uc.Create(context.Background(), gerente, in)
	require.NoError(t, err)
	assert.Equal(t, 12, p.StockCurrent)
	assert.Equal(t, 12, store.Products[p.ID].StockCurrent)

	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementIn, mov.Direction)
	assert.Equal(t, 0, mov.StockBefore)
	assert.Equal(t, "Estoque inicial", *mov.Reason)
}

func TestProductUseCase_FalloDelMovimientoRevierteProducto(t *testing.T) {
	uc, store := newProductFixture()
	store.FailOn["MovementRepo.Create"] = nil
	in := productRequest("Antena")
	in.InitialStock = 3

	_, err := uc.Create(context.Background(), gerente, in)
	require.ErrorIs(t, err, memrepo.ErrInjected)
	assert.Empty(t, store.Products)
}

func TestProductUseCase_UpdateNoTocaEstoque(t *testing.T) {
	uc, store := newProductFixture()
	in := productRequest("Antena")
	in.InitialStock = 4
	p, err := uc.Create(context.Background(), gerente, in)
	require.NoError(t, err)

	upd := productRequest("Antena 5G")
	upd.InitialStock = 100
	got, err := uc.Update(context.Background(), p.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, p.Code, got.Code)
	assert.Equal(t, 4, store.Products[p.ID].StockCurrent)
	assert.Equal(t, "Antena 5G", store.Products[p.ID].Name)
}

func TestProductUseCase_Validacion(t *testing.T) {
	uc, _ := newProductFixture()
	_, err := uc.Create(context.Background(), gerente, dto.ProductRequest{CommissionPercent: decimal.NewFromInt(-1), InitialStock: -2})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Nome é obrigatório")
	assert.Contains(t, err.Error(), "Preço de venda deve ser maior que zero")
	assert.Contains(t, err.Error(), "Percentual de comissão inválido")
	assert.Contains(t, err.Error(), "Estoque inicial inválido")
}

func TestProductUseCase_DeleteSoftOHard(t *testing.T) {
	uc, store := newProductFixture()
	ctx := context.Background()
	sold, err := uc.Create(ctx, gerente, productRequest("Vendido"))
	require.NoError(t, err)
	store.Items[900] = entity.SaleItem{ID: 900, ProductID: sold.ID}

	res, err := uc.Delete(ctx, sold.ID)
	require.NoError(t, err)
	assert.True(t, res.Deactivated)
	assert.False(t, store.Products[sold.ID].Active)

	free, err := uc.Create(ctx, gerente, productRequest("Livre"))
	require.NoError(t, err)
	res, err = uc.Delete(ctx, free.ID)
	require.NoError(t, err)
	assert.False(t, res.Deactivated)
	assert.NotContains(t, store.Products, free.ID)
}

func TestProductUseCase_ListEstoqueBaixo(t *testing.T) {
	uc, _ := newProductFixture()
	ctx := context.Background()
	low := productRequest("Pouco")
	low.StockMinimum = 5
	low.InitialStock = 2
	_, err := uc.Create(ctx, gerente, low)
	require.NoError(t, err)
	ok := productRequest("Muito")
	ok.StockMinimum = 1
	ok.InitialStock = 50
	_, err = uc.Create(ctx, gerente, ok)
	require.NoError(t, err)

	got, err := uc.List(ctx, repository.ProductFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pouco", got[0].Name)
}
