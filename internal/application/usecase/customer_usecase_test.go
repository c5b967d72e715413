package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/internal/testutil/memrepo"
)

func str(s string) *string { return &s }

func individual() dto.CustomerRequest {
	return dto.CustomerRequest{
		PersonType: "fisica",
		FirstName:  str("Maria"),
		LastName:   str("Costa"),
		CPF:        str("111.444.777-35"),
		AddressRequest: dto.AddressRequest{
			Street: str("Rua das Flores"), City: str("Campinas"), State: str("SP"),
		},
	}
}

func company() dto.CustomerRequest {
	return dto.CustomerRequest{
		PersonType: "juridica",
		LegalName:  str("Acme Telecom Ltda"),
		CNPJ:       str("11.222.333/0001-81"),
		AddressRequest: dto.AddressRequest{
			Street: str("Av. Central"), City: str("Recife"), State: str("PE"),
		},
	}
}

func TestCustomerUseCase_Validacion(t *testing.T) {
	uc := NewCustomerUseCase(memrepo.New().CustomerRepo())

	tests := []struct {
		name string
		in   func() dto.CustomerRequest
		msgs []string
	}{
		{"sin tipo", func() dto.CustomerRequest { return dto.CustomerRequest{} },
			[]string{"Tipo de pessoa é obrigatório", "Endereço é obrigatório", "Cidade é obrigatória", "Estado é obrigatório"}},
		{"física sin nombre ni cpf", func() dto.CustomerRequest {
			in := individual()
			in.FirstName, in.CPF = nil, nil
			return in
		}, []string{"Nome é obrigatório para pessoa física", "CPF é obrigatório para pessoa física"}},
		{"física cpf inválido", func() dto.CustomerRequest {
			in := individual()
			in.CPF = str("111.111.111-11")
			return in
		}, []string{"CPF inválido"}},
		{"jurídica cnpj inválido", func() dto.CustomerRequest {
			in := company()
			in.CNPJ = str("11.222.333/0001-82")
			return in
		}, []string{"CNPJ inválido"}},
		{"jurídica sin razón social", func() dto.CustomerRequest {
			in := company()
			in.LegalName = nil
			return in
		}, []string{"Razão social é obrigatória para pessoa jurídica"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.in())
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			for _, m := range tt.msgs {
				assert.Contains(t, err.Error(), m)
			}
		})
	}
}

func TestCustomerUseCase_SoloUnaIdentidad(t *testing.T) {
	store := memrepo.New()
	uc := NewCustomerUseCase(store.CustomerRepo())

	in := company()
	in.FirstName = str("Ignorado")
	in.CPF = str("111.444.777-35")
	c, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	saved := store.Customers[c.ID]
	assert.Nil(t, saved.FirstName)
	assert.Nil(t, saved.CPF)
	require.NotNil(t, saved.CNPJ)
	assert.Equal(t, "11222333000181", *saved.CNPJ)
	assert.Equal(t, "Acme Telecom Ltda", saved.DisplayName())

	// pasar a física borra los datos de jurídica
	_, err = uc.Update(context.Background(), c.ID, individual())
	require.NoError(t, err)
	saved = store.Customers[c.ID]
	assert.Nil(t, saved.CNPJ)
	assert.Nil(t, saved.LegalName)
	assert.Equal(t, "11144477735", *saved.CPF)
}

func TestCustomerUseCase_CPFDuplicado(t *testing.T) {
	uc := NewCustomerUseCase(memrepo.New().CustomerRepo())
	_, err := uc.Create(context.Background(), individual())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), individual())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.EqualError(t, err, "cliente: crear: CPF já cadastrado")
}

func TestCustomerUseCase_DeleteSoftOHard(t *testing.T) {
	store := memrepo.New()
	uc := NewCustomerUseCase(store.CustomerRepo())
	ctx := context.Background()

	buyer, err := uc.Create(ctx, individual())
	require.NoError(t, err)
	store.Sales[700] = entity.Sale{ID: 700, CustomerID: buyer.ID}

	res, err := uc.Delete(ctx, buyer.ID)
	require.NoError(t, err)
	assert.True(t, res.Deactivated)
	assert.Equal(t, "Cliente inativado (possui vendas cadastradas)", res.Message)

	other, err := uc.Create(ctx, company())
	require.NoError(t, err)
	res, err = uc.Delete(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, res.Deactivated)
	assert.NotContains(t, store.Customers, other.ID)

	_, err = uc.Delete(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase_ListTipoInvalido(t *testing.T) {
	uc := NewCustomerUseCase(memrepo.New().CustomerRepo())
	_, err := uc.List(context.Background(), repository.CustomerFilter{PersonType: "mista"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
