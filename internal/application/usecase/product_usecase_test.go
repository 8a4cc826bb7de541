package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
)

var (
	empresa    = &entity.User{ID: "emp-1", Email: "emp@mail.cl", Role: entity.RoleCompany}
	otra       = &entity.User{ID: "emp-2", Role: entity.RoleCompany}
	cliente    = &entity.User{ID: "cli-1", Role: entity.RoleClient}
	superadmin = &entity.User{ID: "sa", Email: "sa@casino.cl", Role: entity.RoleSuperadmin}
)

func setup() (*usecase.ProductUseCase, *memory.ProductStore) {
	products := memory.NewProductStore()
	categories := memory.NewCategoryStore(
		&entity.Category{ID: "snack", Name: "Repostería"},
		&entity.Category{ID: "almuerzo", Name: "Almuerzos"},
	)
	return usecase.NewProductUseCase(products, categories, zerolog.Nop()), products
}

func validRequest(name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		CategoryID:  "snack",
		Name:        name,
		Description: "Descripción suficientemente larga",
		Ingredients: "Harina, huevos, azúcar",
		Conditions:  "Consumir dentro de 48 horas",
		Price:       decimal.NewFromInt(1500),
	}
}

func TestCreate_CopiaNombreCategoria(t *testing.T) {
	uc, _ := setup()
	p, err := uc.Create(context.Background(), empresa, validRequest("Queque"))
	require.NoError(t, err)
	assert.Equal(t, "Repostería", p.CategoryName)
	assert.Equal(t, empresa.ID, p.OwnerID)
	assert.True(t, p.Active)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()

	_, err := uc.Create(ctx, cliente, validRequest("Queque"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	cases := map[string]func(*dto.CreateProductRequest){
		"nombre":      func(r *dto.CreateProductRequest) { r.Name = "Té" },
		"descripción": func(r *dto.CreateProductRequest) { r.Description = "corta" },
		"ingredients": func(r *dto.CreateProductRequest) { r.Ingredients = "harina" },
		"conditions":  func(r *dto.CreateProductRequest) { r.Conditions = "ya" },
		"precio":      func(r *dto.CreateProductRequest) { r.Price = decimal.NewFromInt(-1) },
		"categoría":   func(r *dto.CreateProductRequest) { r.CategoryID = "no-existe" },
		"imagen":      func(r *dto.CreateProductRequest) { r.ImageURL = "foto de la torta" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest("Queque")
			mutate(&req)
			_, err := uc.Create(ctx, empresa, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateYDelete_SoloDueno(t *testing.T) {
	uc, products := setup()
	ctx := context.Background()
	p, err := uc.Create(ctx, empresa, validRequest("Queque"))
	require.NoError(t, err)

	inactive := false
	_, err = uc.Update(ctx, otra, p.ID, dto.UpdateProductRequest{Active: &inactive})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	upd, err := uc.Update(ctx, empresa, p.ID, dto.UpdateProductRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, upd.Active)

	visible, err := uc.ListActive(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, visible, "inactivo no se ofrece a compradores")

	mine, err := uc.ListMine(ctx, empresa)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, uc.Delete(ctx, otra, p.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, empresa, p.ID))
	got, _ := products.GetByID(ctx, p.ID)
	assert.Nil(t, got)

	assert.ErrorIs(t, uc.Delete(ctx, empresa, p.ID), domain.ErrNotFound)
}

func TestListActive_OrdenEspanol(t *testing.T) {
	uc, _ := setup()
	ctx := context.Background()
	for _, name := range []string{"Ñoquis dulces", "Nueces", "Oblea", "alfajor"} {
		_, err := uc.Create(ctx, empresa, validRequest(name))
		require.NoError(t, err)
	}
	list, err := uc.ListActive(ctx, "snack")
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"alfajor", "Nueces", "Ñoquis dulces", "Oblea"}, names)
}

func TestImportBaseCatalog_Idempotente(t *testing.T) {
	uc, products := setup()
	ctx := context.Background()

	_, err := uc.ImportBaseCatalog(ctx, empresa)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := uc.ImportBaseCatalog(ctx, superadmin)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Categories)
	assert.Equal(t, 25, resp.Products)

	_, err = uc.ImportBaseCatalog(ctx, superadmin)
	require.NoError(t, err)
	n, err := products.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	brownies, err := products.GetByID(ctx, usecase.BaseProductID("brownies"))
	require.NoError(t, err)
	require.NotNil(t, brownies)
	assert.Equal(t, superadmin.ID, brownies.OwnerID)
	assert.True(t, brownies.Price.Equal(decimal.NewFromInt(1600)))
	assert.Equal(t, "reposteria-snack", brownies.CategoryID)
	assert.True(t, brownies.IsDefault)

	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 7)
}
