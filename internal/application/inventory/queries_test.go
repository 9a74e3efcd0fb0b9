package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
)

// seedMovement inserta un movimiento directo en el historial, con fecha fija
// para que el orden de los tests sea determinista.
func (f *invFixture) seedMovement(t *testing.T, productID, reference string, quantity int, createdAt time.Time) {
	t.Helper()
	err := f.movements.Create(&entity.StockMovement{
		ProductID: productID,
		Type:      entity.MovementEntry,
		Quantity:  quantity,
		Reference: reference,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
}

func TestInventoryQueries_History_OrdenaYPagina(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	f.seedMovement(t, testHarinaID, "", 1, base)
	f.seedMovement(t, testHarinaID, "", 2, base.Add(1*time.Hour))
	f.seedMovement(t, testHarinaID, "", 3, base.Add(2*time.Hour))

	// Caso 1: primera página, del más reciente al más antiguo
	page, err := f.queries.History(testHarinaID, dto.ListMovementsRequest{
		PageRequest: dto.PageRequest{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Items[0].Quantity, "el más reciente primero")
	assert.Equal(t, 2, page.Items[1].Quantity)

	// Caso 2: segunda página
	page, err = f.queries.History(testHarinaID, dto.ListMovementsRequest{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].Quantity)

	// Caso 3: filtro por rango de fechas
	from := base.Add(30 * time.Minute)
	page, err = f.queries.History(testHarinaID, dto.ListMovementsRequest{
		From:        &from,
		PageRequest: dto.PageRequest{Limit: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2, "solo los movimientos posteriores a from")
}

func TestInventoryQueries_History_ProductoInexistente(t *testing.T) {
	f := newInvFixture(t)

	_, err := f.queries.History("00000000-0000-0000-0000-0000000000ff", dto.ListMovementsRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryQueries_ByReference(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	f.seedMovement(t, testHarinaID, "venta-001", 2, base)
	f.seedMovement(t, testHarinaID, "venta-001", 3, base.Add(time.Minute))
	f.seedMovement(t, testHarinaID, "venta-002", 5, base.Add(2*time.Minute))

	items, err := f.queries.ByReference("venta-001")

	require.NoError(t, err)
	require.Len(t, items, 2, "solo los movimientos de esa referencia")
	for _, m := range items {
		assert.Equal(t, "venta-001", m.Reference)
	}

	items, err = f.queries.ByReference("venta-999")
	require.NoError(t, err)
	assert.Empty(t, items, "referencia desconocida devuelve lista vacía, no error")
}

func TestInventoryQueries_LowStock_OrdenaPorDeficit(t *testing.T) {
	f := newInvFixture(t)
	agotado := "00000000-0000-0000-0000-000000000311"
	justo := "00000000-0000-0000-0000-000000000312"
	sano := "00000000-0000-0000-0000-000000000313"
	inactivo := "00000000-0000-0000-0000-000000000314"

	f.seedProduct(t, agotado, "Azúcar 1kg", 0, 5, true)
	f.seedProduct(t, justo, "Sal fina", 3, 4, true)
	f.seedProduct(t, sano, "Fideos", 10, 2, true)
	f.seedProduct(t, inactivo, "Yerba discontinuada", 0, 5, false)

	items, err := f.queries.LowStock()

	require.NoError(t, err)
	require.Len(t, items, 2, "solo activos en o bajo el mínimo")
	assert.Equal(t, agotado, items[0].ProductID, "el déficit más grande primero")
	assert.Equal(t, 0, items[0].Quantity)
	assert.Equal(t, 5, items[0].MinQuantity)
	assert.Equal(t, justo, items[1].ProductID)
}
