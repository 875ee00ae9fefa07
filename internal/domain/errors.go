package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrNoBom               = errors.New("el ítem no tiene especificación (BOM)")
	ErrInvalidZone         = errors.New("zona inválida: los movimientos deben apuntar a una zona virtual de la bodega física")
	ErrAlreadyCanceled     = errors.New("el documento ya fue anulado")
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor que cero")
	ErrProducedDecrease    = errors.New("no se puede disminuir la cantidad producida: anule el documento de producción que la originó")
	ErrBomCycle            = errors.New("ciclo detectado en la especificación (BOM)")
)

// Shortage describe un tramo del lote que dejaría saldo negativo.
type Shortage struct {
	ItemID    string
	ZoneID    string
	Needed    decimal.Decimal // cantidad que el lote intenta consumir
	Available decimal.Decimal // saldo actual antes del lote
}

// Missing devuelve el faltante (Needed - Available).
func (s Shortage) Missing() decimal.Decimal {
	return s.Needed.Sub(s.Available)
}

// InsufficientStockError detalla los faltantes por ítem y zona.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s@%s necesita %s, disponible %s",
			s.ItemID, s.ZoneID, s.Needed.String(), s.Available.String()))
	}
	return ErrInsufficientStock.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
