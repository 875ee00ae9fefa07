package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// LedgerRepository historial de lotes aplicados.
type LedgerRepository struct {
	acc *access
}

// CreateBatch guarda el lote; los IDs no se reutilizan.
func (r *LedgerRepository) CreateBatch(_ context.Context, batch *entity.LedgerBatch) error {
	var err error
	r.acc.write(func(st *state) {
		if _, ok := st.batches[batch.ID]; ok {
			err = fmt.Errorf("memory: lote %s duplicado", batch.ID)
			return
		}
		st.batches[batch.ID] = copyBatch(*batch)
	})
	return err
}

// GetBatch devuelve el lote o nil si no existe.
func (r *LedgerRepository) GetBatch(_ context.Context, id string) (*entity.LedgerBatch, error) {
	var out *entity.LedgerBatch
	r.acc.read(func(st *state) {
		if b, ok := st.batches[id]; ok {
			cp := copyBatch(b)
			out = &cp
		}
	})
	return out, nil
}

func copyBatch(b entity.LedgerBatch) entity.LedgerBatch {
	b.Entries = append([]entity.LedgerEntry(nil), b.Entries...)
	return b
}
