package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// DocumentRepository documentos de producción y recepción.
type DocumentRepository struct {
	acc *access
}

func (r *DocumentRepository) Create(_ context.Context, doc *entity.ProductionPosting) error {
	var err error
	r.acc.write(func(st *state) {
		if _, ok := st.docs[doc.ID]; ok {
			err = fmt.Errorf("memory: documento %s duplicado", doc.ID)
			return
		}
		st.docs[doc.ID] = copyDoc(*doc)
	})
	return err
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*entity.ProductionPosting, error) {
	var out *entity.ProductionPosting
	r.acc.read(func(st *state) {
		if d, ok := st.docs[id]; ok {
			cp := copyDoc(d)
			out = &cp
		}
	})
	return out, nil
}

// GetForUpdate igual que GetByID: el candado de la transacción ya es exclusivo.
func (r *DocumentRepository) GetForUpdate(ctx context.Context, id string) (*entity.ProductionPosting, error) {
	return r.GetByID(ctx, id)
}

func (r *DocumentRepository) MarkCanceled(_ context.Context, id, reversalBatchID string, at time.Time) error {
	var err error
	r.acc.write(func(st *state) {
		d, ok := st.docs[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		d.Status = entity.DocumentStatusCanceled
		d.ReversalBatchID = reversalBatchID
		canceledAt := at
		d.CanceledAt = &canceledAt
		st.docs[id] = d
	})
	return err
}

func copyDoc(d entity.ProductionPosting) entity.ProductionPosting {
	d.Lines = append([]entity.ReceiptLine(nil), d.Lines...)
	if d.CanceledAt != nil {
		at := *d.CanceledAt
		d.CanceledAt = &at
	}
	return d
}
