package production

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/planning"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// PosterUseCase camino de escritura: producción con backflush, recepciones y anulaciones.
// Todo pasa por LedgerUseCase.ApplyBatchInTx dentro de una sola transacción: el lote, el
// documento y el incremento de producedQty se confirman juntos o no se confirma nada.
type PosterUseCase struct {
	txRunner appinventory.TxRunner
	ledger   *appinventory.LedgerUseCase
	zones    *appinventory.ZoneResolver
	bom      *BomService
	catalog  repository.CatalogRepository
	docRepo  repository.DocumentRepository
	recorder appinventory.Recorder
	log      *logger.Logger
	now      func() time.Time
}

// NewPosterUseCase construye el caso de uso.
func NewPosterUseCase(
	txRunner appinventory.TxRunner,
	ledger *appinventory.LedgerUseCase,
	zones *appinventory.ZoneResolver,
	bom *BomService,
	catalog repository.CatalogRepository,
	docRepo repository.DocumentRepository,
	recorder appinventory.Recorder,
	log *logger.Logger,
) *PosterUseCase {
	if recorder == nil {
		recorder = appinventory.NopRecorder{}
	}
	return &PosterUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		zones:    zones,
		bom:      bom,
		catalog:  catalog,
		docRepo:  docRepo,
		recorder: recorder,
		log:      log.Component("poster"),
		now:      time.Now,
	}
}

// ProductionInput entrada de PostProduction.
type ProductionInput struct {
	ItemID   string
	Quantity decimal.Decimal
	Date     string // YYYY-MM-DD del plan al que se imputa
	Zones    appinventory.ProductionZones
	UserID   string
}

// ReceiptInput entrada de PostReceipt.
type ReceiptInput struct {
	Date   string // opcional, por defecto hoy
	Lines  []entity.ReceiptLine
	UserID string
}

// PostingResult documento contabilizado y su lote.
type PostingResult struct {
	Posting *entity.ProductionPosting
	Batch   *entity.LedgerBatch
}

// PostProduction valida, explota la especificación, arma el lote (+qty en la zona de salida,
// -requerido por material y por semielaborado) y lo contabiliza. Si falta stock devuelve
// *domain.InsufficientStockError con cada faltante y no hay efecto parcial.
func (uc *PosterUseCase) PostProduction(ctx context.Context, in ProductionInput) (*PostingResult, error) {
	var res *PostingResult
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
		docRepo repository.DocumentRepository,
		planRepo repository.PlanRepository,
	) error {
		var err error
		res, err = uc.PostProductionInTx(ctx, stockRepo, ledgerRepo, docRepo, planRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.ProductionCommitted(res)
	return res, nil
}

// PostProductionInTx hace el trabajo de PostProduction con los repositorios de una
// transacción abierta por el llamador. Tras el Commit hay que llamar a ProductionCommitted.
func (uc *PosterUseCase) PostProductionInTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	docRepo repository.DocumentRepository,
	planRepo repository.PlanRepository,
	in ProductionInput,
) (*PostingResult, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrNonPositiveQuantity
	}
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := planning.ParseDate(in.Date, time.UTC); err != nil {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.catalog.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if !item.IsProducible() {
		return nil, domain.ErrNoBom
	}

	exp, err := uc.bom.Explode(ctx, in.ItemID, in.Quantity)
	if err != nil {
		return nil, err
	}
	if exp.IsEmpty() {
		return nil, domain.ErrNoBom
	}

	zones, err := uc.zones.ResolveProduction(ctx, in.Zones, item.Kind, len(exp.Materials) > 0, len(exp.Semis) > 0)
	if err != nil {
		return nil, err
	}

	entries := []entity.LedgerEntry{{ItemID: in.ItemID, ZoneID: zones.OutputZoneID, Delta: in.Quantity}}
	entries = append(entries, consumption(exp.Materials, zones.MaterialsZoneID)...)
	entries = append(entries, consumption(exp.Semis, zones.SemisZoneID)...)

	docID := uuid.New().String()
	batch := uc.ledger.NewBatch(entity.BatchReasonProduction, docID, in.UserID, entries)
	doc := &entity.ProductionPosting{
		ID:              docID,
		Type:            entity.DocumentTypeProduction,
		Status:          entity.DocumentStatusPosted,
		ItemID:          in.ItemID,
		Quantity:        in.Quantity,
		Date:            in.Date,
		PhysicalZoneID:  zones.PhysicalZoneID,
		OutputZoneID:    zones.OutputZoneID,
		MaterialsZoneID: zones.MaterialsZoneID,
		SemisZoneID:     zones.SemisZoneID,
		LedgerBatchID:   batch.ID,
		CreatedAt:       uc.now(),
		CreatedBy:       in.UserID,
	}

	// Orden de bloqueo: fila del plan y luego saldos
	if _, err := planRepo.GetForUpdate(ctx, in.ItemID, in.Date); err != nil {
		return nil, err
	}
	if err := uc.ledger.ApplyBatchInTx(ctx, stockRepo, ledgerRepo, batch); err != nil {
		uc.logRejected(entity.DocumentTypeProduction, in.ItemID, err)
		return nil, err
	}
	if err := docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	// producedQty solo crece por producción contabilizada
	if err := planRepo.AddProduced(ctx, in.ItemID, in.Date, in.Quantity); err != nil {
		return nil, err
	}
	return &PostingResult{Posting: doc, Batch: batch}, nil
}

// ProductionCommitted registra métricas y log de una producción ya confirmada.
func (uc *PosterUseCase) ProductionCommitted(res *PostingResult) {
	uc.ledger.Committed(res.Batch)
	uc.recorder.DocumentPosted(entity.DocumentTypeProduction)
	uc.log.Info().
		Str("document_id", res.Posting.ID).
		Str("item_id", res.Posting.ItemID).
		Str("qty", res.Posting.Quantity.String()).
		Str("date", res.Posting.Date).
		Msg("producción contabilizada")
}

// PostReceipt contabiliza una recepción: cada línea es un tramo positivo en su zona virtual.
// Pasa por el libro igual que la producción para que las líneas se apliquen todas o ninguna.
func (uc *PosterUseCase) PostReceipt(ctx context.Context, in ReceiptInput) (*PostingResult, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date := in.Date
	if date == "" {
		date = planning.FormatDate(uc.now())
	} else if _, err := planning.ParseDate(date, time.UTC); err != nil {
		return nil, domain.ErrInvalidInput
	}

	entries := make([]entity.LedgerEntry, 0, len(in.Lines))
	physical := ""
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return nil, domain.ErrNonPositiveQuantity
		}
		item, err := uc.catalog.GetItem(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		z, err := uc.zones.Virtual(ctx, l.ZoneID, "")
		if err != nil {
			return nil, err
		}
		if physical == "" {
			physical = z.ParentID
		}
		entries = append(entries, entity.LedgerEntry{ItemID: l.ItemID, ZoneID: l.ZoneID, Delta: l.Quantity})
	}

	now := uc.now()
	docID := uuid.New().String()
	batch := uc.ledger.NewBatch(entity.BatchReasonReceipt, docID, in.UserID, entries)
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Delta)
	}
	doc := &entity.ProductionPosting{
		ID:             docID,
		Type:           entity.DocumentTypeReceipt,
		Status:         entity.DocumentStatusPosted,
		Quantity:       total,
		Date:           date,
		PhysicalZoneID: physical,
		Lines:          in.Lines,
		LedgerBatchID:  batch.ID,
		CreatedAt:      now,
		CreatedBy:      in.UserID,
	}

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
		docRepo repository.DocumentRepository,
		_ repository.PlanRepository,
	) error {
		if err := uc.ledger.ApplyBatchInTx(ctx, stockRepo, ledgerRepo, batch); err != nil {
			return err
		}
		return docRepo.Create(ctx, doc)
	})
	if err != nil {
		uc.logRejected(entity.DocumentTypeReceipt, "", err)
		return nil, err
	}

	uc.ledger.Committed(batch)
	uc.recorder.DocumentPosted(entity.DocumentTypeReceipt)
	uc.log.Info().Str("document_id", doc.ID).Int("lines", len(in.Lines)).Msg("recepción contabilizada")
	return &PostingResult{Posting: doc, Batch: batch}, nil
}

// CancelPosting revierte el lote exacto del documento y lo marca anulado.
// Una segunda anulación devuelve domain.ErrAlreadyCanceled (no se ignora en silencio).
// Anular una producción descuenta su cantidad de producedQty como compensación.
func (uc *PosterUseCase) CancelPosting(ctx context.Context, postingID, userID string) (*PostingResult, error) {
	if postingID == "" {
		return nil, domain.ErrInvalidInput
	}
	var (
		doc      *entity.ProductionPosting
		reversal *entity.LedgerBatch
	)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
		docRepo repository.DocumentRepository,
		planRepo repository.PlanRepository,
	) error {
		// Bloquea el documento: dos anulaciones concurrentes se serializan aquí
		d, err := docRepo.GetForUpdate(ctx, postingID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.IsCanceled() {
			return domain.ErrAlreadyCanceled
		}
		if !entity.CanTransition(d.Status, entity.DocumentStatusCanceled) {
			return domain.ErrConflict
		}
		original, err := ledgerRepo.GetBatch(ctx, d.LedgerBatchID)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}
		if d.Type == entity.DocumentTypeProduction {
			if _, err := planRepo.GetForUpdate(ctx, d.ItemID, d.Date); err != nil {
				return err
			}
		}
		reversal = uc.ledger.NewBatch(entity.BatchReasonReversal, d.ID, userID, entity.Inverse(original.Entries))
		if err := uc.ledger.ApplyBatchInTx(ctx, stockRepo, ledgerRepo, reversal); err != nil {
			return err
		}
		now := uc.now()
		if err := docRepo.MarkCanceled(ctx, d.ID, reversal.ID, now); err != nil {
			return err
		}
		if d.Type == entity.DocumentTypeProduction {
			if err := planRepo.AddProduced(ctx, d.ItemID, d.Date, d.Quantity.Neg()); err != nil {
				return err
			}
		}
		d.Status = entity.DocumentStatusCanceled
		d.ReversalBatchID = reversal.ID
		d.CanceledAt = &now
		doc = d
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("document_id", postingID).Msg("anulación rechazada")
		return nil, err
	}

	uc.ledger.Committed(reversal)
	uc.recorder.DocumentCanceled(doc.Type)
	uc.log.Info().Str("document_id", doc.ID).Str("reversal_batch_id", reversal.ID).Msg("documento anulado")
	return &PostingResult{Posting: doc, Batch: reversal}, nil
}

// GetPosting obtiene un documento contabilizado.
func (uc *PosterUseCase) GetPosting(ctx context.Context, id string) (*entity.ProductionPosting, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (uc *PosterUseCase) logRejected(docType, itemID string, err error) {
	ev := uc.log.Warn().Err(err).Str("type", docType)
	if itemID != "" {
		ev = ev.Str("item_id", itemID)
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		ev.Msg("contabilización rechazada: stock insuficiente")
		return
	}
	ev.Msg("contabilización rechazada")
}

// consumption tramos negativos en orden estable de ítem.
func consumption(req map[string]decimal.Decimal, zoneID string) []entity.LedgerEntry {
	ids := make([]string, 0, len(req))
	for id := range req {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.LedgerEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.LedgerEntry{ItemID: id, ZoneID: zoneID, Delta: req[id].Neg()})
	}
	return out
}
