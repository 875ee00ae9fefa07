package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// LedgerUseCase libro de inventario: saldos por (ítem, zona) que nunca quedan negativos.
// ApplyBatch es el único punto de mutación; bloquea las filas del lote (SELECT FOR UPDATE en
// orden estable) y hace Commit o Rollback completo.
type LedgerUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository
	zones     *ZoneResolver
	recorder  Recorder
	log       *logger.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	zones *ZoneResolver,
	recorder Recorder,
	log *logger.Logger,
) *LedgerUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		zones:     zones,
		recorder:  recorder,
		log:       log.Component("ledger"),
		now:       time.Now,
	}
}

// BatchInput entrada para aplicar un lote fuera de un documento (ajustes de conteo).
type BatchInput struct {
	Reason    string
	Reference string
	UserID    string
	Entries   []entity.LedgerEntry
}

// GetBalance saldo de un ítem en una zona; cero si nunca tuvo movimientos.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, itemID, zoneID string) (decimal.Decimal, error) {
	if itemID == "" || zoneID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	b, err := uc.stockRepo.Get(ctx, itemID, zoneID)
	if err != nil {
		return decimal.Zero, err
	}
	return b.Quantity, nil
}

// ListBalances lectura consistente de los saldos de varias zonas (nunca ve un lote a medias).
func (uc *LedgerUseCase) ListBalances(ctx context.Context, zoneIDs []string) ([]*entity.StockBalance, error) {
	if len(zoneIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByZones(ctx, zoneIDs)
}

// ApplyBatch aplica el lote en su propia transacción. Si algún saldo quedaría negativo
// devuelve *domain.InsufficientStockError y ningún saldo cambia.
func (uc *LedgerUseCase) ApplyBatch(ctx context.Context, in BatchInput) (*entity.LedgerBatch, error) {
	reason := in.Reason
	if reason == "" {
		reason = entity.BatchReasonAdjustment
	}
	batch := uc.NewBatch(reason, in.Reference, in.UserID, in.Entries)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.LedgerRepository,
		_ repository.DocumentRepository,
		_ repository.PlanRepository,
	) error {
		return uc.ApplyBatchInTx(ctx, stockRepo, ledgerRepo, batch)
	})
	if err != nil {
		return nil, err
	}
	uc.Committed(batch)
	return batch, nil
}

// RevertBatch niega cada delta y aplica el lote resultante. El llamador debe pasar los
// tramos exactos del lote original; el libro no rastrea procedencia.
func (uc *LedgerUseCase) RevertBatch(ctx context.Context, entries []entity.LedgerEntry, reference, userID string) (*entity.LedgerBatch, error) {
	return uc.ApplyBatch(ctx, BatchInput{
		Reason:    entity.BatchReasonReversal,
		Reference: reference,
		UserID:    userID,
		Entries:   entity.Inverse(entries),
	})
}

// NewBatch arma un lote con ID nuevo; no lo aplica.
func (uc *LedgerUseCase) NewBatch(reason, reference, userID string, entries []entity.LedgerEntry) *entity.LedgerBatch {
	return &entity.LedgerBatch{
		ID:        uuid.New().String(),
		Reason:    reason,
		Reference: reference,
		Entries:   entries,
		CreatedAt: uc.now(),
		CreatedBy: userID,
	}
}

// ApplyBatchInTx aplica el lote usando los repositorios de la transacción del llamador
// (producción, recepción, anulación). Bloquea las filas, valida no-negatividad de todas las
// llaves y solo entonces escribe; en error el llamador hace Rollback.
func (uc *LedgerUseCase) ApplyBatchInTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	batch *entity.LedgerBatch,
) error {
	if err := inventory.ValidateEntries(batch.Entries); err != nil {
		uc.recorder.BatchRejected(batch.Reason, "invalid_input")
		return err
	}
	if err := uc.zones.ValidateEntries(ctx, batch.Entries); err != nil {
		uc.recorder.BatchRejected(batch.Reason, "invalid_zone")
		return err
	}

	// Bloquea las filas en orden (zona, ítem)
	current, err := stockRepo.GetForUpdate(ctx, inventory.SortedKeys(batch.Entries))
	if err != nil {
		return err
	}
	updated, err := inventory.ApplyDeltas(current, batch.Entries, uc.now())
	if err != nil {
		var short *domain.InsufficientStockError
		if errors.As(err, &short) {
			uc.recorder.BatchRejected(batch.Reason, "insufficient_stock")
			uc.log.Warn().
				Str("batch_id", batch.ID).
				Str("reason", batch.Reason).
				Interface("shortages", short.Shortages).
				Msg("lote rechazado por stock insuficiente")
		}
		return err
	}
	for _, b := range updated {
		if err := stockRepo.Upsert(ctx, b); err != nil {
			return err
		}
	}
	return ledgerRepo.CreateBatch(ctx, batch)
}

// Committed registra un lote ya confirmado (después del Commit de la transacción).
func (uc *LedgerUseCase) Committed(batch *entity.LedgerBatch) {
	uc.recorder.BatchApplied(batch.Reason, len(batch.Entries))
	uc.log.Info().
		Str("batch_id", batch.ID).
		Str("reason", batch.Reason).
		Str("reference", batch.Reference).
		Int("legs", len(batch.Entries)).
		Msg("lote aplicado")
}
