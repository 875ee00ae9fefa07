package http

import (
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/planning"
	"github.com/shopspring/decimal"
)

func toShortagesDTO(in []domain.Shortage) []dto.ShortageDTO {
	out := make([]dto.ShortageDTO, 0, len(in))
	for _, s := range in {
		out = append(out, dto.ShortageDTO{
			ItemID:    s.ItemID,
			ZoneID:    s.ZoneID,
			Needed:    s.Needed,
			Available: s.Available,
			Missing:   s.Missing(),
		})
	}
	return out
}

func toEntries(in []dto.LedgerEntryDTO) []entity.LedgerEntry {
	out := make([]entity.LedgerEntry, 0, len(in))
	for _, e := range in {
		out = append(out, entity.LedgerEntry{ItemID: e.ItemID, ZoneID: e.ZoneID, Delta: e.Delta})
	}
	return out
}

func toBatchResponse(b *entity.LedgerBatch) *dto.LedgerBatchResponse {
	if b == nil {
		return nil
	}
	entries := make([]dto.LedgerEntryDTO, 0, len(b.Entries))
	for _, e := range b.Entries {
		entries = append(entries, dto.LedgerEntryDTO{ItemID: e.ItemID, ZoneID: e.ZoneID, Delta: e.Delta})
	}
	return &dto.LedgerBatchResponse{
		ID:        b.ID,
		Reason:    b.Reason,
		Reference: b.Reference,
		Entries:   entries,
		CreatedAt: b.CreatedAt,
	}
}

func toBalanceResponse(b *entity.StockBalance) dto.BalanceResponse {
	out := dto.BalanceResponse{ItemID: b.ItemID, ZoneID: b.ZoneID, Quantity: b.Quantity}
	if !b.UpdatedAt.IsZero() {
		at := b.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}

func toPostingResponse(p *entity.ProductionPosting, batch *entity.LedgerBatch) dto.PostingResponse {
	out := dto.PostingResponse{
		ID:              p.ID,
		Type:            p.Type,
		Status:          p.Status,
		ItemID:          p.ItemID,
		Quantity:        p.Quantity,
		Date:            p.Date,
		PhysicalZoneID:  p.PhysicalZoneID,
		OutputZoneID:    p.OutputZoneID,
		MaterialsZoneID: p.MaterialsZoneID,
		SemisZoneID:     p.SemisZoneID,
		LedgerBatchID:   p.LedgerBatchID,
		ReversalBatchID: p.ReversalBatchID,
		CreatedAt:       p.CreatedAt,
		CanceledAt:      p.CanceledAt,
		Batch:           toBatchResponse(batch),
	}
	for _, l := range p.Lines {
		out.Lines = append(out.Lines, dto.ReceiptLineDTO{ItemID: l.ItemID, ZoneID: l.ZoneID, Quantity: l.Quantity})
	}
	return out
}

func toZoneResponse(z *entity.Zone) dto.ZoneResponse {
	return dto.ZoneResponse{ID: z.ID, Name: z.Name, Type: z.Type, ParentID: z.ParentID}
}

func toRequirementsResponse(itemID string, qty decimal.Decimal, r *planning.Requirements) dto.RequirementsResponse {
	req := dto.RequirementsResponse{ItemID: itemID, Quantity: qty, Materials: r.Materials, Semis: r.Semis}
	req.Levels = make([]dto.RequirementLevelDTO, 0, len(r.Levels))
	for i, lvl := range r.Levels {
		req.Levels = append(req.Levels, dto.RequirementLevelDTO{Level: i + 1, Materials: lvl.Materials, Semis: lvl.Semis})
	}
	return req
}
