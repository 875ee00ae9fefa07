// Package memory implementa los repositorios del núcleo en memoria, para pruebas y
// despliegues efímeros (DB_DRIVER=memory).
package memory

import (
	"context"
	"sync"
	"time"

	appinventory "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type planKey struct {
	itemID string
	date   string
}

// catalog datos externos de solo lectura para el núcleo (ítems, especificaciones, zonas).
// Tiene su propio candado: se consulta también dentro de las transacciones.
type catalog struct {
	mu        sync.RWMutex
	items     map[string]entity.Item
	itemOrder []string
	boms      map[string][]entity.BomLine
	zones     map[string]entity.Zone
	zoneOrder []string
}

type state struct {
	balances map[entity.StockKey]entity.StockBalance
	batches  map[string]entity.LedgerBatch
	docs     map[string]entity.ProductionPosting
	plans    map[planKey]entity.PlannedQuantity
}

func newState() state {
	return state{
		balances: make(map[entity.StockKey]entity.StockBalance),
		batches:  make(map[string]entity.LedgerBatch),
		docs:     make(map[string]entity.ProductionPosting),
		plans:    make(map[planKey]entity.PlannedQuantity),
	}
}

func (s state) clone() state {
	c := state{}
	c.balances = make(map[entity.StockKey]entity.StockBalance, len(s.balances))
	for k, v := range s.balances {
		c.balances[k] = v
	}
	c.batches = make(map[string]entity.LedgerBatch, len(s.batches))
	for k, v := range s.batches {
		c.batches[k] = v
	}
	c.docs = make(map[string]entity.ProductionPosting, len(s.docs))
	for k, v := range s.docs {
		c.docs[k] = v
	}
	c.plans = make(map[planKey]entity.PlannedQuantity, len(s.plans))
	for k, v := range s.plans {
		c.plans[k] = v
	}
	return c
}

// Store estado compartido por todos los repositorios en memoria.
// Las transacciones trabajan sobre una copia y la publican solo si fn no falla, así
// las lecturas nunca ven un lote a medias.
type Store struct {
	mu      sync.RWMutex
	state   state
	catalog catalog
	nowFn   func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		state: newState(),
		catalog: catalog{
			items: make(map[string]entity.Item),
			boms:  make(map[string][]entity.BomLine),
			zones: make(map[string]entity.Zone),
		},
		nowFn: time.Now,
	}
}

// Compile-time contract assertions.
var (
	_ appinventory.TxRunner         = (*Store)(nil)
	_ repository.StockRepository    = (*StockRepository)(nil)
	_ repository.LedgerRepository   = (*LedgerRepository)(nil)
	_ repository.DocumentRepository = (*DocumentRepository)(nil)
	_ repository.PlanRepository     = (*PlanRepository)(nil)
	_ repository.CatalogRepository  = (*CatalogRepository)(nil)
	_ repository.ZoneRepository     = (*ZoneRepository)(nil)
)

// Run ejecuta fn con repositorios atados a una copia del estado; en éxito la publica.
// El candado de escritura serializa las transacciones completas.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.LedgerRepository,
	docRepo repository.DocumentRepository,
	planRepo repository.PlanRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.clone()
	acc := &access{store: s, tx: &tx}
	if err := fn(&StockRepository{acc}, &LedgerRepository{acc}, &DocumentRepository{acc}, &PlanRepository{acc}); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// access decide sobre qué estado opera un repositorio: la copia de la transacción
// (el candado ya lo tiene Run) o el estado publicado con su candado.
type access struct {
	store *Store
	tx    *state
}

func (a *access) read(fn func(st *state)) {
	if a.tx != nil {
		fn(a.tx)
		return
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	fn(&a.store.state)
}

func (a *access) write(fn func(st *state)) {
	if a.tx != nil {
		fn(a.tx)
		return
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	fn(&a.store.state)
}

func (a *access) now() time.Time {
	return a.store.nowFn()
}

func (s *Store) direct() *access {
	return &access{store: s}
}

// Stock repositorio de saldos fuera de transacción.
func (s *Store) Stock() *StockRepository { return &StockRepository{s.direct()} }

// Ledger repositorio del libro fuera de transacción.
func (s *Store) Ledger() *LedgerRepository { return &LedgerRepository{s.direct()} }

// Documents repositorio de documentos fuera de transacción.
func (s *Store) Documents() *DocumentRepository { return &DocumentRepository{s.direct()} }

// Plans repositorio del plan fuera de transacción.
func (s *Store) Plans() *PlanRepository { return &PlanRepository{s.direct()} }

// Catalog repositorio del catálogo.
func (s *Store) Catalog() *CatalogRepository { return &CatalogRepository{&s.catalog} }

// Zones repositorio de zonas.
func (s *Store) Zones() *ZoneRepository { return &ZoneRepository{&s.catalog} }

// ── Carga de datos (pruebas y arranque en memoria) ─────────────────────────

// AddZone registra una zona.
func (s *Store) AddZone(z entity.Zone) {
	c := &s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.zones[z.ID]; !ok {
		c.zoneOrder = append(c.zoneOrder, z.ID)
	}
	if z.CreatedAt.IsZero() {
		z.CreatedAt = s.nowFn()
	}
	c.zones[z.ID] = z
}

// AddItem registra un ítem del catálogo; el orden de alta es el orden de catálogo.
func (s *Store) AddItem(it entity.Item) {
	c := &s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[it.ID]; !ok {
		c.itemOrder = append(c.itemOrder, it.ID)
	}
	c.items[it.ID] = it
}

// SetBom reemplaza la especificación de un ítem.
func (s *Store) SetBom(parentID string, lines []entity.BomLine) {
	c := &s.catalog
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]entity.BomLine, len(lines))
	for i, l := range lines {
		l.ParentItemID = parentID
		cp[i] = l
	}
	c.boms[parentID] = cp
}

// SetBalance fija un saldo inicial.
func (s *Store) SetBalance(itemID, zoneID string, qty decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := entity.StockKey{ItemID: itemID, ZoneID: zoneID}
	s.state.balances[k] = entity.StockBalance{ItemID: itemID, ZoneID: zoneID, Quantity: qty, UpdatedAt: s.nowFn()}
}

// SetPlan fija una fila del plan.
func (s *Store) SetPlan(itemID, date string, planned, produced decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.plans[planKey{itemID, date}] = entity.PlannedQuantity{
		ItemID: itemID, Date: date, PlannedQty: planned, ProducedQty: produced, UpdatedAt: s.nowFn(),
	}
}
