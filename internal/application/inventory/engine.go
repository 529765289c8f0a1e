package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
	domaininv "github.com/jhoicas/stockout-agent/internal/domain/inventory"
	"github.com/jhoicas/stockout-agent/internal/domain/repository"
	"github.com/jhoicas/stockout-agent/pkg/logger"
)

// DecisionEngine evalúa riesgo de quiebre, decide reposiciones y las registra en el DecisionLog.
//
// Es dueño del inventario en memoria: CurrentStock solo cambia aquí, cuando una decisión con
// cantidad positiva quedó persistida. Las escrituras (registrar + sumar stock) van bajo un único
// lock; las lecturas comparten el lock de lectura.
type DecisionEngine struct {
	mu      sync.RWMutex
	records []entity.InventoryRecord
	index   map[string]int
	demand  map[string]entity.DemandRecord
	log     *DecisionLog
	now     func() time.Time
	logger  *logger.Logger
}

// Option configura el DecisionEngine.
type Option func(*DecisionEngine)

// WithClock reemplaza el reloj usado para el timestamp de las decisiones.
func WithClock(now func() time.Time) Option {
	return func(e *DecisionEngine) { e.now = now }
}

// WithLogger asigna el logger estructurado.
func WithLogger(l *logger.Logger) Option {
	return func(e *DecisionEngine) { e.logger = l }
}

// NewDecisionEngine construye el motor con los datos ya cargados y el log persistido.
// product_id repetido en cualquiera de las fuentes devuelve domain.ErrDuplicate.
func NewDecisionEngine(
	ctx context.Context,
	inventory []entity.InventoryRecord,
	demand []entity.DemandRecord,
	repo repository.DecisionRepository,
	opts ...Option,
) (*DecisionEngine, error) {
	e := &DecisionEngine{
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.setSources(inventory, demand); err != nil {
		return nil, err
	}
	log, err := LoadDecisionLog(ctx, repo)
	if err != nil {
		return nil, err
	}
	e.log = log
	e.logger.Info().
		Int("products", len(e.records)).
		Int("decisions", log.Len()).
		Msg("motor de decisiones listo")
	return e, nil
}

// NewDecisionEngineFromSource carga inventario y demanda desde src y construye el motor.
func NewDecisionEngineFromSource(
	ctx context.Context,
	src repository.SourceRepository,
	repo repository.DecisionRepository,
	opts ...Option,
) (*DecisionEngine, error) {
	inv, err := src.LoadInventory(ctx)
	if err != nil {
		return nil, err
	}
	dem, err := src.LoadDemand(ctx)
	if err != nil {
		return nil, err
	}
	return NewDecisionEngine(ctx, inv, dem, repo, opts...)
}

func (e *DecisionEngine) setSources(inventory []entity.InventoryRecord, demand []entity.DemandRecord) error {
	records := make([]entity.InventoryRecord, len(inventory))
	copy(records, inventory)
	index := make(map[string]int, len(records))
	for i, r := range records {
		if _, dup := index[r.ProductID]; dup {
			return fmt.Errorf("inventario: %w: product_id %s", domain.ErrDuplicate, r.ProductID)
		}
		index[r.ProductID] = i
	}
	dem := make(map[string]entity.DemandRecord, len(demand))
	for _, d := range demand {
		if _, dup := dem[d.ProductID]; dup {
			return fmt.Errorf("demanda: %w: product_id %s", domain.ErrDuplicate, d.ProductID)
		}
		dem[d.ProductID] = d
	}
	e.records, e.index, e.demand = records, index, dem
	return nil
}

// ReplaceSources reemplaza inventario y demanda (p. ej. tras una carga de archivos).
// El log de decisiones se conserva.
func (e *DecisionEngine) ReplaceSources(inventory []entity.InventoryRecord, demand []entity.DemandRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.setSources(inventory, demand); err != nil {
		return err
	}
	e.logger.Info().
		Int("products", len(e.records)).
		Int("demand_records", len(e.demand)).
		Msg("fuentes de datos reemplazadas")
	return nil
}

// lookup devuelve el registro de inventario, su posición y la demanda del producto. Requiere lock.
func (e *DecisionEngine) lookup(productID string) (int, entity.DemandRecord, error) {
	i, ok := e.index[productID]
	if !ok {
		return 0, entity.DemandRecord{}, fmt.Errorf("%w: producto %s sin inventario", domain.ErrNotFound, productID)
	}
	dem, ok := e.demand[productID]
	if !ok {
		return 0, entity.DemandRecord{}, fmt.Errorf("%w: producto %s sin demanda", domain.ErrNotFound, productID)
	}
	return i, dem, nil
}

// CalculateRisk evalúa el riesgo actual del producto. No tiene efectos secundarios.
func (e *DecisionEngine) CalculateRisk(_ context.Context, productID string) (entity.RiskAssessment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i, dem, err := e.lookup(productID)
	if err != nil {
		return entity.RiskAssessment{}, err
	}
	return domaininv.RiskCalculator(e.records[i], dem), nil
}

// MakeDecision evalúa el producto, aplica la política de reposición, registra la decisión
// y, solo si quedó persistida y la cantidad es positiva, suma la reposición al stock.
func (e *DecisionEngine) MakeDecision(ctx context.Context, productID string) (entity.Decision, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.makeDecision(ctx, productID, e.logger.Zerolog())
}

func (e *DecisionEngine) makeDecision(ctx context.Context, productID string, zl zerolog.Logger) (entity.Decision, error) {
	if err := ctx.Err(); err != nil {
		return entity.Decision{}, err
	}
	i, dem, err := e.lookup(productID)
	if err != nil {
		return entity.Decision{}, err
	}
	rec := e.records[i]
	risk := domaininv.RiskCalculator(rec, dem)
	plan := domaininv.ReorderPolicy(risk, rec)

	d := entity.Decision{
		ProductID:     rec.ProductID,
		ProductName:   rec.ProductName,
		Timestamp:     e.now().UTC().Truncate(time.Microsecond),
		ObservedStock: risk.CurrentStock,
		DailyDemand:   risk.DailyDemand,
		DaysOfStock:   risk.DaysOfStock,
		LeadTimeDays:  risk.LeadTime,
		RiskFactor:    risk.RiskFactor,
		RiskLevel:     risk.RiskLevel,
		Action:        plan.Action,
		ReorderQty:    plan.Quantity,
		Reason:        plan.Reason,
	}

	if err := e.log.Append(ctx, d); err != nil {
		zl.Error().Err(err).Str("product_id", productID).Msg("decisión no registrada; stock sin cambios")
		return entity.Decision{}, err
	}
	if d.ReorderQty > 0 {
		e.records[i].CurrentStock += d.ReorderQty
	}

	zl.Info().
		Str("product_id", d.ProductID).
		Str("risk_level", string(d.RiskLevel)).
		Stringer("risk_factor", d.RiskFactor).
		Int("reorder_qty", d.ReorderQty).
		Int("stock", e.records[i].CurrentStock).
		Msg("decisión registrada")
	return d, nil
}

// RunAllProducts decide para cada producto en el orden del inventario.
// Se detiene en el primer error y devuelve las decisiones ya registradas junto con el error.
func (e *DecisionEngine) RunAllProducts(ctx context.Context) ([]entity.Decision, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runID := uuid.New().String()
	zl := e.logger.ForRun(runID)
	zl.Info().Int("products", len(e.records)).Msg("evaluando todos los productos")

	ids := make([]string, len(e.records))
	for i, r := range e.records {
		ids[i] = r.ProductID
	}

	out := make([]entity.Decision, 0, len(ids))
	for _, id := range ids {
		d, err := e.makeDecision(ctx, id, zl)
		if err != nil {
			return out, fmt.Errorf("producto %s: %w", id, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// ProductTimeline devuelve las decisiones registradas para el producto, en orden cronológico.
func (e *DecisionEngine) ProductTimeline(productID string) []entity.Decision {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Timeline(productID)
}

// Inventory devuelve una copia del inventario actual, en el orden de carga.
func (e *DecisionEngine) Inventory() []entity.InventoryRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]entity.InventoryRecord, len(e.records))
	copy(out, e.records)
	return out
}

// Decisions devuelve una copia del log de decisiones completo.
func (e *DecisionEngine) Decisions() []entity.Decision {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.All()
}
