// Package fleet declares the collections of the fleet dashboard and builds a
// synchronisation engine for each of them.
package fleet

import (
	"context"
	"slices"

	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/shape"
	"github.com/nikmy/fleetsync/internal/syncer"
	"github.com/nikmy/fleetsync/internal/validate"
	"github.com/nikmy/fleetsync/pkg/logger"
)

type CollectionConfig struct {
	Remote bool `yaml:"remote"`
}

// Config selects the mode of every collection. Kinds missing from it are
// local-only.
type Config map[Kind]CollectionConfig

type Registry struct {
	vehicles    *syncer.Engine[Vehicle]
	drivers     *syncer.Engine[Driver]
	investors   *syncer.Engine[Investor]
	payments    *syncer.Engine[Payment]
	maintenance *syncer.Engine[Maintenance]
	cardex      *syncer.Engine[CardexItem]
	discounts   *syncer.Engine[Discount]
	settlements *syncer.Engine[Settlement]
	settings    *syncer.Engine[SystemSettings]

	collections map[Kind]Collection
}

func NewRegistry(ctx context.Context, log logger.Logger, cfg Config, deps syncer.Deps) *Registry {
	r := &Registry{collections: make(map[Kind]Collection, len(Kinds))}
	b := builder{ctx: ctx, log: log.With("fleet"), cfg: cfg, deps: deps, r: r}

	r.vehicles = register[Vehicle](b, KindVehicles, "Vehicle", vehicleShape, vehicleRules, r.withMaintenance)
	r.drivers = register[Driver](b, KindDrivers, "Driver", driverShape, driverRules, nil)
	r.investors = register[Investor](b, KindInvestors, "Investor", investorShape, investorRules, r.withVehicles)
	r.payments = register[Payment](b, KindPayments, "Payment", paymentShape, paymentRules, nil)
	r.maintenance = register[Maintenance](b, KindMaintenance, "Maintenance", maintenanceShape, maintenanceRules, nil)
	r.cardex = register[CardexItem](b, KindCardex, "Cardex item", cardexShape, nil, nil)
	r.discounts = register[Discount](b, KindDiscounts, "Discount", discountShape, discountRules, nil)
	r.settlements = register[Settlement](b, KindSettlements, "Settlement", settlementShape, settlementRules, nil)
	r.settings = register[SystemSettings](b, KindSettings, "Settings", settingsShape, nil, nil)

	return r
}

type builder struct {
	ctx  context.Context
	log  logger.Logger
	cfg  Config
	deps syncer.Deps
	r    *Registry
}

func register[T entity.Indexed](
	b builder,
	kind Kind,
	name string,
	transformer shape.Transformer,
	validator validate.Validator,
	enrich func(T) T,
) *syncer.Engine[T] {
	e := syncer.New[T](b.ctx, b.log, syncer.Config[T]{
		Name:        name,
		StorageKey:  kind.StorageKey(),
		Remote:      b.cfg[kind].Remote,
		Table:       kind.Table(),
		Validator:   validator,
		Transformer: transformer,
	}, b.deps)

	b.log.Infof("%s collection is %s-backed", kind, e.Mode())

	b.r.collections[kind] = &collection[T]{kind: kind, engine: e, enrich: enrich}
	return e
}

func (r *Registry) Vehicles() *syncer.Engine[Vehicle] { return r.vehicles }
func (r *Registry) Drivers() *syncer.Engine[Driver] { return r.drivers }
func (r *Registry) Investors() *syncer.Engine[Investor] { return r.investors }
func (r *Registry) Payments() *syncer.Engine[Payment] { return r.payments }
func (r *Registry) Maintenance() *syncer.Engine[Maintenance] { return r.maintenance }
func (r *Registry) Cardex() *syncer.Engine[CardexItem] { return r.cardex }
func (r *Registry) Discounts() *syncer.Engine[Discount] { return r.discounts }
func (r *Registry) Settlements() *syncer.Engine[Settlement] { return r.settlements }
func (r *Registry) Settings() *syncer.Engine[SystemSettings] { return r.settings }

func (r *Registry) Collection(kind Kind) (Collection, bool) {
	c, ok := r.collections[kind]
	return c, ok
}

// Collections returns every collection in Kinds order.
func (r *Registry) Collections() []Collection {
	all := make([]Collection, 0, len(Kinds))
	for _, kind := range Kinds {
		all = append(all, r.collections[kind])
	}
	return all
}

// Remote returns the collections kept in sync with the remote store.
func (r *Registry) Remote() []Collection {
	return slices.DeleteFunc(r.Collections(), func(c Collection) bool {
		return c.Mode() != syncer.ModeRemote
	})
}

func (r *Registry) withMaintenance(v Vehicle) Vehicle {
	v.Maintenance = nil
	for _, m := range r.maintenance.Items() {
		if m.VehicleID == v.ID {
			v.Maintenance = append(v.Maintenance, m)
		}
	}
	return v
}

func (r *Registry) withVehicles(i Investor) Investor {
	i.Vehicles = nil
	for _, v := range r.vehicles.Items() {
		if v.InvestorID == i.ID {
			i.Vehicles = append(i.Vehicles, v.ID)
		}
	}
	return i
}
