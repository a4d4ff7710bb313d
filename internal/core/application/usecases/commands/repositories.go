// Package commands contains the pipeline stages that modify system state.
// Every command follows the same pattern: validated construction, one unit of work,
// commit, then event emission.
package commands

import (
	"context"

	"pricing/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each stage only sees the repositories it owns or reads.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DemandRepoFactory provides access to demand repository within a transaction.
	DemandRepoFactory interface {
		DemandRepository() ports.DemandRepository
	}

	// PricingRepoFactory provides access to pricing repository within a transaction.
	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// OrderUoW manages transactions for order intake.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DemandUoW manages transactions for demand accumulation: orders are read,
	// demand and contributions are written.
	DemandUoW interface {
		TxManager
		OrderRepoFactory
		DemandRepoFactory
	}

	// DemandUoWFactory creates new demand unit of work instances.
	DemandUoWFactory interface {
		Create() DemandUoW
	}

	// PricingUoW manages transactions for price recalculation: demand is read,
	// pricing is written.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   record, err := uow.DemandRepository().Get(ctx, productID)
	//   // ... reprice
	//   err = uow.PricingRepository().Update(ctx, pricing)
	//
	//   err = uow.Commit(ctx)
	PricingUoW interface {
		TxManager
		DemandRepoFactory
		PricingRepoFactory
	}

	// PricingUoWFactory creates new pricing unit of work instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}
)
