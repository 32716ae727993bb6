// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the dispatch system.
//
// The package includes:
//   - Dispatcher: matches ready orders to the nearest eligible courier and
//     produces delivery offers
//   - CashReconciler: validates tendered cash against a total due and
//     computes change under denomination rules
//   - Tariff: the base-plus-per-kilometer fee schedule used for pricing
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles. They are pure over their inputs and perform no I/O.
package services
