// Package delivery contains the Delivery aggregate: the assignment of one
// courier to one ready order, with its own offered -> accepted -> collected
// -> delivered lifecycle. Courier-facing transitions are guarded by courier
// identity so only the courier the delivery was offered to can act on it.
package delivery
