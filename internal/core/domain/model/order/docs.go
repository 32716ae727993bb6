// Package order contains the Order aggregate and its supporting value
// objects: lifecycle Status with an explicit transition table, line Items,
// the delivery Address, the PaymentMethod, and the append-only status
// History.
//
// The aggregate enforces the monetary invariant
// total = subtotal + deliveryFee + serviceFee - discount and keeps courier
// assignment consistent with the lifecycle: a courier reference can only
// exist once the order is Ready.
package order
