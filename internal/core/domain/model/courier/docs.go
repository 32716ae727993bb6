// Package courier contains the Courier aggregate. The availability flag
// doubles as the claim token of the dispatch algorithm: Claim flips it to
// false (mirroring the repository's atomic compare-and-set), and completion
// or cancellation of the delivery restores it.
package courier
