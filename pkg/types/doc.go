// Package types defines the avatar data model (Category, Part, Selection,
// EntitlementRecord, Verdict), the Catalog and Diagnostics interfaces, and
// the standard error types for the Wardrobe engine.
//
// Values in this package are plain data. Behaviour lives in the internal
// packages: catalog loading, the selection store, the entitlement resolver,
// the compositor, and the purchase service.
package types
