// Package schema declares the per-role form configuration: field kinds,
// field descriptors, role forms, and the registry that resolves a role id to
// its form. Unknown role ids resolve to "not found" (ErrRoleNotConfigured on
// error paths) so callers can render an unconfigured-role message instead of
// failing.
package schema
