// ABOUTME: Tenant-scoped key composition for row-level isolation
// ABOUTME: Every stored record id is prefixed with the owning user id
package repository

import "strings"

// idSeparator joins the user id and the logical id into one physical key.
// Neither component may contain it: decomposition splits on the first
// occurrence, and a separator inside either side shifts the boundary, so
// distinct (user, id) pairs could compose to the same physical key.
// Generated ids are UUIDs and are safe; caller-supplied prompt ids are
// validated by the stores; user ids come from the deployment's identity
// configuration, which must not mint ids containing the separator.
const idSeparator = "_"

// ComposeID builds the physical record id for a tenant-owned entity. The
// user prefix is what lets leading-key access policies fence off each
// tenant's rows.
func ComposeID(userID, logicalID string) string {
	return userID + idSeparator + logicalID
}

// DecomposeID strips the user prefix from a physical id, returning the
// logical id. It is the left inverse of ComposeID for separator-free
// logical ids.
func DecomposeID(physicalID string) string {
	_, logical, found := strings.Cut(physicalID, idSeparator)
	if !found {
		return physicalID
	}
	return logical
}

// validLogicalID rejects logical ids that would make decomposition
// ambiguous.
func validLogicalID(id string) bool {
	return id != "" && !strings.Contains(id, idSeparator)
}
