package ingest

// ownerKey is the mapping key carrying the owning principal.
const ownerKey = "owner"

// InjectOwner walks a nested value depth-first and sets the owner key on
// every mapping encountered, including mappings nested inside sequences.
// Scalars (strings, numbers, booleans, nil) are not recursed into. The walk
// is idempotent: re-injecting the same owner is a no-op.
func InjectOwner(value interface{}, owner string) {
	switch v := value.(type) {
	case map[string]interface{}:
		v[ownerKey] = owner
		for key, child := range v {
			if key == ownerKey {
				continue
			}
			InjectOwner(child, owner)
		}
	case []interface{}:
		for _, item := range v {
			InjectOwner(item, owner)
		}
	}
}
