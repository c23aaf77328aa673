package model

// IndexByCode builds the code-keyed lookup map the calculators join against.
// Later duplicates win, matching last-write semantics of a wholesale reload.
func IndexByCode(entries []ReferenceEntry) map[int]ReferenceEntry {
	m := make(map[int]ReferenceEntry, len(entries))
	for _, e := range entries {
		m[e.Code] = e
	}
	return m
}
