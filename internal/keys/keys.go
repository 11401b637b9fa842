package keys

import "strings"

// raceAliases maps Spanish race names, still stored by older clients, onto
// the canonical English keys.
var raceAliases = map[string]string{
	"orco":     "orc",
	"enano":    "dwarf",
	"elfo":     "elf",
	"semielfo": "half-elf",
	"humano":   "human",
	"halfelf":  "half-elf",
	"half elf": "half-elf",
}

// RaceKey produces the canonical lookup key for a race name: trimmed,
// lower-cased, inner whitespace collapsed and known aliases resolved.
// Empty input yields "".
func RaceKey(name string) string {
	s := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if s == "" {
		return ""
	}
	if alias, ok := raceAliases[s]; ok {
		return alias
	}
	return s
}

// EmailKey normalizes an email address for storage and lookups.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
