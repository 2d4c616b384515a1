package match

// DefaultSynonyms returns the built-in synonym groups. A fresh map is
// returned on every call so callers can extend it without affecting anyone
// else; expansion is bidirectional, so listing a word once in a group is
// enough.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"api":     {"endpoint", "interface", "service"},
		"auth":    {"authentication", "login", "credential", "token"},
		"button":  {"interactive", "click", "press", "control"},
		"config":  {"configuration", "settings", "setup", "options"},
		"data":    {"payload", "content", "record", "information"},
		"doc":     {"docs", "document", "documentation", "guide", "manual"},
		"error":   {"failure", "fault", "problem", "issue"},
		"graph":   {"comb", "network", "map", "hive"},
		"help":    {"assist", "support", "howto"},
		"journey": {"trail", "path", "history", "audit"},
		"search":  {"find", "lookup", "locate", "discover"},
		"start":   {"begin", "entry", "home", "landing"},
		"store":   {"storage", "persist", "save", "database"},
		"tool":    {"utility", "command", "capability", "action"},
		"user":    {"account", "profile", "agent", "caller"},
	}
}

// DefaultTable precomputes the adjacency over DefaultSynonyms.
func DefaultTable() *Table {
	return NewTable(DefaultSynonyms())
}
