// Package cli is the socialgraph command tree.
//
// Every query command works on a network assembled from either a roster
// file (-i roster.toml) or a stored snapshot (--snapshot campus), so
//
//	socialgraph path Jordan Riley -i roster.toml
//	socialgraph path Jordan Riley --snapshot campus
//
// answer the same question from different sources. Loading reports each
// rejected roster entry on stderr and carries on with the rest.
//
// Besides the queries (report, friends, mutual, path, connected,
// components, suggest) there are commands to draw the network (render),
// browse it in a terminal UI (explore), manage stored snapshots, run the
// HTTP API (serve) and tail its NATS change feed (watch).
//
// Diagnostics go through charmbracelet/log on stderr; -v lowers the level
// to debug. Results go to stdout.
package cli
