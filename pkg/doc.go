// Package pkg provides the core libraries for Socialgraph.
//
// # Overview
//
// Socialgraph keeps an undirected friendship network in memory and answers
// questions about it: who is friends with whom, which friends two people
// share, and the shortest chain of friendships between two people. The pkg
// directory is organized into four main areas:
//
//  1. [network] - Domain logic (people, friendships, traversal)
//  2. [io] and [report] - Rosters in, friend lists and statistics out
//  3. [store], [cache] and [events] - Persistence, render caching and change feeds
//  4. [render] - Diagrams of the network
//
// # Architecture
//
// The typical data flow through Socialgraph:
//
//	Roster file (JSON/TOML) or stored snapshot
//	         ↓
//	    [io] package (decode, apply entry by entry)
//	         ↓
//	    [network] package (mutations + queries)
//	         ↓
//	    [report] / [render/nodelink] / [store]
//	         ↓
//	    Friend lists, SVG/PDF/PNG/DOT, snapshots
//
// # Quick Start
//
//	n := network.New()
//	_ = n.AddPerson("Alex")
//	_ = n.AddPerson("Jordan")
//	_ = n.AddFriendship("Alex", "Jordan")
//
//	friends, _ := n.Neighbors("Alex")        // [Jordan]
//	path, ok, _ := n.ShortestPath("Alex", "Jordan")
//	_ = report.WriteText(os.Stdout, n)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [network] - The friendship graph. Mutations either succeed completely or
// leave the network unchanged; errors wrap sentinels such as
// [network.ErrNotFound]. [network.Synchronized] shares one network between
// goroutines.
//
// [errors] - Application error codes layered over the engine's sentinels,
// with HTTP status mapping and the messages shown to people.
//
// ## Input and Output
//
// [io] - Roster files and the entry-by-entry loader that reports rejected
// entries instead of aborting.
//
// [report] - The "<name> is friends with: ..." listing and summary statistics.
//
// [render] - Output formats and SVG conversion. [render/nodelink] draws the
// network with Graphviz.
//
// ## Infrastructure
//
// [store] - Named snapshots in files, Redis, MongoDB or Neo4j.
//
// [cache] - Render cache with file, Redis and no-op backends.
//
// [events] - Change events published to NATS.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Hooks for metrics, with a Prometheus implementation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/network/...            # Specific package
//	go test -run Example                 # Examples only
//
// [network]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/network
// [network.ErrNotFound]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/network#ErrNotFound
// [network.Synchronized]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/network#Synchronized
// [errors]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/io
// [report]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/report
// [render]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/render/nodelink
// [store]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/cache
// [events]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/events
// [config]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/socialgraph/pkg/observability
package pkg
