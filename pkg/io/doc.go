// Package io provides bulk import and export of social networks.
//
// # Overview
//
// A network is exchanged as a roster: the people it contains and the
// friendships between them. Two formats are supported:
//
//   - JSON, the round-trip format written by [WriteJSON] and [ExportJSON]
//   - TOML, a hand-editable roster read by [ReadTOML]
//
// # JSON Format
//
//	{
//	  "people": [
//	    {"id": "Alex"},
//	    {"id": "Jordan", "meta": {"city": "Lisbon"}}
//	  ],
//	  "friendships": [
//	    {"a": "Alex", "b": "Jordan"}
//	  ]
//	}
//
// Each friendship appears once. Exported output is deterministic: people in
// insertion order, friendships in the order they were created.
//
// # TOML Format
//
//	people = ["Alex", "Jordan", "Taylor"]
//
//	[[person]]
//	id = "Riley"
//	[person.meta]
//	city = "Porto"
//
//	[[friendship]]
//	a = "Alex"
//	b = "Jordan"
//
// The plain people list and [[person]] tables may be combined. Plain names
// are added first.
//
// # Loading
//
// [Apply] feeds a [Roster] into anything implementing [Mutator] (a
// *network.Network or a *network.Synchronized). It never stops at the first
// failure: every rejected person or friendship is recorded in the returned
// [Report], so a roster referencing an unknown person still loads everything
// else. Use [Report.Err] when partial loads are unacceptable.
//
//	r, err := io.ImportFile("roster.toml")
//	if err != nil {
//	    return err
//	}
//	n := network.New()
//	rep := io.Apply(n, r)
//	for _, f := range rep.Failures {
//	    fmt.Println(f.Message()) // Friendship not created: Johnny does not exist
//	}
package io
