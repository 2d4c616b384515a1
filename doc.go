/*
Package hive is a navigable knowledge comb for AI agents: content and
capabilities live in hexagonal cells (hexes) joined by guarded, transforming
edges, and agents move through them carrying an intent and a payload.

# Concept

A comb is a graph of hexes. Each hex holds opaque contents plus entry hints
describing when an agent should land there; each edge owns a guard (the
conditions under which it may be crossed) and an optional payload transform.
The engine answers four questions: where should I go for this intent (Query),
what is here (Enter), where can I go next (NextSteps), and what happens when
I cross (Traverse). Every move is recorded as a journey step, so a session
leaves an auditable trail.

# Key Features

  - Intent matching: lexical scoring with bidirectional synonym expansion,
    explainable via the hints that earned each match.
  - Guarded edges: declarative conditions over the agent's intent and
    payload, evaluated the same way on listing and on crossing.
  - Payload transforms: pick/omit/rename/inject pipelines applied on
    traversal, pure and order-fixed.
  - Soft failures: navigation problems are values on the result, not errors;
    only infrastructure faults surface as errors.
  - Hexagonal architecture: stores and journals are ports; memory, file and
    Redis adapters ship in pkg/adapters.

# Usage

The zero configuration engine runs entirely in memory:

	package main

	import (
		"context"
		"fmt"
		"log"

		hive "github.com/galaxy-co-ai/hive-mcp"
		"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	)

	func main() {
		eng, err := hive.New()
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		_, err = eng.CreateHex(ctx, &domain.Hex{
			ID:         "docs-home",
			Name:       "Documentation Home",
			Kind:       domain.KindData,
			EntryHints: []string{"find documentation", "getting started"},
		})
		if err != nil {
			log.Fatal(err)
		}

		matches, err := eng.Query(ctx, "where are the docs", 0)
		if err != nil {
			log.Fatal(err)
		}
		for _, m := range matches {
			fmt.Printf("%s (%.1f)\n", m.Hex.ID, m.Score)
		}
	}

Durable deployments inject a file or Redis backed store and journal via
WithStore and WithJournal; the pkg/dsl package builds combs fluently in code.
*/
package hive
