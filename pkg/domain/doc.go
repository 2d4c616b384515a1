/*
Package domain contains the core domain models for the hive engine.

It defines the fundamental entities of the comb, such as Hexes, Edges, and
the agent's navigation context. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Hex: a unit of content or capability in the comb.
  - Edge: a directed, conditionally-guarded connection between hexes.
  - Condition: the guard deciding whether an edge may be taken.
  - Transform: declarative reshaping of the payload carried across an edge.
  - AgentContext: the caller's intent, payload, and origin while navigating.
  - JourneyStep / Journey: the append-only audit trail of navigation.
*/
package domain
