/*
Package bigpicture is a collaborative Event Storming engine for mapping
business domains as graphs of events, commands, actors and policies.

It keeps the domain model (workshops, elements, bounded contexts) decoupled
from the surfaces that expose it. The core is a plain Go library; the MCP
server, HTTP API and CLI are thin adapters over the same workshop service.
This Hexagonal Architecture lets the engine back an AI assistant session, a
web dashboard, or a terminal workflow with identical semantics.

# Concept

An Event Storming workshop is a set of sticky notes on a timeline. Each
note is an element of one of eight types (events, commands, actors,
aggregates, policies, read models, external systems, hotspots), ordered by
position and optionally grouped into bounded contexts. Elements reference
each other through trigger relationships, which the engine keeps
symmetric and traversable in both directions.

# Key Features

  - Denormalized trigger graph: forward and reverse links are maintained
    together, so flow tracing never scans the whole workshop.
  - Pluggable persistence: filesystem, in-memory and Redis stores behind a
    single port.
  - Paginated queries: search, timeline and context views page
    predictably over large workshops.
  - Portable exports: JSON envelopes that re-import into a fresh workshop
    on any instance.

# Usage

Open a service over a directory and drive it directly:

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/bigpicture"
		"github.com/aretw0/bigpicture/pkg/domain"
		"github.com/aretw0/bigpicture/pkg/workshop"
	)

	func main() {
		svc := bigpicture.Open("./workshops")

		ctx := context.Background()
		w, err := svc.Create(ctx, workshop.CreateInput{
			Name:   "Order Fulfillment",
			Domain: "e-commerce",
		})
		if err != nil {
			log.Fatal(err)
		}

		_, err = svc.AddElement(ctx, w.Metadata.ID, domain.NewElement{
			Type: domain.TypeEvent,
			Name: "Order Placed",
		})
		if err != nil {
			log.Fatal(err)
		}
	}
*/
package bigpicture
