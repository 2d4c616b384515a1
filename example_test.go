package hive_test

import (
	"context"
	"fmt"
	"log"

	hive "github.com/galaxy-co-ai/hive-mcp"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/dsl"
)

// ExampleNew demonstrates the zero configuration engine: an in-memory comb
// authored through the fluent builder, queried and traversed in a few lines.
func ExampleNew() {
	// 1. Author the comb in code.
	b := dsl.New()

	b.Hex("docs-home").
		Name("Documentation Home").
		Hints("find documentation", "getting started").
		Edge("to-api", "api-reference").Always().Priority(1)

	b.Hex("api-reference").
		Name("API Reference").
		Hints("find api endpoints")

	store, err := b.Store()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Run the engine on top of it.
	eng, err := hive.New(hive.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 3. Ask where to go.
	matches, err := eng.Query(ctx, "find documentation", 0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("best:", matches[0].Hex.ID)

	// 4. Cross the edge.
	res := eng.Traverse(ctx, "docs-home", "to-api", nil)
	fmt.Println("next:", res.Destination)
	// Output:
	// best: docs-home
	// next: api-reference
}

// ExampleEngine_Traverse shows a guarded, transforming edge: the payload must
// carry a token, and only the fields the destination needs survive the
// crossing.
func ExampleEngine_Traverse() {
	b := dsl.New()

	b.Hex("gateway").
		Name("Gateway").
		Kind(domain.KindGateway).
		Edge("to-vault", "vault").
		HasData("token").
		Pick("token", "user").
		Rename("user", "subject").
		Inject("via", "gateway")

	b.Hex("vault").Name("Vault")

	store, err := b.Store()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := hive.New(hive.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	actx := &domain.AgentContext{
		Origin: "scout",
		Payload: map[string]any{
			"token": "abc",
			"user":  "ada",
			"noise": true,
		},
	}

	res := eng.Traverse(ctx, "gateway", "to-vault", actx)
	fmt.Println("success:", res.Success)

	payload := res.Payload.(map[string]any)
	fmt.Println("subject:", payload["subject"])
	fmt.Println("via:", payload["via"])
	_, leaked := payload["noise"]
	fmt.Println("noise kept:", leaked)
	// Output:
	// success: true
	// subject: ada
	// via: gateway
	// noise kept: false
}

// ExampleEngine_Journey shows the trail an agent leaves behind.
func ExampleEngine_Journey() {
	b := dsl.New()
	b.Hex("start").Name("Start").Edge("onward", "finish").Always()
	b.Hex("finish").Name("Finish")

	store, err := b.Store()
	if err != nil {
		log.Fatal(err)
	}

	eng, err := hive.New(hive.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	actx := &domain.AgentContext{Origin: "scout"}

	eng.Enter(ctx, "start", actx)
	eng.Traverse(ctx, "start", "onward", actx)
	eng.Enter(ctx, "finish", actx)

	journey, _ := eng.Journey("scout")
	for _, step := range journey.Steps {
		fmt.Printf("%s %s\n", step.Action, step.HexID)
	}
	// Output:
	// enter start
	// exit start
	// enter finish
}
