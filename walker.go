package hive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// Walker drives an interactive session over a comb using the provided IO.
// The same loop serves a terminal, a scripted transcript, or a test.
type Walker struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms hex content before it is written. The CLI plugs
// markdown rendering in through this without coupling the core package to a
// terminal library.
type ContentRenderer func(string) (string, error)

// NewWalker creates a Walker with no IO bound. Callers set Input and Output
// explicitly (os.Stdin and os.Stdout in a CLI, buffers in tests).
func NewWalker() *Walker {
	return &Walker{}
}

// Walk runs the enter, choose, traverse loop from startID until the agent
// quits, crosses an external edge, or lands on a hex with no passable exits.
// In headless mode it takes the best exit automatically and stops before
// revisiting a hex.
func (w *Walker) Walk(ctx context.Context, nav ports.Navigator, startID string, actx *domain.AgentContext) error {
	if w.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if !w.Headless && w.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}

	var lineReader *bufio.Reader
	if w.Input != nil {
		lineReader = bufio.NewReader(w.Input)
	}

	current := startID
	visited := map[string]bool{}

	for {
		res := nav.Enter(ctx, current, actx)
		if !res.Success {
			fmt.Fprintf(w.Output, "%s: %s\n", res.Error, current)
			return nil
		}
		visited[current] = true
		w.render(res.Hex)

		if len(res.Exits) == 0 {
			fmt.Fprintln(w.Output, "(no exits)")
			return nil
		}
		fmt.Fprintln(w.Output, "exits:")
		for _, edge := range res.Exits {
			if edge.Description != "" {
				fmt.Fprintf(w.Output, "  [%s] -> %s  %s\n", edge.ID, edge.To, edge.Description)
			} else {
				fmt.Fprintf(w.Output, "  [%s] -> %s\n", edge.ID, edge.To)
			}
		}

		var choice string
		if w.Headless {
			// Exits arrive best first; take the top one.
			choice = res.Exits[0].ID
		} else {
			picked, quit, err := w.prompt(res.Exits, lineReader)
			if err != nil {
				return err
			}
			if quit {
				fmt.Fprintln(w.Output, "Bye!")
				return nil
			}
			choice = picked
		}

		crossing := nav.Traverse(ctx, current, choice, actx)
		if !crossing.Success {
			fmt.Fprintf(w.Output, "%s: %s\n", crossing.Error, choice)
			return nil
		}
		if crossing.External {
			fmt.Fprintf(w.Output, "leaving the comb: %s\n", crossing.Destination)
			return nil
		}

		actx = carryForward(actx, crossing.Payload)
		current = crossing.Destination

		if w.Headless && visited[current] {
			fmt.Fprintf(w.Output, "stopping before revisiting: %s\n", current)
			return nil
		}
	}
}

// prompt reads edge choices until one matches a listed exit. Empty input
// takes the top exit; "exit" and "quit" end the walk, as does EOF.
func (w *Walker) prompt(exits []domain.Edge, lineReader *bufio.Reader) (string, bool, error) {
	for {
		fmt.Fprint(w.Output, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return "", true, nil
			}
			return "", false, fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)

		if input == "exit" || input == "quit" {
			return "", true, nil
		}
		if input == "" {
			return exits[0].ID, false, nil
		}
		for _, edge := range exits {
			if edge.ID == input {
				return input, false, nil
			}
		}
		fmt.Fprintf(w.Output, "unknown edge %q\n", input)
	}
}

// render writes one hex: name, description, and whatever text its contents
// carry, through the Renderer when one is set.
func (w *Walker) render(hex *domain.Hex) {
	fmt.Fprintf(w.Output, "== %s ==\n", hex.Name)
	if hex.Description != "" {
		fmt.Fprintln(w.Output, hex.Description)
	}
	if text, ok := contentText(hex); ok {
		if w.Renderer != nil {
			if rendered, err := w.Renderer(text); err == nil {
				text = rendered
			}
		}
		fmt.Fprintln(w.Output, strings.TrimSpace(text))
	}
}

// contentText extracts displayable text from hex contents: a bare string, or
// the conventional "text" field of an object payload.
func contentText(hex *domain.Hex) (string, bool) {
	switch data := hex.Contents.Data.(type) {
	case string:
		return data, data != ""
	case map[string]any:
		if text, ok := data["text"].(string); ok && text != "" {
			return text, true
		}
	}
	return "", false
}

// carryForward threads the transformed payload into the context for the next
// hop without mutating the caller's struct.
func carryForward(actx *domain.AgentContext, payload any) *domain.AgentContext {
	next := &domain.AgentContext{Payload: payload}
	if actx != nil {
		next.Intent = actx.Intent
		next.Origin = actx.Origin
	}
	return next
}
