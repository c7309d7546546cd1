// Package graph models the debate graph configuration: who debates, who
// talks to whom, and how many rounds they get.
package graph

import (
	"fmt"
	"strings"
)

// Edge directions. A bidirectional edge produces a message channel both ways.
const (
	DirectionAToB          = "a_to_b"
	DirectionBToA          = "b_to_a"
	DirectionBidirectional = "bidirectional"
)

// DefaultQuestion is used when the config leaves the topic empty.
const DefaultQuestion = "The impact of artificial intelligence on society: Is AI ultimately beneficial or harmful?"

// Node is one debate participant.
type Node struct {
	ID           string  `json:"id" yaml:"id"`
	Label        string  `json:"label" yaml:"label"`
	SystemPrompt string  `json:"systemPrompt,omitempty" yaml:"system_prompt,omitempty"`
	Temperature  float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// Edge is a directed or bidirectional link between two participants.
type Edge struct {
	From      string `json:"from" yaml:"from"`
	To        string `json:"to" yaml:"to"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Config is the full debate configuration sent to the backend.
type Config struct {
	Nodes    []Node `json:"nodes" yaml:"nodes"`
	Edges    []Edge `json:"edges" yaml:"edges"`
	Rounds   int    `json:"rounds" yaml:"rounds"`
	APIKey   string `json:"apiKey" yaml:"-"`
	Question string `json:"question" yaml:"question"`
}

// Validate checks the config the way the backend does before it will run a
// debate, and normalizes rounds and the question.
func (c *Config) Validate() error {
	if len(c.Nodes) < 2 {
		return fmt.Errorf("at least 2 agents are required, got %d", len(c.Nodes))
	}
	seen := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.ID == "" {
			return fmt.Errorf("agent %q has no id", n.Label)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate agent id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range c.Edges {
		switch e.Direction {
		case "", DirectionAToB, DirectionBToA, DirectionBidirectional:
		default:
			return fmt.Errorf("edge %s->%s has unknown direction %q", e.From, e.To, e.Direction)
		}
	}
	if c.Rounds < 1 {
		c.Rounds = 1
	}
	if strings.TrimSpace(c.Question) == "" {
		c.Question = DefaultQuestion
	}
	return nil
}

// Labels returns the id -> display label lookup. Nodes without a label map
// to their id.
func (c *Config) Labels() map[string]string {
	labels := make(map[string]string, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.Label == "" {
			labels[n.ID] = n.ID
			continue
		}
		labels[n.ID] = n.Label
	}
	return labels
}

// Label returns the display label for an id, falling back to the id itself.
func (c *Config) Label(id string) string {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n.Label
		}
	}
	return id
}

// NeighborMaps resolves the edge list into outgoing and incoming adjacency
// maps keyed by node id. Edges naming unknown nodes are skipped, and each
// neighbor appears once regardless of how many edges connect the pair.
func (c *Config) NeighborMaps() (outgoing, incoming map[string][]string) {
	outgoing = make(map[string][]string, len(c.Nodes))
	incoming = make(map[string][]string, len(c.Nodes))
	for _, n := range c.Nodes {
		outgoing[n.ID] = nil
		incoming[n.ID] = nil
	}

	add := func(sender, receiver string) {
		if _, ok := outgoing[sender]; !ok {
			return
		}
		if _, ok := outgoing[receiver]; !ok {
			return
		}
		if !contains(outgoing[sender], receiver) {
			outgoing[sender] = append(outgoing[sender], receiver)
		}
		if !contains(incoming[receiver], sender) {
			incoming[receiver] = append(incoming[receiver], sender)
		}
	}

	for _, e := range c.Edges {
		if e.From == "" || e.To == "" {
			continue
		}
		switch e.Direction {
		case DirectionAToB:
			add(e.From, e.To)
		case DirectionBToA:
			add(e.To, e.From)
		default: // bidirectional
			add(e.From, e.To)
			add(e.To, e.From)
		}
	}
	return outgoing, incoming
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
