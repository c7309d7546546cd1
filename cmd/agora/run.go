package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agoraviz/agora/internal/config"
	"github.com/agoraviz/agora/internal/graph"
	"github.com/agoraviz/agora/internal/stream"
	"github.com/agoraviz/agora/internal/ui"
)

// Run starts a debate visualization session.
func (c *RunCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	debate, err := graph.LoadFile(c.Graph)
	if err != nil {
		return err
	}
	if c.Question != "" {
		debate.Question = c.Question
	}
	if c.Rounds > 0 {
		debate.Rounds = c.Rounds
	}
	if c.Source == "ws" {
		debate.APIKey = cfg.GetAPIKey()
		if debate.APIKey == "" {
			return fmt.Errorf("no API key found; set %s or configure server.api_key_env", cfg.Server.APIKeyEnv)
		}
	}
	if err := debate.Validate(); err != nil {
		return fmt.Errorf("invalid debate graph: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := c.openSource(ctx, cfg, debate)
	if err != nil {
		return err
	}
	defer src.Close()

	model := ui.NewModel(ctx, cfg, debate, src)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func (c *RunCmd) loadConfig() (*config.Config, error) {
	if c.Config != "" {
		return config.LoadFile(c.Config)
	}
	return config.LoadDefault()
}

func (c *RunCmd) openSource(ctx context.Context, cfg *config.Config, debate *graph.Config) (stream.Source, error) {
	switch c.Source {
	case "file":
		if c.File == "" {
			return nil, fmt.Errorf("the file source requires --file")
		}
		return stream.OpenFile(c.File, c.Follow)
	case "nats":
		if cfg.NATS.URL == "" {
			return nil, fmt.Errorf("the nats source requires nats.url in the config")
		}
		return stream.DialNATS(cfg.NATS.URL, cfg.NATS.Subject)
	default:
		url := cfg.Server.URL
		if c.Server != "" {
			url = c.Server
		}
		return stream.DialWebSocket(ctx, url, debate)
	}
}

// Run checks a graph file and reports its shape.
func (c *ValidateCmd) Run() error {
	debate, err := graph.LoadFile(c.Graph)
	if err != nil {
		return err
	}
	// Validation needs an API key only at run time.
	if err := debate.Validate(); err != nil {
		return err
	}

	outgoing, _ := debate.NeighborMaps()
	channels := 0
	for _, targets := range outgoing {
		channels += len(targets)
	}
	fmt.Printf("%s: %d agents, %d message channels, %d rounds\n",
		c.Graph, len(debate.Nodes), channels, debate.Rounds)
	for _, n := range debate.Nodes {
		fmt.Printf("  %s -> %v\n", n.Label, labelsFor(debate, outgoing[n.ID]))
	}
	return nil
}

func labelsFor(debate *graph.Config, ids []string) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, debate.Label(id))
	}
	return labels
}
