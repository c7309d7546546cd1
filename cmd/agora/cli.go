// Package main defines the CLI structure using kong.
package main

// CLI defines the command-line interface.
type CLI struct {
	Run      RunCmd      `cmd:"" help:"Run a debate and visualize it"`
	Validate ValidateCmd `cmd:"" help:"Validate a debate graph file"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// RunCmd connects to a record source and visualizes the exchange.
type RunCmd struct {
	Graph    string `arg:"" help:"Debate graph file (YAML or JSON)"`
	Config   string `help:"Config file path (default: ./agora.toml)"`
	Source   string `short:"s" default:"ws" enum:"ws,file,nats" help:"Record source: ws, file or nats"`
	Server   string `help:"Backend websocket URL (overrides config)"`
	File     string `short:"f" help:"Transcript path for the file source"`
	Follow   bool   `help:"Tail the transcript as it grows (file source)"`
	Question string `short:"q" help:"Debate topic (overrides the graph file)"`
	Rounds   int    `help:"Number of rounds (overrides the graph file)"`
}

// ValidateCmd checks a debate graph file.
type ValidateCmd struct {
	Graph string `arg:"" help:"Debate graph file (YAML or JSON)"`
}

// VersionCmd prints build information.
type VersionCmd struct{}
