// govassess: AI governance self-assessment MCP server
//
// Runs multi-module compliance questionnaires (model mapping, regulation,
// responsible AI, NIST AI RMF, OMB M-25-21, EO 14179, Title 13, CIPSEA)
// over MCP, scores answers per category and exports reports.
//
// Usage:
//
//	govassess serve                      # Start MCP server (stdio transport)
//	govassess export <module> [format]   # Print a report to stdout
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/govassess/internal/config"
	"github.com/HendryAvila/govassess/internal/logging"
	"github.com/HendryAvila/govassess/internal/report"
	assessserver "github.com/HendryAvila/govassess/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := runExport(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("govassess v%s\n", assessserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every command.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func run() error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, cleanup, err := assessserver.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	logger.Info("serving MCP over stdio", zap.String("version", assessserver.Version))
	return server.ServeStdio(s)
}

func runExport(args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: govassess export <module> [json|markdown|html]")
	}
	formatName := ""
	if len(args) == 2 {
		formatName = args[1]
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	svc, cleanup, err := assessserver.NewService(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	r, err := svc.Export(args[0], time.Now())
	if err != nil {
		return err
	}
	body, err := r.Render(format)
	if err != nil {
		return err
	}
	svc.Archive(r, format, body)

	if _, err := out.Write(body); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, _ = io.WriteString(out, "\n")
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `govassess v%s - AI governance assessment MCP server

Usage:
  govassess serve                               Start the MCP server (stdio transport)
  govassess export <module> [json|markdown|html] Print the module report to stdout
  govassess version                             Print the version

Modules:
  ai-mapping, ai-regulation, responsible-ai, ai-risk,
  omb-m-25-21, eo-14179, title-13, cipsea

Configuration:
  Defaults live in ~/.govassess. Override with ~/.govassess/govassess.yaml
  or GOVASSESS_* environment variables (e.g. GOVASSESS_DATA_DIR,
  GOVASSESS_LOG_LEVEL).

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "govassess": {
        "command": "govassess",
        "args": ["serve"]
      }
    }
  }
`, assessserver.Version)
}
