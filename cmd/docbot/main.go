// Command docbot serves the Prefect documentation tools over MCP and runs
// them from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/casualjim/docbot/internal/config"
	"github.com/casualjim/docbot/internal/logging"
	"github.com/joho/godotenv"
)

// version is set at build time.
var version = "dev"

type rootArgs struct {
	configPath string
	envFile    string
	logLevel   string
}

func parseRootArgs(args []string) (rootArgs, []string, error) {
	fs := flag.NewFlagSet("docbot", flag.ContinueOnError)
	var root rootArgs
	fs.StringVar(&root.configPath, "config", os.Getenv("DOCBOT_CONFIG"), "Path to the YAML config file")
	fs.StringVar(&root.envFile, "env-file", ".env", "Dotenv file loaded before the config")
	fs.StringVar(&root.logLevel, "log-level", "", "Override logging.level")
	fs.Usage = usage
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, nil, err
	}
	return root, fs.Args(), nil
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: docbot [-config file] [-env-file file] <command> [args]

Commands:
  serve [-http addr]          serve the tools over MCP (stdio, or HTTP when -http is set)
  search [-v 2|3] <query>...  search the Prefect documentation
  info <topic>                look up a topic (latest_prefect_version)
  example <text>              find a Prefect code example
  config                      print the effective configuration
  version                     print the version
`)
}

func loadConfig(root rootArgs) (config.Config, error) {
	if root.envFile != "" {
		if err := godotenv.Load(root.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, fmt.Errorf("load %s: %w", root.envFile, err)
		}
	}
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if root.logLevel != "" {
		cfg.Logging.Level = root.logLevel
	}
	// stdout carries the MCP stdio stream, so logs always go to stderr
	logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// errUsage marks command line mistakes; they exit with status 2.
var errUsage = errors.New("invalid usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "docbot: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	root, rest, err := parseRootArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageErrorf("%v", err)
	}
	if len(rest) == 0 {
		usage()
		return usageErrorf("missing command")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch rest[0] {
	case "serve":
		err = serveMain(ctx, root, rest[1:])
	case "search":
		err = searchMain(ctx, root, rest[1:])
	case "info":
		err = infoMain(ctx, root, rest[1:])
	case "example":
		err = exampleMain(ctx, root, rest[1:])
	case "config":
		err = configMain(root, rest[1:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		err = usageErrorf("unknown command %q", rest[0])
	}
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}
