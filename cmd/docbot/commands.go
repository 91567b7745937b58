package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/casualjim/docbot"
	"github.com/casualjim/docbot/internal/config"
	"github.com/casualjim/docbot/topic"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
)

// newToolkit is swapped in tests.
var newToolkit = buildToolkit

func withToolkit(ctx context.Context, root rootArgs, fn func(*docbot.Toolkit) (string, error)) (string, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return "", err
	}
	kit, cleanup, err := newToolkit(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer cleanup.Close()

	return fn(kit)
}

// parseError keeps -h quiet and marks every other flag failure as a usage error.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return usageErrorf("%v", err)
}

func searchMain(ctx context.Context, root rootArgs, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	var major int
	fs.IntVar(&major, "v", 3, "Prefect major version to search (2 or 3)")
	if err := fs.Parse(args); err != nil {
		return parseError(err)
	}
	if fs.NArg() == 0 {
		return usageErrorf("search needs at least one query")
	}
	if major != 2 && major != 3 {
		return usageErrorf("-v must be 2 or 3, got %d", major)
	}

	out, err := withToolkit(ctx, root, func(kit *docbot.Toolkit) (string, error) {
		if major == 2 {
			return kit.SearchPrefect2xDocs(ctx, fs.Args())
		}
		return kit.SearchPrefect3xDocs(ctx, fs.Args())
	})
	if err != nil {
		return err
	}
	printResult(os.Stdout, fmt.Sprintf("Prefect %d.x docs", major), out)
	return nil
}

func infoMain(ctx context.Context, root rootArgs, args []string) error {
	if len(args) != 1 {
		return usageErrorf("info needs exactly one topic, one of: %s", knownTopics())
	}
	out, err := withToolkit(ctx, root, func(kit *docbot.Toolkit) (string, error) {
		return kit.GetInfo(ctx, topic.Topic(args[0]))
	})
	if err != nil {
		return err
	}
	printResult(os.Stdout, args[0], out)
	return nil
}

func exampleMain(ctx context.Context, root rootArgs, args []string) error {
	if len(args) == 0 {
		return usageErrorf("example needs a description of what you are looking for")
	}
	relatedTo := strings.Join(args, " ")
	out, err := withToolkit(ctx, root, func(kit *docbot.Toolkit) (string, error) {
		return kit.GetPrefectCodeExample(ctx, relatedTo)
	})
	if err != nil {
		return err
	}
	printResult(os.Stdout, "Code example", out)
	return nil
}

func configMain(root rootArgs, _ []string) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	printer := pp.New()
	printer.SetOutput(os.Stdout)
	printer.SetColoringEnabled(!color.NoColor)
	printer.Println(redacted(cfg))
	return nil
}

func knownTopics() string {
	names := make([]string, len(topic.Known))
	for i, t := range topic.Known {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// printResult renders markdown for terminals and passes text through otherwise.
func printResult(w io.Writer, title, text string) {
	if color.NoColor {
		fmt.Fprintln(w, text)
		return
	}

	fmt.Fprintln(w, color.CyanString("## %s", title))
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err == nil {
		if rendered, rerr := r.Render(text); rerr == nil {
			fmt.Fprint(w, rendered)
			return
		}
	}
	fmt.Fprintln(w, text)
}

func redacted(cfg config.Config) config.Config {
	mask := func(s *string) {
		if *s != "" {
			*s = "********"
		}
	}
	mask(&cfg.Embedding.APIKey)
	mask(&cfg.Classifier.APIKey)
	mask(&cfg.Secret.Value)
	mask(&cfg.Secret.Prefect.APIKey)
	mask(&cfg.Secret.Redis.Password)
	mask(&cfg.VectorStore.Redis.Password)
	return cfg
}
