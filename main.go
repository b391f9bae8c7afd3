package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dpshade/prompt-styler/internal/api"
	"github.com/dpshade/prompt-styler/internal/cli"
	"github.com/dpshade/prompt-styler/internal/config"
	"github.com/dpshade/prompt-styler/internal/service"
	"github.com/dpshade/prompt-styler/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`prompt-styler - Style template merging for image-generation prompts

USAGE:
    prompt-styler [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize the style library (seeds starter styles)
    --serve         Start the HTTP API server
    --port          Port for the API server (default: from config, else %d)
    --data-dir      Style library directory (default: $%s or ~/.prompt-styler)
    --verbose       Verbose error logging

COMMANDS:
    (no command)       Start the interactive style browser
    categories         List style categories
    styles, ls         List all "Category: Name" keys (--category to filter)
    names              List bare style names across all categories
    show <key>         Show one style by "Category: Name" key
    search <query>     Fuzzy-search styles
    apply              Apply one style to a prompt pair
    multi              Apply an ordered list of styles to a prompt pair

EXAMPLES:
    prompt-styler --init
    prompt-styler categories
    prompt-styler styles --category Lighting
    prompt-styler search neon
    prompt-styler apply --pos "a cat" --category Basics --style Enhance --weight 1.2
    prompt-styler multi --pos "a cat" --slots 2 "Lighting: Neon@1.3" "Basics: Enhance"
    prompt-styler multi --pos "a cat" "Basics: Enhance!n" -
    prompt-styler --serve --port 8188

SLOT SPECS (multi):
    Each positional argument fills the next slot, applied so the first slot
    wraps outermost. "Category: Name[@weight][!p][!n]" — !p disables the
    positive branch, !n the negative one; "-" or "None" leaves a slot empty.

STORAGE:
    Style definitions live in <library>/styles/<category>/*.json (or .yaml),
    each an array of {"name", "prompt", "negative_prompt"} records.
`, config.DefaultPort, config.EnvDir)
}

func main() {
	showHelp := flag.Bool("help", false, "show help")
	showVersion := flag.Bool("version", false, "print version")
	initLibrary := flag.Bool("init", false, "initialize the style library")
	serve := flag.Bool("serve", false, "start the HTTP API server")
	port := flag.Int("port", 0, "API server port")
	dataDir := flag.String("data-dir", "", "style library directory")
	verbose := flag.Bool("verbose", false, "verbose error logging")
	flag.Usage = printHelp
	flag.Parse()

	if *showHelp {
		printHelp()
		return
	}
	if *showVersion {
		fmt.Printf("prompt-styler %s\n", version)
		return
	}

	svc, err := service.NewService(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *initLibrary {
		if err := svc.InitLibrary(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize library: %v\n", err)
			os.Exit(1)
		}
		if err := svc.Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Initialized style library at %s\n", svc.BaseDir())
		return
	}

	if *serve {
		cfg, err := config.Load(svc.BaseDir())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if *port != 0 {
			cfg.Port = *port
		}

		server := api.NewAPIServer(svc, cfg.Port)
		server.SetLogPrompts(cfg.LogPrompts)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		browser, err := ui.NewBrowser(svc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := browser.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	c := cli.NewCLI(svc, *verbose)
	if err := c.Run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
