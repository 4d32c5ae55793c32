// threadline - a terminal client for a hosted chat assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/threadline-tui/internal/config"
	"github.com/jeranaias/threadline-tui/internal/prefs"
	"github.com/jeranaias/threadline-tui/internal/remote"
	"github.com/jeranaias/threadline-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "", "path to config file (default ~/.threadline/config.toml)")
		backendURL  = flag.String("backend-url", "", "backend base URL (overrides config and environment)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("threadline %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if !cfg.Configured() {
		fmt.Fprintln(os.Stderr, "threadline is not configured yet.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Add your backend to ~/.threadline/config.toml:")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "  [backend]")
		fmt.Fprintln(os.Stderr, "  url = \"https://yourproject.supabase.co\"")
		fmt.Fprintln(os.Stderr, "  anon_key = \"your-anon-key\"")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "or set THREADLINE_BACKEND_URL and THREADLINE_ANON_KEY.")
		os.Exit(1)
	}

	store, err := prefs.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open preferences: %v\n", err)
		os.Exit(1)
	}

	client := remote.NewClient(&remote.ClientConfig{
		BaseURL:       cfg.Backend.URL,
		AnonKey:       cfg.Backend.AnonKey,
		RelayFunction: cfg.Backend.RelayFunction,
		Timeout:       time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	})

	root, err := app.New(app.Options{
		Config:     cfg,
		Service:    client,
		PrefsStore: store,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
