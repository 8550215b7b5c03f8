// omnichat - a terminal chat client for the OmniEmployee agent backend.
//
// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/omniemployee/omnichat/internal/api"
	"github.com/omniemployee/omnichat/internal/config"
	"github.com/omniemployee/omnichat/internal/session"
	"github.com/omniemployee/omnichat/internal/ui/chat"
	"github.com/omniemployee/omnichat/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	baseURL := flag.String("url", "", "backend base URL (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("omnichat %s (%s)\n", Version, GitCommit)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		cfg = config.Default()
	}
	if *baseURL != "" {
		cfg.Backend.BaseURL = *baseURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	})

	theme := styles.NewTheme()
	sess := session.NewManager()
	m := chat.New(theme, client, sess, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running omnichat: %v\n", err)
		os.Exit(1)
	}
}
