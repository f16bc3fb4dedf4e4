package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studymate/internal/agent"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the available agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range agent.Identities() {
			cfg, ok := agent.ConfigFor(id)
			if !ok {
				continue
			}
			fmt.Printf("%s %-18s %s\n", cfg.Emoji, id, cfg.Description)
			fmt.Printf("   %-18s personality: %s\n", "", cfg.Personality)
		}
		return nil
	},
}
