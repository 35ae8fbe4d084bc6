package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/runline/internal/ui"
)

var collectorCmd = &cobra.Command{
	Use:   "collector",
	Short: "Manage named collector profiles",
}

var collectorAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or update a collector profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		apiKey, _ := cmd.Flags().GetString("api-key")
		natsURL, _ := cmd.Flags().GetString("nats-url")

		cfg, err := loadCollectorsConfig()
		if err != nil {
			return err
		}
		cfg.Collectors[name] = Collector{URL: url, APIKey: apiKey, NATSURL: natsURL}
		if cfg.Active == "" {
			cfg.Active = name
		}
		if err := saveCollectorsConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("added collector %s (%s)\n", name, url)
		return nil
	},
}

var collectorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collector profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCollectorsConfig()
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(cfg)
			return nil
		}
		if len(cfg.Collectors) == 0 {
			fmt.Println("no collectors configured")
			return nil
		}

		names := make([]string, 0, len(cfg.Collectors))
		for name := range cfg.Collectors {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			c := cfg.Collectors[name]
			marker := " "
			if name == cfg.Active {
				marker = "*"
			}
			line := fmt.Sprintf("%s %s\t%s", marker, name, c.URL)
			if name == cfg.Active {
				fmt.Println(ui.RenderAccent(line))
			} else {
				fmt.Println(line)
			}
		}
		return nil
	},
}

var collectorUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active collector profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := loadCollectorsConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Collectors[name]; !ok {
			return fmt.Errorf("unknown collector %q", name)
		}
		cfg.Active = name
		if err := saveCollectorsConfig(cfg); err != nil {
			return err
		}
		fmt.Printf("active collector: %s\n", name)
		return nil
	},
}

var collectorRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a collector profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := loadCollectorsConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Collectors[name]; !ok {
			return fmt.Errorf("unknown collector %q", name)
		}
		delete(cfg.Collectors, name)
		if cfg.Active == name {
			cfg.Active = ""
		}
		return saveCollectorsConfig(cfg)
	},
}

func init() {
	collectorAddCmd.Flags().String("api-key", "", "API key for this collector")
	collectorAddCmd.Flags().String("nats-url", "", "NATS URL for event mirroring")

	collectorCmd.AddCommand(collectorAddCmd)
	collectorCmd.AddCommand(collectorListCmd)
	collectorCmd.AddCommand(collectorUseCmd)
	collectorCmd.AddCommand(collectorRemoveCmd)
}
