package commands

import (
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct{}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	discovery, err := content.NewDiscovery(cfg)
	if err != nil {
		return err
	}
	files, err := discovery.Discover()
	if err != nil {
		return err
	}

	for _, f := range files {
		fmt.Println(f.RelPath)
	}
	fmt.Printf("%d content files discovered\n", len(files))
	return nil
}
