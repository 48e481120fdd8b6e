package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"wallman/config"
	"wallman/pkg/wallpaper"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newManager loads the config from its default location and builds a
// Manager with backend auto-detection.
func newManager() (*wallpaper.Manager, *config.Config, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	mgr, err := wallpaper.NewManager(cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	return mgr, cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "wallman",
	Short: "Desktop wallpaper manager for X11 and Wayland",
}

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import local image files into the collection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}

		var mu sync.Mutex
		failed := 0
		g := new(errgroup.Group)
		g.SetLimit(4)
		for _, path := range args {
			path := path
			g.Go(func() error {
				w, err := mgr.ImportFromFile(path, "")
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					// One bad file must not abort the batch.
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					failed++
					return nil
				}
				fmt.Printf("%s  %dx%d  %s\n", w.ID, w.Width, w.Height, path)
				return nil
			})
		}
		_ = g.Wait()

		if failed > 0 {
			return fmt.Errorf("%d of %d imports failed", failed, len(args))
		}
		return nil
	},
}

var importURLCmd = &cobra.Command{
	Use:   "import-url <url>",
	Short: "Download an image and import it into the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		w, err := mgr.ImportFromURL(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %dx%d  %s\n", w.ID, w.Width, w.Height, w.FilePath)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Apply a wallpaper from the collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		w, ok := mgr.GetWallpaper(args[0])
		if !ok {
			return fmt.Errorf("no wallpaper with id %s", args[0])
		}
		return mgr.SetWallpaper(w)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallpapers in the collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		for _, w := range mgr.GetAllWallpapers() {
			source := "local"
			if w.OriginalURL != "" {
				source = w.OriginalURL
			}
			fmt.Printf("%s  %dx%d  %s  %s\n", w.ID, w.Width, w.Height, w.AddedDate.Format("2006-01-02"), source)
		}
		return nil
	},
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the currently configured wallpaper",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		w, ok := mgr.GetCurrentWallpaper()
		if !ok {
			fmt.Println("No wallpaper set")
			return nil
		}
		fmt.Printf("%s  %s\n", w.ID, w.FilePath)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a wallpaper and its stored files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		return mgr.RemoveWallpaper(args[0])
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration and storage",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration and create the storage tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Default()
		if err != nil {
			return err
		}
		if err := cfg.InitializeStorage(); err != nil {
			return err
		}
		if err := cfg.Save(cfg.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Configuration initialized at %s\n", cfg.ConfigPath())
		fmt.Printf("Storage path: %s\n", cfg.StoragePath)
		return nil
	},
}

var configGCCmd = &cobra.Command{
	Use:   "gc",
	Short: "Delete stored files that have no collection entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, _, err := newManager()
		if err != nil {
			return err
		}
		removed := mgr.CleanupOrphans()
		fmt.Printf("Removed %d orphaned files\n", removed)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configGCCmd)
	rootCmd.AddCommand(importCmd, importURLCmd, setCmd, listCmd, currentCmd, removeCmd, configCmd)
}
