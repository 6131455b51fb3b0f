package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cidadeviva/edu-admissions/pkg/db"
)

// rosterWatchCmd represents the roster watch command
var rosterWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch the roster file and resync when it changes",
	Long: `Watch the roster file and resync admin profiles when it changes.

This keeps a deployment's admin list in step with a roster file managed
outside the service, for example one rendered by configuration
management.

Example:
  admissionsctl roster watch /etc/admissions/roster.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		if err := watchRoster(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch roster: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rosterCmd.AddCommand(rosterWatchCmd)
}

func watchRoster(filename string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for roster changes\n", filename)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] Roster modified, resyncing...\n", time.Now().Format(time.RFC3339))

				if err := syncRoster(database, filename); err != nil {
					fmt.Fprintf(os.Stderr, "Error syncing roster: %v\n", err)
				}

				// Editors replace files on save; re-add in case the
				// original inode went away.
				_ = watcher.Add(filename)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
