package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/php-toolkit/fsutil/internal/logger"
	"github.com/php-toolkit/fsutil/watcher"
)

type watchFlags struct {
	marker       string
	names        []string
	notNames     []string
	excludeDirs  []string
	keepDotDirs  bool
	keepDotFiles bool
	printHash    bool
	reset        bool
}

func newWatchCmd() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Report whether the watched directories changed since the last run",
		Long: `Fingerprints the watched directory trees and compares the result
against the marker file written by the previous run. Exits with status 0
and prints "changed" or "unchanged"; the first run establishes the
baseline and always reports unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.marker, "marker", "m", "", "marker file path (default: derived from the watch list)")
	cmd.Flags().StringSliceVarP(&flags.names, "name", "n", nil, "only hash files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.notNames, "not-name", nil, "skip files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.excludeDirs, "exclude-dir", nil, "directory names to skip entirely")
	cmd.Flags().BoolVar(&flags.keepDotDirs, "keep-dot-dirs", false, "descend into dot directories")
	cmd.Flags().BoolVar(&flags.keepDotFiles, "keep-dot-files", false, "hash dot files")
	cmd.Flags().BoolVar(&flags.printHash, "hash", false, "also print the aggregate hash and file count")
	cmd.Flags().BoolVar(&flags.reset, "reset", false, "drop the stored baseline before checking")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	profile := cfg.Watch

	dirs := args
	if len(dirs) == 0 {
		dirs = profile.Dirs
	}
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	w := watcher.New(dirs...).
		IncludeNames(append(profile.Names, flags.names...)...).
		ExcludeNames(append(profile.NotNames, flags.notNames...)...).
		ExcludeDirNames(append(profile.ExcludeDirs, flags.excludeDirs...)...)

	marker := flags.marker
	if marker == "" {
		marker = profile.Marker
	}
	if marker != "" {
		w.MarkerFile(marker)
	}

	if flags.keepDotDirs || profile.KeepDotDirs {
		w.IgnoreDotDirs(false)
	}
	if flags.keepDotFiles || profile.KeepDotFiles {
		w.IgnoreDotFiles(false)
	}

	log := logger.With("cmd", "watch")

	if flags.reset {
		if err := w.ClearMarker(); err != nil {
			return err
		}
		log.Debug("baseline cleared")
	}

	changed, err := w.Changed()
	if err != nil {
		return err
	}

	if changed {
		fmt.Fprintln(cmd.OutOrStdout(), "changed")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
	}

	if flags.printHash {
		fmt.Fprintf(cmd.OutOrStdout(), "hash: %s\nfiles: %d\n", w.LastHash(), w.FileCount())
	}

	log.Debug("check complete", "changed", changed, "files", w.FileCount())
	return nil
}
