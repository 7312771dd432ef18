package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/php-toolkit/fsutil/finder"
	"github.com/php-toolkit/fsutil/internal/logger"
)

type findFlags struct {
	names          []string
	notNames       []string
	paths          []string
	notPaths       []string
	excludeDirs    []string
	filesOnly      bool
	dirsOnly       bool
	noRecursive    bool
	followSymlinks bool
	skipUnreadable bool
	keepVCS        bool
	ignoreDotFiles bool
	ignoreDotDirs  bool
	long           bool
	countOnly      bool
}

func newFindCmd() *cobra.Command {
	flags := &findFlags{}

	cmd := &cobra.Command{
		Use:   "find [dirs...]",
		Short: "List files and directories matching the configured filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.names, "name", "n", nil, "glob patterns the base name must match")
	cmd.Flags().StringSliceVar(&flags.notNames, "not-name", nil, "glob patterns that reject by base name")
	cmd.Flags().StringSliceVarP(&flags.paths, "path", "p", nil, "patterns the relative path must match")
	cmd.Flags().StringSliceVar(&flags.notPaths, "not-path", nil, "patterns that reject by relative path")
	cmd.Flags().StringSliceVar(&flags.excludeDirs, "exclude-dir", nil, "directory names pruning whole subtrees")
	cmd.Flags().BoolVarP(&flags.filesOnly, "files", "f", false, "files only")
	cmd.Flags().BoolVarP(&flags.dirsOnly, "dirs", "d", false, "directories only")
	cmd.Flags().BoolVar(&flags.noRecursive, "no-recursive", false, "do not descend into subdirectories")
	cmd.Flags().BoolVarP(&flags.followSymlinks, "follow", "L", false, "follow symlinked directories")
	cmd.Flags().BoolVar(&flags.skipUnreadable, "skip-unreadable", false, "skip directories that cannot be opened")
	cmd.Flags().BoolVar(&flags.keepVCS, "keep-vcs", false, "do not prune VCS directories")
	cmd.Flags().BoolVar(&flags.ignoreDotFiles, "ignore-dot-files", false, "exclude dot files")
	cmd.Flags().BoolVar(&flags.ignoreDotDirs, "ignore-dot-dirs", false, "prune dot directories")
	cmd.Flags().BoolVarP(&flags.long, "long", "l", false, "print sizes")
	cmd.Flags().BoolVar(&flags.countOnly, "count", false, "print only the number of matches")

	return cmd
}

func runFind(cmd *cobra.Command, args []string, flags *findFlags) error {
	profile := cfg.Find

	roots := args
	if len(roots) == 0 {
		roots = profile.Roots
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	f := finder.New(roots...).
		Name(append(profile.Names, flags.names...)...).
		NotName(append(profile.NotNames, flags.notNames...)...).
		Path(append(profile.Paths, flags.paths...)...).
		NotPath(append(profile.NotPaths, flags.notPaths...)...).
		NotDirName(append(profile.ExcludeDirs, flags.excludeDirs...)...)

	if flags.filesOnly || profile.FilesOnly {
		f.Files()
	}
	if flags.dirsOnly || profile.DirsOnly {
		f.Dirs()
	}
	if flags.noRecursive || profile.NoRecursive {
		f.NoRecursive()
	}
	if flags.followSymlinks || profile.FollowSymlinks {
		f.FollowSymlinks()
	}
	if flags.skipUnreadable || profile.SkipUnreadable {
		f.SkipUnreadableDirs()
	}
	if flags.keepVCS || profile.KeepVCS {
		f.IgnoreVCS(false)
	}
	if flags.ignoreDotFiles || profile.IgnoreDotFiles {
		f.IgnoreDotFiles(true)
	}
	if flags.ignoreDotDirs || profile.IgnoreDotDirs {
		f.IgnoreDotDirs(true)
	}

	log := logger.With("cmd", "find")
	log.Debug("starting traversal", "roots", roots)

	if flags.countOnly {
		n, err := f.Count()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	}

	count := 0
	err := f.Each(func(e finder.Entry) error {
		count++
		if flags.long && !e.IsDir {
			fmt.Fprintf(cmd.OutOrStdout(), "%10s  %s\n", humanize.Bytes(uint64(e.Size)), e.Path)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), e.Path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug("traversal finished", "entries", count)
	return nil
}
