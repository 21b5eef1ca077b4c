// cmd/jot/main.go
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jot/internal/diff"
	jerrors "jot/internal/errors"
	"jot/internal/history"
	"jot/internal/logging"
	"jot/internal/repo"
	"jot/internal/watch"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "Jot is a minimal content-addressed version control system",
	Long: `Jot tracks file snapshots in a content-addressed object store, stages
them in an index, and chains them into a linear commit history with
line-level diffs between revisions.`,
}

func init() {
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Jot repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			if err := repo.Initialize(dir); err != nil {
				if jerrors.IsType(err, jerrors.ErrorTypeAlreadyInitialized) {
					fmt.Println(err.Error())
					return nil
				}
				return fmt.Errorf("initializing repository: %w", err)
			}

			fmt.Println("Initialized empty Jot repository in", dir)
			return nil
		},
	}

	var addCmd = &cobra.Command{
		Use:   "add [file]",
		Short: "Stage a file for the next commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			digest, err := r.Add(args[0])
			if err != nil {
				return fmt.Errorf("adding %s: %w", args[0], err)
			}

			fmt.Printf("Staged %s (%s)\n", args[0], digest)
			return nil
		},
	}

	var commitCmd = &cobra.Command{
		Use:   "commit [message]",
		Short: "Record the staged files as a new commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			digest, err := r.Graph.Commit(args[0])
			if err != nil {
				return fmt.Errorf("committing: %w", err)
			}

			fmt.Printf("Committed %s\n", digest)
			return nil
		},
	}

	var logCmd = &cobra.Command{
		Use:   "log",
		Short: "Show commit history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			walker := history.NewWalker(r.Objects, r.Graph)
			entries, err := walker.Log()
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No commits yet")
				return nil
			}

			yellow := color.New(color.FgYellow).SprintFunc()
			for _, e := range entries {
				fmt.Printf("%s  %s  %s\n",
					yellow(e.Digest[:8]),
					e.Timestamp.Format("2006-01-02 15:04:05"),
					e.Message,
				)
			}

			return nil
		},
	}

	var showCmd = &cobra.Command{
		Use:   "show [commit]",
		Short: "Show a commit's files and their diffs against the parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			walker := history.NewWalker(r.Objects, r.Graph)
			diffs, err := walker.Show(args[0])
			if err != nil {
				if jerrors.IsType(err, jerrors.ErrorTypeNotFound) {
					fmt.Println("commit not found:", args[0])
					return nil
				}
				return fmt.Errorf("showing commit: %w", err)
			}

			printCommitDiffs(diffs)
			return nil
		},
	}

	var verifyCmd = &cobra.Command{
		Use:   "verify [digest]",
		Short: "Check a stored object's integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			if err := r.Objects.Verify(args[0]); err != nil {
				return fmt.Errorf("verifying object: %w", err)
			}

			meta, err := r.Objects.Stat(args[0])
			if err != nil {
				return fmt.Errorf("reading object metadata: %w", err)
			}

			fmt.Printf("Object %s OK (%s, %d bytes)\n", args[0], meta.Kind, meta.Size)
			return nil
		},
	}

	var watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Stage files automatically as they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			w, err := watch.New(r, r.Logger)
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer w.Close()

			done := make(chan struct{})
			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigs
				close(done)
			}()

			fmt.Println("Watching for changes (Ctrl-C to stop)")
			w.Run(done)
			return nil
		},
	}

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
}

func openRepo() (*repo.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	level := os.Getenv("JOT_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}

	logger, err := logging.NewLogger(level)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	r, err := repo.New(cwd, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	return r, nil
}

func printCommitDiffs(diffs []history.FileDiff) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	header := color.New(color.FgCyan)

	for _, fd := range diffs {
		header.Printf("file: %s (%s)\n", fd.Path, fd.Hash[:8])

		switch fd.Status {
		case history.StatusInitial:
			fmt.Println("  (part of first commit)")
			printContent(fd.Content)
		case history.StatusNew:
			fmt.Println("  (new file)")
			printContent(fd.Content)
		case history.StatusModified:
			printRuns(fd.Runs, added, removed)
		}
		fmt.Println()
	}
}

func printContent(content []byte) {
	fmt.Print(string(content))
	if len(content) > 0 && content[len(content)-1] != '\n' {
		fmt.Println()
	}
}

func printRuns(runs []diff.Run, added, removed *color.Color) {
	for _, run := range runs {
		for _, line := range run.Lines {
			switch run.Type {
			case diff.Added:
				added.Println("+ " + line)
			case diff.Removed:
				removed.Println("- " + line)
			default:
				fmt.Println("  " + line)
			}
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
