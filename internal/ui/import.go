package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export all tasks as YAML",
		Long: `Write every task as a YAML document to file, or to stdout
when no file (or "-") is given.

Example:
  daystrip export tasks.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			if len(args) == 0 || args[0] == "-" {
				return a.store.Export(cmd.OutOrStdout())
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			if err := a.store.Export(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", a.store.Len(), path)
			return nil
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import tasks from a YAML export",
		Long: `Add the tasks of a YAML document written by "daystrip export".
Imported tasks get fresh ids. Nothing is imported when any entry is invalid.
Use "-" to read from stdin.

Example:
  daystrip import tasks.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			source := "stdin"
			if args[0] != "-" {
				path, err := resolvePath(args[0])
				if err != nil {
					return err
				}
				info, err := os.Stat(path)
				if err != nil {
					if os.IsNotExist(err) {
						return fmt.Errorf("import file does not exist: %s", path)
					}
					return fmt.Errorf("checking import file: %w", err)
				}
				if info.IsDir() {
					return fmt.Errorf("import path is a directory: %s", path)
				}
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
				source = path
			}

			count, err := a.store.Import(ctx, r)
			if err != nil {
				return fmt.Errorf("importing tasks: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks from %s\n", count, source)
			return nil
		},
	}

	return cmd
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
