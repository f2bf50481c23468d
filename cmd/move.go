package cmd

import (
	"fmt"
	"strconv"

	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/ui"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <scope> <index> <target> <index>",
	Short: "Move a document, or rename a scope",
	Long: `Moves a document to another position or scope.

The document is inserted before the target index, or appended when the
target index is past the end. A missing target scope is created and a
source scope left empty is removed. Scope names are matched exactly.

Given only two arguments, move renames a scope like the rename command.
Both arguments may also carry an index as scope:index.

Examples:
  pm move github 2 gitlab 1      # document 2 of github first in gitlab
  pm move github:2 gitlab:1      # the same
  pm move github 3 github 1      # reorder within a scope
  pm move github forge           # rename the scope`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 && len(args) != 4 {
			return fmt.Errorf("accepts 2 or 4 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting move command")

		opts, rename, err := parseMoveArgs(args)
		if err != nil {
			return reportError(cmd, err)
		}
		if rename {
			return runRename(cmd, args[0], args[1])
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		res, err := engine.Move(cmd.Context(), opts)
		if err != nil {
			return reportError(cmd, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+res.Message)
		return nil
	},
}

// parseMoveArgs accepts "scope index target index", "scope:index
// target:index" and, for a rename, "scope target".
func parseMoveArgs(args []string) (workflows.MoveOptions, bool, error) {
	if len(args) == 4 {
		from, err := parsePosition(args[0], args[1])
		if err != nil {
			return workflows.MoveOptions{}, false, err
		}
		to, err := parsePosition(args[2], args[3])
		if err != nil {
			return workflows.MoveOptions{}, false, err
		}
		return workflows.MoveOptions{Scope: from.scope, Index: from.index, Target: to.scope, TargetIndex: to.index}, false, nil
	}

	scope, index, hasIndex, err := parseAddress(args[0], false)
	if err != nil {
		return workflows.MoveOptions{}, false, err
	}
	target, targetIndex, hasTargetIndex, err := parseAddress(args[1], false)
	if err != nil {
		return workflows.MoveOptions{}, false, err
	}
	if !hasIndex && !hasTargetIndex {
		return workflows.MoveOptions{}, true, nil
	}
	if index == workflows.AllDocuments || targetIndex == workflows.AllDocuments {
		return workflows.MoveOptions{}, false, errSingleIndex
	}
	return workflows.MoveOptions{Scope: scope, Index: index, Target: target, TargetIndex: targetIndex}, false, nil
}

type position struct {
	scope string
	index int
}

func parsePosition(scopeArg, indexArg string) (position, error) {
	scope, _, hasIndex, err := parseAddress(scopeArg, false)
	if err != nil {
		return position{}, err
	}
	if hasIndex {
		return position{}, fmt.Errorf("%w: give the index either as scope:index or as an argument", kerrors.ErrValidation)
	}
	index, err := strconv.Atoi(indexArg)
	if err != nil || index < 1 {
		return position{}, fmt.Errorf("%w: index %q must be a positive number", kerrors.ErrValidation, indexArg)
	}
	return position{scope: scope, index: index}, nil
}
