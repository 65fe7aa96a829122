package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/vanops/internal/guidetree"
	"github.com/zulandar/vanops/internal/models"
	"github.com/zulandar/vanops/internal/ops"
)

func newGuidesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guides",
		Short: "Installation guide library commands",
	}

	cmd.AddCommand(newGuidesTreeCmd())
	cmd.AddCommand(newGuidesShowCmd())
	cmd.AddCommand(newGuidesAddFolderCmd())
	cmd.AddCommand(newGuidesAddGuideCmd())
	cmd.AddCommand(newGuidesRenameCmd())
	cmd.AddCommand(newGuidesDeleteCmd())
	cmd.AddCommand(newGuidesUpdateCmd())
	cmd.AddCommand(newGuidesStepAddCmd())
	cmd.AddCommand(newGuidesStepUpdateCmd())
	cmd.AddCommand(newGuidesStepDeleteCmd())
	return cmd
}

func newGuidesTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the guide library tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runGuidesTree(cmd, a)
			})
		},
	}
}

func runGuidesTree(cmd *cobra.Command, a *app) error {
	o := a.session.Ops()
	out := cmd.OutOrStdout()

	t := guidetree.FromNodes(o.GuideTree)
	if t.Len() == 0 {
		fmt.Fprintln(out, "Guide library is empty.")
		return nil
	}
	t.Walk(func(n models.GuideNode, depth int) {
		indent := strings.Repeat("  ", depth)
		if n.Type == models.NodeFolder {
			fmt.Fprintf(out, "%s%s/  [%s]\n", indent, n.Title, n.ID)
			return
		}
		steps := "missing body"
		if g, ok := o.GuidesByID[n.GuideID]; ok {
			steps = fmt.Sprintf("%d steps", len(g.Steps))
		}
		fmt.Fprintf(out, "%s%s  [%s -> %s, %s]\n", indent, n.Title, n.ID, n.GuideID, steps)
	})
	return nil
}

func newGuidesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <guide-id>",
		Short: "Show a guide with its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				o := a.session.Ops()
				g, ok := o.GuidesByID[args[0]]
				if !ok {
					return fmt.Errorf("%w: guide %q", ops.ErrNotFound, args[0])
				}
				printGuide(cmd, g, guideFolder(guidetree.FromNodes(o.GuideTree), g.ID))
				return nil
			})
		},
	}
}

// guideFolder describes where guideID sits in the library tree.
func guideFolder(t *guidetree.Tree, guideID string) string {
	n, ok := t.NodeForGuide(guideID)
	if !ok {
		return "(not in library)"
	}
	parent, _ := t.Parent(n.ID)
	if parent == "" {
		return "(top level)"
	}
	f, _ := t.Find(parent)
	return fmt.Sprintf("%s  [%s]", f.Title, f.ID)
}

func printGuide(cmd *cobra.Command, g models.Guide, folder string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:         %s\n", g.ID)
	fmt.Fprintf(out, "Title:      %s\n", g.Title)
	fmt.Fprintf(out, "Folder:     %s\n", folder)
	fmt.Fprintf(out, "Category:   %s\n", dash(g.Category))
	fmt.Fprintf(out, "Tools:      %s\n", formatList(g.Tools))
	fmt.Fprintf(out, "Materials:  %s\n", formatList(g.Materials))
	fmt.Fprintf(out, "Specs:      %s\n", formatList(g.Specs))
	if len(g.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range g.Warnings {
			fmt.Fprintf(out, "  ! %s\n", w)
		}
	}
	if len(g.Steps) > 0 {
		fmt.Fprintln(out, "\nSteps:")
		for i, s := range g.Steps {
			fmt.Fprintf(out, "  %d. %s  [%s]\n", i+1, s.Title, s.ID)
			if s.Detail != "" {
				fmt.Fprintf(out, "     %s\n", s.Detail)
			}
			for _, c := range s.Checklist {
				fmt.Fprintf(out, "     [ ] %s\n", c)
			}
		}
	}
	if g.Notes != "" {
		fmt.Fprintf(out, "\nNotes:\n%s\n", g.Notes)
	}
}

func newGuidesAddFolderCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add-folder [title]",
		Short: "Add a folder to the guide library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				n, err := a.session.AddFolder(parent, firstArg(args))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added folder %s (%s)\n", n.ID, n.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "parent folder node ID (default: top level)")
	return cmd
}

func newGuidesAddGuideCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add-guide [title]",
		Short: "Add an empty guide to the library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				n, g, err := a.session.AddGuide(parent, firstArg(args))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added guide %s (node %s)\n", g.ID, n.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "parent folder node ID (default: top level)")
	return cmd
}

func newGuidesRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <node-id> <title>",
		Short: "Rename a folder or guide entry in the tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if err := a.session.RenameNode(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], args[1])
				return nil
			})
		},
	}
}

func newGuidesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <node-id>",
		Short: "Delete a tree node, its subtree and the guides they reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runGuidesDelete(cmd, a, args[0], yes)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runGuidesDelete(cmd *cobra.Command, a *app, nodeID string, yes bool) error {
	t := guidetree.FromNodes(a.session.Ops().GuideTree)
	n, ok := t.Find(nodeID)
	if !ok {
		return fmt.Errorf("%w: guide node %q", ops.ErrNotFound, nodeID)
	}
	guides := t.CollectGuideIDs(nodeID)

	ok, err := confirmOrAbort(cmd, yes,
		fmt.Sprintf("This will delete %q and %d guide(s) beneath it.", n.Title, len(guides)))
	if err != nil || !ok {
		return err
	}
	removed, err := a.session.DeleteNode(nodeID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s and %d guide(s)\n", nodeID, len(removed))
	return nil
}

func newGuidesUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <guide-id>",
		Short: "Update a guide body",
		Long:  "Changes only the fields whose flags are given. List flags replace the whole list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				g, err := a.session.UpdateGuide(args[0], ops.GuidePatch{
					Title:     changedString(cmd, "title"),
					Category:  changedString(cmd, "category"),
					Tools:     changedStrings(cmd, "tools"),
					Materials: changedStrings(cmd, "materials"),
					Specs:     changedStrings(cmd, "specs"),
					Warnings:  changedStrings(cmd, "warnings"),
					Notes:     changedString(cmd, "notes"),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated guide %s\n", g.ID)
				return nil
			})
		},
	}

	cmd.Flags().String("title", "", "guide title")
	cmd.Flags().String("category", "", "category")
	cmd.Flags().StringSlice("tools", nil, "tools (comma separated)")
	cmd.Flags().StringSlice("materials", nil, "materials (comma separated)")
	cmd.Flags().StringSlice("specs", nil, "specs (comma separated)")
	cmd.Flags().StringSlice("warnings", nil, "warnings (comma separated)")
	cmd.Flags().String("notes", "", "notes")
	return cmd
}

func newGuidesStepAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step-add <guide-id> [title]",
		Short: "Append a step to a guide",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				s, err := a.session.AddStep(args[0], firstArg(args[1:]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added step %s to %s\n", s.ID, args[0])
				return nil
			})
		},
	}
}

func newGuidesStepUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step-update <guide-id> <step-id>",
		Short: "Update a guide step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				s, err := a.session.UpdateStep(args[0], args[1], ops.StepPatch{
					Title:     changedString(cmd, "title"),
					Detail:    changedString(cmd, "detail"),
					Checklist: changedStrings(cmd, "checklist"),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated step %s\n", s.ID)
				return nil
			})
		},
	}

	cmd.Flags().String("title", "", "step title")
	cmd.Flags().String("detail", "", "step detail")
	cmd.Flags().StringSlice("checklist", nil, "checklist items (comma separated)")
	return cmd
}

func newGuidesStepDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "step-delete <guide-id> <step-id>",
		Short: "Delete a guide step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				ok, err := confirmOrAbort(cmd, yes, fmt.Sprintf("This will delete step %q from %q.", args[1], args[0]))
				if err != nil || !ok {
					return err
				}
				if err := a.session.DeleteStep(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted step %s\n", args[1])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
