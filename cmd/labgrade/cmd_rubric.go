package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jslab/labgrade/internal/lab"
	"github.com/jslab/labgrade/internal/projectconfig"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newRubricCommand() *cobra.Command {
	var rubricPath string

	cmd := &cobra.Command{
		Use:   "rubric [directory]",
		Short: "List the rubric's tasks, marks and checks",
		Long: `List every task in the rubric with its marks and the checks it is
graded on. Uses --rubric, then the rubric named in .labgrade.yaml, then the
built-in lab.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cfg, err := projectconfig.Load(dir)
			if err != nil {
				return err
			}
			rubric, err := loadRubric(dir, rubricPath, cfg)
			if err != nil {
				return err
			}
			return printRubric(cmd.OutOrStdout(), rubric)
		},
	}

	cmd.Flags().StringVar(&rubricPath, "rubric", "", "Rubric YAML file (default: built-in lab)")
	return cmd
}

func printRubric(w io.Writer, r *lab.Rubric) error {
	nameWidth := 0
	for _, t := range r.Tasks {
		nameWidth = max(nameWidth, runewidth.StringWidth(t.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s marks)\n", r.Name, formatScore(r.MaxMarks()))
	for _, t := range r.Tasks {
		name := t.Name + strings.Repeat(" ", nameWidth-runewidth.StringWidth(t.Name))
		fmt.Fprintf(&b, "\n%s  %s marks  [%s]\n", name, formatScore(t.Marks), t.ID)
		for _, p := range t.Predicates {
			fmt.Fprintf(&b, "  - %s\n", p.Label)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
