package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/util"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var listJSON bool

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of a grouped listing")
}

var listCmd = &cobra.Command{
	Use:       "list [patterns|drills|scales]",
	Short:     "Lists the catalog",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"patterns", "drills", "scales"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := "patterns"
		if len(args) == 1 {
			kind = args[0]
		}
		lib := state.library()
		out := cmd.OutOrStdout()

		if listJSON {
			switch kind {
			case "drills":
				return printJSON(out, lib.Drills)
			case "scales":
				return printJSON(out, lib.Scales)
			}
			return printJSON(out, lib.Summaries())
		}

		switch kind {
		case "drills":
			groups := make(map[string][]string)
			for _, d := range lib.Drills {
				groups[d.Category] = append(groups[d.Category], fmt.Sprintf("%s\t%s (%s)", d.ID, d.Name, strings.Join(d.Formula, " ")))
			}
			printGroups(out, groups)
		case "scales":
			for _, s := range lib.Scales {
				fmt.Fprintf(out, "%s\t%s (%s)\n", s.ID, s.Name, strings.Join(s.Labels, " "))
			}
		default:
			groups := make(map[string][]string)
			for _, p := range lib.Patterns {
				groups[p.Category] = append(groups[p.Category], fmt.Sprintf("%s\t%s, %d steps in %d sixteenths, %d shifts", p.ID, p.Name, len(p.Steps), sixteenths(p.Steps), len(p.ShiftEvents)))
			}
			printGroups(out, groups)
		}
		return nil
	},
}

func sixteenths(steps []model.PatternStep) int64 {
	durs := make([]int, len(steps))
	for i, s := range steps {
		durs[i] = s.Dur16
	}
	return util.Sum(durs)
}

func printGroups(w io.Writer, groups map[string][]string) {
	title := cases.Title(language.English)
	for _, category := range util.GetKeysSorted(groups) {
		fmt.Fprintf(w, "%s\n", title.String(category))
		for _, line := range groups[category] {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
