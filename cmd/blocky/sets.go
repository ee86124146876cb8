package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blocky/internal/registry"
)

var flagSetsRows bool

var setsCmd = &cobra.Command{
	Use:   "sets [set]",
	Short: "List level sets",
	Long: `List all registered level sets, or the levels of one set.

Examples:
  blocky sets
  blocky sets tutorial
  blocky sets classic --rows`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSets,
}

func init() {
	setsCmd.Flags().BoolVar(&flagSetsRows, "rows", false, "Print the layout of every level")
}

func runSets(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		showSet(args[0])
		return
	}

	sets := registry.List()
	if len(sets) == 0 {
		fmt.Println("No level sets registered.")
		return
	}

	fmt.Println(paint(titleStyle, "Level sets:"))
	fmt.Println()
	for _, s := range sets {
		fmt.Printf("  %-12s %-24s %s\n", s.ID, s.Title, paint(dimStyle, fmt.Sprintf("%d levels", s.Levels)))
	}
	fmt.Println()
	fmt.Println("Solve with: blocky solve <set> [level]")
}

func showSet(name string) {
	set := loadSet(name)

	fmt.Println(paint(titleStyle, fmt.Sprintf("%s (%s)", set.Title(), set.Name())))
	fmt.Println()
	for i := 1; i <= set.Len(); i++ {
		lvl, err := set.Level(i)
		if err != nil {
			logger.Error("could not load level", "set", name, "level", i, "error", err)
			continue
		}
		fmt.Printf("  %2d. %-24s %s\n", i, set.LevelName(i),
			paint(dimStyle, fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height())))
		if flagSetsRows {
			fmt.Print(renderRows(lvl.Rows()))
			fmt.Println()
		}
	}
}
