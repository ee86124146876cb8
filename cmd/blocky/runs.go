package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blocky/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsStats bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [set] [level]",
	Short: "Show recorded run history",
	Long: `Show the most recent solve, verify, generate and replay runs.
With a set and level, show that level's runs and its best result.

Examples:
  blocky runs
  blocky runs classic 5
  blocky runs --stats
  blocky runs classic --clear`,
	Args: cobra.MaximumNArgs(2),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-set statistics")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of the given set")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Error: --clear needs exactly one set")
			os.Exit(1)
		}
		if err := store.ClearRuns(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs of %s\n", args[0])
	case flagRunsStats:
		showSetStats(store)
	case len(args) == 2:
		showLevelRuns(store, args[0], args[1])
	default:
		showRecentRuns(store, args)
	}
}

func showRecentRuns(store *storage.Store, args []string) {
	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 1 {
		filtered := runs[:0]
		for _, r := range runs {
			if r.Set == args[0] {
				filtered = append(filtered, r)
			}
		}
		runs = filtered
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	fmt.Println(paint(titleStyle, "Recent runs"))
	fmt.Println(runsTable(runs))
}

func showLevelRuns(store *storage.Store, set, levelArg string) {
	levelID, err := strconv.Atoi(levelArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", levelArg)
		os.Exit(1)
	}

	runs, err := store.LevelRuns(set, levelID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Printf("No runs recorded for %s level %d.\n", set, levelID)
		return
	}

	fmt.Println(paint(titleStyle, fmt.Sprintf("Runs of %s level %d", set, levelID)))
	fmt.Println(runsTable(runs))

	best, err := store.BestRun(set, levelID)
	if err != nil {
		logger.Warn("could not load best run", "error", err)
		return
	}
	if best != nil {
		fmt.Printf("Best: %s, %d %s\n", paint(movesStyle, best.Solution), best.Moves, paint(dimStyle, "("+best.Status+")"))
	}
}

func showSetStats(store *storage.Store) {
	stats, err := store.GetSetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := []table.Column{
		{Title: "Set", Width: 12},
		{Title: "Runs", Width: 6},
		{Title: "Solved", Width: 7},
		{Title: "Unsolvable", Width: 10},
		{Title: "Avg ms", Width: 8},
		{Title: "Last run", Width: 14},
	}
	rows := make([]table.Row, len(names))
	for i, name := range names {
		st := stats[name]
		rows[i] = table.Row{
			st.Set,
			strconv.Itoa(st.Runs),
			strconv.Itoa(st.Solved),
			strconv.Itoa(st.Unsolvable),
			fmt.Sprintf("%.1f", st.AvgMs),
			st.LastRun.Local().Format("Jan 02 15:04"),
		}
	}

	fmt.Println(paint(titleStyle, "Run statistics"))
	fmt.Println(renderTable(columns, rows))
}

// runsTable renders runs as a static table sized to the terminal.
func runsTable(runs []storage.Run) string {
	columns := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Set", Width: 10},
		{Title: "Level", Width: 5},
		{Title: "Status", Width: 10},
		{Title: "Moves", Width: 5},
		{Title: "Solution", Width: 16},
		{Title: "Configs", Width: 8},
		{Title: "ms", Width: 6},
		{Title: "Date", Width: 12},
	}

	// Give spare width to the solution column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := terminalWidth(80) - used; spare > 0 {
		columns[5].Width += min(spare, 24)
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows[i] = table.Row{
			id,
			r.Set,
			strconv.Itoa(r.LevelID),
			r.Status,
			strconv.Itoa(r.Moves),
			r.Solution,
			strconv.Itoa(r.Nodes),
			strconv.FormatInt(r.DurationMs, 10),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return renderTable(columns, rows)
}

// renderTable draws a non-interactive table with every row visible.
func renderTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Static output has no cursor
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
