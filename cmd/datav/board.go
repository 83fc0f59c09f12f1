package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"datav/internal/source"
	"datav/ui/tui"
)

//nolint:gochecknoglobals // Cobra flag bindings live at package scope.
var (
	boardDB     string
	boardQuery  string
	boardWidth  int
	boardHeight int

	boardCmd = &cobra.Command{
		Use:   "board",
		Short: "Show one scroll board from the config file or a DuckDB query",
		Long: `board fills the terminal with a single framed scroll board. Rows come from
the scroll_board section of --config, or from --query run against --db; the
query's column names become the header unless the config sets one.`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}
)

//nolint:gochecknoinits // Cobra command wiring.
func init() {
	boardCmd.Flags().StringVar(&boardDB, "db", "", "DuckDB file to query (in-memory when empty)")
	boardCmd.Flags().StringVarP(&boardQuery, "query", "q", "", "SQL query whose rows fill the board")
	boardCmd.Flags().IntVar(&boardWidth, "width", 0, "Design width of the board, 0 fills the window")
	boardCmd.Flags().IntVar(&boardHeight, "height", 0, "Design height of the board, 0 fills the window")
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadDashboard()
	if err != nil {
		return err
	}
	board := cfg.ScrollBoard

	if boardQuery != "" {
		store, err := source.Open(boardDB)
		if err != nil {
			return err
		}
		defer store.Close()

		cols, rows, err := store.Table(cmd.Context(), boardQuery)
		if err != nil {
			return err
		}
		if len(board.Header) == 0 {
			board.Header = cols
		}
		board.Data = rows
		logrus.WithField("rows", len(rows)).Debug("board query loaded")
	}
	if len(board.Data) == 0 {
		return errors.New("nothing to show: set scroll_board.data in --config or pass --query")
	}

	frame := cfg.BorderBox
	if frame.Title == "" {
		frame.Title = cfg.Title
	}

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	return tui.RunBoard(board, frame, boardWidth, boardHeight, logrus.StandardLogger())
}
