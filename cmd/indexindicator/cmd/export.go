package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"IndexIndicator/internal/export"
)

var (
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export [symbols...]",
	Short: "Write stored daily records to files, one per symbol",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "csv, json or parquet (default from config)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, dir := cfg.Export.Format, cfg.Export.Dir
	if exportFormat != "" {
		format = exportFormat
	}
	if exportDir != "" {
		dir = exportDir
	}
	saver, err := export.NewSaver(format)
	if err != nil {
		return err
	}

	symbols := args
	if len(symbols) == 0 {
		symbols = cfg.Tickers
	}

	st := openStore()
	defer st.Close()

	written := 0
	for _, s := range symbols {
		daily, err := st.ListDaily(cmd.Context(), s, "", "")
		if err != nil {
			return err
		}
		if len(daily) == 0 {
			log.Warn().Str("symbol", s).Msg("no stored records, skipping")
			continue
		}
		path, err := export.WriteSymbol(saver, dir, daily)
		if err != nil {
			return err
		}
		written++
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d records -> %s\n", s, len(daily), path)
	}
	if written == 0 {
		return fmt.Errorf("nothing exported")
	}
	return nil
}
