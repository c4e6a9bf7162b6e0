package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "landuse-calc",
		Short: "Офлайн-расчёт индикаторов землепользования по GeoJSON",
	}

	rootCmd.AddCommand(scoresCmd())
	rootCmd.AddCommand(percentagesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scoresCmd() *cobra.Command {
	var bufferM float64

	cmd := &cobra.Command{
		Use:   "scores [geojson-file]",
		Short: "Вычислить урбанизацию и потенциал реновации для границы из файла",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScores(args[0], bufferM)
		},
	}

	cmd.Flags().Float64VarP(&bufferM, "buffer", "b", 0, "расширить границу буфером, м")
	return cmd
}

func percentagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "percentages [geojson-file]",
		Short: "Вычислить процентное распределение категорий по зонам из файла",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPercentages(args[0])
		},
	}
}
