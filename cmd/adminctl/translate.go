package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/refine-admin-api/internal/gridfilter"
	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/internal/service"
)

type translateOptions struct {
	input string
	sort  bool
}

func newTranslateCmd() *cobra.Command {
	opts := &translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate between grid and simple-rest filter or sort state",
		Long: "Translate reads JSON from --input or stdin and prints the translated state. " +
			"to-backend expects a grid filter model (or a sort model with --sort) and also " +
			"prints the matching querystring. to-ui expects a list of backend filters or sorts.",
	}
	cmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "JSON document to translate (defaults to stdin)")
	cmd.PersistentFlags().BoolVar(&opts.sort, "sort", false, "translate sort state instead of filters")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "to-backend",
			Short: "Grid state to backend filters or sorts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return translateToBackend(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "to-ui",
			Short: "Backend filters or sorts to grid state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return translateToUI(cmd, opts)
			},
		},
	)
	return cmd
}

func translateToBackend(cmd *cobra.Command, opts *translateOptions) error {
	grid := service.NewGridService(nil)
	out := cmd.OutOrStdout()

	if opts.sort {
		var items []gridfilter.SortItem
		if err := readInput(cmd, opts, &items); err != nil {
			return err
		}
		res, err := grid.SortToBackend(items)
		if err != nil {
			return err
		}
		if err := writeJSON(out, res.Sorts); err != nil {
			return err
		}
		fmt.Fprintln(out, res.Query)
		return nil
	}

	var model gridfilter.FilterModel
	if err := readInput(cmd, opts, &model); err != nil {
		return err
	}
	res, err := grid.FiltersToBackend(model)
	if err != nil {
		return err
	}
	if err := writeJSON(out, res.Filters); err != nil {
		return err
	}
	fmt.Fprintln(out, res.Query)
	return nil
}

func translateToUI(cmd *cobra.Command, opts *translateOptions) error {
	grid := service.NewGridService(nil)
	out := cmd.OutOrStdout()

	if opts.sort {
		var sorts []models.CrudSort
		if err := readInput(cmd, opts, &sorts); err != nil {
			return err
		}
		return writeJSON(out, grid.SortToUI(sorts))
	}

	var filters []models.CrudFilter
	if err := readInput(cmd, opts, &filters); err != nil {
		return err
	}
	model, err := grid.FiltersToUI(filters)
	if err != nil {
		return err
	}
	return writeJSON(out, model)
}

func readInput(cmd *cobra.Command, opts *translateOptions, dest interface{}) error {
	var r io.Reader = cmd.InOrStdin()
	if opts.input != "" {
		r = strings.NewReader(opts.input)
	}
	if err := json.NewDecoder(r).Decode(dest); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}
