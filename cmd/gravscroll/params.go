package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/spf13/cobra"
)

func paramsCommand() *cobra.Command {
	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "show or change the saved parameters",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "show effective parameters",
		Args:  cobra.NoArgs,
		RunE:  getParams,
	}

	setCmd := &cobra.Command{
		Use:   "set name=value...",
		Short: "save parameter values",
		Args:  cobra.MinimumNArgs(1),
		RunE:  setParams,
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "forget saved parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := openParams(cfg, slog.Default())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.ResetParams(); err != nil {
				return err
			}
			fmt.Println("saved parameters cleared")
			return nil
		},
	}

	paramsCmd.AddCommand(getCmd, setCmd, resetCmd)
	return paramsCmd
}

func getParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openParams(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer db.Close()

	params, err := resolveParams(cfg, db)
	if err != nil {
		return err
	}
	stored, updated, err := db.Stored()
	if err != nil {
		return err
	}

	values := params.GetParams()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tSOURCE")
	for _, name := range gravity.Names() {
		source := "config"
		if _, ok := stored[name]; ok {
			source = "saved"
		}
		if preset != "" {
			source = "preset " + preset
		}
		fmt.Fprintf(w, "%s\t%g\t%s\n", name, values[name], source)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !updated.IsZero() {
		fmt.Printf("\nlast saved %s\n", humanize.Time(updated))
	}
	return nil
}

func setParams(cmd *cobra.Command, args []string) error {
	values := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%q: want name=value", arg)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		values[name] = v
	}
	patch, err := gravity.PatchFromMap(values)
	if err != nil {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(gravity.Names(), ", "))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openParams(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer db.Close()

	params, err := resolveParams(cfg, db)
	if err != nil {
		return err
	}
	if ignored := params.Update(patch); len(ignored) > 0 {
		fmt.Printf("ignored zero values: %s\n", strings.Join(ignored, ", "))
	}
	if err := db.SaveParams(params); err != nil {
		return err
	}
	fmt.Println("parameters saved")
	return nil
}
