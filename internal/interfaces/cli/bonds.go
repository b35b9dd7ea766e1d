package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/molsim/internal/application/bonding"
	"github.com/turtacn/molsim/internal/domain/bondhunt"
	"github.com/turtacn/molsim/internal/infrastructure/format"
	"github.com/turtacn/molsim/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsim/internal/infrastructure/monitoring/prometheus"
)

type bondsOptions struct {
	tolerance      float64
	enforceValence bool
	workers        int
	chunkSize      int
	selection      string
	format         string
	metrics        bool
}

// NewBondsCmd creates the bonds command.
func NewBondsCmd() *cobra.Command {
	opts := &bondsOptions{}

	cmd := &cobra.Command{
		Use:   "bonds <file>",
		Short: "Infer covalent bonds of a structure file",
		Long: `Infer covalent bonds of an XYZ or MDL molfile structure.

Two atoms are bonded when their distance is below the sum of their covalent
radii scaled by --tolerance.  With --enforce-valence, atoms with more bonds
than their element allows lose their longest bonds.  When the file declares
bonds, the report compares them with the inferred ones.`,
		Example: `  molsim bonds water.xyz
  molsim bonds ligand.sdf --enforce-valence --tolerance 1.0 -o json
  molsim bonds protein.xyz --select 0-99 --workers 4 --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runBonds(cmd, cliCtx, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.tolerance, "tolerance", bondhunt.DefaultTolerance, "scale applied to the sum of covalent radii")
	f.BoolVar(&opts.enforceValence, "enforce-valence", false, "trim atoms to their element's maximum bond count")
	f.IntVar(&opts.workers, "workers", 1, "chunk rows scanned concurrently")
	f.IntVar(&opts.chunkSize, "chunk-size", 0, "atoms per cut group (default from config)")
	f.StringVar(&opts.selection, "select", "", "atom indices to bond, e.g. 0-4,7 (default: all)")
	f.StringVar(&opts.format, "format", "", "input format xyz|sdf (default: by extension)")
	f.BoolVar(&opts.metrics, "metrics", false, "print hunt metrics after the report")
	return cmd
}

func runBonds(cmd *cobra.Command, cliCtx *CLIContext, opts *bondsOptions, path string) error {
	cfg := cliCtx.Config
	hunterCfg := cfg.Hunter
	flags := cmd.Flags()
	if flags.Changed("tolerance") {
		hunterCfg.Tolerance = opts.tolerance
	}
	if flags.Changed("enforce-valence") {
		hunterCfg.EnforceValence = opts.enforceValence
	}
	if flags.Changed("workers") {
		hunterCfg.Workers = opts.workers
	}

	st, err := readStructure(path, opts.format, cfg.Input.Format)
	if err != nil {
		return err
	}

	recorder := prometheus.NewHunterMetrics(cliCtx.Metrics)
	hunter := bondhunt.New(hunterCfg, bondhunt.WithLogger(cliCtx.Logger), bondhunt.WithRecorder(recorder))
	svc := bonding.NewService(hunter, bonding.Config{
		ChunkSize: cfg.Input.ChunkSize,
		Props:     hunterCfg.PropertyMap,
	}, cliCtx.Logger)

	ctx := cmd.Context()
	if cliCtx.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliCtx.Timeout)
		defer cancel()
	}

	report, err := svc.Infer(ctx, &bonding.InferInput{
		Structure: st,
		ChunkSize: opts.chunkSize,
		Selection: opts.selection,
	})
	if err != nil {
		return err
	}
	cliCtx.Logger.Debug("bonds inferred", logging.String("file", path), logging.Int("bonds", len(report.Bonds)))

	out := &reportOutput{Report: report, verbose: cliCtx.Verbose}
	if opts.metrics {
		if out.Metrics, err = cliCtx.Metrics.Snapshot(); err != nil {
			return err
		}
	}
	return PrintResult(cmd, out)
}

func readStructure(path, flagFormat, cfgFormat string) (*format.Structure, error) {
	name := flagFormat
	if name == "" {
		name = cfgFormat
	}
	if name == "" {
		return format.ReadFile(path)
	}
	return format.ReadFileAs(path, strings.ToLower(name))
}

// reportOutput renders a bonding report as text, table or JSON.
type reportOutput struct {
	*bonding.Report
	Metrics map[string]float64 `json:"metrics,omitempty"`

	verbose bool
}

func (r *reportOutput) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d atoms (%d selected, %d cut groups), %d bonds [%s]\n",
		title(r.Title), r.NAtoms, r.NSelected, r.NCutGroups, len(r.Bonds), r.Variant)
	for _, b := range r.Bonds {
		fmt.Fprintf(&sb, "  %d%s-%d%s  %.3f\n", b.Atom0, b.Symbol0, b.Atom1, b.Symbol1, b.Length)
	}
	if r.verbose {
		for _, v := range r.Valence {
			fmt.Fprintf(&sb, "  atom %d %s: %d/%d bonds\n", v.Atom, v.Symbol, v.Bonds, v.MaxBonds)
		}
	}
	if a := r.Agreement; a != nil {
		fmt.Fprintf(&sb, "declared bonds: %d, matched: %d, missing: %d, extra: %d\n",
			a.Declared, a.Matched, len(a.Missing), len(a.Extra))
	}
	if len(r.Metrics) > 0 {
		keys := make([]string, 0, len(r.Metrics))
		for k := range r.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s %g\n", k, r.Metrics[k])
		}
	}
	return sb.String()
}

func (r *reportOutput) TableHeaders() []string {
	return []string{"ATOM0", "ATOM1", "ELEMENTS", "LENGTH"}
}

func (r *reportOutput) TableRows() [][]string {
	rows := make([][]string, len(r.Bonds))
	for i, b := range r.Bonds {
		rows[i] = []string{
			strconv.Itoa(b.Atom0),
			strconv.Itoa(b.Atom1),
			b.Symbol0 + "-" + b.Symbol1,
			strconv.FormatFloat(b.Length, 'f', 3, 64),
		}
	}
	return rows
}

func title(s string) string {
	if s == "" {
		return "(untitled)"
	}
	return s
}
