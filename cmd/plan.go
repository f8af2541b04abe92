package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitecast/stopend/config"
	"github.com/sitecast/stopend/infra/logger"
	"github.com/sitecast/stopend/pkg/export"
)

var (
	projectPath string
	planFormat  string
	planOutput  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a production plan for a project file",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&projectPath, "project", "p", "", "project definition file (json or yaml)")
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "json", "output format: json, csv, xlsx or pdf")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "output file (default stdout)")
	if err := planCmd.MarkFlagRequired("project"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	defaults := config.PlannerConfig{Strategy: "performance"}
	if cfg, err := config.Load(cfgPath); err == nil {
		defaults = cfg.Planner
	}

	project, err := config.LoadProject(projectPath, defaults)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	pl := export.BuildPlan(project)

	var w io.Writer = os.Stdout
	if planOutput != "" {
		f, err := os.Create(planOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch planFormat {
	case "json":
		err = export.WriteJSON(w, pl)
	case "csv":
		err = export.WriteCSV(w, pl)
	case "xlsx":
		err = export.WriteXLSX(w, pl)
	case "pdf":
		err = export.WritePDF(w, pl)
	default:
		return fmt.Errorf("unsupported format %q", planFormat)
	}
	if err != nil {
		return err
	}

	logg := logger.New("plan-command")
	logg.Infof("installed %d long / %d short over %d days",
		pl.Summary.TotalInstalled.Long, pl.Summary.TotalInstalled.Short, len(pl.Days))
	if !pl.Summary.MeetsLong || !pl.Summary.MeetsShort {
		logg.Warnf("plan misses targets by %d long / %d short",
			pl.Summary.TargetShortfall.Long, pl.Summary.TargetShortfall.Short)
	}
	if pl.First.Long != nil {
		logg.Warnf("first long shortage on day %d (%s)", pl.First.Long.Day, pl.First.Long.Date.Format("2006-01-02"))
	}
	if pl.First.Short != nil {
		logg.Warnf("first short shortage on day %d (%s)", pl.First.Short.Day, pl.First.Short.Date.Format("2006-01-02"))
	}
	return nil
}
