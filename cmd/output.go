package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kubev2v/installer-driver/internal/models"
	"github.com/kubev2v/installer-driver/internal/services"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

func outcomeColor(o models.Outcome) *color.Color {
	switch o {
	case models.OutcomeSuccess:
		return color.New(color.FgGreen)
	case models.OutcomeExpectedFailure:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func verdict(passed bool) string {
	if passed {
		return passColor.Sprint("PASS")
	}
	return failColor.Sprint("FAIL")
}

func printRun(w io.Writer, run *models.Run) {
	fmt.Fprintf(w, "%s %-13s %s exit=%d %s\n",
		verdict(run.Passed()),
		run.Operation,
		outcomeColor(run.Outcome).Sprint(displayOutcome(run.Outcome)),
		run.ExitCode,
		dimColor.Sprint(run.LogPath),
	)
	if run.Error != "" {
		fmt.Fprintf(w, "     %s\n", failColor.Sprint(run.Error))
	}
}

func printScenario(w io.Writer, r services.ScenarioResult) {
	fmt.Fprintf(w, "%s %s\n", verdict(r.Passed()), r.Scenario.Name)
	if r.Run != nil {
		fmt.Fprintf(w, "     %s %s\n", outcomeColor(r.Run.Outcome).Sprint(displayOutcome(r.Run.Outcome)), dimColor.Sprint(r.Run.LogPath))
	}
	if r.Err != nil {
		fmt.Fprintf(w, "     %s\n", failColor.Sprint(r.Err))
	}
}

func displayOutcome(o models.Outcome) string {
	if o == "" {
		return "none"
	}
	return string(o)
}
