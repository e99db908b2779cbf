package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/frontgen-dev/frontgen/internal/logging"
)

func TestRunPipeline_RequiredFailureShortCircuits(t *testing.T) {
	var ran []string
	step := func(name string, c Criticality, err error) Step {
		return Step{Name: name, Criticality: c, Run: func(context.Context) error {
			ran = append(ran, name)
			return err
		}}
	}

	err := runPipeline(context.Background(), logging.Discard(), []Step{
		step("one", Required, nil),
		step("two", Required, errors.New("boom")),
		step("three", Required, nil),
		step("tail", BestEffort, nil),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "two: boom") {
		t.Errorf("error should name the failing step: %v", err)
	}
	if got := strings.Join(ran, ","); got != "one,two" {
		t.Errorf("steps after the failure must not run, ran %q", got)
	}
}

func TestRunPipeline_BestEffortFailureContinues(t *testing.T) {
	var ran []string
	err := runPipeline(context.Background(), logging.Discard(), []Step{
		{Name: "metadata", Criticality: BestEffort, Run: func(context.Context) error {
			ran = append(ran, "metadata")
			return errors.New("disk full")
		}},
		{Name: "tail", Criticality: Required, Run: func(context.Context) error {
			ran = append(ran, "tail")
			return nil
		}},
	})
	if err != nil {
		t.Fatalf("best-effort failure must not abort the run: %v", err)
	}
	if got := strings.Join(ran, ","); got != "metadata,tail" {
		t.Errorf("ran %q", got)
	}
}

func TestCriticality_String(t *testing.T) {
	if Required.String() != "required" || BestEffort.String() != "best-effort" {
		t.Errorf("Criticality strings wrong: %s, %s", Required, BestEffort)
	}
}
