package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Criticality says how a step failure affects the run.
type Criticality int

const (
	// Required steps abort the run on failure; nothing after them
	// executes.
	Required Criticality = iota

	// BestEffort steps log their failure and let the run continue.
	BestEffort
)

func (c Criticality) String() string {
	if c == BestEffort {
		return "best-effort"
	}
	return "required"
}

// Step is one stage of the generation pipeline.
type Step struct {
	Name        string
	Criticality Criticality
	Run         func(ctx context.Context) error
}

// runPipeline executes steps in order. The first required-step failure
// short-circuits everything after it, best-effort ones included.
func runPipeline(ctx context.Context, logger *log.Logger, steps []Step) error {
	for _, step := range steps {
		start := time.Now()
		logger.Info("step started", "step", step.Name)
		err := step.Run(ctx)
		if err == nil {
			logger.Debug("step finished", "step", step.Name, "took", time.Since(start).Round(time.Millisecond))
			continue
		}
		if step.Criticality == BestEffort {
			logger.Warn("best-effort step failed, continuing", "step", step.Name, "err", err)
			continue
		}
		logger.Error("step failed", "step", step.Name, "err", err)
		return fmt.Errorf("%s: %w", step.Name, err)
	}
	return nil
}
