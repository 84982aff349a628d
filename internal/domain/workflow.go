package domain

import (
	"github.com/mouse-blink/locov/internal/adapter"
	m "github.com/mouse-blink/locov/internal/model"
	"golang.org/x/sync/errgroup"
)

// AnalyzeArgs describes one analysis run.
type AnalyzeArgs struct {
	Paths   []m.Path
	Options m.Options
	// Threads bounds how many binaries are analyzed concurrently.
	Threads int
}

// Workflow defines the coverage-analysis operations the CLI drives.
type Workflow interface {
	Analyze(args AnalyzeArgs) ([]m.FileReport, error)
}

type workflow struct {
	objAdapter adapter.ObjectFileAdapter
}

// NewWorkflow creates a Workflow backed by the provided object-file
// adapter.
func NewWorkflow(objAdapter adapter.ObjectFileAdapter) Workflow {
	return &workflow{objAdapter: objAdapter}
}

// Analyze validates the configuration, then loads and scores every binary.
// Each input gets its own histogram; reports come back in input order
// regardless of how the work was scheduled. The first failing binary
// aborts the run.
func (w *workflow) Analyze(args AnalyzeArgs) ([]m.FileReport, error) {
	if err := args.Options.Validate(); err != nil {
		return nil, err
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	reports := make([]m.FileReport, len(args.Paths))

	var g errgroup.Group
	g.SetLimit(threads)

	for i, path := range args.Paths {
		i, path := i, path
		g.Go(func() error {
			info, err := w.objAdapter.Load(path)
			if err != nil {
				return err
			}

			reports[i] = m.FileReport{
				Path:      path,
				Histogram: AnalyzeDebugInfo(info, args.Options),
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
