package evaluation

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/namedisambig/clustereval/internal/loader"
	apperrors "github.com/namedisambig/clustereval/internal/pkg/errors"
	"github.com/namedisambig/clustereval/internal/pkg/logger"
)

// Options configures an Evaluator.
type Options struct {
	// Workers is the number of groups scored in parallel.
	Workers int

	// Strict skips groups whose items appear in more than one cluster.
	Strict bool

	// MinItems is the minimum number of common items a group needs.
	MinItems int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Workers:  4,
		MinItems: 1,
	}
}

// Evaluator orchestrates pairwise cluster evaluation.
type Evaluator struct {
	opts Options
	log  *logger.Logger
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(opts Options, log *logger.Logger) *Evaluator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MinItems < 1 {
		opts.MinItems = 1
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Evaluator{opts: opts, log: log}
}

// Evaluate loads both sources with a default, silent evaluator and returns
// the mean pairwise F1. It returns 0 when no group could be scored.
func Evaluate(ctx context.Context, predicted, truth loader.Source) (float64, error) {
	summary, err := NewEvaluator(DefaultOptions(), nil).EvaluateSources(ctx, predicted, truth)
	if err != nil {
		return 0, err
	}
	return summary.MeanF1, nil
}

// EvaluateSources loads both sources and evaluates them.
func (e *Evaluator) EvaluateSources(ctx context.Context, predicted, truth loader.Source) (*Summary, error) {
	pred, gt, err := LoadSources(predicted, truth)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, pred, gt)
}

// LoadSources loads the prediction and ground-truth documents.
func LoadSources(predicted, truth loader.Source) (loader.Document, loader.Document, error) {
	pred, err := loader.Load(predicted)
	if err != nil {
		return nil, nil, fmt.Errorf("loading prediction: %w", err)
	}
	gt, err := loader.Load(truth)
	if err != nil {
		return nil, nil, fmt.Errorf("loading ground truth: %w", err)
	}
	return pred, gt, nil
}

// outcome is exactly one of a result or a skip.
type outcome struct {
	result *GroupResult
	skip   *SkippedGroup
}

// Run scores every group present in both documents and aggregates the
// results. Malformed groups are skipped; only a fatal error such as a
// panic while scoring aborts the run.
func (e *Evaluator) Run(ctx context.Context, pred, truth loader.Document) (*Summary, error) {
	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	log := e.log.WithContext(ctx)

	groups := CommonGroups(pred, truth)
	log.Debug("evaluating groups",
		"common", len(groups),
		"predicted", len(pred),
		"truth", len(truth),
		"workers", e.opts.Workers,
	)

	// Each goroutine owns one slot, so no locking is needed.
	outcomes := make([]outcome, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, name := range groups {
		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				if r := recover(); r != nil {
					err = apperrors.InternalError("scoring "+name, fmt.Errorf("panic: %v", r)).
						WithDetail("group", name)
				}
			}()
			outcomes[i], err = e.scoreGroup(log.WithGroup(name), name, pred[name], truth[name])
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		results []GroupResult
		skips   []SkippedGroup
	)
	for _, o := range outcomes {
		switch {
		case o.result != nil:
			results = append(results, *o.result)
		case o.skip != nil:
			skips = append(skips, *o.skip)
		}
	}

	summary := Summarize(results, skips)
	summary.RunID = runID
	summary.PredictedGroups = len(pred)
	summary.TruthGroups = len(truth)
	summary.CommonGroups = len(groups)

	if !summary.Scorable() {
		log.WithError(apperrors.NoScorableGroupsError()).Error("no groups could be evaluated",
			"predicted", summary.PredictedGroups,
			"truth", summary.TruthGroups,
			"common", summary.CommonGroups,
		)
		return summary, nil
	}

	log.Info("evaluation complete",
		"mean_f1", summary.MeanF1,
		"groups_scored", summary.GroupsScored,
		"skipped", len(summary.Skipped),
	)
	return summary, nil
}

// CommonGroups returns, sorted, the prediction groups that also have ground truth.
func CommonGroups(pred, truth loader.Document) []string {
	names := make([]string, 0, len(pred))
	for name := range pred {
		if _, ok := truth[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (e *Evaluator) scoreGroup(log *logger.Logger, name string, predVal, truthVal any) (outcome, error) {
	clusters, err := ParsePrediction(name, predVal)
	if err != nil {
		return skipped(log, name, err)
	}

	gt, err := ParseGroundTruth(name, truthVal)
	if err != nil {
		return skipped(log, name, err)
	}

	labels := ExtractLabels(clusters, gt)
	if labels.HasDuplicates() {
		if e.opts.Strict {
			return skipped(log, name, apperrors.DuplicateItemsError(name, labels.DuplicatePredicted, labels.DuplicateTruth))
		}
		log.Warn("items appear in more than one cluster",
			"duplicate_predicted", labels.DuplicatePredicted,
			"duplicate_truth", labels.DuplicateTruth,
		)
	}

	switch n := len(labels.Items); {
	case n == 0:
		return skipped(log, name, apperrors.NoCommonItemsError(name))
	case n < e.opts.MinItems:
		return skipped(log, name, apperrors.New(apperrors.CodeNoCommonItems,
			fmt.Sprintf("%s has %d common items, need %d", name, n, e.opts.MinItems)))
	}

	pairs := CountPairs(labels.True, labels.Predicted)
	res := &GroupResult{
		Group:              name,
		TruthShape:         gt.Shape,
		Items:              len(labels.Items),
		Pairs:              pairs,
		Score:              pairs.Score(),
		DuplicatePredicted: labels.DuplicatePredicted,
		DuplicateTruth:     labels.DuplicateTruth,
	}
	log.Debug("group scored",
		"items", res.Items,
		"precision", res.Precision,
		"recall", res.Recall,
		"f1", res.F1,
	)
	return outcome{result: res}, nil
}

// skipped records err as the reason name was not scored. A fatal error is
// returned instead so the whole run stops.
func skipped(log *logger.Logger, name string, err error) (outcome, error) {
	sk := &SkippedGroup{Group: name, Reason: apperrors.Code(err), Detail: err.Error()}
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.Fatal() {
			log.WithError(err).Error("group failed")
			return outcome{}, err
		}
		sk.Detail = appErr.Message
	}
	log.Warn("group skipped", "reason", sk.Reason, "detail", sk.Detail)
	return outcome{skip: sk}, nil
}
