package conflict

import (
	"time"

	"github.com/KasumiMercury/planner-block-scheduling/internal/domain"
)

const (
	defaultSuggestStep    = 15 * time.Minute
	defaultSuggestHorizon = 8 * time.Hour
	defaultSuggestLimit   = 3
)

// SuggestOptions tunes the forward scan. Zero values take the defaults.
type SuggestOptions struct {
	Step    time.Duration
	Horizon time.Duration
	Limit   int
}

func (o SuggestOptions) withDefaults() SuggestOptions {
	if o.Step <= 0 {
		o.Step = defaultSuggestStep
	}
	if o.Horizon <= 0 {
		o.Horizon = defaultSuggestHorizon
	}
	if o.Limit <= 0 {
		o.Limit = defaultSuggestLimit
	}
	return o
}

// Suggest scans forward from start in fixed increments, testing each
// candidate window of the requested duration against the known conflict
// set. The scan never queries storage, so a caller holding a conflict
// report can offer alternatives without another round trip. When the
// horizon is exhausted fewer than Limit suggestions come back.
func Suggest(start time.Time, duration time.Duration, conflicts []domain.Conflict, opts SuggestOptions) []domain.TimeRange {
	opts = opts.withDefaults()

	suggestions := make([]domain.TimeRange, 0, opts.Limit)
	horizonEnd := start.Add(opts.Horizon)

	for candidate := start.Add(opts.Step); !candidate.After(horizonEnd); candidate = candidate.Add(opts.Step) {
		candidateEnd := candidate.Add(duration)

		free := true
		for _, c := range conflicts {
			if domain.Overlaps(candidate, candidateEnd, c.Start, c.End) {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		suggestions = append(suggestions, domain.TimeRange{Start: candidate, End: candidateEnd})
		if len(suggestions) >= opts.Limit {
			break
		}
	}

	return suggestions
}
