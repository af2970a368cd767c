/*
Package viewport implements the deterministic column-selection algorithm that
backs the query result grid in sabiql. The table inspector's lists do not use
it; they render as fixed-width text columns.

Given a set of per-column widths and an available pane width, it decides
which consecutive columns are visible at a given horizontal offset, how wide
each should render, and guarantees that scrolling by one column changes
exactly one visible column. The package performs no rendering itself — it
only produces indices and widths for the caller to draw.
*/
package viewport

// MinColWidth and MaxColWidth clamp the ideal width computed for any column
// from its widest observed cell.
const (
	MinColWidth = 4
	MaxColWidth = 50
)

// SlackPolicy controls what happens to left-over space once columns are
// selected and sized.
type SlackPolicy int

const (
	// SlackNone leaves left-over space unused. Required whenever scrolling
	// is possible, so that widths stay identical across scroll positions.
	SlackNone SlackPolicy = iota
	// SlackRightmostLimited adds left-over space to the rightmost visible
	// column. Only correct when every column already fits (MaxOffset == 0).
	SlackRightmostLimited
)

// ColumnWidthConfig carries the two width arrays a selection is computed
// against. Both slices must be the same length (one entry per column).
type ColumnWidthConfig struct {
	IdealWidths []int
	MinWidths   []int
}

// SelectionContext parameterises a single column-selection call.
type SelectionContext struct {
	HorizontalOffset int
	AvailableWidth   int
	// FixedCount forces a stable column count across scroll positions, when
	// set. Leave nil to use the dynamic, greedy-pack mode.
	FixedCount  *int
	MaxOffset   int
	SlackPolicy SlackPolicy
}

func totalWidthWithSeparators(widths []int) int {
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if len(widths) > 1 {
		sum += len(widths) - 1
	}
	return sum
}

// shrinkColumns reduces widths (in viewport-local order) toward their
// per-column minimums until excess is absorbed or there is nothing left to
// shrink. Returns the unabsorbed remainder.
func shrinkColumns(widths []int, minWidths []int, indices []int, excess int, fromLeft bool) int {
	n := len(widths)
	if n == 0 {
		return excess
	}

	minWidthFor := func(colIdx int) int {
		if colIdx >= 0 && colIdx < len(minWidths) {
			return minWidths[colIdx]
		}
		return MinColWidth
	}

	step := func(viewportIdx int) {
		if excess == 0 {
			return
		}
		colIdx := indices[viewportIdx]
		minW := minWidthFor(colIdx)
		shrinkable := widths[viewportIdx] - minW
		if shrinkable < 0 {
			shrinkable = 0
		}
		shrink := shrinkable
		if excess < shrink {
			shrink = excess
		}
		widths[viewportIdx] -= shrink
		excess -= shrink
	}

	if fromLeft {
		for i := 0; i < n; i++ {
			step(i)
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			step(i)
		}
	}

	return excess
}

func applySlackToRightmost(widths []int, availableWidth int) {
	if len(widths) == 0 {
		return
	}
	current := totalWidthWithSeparators(widths)
	if current >= availableWidth {
		return
	}
	slack := availableWidth - current
	widths[len(widths)-1] += slack
}

// tryAddBonusColumn pulls in one extra column, beyond the fixed count, when
// the remaining slack would comfortably fit it. This is what makes the
// right edge of a fixed-count viewport "peek" at the next column instead of
// cutting sharply.
func tryAddBonusColumn(cfg ColumnWidthConfig, indices *[]int, widths *[]int, availableWidth int) bool {
	if len(*indices) == 0 {
		return false
	}

	rightmostIdx := (*indices)[len(*indices)-1]
	nextIdx := rightmostIdx + 1
	if nextIdx >= len(cfg.IdealWidths) {
		return false
	}

	current := totalWidthWithSeparators(*widths)
	slack := availableWidth - current
	if slack < 0 {
		slack = 0
	}

	nextIdeal := cfg.IdealWidths[nextIdx]
	needed := nextIdeal + 1 // +1 for the separator

	if slack >= needed {
		*indices = append(*indices, nextIdx)
		*widths = append(*widths, nextIdeal)
		return true
	}
	return false
}

// SelectColumns picks the visible column indices and their rendered widths
// for the given configuration and context.
func SelectColumns(cfg ColumnWidthConfig, ctx SelectionContext) (indices []int, widths []int) {
	if len(cfg.IdealWidths) == 0 || ctx.HorizontalOffset >= len(cfg.IdealWidths) {
		return nil, nil
	}

	if ctx.FixedCount != nil {
		indices, widths = selectFixedColumns(cfg, ctx, *ctx.FixedCount)
	} else {
		indices, widths = selectDynamicColumns(cfg, ctx.HorizontalOffset, ctx.AvailableWidth)
	}

	if ctx.SlackPolicy == SlackRightmostLimited {
		applySlackToRightmost(widths, ctx.AvailableWidth)
	}

	return indices, widths
}

// selectFixedColumns implements the fixed-count path, including the
// bonus-column reveal and the right-edge drop-leftmost fallback.
func selectFixedColumns(cfg ColumnWidthConfig, ctx SelectionContext, count int) ([]int, []int) {
	end := ctx.HorizontalOffset + count
	if end > len(cfg.IdealWidths) {
		end = len(cfg.IdealWidths)
	}
	if end <= ctx.HorizontalOffset {
		return nil, nil
	}

	indices := make([]int, 0, end-ctx.HorizontalOffset)
	widths := make([]int, 0, end-ctx.HorizontalOffset)
	for i := ctx.HorizontalOffset; i < end; i++ {
		indices = append(indices, i)
		widths = append(widths, cfg.IdealWidths[i])
	}

	if ctx.MaxOffset > 0 {
		tryAddBonusColumn(cfg, &indices, &widths, ctx.AvailableWidth)
	}

	totalNeeded := totalWidthWithSeparators(widths)
	if totalNeeded > ctx.AvailableWidth {
		excess := totalNeeded - ctx.AvailableWidth
		atRightEdge := ctx.HorizontalOffset >= ctx.MaxOffset && ctx.MaxOffset > 0

		remaining := shrinkColumns(widths, cfg.MinWidths, indices, excess, atRightEdge)

		if atRightEdge && remaining > 0 && len(indices) > 1 {
			indices = indices[1:]
			widths = widths[1:]

			lastIdx := indices[len(indices)-1]
			widths[len(widths)-1] = cfg.IdealWidths[lastIdx]

			newTotal := totalWidthWithSeparators(widths)
			if newTotal > ctx.AvailableWidth {
				newExcess := newTotal - ctx.AvailableWidth
				shrinkColumns(widths, cfg.MinWidths, indices, newExcess, true)
			}
		}
	}

	return indices, widths
}

// selectDynamicColumns greedily packs columns left-to-right at their ideal
// width, shrinking only the final column to use remaining space.
func selectDynamicColumns(cfg ColumnWidthConfig, horizontalOffset, availableWidth int) ([]int, []int) {
	var indices []int
	var widths []int
	used := 0

	for i := horizontalOffset; i < len(cfg.IdealWidths); i++ {
		width := cfg.IdealWidths[i]
		separator := 0
		if len(indices) > 0 {
			separator = 1
		}
		needed := width + separator

		if used+needed <= availableWidth {
			used += needed
			indices = append(indices, i)
			widths = append(widths, width)
			continue
		}

		remaining := availableWidth - used - separator
		if remaining < 0 {
			remaining = 0
		}
		minW := MinColWidth
		if i < len(cfg.MinWidths) {
			minW = cfg.MinWidths[i]
		}
		if remaining >= minW {
			indices = append(indices, i)
			widths = append(widths, remaining)
		}
		break
	}

	if len(indices) == 0 && horizontalOffset < len(cfg.IdealWidths) {
		w := cfg.IdealWidths[horizontalOffset]
		if w > availableWidth {
			w = availableWidth
		}
		indices = append(indices, horizontalOffset)
		widths = append(widths, w)
	}

	return indices, widths
}

// CalculateColumnCount finds the largest N such that every consecutive
// window of N ideal widths fits in availableWidth (including separators).
// This worst-case sliding-window criterion guarantees that scrolling by one
// column cannot change the visible column count. Falls back to min widths
// if no N satisfies the criterion on ideal widths. The result is never
// less than 1 unless idealWidths is empty.
func CalculateColumnCount(idealWidths, minWidths []int, availableWidth int) int {
	if len(idealWidths) == 0 {
		return 0
	}

	if n := largestFittingWindow(idealWidths, availableWidth); n > 0 {
		return n
	}
	if n := largestFittingWindow(minWidths, availableWidth); n > 0 {
		return n
	}
	return 1
}

func largestFittingWindow(widths []int, availableWidth int) int {
	for n := len(widths); n >= 1; n-- {
		allFit := true
		for start := 0; start+n <= len(widths); start++ {
			if totalWidthWithSeparators(widths[start:start+n]) > availableWidth {
				allFit = false
				break
			}
		}
		if allFit {
			return n
		}
	}
	return 0
}

// CalculateMaxOffset returns the highest valid horizontal scroll position.
func CalculateMaxOffset(allWidthsLen, columnCount int) int {
	d := allWidthsLen - columnCount
	if d < 0 {
		return 0
	}
	return d
}

// CalculateNextOffset clamps offset+1 to the valid range.
func CalculateNextOffset(allWidthsLen, currentOffset, columnCount int) int {
	maxOffset := CalculateMaxOffset(allWidthsLen, columnCount)
	next := currentOffset + 1
	if next > maxOffset {
		return maxOffset
	}
	return next
}

// CalculatePrevOffset clamps offset-1 to zero.
func CalculatePrevOffset(currentOffset int) int {
	if currentOffset <= 0 {
		return 0
	}
	return currentOffset - 1
}

// Plan caches a computed column count/max-offset along with the invalidation
// keys needed to detect when the underlying widths have changed enough to
// require recomputation. Known limitation (matches the reference
// implementation): permutations that preserve sum, max, and length are not
// detected and will not trigger a recalculation.
type Plan struct {
	ColumnCount     int
	MaxOffset       int
	AvailableWidth  int
	MinWidthsSum    int
	IdealWidthsSum  int
	IdealWidthsMax  int
	SlackPolicy     SlackPolicy
}

// CalculatePlan computes a fresh Plan from the given widths and available
// width.
func CalculatePlan(idealWidths, minWidths []int, availableWidth int) Plan {
	columnCount := CalculateColumnCount(idealWidths, minWidths, availableWidth)
	maxOffset := CalculateMaxOffset(len(idealWidths), columnCount)

	minSum, idealSum, idealMax := 0, 0, 0
	for _, w := range minWidths {
		minSum += w
	}
	for _, w := range idealWidths {
		idealSum += w
		if w > idealMax {
			idealMax = w
		}
	}

	slackPolicy := SlackNone
	if maxOffset == 0 {
		slackPolicy = SlackRightmostLimited
	}

	return Plan{
		ColumnCount:    columnCount,
		MaxOffset:      maxOffset,
		AvailableWidth: availableWidth,
		MinWidthsSum:   minSum,
		IdealWidthsSum: idealSum,
		IdealWidthsMax: idealMax,
		SlackPolicy:    slackPolicy,
	}
}

// NeedsRecalculation reports whether the cached plan is stale relative to
// newly observed widths/available width.
func (p Plan) NeedsRecalculation(newWidthsLen, newAvailableWidth, newMinWidthsSum, newIdealWidthsSum, newIdealWidthsMax int) bool {
	return p.ColumnCount == 0 ||
		p.AvailableWidth != newAvailableWidth ||
		p.MaxOffset+p.ColumnCount != newWidthsLen ||
		p.MinWidthsSum != newMinWidthsSum ||
		p.IdealWidthsSum != newIdealWidthsSum ||
		p.IdealWidthsMax != newIdealWidthsMax
}

// ClampIdealWidth clamps a measured ideal column width into
// [MinColWidth, MaxColWidth].
func ClampIdealWidth(w int) int {
	if w < MinColWidth {
		return MinColWidth
	}
	if w > MaxColWidth {
		return MaxColWidth
	}
	return w
}
