package analyze

import (
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// StringStats aggregates every string value in a document. Lengths are
// measured in runes.
type StringStats struct {
	Count       int
	TotalLength int
	AvgLength   float64
}

// NumberStats aggregates every numeric value in a document. Min, Max,
// and Avg are zero when the document has no numbers.
type NumberStats struct {
	Count int
	Min   float64
	Max   float64
	Avg   float64
}

// ArrayStats aggregates every array in a document, nested arrays and
// an array root included.
type ArrayStats struct {
	Count         int
	TotalElements int
	AvgSize       float64
}

// StatisticsReport carries per-type value metrics.
type StatisticsReport struct {
	Strings StringStats
	Numbers NumberStats
	Arrays  ArrayStats
}

// Statistics reports string, number, and array metrics.
type Statistics struct{}

// NewStatistics creates a value statistics analyzer.
func NewStatistics() *Statistics { return &Statistics{} }

// Name implements Analyzer.
func (s *Statistics) Name() string { return "statistics" }

// Analyze implements Analyzer. It never fails.
func (s *Statistics) Analyze(root gjson.Result) (any, error) {
	rep := &StatisticsReport{}
	numberSum := 0.0
	s.walk(root, rep, &numberSum)

	if rep.Strings.Count > 0 {
		rep.Strings.AvgLength = float64(rep.Strings.TotalLength) / float64(rep.Strings.Count)
	}
	if rep.Numbers.Count > 0 {
		rep.Numbers.Avg = numberSum / float64(rep.Numbers.Count)
	}
	if rep.Arrays.Count > 0 {
		rep.Arrays.AvgSize = float64(rep.Arrays.TotalElements) / float64(rep.Arrays.Count)
	}
	return rep, nil
}

func (s *Statistics) walk(node gjson.Result, rep *StatisticsReport, numberSum *float64) {
	switch {
	case node.IsObject():
		node.ForEach(func(_, value gjson.Result) bool {
			s.walk(value, rep, numberSum)
			return true
		})
	case node.IsArray():
		rep.Arrays.Count++
		node.ForEach(func(_, value gjson.Result) bool {
			rep.Arrays.TotalElements++
			s.walk(value, rep, numberSum)
			return true
		})
	case node.Type == gjson.String:
		rep.Strings.Count++
		rep.Strings.TotalLength += utf8.RuneCountInString(node.String())
	case node.Type == gjson.Number:
		n := node.Float()
		if rep.Numbers.Count == 0 || n < rep.Numbers.Min {
			rep.Numbers.Min = n
		}
		if rep.Numbers.Count == 0 || n > rep.Numbers.Max {
			rep.Numbers.Max = n
		}
		rep.Numbers.Count++
		*numberSum += n
	}
}
