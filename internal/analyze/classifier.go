// Package analyze turns free-text answer segments into (dimension, score)
// classifications the screening evaluator can act on.
package analyze

// #region imports
import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/llm"
)

// #endregion

// #region result

// Keyword values a classification can carry instead of a numeric score.
const (
	KeywordYes      = "Yes"
	KeywordNo       = "No"
	KeywordMaybe    = "Maybe"
	KeywordQuestion = "Question"
	KeywordStop     = "Stop"
)

// Sentinel returned when no classification could be extracted.
const (
	LabelNA    = "NA"
	ScoreUnset = 99
)

// Result is one classified segment: either a keyword bound to the probed
// dimension, or a dimension label with a severity score in 0..2.
type Result struct {
	Label   string
	Score   int
	Keyword string
}

// IsKeyword reports whether the result carries a general keyword.
func (r Result) IsKeyword() bool { return r.Keyword != "" }

// #endregion

// #region classifier

// Classifier resolves answer segments, trying cheap token matching before
// falling back to the language model.
type Classifier struct {
	client llm.Client
	log    *zap.Logger
}

// NewClassifier builds a classifier over a completion client.
func NewClassifier(client llm.Client, log *zap.Logger) *Classifier {
	return &Classifier{client: client, log: log.Named("analyze")}
}

var (
	keywordScoreRE = regexp.MustCompile(`(?i)^\s*(Yes|No|Stop|Question|Maybe)\s*,?\s*(\d+)?\s*$`)
	dimScoreRE     = regexp.MustCompile(`\b((?:DLA_)?(?:\d+_)?[A-Za-z_]+)\s*[,:\-\s]\s*([0-2])\b`)
	dimPrefixRE    = regexp.MustCompile(`^(?:DLA_)?(\d+)_([A-Za-z_]+)$`)
	otherRE        = regexp.MustCompile(`(?i)^\s*Other\s*,\s*\d+\s*$`)
)

// Classify resolves one answer segment against the probed dimension.
// Keyword replies bind to dimensionLabel; everything else is classified by
// the model and parsed. Unparseable output yields the (NA, 99) sentinel
// rather than an error, since the evaluator treats it as an invalid answer.
func (c *Classifier) Classify(ctx context.Context, segment, question, dimensionLabel string) Result {
	if kw := quickKeyword(segment); kw != "" {
		c.log.Debug("quick keyword matched", zap.String("keyword", kw), zap.String("dimension", dimensionLabel))
		return Result{Label: dimensionLabel, Keyword: kw}
	}

	raw, err := c.client.Complete(ctx, classifierSystemPrompt, segment)
	if err != nil {
		c.log.Warn("classification request failed", zap.Error(err))
		return Result{Label: LabelNA, Score: ScoreUnset}
	}
	first := firstLine(raw)

	if m := keywordScoreRE.FindStringSubmatch(first); m != nil {
		kw := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		return Result{Label: dimensionLabel, Keyword: kw}
	}
	if r, ok := parseDimScore(first); ok {
		return r
	}
	if r, ok := parseJSONLike(first); ok {
		return r
	}
	if r, ok := parseJSONLike(raw); ok {
		return r
	}
	if otherRE.MatchString(first) {
		return Result{Label: LabelNA, Score: ScoreUnset}
	}
	c.log.Debug("classification unparseable", zap.String("raw", raw))
	return Result{Label: LabelNA, Score: ScoreUnset}
}

// quickKeyword scans the first ten tokens for a general keyword, so plain
// yes/no answers never cost a model call.
func quickKeyword(segment string) string {
	cleaned := strings.NewReplacer(".", " ", ",", " ", "?", " ").Replace(segment)
	tokens := strings.Fields(cleaned)
	if len(tokens) > 10 {
		tokens = tokens[:10]
	}
	for _, t := range tokens {
		switch strings.ToLower(t) {
		case "stop":
			return KeywordStop
		case "yes":
			return KeywordYes
		case "no":
			return KeywordNo
		case "maybe":
			return KeywordMaybe
		case "question":
			return KeywordQuestion
		}
	}
	return ""
}

func firstLine(raw string) string {
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

// NormalizeLabel strips the catalogue's DLA_/item-number prefix from a
// dimension label, leaving the bare name. Labels arrive in both forms: the
// question library carries the catalogue spelling ("1_weight") while parsed
// model output is already stripped, so comparisons go through this.
func NormalizeLabel(label string) string {
	if pm := dimPrefixRE.FindStringSubmatch(label); pm != nil {
		return pm[2]
	}
	return label
}

// parseDimScore extracts "dimension, score" from free text, accepting
// comma, colon, hyphen or whitespace separators and stripping any
// DLA_/item-number prefix so only the bare label remains.
func parseDimScore(text string) (Result, bool) {
	m := dimScoreRE.FindStringSubmatch(text)
	if m == nil {
		return Result{}, false
	}
	dim := NormalizeLabel(strings.TrimSpace(m[1]))
	score, err := strconv.Atoi(m[2])
	if err != nil || score < 0 || score > 2 {
		return Result{}, false
	}
	return Result{Label: dim, Score: score}, true
}

// parseJSONLike handles model output shaped as {"res": "3_talk, 1"} or
// {"dimension": "3_talk", "score": 1}.
func parseJSONLike(raw string) (Result, bool) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return Result{}, false
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return parseDimScore(s)
	}
	lowered := make(map[string]any, len(data))
	for k, v := range data {
		lowered[strings.ToLower(k)] = v
	}
	if res, ok := lowered["res"]; ok {
		if r, ok := parseDimScore(strings.TrimSpace(toString(res))); ok {
			return r, true
		}
	}
	dim, hasDim := lowered["dimension"]
	sc, hasScore := lowered["score"]
	if hasDim && hasScore {
		label := NormalizeLabel(strings.TrimSpace(toString(dim)))
		if score, ok := toInt(sc); ok && score >= 0 && score <= 2 {
			return Result{Label: label, Score: score}, true
		}
	}
	return parseDimScore(s)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

// #endregion

// #region decision

// ParseDecision reduces a reasoner reply to its binary token: any "0" in the
// raw output means decision 0, everything else means 1.
func ParseDecision(raw string) string {
	if strings.Contains(raw, "0") {
		return "0"
	}
	return "1"
}

// #endregion
