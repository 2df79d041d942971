package classifier

import "fmt"

// Tone is the display category of a score.
type Tone int

const (
	ToneNone Tone = iota
	TonePositive
	ToneNegative
)

func (t Tone) String() string {
	switch t {
	case TonePositive:
		return "positive"
	case ToneNegative:
		return "negative"
	default:
		return "none"
	}
}

func (t Tone) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tone) UnmarshalText(b []byte) error {
	switch string(b) {
	case "positive":
		*t = TonePositive
	case "negative":
		*t = ToneNegative
	case "none", "":
		*t = ToneNone
	default:
		return fmt.Errorf("unknown tone %q", string(b))
	}
	return nil
}

const (
	ColorPositive = "#18BA8F"
	ColorNegative = "#F44545"
)

// Classification is the result of classifying a score. Color is empty for ToneNone.
type Classification struct {
	Tone  Tone   `json:"tone"`
	Color string `json:"color,omitempty"`
}

// OK reports whether the score fell into a coloured band.
func (c Classification) OK() bool { return c.Tone != ToneNone }

// Thresholds bounds the two coloured bands, both inclusive.
// Scores strictly between Negative and Positive are unclassified.
type Thresholds struct {
	Positive float64
	Negative float64
}

// DefaultThresholds is the 70/30 split used for Fear & Greed and RSI readings.
var DefaultThresholds = Thresholds{Positive: 70, Negative: 30}

// Classify maps score to a tone.
func (th Thresholds) Classify(score float64) Classification {
	switch {
	case score >= th.Positive:
		return Classification{Tone: TonePositive, Color: ColorPositive}
	case score <= th.Negative:
		return Classification{Tone: ToneNegative, Color: ColorNegative}
	default:
		return Classification{Tone: ToneNone}
	}
}

// Classify uses DefaultThresholds.
func Classify(score float64) Classification {
	return DefaultThresholds.Classify(score)
}
