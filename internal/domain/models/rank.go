package models

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// RankTopCut is the best rank still counted as a "top" appearance.
const RankTopCut = 30

var (
	ErrInvalidStockTag = errors.New("invalid stock tag")
	ErrInvalidRegion   = errors.New("invalid region")
)

var regionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateRegion accepts plain directory names such as "KR" or "US".
func ValidateRegion(region string) error {
	if !regionPattern.MatchString(region) {
		return fmt.Errorf("%w %q", ErrInvalidRegion, region)
	}
	return nil
}

// ValidateStockTag accepts tags usable as an unprefixed XML element name:
// a letter or '_' followed by letters, digits, '-', '_' or '.'.
func ValidateStockTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty", ErrInvalidStockTag)
	}
	for i, r := range tag {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return fmt.Errorf("%w %q", ErrInvalidStockTag, tag)
		}
	}
	// the decoder has the final word on which letters it accepts
	tok, err := xml.NewDecoder(strings.NewReader("<" + tag + "/>")).Token()
	if err != nil {
		return fmt.Errorf("%w %q", ErrInvalidStockTag, tag)
	}
	if start, ok := tok.(xml.StartElement); !ok || start.Name.Space != "" || start.Name.Local != tag {
		return fmt.Errorf("%w %q", ErrInvalidStockTag, tag)
	}
	return nil
}

// RankInput is one ranked stock submitted for accumulation.
type RankInput struct {
	Code string
	Name string
	Rank int
}

// RankRow is one accumulated stock row. Numbers are strings on the wire.
type RankRow struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	RankSum   string `json:"rankSum"`
	Count     string `json:"count"`
	FullCount string `json:"fullCount"`
}

// RankReport holds per-month and all-period aggregates keyed by period label.
type RankReport struct {
	PerMonth  map[string][]RankRow `json:"perMonthDataList"`
	AllPeriod map[string][]RankRow `json:"allPeriodDataList"`
}

// ParseRankInputs extracts code, name and rank from loosely typed items.
// Rank may arrive as a JSON number or a numeric string.
func ParseRankInputs(items []map[string]interface{}) ([]RankInput, error) {
	out := make([]RankInput, 0, len(items))
	for i, item := range items {
		code, ok := item["code"].(string)
		if !ok || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("item %d: code is required", i)
		}
		name, _ := item["name"].(string)
		rank, err := parseRank(item["rank"])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, RankInput{Code: code, Name: name, Rank: rank})
	}
	return out, nil
}

func parseRank(v interface{}) (int, error) {
	switch r := v.(type) {
	case float64:
		return int(r), nil
	case int:
		return r, nil
	case json.Number:
		n, err := r.Int64()
		return int(n), err
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return 0, fmt.Errorf("rank %q is not a number", r)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("rank is required")
	}
}
