package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStockTag(t *testing.T) {
	for _, tag := range []string{"KOSPI", "S_P500", "_tag", "nasdaq-100", "kr.top", "코스피"} {
		assert.NoError(t, ValidateStockTag(tag), tag)
	}
	for _, tag := range []string{"", "1KOSPI", "a:b", `x"y`, "x=y", "S&P 500", "a/b", "<x>", "-x", ".x"} {
		assert.ErrorIs(t, ValidateStockTag(tag), ErrInvalidStockTag, tag)
	}
}

func TestValidateRegion(t *testing.T) {
	for _, r := range []string{"KR", "US", "eu_west-1"} {
		assert.NoError(t, ValidateRegion(r), r)
	}
	for _, r := range []string{"", "..", "../../escaped", "a/b", `a\b`, "K R", "/abs"} {
		assert.ErrorIs(t, ValidateRegion(r), ErrInvalidRegion, r)
	}
}
