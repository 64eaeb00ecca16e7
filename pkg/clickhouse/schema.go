package clickhouse

import "fmt"

// Schema returns the DDL for the price and forecast archive tables.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.daily_bars (
	symbol LowCardinality(String),
	day Date,
	open Float64,
	high Float64,
	low Float64,
	close Float64,
	volume Int64,
	change Float64,
	inserted_at DateTime DEFAULT now()
) ENGINE = ReplacingMergeTree(inserted_at)
ORDER BY (symbol, day)`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.forecasts (
	symbol LowCardinality(String),
	term UInt32,
	computed_at DateTime,
	top_value Float64,
	bottom_value Float64,
	expect_value Float64,
	after_month_expect_value Float64,
	now_value Int64,
	expect_ratio_value Float64
) ENGINE = MergeTree
ORDER BY (symbol, computed_at)`, database),
	}
}
