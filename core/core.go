// Package core has core logic for schema resolution, order indexing and
// aggregation over Shopify-style order exports.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/internal/loader"
	"github.com/orderscope/orderscope/internal/outwriter"
	"github.com/orderscope/orderscope/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error

// ExecuteReport runs the single-scope product analysis and prints results to stdout.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	start := time.Now()
	report, rowsScanned, err := GetReportResults(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	recordRun(ctx, store, cfg, report.Scope, report.TotalOrders, report.AOV, duration, rowsScanned, 1)
	return outwriter.PrintReport(report, cfg, duration)
}

// ExecuteMonths runs the month-over-month comparison and prints results to stdout.
// It serves as the main entry point for the 'months' command.
func ExecuteMonths(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	start := time.Now()
	comparison, total, rowsScanned, err := GetMonthlyResults(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	recordRun(ctx, store, cfg, schema.AllMonthsScope, total, nil, duration, rowsScanned, len(comparison.Months))
	return outwriter.PrintMonthly(comparison, cfg, duration)
}

// ExecuteProducts lists the distinct product names in the export.
// It serves as the main entry point for the 'products' command.
func ExecuteProducts(_ context.Context, cfg *contract.Config, _ contract.HistoryStore) error {
	start := time.Now()
	names, err := GetProductResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintProducts(names, cfg, time.Since(start))
}

// GetReportResults computes the single-scope report without printing it.
// It also returns the number of rows scanned. This is exposed for the MCP server.
func GetReportResults(cfg *contract.Config) (schema.Report, int, error) {
	if cfg.Keyword == "" {
		return schema.Report{}, 0, errors.New("--keyword is required")
	}
	rows, roleMap, err := loadAndResolve(cfg)
	if err != nil {
		return schema.Report{}, 0, err
	}

	index := BuildOrderIndex(rows, roleMap)
	filtered := BuildFilteredAggregate(rows, roleMap, cfg.Keyword)

	scope := schema.AllMonthsScope
	if len(cfg.Months) > 0 {
		filtered = filterByMonths(filtered, index, cfg.Months)
		scope = strings.Join(cfg.Months, ",")
	}
	return Summarize(scope, filtered, index), len(rows), nil
}

// GetMonthlyResults computes the month-over-month comparison without printing
// it. It also returns the total matched orders and the number of rows
// scanned. This is exposed for the MCP server.
func GetMonthlyResults(cfg *contract.Config) (schema.MonthlyComparison, int, int, error) {
	if cfg.Keyword == "" {
		return schema.MonthlyComparison{}, 0, 0, errors.New("--keyword is required")
	}
	rows, roleMap, err := loadAndResolve(cfg)
	if err != nil {
		return schema.MonthlyComparison{}, 0, 0, err
	}
	if roleMap[schema.RoleCreated] == "" {
		contract.LogWarn("month comparison", errors.New("no creation date column resolved; all orders fall in the Unknown bucket"))
	}

	index := BuildOrderIndex(rows, roleMap)
	filtered := BuildFilteredAggregate(rows, roleMap, cfg.Keyword)
	reports, keys := BuildMonthReports(filtered, index)
	if len(cfg.Months) > 0 {
		keys = intersectMonths(keys, cfg.Months)
	}
	comparison := CompareMonths(keys, reports)

	total := 0
	for _, key := range keys {
		total += reports[key].TotalOrders
	}
	return comparison, total, len(rows), nil
}

// GetProductResults lists the distinct product names without printing them.
// This is exposed for the MCP server.
func GetProductResults(cfg *contract.Config) ([]string, error) {
	rows, roleMap, err := loadAndResolve(cfg)
	if err != nil {
		return nil, err
	}
	return ProductNames(rows, roleMap), nil
}

// loadAndResolve reads the export and resolves its columns, failing fast when
// the roles every analysis needs are missing.
func loadAndResolve(cfg *contract.Config) ([]schema.RawRow, schema.ColumnRoleMap, error) {
	if cfg.InputFile == "" {
		return nil, nil, errors.New("an input file is required")
	}
	headers, rows, err := loader.LoadRows(cfg.InputFile, cfg.Progress)
	if err != nil {
		return nil, nil, err
	}
	roleMap := ResolveColumns(headers, cfg.Aliases)
	if !roleMap.Resolved(schema.RoleOrder, schema.RoleLineItem) {
		return nil, nil, fmt.Errorf("could not resolve order and product columns from headers %v", headers)
	}
	return rows, roleMap, nil
}

// filterByMonths keeps only orders whose month bucket is in the allow list.
func filterByMonths(filtered map[string]float64, index map[string]*schema.OrderMeta, months []string) map[string]float64 {
	allowed := make(map[string]struct{}, len(months))
	for _, m := range months {
		allowed[m] = struct{}{}
	}
	out := make(map[string]float64)
	for orderID, qty := range filtered {
		key := schema.UnknownMonthKey
		if meta, ok := index[orderID]; ok {
			key = meta.MonthKey
		}
		if _, ok := allowed[key]; ok {
			out[orderID] = qty
		}
	}
	return out
}

// intersectMonths keeps the keys named in the filter, preserving their
// chronological order.
func intersectMonths(keys, months []string) []string {
	allowed := make(map[string]struct{}, len(months))
	for _, m := range months {
		allowed[m] = struct{}{}
	}
	var out []string
	for _, key := range keys {
		if _, ok := allowed[key]; ok {
			out = append(out, key)
		}
	}
	return out
}

// recordRun persists run telemetry when a history store is configured.
// Failures degrade to a warning so history never blocks an analysis.
func recordRun(ctx context.Context, store contract.HistoryStore, cfg *contract.Config, scope string, totalOrders int, aov *float64, duration time.Duration, rowsScanned, monthBuckets int) {
	if store == nil {
		return
	}
	rec := schema.RunRecord{
		SourceFile:   cfg.InputFile,
		Keyword:      cfg.Keyword,
		Scope:        scope,
		TotalOrders:  totalOrders,
		AOV:          aov,
		DurationMs:   duration.Milliseconds(),
		RowsScanned:  rowsScanned,
		MonthBuckets: monthBuckets,
	}
	if err := store.RecordRun(ctx, rec); err != nil {
		contract.LogWarn("recording run history", err)
	}
}
