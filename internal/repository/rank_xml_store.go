package repository

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"FinDash/internal/domain/models"
	"FinDash/pkg/logger"
	"FinDash/pkg/util"
)

const (
	rankRootTag    = "UESRDATA"
	rankMarkerCode = "ALL"
	rankMarkerName = "횟수"
	rankFileExt    = ".xml"
)

type rankRow struct {
	XMLName   xml.Name
	Code      string `xml:"CODE"`
	RankSum   int    `xml:"RANKSUM"`
	Name      string `xml:"NAME"`
	Count     int    `xml:"COUNT"`
	FullCount int    `xml:"FULLCOUNT"`
}

type rankDoc struct {
	XMLName xml.Name  `xml:"UESRDATA"`
	Rows    []rankRow `xml:",any"`
}

// RankXMLStore keeps one XML accumulation file per month under <dir>/<region>/<Y>.<M>.xml.
// Rows are elements named after the stock tag; a marker row counts the saves.
type RankXMLStore struct {
	dir string
	mu  sync.Mutex
	log *logger.Logger
}

func NewRankXMLStore(dataDir string, l *logger.Logger) *RankXMLStore {
	return &RankXMLStore{
		dir: filepath.Join(dataDir, "Xml_Files"),
		log: l.With("rank_store"),
	}
}

func (s *RankXMLStore) monthPath(region string, month time.Time) string {
	return filepath.Join(s.dir, region, util.MonthKey(month)+rankFileExt)
}

func newRankRow(tag string, in models.RankInput) rankRow {
	r := rankRow{XMLName: xml.Name{Local: tag}, Code: in.Code, Name: in.Name, RankSum: in.Rank, FullCount: 1}
	if in.Rank <= models.RankTopCut {
		r.Count = 1
	}
	return r
}

// Accumulate adds items to the month file, creating it on first use.
func (s *RankXMLStore) Accumulate(_ context.Context, region, stockTag string, month time.Time, items []models.RankInput) error {
	if err := models.ValidateStockTag(stockTag); err != nil {
		return err
	}
	if err := models.ValidateRegion(region); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.monthPath(region, month)
	doc, err := readRankDoc(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		doc = &rankDoc{}
	case err != nil:
		return err
	}

	accumulate(doc, stockTag, items)

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(out)
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	s.log.Info("ranks accumulated",
		logger.String("file", filepath.Base(path)),
		logger.String("region", region),
		logger.Int("items", len(items)),
	)
	return nil
}

// accumulate bumps the marker row once, then merges every item into its code's row.
func accumulate(doc *rankDoc, tag string, items []models.RankInput) {
	index := make(map[string]int)
	marker := -1
	for i, r := range doc.Rows {
		if r.XMLName.Local != tag {
			continue
		}
		if r.Code == rankMarkerCode && r.Name == rankMarkerName {
			if marker < 0 {
				marker = i
			}
			continue
		}
		if _, ok := index[r.Code]; !ok {
			index[r.Code] = i
		}
	}

	if marker < 0 {
		doc.Rows = append(doc.Rows, rankRow{
			XMLName:   xml.Name{Local: tag},
			Code:      rankMarkerCode,
			Name:      rankMarkerName,
			Count:     1,
			FullCount: 1,
		})
	} else {
		doc.Rows[marker].Count++
		doc.Rows[marker].FullCount++
	}

	for _, it := range items {
		i, ok := index[it.Code]
		if !ok {
			index[it.Code] = len(doc.Rows)
			doc.Rows = append(doc.Rows, newRankRow(tag, it))
			continue
		}
		r := &doc.Rows[i]
		r.RankSum += it.Rank
		r.FullCount++
		if it.Rank <= models.RankTopCut {
			r.Count++
		}
	}
}

func readRankDoc(path string) (*rankDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc rankDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &doc, nil
}

type rankTotal struct {
	name                      string
	rankSum, count, fullCount int
}

// rankAgg sums rows per code and remembers first-seen order.
type rankAgg struct {
	order  []string
	totals map[string]*rankTotal
}

func newRankAgg() *rankAgg {
	return &rankAgg{totals: make(map[string]*rankTotal)}
}

func (a *rankAgg) add(r rankRow) {
	t, ok := a.totals[r.Code]
	if !ok {
		t = &rankTotal{}
		a.totals[r.Code] = t
		a.order = append(a.order, r.Code)
	}
	t.name = r.Name
	t.rankSum += r.RankSum
	t.count += r.Count
	t.fullCount += r.FullCount
}

// rows returns the aggregate sorted ascending by rank sum, ties in first-seen order.
func (a *rankAgg) rows() []models.RankRow {
	codes := append([]string(nil), a.order...)
	sort.SliceStable(codes, func(i, j int) bool {
		return a.totals[codes[i]].rankSum < a.totals[codes[j]].rankSum
	})
	out := make([]models.RankRow, 0, len(codes))
	for _, c := range codes {
		t := a.totals[c]
		out = append(out, models.RankRow{
			Code:      c,
			Name:      t.name,
			RankSum:   strconv.Itoa(t.rankSum),
			Count:     strconv.Itoa(t.count),
			FullCount: strconv.Itoa(t.fullCount),
		})
	}
	return out
}

// Report aggregates every month file of region for stockTag.
func (s *RankXMLStore) Report(_ context.Context, region, stockTag string) (models.RankReport, error) {
	report := models.RankReport{
		PerMonth:  map[string][]models.RankRow{},
		AllPeriod: map[string][]models.RankRow{},
	}

	if err := models.ValidateRegion(region); err != nil {
		return report, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	periods, err := s.monthFiles(region)
	if err != nil || len(periods) == 0 {
		return report, err
	}

	all := newRankAgg()
	for _, p := range periods {
		doc, err := readRankDoc(filepath.Join(s.dir, region, p+rankFileExt))
		if err != nil {
			return report, err
		}
		month := newRankAgg()
		for _, r := range doc.Rows {
			if r.XMLName.Local != stockTag {
				continue
			}
			month.add(r)
			all.add(r)
		}
		report.PerMonth[p] = month.rows()
	}
	report.AllPeriod[periods[0]+" ~ "+periods[len(periods)-1]] = all.rows()
	return report, nil
}

// monthFiles lists the period keys of region in chronological order.
func (s *RankXMLStore) monthFiles(region string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, region))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list rank files: %w", err)
	}

	type period struct {
		key string
		at  time.Time
	}
	var ps []period
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, rankFileExt) {
			continue
		}
		key := strings.TrimSuffix(name, rankFileExt)
		at, ok := util.ParseMonthKey(key)
		if !ok {
			s.log.Warn("skipping unexpected rank file", logger.String("file", name))
			continue
		}
		ps = append(ps, period{key: key, at: at})
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].at.Before(ps[j].at) })

	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.key
	}
	return out, nil
}
