// Package exporter writes the generated marketing data to spreadsheets.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"adcraft/internal/common/errors"
	"adcraft/internal/common/logger"
	"adcraft/internal/models"

	"github.com/xuri/excelize/v2"
)

// Column widths are clamped so a long description cannot blow up the
// sheet layout.
const (
	maxColumnWidthAds    = 50
	maxColumnWidthReport = 120
)

// Exporter writes xlsx workbooks under a fixed output directory.
type Exporter struct {
	outputDir string
	logger    logger.Logger
}

// New creates the output directory if needed and returns an Exporter.
func New(outputDir string, log logger.Logger) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.NewExportFailedError(outputDir, err)
	}
	return &Exporter{outputDir: outputDir, logger: log}, nil
}

func (e *Exporter) resolvePath(filename, prefix string) string {
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	}
	return filepath.Join(e.outputDir, filename)
}

// ExportAds writes the ad variants workbook: one cross-product sheet of
// headline and description pairs, plus per-field sheets with limit checks.
func (e *Exporter) ExportAds(ads []models.AdVariant, headlineMax, descriptionMax int, filename string) (string, error) {
	path := e.resolvePath(filename, "google_ads")

	f := excelize.NewFile()
	defer f.Close()

	// Sheet 1: All Ads (headline x description cross product)
	allAds := [][]interface{}{
		{"Ad Group", "Type", "Headline", "Description", "Path 1", "Path 2", "Keywords", "Notes"},
	}
	for idx, ad := range ads {
		group := fmt.Sprintf("Ad Group %d", idx+1)
		path1, path2 := "", ""
		if len(ad.Paths) > 0 {
			path1 = ad.Paths[0]
		}
		if len(ad.Paths) > 1 {
			path2 = ad.Paths[1]
		}
		keywords := strings.Join(firstN(ad.Keywords, 5), ", ")

		for _, headline := range ad.Headlines {
			for _, description := range ad.Descriptions {
				allAds = append(allAds, []interface{}{
					group, ad.ApproachType, headline, description, path1, path2, keywords, ad.Notes,
				})
			}
		}
	}

	// Sheet 2: Headlines with limit status
	headlines := [][]interface{}{
		{"Ad Group", "Type", "Headline", "Length", "Status"},
	}
	for idx, ad := range ads {
		group := fmt.Sprintf("Ad Group %d", idx+1)
		for _, headline := range ad.Headlines {
			headlines = append(headlines, []interface{}{
				group, ad.ApproachType, headline, runeLen(headline), limitStatus(headline, headlineMax),
			})
		}
	}

	// Sheet 3: Descriptions with limit status
	descriptions := [][]interface{}{
		{"Ad Group", "Type", "Description", "Length", "Status"},
	}
	for idx, ad := range ads {
		group := fmt.Sprintf("Ad Group %d", idx+1)
		for _, description := range ad.Descriptions {
			descriptions = append(descriptions, []interface{}{
				group, ad.ApproachType, description, runeLen(description), limitStatus(description, descriptionMax),
			})
		}
	}

	// Sheet 4: Keywords per ad group
	keywords := [][]interface{}{
		{"Ad Group", "Type", "Keyword"},
	}
	for idx, ad := range ads {
		group := fmt.Sprintf("Ad Group %d", idx+1)
		for _, keyword := range ad.Keywords {
			keywords = append(keywords, []interface{}{group, ad.ApproachType, keyword})
		}
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{"All Ads", allAds},
		{"Headlines", headlines},
		{"Descriptions", descriptions},
		{"Keywords", keywords},
	}

	for i, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.rows, i == 0, maxColumnWidthAds); err != nil {
			return "", errors.NewExportFailedError(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	e.logger.Info("ads exported", map[string]interface{}{"path": path, "variants": len(ads)})
	return path, nil
}

// ExportKeywords writes the keyword list to a single-sheet workbook.
// An empty list degrades to the generic starter keywords.
func (e *Exporter) ExportKeywords(keywords []models.KeywordRecord, filename string) (string, error) {
	path := e.resolvePath(filename, "keywords")

	if len(keywords) == 0 {
		keywords = starterKeywords()
	}

	rows := [][]interface{}{
		{"Keyword", "Match Type", "Search Volume", "Commercial Intent", "Category"},
	}
	for _, kw := range keywords {
		rows = append(rows, keywordRow(kw))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Sheet1", rows, true, maxColumnWidthAds); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	e.logger.Info("keywords exported", map[string]interface{}{"path": path, "count": len(keywords)})
	return path, nil
}

// ExportAnalysis writes the analysis workbook: a general info sheet and a
// statements sheet.
func (e *Exporter) ExportAnalysis(analysis *models.Analysis, filename string) (string, error) {
	path := e.resolvePath(filename, "fab_analysis")

	f := excelize.NewFile()
	defer f.Close()

	general := [][]interface{}{
		{"Product Name", "Target Audience", "Unique Value Proposition"},
		{analysis.ProductName, analysis.TargetAudience, analysis.UniqueValueProposition},
	}
	if err := writeSheet(f, "General Info", general, true, maxColumnWidthReport); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	if err := writeSheet(f, "FAB Statements", statementRows(analysis), false, maxColumnWidthReport); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	e.logger.Info("analysis exported", map[string]interface{}{"path": path})
	return path, nil
}

// ExportReport writes the complete report: website info, analysis, ads
// and keywords in one workbook.
func (e *Exporter) ExportReport(report *models.Report, filename string) (string, error) {
	path := e.resolvePath(filename, "complete_report")

	f := excelize.NewFile()
	defer f.Close()

	site := [][]interface{}{
		{"URL", "Title", "Description", "Domain"},
	}
	if report.Website != nil {
		site = append(site, []interface{}{
			report.Website.URL, report.Website.Title, report.Website.Description, report.Website.Domain,
		})
	}
	if err := writeSheet(f, "Website Info", site, true, maxColumnWidthReport); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}
	// Wider fixed columns make the single info row readable.
	f.SetColWidth("Website Info", "A", "A", 20)
	f.SetColWidth("Website Info", "B", "B", 50)
	f.SetColWidth("Website Info", "C", "C", 100)
	f.SetColWidth("Website Info", "D", "D", 20)

	var statements [][]interface{}
	if report.Analysis != nil {
		statements = statementRows(report.Analysis)
	} else {
		statements = [][]interface{}{{"Feature", "Advantage", "Benefit", "BAB Format"}}
	}
	if err := writeSheet(f, "FAB Analysis", statements, false, maxColumnWidthReport); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	adsRows := [][]interface{}{
		{"Ad Group", "Type", "Headline", "Description", "Path 1", "Keywords"},
	}
	for idx, ad := range report.Ads {
		group := fmt.Sprintf("Ad Group %d", idx+1)
		path1 := ""
		if len(ad.Paths) > 0 {
			path1 = ad.Paths[0]
		}
		keywords := strings.Join(firstN(ad.Keywords, 3), ", ")
		for _, headline := range ad.Headlines {
			for _, description := range ad.Descriptions {
				adsRows = append(adsRows, []interface{}{
					group, ad.ApproachType, headline, description, path1, keywords,
				})
			}
		}
	}
	if err := writeSheet(f, "Google Ads", adsRows, false, maxColumnWidthReport); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	keywordRows := [][]interface{}{
		{"Keyword", "Match Type", "Search Volume", "Commercial Intent", "Category"},
	}
	for _, kw := range report.Keywords {
		keywordRows = append(keywordRows, keywordRow(kw))
	}
	if err := writeSheet(f, "Keywords", keywordRows, false, maxColumnWidthReport); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}

	e.logger.Info("complete report exported", map[string]interface{}{"path": path})
	return path, nil
}

// writeSheet fills one sheet with rows and sizes its columns by content.
// replaceDefault renames the default sheet instead of adding a new one.
func writeSheet(f *excelize.File, name string, rows [][]interface{}, replaceDefault bool, maxWidth float64) error {
	if replaceDefault {
		if name != "Sheet1" {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		}
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	widths := make([]int, 0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
		for col, value := range row {
			length := runeLen(fmt.Sprint(value))
			if col >= len(widths) {
				widths = append(widths, 0)
			}
			if length > widths[col] {
				widths[col] = length
			}
		}
	}

	for col, width := range widths {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		adjusted := float64(width + 2)
		if adjusted > maxWidth {
			adjusted = maxWidth
		}
		if err := f.SetColWidth(name, colName, colName, adjusted); err != nil {
			return err
		}
	}

	return nil
}

func statementRows(analysis *models.Analysis) [][]interface{} {
	rows := [][]interface{}{
		{"Feature", "Advantage", "Benefit", "BAB Format"},
	}
	for _, statement := range analysis.FABStatements {
		rows = append(rows, []interface{}{
			statement.Feature, statement.Advantage, statement.Benefit, statement.BAB(),
		})
	}
	return rows
}

func keywordRow(kw models.KeywordRecord) []interface{} {
	return []interface{}{
		kw.Keyword, string(kw.MatchType), string(kw.SearchVolume), string(kw.CommercialIntent), string(kw.Category),
	}
}

func starterKeywords() []models.KeywordRecord {
	return []models.KeywordRecord{
		{Keyword: "buy", MatchType: models.MatchPhrase, SearchVolume: models.VolumeHigh, CommercialIntent: models.IntentHigh, Category: models.CategoryTransactional},
		{Keyword: "price", MatchType: models.MatchPhrase, SearchVolume: models.VolumeHigh, CommercialIntent: models.IntentHigh, Category: models.CategoryTransactional},
		{Keyword: "order", MatchType: models.MatchPhrase, SearchVolume: models.VolumeMedium, CommercialIntent: models.IntentHigh, Category: models.CategoryTransactional},
		{Keyword: "services", MatchType: models.MatchBroad, SearchVolume: models.VolumeHigh, CommercialIntent: models.IntentMedium, Category: models.CategoryInformational},
	}
}

func limitStatus(value string, max int) string {
	if runeLen(value) <= max {
		return "OK"
	}
	return "TOO LONG"
}

func runeLen(s string) int {
	return len([]rune(s))
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
