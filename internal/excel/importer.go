package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/lexibot/internal/database"
	"github.com/example/lexibot/pkg/models"
)

// ImportConfig defines how deck files map onto the card catalog
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
	DefaultTopicName string // Topic used when a row has none
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:        "Sheet1",
		StartRow:         2, // skip header
		DefaultTopicName: "General",
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// Columns: A word, B translation, C example, D topic, E difficulty, F pronunciation.
type deckRow struct {
	word          string
	translation   string
	example       string
	topic         string
	difficulty    int
	pronunciation string
}

// ImportCards imports cards from an Excel or CSV deck file
func ImportCards(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", config.SheetName, err)
	}

	result := &ImportResult{}
	for i, cells := range rows {
		if i+1 < config.StartRow {
			continue
		}
		importRow(parseCells(cells), config, result)
	}
	return result, nil
}

func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	line := 0
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line+1, err))
			line++
			continue
		}
		line++
		if line < config.StartRow {
			continue
		}
		importRow(parseCells(cells), config, result)
	}
	return result, nil
}

func parseCells(cells []string) deckRow {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	difficulty := 1
	if n, err := strconv.Atoi(get(4)); err == nil && n >= 1 && n <= 5 {
		difficulty = n
	}

	return deckRow{
		word:          get(0),
		translation:   get(1),
		example:       get(2),
		topic:         get(3),
		difficulty:    difficulty,
		pronunciation: get(5),
	}
}

func importRow(row deckRow, config ImportConfig, result *ImportResult) {
	result.TotalProcessed++

	if row.word == "" || row.translation == "" {
		result.Skipped++
		return
	}

	topicName := row.topic
	if topicName == "" {
		topicName = config.DefaultTopicName
	}

	topicRepo := database.NewTopicRepository()
	cardRepo := database.NewCardRepository()

	topic, err := topicRepo.GetOrCreateByName(topicName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.word, err))
		return
	}

	existing, err := cardRepo.GetByWordAndTopic(row.word, topic.ID)
	if err == database.ErrNotFound {
		card := &models.Card{
			Word:          row.word,
			Translation:   row.translation,
			Example:       row.example,
			TopicID:       topic.ID,
			Difficulty:    row.difficulty,
			Pronunciation: row.pronunciation,
		}
		if err := cardRepo.Create(card); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.word, err))
			return
		}
		result.Created++
		return
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.word, err))
		return
	}

	existing.Translation = row.translation
	existing.Example = row.example
	existing.Difficulty = row.difficulty
	existing.Pronunciation = row.pronunciation
	if err := cardRepo.Update(existing); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.word, err))
		return
	}
	result.Updated++
}
