package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jwhan/playgrid-backend/config"
	"github.com/jwhan/playgrid-backend/internal/app/model"
	"github.com/jwhan/playgrid-backend/internal/db"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Expected sheet columns: title, description, price, release_date
// (2006-01-02), cover_url, tags (comma separated), devs (comma separated).
const expectedColumns = 7

func main() {
	reset := flag.Bool("reset", false, "truncate catalog tables before importing")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: go run cmd/seed/main.go [--reset] <xlsx_file_path>")
	}
	filePath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	gdb, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if *reset {
		fmt.Print("This will truncate the game catalog. Proceed? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
		if err := resetCatalog(gdb); err != nil {
			log.Fatal("Failed to reset catalog:", err)
		}
		fmt.Println("Catalog tables truncated.")
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	games, tagsByGame, devsByGame, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	fmt.Printf("Total games to import: %d\n", len(games))

	imported := 0
	for i := range games {
		if err := importGame(gdb, &games[i], tagsByGame[games[i].Title], devsByGame[games[i].Title]); err != nil {
			fmt.Printf("Skipping %q: %v\n", games[i].Title, err)
			continue
		}
		imported++
	}

	fmt.Printf("Import completed: %d of %d games\n", imported, len(games))
}

// resetCatalog truncates the catalog tables. Identifiers go through
// pq.QuoteIdentifier so the statement stays valid even if a table name ever
// needs quoting.
func resetCatalog(gdb *gorm.DB) error {
	tables := []string{
		"game_tags",
		"game_devs",
		"game_news",
		"achievements",
		"events",
		"games",
	}
	quoted := make([]string, len(tables))
	for i, t := range tables {
		quoted[i] = pq.QuoteIdentifier(t)
	}
	stmt := fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(quoted, ", "))
	return gdb.Exec(stmt).Error
}

func readCatalogFromXLSX(filePath string) ([]model.Game, map[string][]string, map[string][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var games []model.Game
	tagsByGame := make(map[string][]string)
	devsByGame := make(map[string][]string)
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) < expectedColumns {
			skipped++
			continue
		}

		title := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])
		releaseStr := strings.TrimSpace(row[3])
		coverURL := strings.TrimSpace(row[4])
		tagList := strings.TrimSpace(row[5])
		devList := strings.TrimSpace(row[6])

		if title == "" || seen[title] {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}

		releaseDate, err := time.Parse("2006-01-02", releaseStr)
		if err != nil {
			skipped++
			continue
		}

		seen[title] = true
		games = append(games, model.Game{
			Title:       title,
			Description: description,
			Price:       price,
			ReleaseDate: releaseDate,
			CoverURL:    coverURL,
		})
		tagsByGame[title] = splitList(tagList)
		devsByGame[title] = splitList(devList)
	}

	fmt.Printf("Parsed %d games, skipped %d rows\n", len(games), skipped)
	return games, tagsByGame, devsByGame, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// importGame writes one game and its tag/dev links in a single transaction.
// Tags and devs are created on demand; existing ones are reused.
func importGame(gdb *gorm.DB, game *model.Game, tagNames, devNames []string) error {
	return db.RunAtomically(gdb, func(tx *gorm.DB) error {
		if err := tx.Create(game).Error; err != nil {
			return err
		}

		for _, name := range tagNames {
			var tag model.Tag
			err := tx.Where("tag_name = ?", name).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = model.Tag{Name: name, Category: "genre"}
				err = tx.Create(&tag).Error
			}
			if err != nil {
				return err
			}
			if err := tx.Create(&model.GameTag{GameID: game.ID, TagID: tag.ID}).Error; err != nil {
				return err
			}
		}

		for _, name := range devNames {
			var dev model.Dev
			err := tx.Where("dev_name = ?", name).First(&dev).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				dev = model.Dev{Name: name, Type: model.DevTypeBoth}
				err = tx.Create(&dev).Error
			}
			if err != nil {
				return err
			}
			if err := tx.Create(&model.GameDev{GameID: game.ID, DevID: dev.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
