package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"
)

// handleExport builds an Excel workbook with the full catalog and sends it
// back to the admin as a document.
func (b *Bot) handleExport(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	if !b.isAdmin(msg.From.ID) {
		b.sendMessage(ctx, msg.Chat.ID, "⛔ Admin only command!")
		return
	}

	filePath, err := b.exportItemsToExcel(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Error exporting items to Excel")
		b.sendMessage(ctx, msg.Chat.ID, "❌ Failed to create the export file")
		return
	}

	file, err := os.Open(filePath)
	if err != nil {
		b.logger.Error().Err(err).Str("file_path", filePath).Msg("Error opening export file")
		b.sendMessage(ctx, msg.Chat.ID, "❌ Failed to open the export file")
		return
	}
	defer file.Close()

	doc := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileReader{
		Name:   filepath.Base(filePath),
		Reader: file,
	})
	doc.Caption = "📊 Item catalog export"

	if _, err := b.tgService.Send(ctx, doc); err != nil {
		b.logger.Error().Err(err).Msg("Error sending export document")
		b.sendMessage(ctx, msg.Chat.ID, "❌ Failed to send the export file")
	}
}

// exportItemsToExcel writes two sheets: the items and a flat comment list.
func (b *Bot) exportItemsToExcel(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	items := b.store.List(ctx)

	f := excelize.NewFile()
	defer f.Close()

	itemsSheet := "Items"
	index, err := f.NewSheet(itemsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	writeHeaderRow(f, itemsSheet, []string{"ID", "Price", "Comments", "Description"})
	for i, item := range items {
		row := i + 2
		_ = f.SetCellValue(itemsSheet, cell(1, row), item.ID)
		_ = f.SetCellValue(itemsSheet, cell(2, row), item.Price)
		_ = f.SetCellValue(itemsSheet, cell(3, row), len(item.Comments))
		_ = f.SetCellValue(itemsSheet, cell(4, row), item.Description)
	}
	_ = f.SetColWidth(itemsSheet, "D", "D", 60)

	commentsSheet := "Comments"
	if _, err := f.NewSheet(commentsSheet); err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	writeHeaderRow(f, commentsSheet, []string{"Item ID", "User", "User ID", "Comment"})
	row := 2
	for _, item := range items {
		for _, comment := range item.Comments {
			_ = f.SetCellValue(commentsSheet, cell(1, row), item.ID)
			_ = f.SetCellValue(commentsSheet, cell(2, row), comment.User)
			_ = f.SetCellValue(commentsSheet, cell(3, row), comment.UserID)
			_ = f.SetCellValue(commentsSheet, cell(4, row), comment.Text)
			row++
		}
	}
	_ = f.SetColWidth(commentsSheet, "D", "D", 60)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("items_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(b.config.Exports.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	b.logger.Info().Str("file_path", filePath).Int("items", len(items)).Msg("Excel file created")
	return filePath, nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		c := cell(i+1, 1)
		_ = f.SetCellValue(sheet, c, header)
		_ = f.SetCellStyle(sheet, c, c, style)
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
