package main

import (
	"context"
	"fmt"
	"os"
	"time"

	mailgun "github.com/mailgun/mailgun-go/v4"
	excelize "github.com/xuri/excelize/v2"
)

const reportSheet = "Sheet1"

const headerStyle = `{
	"border": [{"type":"1", "style": 1, "color":"#000000"}],
	"fill": {"type":"pattern", "color":["#90C225"], "pattern":1},
	"font": {"family":"Calibri", "size":8.0, "bold":true, "color":"#FFFFFF"},
	"alignment": {"wrap_text":true, "horizontal":"center", "vertical":"center"}
}`

const bodyStyle = `{
	"border": [{"type":"1", "style":1, "color": "#000000"}],
	"font": {"family":"Calibri", "size":10.0, "color":"#000000"},
	"alignment": {"wrap_text":false, "horizontal":"left", "vertical":"top"}
}`

type reportCol struct {
	col   string
	name  string
	width float64
}

// ReleaseTable accumulates rows into a styled single-sheet workbook.
type ReleaseTable struct {
	header  []reportCol
	file    *excelize.File
	lastRow int
	path    string
}

func newReleaseTable(path string, header []reportCol) (*ReleaseTable, error) {
	t := &ReleaseTable{
		header:  header,
		file:    excelize.NewFile(),
		lastRow: 1,
		path:    path,
	}
	for _, h := range t.header {
		if err := t.file.SetCellValue(reportSheet, h.col+"1", h.name); err != nil {
			return nil, fmt.Errorf("set header cell: %w", err)
		}
		if err := t.file.SetColWidth(reportSheet, h.col, h.col, h.width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	style, err := t.file.NewStyle(headerStyle)
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	first := t.header[0].col + "1"
	last := t.header[len(t.header)-1].col + "1"
	if err := t.file.SetCellStyle(reportSheet, first, last, style); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}
	return t, nil
}

func (t *ReleaseTable) AddRow(row []string) error {
	t.lastRow++
	for i, cell := range row {
		axis := fmt.Sprintf("%s%d", t.header[i].col, t.lastRow)
		if err := t.file.SetCellValue(reportSheet, axis, cell); err != nil {
			return fmt.Errorf("set cell %s: %w", axis, err)
		}
	}
	return nil
}

// Write styles the body and saves the workbook at the table's path.
func (t *ReleaseTable) Write() error {
	style, err := t.file.NewStyle(bodyStyle)
	if err != nil {
		return fmt.Errorf("create body style: %w", err)
	}
	last := fmt.Sprintf("%s%d", t.header[len(t.header)-1].col, t.lastRow)
	if err := t.file.SetCellStyle(reportSheet, "A2", last, style); err != nil {
		return fmt.Errorf("apply body style: %w", err)
	}
	if err := t.file.SaveAs(t.path); err != nil {
		return fmt.Errorf("write report %s: %w", t.path, err)
	}
	fmt.Fprintf(os.Stderr, "INFO: report saved to %s\n", t.path)
	return nil
}

// writeVersionsReport exports the releases table to an Excel workbook,
// same columns and fallbacks as the text renderer.
func writeVersionsReport(path string, versions []Version) error {
	t, err := newReleaseTable(path, []reportCol{
		{col: "A", name: "ID", width: 15},
		{col: "B", name: "Name", width: 30},
		{col: "C", name: "Released", width: 10},
		{col: "D", name: "Release Date", width: 15},
		{col: "E", name: "Description", width: 50},
	})
	if err != nil {
		return err
	}
	for _, v := range versions {
		released := "No"
		if v.Released() {
			released = "Yes"
		}
		row := []string{v.ID(), v.Name(), released, v.ReleaseDate(), v.Description()}
		if err := t.AddRow(row); err != nil {
			return err
		}
	}
	return t.Write()
}

// writeIssuesReport exports the issues table to an Excel workbook.
func writeIssuesReport(path string, issues []Issue) error {
	t, err := newReleaseTable(path, []reportCol{
		{col: "A", name: "Key", width: 15},
		{col: "B", name: "Type", width: 15},
		{col: "C", name: "Status", width: 15},
		{col: "D", name: "Priority", width: 10},
		{col: "E", name: "Summary", width: 70},
	})
	if err != nil {
		return err
	}
	for _, issue := range issues {
		row := []string{issue.Key(), issue.Type(), issue.Status(), issue.Priority(), issue.Summary()}
		if err := t.AddRow(row); err != nil {
			return err
		}
	}
	return t.Write()
}

// mailReport sends the written workbook as a Mailgun attachment.
// Mailgun settings come from the environment, same names as the .env
// file: MAILGUN_DOMAIN, MAILGUN_KEY, EMAIL_SENDER.
func mailReport(path, subject, recipients string) error {
	domain := os.Getenv("MAILGUN_DOMAIN")
	key := os.Getenv("MAILGUN_KEY")
	sender := os.Getenv("EMAIL_SENDER")
	if domain == "" || key == "" || sender == "" {
		return fmt.Errorf("mail needs MAILGUN_DOMAIN, MAILGUN_KEY and EMAIL_SENDER set")
	}

	mg := mailgun.NewMailgun(domain, key)
	message := mg.NewMessage(sender, subject, "Release report attached.", sender)
	message.AddBCC(recipients)
	message.AddAttachment(path)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, _, err := mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	fmt.Fprintf(os.Stderr, "INFO: report mailed to %s\n", recipients)
	return nil
}
