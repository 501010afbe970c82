package main

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportColumns mirrors the spreadsheet layout the dashboard always exported.
var exportColumns = []struct {
	header string
	width  float64
}{
	{"N°", 5},
	{"ID", 8},
	{"Nom du fichier", 25},
	{"Chemin complet", 35},
	{"ID Personnalisé", 15},
	{"L1 (mm)", 10},
	{"L2 (mm)", 10},
	{"L3 (mm)", 10},
	{"L4 (mm)", 10},
	{"L5 (mm)", 10},
	{"W1 (mm)", 10},
	{"W2 (mm)", 10},
	{"W3 (mm)", 10},
	{"Statut", 12},
	{"Date de création", 15},
	{"Dernière modification", 18},
}

// exportImages streams the record table as an XLSX workbook. An optional
// sent=true|false query filters the export to a subset.
func (app *App) exportImages(c *gin.Context) {
	var (
		images []ProcessedImage
		err    error
	)
	switch c.Query("sent") {
	case "true":
		images, err = app.store.ListBySent(true)
	case "false":
		images, err = app.store.ListBySent(false)
	default:
		images, err = app.store.ListAll()
	}
	if err != nil {
		app.log.Error("export query failed", zap.Error(err))
		RespondStorageError(c, "Erreur lors de la récupération des images", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Images"
	f.SetSheetName("Sheet1", sheet)

	headers := make([]interface{}, len(exportColumns))
	for i, col := range exportColumns {
		headers[i] = col.header
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, col.width)
	}
	f.SetSheetRow(sheet, "A1", &headers)

	for i, img := range images {
		status := "Nouveau"
		if img.CustomID != nil && *img.CustomID != "" {
			status = "ID Assigné"
		}
		customID := ""
		if img.CustomID != nil {
			customID = *img.CustomID
		}
		row := []interface{}{
			i + 1,
			img.ID,
			img.Filename(),
			img.ImagePath,
			customID,
			round2(img.L1), round2(img.L2), round2(img.L3), round2(img.L4), round2(img.L5),
			round2(img.W1), round2(img.W2), round2(img.W3),
			status,
			img.CreatedAt.Format("02/01/2006"),
			img.UpdatedAt.Format("02/01/2006"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheet, cell, &row)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		app.log.Error("export workbook failed", zap.Error(err))
		RespondInternalError(c, "Erreur lors de l'export")
		return
	}

	filename := fmt.Sprintf("images-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, exportContentType, buf.Bytes())
}

// round2 rounds a measurement to two decimals for the spreadsheet.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
