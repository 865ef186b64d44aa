package infra

// pdf.go — PDF rendering of the alert report and the shopping list using
// go-pdf/fpdf. A4 portrait, one section per alert class, matching the
// structure of the plain-text reports. Output files are written to
// storagePath and the absolute path is returned.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"caruma/internal/dto"
	"caruma/internal/reporte"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin   = 15.0
	pdfLineH    = 5.5
	pdfSectionH = 7.0
)

func nuevoPDF() (*fpdf.Fpdf, float64) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	return pdf, pageW - 2*pdfMargin
}

func encabezado(pdf *fpdf.Fpdf, contentW float64, titulo string, fecha time.Time) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "CARUMA", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, titulo, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha: "+fecha.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	pdf.Line(pdfMargin, pdf.GetY(), pdfMargin+contentW, pdf.GetY())
	pdf.Ln(3)
}

func tituloSeccion(pdf *fpdf.Fpdf, contentW float64, titulo string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, pdfSectionH, titulo, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// GenerarReporteAlertasPDF renders the consolidated alert report.
func GenerarReporteAlertasPDF(d reporte.DatosReporteAlertas, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("reporte_alertas_%s.pdf", d.Fecha.Format("2006-01-02")))

	pdf, contentW := nuevoPDF()
	encabezado(pdf, contentW, "Reporte de Alertas de Inventario", d.Fecha)

	// Summary block
	tituloSeccion(pdf, contentW, "Resumen")
	pdf.SetFont("Helvetica", "", 10)
	total := len(d.StockBajo) + len(d.PorCaducar) + len(d.Caducados)
	pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("Stock bajo: %d productos", len(d.StockBajo)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("Por caducar: %d productos", len(d.PorCaducar)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("Caducados: %d productos", len(d.Caducados)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("Total: %d alertas", total), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(d.StockBajo) > 0 {
		tituloSeccion(pdf, contentW, "Stock Bajo")
		pdf.SetFont("Helvetica", "", 9)
		for _, it := range d.StockBajo {
			pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("- %s (%s)", it.Nombre, it.Categoria), "", 1, "L", false, 0, "")
			pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("   Stock: %d / Mínimo: %d", it.Piezas, it.AlertaPiezas), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(d.PorCaducar) > 0 {
		tituloSeccion(pdf, contentW, fmt.Sprintf("Por Caducar (%d días)", d.VentanaDias))
		pdf.SetFont("Helvetica", "", 9)
		for _, it := range d.PorCaducar {
			pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("- %s, caduca: %s", it.Nombre, it.FechaCaducidad), "", 1, "L", false, 0, "")
			pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("   Stock: %d piezas (%d días restantes)", it.Piezas, it.DiasRestantes), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(d.Caducados) > 0 {
		tituloSeccion(pdf, contentW, "Caducados (urgente)")
		pdf.SetFont("Helvetica", "", 9)
		for _, it := range d.Caducados {
			pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("- %s, caducó: %s", it.Nombre, it.FechaCaducidad), "", 1, "L", false, 0, "")
			pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("   Stock a retirar: %d piezas", it.Piezas), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerarListaComprasPDF renders the shopping list with suggested reorder
// quantities.
func GenerarListaComprasPDF(items []dto.AlertaStockBajoResponse, fecha time.Time, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("lista_compras_%s.pdf", fecha.Format("2006-01-02")))

	pdf, contentW := nuevoPDF()
	encabezado(pdf, contentW, "Lista de Compras", fecha)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range items {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, pdfLineH, "[ ] "+it.Nombre, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("     Categoría: %s", it.Categoria), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("     Stock actual: %d | Mínimo: %d", it.Piezas, it.AlertaPiezas), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("     Cantidad sugerida: %d unidades", reporte.CantidadSugerida(it.Piezas, it.AlertaPiezas)), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.Ln(2)
	pdf.Line(pdfMargin, pdf.GetY(), pdfMargin+contentW, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, pdfLineH, fmt.Sprintf("Total de productos: %d", len(items)), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
