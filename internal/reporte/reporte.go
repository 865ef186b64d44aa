// Package reporte renders the shopping list and the consolidated alert
// report as plain text from aggregation results. Rendering is pure — the
// caller supplies the lists and the report date.
package reporte

import (
	"fmt"
	"strings"
	"time"

	"caruma/internal/dto"
)

// MargenSeguridad is added on top of the missing quantity when suggesting a
// reorder amount. Fixed at 5 units as a deliberate business rule.
const MargenSeguridad = 5

// CantidadSugerida computes the suggested reorder quantity for a low-stock
// item: the missing pieces to reach the threshold, never negative, plus the
// safety margin.
func CantidadSugerida(piezas, alertaPiezas int) int {
	faltante := alertaPiezas - piezas
	if faltante < 0 {
		faltante = 0
	}
	return faltante + MargenSeguridad
}

// ListaCompras renders the shopping list for the given low-stock items.
func ListaCompras(items []dto.AlertaStockBajoResponse, fecha time.Time) string {
	var b strings.Builder

	b.WriteString("LISTA DE COMPRAS - CARUMA\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	for _, it := range items {
		fmt.Fprintf(&b, "☐ %s\n", it.Nombre)
		fmt.Fprintf(&b, "   Categoría: %s\n", it.Categoria)
		fmt.Fprintf(&b, "   Stock actual: %d | Mínimo: %d\n", it.Piezas, it.AlertaPiezas)
		fmt.Fprintf(&b, "   Cantidad sugerida: %d unidades\n\n", CantidadSugerida(it.Piezas, it.AlertaPiezas))
	}

	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Total de productos: %d\n", len(items))
	fmt.Fprintf(&b, "Fecha: %s\n", fecha.Format("02/01/2006"))

	return b.String()
}

// DatosReporteAlertas bundles everything the alert report needs.
type DatosReporteAlertas struct {
	StockBajo   []dto.AlertaStockBajoResponse
	PorCaducar  []dto.AlertaPorCaducarResponse
	Caducados   []dto.AlertaCaducadoResponse
	VentanaDias int
	Fecha       time.Time
}

// ReporteAlertas renders the full alert report: a summary block followed by
// one itemized section per non-empty alert class.
func ReporteAlertas(d DatosReporteAlertas) string {
	var b strings.Builder
	linea := strings.Repeat("=", 50)
	sub := strings.Repeat("-", 50)

	b.WriteString(linea + "\n")
	b.WriteString("       REPORTE DE ALERTAS - CARUMA\n")
	b.WriteString(linea + "\n")
	fmt.Fprintf(&b, "Fecha: %s\n\n", d.Fecha.Format("02/01/2006"))

	fmt.Fprintf(&b, "RESUMEN\n%s\n", sub)
	fmt.Fprintf(&b, "  Stock Bajo:    %d productos\n", len(d.StockBajo))
	fmt.Fprintf(&b, "  Por Caducar:   %d productos\n", len(d.PorCaducar))
	fmt.Fprintf(&b, "  Caducados:     %d productos\n", len(d.Caducados))
	fmt.Fprintf(&b, "  TOTAL:         %d alertas\n\n", len(d.StockBajo)+len(d.PorCaducar)+len(d.Caducados))

	if len(d.StockBajo) > 0 {
		fmt.Fprintf(&b, "STOCK BAJO\n%s\n", sub)
		for _, it := range d.StockBajo {
			fmt.Fprintf(&b, "  • %s (%s)\n", it.Nombre, it.Categoria)
			fmt.Fprintf(&b, "    Stock: %d / Mínimo: %d\n", it.Piezas, it.AlertaPiezas)
		}
		b.WriteString("\n")
	}

	if len(d.PorCaducar) > 0 {
		fmt.Fprintf(&b, "POR CADUCAR (%d días)\n%s\n", d.VentanaDias, sub)
		for _, it := range d.PorCaducar {
			fmt.Fprintf(&b, "  • %s - Caduca: %s\n", it.Nombre, it.FechaCaducidad)
			fmt.Fprintf(&b, "    Stock: %d piezas (%d días restantes)\n", it.Piezas, it.DiasRestantes)
		}
		b.WriteString("\n")
	}

	if len(d.Caducados) > 0 {
		fmt.Fprintf(&b, "CADUCADOS (URGENTE)\n%s\n", sub)
		for _, it := range d.Caducados {
			fmt.Fprintf(&b, "  • %s - Caducó: %s\n", it.Nombre, it.FechaCaducidad)
			fmt.Fprintf(&b, "    Stock a retirar: %d piezas\n", it.Piezas)
		}
		b.WriteString("\n")
	}

	b.WriteString(linea + "\n")
	b.WriteString("Fin del reporte\n")

	return b.String()
}
