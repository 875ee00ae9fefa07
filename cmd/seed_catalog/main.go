// seed_catalog genera el script SQL que puebla items, bom_lines y zones a partir de un
// XML de catálogo exportado por el ERP (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/Catalogo.xml]
// Por defecto busca Catalogo.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Zonas []zona `xml:"zonas>zona"`
	Items []item `xml:"items>item"`
}

type zona struct {
	ID     string `xml:"id,attr"`
	Nombre string `xml:"nombre,attr"`
	Tipo   string `xml:"tipo,attr"`
	Padre  string `xml:"padre,attr"`
}

type item struct {
	ID          string       `xml:"id,attr"`
	Nombre      string       `xml:"nombre,attr"`
	Tipo        string       `xml:"tipo,attr"`
	UOM         string       `xml:"uom,attr"`
	Componentes []componente `xml:"componente"`
}

type componente struct {
	Tipo     string `xml:"tipo,attr"`
	Ref      string `xml:"ref,attr"`
	Cantidad string `xml:"cantidad,attr"`
	UOM      string `xml:"uom,attr"`
}

func main() {
	xmlPath := "Catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	stats, err := writeSQL(out, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d zonas, %d ítems, %d líneas de especificación (%d omitidas)\n",
		outPath, stats.zones, stats.items, stats.lines, stats.skipped)
}

func decode(r io.Reader) (*catalogo, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		if strings.EqualFold(charset, "windows-1252") {
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

type seedStats struct {
	zones, items, lines, skipped int
}

// writeSQL escribe primero las físicas, luego las virtuales, luego ítems y especificaciones,
// para que las llaves foráneas existan al insertar.
func writeSQL(w io.Writer, c *catalogo) (seedStats, error) {
	var st seedStats
	var b strings.Builder
	b.WriteString("-- Catálogo de producción (ítems, especificaciones y zonas)\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")

	b.WriteString("-- 1. Zonas\n")
	for _, physical := range []bool{true, false} {
		for _, z := range c.Zonas {
			id, name, tipo := strings.TrimSpace(z.ID), strings.TrimSpace(z.Nombre), strings.TrimSpace(z.Tipo)
			if id == "" || name == "" || (tipo != entity.ZoneTypePhysical && tipo != entity.ZoneTypeVirtual) {
				continue
			}
			if (tipo == entity.ZoneTypePhysical) != physical {
				continue
			}
			parent := "NULL"
			if tipo == entity.ZoneTypeVirtual {
				if strings.TrimSpace(z.Padre) == "" {
					st.skipped++
					continue
				}
				parent = "'" + escapeSQL(strings.TrimSpace(z.Padre)) + "'"
			}
			fmt.Fprintf(&b, "INSERT INTO zones (id, name, type, parent_id) VALUES ('%s', '%s', '%s', %s)\n",
				escapeSQL(id), escapeSQL(name), tipo, parent)
			b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;\n")
			st.zones++
		}
	}

	b.WriteString("\n-- 2. Ítems\n")
	for i, it := range c.Items {
		id, kind := strings.TrimSpace(it.ID), strings.TrimSpace(it.Tipo)
		if id == "" || !entity.ValidItemKind(kind) {
			st.skipped++
			continue
		}
		uom := strings.TrimSpace(it.UOM)
		if uom == "" {
			uom = "und"
		}
		fmt.Fprintf(&b, "INSERT INTO items (id, name, kind, uom, sort_order) VALUES ('%s', '%s', '%s', '%s', %d)\n",
			escapeSQL(id), escapeSQL(strings.TrimSpace(it.Nombre)), kind, escapeSQL(uom), i+1)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, uom = EXCLUDED.uom, sort_order = EXCLUDED.sort_order;\n")
		st.items++
	}

	b.WriteString("\n-- 3. Especificaciones (reemplazo completo por ítem)\n")
	for _, it := range c.Items {
		if len(it.Componentes) == 0 {
			continue
		}
		parentID := strings.TrimSpace(it.ID)
		parent := escapeSQL(parentID)
		fmt.Fprintf(&b, "DELETE FROM bom_lines WHERE parent_item_id = '%s';\n", parent)
		n := 0
		for _, comp := range it.Componentes {
			qty, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(comp.Cantidad), ",", "."))
			line := entity.BomLine{
				ParentItemID: parentID,
				Kind:         strings.TrimSpace(comp.Tipo),
				RefItemID:    strings.TrimSpace(comp.Ref),
				QtyPerUnit:   qty,
				UOM:          strings.TrimSpace(comp.UOM),
			}
			if err != nil || !line.Valid() {
				st.skipped++
				continue
			}
			n++
			if line.UOM == "" {
				line.UOM = "und"
			}
			fmt.Fprintf(&b, "INSERT INTO bom_lines (parent_item_id, line_no, kind, ref_item_id, qty_per_unit, uom) VALUES ('%s', %d, '%s', '%s', %s, '%s');\n",
				parent, n, line.Kind, escapeSQL(line.RefItemID), line.QtyPerUnit.String(), escapeSQL(line.UOM))
			st.lines++
		}
	}

	_, err := io.WriteString(w, b.String())
	return st, err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
