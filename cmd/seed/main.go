// seed genera un script SQL para poblar el catálogo inicial (categorías y
// productos) a partir de un CSV exportado de un POS anterior. Muchos de esos
// exports vienen en ISO-8859-1, por eso la conversión a UTF-8.
//
// Uso: go run ./cmd/seed [-encoding latin1|utf8] [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/003_seed_catalog.sql
//
// Columnas esperadas (separadas por ';', con cabecera):
//
//	categoria;nombre;descripcion;precio_venta;precio_costo;cantidad;stock_minimo
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productRow struct {
	category    string
	name        string
	description string
	salePrice   decimal.Decimal
	costPrice   decimal.Decimal
	quantity    int
	minQuantity int
}

func main() {
	encoding := flag.String("encoding", "latin1", "codificación del CSV: latin1 o utf8")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var src io.Reader = f
	switch strings.ToLower(*encoding) {
	case "latin1", "iso-8859-1", "iso8859-1":
		src = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case "utf8", "utf-8":
	default:
		fmt.Fprintf(os.Stderr, "Codificación no soportada: %s\n", *encoding)
		os.Exit(1)
	}

	r := csv.NewReader(src)
	r.Comma = ';'
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "El CSV no tiene filas de datos")
		os.Exit(1)
	}

	// Categorías únicas y filas de producto validadas
	catSet := make(map[string]struct{})
	var products []productRow
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 7 {
			fmt.Fprintf(os.Stderr, "Línea %d: se esperaban 7 columnas, hay %d\n", line, len(rec))
			os.Exit(1)
		}
		row := productRow{
			category:    strings.TrimSpace(rec[0]),
			name:        strings.TrimSpace(rec[1]),
			description: strings.TrimSpace(rec[2]),
		}
		if row.category == "" || row.name == "" {
			continue
		}
		if row.salePrice, err = decimal.NewFromString(strings.TrimSpace(rec[3])); err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: precio_venta inválido: %v\n", line, err)
			os.Exit(1)
		}
		if row.costPrice, err = decimal.NewFromString(strings.TrimSpace(rec[4])); err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: precio_costo inválido: %v\n", line, err)
			os.Exit(1)
		}
		if row.quantity, err = strconv.Atoi(strings.TrimSpace(rec[5])); err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: cantidad inválida: %v\n", line, err)
			os.Exit(1)
		}
		if row.minQuantity, err = strconv.Atoi(strings.TrimSpace(rec[6])); err != nil {
			fmt.Fprintf(os.Stderr, "Línea %d: stock_minimo inválido: %v\n", line, err)
			os.Exit(1)
		}
		catSet[row.category] = struct{}{}
		products = append(products, row)
	}

	// Ordenar categorías por nombre para salida estable
	var categories []string
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "003_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de categorías y productos\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + " con cmd/seed\n\n")

	out.WriteString("-- 1. Categorías\n")
	out.WriteString("INSERT INTO categories (id, name) VALUES\n")
	for i, c := range categories {
		sep := ","
		if i == len(categories)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s')%s\n", uuid.NewString(), escapeSQL(c), sep)
	}
	out.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")

	// 2. Productos con subquery a la categoría; NOT EXISTS evita duplicar
	// en ejecuciones repetidas (products no tiene unique sobre name).
	out.WriteString("-- 2. Productos\n")
	for _, p := range products {
		fmt.Fprintf(out, "INSERT INTO products (id, name, description, category_id, sale_price, cost_price, quantity, min_quantity)\n")
		fmt.Fprintf(out, "SELECT '%s', '%s', '%s', c.id, %s, %s, %d, %d\n",
			uuid.NewString(), escapeSQL(p.name), escapeSQL(p.description),
			p.salePrice.StringFixed(2), p.costPrice.StringFixed(2), p.quantity, p.minQuantity)
		fmt.Fprintf(out, "FROM categories c WHERE c.name = '%s'\n", escapeSQL(p.category))
		fmt.Fprintf(out, "AND NOT EXISTS (SELECT 1 FROM products WHERE name = '%s');\n", escapeSQL(p.name))
	}

	fmt.Printf("Generado %s: %d categorías, %d productos\n", outPath, len(categories), len(products))
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
