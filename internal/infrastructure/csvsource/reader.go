// Package csvsource carga los datos de inventario y demanda desde archivos CSV
// (el de inventario puede venir comprimido con gzip).
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockout-agent/internal/domain"
)

// Columnas obligatorias de cada fuente.
var (
	InventoryColumns = []string{"product_id", "product_name", "current_stock", "max_capacity", "lead_time_days"}
	DemandColumns    = []string{"product_id", "daily_demand"}
)

// openFile abre el archivo y lo descomprime si termina en .gz.
func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	rc, err := Decompress(path, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

// Decompress envuelve r con un lector gzip si name termina en .gz. Cerrar el resultado cierra r
// cuando r es un io.Closer.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	if !strings.HasSuffix(strings.ToLower(name), ".gz") {
		return nopCloser(r), nil
	}
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s no es gzip válido: %v", domain.ErrSchema, name, err)
	}
	return &gzipFile{Reader: zr, src: r}, nil
}

func nopCloser(r io.Reader) io.ReadCloser {
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

type gzipFile struct {
	*gzip.Reader
	src io.Reader
}

func (g *gzipFile) Close() error {
	if c, ok := g.src.(io.Closer); ok {
		return errors.Join(g.Reader.Close(), c.Close())
	}
	return g.Reader.Close()
}

// table filas de un CSV ya validado contra las columnas obligatorias.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) get(row []string, col string) string {
	return strings.TrimSpace(row[t.index[col]])
}

// readTable lee un CSV con cabecera. Las columnas se buscan por nombre (orden libre, extras ignoradas).
// Un BOM UTF-8 inicial, típico de exportaciones de Excel, se descarta.
func readTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: archivo vacío, faltan columnas %s", domain.ErrSchema, strings.Join(required, ", "))
		}
		return nil, fmt.Errorf("%w: cabecera ilegible: %v", domain.ErrSchema, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan columnas %s", domain.ErrSchema, strings.Join(missing, ", "))
	}

	t := &table{index: index}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrSchema, line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		for _, col := range required {
			if t.index[col] >= len(rec) {
				return nil, fmt.Errorf("%w: fila %d: falta valor para %s", domain.ErrSchema, line, col)
			}
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// parseCount interpreta un entero no negativo; acepta "12.0" (algunas exportaciones escriben así columnas enteras con nulos).
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("valor negativo %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q no es un entero", s)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%q no es un entero no negativo", s)
	}
	return int(f), nil
}

func parseRate(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q no es un número", s)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q no es una demanda válida", s)
	}
	return f, nil
}
