// prepare_data genera las fuentes del motor de decisiones a partir del historial de ventas
// de tienda (columnas Product ID, Category, Inventory Level, Units Sold).
//
// Uso: go run ./cmd/prepare_data [-in retail_store_inventory.csv] [-out .] [-seed 42] [-encoding latin1]
// Escribe: <out>/inventory.csv.gz y <out>/demand.csv
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockout-agent/internal/infrastructure/csvsource"
	"github.com/jhoicas/stockout-agent/pkg/logger"
)

func main() {
	in := flag.String("in", "retail_store_inventory.csv", "historial de ventas (CSV, opcionalmente .gz)")
	outDir := flag.String("out", ".", "directorio de salida")
	seed := flag.Int64("seed", 0, "semilla para capacidad y lead time simulados (0 = según la hora)")
	encoding := flag.String("encoding", "utf8", "codificación del historial: utf8 | latin1")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if err := run(*in, *outDir, *encoding, *seed); err != nil {
		log.Error().Err(err).Str("in", *in).Msg("preparar datos")
		os.Exit(1)
	}
	log.Info().Int64("seed", *seed).Str("out", *outDir).Msg("datos preparados")
}

func run(in, outDir, encoding string, seed int64) error {
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("abrir historial: %w", err)
	}
	defer f.Close()

	rc, err := csvsource.Decompress(in, f)
	if err != nil {
		return err
	}
	defer rc.Close()

	var src io.Reader = rc
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
	case "latin1", "iso-8859-1":
		src = transform.NewReader(rc, charmap.ISO8859_1.NewDecoder())
	default:
		return fmt.Errorf("codificación %q no soportada", encoding)
	}

	inv, dem, err := csvsource.AggregateRetail(src, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("crear %s: %w", outDir, err)
	}

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(csvsource.EncodeInventory(inv)); err != nil {
		return fmt.Errorf("comprimir inventario: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("comprimir inventario: %w", err)
	}
	invPath := filepath.Join(outDir, "inventory.csv.gz")
	if err := os.WriteFile(invPath, gz.Bytes(), 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", invPath, err)
	}

	demPath := filepath.Join(outDir, "demand.csv")
	if err := os.WriteFile(demPath, csvsource.EncodeDemand(dem), 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", demPath, err)
	}

	fmt.Printf("✓ Procesados %d productos\n", len(inv))
	fmt.Printf("✓ Creado %s\n", invPath)
	fmt.Printf("✓ Creado %s\n", demPath)
	return nil
}
