// token imprime un Bearer token firmado con JWT_SECRET para las rutas de escritura de la API.
//
// Uso: go run ./cmd/token -sub planner-1 [-role operator|viewer]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stockout-agent/pkg/config"
	"github.com/jhoicas/stockout-agent/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "", "identificador del operador")
	role := flag.String("role", jwt.RoleOperator, "rol: operator | viewer")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.JWT.AuthEnabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET vacío: la autenticación está desactivada")
		os.Exit(1)
	}
	if *role != jwt.RoleOperator && *role != jwt.RoleViewer {
		fmt.Fprintf(os.Stderr, "rol %q desconocido\n", *role)
		os.Exit(2)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *sub, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
