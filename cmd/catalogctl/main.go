// catalogctl tareas de administración del catálogo: migrar el esquema, cargar productos
// desde un feed XML y exportar el catálogo.
//
// Uso:
//
//	go run ./cmd/catalogctl migrate
//	go run ./cmd/catalogctl seed productos.xml
//	go run ./cmd/catalogctl export --format pdf --out catalogo.pdf
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "catalogctl: %v\n", err)
		os.Exit(1)
	}
}
