// Package memory implementa los puertos de repositorio en memoria. Lo usan los tests de casos
// de uso y de HTTP; todas las estructuras son seguras para uso concurrente.
package memory
