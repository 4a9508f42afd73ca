// Package migrations содержит схему хранилища для каждого поддерживаемого диалекта
package migrations

import "embed"

// FS - каталоги postgres/ и mysql/ с файлами golang-migrate
//
//go:embed postgres/*.sql mysql/*.sql
var FS embed.FS
