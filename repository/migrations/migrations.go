// Package migrations 内嵌卡牌目录的建表脚本
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
