// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolver

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
)

// UnknownFileType is reported when no classifier recognizes the file.
const UnknownFileType = "unknown"

// DetectFileType classifies a file by name first, then by sniffing its
// content, using the chroma lexer registry. Classification is best
// effort; failures degrade to UnknownFileType rather than erroring.
func DetectFileType(path, content string) string {
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return lexer.Config().Name
	}
	if lexer := lexers.Analyse(content); lexer != nil {
		return lexer.Config().Name
	}
	return UnknownFileType
}
