package lexer

import "regexp"

// Separator joins namespace segments and the class name in a
// fully-qualified identity.
const Separator = `\`

const (
	labelChars           = `[a-zA-Z_\x7f-\xff][a-zA-Z0-9_\x7f-\xff]*`
	labelCharsFirstUpper = `[A-Z_\x7f-\xff][a-zA-Z0-9_\x7f-\xff]*`
	nsChars              = `[a-zA-Z_\x7f-\xff\\][a-zA-Z0-9_\x7f-\xff\\]*`
	nsCharsFirstUpper    = `[A-Z_\x7f-\xff\\][a-zA-Z0-9_\x7f-\xff\\]*`
)

var (
	declarationRe = regexp.MustCompile(`(?:class|interface|trait) ` + labelChars)
	namespaceRe   = regexp.MustCompile(`namespace ` + nsChars + `;`)
	useRe         = regexp.MustCompile(`use ` + nsCharsFirstUpper + `;`)
	newRe         = regexp.MustCompile(`new ` + labelChars)
	staticCallRe  = regexp.MustCompile(nsCharsFirstUpper + `::`)
	typeHintRe    = regexp.MustCompile(` *` + labelCharsFirstUpper + ` \$` + labelChars)
)
