package fonts

import "unicode"

// pdfDocEncoding implements [Encoding] for PDFDocEncoding, the 8-bit
// encoding used for text strings outside a PDF file's content streams.
//
// See Appendix D.3 of ISO 32000-1:2008.
type pdfDocEncoding struct{}

// PDFDocEncoding is the encoding used for text strings ("text string" type
// PDF objects) which occur outside a document's content streams, for
// example in the document information dictionary or in outline titles.
var PDFDocEncoding Encoding = pdfDocEncoding{}

var pdfDocTable = [256]rune{
	0x18: '˘', // breve
	0x19: 'ˇ', // caron
	0x1A: 'ˆ', // circumflex
	0x1B: '˙', // dotaccent
	0x1C: '˝', // hungarumlaut
	0x1D: '˛', // ogonek
	0x1E: '˚', // ring
	0x1F: '˜', // tilde

	0x80: '•', // bullet
	0x81: '†', // dagger
	0x82: '‡', // daggerdbl
	0x83: '…', // ellipsis
	0x84: '—', // emdash
	0x85: '–', // endash
	0x86: 'ƒ', // florin
	0x87: '⁄', // fraction
	0x88: '‹', // guilsinglleft
	0x89: '›', // guilsinglright
	0x8A: '−', // minus
	0x8B: '‰', // perthousand
	0x8C: '„', // quotedblbase
	0x8D: '“', // quotedblleft
	0x8E: '”', // quotedblright
	0x8F: '‘', // quoteleft
	0x90: '’', // quoteright
	0x91: '‚', // quotesinglbase
	0x92: '™', // trademark
	0x93: 'ﬁ', // fi
	0x94: 'ﬂ', // fl
	0x95: 'Ł', // Lslash
	0x96: 'Œ', // OE
	0x97: 'Š', // Scaron
	0x98: 'Ÿ', // Ydieresis
	0x99: 'Ž', // Zcaron
	0x9A: 'ı', // dotlessi
	0x9B: 'ł', // lslash
	0x9C: 'œ', // oe
	0x9D: 'š', // scaron
	0x9E: 'ž', // zcaron

	0xA0: '€', // Euro
}

// Decode implements the [Encoding] interface.
func (pdfDocEncoding) Decode(c byte) rune {
	switch {
	case c < 0x18:
		return rune(c)
	case c >= 0x20 && c <= 0x7E:
		return rune(c)
	case c == 0x9F || c == 0xAD:
		return unicode.ReplacementChar
	case c >= 0xA1 && c <= 0xFF:
		// PDFDocEncoding agrees with Latin-1 for this range.
		return rune(c)
	default:
		if r := pdfDocTable[c]; r != 0 {
			return r
		}
		return unicode.ReplacementChar
	}
}

// Encode implements the [Encoding] interface.
func (pdfDocEncoding) Encode(r rune) (byte, bool) {
	if r < 0x18 || (r >= 0x20 && r <= 0x7E) || (r >= 0xA1 && r <= 0xFF) {
		if r < 256 {
			return byte(r), true
		}
	}
	for c, r2 := range pdfDocTable {
		if r2 == r && r2 != 0 {
			return byte(c), true
		}
	}
	return 0, false
}
