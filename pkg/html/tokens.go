// tokens.go defines the token kinds and scanner states of the HTML scanner.
package html

// TokenType is the kind of token produced by Scanner.Scan.
type TokenType int

const (
	StartCommentTag   TokenType = iota // <!--
	Comment                            // comment body
	EndCommentTag                      // -->
	StartTagOpen                       // < of a start tag
	StartTagClose                      // > ending a start tag
	StartTagSelfClose                  // /> ending a start tag
	StartTag                           // start tag name
	EndTagOpen                         // </
	EndTagClose                        // > ending an end tag
	EndTag                             // end tag name
	DelimiterAssign                    // = between attribute name and value
	AttributeName
	AttributeValue
	StartDoctypeTag // <!doctype
	Doctype
	EndDoctypeTag
	Content
	Whitespace
	Unknown
	Script
	Styles
	EOS
)

var tokenTypeNames = [...]string{
	StartCommentTag:   "StartCommentTag",
	Comment:           "Comment",
	EndCommentTag:     "EndCommentTag",
	StartTagOpen:      "StartTagOpen",
	StartTagClose:     "StartTagClose",
	StartTagSelfClose: "StartTagSelfClose",
	StartTag:          "StartTag",
	EndTagOpen:        "EndTagOpen",
	EndTagClose:       "EndTagClose",
	EndTag:            "EndTag",
	DelimiterAssign:   "DelimiterAssign",
	AttributeName:     "AttributeName",
	AttributeValue:    "AttributeValue",
	StartDoctypeTag:   "StartDoctypeTag",
	Doctype:           "Doctype",
	EndDoctypeTag:     "EndDoctypeTag",
	Content:           "Content",
	Whitespace:        "Whitespace",
	Unknown:           "Unknown",
	Script:            "Script",
	Styles:            "Styles",
	EOS:               "EOS",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "TokenType(?)"
}

// ScannerState is the resumable lexical state of a Scanner. A scanner can be
// created at any offset in any state, which is what makes restarts possible.
type ScannerState int

const (
	WithinContent ScannerState = iota
	AfterOpeningStartTag
	AfterOpeningEndTag
	WithinDoctype
	WithinTag // inside a start tag's attribute region
	WithinEndTag
	WithinComment
	WithinScriptContent
	WithinStyleContent
	AfterAttributeName
	BeforeAttributeValue
)

var scannerStateNames = [...]string{
	WithinContent:        "WithinContent",
	AfterOpeningStartTag: "AfterOpeningStartTag",
	AfterOpeningEndTag:   "AfterOpeningEndTag",
	WithinDoctype:        "WithinDoctype",
	WithinTag:            "WithinTag",
	WithinEndTag:         "WithinEndTag",
	WithinComment:        "WithinComment",
	WithinScriptContent:  "WithinScriptContent",
	WithinStyleContent:   "WithinStyleContent",
	AfterAttributeName:   "AfterAttributeName",
	BeforeAttributeValue: "BeforeAttributeValue",
}

func (s ScannerState) String() string {
	if s >= 0 && int(s) < len(scannerStateNames) {
		return scannerStateNames[s]
	}
	return "ScannerState(?)"
}
