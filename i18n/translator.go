package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "ref" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "truncated":
			return "打ち切られました"
		case "unsupported_version":
			return "未対応のlexiconバージョンです"
		case "invalid_nsid":
			return "NSIDが不正です"
		case "invalid_def_name":
			return "定義名が不正です"
		case "invalid_type":
			return "型が不正です"
		case "empty_defs":
			return "定義がありません"
		case "misplaced_primary":
			return "主定義の型はmainにのみ置けます"
		case "unresolved_ref":
			return "参照先が見つかりません"
		}
	default: // "en"
		switch code {
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		case "truncated":
			return "truncated"
		case "unsupported_version":
			return "unsupported lexicon version"
		case "invalid_nsid":
			return "invalid NSID"
		case "invalid_def_name":
			return "invalid definition name"
		case "invalid_type":
			return "invalid type"
		case "empty_defs":
			return "document has no definitions"
		case "misplaced_primary":
			return "primary types are only allowed in main"
		case "unresolved_ref":
			return "unresolved reference"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
