package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "conflict":
			msg = "属性と関連の両方に定義されています: {key}"
		case "unknown_key":
			msg = "モデルに存在しないキーです: {key}"
		case "invalid_enum":
			msg = "不正な値です: {value}"
		case "invalid_format":
			msg = "形式が不正です"
		case "invalid_type":
			msg = "型が不正です"
		case "parse_error":
			msg = "解析エラー"
		case "name_collision":
			msg = "{first} と {second} が同じプロパティ {key} に対応しています"
		}
	default: // "en"
		switch code {
		case "conflict":
			msg = "property {key} is declared as both attribute and relationship"
		case "unknown_key":
			msg = "key {key} does not match any field of the model"
		case "invalid_enum":
			msg = "unsupported value {value}"
		case "invalid_format":
			msg = "invalid format"
		case "invalid_type":
			msg = "invalid type"
		case "parse_error":
			msg = "parse error"
		case "name_collision":
			msg = "{first} and {second} both map to property {key}"
		}
	}
	if msg == "" {
		return code
	}
	return expand(msg, data)
}

// expand replaces {name} placeholders with values from data. Placeholders
// without a value are left in place.
func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
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
